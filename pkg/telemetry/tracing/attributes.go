package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used on idfcheck spans. Custom keys live under "idf.".
const (
	// Document attributes
	AttrDocumentPath = "idf.document.path"
	AttrDocumentKind = "idf.document.kind"
	AttrDocumentName = "idf.document.name"

	// Check run attributes
	AttrRunID      = "idf.run.id"
	AttrBoardCount = "idf.run.boards"
	AttrHasPanel   = "idf.run.panel"

	// Error attributes
	AttrErrorType    = "idf.error.type"
	AttrErrorSubject = "idf.error.subject"
)

// DocumentAttributes returns the attributes identifying a parsed document.
func DocumentAttributes(path, kind string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrDocumentPath, path),
		attribute.String(AttrDocumentKind, kind),
	}
}

// SetRecordCounts sets one idf.records.<section> attribute per section.
func SetRecordCounts(span trace.Span, counts map[string]int) {
	attrs := make([]attribute.KeyValue, 0, len(counts))
	for section, n := range counts {
		attrs = append(attrs, attribute.Int("idf.records."+section, n))
	}
	span.SetAttributes(attrs...)
}

// SetErrorAttributes marks the span failed and tags it with the IDF error
// type and, for reference errors, the unresolved name.
func SetErrorAttributes(span trace.Span, err error, errorType, subject string) {
	if err == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrErrorType, errorType)}
	if subject != "" {
		attrs = append(attrs, attribute.String(AttrErrorSubject, subject))
	}
	span.SetAttributes(attrs...)
	SetError(span, err)
}

package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"mercator-hq/idfcheck/pkg/history"
)

// flushEvery is how many rows the CSV writer buffers between flushes.
const flushEvery = 100

// CSVExporter exports runs as CSV, one row per run.
type CSVExporter struct {
	// IncludeHeader includes a header row with column names.
	IncludeHeader bool
}

// NewCSVExporter creates a new CSV exporter.
func NewCSVExporter(includeHeader bool) *CSVExporter {
	return &CSVExporter{IncludeHeader: includeHeader}
}

// Export writes runs to w. Boards are joined with ';' in a single column.
func (e *CSVExporter) Export(ctx context.Context, runs <-chan *history.Run, w io.Writer) error {
	writer := csv.NewWriter(w)

	if e.IncludeHeader {
		if err := writer.Write(csvHeader); err != nil {
			return history.NewExportError(FormatCSV, 0, err)
		}
	}

	written := 0
	for {
		select {
		case <-ctx.Done():
			writer.Flush()
			return ctx.Err()

		case run, ok := <-runs:
			if !ok {
				writer.Flush()
				if err := writer.Error(); err != nil {
					return history.NewExportError(FormatCSV, written, err)
				}
				return nil
			}

			if err := writer.Write(csvRow(run)); err != nil {
				return history.NewExportError(FormatCSV, written, err)
			}
			written++

			if written%flushEvery == 0 {
				writer.Flush()
				if err := writer.Error(); err != nil {
					return history.NewExportError(FormatCSV, written, err)
				}
			}
		}
	}
}

var csvHeader = []string{
	"id", "trigger", "started_at", "finished_at", "duration_ms",
	"library", "panel", "boards", "placements", "components",
	"outcome", "error_type", "subject", "error",
}

func csvRow(run *history.Run) []string {
	return []string{
		run.ID,
		run.Trigger,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		strconv.FormatInt(run.Duration().Milliseconds(), 10),
		run.Library,
		run.Panel,
		strings.Join(run.Boards, ";"),
		strconv.Itoa(run.Placements),
		strconv.Itoa(run.Components),
		run.Outcome,
		run.ErrorType,
		run.Subject,
		run.Error,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

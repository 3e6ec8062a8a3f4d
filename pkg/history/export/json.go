package export

import (
	"context"
	"encoding/json"
	"io"

	"mercator-hq/idfcheck/pkg/history"
)

// JSONExporter exports runs as a JSON array.
type JSONExporter struct {
	// Pretty enables indentation, one run per block.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{Pretty: pretty}
}

// Export writes runs to w as they arrive. An empty channel produces "[]".
func (e *JSONExporter) Export(ctx context.Context, runs <-chan *history.Run, w io.Writer) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return history.NewExportError(FormatJSON, 0, err)
	}

	written := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case run, ok := <-runs:
			if !ok {
				end := "]\n"
				if e.Pretty && written > 0 {
					end = "\n]\n"
				}
				if _, err := io.WriteString(w, end); err != nil {
					return history.NewExportError(FormatJSON, written, err)
				}
				return nil
			}

			sep := ""
			if written > 0 {
				sep = ","
			}
			if e.Pretty {
				sep += "\n  "
			}

			data, err := e.marshal(run)
			if err != nil {
				return history.NewExportError(FormatJSON, written, err)
			}
			if _, err := io.WriteString(w, sep); err != nil {
				return history.NewExportError(FormatJSON, written, err)
			}
			if _, err := w.Write(data); err != nil {
				return history.NewExportError(FormatJSON, written, err)
			}
			written++
		}
	}
}

func (e *JSONExporter) marshal(run *history.Run) ([]byte, error) {
	if e.Pretty {
		return json.MarshalIndent(run, "  ", "  ")
	}
	return json.Marshal(run)
}

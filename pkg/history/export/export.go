package export

import (
	"context"
	"fmt"
	"io"

	"mercator-hq/idfcheck/pkg/history"
)

// Supported export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// DefaultPageSize is the number of runs Stream fetches per query.
const DefaultPageSize = 500

// Exporter writes runs received on a channel until it is closed.
type Exporter interface {
	Export(ctx context.Context, runs <-chan *history.Run, w io.Writer) error
}

// New returns the exporter for format.
func New(format string, pretty bool) (Exporter, error) {
	switch format {
	case FormatCSV:
		return NewCSVExporter(true), nil
	case FormatJSON:
		return NewJSONExporter(pretty), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want %s or %s)", format, FormatCSV, FormatJSON)
	}
}

// Stream pages through every run matching query and sends it on the returned
// channel. query.Limit caps the total number of runs (0 for all); Offset is
// honored. The error channel receives at most one error and is closed with
// the run channel.
func Stream(ctx context.Context, store history.Storage, query *history.Query, pageSize int) (<-chan *history.Run, <-chan error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	runs := make(chan *history.Run, pageSize)
	errc := make(chan error, 1)

	go func() {
		defer close(errc)
		defer close(runs)

		page := *query
		remaining := query.Limit
		for {
			page.Limit = pageSize
			if remaining > 0 && remaining < pageSize {
				page.Limit = remaining
			}

			batch, err := store.Query(ctx, &page)
			if err != nil {
				errc <- err
				return
			}
			for _, run := range batch {
				select {
				case runs <- run:
				case <-ctx.Done():
					errc <- ctx.Err()
					return
				}
			}

			if remaining > 0 {
				remaining -= len(batch)
				if remaining <= 0 {
					return
				}
			}
			if len(batch) < page.Limit {
				return
			}
			page.Offset += len(batch)
		}
	}()

	return runs, errc
}

// Slice sends runs on a closed channel, for exporting runs already in memory.
func Slice(runs []*history.Run) <-chan *history.Run {
	ch := make(chan *history.Run, len(runs))
	for _, run := range runs {
		ch <- run
	}
	close(ch)
	return ch
}

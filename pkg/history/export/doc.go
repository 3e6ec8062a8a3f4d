// Package export writes check-run history as CSV or JSON.
//
// Runs are streamed from a history.Storage page by page, so exports of large
// histories do not hold every run in memory:
//
//	runs, errc := export.Stream(ctx, store, &history.Query{Outcome: history.OutcomeFail}, 500)
//	if err := export.NewCSVExporter(true).Export(ctx, runs, os.Stdout); err != nil {
//	    return err
//	}
//	if err := <-errc; err != nil {
//	    return err
//	}
package export

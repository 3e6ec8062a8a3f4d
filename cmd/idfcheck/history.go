package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/idfcheck/pkg/cli"
	"mercator-hq/idfcheck/pkg/history"
	"mercator-hq/idfcheck/pkg/history/export"
	"mercator-hq/idfcheck/pkg/history/retention"
)

var historyFlags struct {
	output    string
	since     string
	outcome   string
	errorType string
	limit     int
	offset    int
	format    string
	file      string
	pretty    bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the check-run history",
	Long: `Inspect and prune the history of assembly checks.

Runs are recorded by check, lint and watch when history.enabled is set or
--record is passed. The database location is history.path.

Subcommands:
  list    - List recorded runs, newest first
  export  - Write matching runs as CSV or JSON
  prune   - Apply the retention policy now`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded check runs",
	Long: `List recorded check runs, newest first.

Examples:
  idfcheck history list
  idfcheck history list --outcome fail --since 24h
  idfcheck history list --error-type reference --output json`,
	RunE: listHistory,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded check runs as CSV or JSON",
	Long: `Write every run matching the filters to stdout or --file. Runs are
read from the database in pages, so large histories can be exported.

Examples:
  idfcheck history export --format csv --file runs.csv
  idfcheck history export --format json --outcome fail --since 168h`,
	RunE: exportHistory,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs outside the retention policy",
	Long: `Delete runs older than history.retention.days and, when
history.retention.max_records is set, the oldest runs beyond that count.`,
	RunE: pruneHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyExportCmd, historyPruneCmd)

	historyCmd.PersistentFlags().StringVarP(&historyFlags.output, "output", "o", "text", "output format: text, json, yaml")
	for _, cmd := range []*cobra.Command{historyListCmd, historyExportCmd} {
		cmd.Flags().StringVar(&historyFlags.since, "since", "", "only runs started within this duration (e.g. 24h)")
		cmd.Flags().StringVar(&historyFlags.outcome, "outcome", "", "filter by outcome: pass, fail")
		cmd.Flags().StringVar(&historyFlags.errorType, "error-type", "", "filter by error type (e.g. reference, syntax)")
		cmd.Flags().IntVar(&historyFlags.offset, "offset", 0, "number of runs to skip")
	}
	historyListCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "maximum number of runs")
	historyExportCmd.Flags().IntVar(&historyFlags.limit, "limit", 0, "maximum number of runs (0 for all)")
	historyExportCmd.Flags().StringVar(&historyFlags.format, "format", export.FormatCSV, "export format: csv, json")
	historyExportCmd.Flags().StringVarP(&historyFlags.file, "file", "f", "", "write to this file instead of stdout")
	historyExportCmd.Flags().BoolVar(&historyFlags.pretty, "pretty", false, "indent JSON output")
}

// historyQuery builds a query from the filter flags.
func historyQuery() (*history.Query, error) {
	query := &history.Query{
		Outcome:   historyFlags.outcome,
		ErrorType: historyFlags.errorType,
		Limit:     historyFlags.limit,
		Offset:    historyFlags.offset,
	}
	switch historyFlags.outcome {
	case "", history.OutcomePass, history.OutcomeFail:
	default:
		return nil, cli.NewConfigError("outcome", fmt.Sprintf("unknown outcome %q (want pass or fail)", historyFlags.outcome))
	}
	if historyFlags.since != "" {
		d, err := time.ParseDuration(historyFlags.since)
		if err != nil {
			return nil, cli.NewConfigError("since", err.Error())
		}
		since := time.Now().Add(-d)
		query.Since = &since
	}
	return query, nil
}

func listHistory(cmd *cobra.Command, args []string) error {
	if _, err := cli.ParseFormat(historyFlags.output); err != nil {
		return err
	}
	query, err := historyQuery()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openHistory(ctx, true)
	if err != nil {
		return cli.NewUsageError(cmd.Name(), err)
	}
	defer store.Close()

	runs, err := store.Query(ctx, query)
	if err != nil {
		return cli.NewCommandError(cmd.Name(), err)
	}
	countQuery := *query
	countQuery.Limit, countQuery.Offset = 0, 0
	total, err := store.Count(ctx, &countQuery)
	if err != nil {
		return cli.NewCommandError(cmd.Name(), err)
	}

	return output(cmd, historyFlags.output, &cli.HistoryReport{Total: total, Runs: runs})
}

func exportHistory(cmd *cobra.Command, args []string) (err error) {
	exporter, err := export.New(historyFlags.format, historyFlags.pretty)
	if err != nil {
		return cli.NewConfigError("format", err.Error())
	}
	query, err := historyQuery()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openHistory(ctx, true)
	if err != nil {
		return cli.NewUsageError(cmd.Name(), err)
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	if historyFlags.file != "" {
		f, ferr := os.Create(historyFlags.file)
		if ferr != nil {
			return cli.NewUsageError(cmd.Name(), ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = cli.NewCommandError(cmd.Name(), cerr)
			}
		}()
		w = f
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runs, errc := export.Stream(ctx, store, query, export.DefaultPageSize)
	if err := exporter.Export(ctx, runs, w); err != nil {
		return cli.NewCommandError(cmd.Name(), err)
	}
	if err := <-errc; err != nil {
		return cli.NewCommandError(cmd.Name(), err)
	}

	app.logger.Debug("history exported", "format", historyFlags.format, "file", historyFlags.file)
	return nil
}

func pruneHistory(cmd *cobra.Command, args []string) error {
	if _, err := cli.ParseFormat(historyFlags.output); err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openHistory(ctx, true)
	if err != nil {
		return cli.NewUsageError(cmd.Name(), err)
	}
	defer store.Close()

	pruner := retention.NewPruner(store, retention.FromConfig(&app.cfg.History.Retention))
	pruner.OnPrune(app.metrics.RecordHistoryPruned)

	deleted, err := pruner.Prune(ctx)
	if err != nil {
		return cli.NewCommandError(cmd.Name(), err)
	}
	remaining, err := store.Count(ctx, &history.Query{})
	if err != nil {
		return cli.NewCommandError(cmd.Name(), err)
	}

	return output(cmd, historyFlags.output, &cli.PruneReport{Deleted: deleted, Remaining: remaining})
}

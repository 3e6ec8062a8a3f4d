package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/idfcheck/pkg/cli"
	"mercator-hq/idfcheck/pkg/history/retention"
	"mercator-hq/idfcheck/pkg/idf/assembly"
	"mercator-hq/idfcheck/pkg/watch"
)

var watchFlags assemblyFlags

var watchListen string

var watchCmd = &cobra.Command{
	Use:   "watch --library FILE [--panel FILE] BOARD...",
	Short: "Re-check an assembly whenever one of its files changes",
	Long: `Check the assembly once, then watch its files and check again after
every change. Each run is printed in the selected output format.

With --listen (or watch.listen_address) the command also serves Prometheus
metrics and health probes. Readiness reports 503 while the latest check has
problems. When history is enabled, every run is recorded and old runs are
pruned on history.retention.prune_schedule.

Examples:
  idfcheck watch --library parts.emp main.emn
  idfcheck watch -l parts.emp -p panel.emn main.emn --listen 127.0.0.1:9464`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchFlags.register(watchCmd, false)
	watchCmd.Flags().BoolVar(&watchFlags.all, "all", false, "report every problem instead of stopping at the first")
	watchCmd.Flags().StringVar(&watchListen, "listen", "", "serve metrics and health on this address")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if _, err := cli.ParseFormat(watchFlags.output); err != nil {
		return err
	}
	if watchListen != "" {
		app.cfg.Watch.ListenAddress = watchListen
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	mode := assembly.ModeCheck
	if watchFlags.all || app.cfg.Assembly.CollectAll {
		mode = assembly.ModeLint
	}

	opts := []watch.Option{
		watch.WithMetrics(app.metrics),
		watch.WithVersion(Version),
		watch.OnResult(func(r *assembly.Result) {
			if err := output(cmd, watchFlags.output, cli.NewCheckReport(r)); err != nil {
				app.logger.Error("failed to write check report", "error", err)
			}
		}),
	}

	var recorder assembly.Recorder
	store, err := openHistory(ctx, watchFlags.record)
	if err != nil {
		return cli.NewUsageError(cmd.Name(), err)
	}
	if store != nil {
		defer store.Close()
		recorder = store

		pruner := retention.NewPruner(store, retention.FromConfig(&app.cfg.History.Retention))
		pruner.OnPrune(app.metrics.RecordHistoryPruned)
		opts = append(opts, watch.WithHistory(store, pruner))
	}

	checker := watchFlags.checker(cmd, mode, "watch", recorder)
	runner := watch.NewRunner(app.cfg, checker, watchFlags.sources(args), opts...)

	app.logger.Info("watching assembly",
		"library", watchFlags.library,
		"panel", watchFlags.panel,
		"boards", len(args),
		"listen", app.cfg.Watch.ListenAddress,
	)

	if err := runner.Run(ctx); err != nil {
		return cli.NewCommandError(cmd.Name(), err)
	}
	return nil
}

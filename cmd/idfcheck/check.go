package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/idfcheck/pkg/cli"
	"mercator-hq/idfcheck/pkg/history/storage"
	"mercator-hq/idfcheck/pkg/idf/assembly"
)

// assemblyFlags are shared by check, lint and watch.
type assemblyFlags struct {
	library string
	panel   string
	output  string
	all     bool
	closure bool
	strict  bool
	record  bool
	workers int

	closureDefault bool
}

func (f *assemblyFlags) register(cmd *cobra.Command, closureDefault bool) {
	f.closureDefault = closureDefault
	cmd.Flags().StringVarP(&f.library, "library", "l", "", "library file (.emp), required")
	cmd.Flags().StringVarP(&f.panel, "panel", "p", "", "panel file (.emn)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "text", "output format: text, json, yaml")
	cmd.Flags().BoolVar(&f.closure, "closure", closureDefault, "also check that every outline loop is closed")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "treat repeated PROP names as errors")
	cmd.Flags().BoolVar(&f.record, "record", false, "record the run in the history database")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "documents parsed concurrently (default from config)")
	_ = cmd.MarkFlagRequired("library")
}

func (f *assemblyFlags) sources(boards []string) assembly.Sources {
	return assembly.Sources{Library: f.library, Panel: f.panel, Boards: boards}
}

// checker builds a Checker from the configuration and flags.
func (f *assemblyFlags) checker(cmd *cobra.Command, mode assembly.Mode, trigger string, recorder assembly.Recorder) *assembly.Checker {
	cfg := app.cfg
	if f.strict {
		cfg.Parser.StrictProperties = true
	}
	if f.workers > 0 {
		cfg.Assembly.Workers = f.workers
	}
	if f.closureDefault || cmd.Flags().Changed("closure") {
		cfg.Parser.CheckClosure = f.closure
	}

	opts := assembly.FromConfig(cfg)
	opts = append(opts,
		assembly.WithMode(mode),
		assembly.WithTrigger(trigger),
		assembly.WithMetrics(app.metrics),
		assembly.WithTracer(app.tracer),
		assembly.WithLogger(app.logger.Slog().With("component", "assembly")),
	)
	if recorder != nil {
		opts = append(opts, assembly.WithRecorder(recorder))
	}
	return assembly.NewChecker(opts...)
}

// openHistory opens the history store when it is enabled in configuration
// or forced by --record.
func openHistory(ctx context.Context, force bool) (*storage.SQLiteStorage, error) {
	if !app.cfg.History.Enabled && !force {
		return nil, nil
	}
	store, err := storage.Open(ctx, storage.FromConfig(&app.cfg.History))
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

var checkFlags assemblyFlags

var checkCmd = &cobra.Command{
	Use:   "check --library FILE [--panel FILE] BOARD...",
	Short: "Check that an assembly's documents reference each other correctly",
	Long: `Parse a library, one or more boards and an optional panel, then check
that every package placed on each board is defined in the library and that
every board placed on the panel is among the boards given.

The check stops at the first problem. Use --all (or the lint command) to
report every problem.

Exit codes: 0 valid, 1 problems found, 2 usage or configuration error.

Examples:
  idfcheck check --library parts.emp main.emn
  idfcheck check -l parts.emp -p panel.emn main.emn daughter.emn
  idfcheck check -l parts.emp main.emn --all --output json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := assembly.ModeCheck
		if checkFlags.all || app.cfg.Assembly.CollectAll {
			mode = assembly.ModeLint
		}
		return runCheck(cmd, &checkFlags, args, mode, "check")
	},
}

var lintFlags assemblyFlags

var lintCmd = &cobra.Command{
	Use:   "lint --library FILE [--panel FILE] BOARD...",
	Short: "Report every reference and outline problem in an assembly",
	Long: `Like check, but collects every missing package and board instead of
stopping at the first, and checks that every outline loop ends where it
starts (disable with --closure=false).

Examples:
  idfcheck lint --library parts.emp main.emn
  idfcheck lint -l parts.emp -p panel.emn main.emn --output yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, &lintFlags, args, assembly.ModeLint, "lint")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd, lintCmd)

	checkFlags.register(checkCmd, false)
	checkCmd.Flags().BoolVar(&checkFlags.all, "all", false, "report every problem instead of stopping at the first")

	lintFlags.register(lintCmd, true)
}

func runCheck(cmd *cobra.Command, flags *assemblyFlags, boards []string, mode assembly.Mode, trigger string) error {
	if _, err := cli.ParseFormat(flags.output); err != nil {
		return err
	}

	ctx := cmd.Context()

	var recorder assembly.Recorder
	store, err := openHistory(ctx, flags.record)
	if err != nil {
		return cli.NewUsageError(cmd.Name(), err)
	}
	if store != nil {
		defer store.Close()
		recorder = store
	}

	result, _ := flags.checker(cmd, mode, trigger, recorder).Run(ctx, flags.sources(boards))

	if err := output(cmd, flags.output, cli.NewCheckReport(result)); err != nil {
		return err
	}
	if !result.Passed() {
		return cli.NewCommandError(cmd.Name(), errProblemsFound)
	}
	return nil
}

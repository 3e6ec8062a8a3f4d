package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"mercator-hq/idfcheck/pkg/cli"
	"mercator-hq/idfcheck/pkg/config"
	"mercator-hq/idfcheck/pkg/telemetry/logging"
	"mercator-hq/idfcheck/pkg/telemetry/metrics"
	"mercator-hq/idfcheck/pkg/telemetry/tracing"
)

const defaultConfigFile = "idfcheck.yaml"

var (
	// Global flags
	cfgFile   string
	logLevel  string
	logFormat string
)

// errProblemsFound marks a command that already printed its problems.
var errProblemsFound = errors.New("problems found")

// appContext holds what every command shares, built before it runs.
type appContext struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
}

var app *appContext

var rootCmd = &cobra.Command{
	Use:   "idfcheck",
	Short: "Parse and cross-check IDF 3.0 board, panel and library files",
	Long: `idfcheck parses IDF 3.0 documents exchanged between ECAD and MCAD tools
and checks that they agree with each other:

  - board and panel files (.emn): header, outlines, keepouts, drilled
    holes, notes and component placements
  - library files (.emp): electrical and mechanical component outlines
  - assemblies: every package placed on a board is defined in the library,
    and every board placed on the panel is supplied

Configuration is read from idfcheck.yaml when present, or from the file
named by --config, and can be overridden with IDFCHECK_* environment
variables.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown(cmd.Context())
	},
}

// Execute runs the root command and exits with the code matching its error.
func Execute() {
	err := rootCmd.Execute()
	if app != nil {
		_ = teardown(context.Background())
	}
	if err != nil && !errors.Is(err, errProblemsFound) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCode(err))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log format (text, json, console)")
}

// setup loads configuration and initializes logging, metrics and tracing.
func setup(cmd *cobra.Command, args []string) error {
	optional := !cmd.Flags().Changed("config")
	if err := config.Initialize(cfgFile, optional); err != nil {
		return cli.NewUsageError(cmd.Name(), fmt.Errorf("failed to load config: %w", err))
	}

	// Commands adjust their copy with flags; the singleton stays as loaded.
	cfg := *config.MustGetConfig()
	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Telemetry.Logging.Format = logFormat
	}

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	logCfg.Writer = cmd.ErrOrStderr()
	logger, err := logging.New(logCfg)
	if err != nil {
		return cli.NewUsageError(cmd.Name(), err)
	}
	slog.SetDefault(logger.Slog())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, registry)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewUsageError(cmd.Name(), err)
	}

	app = &appContext{
		cfg:     &cfg,
		logger:  logger,
		metrics: collector,
		tracer:  tracer,
	}

	logger.Debug("configuration loaded",
		"config", cfgFile,
		"history", cfg.History.Enabled,
		"tracing", cfg.Telemetry.Tracing.Enabled,
	)
	return nil
}

// teardown flushes spans. It is safe to call more than once.
func teardown(ctx context.Context) error {
	if app == nil || app.tracer == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	tracer := app.tracer
	app.tracer = nil
	return tracer.Shutdown(ctx)
}

// output writes v to the command's stdout in the requested format.
func output(cmd *cobra.Command, format string, v any) error {
	f, err := cli.ParseFormat(format)
	if err != nil {
		return err
	}
	return cli.NewFormatter(f).FormatTo(cmd.OutOrStdout(), v)
}

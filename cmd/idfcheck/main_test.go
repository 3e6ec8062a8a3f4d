package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"mercator-hq/idfcheck/pkg/config"
	"mercator-hq/idfcheck/pkg/telemetry/logging"
	"mercator-hq/idfcheck/pkg/telemetry/metrics"
	"mercator-hq/idfcheck/pkg/telemetry/tracing"
)

const testdata = "../../pkg/idf/parser/testdata"

func fixture(name string) string {
	return filepath.Join(testdata, name)
}

// withApp installs an application context backed by a temporary history
// database and returns it.
func withApp(t *testing.T) *appContext {
	t.Helper()

	cfg := config.Default()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	logCfg.Writer = io.Discard
	logger, err := logging.New(logCfg)
	if err != nil {
		t.Fatalf("logging.New() error = %v", err)
	}

	prev := app
	app = &appContext{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry()),
		tracer:  tracing.Noop(),
	}
	t.Cleanup(func() { app = prev })
	return app
}

// testCommand returns a bare command that writes to out.
func testCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.SetContext(context.Background())
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	return cmd
}

func writeVariant(t *testing.T, name, old, new string) string {
	t.Helper()
	data, err := os.ReadFile(fixture(name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	src := strings.Replace(string(data), old, new, 1)
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write variant: %v", err)
	}
	return path
}

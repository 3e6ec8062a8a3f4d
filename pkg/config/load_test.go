package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "idfcheck.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
parser:
  max_file_size: 2048
  strict_properties: true

assembly:
  workers: 8
  collect_all: true

history:
  enabled: true
  driver: "sqlite3"
  path: "./test-history.db"
  retention:
    days: 7
    max_records: 500

watch:
  debounce: "250ms"

telemetry:
  logging:
    level: "debug"
    format: "json"
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.MaxFileSize != 2048 {
		t.Errorf("expected max file size 2048, got %d", cfg.Parser.MaxFileSize)
	}
	if !cfg.Parser.StrictProperties {
		t.Error("expected strict properties")
	}
	if cfg.Assembly.Workers != 8 || !cfg.Assembly.CollectAll {
		t.Errorf("unexpected assembly config %+v", cfg.Assembly)
	}
	if cfg.History.Driver != "sqlite3" || cfg.History.Path != "./test-history.db" {
		t.Errorf("unexpected history config %+v", cfg.History)
	}
	if cfg.History.Retention.Days != 7 || cfg.History.Retention.MaxRecords != 500 {
		t.Errorf("unexpected retention config %+v", cfg.History.Retention)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", cfg.Telemetry.Logging)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics disabled by file")
	}

	// Untouched sections keep their defaults
	if !cfg.Telemetry.Health.Enabled {
		t.Error("expected health to keep its default")
	}
	if cfg.History.Retention.PruneSchedule != DefaultHistoryRetentionPrune {
		t.Errorf("expected default prune schedule, got %q", cfg.History.Retention.PruneSchedule)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/idfcheck.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "parser:\n  max_file_size: [unclosed\n")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
history:
  driver: "postgres"
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Errors[0].Field != "history.driver" {
		t.Errorf("expected history.driver error, got %s", verr.Errors[0].Field)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
assembly:
  workers: 2
telemetry:
  logging:
    level: "info"
`)

	t.Setenv("IDFCHECK_ASSEMBLY_WORKERS", "6")
	t.Setenv("IDFCHECK_PARSER_STRICT_PROPERTIES", "true")
	t.Setenv("IDFCHECK_PARSER_MAX_FILE_SIZE", "4096")
	t.Setenv("IDFCHECK_WATCH_DEBOUNCE", "1s")
	t.Setenv("IDFCHECK_WATCH_EXTENSIONS", ".emn")
	t.Setenv("IDFCHECK_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("IDFCHECK_TELEMETRY_TRACING_SAMPLE_RATIO", "0.25")

	cfg, err := LoadConfigWithEnvOverrides(path, false)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Assembly.Workers != 6 {
		t.Errorf("expected workers 6, got %d", cfg.Assembly.Workers)
	}
	if !cfg.Parser.StrictProperties {
		t.Error("expected strict properties from env")
	}
	if cfg.Parser.MaxFileSize != 4096 {
		t.Errorf("expected max file size 4096, got %d", cfg.Parser.MaxFileSize)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) != 1 || cfg.Watch.Extensions[0] != ".emn" {
		t.Errorf("unexpected extensions %v", cfg.Watch.Extensions)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Tracing.SampleRatio != 0.25 {
		t.Errorf("expected sample ratio 0.25, got %v", cfg.Telemetry.Tracing.SampleRatio)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidEnvValues(t *testing.T) {
	t.Setenv("IDFCHECK_ASSEMBLY_WORKERS", "many")
	t.Setenv("IDFCHECK_PARSER_CHECK_CLOSURE", "maybe")
	t.Setenv("IDFCHECK_WATCH_DEBOUNCE", "soon")

	cfg, err := LoadConfigWithEnvOverrides("", false)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Assembly.Workers != DefaultAssemblyWorkers {
		t.Errorf("expected default workers, got %d", cfg.Assembly.Workers)
	}
	if cfg.Parser.CheckClosure {
		t.Error("expected check closure to keep its default")
	}
	if cfg.Watch.Debounce != DefaultWatchDebounce {
		t.Errorf("expected default debounce, got %v", cfg.Watch.Debounce)
	}
}

func TestLoadConfigWithEnvOverrides_OptionalMissingFile(t *testing.T) {
	cfg, err := LoadConfigWithEnvOverrides(filepath.Join(t.TempDir(), "absent.yaml"), true)
	if err != nil {
		t.Fatalf("expected defaults for optional missing file, got %v", err)
	}
	if cfg.Assembly.Workers != DefaultAssemblyWorkers {
		t.Errorf("expected default workers, got %d", cfg.Assembly.Workers)
	}

	if _, err := LoadConfigWithEnvOverrides(filepath.Join(t.TempDir(), "absent.yaml"), false); err == nil {
		t.Error("expected error for required missing file")
	}
}

func TestLoadConfigWithEnvOverrides_RevalidatesAfterOverrides(t *testing.T) {
	t.Setenv("IDFCHECK_HISTORY_DRIVER", "mysql")

	_, err := LoadConfigWithEnvOverrides("", false)
	if err == nil {
		t.Fatal("expected validation error after env override")
	}
}

package config

import "time"

// Config is the root configuration structure for idfcheck.
// It contains the parser limits, assembly check settings, check-run history
// storage, watch mode and telemetry.
type Config struct {
	// Parser contains document parsing limits and strictness options.
	Parser ParserConfig `yaml:"parser"`

	// Assembly contains settings for checking a set of documents together.
	Assembly AssemblyConfig `yaml:"assembly"`

	// History contains configuration for the check-run history store and
	// its retention policy.
	History HistoryConfig `yaml:"history"`

	// Watch contains configuration for watch mode, which re-runs the
	// assembly check when input files change.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ParserConfig contains configuration for the IDF parser.
type ParserConfig struct {
	// MaxFileSize is the largest document accepted, in bytes.
	// Default: 67108864 (64MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// StrictProperties rejects a repeated PROP name within one electrical
	// component instead of keeping the last value.
	// Default: false
	StrictProperties bool `yaml:"strict_properties"`

	// CheckClosure reports outline loops that do not end where they
	// started as geometry errors.
	// Default: false
	CheckClosure bool `yaml:"check_closure"`
}

// AssemblyConfig contains configuration for assembly checks.
type AssemblyConfig struct {
	// Workers is the number of documents parsed concurrently.
	// Default: 4
	Workers int `yaml:"workers"`

	// CollectAll reports every missing reference instead of stopping at
	// the first.
	// Default: false
	CollectAll bool `yaml:"collect_all"`
}

// HistoryConfig contains configuration for the check-run history store.
type HistoryConfig struct {
	// Enabled controls whether check runs are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Driver selects the SQLite driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file path. ":memory:" keeps history in memory.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// BusyTimeout is how long a writer waits for a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// Retention contains the history retention policy.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig contains configuration for pruning old history records.
type RetentionConfig struct {
	// Days is how long check runs are kept. 0 keeps them forever.
	// Default: 30
	Days int `yaml:"days"`

	// MaxRecords caps the number of stored runs. 0 means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`

	// PruneSchedule is the cron expression for automatic pruning while
	// watch mode runs.
	// Default: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string `yaml:"prune_schedule"`
}

// WatchConfig contains configuration for watch mode.
type WatchConfig struct {
	// Debounce is how long to wait after the last file event before
	// re-running the check.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions lists the file extensions that trigger a re-run.
	// Default: [".emn", ".emp"]
	Extensions []string `yaml:"extensions"`

	// ListenAddress is the address of the metrics and health endpoints
	// served while watching. Empty disables the server.
	// Default: ""
	ListenAddress string `yaml:"listen_address"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "idfcheck"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: ""
	Subsystem string `yaml:"subsystem"`

	// ParseDurationBuckets defines histogram buckets for document parse
	// duration (seconds).
	// Default: [0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5]
	ParseDurationBuckets []float64 `yaml:"parse_duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio", "parent_based"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "idfcheck"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// Enabled controls whether health endpoints are served in watch mode.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// LivenessPath is the HTTP path for the liveness probe.
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the HTTP path for the readiness probe.
	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`
}

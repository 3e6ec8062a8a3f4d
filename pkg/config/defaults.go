package config

import "time"

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultParserMaxFileSize      = int64(64 * 1024 * 1024) // 64MB
	DefaultParserStrictProperties = false
	DefaultParserCheckClosure     = false

	// Assembly defaults
	DefaultAssemblyWorkers    = 4
	DefaultAssemblyCollectAll = false

	// History defaults
	DefaultHistoryEnabled        = false
	DefaultHistoryDriver         = "sqlite"
	DefaultHistoryPath           = "data/history.db"
	DefaultHistoryMaxOpenConns   = 4
	DefaultHistoryBusyTimeout    = 5 * time.Second
	DefaultHistoryRetentionDays  = 30
	DefaultHistoryMaxRecords     = int64(0)
	DefaultHistoryRetentionPrune = "0 3 * * *"

	// Watch defaults
	DefaultWatchDebounce      = 100 * time.Millisecond
	DefaultWatchListenAddress = ""

	// Telemetry defaults
	DefaultLoggingLevel           = "info"
	DefaultLoggingFormat          = "text"
	DefaultMetricsEnabled         = true
	DefaultPrometheusPath         = "/metrics"
	DefaultMetricsNamespace       = "idfcheck"
	DefaultTracingEnabled         = false
	DefaultTracingSampler         = "always"
	DefaultTracingSamplingRate    = 1.0
	DefaultTracingServiceName     = "idfcheck"
	DefaultTracingOTLPTimeout     = 10 * time.Second
	DefaultTracingOTLPInsecureTLS = false
	DefaultHealthEnabled          = true
	DefaultHealthLivenessPath     = "/health"
	DefaultHealthReadinessPath    = "/ready"
)

// DefaultWatchExtensions are the file extensions watch mode reacts to.
var DefaultWatchExtensions = []string{".emn", ".emp"}

// DefaultParseDurationBuckets are histogram buckets for parse duration.
var DefaultParseDurationBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// Default returns a configuration with every field set to its default.
// Booleans that default to true are only set here, so a YAML file decoded
// on top of Default can still turn them off.
func Default() *Config {
	cfg := &Config{
		Parser: ParserConfig{
			StrictProperties: DefaultParserStrictProperties,
			CheckClosure:     DefaultParserCheckClosure,
		},
		Assembly: AssemblyConfig{
			CollectAll: DefaultAssemblyCollectAll,
		},
		History: HistoryConfig{
			Enabled: DefaultHistoryEnabled,
		},
		Watch: WatchConfig{
			ListenAddress: DefaultWatchListenAddress,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
			Tracing: TracingConfig{
				Enabled: DefaultTracingEnabled,
				OTLP:    OTLPConfig{Insecure: DefaultTracingOTLPInsecureTLS},
			},
			Health: HealthConfig{Enabled: DefaultHealthEnabled},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Parser defaults
	if cfg.Parser.MaxFileSize == 0 {
		cfg.Parser.MaxFileSize = DefaultParserMaxFileSize
	}

	// Assembly defaults
	if cfg.Assembly.Workers == 0 {
		cfg.Assembly.Workers = DefaultAssemblyWorkers
	}

	// History defaults
	if cfg.History.Driver == "" {
		cfg.History.Driver = DefaultHistoryDriver
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.History.MaxOpenConns == 0 {
		cfg.History.MaxOpenConns = DefaultHistoryMaxOpenConns
	}
	if cfg.History.BusyTimeout == 0 {
		cfg.History.BusyTimeout = DefaultHistoryBusyTimeout
	}
	if cfg.History.Retention.Days == 0 {
		cfg.History.Retention.Days = DefaultHistoryRetentionDays
	}
	if cfg.History.Retention.MaxRecords == 0 {
		cfg.History.Retention.MaxRecords = DefaultHistoryMaxRecords
	}
	if cfg.History.Retention.PruneSchedule == "" {
		cfg.History.Retention.PruneSchedule = DefaultHistoryRetentionPrune
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultPrometheusPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(cfg.Telemetry.Metrics.ParseDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.ParseDurationBuckets = append([]float64(nil), DefaultParseDurationBuckets...)
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSamplingRate
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.OTLP.Timeout == 0 {
		cfg.Telemetry.Tracing.OTLP.Timeout = DefaultTracingOTLPTimeout
	}
	if cfg.Telemetry.Health.LivenessPath == "" {
		cfg.Telemetry.Health.LivenessPath = DefaultHealthLivenessPath
	}
	if cfg.Telemetry.Health.ReadinessPath == "" {
		cfg.Telemetry.Health.ReadinessPath = DefaultHealthReadinessPath
	}
}

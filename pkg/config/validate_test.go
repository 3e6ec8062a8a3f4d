package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{
			name:   "non-positive max file size",
			modify: func(c *Config) { c.Parser.MaxFileSize = 0 },
			field:  "parser.max_file_size",
		},
		{
			name:   "zero workers",
			modify: func(c *Config) { c.Assembly.Workers = 0 },
			field:  "assembly.workers",
		},
		{
			name:   "too many workers",
			modify: func(c *Config) { c.Assembly.Workers = 1000 },
			field:  "assembly.workers",
		},
		{
			name:   "unknown history driver",
			modify: func(c *Config) { c.History.Driver = "postgres" },
			field:  "history.driver",
		},
		{
			name: "history enabled without path",
			modify: func(c *Config) {
				c.History.Enabled = true
				c.History.Path = ""
			},
			field: "history.path",
		},
		{
			name:   "bad prune schedule",
			modify: func(c *Config) { c.History.Retention.PruneSchedule = "every day" },
			field:  "history.retention.prune_schedule",
		},
		{
			name:   "negative retention days",
			modify: func(c *Config) { c.History.Retention.Days = -1 },
			field:  "history.retention.days",
		},
		{
			name:   "extension without dot",
			modify: func(c *Config) { c.Watch.Extensions = []string{"emn"} },
			field:  "watch.extensions[0]",
		},
		{
			name:   "bad logging level",
			modify: func(c *Config) { c.Telemetry.Logging.Level = "verbose" },
			field:  "telemetry.logging.level",
		},
		{
			name:   "bad logging format",
			modify: func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			field:  "telemetry.logging.format",
		},
		{
			name:   "metrics path without slash",
			modify: func(c *Config) { c.Telemetry.Metrics.Path = "metrics" },
			field:  "telemetry.metrics.path",
		},
		{
			name:   "tracing enabled without endpoint",
			modify: func(c *Config) { c.Telemetry.Tracing.Enabled = true },
			field:  "telemetry.tracing.endpoint",
		},
		{
			name:   "sample ratio out of range",
			modify: func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 },
			field:  "telemetry.tracing.sample_ratio",
		},
		{
			name:   "unknown sampler",
			modify: func(c *Config) { c.Telemetry.Tracing.Sampler = "sometimes" },
			field:  "telemetry.tracing.sampler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error for field %s, got %v", tt.field, verr.Errors)
			}
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Assembly.Workers = 0
	cfg.Telemetry.Logging.Level = "loud"

	err := Validate(cfg)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d: %v", len(verr.Errors), verr.Errors)
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		contains string
	}{
		{
			name:     "no errors",
			err:      ValidationError{},
			contains: "configuration validation failed",
		},
		{
			name:     "single error",
			err:      ValidationError{Errors: []FieldError{{Field: "a.b", Message: "bad"}}},
			contains: "configuration validation failed: a.b: bad",
		},
		{
			name: "multiple errors",
			err: ValidationError{Errors: []FieldError{
				{Field: "a", Message: "x"},
				{Field: "b", Message: "y"},
			}},
			contains: "with 2 errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); !strings.Contains(got, tt.contains) {
				t.Errorf("expected %q to contain %q", got, tt.contains)
			}
		})
	}
}

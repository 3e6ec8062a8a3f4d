// Package config provides configuration management for idfcheck.
//
// Configuration is read from a YAML file, completed with defaults, overridden
// from the environment, and validated before use.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("idfcheck.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("idfcheck.yaml", true)
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention IDFCHECK_SECTION_FIELD:
//
//   - IDFCHECK_PARSER_MAX_FILE_SIZE overrides parser.max_file_size
//   - IDFCHECK_HISTORY_PATH overrides history.path
//   - IDFCHECK_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Values that do not parse are ignored and the file value is kept.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	parser:
//	  strict_properties: true
//	  check_closure: true
//
//	assembly:
//	  workers: 8
//
//	history:
//	  enabled: true
//	  driver: "sqlite"
//	  path: "./data/history.db"
//	  retention:
//	    days: 14
//	    prune_schedule: "0 3 * * *"
//
//	watch:
//	  debounce: "250ms"
//	  listen_address: "127.0.0.1:9090"
//
//	telemetry:
//	  logging:
//	    level: "debug"
//	    format: "json"
//
// # Thread Safety
//
// The singleton accessors (Initialize, GetConfig, ReloadConfig) are safe for
// concurrent use.
package config

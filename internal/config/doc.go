// Package config defines the configuration structure for the task engine.
//
// Configuration is organized into logical sections (Server, Pool) and uses
// code generation via optgen to create functional option helpers.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP control plane settings
//	├── Pool           - Task pool model and sizing
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────────┬─────────┬────────────────────────────────────────┐
//	│ Field            │ Default │ Description                            │
//	├──────────────────┼─────────┼────────────────────────────────────────┤
//	│ ServerMode       │ "dev"   │ Server mode: "prod" or "dev"           │
//	│ HTTPPort         │ 8000    │ HTTP server listen port                │
//	│ TaskHistory      │ 1000    │ Finished tasks kept for inspection     │
//	└──────────────────┴─────────┴────────────────────────────────────────┘
//
// # Pool Configuration
//
//	┌─────────────────┬────────────┬─────────────────────────────────────────┐
//	│ Field           │ Default    │ Description                             │
//	├─────────────────┼────────────┼─────────────────────────────────────────┤
//	│ Model           │ "parallel" │ "parallel" or "cooperative"             │
//	│ NumWorkers      │ 4          │ Worker count (parallel only, <=0 = CPU) │
//	│ IdleBackoffMin  │ 1ms        │ First idle wait of the cooperative loop │
//	│ IdleBackoffMax  │ 50ms       │ Longest idle wait of the loop           │
//	└─────────────────┴────────────┴─────────────────────────────────────────┘
//
// # Logging
//
//	┌───────────┬───────────┬────────────────────────────────────────┐
//	│ Field     │ Default   │ Description                            │
//	├───────────┼───────────┼────────────────────────────────────────┤
//	│ LogFormat │ "console" │ "console" or "json"                    │
//	│ LogLevel  │ "debug"   │ debug, info, warn, error               │
//	└───────────┴───────────┴────────────────────────────────────────┘
//
// # Code Generation
//
// The package uses optgen to generate functional option helpers:
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Pool
//
// Generated helpers include:
//
//   - NewConfigurationWithOptions(...ConfigurationOption) - Create with options
//   - NewConfigurationWithOptionsAndDefaults(...ConfigurationOption) - Create with defaults + options
//   - WithServer(Server), WithPool(Pool), etc. - Set nested structs
//   - DebugMap() - Returns map for debug logging (respects debugmap tags)
//
// Defaults come from the `default` struct tags and are applied by
// github.com/creasty/defaults.
//
// # Usage Example
//
//	cfg := config.NewConfigurationWithOptionsAndDefaults(
//	    config.WithPool(*config.NewPoolWithOptionsAndDefaults(
//	        config.WithModel("cooperative"),
//	    )),
//	    config.WithLogLevel("info"),
//	)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Debug Logging
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config

package config

import (
	"github.com/spf13/viper"
)

// Environment variable names understood by FromEnv, all under the
// SCRUB_ prefix:
//
//	SCRUB_MISSING_STRATEGY   mean | median | drop
//	SCRUB_VALIDATE_SCHEMA    bool
//	SCRUB_ALLOW_UNKNOWN      bool
//	SCRUB_BATCH_SIZE         int
//	SCRUB_WORKERS            int
//	SCRUB_LOG_LEVEL          debug | info | warn | error
//	SCRUB_LOG_FILE           path
const envPrefix = "SCRUB"

// FromEnv creates a configuration from environment variables, starting
// from the defaults and overriding any value that is set.
func FromEnv() *Config {
	defaults := NewDefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("missing_strategy", string(defaults.MissingValueStrategy))
	v.SetDefault("validate_schema", defaults.ValidateSchema)
	v.SetDefault("allow_unknown", defaults.AllowUnknownColumns)
	v.SetDefault("batch_size", defaults.BatchSize)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_file", defaults.LogFile)

	return &Config{
		MissingValueStrategy: ParseStrategy(v.GetString("missing_strategy")),
		ValidateSchema:       v.GetBool("validate_schema"),
		AllowUnknownColumns:  v.GetBool("allow_unknown"),
		BatchSize:            v.GetInt("batch_size"),
		Workers:              v.GetInt("workers"),
		LogLevel:             v.GetString("log_level"),
		LogFile:              v.GetString("log_file"),
	}
}

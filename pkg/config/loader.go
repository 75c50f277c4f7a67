package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scrubdata/scrub/pkg/errors"
)

// Load reads a Config from a YAML file. Values start from the defaults,
// so a partial file only overrides the settings it names. ${VAR}
// references are expanded from the environment before parsing, and the
// strategy string is normalized the same way flag and env input is.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is controlled by caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read config file")
	}

	content := os.Expand(string(data), os.Getenv)

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse config YAML")
	}

	cfg.MissingValueStrategy = ParseStrategy(string(cfg.MissingValueStrategy))
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to marshal config YAML")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write config file")
	}
	return nil
}

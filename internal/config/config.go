// Package config holds the CLI configuration for shortnum.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all shortnum configuration.
type Config struct {
	// MetadataPath points at a YAML metadata document. Empty means the
	// dataset embedded in the binary.
	MetadataPath string `yaml:"metadata_path"`

	// CacheCapacity bounds the compiled pattern cache.
	CacheCapacity int `yaml:"cache_capacity"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ValidLevels are the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CacheCapacity: 100,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.CacheCapacity < 1 {
		return fmt.Errorf("cache_capacity must be at least 1, got %d", c.CacheCapacity)
	}

	validLevel := false
	for _, l := range ValidLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}

	return nil
}

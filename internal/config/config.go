// Package config loads and validates the service configuration.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete jls configuration
type Config struct {
	Version    int    `json:"version" mapstructure:"version"`
	SourceRoot string `json:"sourceRoot" mapstructure:"sourceRoot"`

	Index      IndexConfig      `json:"index" mapstructure:"index"`
	Completion CompletionConfig `json:"completion" mapstructure:"completion"`
	Scheduler  SchedulerConfig  `json:"scheduler" mapstructure:"scheduler"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
}

// IndexConfig contains symbol index configuration
type IndexConfig struct {
	// Path is the directory holding the sqlite class catalog, relative
	// to SourceRoot. Empty disables the index.
	Path string `json:"path" mapstructure:"path"`
	// IncludeBuiltins adds the bundled JDK catalog when building the index
	IncludeBuiltins bool `json:"includeBuiltins" mapstructure:"includeBuiltins"`
}

// CompletionConfig contains completion result policy
type CompletionConfig struct {
	// LimitHint is the default cap on completion results when the caller
	// does not supply one
	LimitHint int `json:"limitHint" mapstructure:"limitHint"`
}

// SchedulerConfig contains evicting-scheduler configuration
type SchedulerConfig struct {
	// Workers is the size of the shared worker pool
	Workers int `json:"workers" mapstructure:"workers"`
	// RateLimit bounds task executions per second; 0 disables throttling
	RateLimit float64 `json:"rateLimit" mapstructure:"rateLimit"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    1,
		SourceRoot: ".",
		Index: IndexConfig{
			Path:            ".jls",
			IncludeBuiltins: true,
		},
		Completion: CompletionConfig{
			LimitHint: 50,
		},
		Scheduler: SchedulerConfig{
			Workers:   4,
			RateLimit: 0,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .jls/config.json under root
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("sourceRoot", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".jls"))

	if err := v.ReadInConfig(); err != nil {
		// Missing config means defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			cfg := DefaultConfig()
			cfg.SourceRoot = root
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.SourceRoot == "." || cfg.SourceRoot == "" {
		cfg.SourceRoot = root
	}

	return cfg, nil
}

// Save writes the configuration to .jls/config.json under root
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".jls")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Scheduler.Workers < 1 {
		return &ConfigError{Field: "scheduler.workers", Message: "must be at least 1"}
	}
	if c.Scheduler.RateLimit < 0 {
		return &ConfigError{Field: "scheduler.rateLimit", Message: "must not be negative"}
	}
	if c.Completion.LimitHint < 0 {
		return &ConfigError{Field: "completion.limitHint", Message: "must not be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

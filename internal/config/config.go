// Package config loads focus configuration from .focus/config.{toml,yaml,json}
// with FOCUS_* environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config represents the complete focus configuration
type Config struct {
	Version int `json:"version" mapstructure:"version" toml:"version"`

	// ProjectRoot anchors relative paths and relative-path display.
	// Defaults to the current working directory.
	ProjectRoot string `json:"projectRoot" mapstructure:"projectRoot" toml:"projectRoot"`

	// MaxTrackedFiles bounds the number of cached summaries; the active
	// file is exempt from eviction.
	MaxTrackedFiles int `json:"maxTrackedFiles" mapstructure:"maxTrackedFiles" toml:"maxTrackedFiles"`

	// MaxDocLines bounds how many doc-comment lines extractors retain per
	// declaration.
	MaxDocLines int `json:"maxDocLines" mapstructure:"maxDocLines" toml:"maxDocLines"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging" toml:"logging"`
	Metrics MetricsConfig `json:"metrics" mapstructure:"metrics" toml:"metrics"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level" mapstructure:"level" toml:"level"`
	File       string `json:"file" mapstructure:"file" toml:"file"`
	MaxSize    string `json:"maxSize" mapstructure:"maxSize" toml:"maxSize"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxBackups" toml:"maxBackups"`
}

// MetricsConfig contains the operation-metrics store configuration
type MetricsConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled" toml:"enabled"`
}

// DefaultConfig returns the default configuration rooted at projectRoot
func DefaultConfig(projectRoot string) *Config {
	return &Config{
		Version:         1,
		ProjectRoot:     projectRoot,
		MaxTrackedFiles: 50,
		MaxDocLines:     5,
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSize:    "10MB",
			MaxBackups: 3,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// ConfigDir returns the focus configuration directory for a project root
func ConfigDir(projectRoot string) string {
	return filepath.Join(projectRoot, ".focus")
}

// Load reads configuration from .focus/config.{toml,yaml,json} under
// projectRoot, applying defaults and FOCUS_* environment overrides
// (e.g. FOCUS_MAXTRACKEDFILES=100). A missing config file is not an error;
// defaults are returned.
func Load(projectRoot string) (*Config, error) {
	if projectRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		projectRoot = cwd
	}

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(ConfigDir(projectRoot))
	v.SetEnvPrefix("FOCUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig(projectRoot)
	v.SetDefault("version", defaults.Version)
	v.SetDefault("projectRoot", defaults.ProjectRoot)
	v.SetDefault("maxTrackedFiles", defaults.MaxTrackedFiles)
	v.SetDefault("maxDocLines", defaults.MaxDocLines)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.maxSize", defaults.Logging.MaxSize)
	v.SetDefault("logging.maxBackups", defaults.Logging.MaxBackups)
	v.SetDefault("metrics.enabled", defaults.Metrics.Enabled)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.ProjectRoot == "" {
		cfg.ProjectRoot = projectRoot
	}
	if !filepath.IsAbs(cfg.ProjectRoot) {
		cfg.ProjectRoot = filepath.Join(projectRoot, cfg.ProjectRoot)
	}
	if cfg.MaxTrackedFiles <= 0 {
		cfg.MaxTrackedFiles = defaults.MaxTrackedFiles
	}
	if cfg.MaxDocLines <= 0 {
		cfg.MaxDocLines = defaults.MaxDocLines
	}

	return &cfg, nil
}

// WriteDefault writes the default configuration to .focus/config.toml under
// projectRoot, creating the directory as needed. Returns the config path.
func WriteDefault(projectRoot string) (string, error) {
	dir := ConfigDir(projectRoot)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	cfg := DefaultConfig(projectRoot)
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal default config: %w", err)
	}

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

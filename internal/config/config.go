// Package config holds the host configuration loaded from
// ~/.forge/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all codeforge configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Extensions ExtensionsConfig `yaml:"extensions"`
	Settings   SettingsConfig   `yaml:"settings"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ExtensionsConfig configures the extension subsystem.
type ExtensionsConfig struct {
	// GlobalDir is the global extensions directory. Empty means
	// ~/.forge/extensions.
	GlobalDir string `yaml:"global_dir"`

	// ProjectDirName is the per-project extensions directory relative to
	// each project root.
	ProjectDirName string `yaml:"project_dir_name"`

	// WatchDebounce is the quiet period before a changed directory
	// reloads, as a duration string ("1s").
	WatchDebounce string `yaml:"watch_debounce"`
}

// SettingsConfig configures the settings store.
type SettingsConfig struct {
	// Path to the settings file. Empty means ~/.forge/settings.yaml.
	Path string `yaml:"path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Name:    "codeforge",
		Version: "1.0.0",

		Extensions: ExtensionsConfig{
			ProjectDirName: ".forge/extensions",
			WatchDebounce:  "1s",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.forge/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".forge", "config.yaml")
	}
	return filepath.Join(home, ".forge", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the configuration for values Load cannot default away.
func (c *Config) Validate() error {
	if _, err := c.Debounce(); err != nil {
		return fmt.Errorf("invalid extensions.watch_debounce: %w", err)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid logging.format: %s (valid: console, json)", c.Logging.Format)
	}
	return nil
}

// GlobalExtensionsDir resolves the global extensions directory, defaulting
// to ~/.forge/extensions.
func (c *Config) GlobalExtensionsDir() string {
	if c.Extensions.GlobalDir != "" {
		return c.Extensions.GlobalDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".forge", "extensions")
	}
	return filepath.Join(home, ".forge", "extensions")
}

// SettingsPath resolves the settings file location, defaulting to
// ~/.forge/settings.yaml.
func (c *Config) SettingsPath() string {
	if c.Settings.Path != "" {
		return c.Settings.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".forge", "settings.yaml")
	}
	return filepath.Join(home, ".forge", "settings.yaml")
}

// Debounce parses the watch debounce duration.
func (c *Config) Debounce() (time.Duration, error) {
	if c.Extensions.WatchDebounce == "" {
		return time.Second, nil
	}
	return time.ParseDuration(c.Extensions.WatchDebounce)
}

// applyEnvOverrides lets environment variables win over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FORGE_EXTENSIONS_DIR"); v != "" {
		c.Extensions.GlobalDir = v
	}
	if v := os.Getenv("FORGE_SETTINGS_PATH"); v != "" {
		c.Settings.Path = v
	}
	if v := os.Getenv("FORGE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FORGE_WATCH_DEBOUNCE"); v != "" {
		c.Extensions.WatchDebounce = v
	}
}

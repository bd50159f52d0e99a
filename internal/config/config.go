// Package config provides configuration loading for the application.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/basket-insights/internal/common"
	"github.com/Veraticus/basket-insights/internal/export"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyBackendURL     = "backend.url"
	KeyBackendTimeout = "backend.timeout"
	KeyExportDir      = "export.dir"
	KeyExportFormat   = "export.format"
	KeyUITheme        = "ui.theme"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyLogFile        = "logging.file"
)

// Theme names accepted by ui.theme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Config is the resolved application configuration.
type Config struct {
	BackendURL     string
	ExportDir      string
	ExportFormat   export.Format
	Theme          string
	LogLevel       string
	LogFormat      string
	LogFile        string
	BackendTimeout time.Duration
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackendURL, "http://localhost:5000")
	v.SetDefault(KeyBackendTimeout, 30*time.Second)
	v.SetDefault(KeyExportDir, ".")
	v.SetDefault(KeyExportFormat, string(export.FormatCSV))
	v.SetDefault(KeyUITheme, ThemeLight)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "")
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	format, err := export.ParseFormat(v.GetString(KeyExportFormat))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	cfg := &Config{
		BackendURL:     strings.TrimSpace(v.GetString(KeyBackendURL)),
		BackendTimeout: v.GetDuration(KeyBackendTimeout),
		ExportDir:      ExpandPath(v.GetString(KeyExportDir)),
		ExportFormat:   format,
		Theme:          strings.ToLower(v.GetString(KeyUITheme)),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		LogFile:        ExpandPath(v.GetString(KeyLogFile)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyBackendURL)
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an http(s) URL, got %q", common.ErrInvalidConfig, KeyBackendURL, c.BackendURL)
	}
	if c.BackendTimeout < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyBackendTimeout)
	}
	if c.Theme != ThemeLight && c.Theme != ThemeDark {
		return fmt.Errorf("%w: %s must be %q or %q", common.ErrInvalidConfig, KeyUITheme, ThemeLight, ThemeDark)
	}
	return nil
}

// Dark reports whether the configured theme is dark.
func (c *Config) Dark() bool {
	return c.Theme == ThemeDark
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}

// DefaultDir returns the directory searched for config.yaml.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "basket"), nil
}

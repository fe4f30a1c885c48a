package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted by the binaries when
// no -config flag is given. The binary owns the default, not this package.
const EnvConfigPath = "ORDERAPP_CONFIG"

// Load reads, parses, and validates a configuration file, applying defaults
// for absent optional fields.
func Load(path string) (FileConfig, error) {
	var cfg FileConfig

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304 - config path comes from the operator
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ResolvePath returns the explicit path when non-empty, otherwise the value
// of ORDERAPP_CONFIG. An error is returned when neither is set so the caller
// never silently assumes a location.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("no config path: pass -config or set %s", EnvConfigPath)
}

func applyDefaults(cfg *FileConfig) {
	if cfg.Sheets.Endpoint == "" {
		cfg.Sheets.Endpoint = DefaultEndpoint
	}
	if cfg.Sheets.Timeout == "" {
		cfg.Sheets.Timeout = DefaultTimeout.String()
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = DefaultListenAddr
	}
}

// Validate checks the loaded configuration for completeness and coherence.
func Validate(cfg *FileConfig) error {
	if cfg.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("sheets.spreadsheet_id is required")
	}
	if cfg.Sheets.CredentialsFile == "" {
		return fmt.Errorf("sheets.credentials_file is required")
	}
	if _, err := time.ParseDuration(cfg.Sheets.Timeout); err != nil {
		return fmt.Errorf("sheets.timeout %q: %w", cfg.Sheets.Timeout, err)
	}
	return nil
}

// RequestTimeout returns the parsed sheets timeout. Validate has already
// checked the format; a zero duration falls back to the default.
func (c FileConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Sheets.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

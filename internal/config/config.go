// Package config loads and validates the application's yaml configuration.
package config

import "time"

// SheetsSection configures the remote spreadsheet store.
type SheetsSection struct {
	// SpreadsheetID is the id of the backing spreadsheet.
	SpreadsheetID string `yaml:"spreadsheet_id"`

	// CredentialsFile points at a Google service-account JSON key
	// (client_email, private_key, token_uri).
	CredentialsFile string `yaml:"credentials_file"`

	// Endpoint overrides the Sheets API base URL. Tests point it at a local
	// fake; production leaves it empty for the default.
	Endpoint string `yaml:"endpoint"`

	// TokenEndpoint overrides the OAuth token URI from the credentials file.
	TokenEndpoint string `yaml:"token_endpoint"`

	// Timeout bounds every remote call. Go duration format ("30s", "1m").
	Timeout string `yaml:"timeout"`
}

// ServerSection configures the HTTP API binary.
type ServerSection struct {
	ListenAddr string `yaml:"listen_addr"`
}

// JournalSection configures the durable archive journal. When DSN is empty
// the application falls back to the in-memory journal.
type JournalSection struct {
	DSN string `yaml:"dsn"`
}

// FileConfig is the root of the configuration file.
//
// The format is versioned to allow evolution without breaking existing files.
type FileConfig struct {
	Version int `yaml:"version,omitempty"`

	Sheets  SheetsSection  `yaml:"sheets"`
	Server  ServerSection  `yaml:"server"`
	Journal JournalSection `yaml:"journal"`
}

// Defaults applied by Load when fields are absent.
const (
	DefaultEndpoint   = "https://sheets.googleapis.com"
	DefaultListenAddr = ":8080"
	DefaultTimeout    = 30 * time.Second
)

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abraham1744/amuthamorderapp/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orderapp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
version: 1
sheets:
  spreadsheet_id: sheet-123
  credentials_file: service-account.json
  endpoint: http://127.0.0.1:9999
  timeout: 5s
server:
  listen_addr: ":9090"
journal:
  dsn: "user:pass@tcp(127.0.0.1:3306)/orders?parseTime=True"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sheet-123", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Sheets.Endpoint)
	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.NotEmpty(t, cfg.Journal.DSN)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
sheets:
  spreadsheet_id: sheet-123
  credentials_file: service-account.json
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEndpoint, cfg.Sheets.Endpoint)
	assert.Equal(t, config.DefaultListenAddr, cfg.Server.ListenAddr)
	assert.Equal(t, config.DefaultTimeout, cfg.RequestTimeout())
	assert.Empty(t, cfg.Journal.DSN)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"missing spreadsheet id", "sheets:\n  credentials_file: k.json\n"},
		{"missing credentials", "sheets:\n  spreadsheet_id: s\n"},
		{"bad timeout", "sheets:\n  spreadsheet_id: s\n  credentials_file: k.json\n  timeout: soon\n"},
		{"not yaml", "{{{{"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestResolvePath(t *testing.T) {
	got, err := config.ResolvePath("explicit.yaml")
	require.NoError(t, err)
	assert.Equal(t, "explicit.yaml", got)

	t.Setenv(config.EnvConfigPath, "from-env.yaml")
	got, err = config.ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, "from-env.yaml", got)

	t.Setenv(config.EnvConfigPath, "")
	_, err = config.ResolvePath("")
	assert.Error(t, err)
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thanhnp/psbt-apis/internal/address"
	"github.com/thanhnp/psbt-apis/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Equal(t, address.Bitcoin.Name, cfg.Network().Name)
	require.Equal(t, 3069, cfg.Server.Port)
	require.False(t, cfg.History.Enabled)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  host: 0.0.0.0
  request_timeout: 5s
pebble:
  path: /var/lib/psbt
history:
  enabled: true
  list_limit: 10
default_network: testnet
log_level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	require.Equal(t, "/var/lib/psbt", cfg.Pebble.Path)
	require.True(t, cfg.History.Enabled)
	require.Equal(t, 10, cfg.History.ListLimit)
	require.Equal(t, address.Testnet.Name, cfg.Network().Name)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "default_network: testnet\n")
	t.Setenv("SERVER_PORT", "8088")
	t.Setenv("SERVER_HOST", "10.0.0.1")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	t.Setenv("PEBBLE_PATH", "/tmp/pebble")
	t.Setenv("HISTORY_ENABLED", "1")
	t.Setenv("HISTORY_LIST_LIMIT", "7")
	t.Setenv("DEFAULT_NETWORK", "regtest")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 8088, cfg.Server.Port)
	require.Equal(t, "10.0.0.1", cfg.Server.Host)
	require.Equal(t, 2*time.Second, cfg.Server.RequestTimeout)
	require.Equal(t, "/tmp/pebble", cfg.Pebble.Path)
	require.True(t, cfg.History.Enabled)
	require.Equal(t, 7, cfg.History.ListLimit)
	require.Equal(t, address.Regtest.Name, cfg.Network().Name)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown network", "default_network: dogecoin\n"},
		{"unknown log level", "log_level: loud\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"history without path", "history:\n  enabled: true\npebble:\n  path: \"\"\n"},
		{"malformed yaml", "server: [\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, test.content))
			require.Error(t, err)
		})
	}
}

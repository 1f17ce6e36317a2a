package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "health.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 57600, cfg.Serial.BaudRate)
	assert.Equal(t, 100*time.Millisecond, cfg.ReadTimeout())
	assert.Equal(t, 10*time.Second, cfg.DiscoveryTimeout())
	assert.Equal(t, "> ", cfg.Prompt)
	assert.ErrorIs(t, cfg.Validate(), ErrNoPort)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
serial:
  port: /dev/ttyACM0
discovery_timeout_ms: 2500
log_level: debug
protocol_log: /tmp/session.hlog
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, DefaultBaudRate, cfg.Serial.BaudRate)
	assert.Equal(t, DefaultReadTimeoutMs, cfg.Serial.TimeoutMs)
	assert.Equal(t, 2500*time.Millisecond, cfg.DiscoveryTimeout())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/session.hlog", cfg.ProtocolLog)
	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "serial: [not, a, map]\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"no port", func(c *Config) { c.Serial.Port = "" }, true},
		{"zero baud", func(c *Config) { c.Serial.BaudRate = 0 }, true},
		{"negative timeout", func(c *Config) { c.Serial.TimeoutMs = -1 }, true},
		{"zero discovery", func(c *Config) { c.DiscoveryTimeoutMs = 0 }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Serial.Port = "/dev/ttyUSB0"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

// Package config loads the health client's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultBaudRate           = 57600
	DefaultReadTimeoutMs      = 100
	DefaultDiscoveryTimeoutMs = 10000
	DefaultLogLevel           = "info"
	DefaultPrompt             = "> "
)

// ErrNoPort is returned by Validate when no serial port was configured.
var ErrNoPort = errors.New("config: serial port is required")

// Config holds the health client configuration.
type Config struct {
	Serial             SerialConfig `yaml:"serial"`
	DiscoveryTimeoutMs int          `yaml:"discovery_timeout_ms"`
	LogLevel           string       `yaml:"log_level"`
	ProtocolLog        string       `yaml:"protocol_log"`
	Prompt             string       `yaml:"prompt"`
}

// SerialConfig describes the modem's serial line.
type SerialConfig struct {
	Port      string `yaml:"port"`
	BaudRate  int    `yaml:"baud_rate"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Default returns a configuration with every default applied and no port.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			BaudRate:  DefaultBaudRate,
			TimeoutMs: DefaultReadTimeoutMs,
		},
		DiscoveryTimeoutMs: DefaultDiscoveryTimeoutMs,
		LogLevel:           DefaultLogLevel,
		Prompt:             DefaultPrompt,
	}
}

// Load reads path over the defaults. An empty path yields Default().
// Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration without changing it.
func (c *Config) Validate() error {
	if c.Serial.Port == "" {
		return ErrNoPort
	}
	if c.Serial.BaudRate <= 0 {
		return fmt.Errorf("serial.baud_rate must be positive, got %d", c.Serial.BaudRate)
	}
	if c.Serial.TimeoutMs <= 0 {
		return fmt.Errorf("serial.timeout_ms must be positive, got %d", c.Serial.TimeoutMs)
	}
	if c.DiscoveryTimeoutMs <= 0 {
		return fmt.Errorf("discovery_timeout_ms must be positive, got %d", c.DiscoveryTimeoutMs)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ReadTimeout returns the per-read serial timeout.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Serial.TimeoutMs) * time.Millisecond
}

// DiscoveryTimeout returns how long to wait for the modem to map models.
func (c *Config) DiscoveryTimeout() time.Duration {
	return time.Duration(c.DiscoveryTimeoutMs) * time.Millisecond
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

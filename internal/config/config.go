package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/thanhnp/psbt-apis/internal/address"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Pebble  PebbleConfig  `yaml:"pebble"`
	History HistoryConfig `yaml:"history"`
	// DefaultNetwork is used when a request does not name a network
	DefaultNetwork string `yaml:"default_network"`
	LogLevel       string `yaml:"log_level"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Port           int           `yaml:"port"`
	Host           string        `yaml:"host"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// PebbleConfig represents the Pebble database configuration
type PebbleConfig struct {
	Path string `yaml:"path"`
}

// HistoryConfig controls whether produced summaries are kept
type HistoryConfig struct {
	Enabled   bool `yaml:"enabled"`
	ListLimit int  `yaml:"list_limit"` // max summaries returned by a list call
}

// Default returns the configuration used when no file or env overrides exist
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           3069,
			Host:           "127.0.0.1",
			RequestTimeout: 30 * time.Second,
		},
		Pebble: PebbleConfig{
			Path: "./data/pebble",
		},
		History: HistoryConfig{
			ListLimit: 100,
		},
		DefaultNetwork: address.Bitcoin.Name,
		LogLevel:       "info",
	}
}

// Load loads configuration from a YAML file and environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	// Load from YAML file if it exists
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	cfg.loadEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be fixed up silently
func (c *Config) Validate() error {
	if _, err := address.ParseNetwork(c.DefaultNetwork); err != nil {
		return fmt.Errorf("invalid default_network: %w", err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.History.Enabled && c.Pebble.Path == "" {
		return fmt.Errorf("history enabled but pebble path is empty")
	}
	return nil
}

// Network returns the parsed default network
func (c *Config) Network() address.Network {
	net, err := address.ParseNetwork(c.DefaultNetwork)
	if err != nil {
		return address.Bitcoin
	}
	return net
}

func (c *Config) loadEnv() {
	// Server config
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if timeout := os.Getenv("REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.RequestTimeout = d
		}
	}

	// Pebble config
	if path := os.Getenv("PEBBLE_PATH"); path != "" {
		c.Pebble.Path = path
	}

	// History config
	if enabled := os.Getenv("HISTORY_ENABLED"); enabled != "" {
		c.History.Enabled = enabled == "true" || enabled == "1"
	}
	if limit := os.Getenv("HISTORY_LIST_LIMIT"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			c.History.ListLimit = l
		}
	}

	if network := os.Getenv("DEFAULT_NETWORK"); network != "" {
		c.DefaultNetwork = network
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// Package config loads engine configuration from environment variables,
// with an optional YAML file override.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all daemon configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LogConfig       `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Watch     WatchConfig     `yaml:"watch"`
	Dispatch  DispatchConfig  `yaml:"dispatch"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8750" yaml:"port"`
	Host string `envconfig:"HOST" default:"0.0.0.0" yaml:"host"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100" yaml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200" yaml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" yaml:"enabled"`
}

// WatchConfig holds change monitor configuration.
type WatchConfig struct {
	MaxMonitors int `envconfig:"WATCH_MAX_MONITORS" default:"64" yaml:"max_monitors"`
}

// DispatchConfig holds session configuration.
type DispatchConfig struct {
	Root string `envconfig:"DISPATCH_ROOT" default:"" yaml:"root"`
}

// Load reads configuration from the environment. When path is non-empty
// the YAML file there is applied on top as an override.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns the
// defaults.
func LoadOrDefault() *Config {
	cfg, err := Load("")
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Port: "8750", Host: "0.0.0.0"},
		Logging:   LogConfig{Level: "info"},
		RateLimit: RateLimitConfig{RequestsPerSecond: 100, Burst: 200, Enabled: true},
		Watch:     WatchConfig{MaxMonitors: 64},
	}
}

// Addr returns the server's listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

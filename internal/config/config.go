// Package config loads sessiondeck configuration from a YAML file,
// overlaying values on top of built-in defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Client ClientConfig `yaml:"client"`
}

// ServerConfig configures the sessiondeck-server binary.
type ServerConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	DBPath string `yaml:"db_path"`
}

// ClientConfig configures the TUI client.
type ClientConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	// Retry is the fixed redial interval after a stream fault. Zero
	// disables client-driven reconnection.
	Retry time.Duration `yaml:"retry"`
	// ShowSubmitErrors controls whether failed message/event submissions
	// appear in the event log.
	ShowSubmitErrors bool `yaml:"show_submit_errors"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:   "127.0.0.1",
			Port:   8080,
			DBPath: "sessions.db",
		},
		Client: ClientConfig{
			URL:              "http://127.0.0.1:8080",
			Retry:            3 * time.Second,
			ShowSubmitErrors: true,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but treats a missing file as "use the
// defaults" instead of an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return cfg, err
}

// Addr returns the listen address for the server binary.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

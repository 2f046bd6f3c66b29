package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Backend  BackendConfig `yaml:"backend"`
	Refresh  RefreshConfig `yaml:"refresh"`
	StateDir string        `yaml:"state_dir"`

	// ConfigPath is the path to the config file (not serialized)
	ConfigPath string `yaml:"-"`
}

// ServerConfig represents the local status server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// BackendConfig represents the remote script endpoint configuration
type BackendConfig struct {
	Endpoint string `yaml:"endpoint"`

	// Transport strategies in fallback order: direct, callback, xhr
	TransportOrder []string `yaml:"transport_order"`

	DirectTimeout   time.Duration `yaml:"direct_timeout"`
	CallbackTimeout time.Duration `yaml:"callback_timeout"`
	XHRTimeout      time.Duration `yaml:"xhr_timeout"`
}

// RefreshConfig represents periodic screen refresh intervals
type RefreshConfig struct {
	Dashboard time.Duration `yaml:"dashboard"`
	Laporan   time.Duration `yaml:"laporan"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8089,
			Host: "127.0.0.1",
		},
		Backend: BackendConfig{
			Endpoint:        "https://script.google.com/macros/s/CHANGE_ME/exec",
			TransportOrder:  []string{"direct", "callback", "xhr"},
			DirectTimeout:   10 * time.Second,
			CallbackTimeout: 30 * time.Second,
			XHRTimeout:      30 * time.Second,
		},
		Refresh: RefreshConfig{
			Dashboard: 5 * time.Minute,
			// The report screen refreshes only on demand
			Laporan: 0,
		},
		StateDir: "state",
	}
}

// Load loads configuration from the config file
func Load() (*Config, error) {
	// Try to find config file in common locations
	configPaths := []string{
		"config.yaml",
		"configs/config.yaml",
		"/etc/stok-obat/config.yaml",
	}

	var data []byte
	var err error
	var loadedPath string

	for _, path := range configPaths {
		data, err = os.ReadFile(path)
		if err == nil {
			loadedPath = path
			break
		}
	}

	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.ConfigPath = loadedPath
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides configuration from environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv("STOKOBAT_ENDPOINT"); v != "" {
		c.Backend.Endpoint = v
	}
	if v := os.Getenv("STOKOBAT_STATE_DIR"); v != "" {
		c.StateDir = v
	}
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

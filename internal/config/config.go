package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the wikimirror CLI.
type Config struct {
	Manifest string        `yaml:"manifest"`
	BaseURL  string        `yaml:"base_url"`
	Images   string        `yaml:"images"`
	Descs    string        `yaml:"descs"`
	ErrorLog string        `yaml:"error_log"`
	Workers  int           `yaml:"workers"`
	Timeout  time.Duration `yaml:"timeout"`
	Progress bool          `yaml:"progress"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Manifest: "image_list.txt",
		Images:   "images",
		Descs:    "descs",
		ErrorLog: "error_log.txt",
		Workers:  10,
		Timeout:  30 * time.Second,
	}
}

// yamlConfig is used for YAML unmarshaling with string durations.
type yamlConfig struct {
	Manifest string `yaml:"manifest"`
	BaseURL  string `yaml:"base_url"`
	Images   string `yaml:"images"`
	Descs    string `yaml:"descs"`
	ErrorLog string `yaml:"error_log"`
	Workers  int    `yaml:"workers"`
	Timeout  string `yaml:"timeout"`
	Progress bool   `yaml:"progress"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.Manifest != "" {
		cfg.Manifest = yc.Manifest
	}
	if yc.BaseURL != "" {
		cfg.BaseURL = yc.BaseURL
	}
	if yc.Images != "" {
		cfg.Images = yc.Images
	}
	if yc.Descs != "" {
		cfg.Descs = yc.Descs
	}
	if yc.ErrorLog != "" {
		cfg.ErrorLog = yc.ErrorLog
	}
	if yc.Workers != 0 {
		cfg.Workers = yc.Workers
	}
	if yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	cfg.Progress = yc.Progress

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the WIKIMIRROR_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("WIKIMIRROR_MANIFEST"); v != "" {
		c.Manifest = v
	}
	if v := os.Getenv("WIKIMIRROR_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("WIKIMIRROR_IMAGES"); v != "" {
		c.Images = v
	}
	if v := os.Getenv("WIKIMIRROR_DESCS"); v != "" {
		c.Descs = v
	}
	if v := os.Getenv("WIKIMIRROR_ERROR_LOG"); v != "" {
		c.ErrorLog = v
	}
	if v := os.Getenv("WIKIMIRROR_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse WIKIMIRROR_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("WIKIMIRROR_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse WIKIMIRROR_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("WIKIMIRROR_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Manifest == "" {
		return errors.New("config: manifest is required")
	}
	if c.BaseURL == "" {
		return errors.New("config: base URL is required")
	}
	if c.Images == "" {
		return errors.New("config: images destination is required")
	}
	if c.Descs == "" {
		return errors.New("config: descs destination is required")
	}
	if c.ErrorLog == "" {
		return errors.New("config: error log path is required")
	}
	if c.Workers <= 0 {
		return errors.New("config: workers must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.Manifest != "" {
		c.Manifest = override.Manifest
	}
	if override.BaseURL != "" {
		c.BaseURL = override.BaseURL
	}
	if override.Images != "" {
		c.Images = override.Images
	}
	if override.Descs != "" {
		c.Descs = override.Descs
	}
	if override.ErrorLog != "" {
		c.ErrorLog = override.ErrorLog
	}
	if override.Workers != 0 {
		c.Workers = override.Workers
	}
	if override.Timeout != 0 {
		c.Timeout = override.Timeout
	}
	if override.Progress {
		c.Progress = override.Progress
	}
	return c
}

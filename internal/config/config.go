package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines configuration for the terrapull CLI.
type Config struct {
	BaseURL     string        `yaml:"base_url"`
	OutputDir   string        `yaml:"output_dir"`
	ZoomRange   string        `yaml:"zoom_range"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
	Insecure    bool          `yaml:"insecure"`
	Progress    bool          `yaml:"progress"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		BaseURL:     "https://s3.amazonaws.com/elevation-tiles-prod/terrarium/{z}/{x}/{y}.png",
		OutputDir:   "terrain_tiles",
		ZoomRange:   "10,15",
		Concurrency: 10,
		Timeout:     30 * time.Second,
		Insecure:    true,
	}
}

// yamlConfig is used for YAML unmarshaling with string durations.
type yamlConfig struct {
	BaseURL     string `yaml:"base_url"`
	OutputDir   string `yaml:"output_dir"`
	ZoomRange   string `yaml:"zoom_range"`
	Concurrency int    `yaml:"concurrency"`
	Timeout     string `yaml:"timeout"`
	Insecure    *bool  `yaml:"insecure"`
	Progress    bool   `yaml:"progress"`
}

// LoadFromFile loads configuration from a YAML file on top of defaults.
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

	if yc.BaseURL != "" {
		cfg.BaseURL = yc.BaseURL
	}
	if yc.OutputDir != "" {
		cfg.OutputDir = yc.OutputDir
	}
	if yc.ZoomRange != "" {
		cfg.ZoomRange = yc.ZoomRange
	}
	if yc.Concurrency != 0 {
		cfg.Concurrency = yc.Concurrency
	}
	if yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if yc.Insecure != nil {
		cfg.Insecure = *yc.Insecure
	}
	cfg.Progress = yc.Progress

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the TERRAPULL_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("TERRAPULL_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("TERRAPULL_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("TERRAPULL_ZOOM_RANGE"); v != "" {
		c.ZoomRange = v
	}
	if v := os.Getenv("TERRAPULL_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse TERRAPULL_CONCURRENCY: %w", err)
		}
		c.Concurrency = n
	}
	if v := os.Getenv("TERRAPULL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse TERRAPULL_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("TERRAPULL_INSECURE"); v != "" {
		c.Insecure = v == "true" || v == "1"
	}
	if v := os.Getenv("TERRAPULL_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("config: base_url is required")
	}
	if c.OutputDir == "" {
		return errors.New("config: output_dir is required")
	}
	if c.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.BaseURL != "" {
		c.BaseURL = override.BaseURL
	}
	if override.OutputDir != "" {
		c.OutputDir = override.OutputDir
	}
	if override.ZoomRange != "" {
		c.ZoomRange = override.ZoomRange
	}
	if override.Concurrency != 0 {
		c.Concurrency = override.Concurrency
	}
	if override.Timeout != 0 {
		c.Timeout = override.Timeout
	}
	if override.Progress {
		c.Progress = override.Progress
	}
	return c
}

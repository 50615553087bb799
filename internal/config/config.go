// Package config loads the server configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "10s" parse directly.
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds the full server configuration.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Auth     AuthConfig    `yaml:"auth"`
	Storage  StorageConfig `yaml:"storage"`
	LogLevel string        `yaml:"log_level"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	RateLimitPerSec int      `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
}

// AuthConfig controls JWT validation.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// StorageConfig selects and configures the plant store backend.
type StorageConfig struct {
	Driver   string `yaml:"driver"` // dynamo|memory
	Table    string `yaml:"table"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"` // optional, for DynamoDB Local
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(15 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
			AllowedOrigins:  []string{"*"},
			RateLimitPerSec: 50,
			RateLimitBurst:  100,
		},
		Storage: StorageConfig{
			Driver: "memory",
			Table:  "Plants",
			Region: "us-east-1",
		},
		LogLevel: "info",
	}
}

// Load reads the YAML configuration at path, then applies environment
// overrides. A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PLANT_TRACKER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PLANT_TRACKER_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("PLANT_TRACKER_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("PLANT_TRACKER_DYNAMO_TABLE"); v != "" {
		c.Storage.Table = v
	}
	if v := os.Getenv("PLANT_TRACKER_DYNAMO_REGION"); v != "" {
		c.Storage.Region = v
	}
	if v := os.Getenv("PLANT_TRACKER_DYNAMO_ENDPOINT"); v != "" {
		c.Storage.Endpoint = v
	}
	if v := os.Getenv("PLANT_TRACKER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PLANT_TRACKER_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Server.RateLimitPerSec = n
		}
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case "dynamo", "memory":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (set PLANT_TRACKER_JWT_SECRET)")
	}
	if c.Storage.Driver == "dynamo" && c.Storage.Table == "" {
		return fmt.Errorf("storage.table is required for the dynamo driver")
	}
	return nil
}

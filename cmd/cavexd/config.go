// CLAUDE:SUMMARY YAML configuration for the cavexd service with defaults and validation.
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/cavex/measure"
)

// Config holds the full cavexd configuration.
type Config struct {
	Listen       string `yaml:"listen"`
	DBPath       string `yaml:"db_path"`
	MaxFileMB    int    `yaml:"max_file_mb"`
	BatchWorkers int    `yaml:"batch_workers"`
	LogLevel     string `yaml:"log_level"`

	// APIKeyHash is a bcrypt hash of the API key clients must present as
	// a Bearer token. Empty disables authentication.
	APIKeyHash string `yaml:"api_key_hash"`

	// MCPTransport selects an alternate serving mode: "stdio" runs the MCP
	// server over stdin/stdout instead of HTTP. Empty means HTTP.
	MCPTransport string `yaml:"mcp_transport"`

	Extraction measure.Config  `yaml:"extraction"`
	Retention  RetentionConfig `yaml:"retention"`
}

// RetentionConfig controls observability table cleanup, in days.
// Zero disables cleanup for that table.
type RetentionConfig struct {
	HTTPLogsDays   int `yaml:"http_logs_days"`
	EventsDays     int `yaml:"events_days"`
	HeartbeatsDays int `yaml:"heartbeats_days"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Listen:       ":8086",
		DBPath:       "cavex.db",
		MaxFileMB:    32,
		BatchWorkers: measure.DefaultBatchWorkers,
		LogLevel:     "info",
		Retention: RetentionConfig{
			HTTPLogsDays:   30,
			EventsDays:     90,
			HeartbeatsDays: 7,
		},
	}
}

// LoadConfig reads and parses a YAML config file. Returns DefaultConfig merged with the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.MaxFileMB <= 0 {
		return fmt.Errorf("max_file_mb must be > 0")
	}
	if c.BatchWorkers <= 0 {
		return fmt.Errorf("batch_workers must be > 0")
	}
	switch c.MCPTransport {
	case "", "stdio":
	default:
		return fmt.Errorf("unsupported mcp_transport %q (use stdio or leave empty)", c.MCPTransport)
	}
	return nil
}

// MaxFileBytes returns max file size in bytes.
func (c *Config) MaxFileBytes() int64 { return int64(c.MaxFileMB) * 1024 * 1024 }

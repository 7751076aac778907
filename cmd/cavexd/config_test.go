package main

import (
	"os"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.MaxFileBytes() != 32*1024*1024 {
		t.Errorf("MaxFileBytes = %d", cfg.MaxFileBytes())
	}
}

func TestLoadConfig(t *testing.T) {
	yaml := `
listen: ":9191"
db_path: "/tmp/cavex_test.db"
max_file_mb: 16
batch_workers: 8
log_level: "debug"
extraction:
  y_tolerance: 3.5
  strict: true
retention:
  http_logs_days: 14
`
	f, err := os.CreateTemp("", "cavexd_config_*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	f.WriteString(yaml)
	f.Close()

	cfg, err := LoadConfig(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listen != ":9191" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.MaxFileMB != 16 || cfg.BatchWorkers != 8 {
		t.Errorf("MaxFileMB = %d, BatchWorkers = %d", cfg.MaxFileMB, cfg.BatchWorkers)
	}
	if cfg.Extraction.YTolerance != 3.5 || !cfg.Extraction.Strict {
		t.Errorf("Extraction = %+v", cfg.Extraction)
	}
	if cfg.Retention.HTTPLogsDays != 14 {
		t.Errorf("Retention = %+v", cfg.Retention)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Retention.EventsDays != 90 {
		t.Errorf("EventsDays = %d, want default 90", cfg.Retention.EventsDays)
	}
}

func TestValidate_BadValues(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.DBPath = "" },
		func(c *Config) { c.MaxFileMB = 0 },
		func(c *Config) { c.BatchWorkers = -1 },
		func(c *Config) { c.MCPTransport = "quic" },
	}
	for i, mutate := range cases {
		cfg := DefaultConfig()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("LoadConfig = %+v, want %+v", cfg, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yml")); err != nil {
		t.Errorf("config.yml was not created: %v", err)
	}

	// Second load reads the file that was just written.
	again, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if *again != *cfg {
		t.Errorf("second LoadConfig = %+v, want %+v", again, cfg)
	}
}

func TestLoadConfigPartialFile(t *testing.T) {
	dir := t.TempDir()
	content := "order_file: custom.xlsx\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OrderFile != "custom.xlsx" {
		t.Errorf("OrderFile = %q, want custom.xlsx", cfg.OrderFile)
	}
	// Unset keys keep their defaults.
	if cfg.WriteRatePerMin != DefaultConfig().WriteRatePerMin {
		t.Errorf("WriteRatePerMin = %d, want default %d", cfg.WriteRatePerMin, DefaultConfig().WriteRatePerMin)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "order_file: [unclosed\n"},
		{"empty order_file", "order_file: \"\"\n"},
		{"path traversal", "order_file: ../escape.xlsx\n"},
		{"negative rate", "write_rate_per_min: -1\n"},
		{"negative upload size", "max_upload_bytes: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(dir); err == nil {
				t.Errorf("LoadConfig accepted %q", tt.content)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	cfg.WriteRatePerMin = 0
	cfg.MaxUploadBytes = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero limits should be valid: %v", err)
	}
}

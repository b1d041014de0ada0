// Manages server configuration stored in config.yml.

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config stores all server-wide configuration.
// Loaded from config.yml in the data directory, created with defaults if
// missing.
type Config struct {
	// OrderFile is the spreadsheet file name inside the data directory.
	OrderFile string `yaml:"order_file"`

	// WriteRatePerMin limits mutating requests per client IP per minute.
	// 0 means unlimited.
	WriteRatePerMin int `yaml:"write_rate_per_min"`

	// MaxUploadBytes limits the size of an uploaded spreadsheet.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		OrderFile:       "production_orders.xlsx",
		WriteRatePerMin: 120,
		MaxUploadBytes:  10 << 20, // 10 MiB
	}
}

// Validate checks that the configuration is well-formed.
func (c *Config) Validate() error {
	if c.OrderFile == "" {
		return errors.New("order_file is required")
	}
	if filepath.Base(c.OrderFile) != c.OrderFile {
		return fmt.Errorf("order_file must be a bare file name, got %q", c.OrderFile)
	}
	if c.WriteRatePerMin < 0 {
		return errors.New("write_rate_per_min must be non-negative")
	}
	if c.MaxUploadBytes < 0 {
		return errors.New("max_upload_bytes must be non-negative")
	}
	return nil
}

// LoadConfig reads config.yml from the data directory, writing one with
// defaults first when it does not exist.
func LoadConfig(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, "config.yml")
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is constructed from dataDir flag, not user input
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		cfg := DefaultConfig()
		if err := saveConfig(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

func saveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: config contains no secrets
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

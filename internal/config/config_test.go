package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewConfig tests default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected %d workers, got %d", DefaultWorkers, cfg.Workers)
	}
	if cfg.CrawlLimit != DefaultCrawlLimit {
		t.Errorf("expected unbounded crawl limit, got %d", cfg.CrawlLimit)
	}
	if cfg.MaxCollected != DefaultMaxCollected {
		t.Errorf("expected safety cap %d, got %d", DefaultMaxCollected, cfg.MaxCollected)
	}
	if cfg.RetryDelay != DefaultRetryDelay {
		t.Errorf("expected retry delay %v, got %v", DefaultRetryDelay, cfg.RetryDelay)
	}
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.SeedURL = "http://example.com"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "missing seed URL",
			mutate:  func(c *Config) { c.SeedURL = "" },
			wantErr: ErrNoSeedURL,
		},
		{
			name:    "seed URL without scheme",
			mutate:  func(c *Config) { c.SeedURL = "example.com/page" },
			wantErr: ErrInvalidSeedURL,
		},
		{
			name:    "unparseable seed URL",
			mutate:  func(c *Config) { c.SeedURL = "http://exa mple.com" },
			wantErr: ErrInvalidSeedURL,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Workers = 0 },
			wantErr: ErrInvalidWorkers,
		},
		{
			name:    "negative crawl limit",
			mutate:  func(c *Config) { c.CrawlLimit = -1 },
			wantErr: ErrInvalidCrawlLimit,
		},
		{
			name:    "zero safety cap",
			mutate:  func(c *Config) { c.MaxCollected = 0 },
			wantErr: ErrInvalidMaxCollected,
		},
		{
			name:    "conflicting report formats",
			mutate:  func(c *Config) { c.JSONReport = true; c.MarkdownReport = true },
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestLoadConfigFile tests YAML config loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads skip tables and overrides", func(t *testing.T) {
		t.Parallel()

		content := `
skipExtensions:
  - .pdf
  - png
skipProtocols:
  - mailto
userAgent: "test-agent/1.0"
workers: 4
maxCollected: 1000
`
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if len(cf.SkipExtensions) != 2 {
			t.Errorf("expected 2 skip extensions, got %v", cf.SkipExtensions)
		}
		if len(cf.SkipProtocols) != 1 || cf.SkipProtocols[0] != "mailto" {
			t.Errorf("expected [mailto], got %v", cf.SkipProtocols)
		}
		if cf.UserAgent != "test-agent/1.0" {
			t.Errorf("unexpected user agent %q", cf.UserAgent)
		}

		cfg := NewConfig()
		cf.Apply(cfg)
		if cfg.Workers != 4 {
			t.Errorf("expected workers override 4, got %d", cfg.Workers)
		}
		if cfg.MaxCollected != 1000 {
			t.Errorf("expected cap override 1000, got %d", cfg.MaxCollected)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid YAML returns an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("skipExtensions: {broken"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected an error for invalid YAML")
		}
	})

	t.Run("empty file leaves defaults alone", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		cfg := NewConfig()
		cf.Apply(cfg)
		if cfg.Workers != DefaultWorkers || cfg.UserAgent != DefaultUserAgent {
			t.Error("empty config file must not change defaults")
		}
	})
}

// TestFindConfigFile tests the search order for the config file.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("workers: 2"), 0600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing")); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/linkhound/linkhound/internal/config"
)

// TestNewRunCmd tests the run command creation.
func TestNewRunCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRunCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "run <startUrl> [maxThreads] [crawlLimit]" {
			t.Errorf("unexpected use: %q", cmd.Use)
		}
	})

	t.Run("has report flags", func(t *testing.T) {
		t.Parallel()
		for name, shorthand := range map[string]string{
			"json":     "j",
			"markdown": "m",
			"output":   "o",
			"save":     "s",
			"config":   "c",
		} {
			flag := cmd.Flags().Lookup(name)
			if flag == nil {
				t.Errorf("expected %s flag", name)
				continue
			}
			if flag.Shorthand != shorthand {
				t.Errorf("flag %s: expected shorthand %q, got %q", name, shorthand, flag.Shorthand)
			}
		}
	})
}

// TestBuildConfig tests positional argument handling.
func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("seed only uses defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewRunCmd()
		cfg, err := buildConfig(cmd, []string{"http://example.com"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.SeedURL != "http://example.com" {
			t.Errorf("SeedURL = %q, want %q", cfg.SeedURL, "http://example.com")
		}
		if cfg.Workers != config.DefaultWorkers {
			t.Errorf("Workers = %d, want default %d", cfg.Workers, config.DefaultWorkers)
		}
		if cfg.CrawlLimit != config.DefaultCrawlLimit {
			t.Errorf("CrawlLimit = %d, want default", cfg.CrawlLimit)
		}
	})

	t.Run("valid positional arguments override defaults", func(t *testing.T) {
		t.Parallel()

		cmd := NewRunCmd()
		cfg, err := buildConfig(cmd, []string{"http://example.com", "20", "500"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.Workers != 20 {
			t.Errorf("Workers = %d, want 20", cfg.Workers)
		}
		if cfg.CrawlLimit != 500 {
			t.Errorf("CrawlLimit = %d, want 500", cfg.CrawlLimit)
		}
	})

	t.Run("invalid thread count falls back with a warning", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		cmd := NewRunCmd()
		cmd.SetErr(&stderr)

		cfg, err := buildConfig(cmd, []string{"http://example.com", "abc"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.Workers != config.DefaultWorkers {
			t.Errorf("Workers = %d, want default %d", cfg.Workers, config.DefaultWorkers)
		}
		if !strings.Contains(stderr.String(), "Invalid thread number") {
			t.Errorf("warning missing from stderr: %q", stderr.String())
		}
	})

	t.Run("negative crawl limit falls back with a warning", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		cmd := NewRunCmd()
		cmd.SetErr(&stderr)

		cfg, err := buildConfig(cmd, []string{"http://example.com", "4", "-1"})
		if err != nil {
			t.Fatalf("buildConfig() error = %v", err)
		}
		if cfg.CrawlLimit != config.DefaultCrawlLimit {
			t.Errorf("CrawlLimit = %d, want default", cfg.CrawlLimit)
		}
		if !strings.Contains(stderr.String(), "Invalid crawl limit") {
			t.Errorf("warning missing from stderr: %q", stderr.String())
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewRunCmd()
		if err := cmd.Flags().Set("config", "/nonexistent/config.yaml"); err != nil {
			t.Fatal(err)
		}
		if _, err := buildConfig(cmd, []string{"http://example.com"}); err == nil {
			t.Error("buildConfig() succeeded with a missing explicit config file")
		}
	})
}

// TestRunRunCmd_InvalidSeed tests that a malformed seed URL is fatal.
func TestRunRunCmd_InvalidSeed(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "not a valid url"})

	if err := cmd.Execute(); err == nil {
		t.Error("Execute() succeeded with a malformed seed URL")
	}
}

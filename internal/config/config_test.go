package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Pipeline.BatchSize != 5 {
		t.Errorf("BatchSize = %d, want 5", cfg.Pipeline.BatchSize)
	}
	if cfg.Pipeline.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.Pipeline.MaxRetries)
	}
	if cfg.Pipeline.BatchDelay != time.Second {
		t.Errorf("BatchDelay = %v, want 1s", cfg.Pipeline.BatchDelay)
	}
	if cfg.Provider.ConnectTimeout != 5*time.Second {
		t.Errorf("ConnectTimeout = %v, want 5s", cfg.Provider.ConnectTimeout)
	}
	if cfg.Provider.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.Provider.RequestTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("no config file uses defaults", func(t *testing.T) {
		chdir(t, t.TempDir())

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Pipeline.BatchSize != 5 {
			t.Errorf("BatchSize = %d, want 5", cfg.Pipeline.BatchSize)
		}
		if cfg.Provider.Model == "" {
			t.Error("expected a default model")
		}
	})

	t.Run("config file overrides defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "docnorm.yaml")
		yaml := strings.Join([]string{
			"provider:",
			"  model: gpt-4o",
			"  api_key: file-key",
			"pipeline:",
			"  batch_size: 2",
			"  batch_delay: 250ms",
		}, "\n")
		if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Provider.Model != "gpt-4o" {
			t.Errorf("Model = %q", cfg.Provider.Model)
		}
		if cfg.Provider.APIKey != "file-key" {
			t.Errorf("APIKey = %q", cfg.Provider.APIKey)
		}
		if cfg.Pipeline.BatchSize != 2 {
			t.Errorf("BatchSize = %d, want 2", cfg.Pipeline.BatchSize)
		}
		if cfg.Pipeline.BatchDelay != 250*time.Millisecond {
			t.Errorf("BatchDelay = %v, want 250ms", cfg.Pipeline.BatchDelay)
		}
		// Untouched keys keep their defaults.
		if cfg.Pipeline.MaxRetries != 3 {
			t.Errorf("MaxRetries = %d, want 3", cfg.Pipeline.MaxRetries)
		}
	})

	t.Run("environment variables apply", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("DOCNORM_PROVIDER_API_KEY", "env-key")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Provider.APIKey != "env-key" {
			t.Errorf("APIKey = %q, want env-key", cfg.Provider.APIKey)
		}
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "docnorm.yaml")
		if err := os.WriteFile(path, []byte("pipeline:\n  batch_size: 0\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := Load(path); err == nil {
			t.Error("expected validation error for batch_size 0")
		}
	})
}

// chdir switches the working directory for the test so Load's "." config
// search cannot pick up a stray file.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

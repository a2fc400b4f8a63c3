// pkg/core/config_test.go
package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Retry.Attempts != 2 || cfg.Retry.Backoff != 4*time.Second {
		t.Errorf("unexpected retry defaults %+v", cfg.Retry)
	}
	if cfg.Timeouts.Install != 15*time.Minute || cfg.Timeouts.List != 15*time.Second {
		t.Errorf("unexpected timeout defaults %+v", cfg.Timeouts)
	}
	if cfg.Catalog.Retries != 0 {
		t.Errorf("catalog fetch should be one-shot, got %d retries", cfg.Catalog.Retries)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Winget.Path != "winget" || !cfg.Winget.Silent {
		t.Errorf("expected defaults, got %+v", cfg.Winget)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
winget:
  silent: false
timeouts:
  install: 20m
retry:
  attempts: 3
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INITIO_RETRY_BACKOFF", "1s")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Winget.Silent {
		t.Error("winget.silent should be read from file")
	}
	if cfg.Timeouts.Install != 20*time.Minute {
		t.Errorf("timeouts.install: got %v", cfg.Timeouts.Install)
	}
	if cfg.Retry.Attempts != 3 {
		t.Errorf("retry.attempts: got %d", cfg.Retry.Attempts)
	}
	if cfg.Retry.Backoff != time.Second {
		t.Errorf("env override of retry.backoff: got %v", cfg.Retry.Backoff)
	}
	if cfg.Timeouts.List != 15*time.Second {
		t.Errorf("unset keys keep defaults, got %v", cfg.Timeouts.List)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("retry:\n  attempts: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for zero attempts")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Shell.Path = "pwsh"
	cfg.Timeouts.VerifyRemoved = 12 * time.Second

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Shell.Path != "pwsh" || got.Timeouts.VerifyRemoved != 12*time.Second {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestNest(t *testing.T) {
	out := nest(map[string]interface{}{"a.b": 1, "a.c": 2, "d": 3})
	a, ok := out["a"].(map[string]interface{})
	if !ok || a["b"] != 1 || a["c"] != 2 || out["d"] != 3 {
		t.Fatalf("unexpected nesting %v", out)
	}
}

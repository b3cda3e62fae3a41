package config

import (
	"os"
	"strings"
	"testing"
)

// clearEnv unsets every SLIDEDISTILL_* variable for the test, restoring the
// caller's environment afterwards via t.Setenv's cleanup.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SLIDEDISTILL_ANIMATION_THRESHOLD",
		"SLIDEDISTILL_NEW_SLIDE_THRESHOLD",
		"SLIDEDISTILL_WORKERS",
		"SLIDEDISTILL_CACHE",
		"SLIDEDISTILL_DB",
		"SLIDEDISTILL_VERBOSE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AnimationThreshold != 2 {
		t.Errorf("AnimationThreshold = %d, want 2", cfg.AnimationThreshold)
	}
	if cfg.NewSlideThreshold != 8 {
		t.Errorf("NewSlideThreshold = %d, want 8", cfg.NewSlideThreshold)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLIDEDISTILL_ANIMATION_THRESHOLD", "4")
	t.Setenv("SLIDEDISTILL_NEW_SLIDE_THRESHOLD", "16")
	t.Setenv("SLIDEDISTILL_WORKERS", "12")
	t.Setenv("SLIDEDISTILL_DB", "postgres://localhost:5432/slides")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AnimationThreshold != 4 || cfg.NewSlideThreshold != 16 {
		t.Errorf("thresholds = %d/%d, want 4/16", cfg.AnimationThreshold, cfg.NewSlideThreshold)
	}
	if cfg.Workers != 12 {
		t.Errorf("Workers = %d, want 12", cfg.Workers)
	}
	if cfg.DatabaseURL != "postgres://localhost:5432/slides" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	clearEnv(t)
	t.Setenv("SLIDEDISTILL_WORKERS", "many")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-integer worker count")
	}
}

func TestResolveCachePath(t *testing.T) {
	explicit := &Config{CachePath: "/tmp/custom.db"}
	if got := explicit.ResolveCachePath(); got != "/tmp/custom.db" {
		t.Errorf("explicit path not honored: %q", got)
	}

	implicit := &Config{}
	got := implicit.ResolveCachePath()
	if got == "" {
		t.Fatal("empty cache path")
	}
	if !strings.Contains(got, "slidedistill") {
		t.Errorf("fallback path %q does not mention the tool", got)
	}
}

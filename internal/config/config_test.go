package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.CooldownSeconds != 30 {
		t.Errorf("CooldownSeconds = %d, want 30", cfg.CooldownSeconds)
	}
	if !cfg.OnSave() || !cfg.OnOpen() {
		t.Error("auto review should default to on")
	}
	if len(cfg.Exclude) != 2 {
		t.Errorf("Exclude = %v, want the .venv defaults", cfg.Exclude)
	}
}

func TestMerge_ZeroValuesDoNotOverride(t *testing.T) {
	dst := Default()
	merge(&dst, Config{Model: "phi-4"})

	if dst.Model != "phi-4" {
		t.Errorf("Model = %q, want phi-4", dst.Model)
	}
	if dst.Port != 8080 {
		t.Errorf("Port = %d, zero source value must not override", dst.Port)
	}
	if dst.CooldownSeconds != 30 {
		t.Errorf("CooldownSeconds = %d, zero source value must not override", dst.CooldownSeconds)
	}
}

func TestMerge_BoolPointers(t *testing.T) {
	off := false
	dst := Default()
	merge(&dst, Config{AutoReviewOnSave: &off})

	if dst.OnSave() {
		t.Error("explicit false must override the default")
	}
	if !dst.OnOpen() {
		t.Error("unset bool must keep the default")
	}
}

func TestMerge_CacheEnabledExplicitFalse(t *testing.T) {
	off := false
	dst := Default()
	merge(&dst, Config{Cache: CacheConfig{Enabled: &off, TTLSeconds: 60}})

	if dst.Cache.On() {
		t.Error("explicit cache.enabled=false must override the default")
	}
	if dst.Cache.TTLSeconds != 60 {
		t.Errorf("TTLSeconds = %d, want 60", dst.Cache.TTLSeconds)
	}

	dst = Default()
	merge(&dst, Config{})
	if !dst.Cache.On() {
		t.Error("unset cache.enabled must keep the default")
	}
}

func TestLoad_CacheDisabledInConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "redline"), 0o755); err != nil {
		t.Fatal(err)
	}
	body := `{"cache":{"enabled":false,"ttlSeconds":60}}`
	if err := os.WriteFile(filepath.Join(dir, "redline", "config.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.On() {
		t.Error("cache.enabled=false in the config file must disable the cache")
	}
	if cfg.Cache.TTLSeconds != 60 {
		t.Errorf("TTLSeconds = %d, want 60", cfg.Cache.TTLSeconds)
	}
}

func TestLoadWorkspaceFile(t *testing.T) {
	dir := t.TempDir()
	overlay := "model: workspace-model\ncooldownSeconds: 5\nautoReviewOnOpen: false\n"
	if err := os.WriteFile(filepath.Join(dir, WorkspaceFile), []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWorkspaceFile(dir)
	if err != nil {
		t.Fatalf("LoadWorkspaceFile: %v", err)
	}
	if cfg.Model != "workspace-model" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.CooldownSeconds != 5 {
		t.Errorf("CooldownSeconds = %d", cfg.CooldownSeconds)
	}
	if cfg.AutoReviewOnOpen == nil || *cfg.AutoReviewOnOpen {
		t.Error("autoReviewOnOpen should be explicit false")
	}
}

func TestLoadWorkspaceFile_Missing(t *testing.T) {
	cfg, err := LoadWorkspaceFile(t.TempDir())
	if err != nil {
		t.Fatalf("missing overlay should not error: %v", err)
	}
	if cfg.Model != "" {
		t.Errorf("Model = %q, want zero config", cfg.Model)
	}
}

func TestMergeEnv(t *testing.T) {
	t.Setenv("REDLINE_MODEL", "env-model")
	t.Setenv("REDLINE_PORT", "9999")
	t.Setenv("REDLINE_COOLDOWN_SECONDS", "not-a-number")

	cfg := Default()
	mergeEnv(&cfg)

	if cfg.Model != "env-model" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Port != 9999 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.CooldownSeconds != 30 {
		t.Errorf("CooldownSeconds = %d, malformed env must be ignored", cfg.CooldownSeconds)
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()
	if err := SetField(&cfg, "port", "1234"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if cfg.Port != 1234 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if err := SetField(&cfg, "port", "abc"); err == nil {
		t.Error("non-integer port should error")
	}
	if err := SetField(&cfg, "nope", "x"); err == nil {
		t.Error("unknown key should error")
	}
}

func TestCustomInstructions(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "style.md"), []byte("敬体で統一"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.CustomInstructionFile = "style.md"
	if got := CustomInstructions(cfg, dir); got != "敬体で統一" {
		t.Errorf("CustomInstructions = %q", got)
	}

	cfg.CustomInstructionFile = "missing.md"
	if got := CustomInstructions(cfg, dir); got != "" {
		t.Errorf("missing file should yield empty, got %q", got)
	}

	cfg.CustomInstructionFile = ""
	if got := CustomInstructions(cfg, dir); got != "" {
		t.Errorf("unset file should yield empty, got %q", got)
	}
}

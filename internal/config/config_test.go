package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TNEF2ICS_PRODUCT_ID",
		"TNEF2ICS_OUTPUT",
		"TNEF2ICS_LOG_LEVEL",
		"TNEF2ICS_ZONE_POLICY",
		"TNEF2ICS_CHARSET",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", Overrides{})
	if err != nil {
		t.Fatalf("Load() returned an error: %v", err)
	}

	if cfg.ProductID != DefaultProductID {
		t.Errorf("Expected ProductID %q, got %q", DefaultProductID, cfg.ProductID)
	}
	if cfg.Output != "invite.ics" {
		t.Errorf("Expected Output 'invite.ics', got %q", cfg.Output)
	}
	if cfg.ZonePolicy != ZonePolicyUTC {
		t.Errorf("Expected ZonePolicy 'utc', got %q", cfg.ZonePolicy)
	}
	if cfg.Charset != DefaultCharset {
		t.Errorf("Expected Charset %q, got %q", DefaultCharset, cfg.Charset)
	}
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := "product_id: -//file//EN\noutput: file.ics\nzone_policy: offset\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(yamlData), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("TNEF2ICS_OUTPUT", "env.ics")
	t.Setenv("TNEF2ICS_LOG_LEVEL", "warn")

	cfg, err := Load(path, Overrides{LogLevel: "error"})
	if err != nil {
		t.Fatalf("Load() returned an error: %v", err)
	}

	if cfg.ProductID != "-//file//EN" {
		t.Errorf("Expected ProductID from file, got %q", cfg.ProductID)
	}
	if cfg.ZonePolicy != ZonePolicyOffset {
		t.Errorf("Expected ZonePolicy from file, got %q", cfg.ZonePolicy)
	}
	if cfg.Output != "env.ics" {
		t.Errorf("Expected Output from env, got %q", cfg.Output)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("Expected LogLevel from override, got %q", cfg.LogLevel)
	}
}

func TestLoad_PartialFileIsNormalized(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("zone_policy: UTC\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load() returned an error: %v", err)
	}
	if cfg.ZonePolicy != ZonePolicyUTC {
		t.Errorf("Expected ZonePolicy 'utc', got %q", cfg.ZonePolicy)
	}
	if cfg.Output != DefaultOutput || cfg.ProductID != DefaultProductID {
		t.Errorf("Expected defaults for unset fields, got %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Overrides{}); err == nil {
		t.Error("Expected error for missing config file")
	}
	if _, err := Load("", Overrides{ZonePolicy: "tzdata"}); err == nil {
		t.Error("Expected error for unknown zone policy")
	}
	if _, err := Load("", Overrides{Charset: "klingon-8"}); err == nil {
		t.Error("Expected error for unknown charset")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := DefaultConfig()
	in.ProductID = "-//saved//EN"
	in.ZonePolicy = ZonePolicyOffset

	if err := Save(path, in); err != nil {
		t.Fatalf("Save() returned an error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() returned an error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("Expected 0600 permissions, got %o", perm)
	}

	out, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load() returned an error: %v", err)
	}
	if out.ProductID != "-//saved//EN" || out.ZonePolicy != ZonePolicyOffset {
		t.Errorf("Expected saved values back, got %+v", out)
	}
}

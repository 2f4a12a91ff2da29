package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	if err != nil {
		t.Fatalf("Load = %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.AccessPolicy != "owner" {
		t.Errorf("AccessPolicy = %q, want owner", cfg.AccessPolicy)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")

	orig := DefaultConfig()
	orig.ListenAddr = ":9999"
	orig.AccessPolicy = "member"
	orig.SessionTTLHours = 48
	if err := orig.Save(path); err != nil {
		t.Fatalf("Save = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load = %v", err)
	}
	if cfg.ListenAddr != ":9999" || cfg.AccessPolicy != "member" || cfg.SessionTTLHours != 48 {
		t.Errorf("round trip = %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TASKHUB_LISTEN_ADDR", ":7777")
	t.Setenv("TASKHUB_ACCESS_POLICY", "member")

	cfg := DefaultConfig()
	if cfg.ListenAddr != ":7777" {
		t.Errorf("ListenAddr = %q, want :7777", cfg.ListenAddr)
	}
	if cfg.AccessPolicy != "member" {
		t.Errorf("AccessPolicy = %q, want member", cfg.AccessPolicy)
	}
}

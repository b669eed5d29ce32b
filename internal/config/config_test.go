package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8010" {
		t.Errorf("expected default port 8010, got %s", cfg.Port)
	}
	if cfg.MaxTurns != 15 {
		t.Errorf("expected default max turns 15, got %d", cfg.MaxTurns)
	}
	if cfg.MinArtifactTypes != 2 {
		t.Errorf("expected default artifact threshold 2, got %d", cfg.MinArtifactTypes)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected default session TTL 1h, got %s", cfg.SessionTTL)
	}
	if !cfg.ArchiveEnabled() {
		t.Error("expected archive enabled by default")
	}
	if cfg.ReportingEnabled() {
		t.Error("expected reporting disabled without CALLBACK_URL")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_TURNS", "20")
	t.Setenv("ENGAGE_THRESHOLD", "0.5")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("CALLBACK_URL", "http://reports.example.com/ingest")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.MaxTurns != 20 {
		t.Errorf("expected max turns 20, got %d", cfg.MaxTurns)
	}
	if cfg.EngageThreshold != 0.5 {
		t.Errorf("expected engage threshold 0.5, got %f", cfg.EngageThreshold)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected session TTL 30m, got %s", cfg.SessionTTL)
	}
	if !cfg.ReportingEnabled() {
		t.Error("expected reporting enabled")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("origins not parsed: %v", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("MAX_TURNS", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for negative MAX_TURNS")
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("MAX_TURNS", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxTurns != 15 {
		t.Errorf("expected fallback 15, got %d", cfg.MaxTurns)
	}
}

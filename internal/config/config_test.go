package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.NotificationInterval() != 30*time.Second {
		t.Errorf("NotificationInterval = %v, want 30s", cfg.NotificationInterval())
	}
	if cfg.ChatInterval() != 10*time.Second {
		t.Errorf("ChatInterval = %v, want 10s", cfg.ChatInterval())
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_base_url: https://api.futbolink.example\nnotification_poll_sec: 60\nchat_poll_sec: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIBaseURL != "https://api.futbolink.example" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.NotificationPollSec != 60 || cfg.ChatPollSec != 5 {
		t.Errorf("poll intervals = %d/%d, want 60/5", cfg.NotificationPollSec, cfg.ChatPollSec)
	}
}

func TestLoadClampsNonPositiveIntervals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("notification_poll_sec: 0\nchat_poll_sec: -4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.NotificationPollSec != 30 || cfg.ChatPollSec != 10 {
		t.Errorf("poll intervals = %d/%d, want defaults 30/10", cfg.NotificationPollSec, cfg.ChatPollSec)
	}
}

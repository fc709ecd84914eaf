package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_WithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  host: "127.0.0.1"
  port: 9000
log:
  level: "debug"
  pretty: true
auth:
  jwt_secret: "file-secret"
  access_token_ttl: "30m"
  refresh_token_ttl: "24h"
  min_password_length: 8
market:
  refresh_delay: "2s"
  stream_interval: "1s"
chart:
  default_days: 14
  width: 1024
  height: 512
storage:
  path: "/tmp/terminal.db"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	origDir, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	defer os.Chdir(origDir)

	cfg, err := Load("config")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %s, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != "file-secret" {
		t.Errorf("Auth.JWTSecret = %s, want file-secret", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.AccessTokenTTL != 30*time.Minute {
		t.Errorf("Auth.AccessTokenTTL = %v, want 30m", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Auth.MinPasswordLength != 8 {
		t.Errorf("Auth.MinPasswordLength = %d, want 8", cfg.Auth.MinPasswordLength)
	}
	if cfg.Market.RefreshDelay != 2*time.Second {
		t.Errorf("Market.RefreshDelay = %v, want 2s", cfg.Market.RefreshDelay)
	}
	if cfg.Chart.DefaultDays != 14 {
		t.Errorf("Chart.DefaultDays = %d, want 14", cfg.Chart.DefaultDays)
	}
	if cfg.Storage.Path != "/tmp/terminal.db" {
		t.Errorf("Storage.Path = %s, want /tmp/terminal.db", cfg.Storage.Path)
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	defer os.Chdir(origDir)

	cfg, err := Load("does-not-exist")
	if err != nil {
		t.Fatalf("Load() with missing file should fall back to defaults, got error %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Market.RefreshDelay != 1500*time.Millisecond {
		t.Errorf("default Market.RefreshDelay = %v, want 1.5s", cfg.Market.RefreshDelay)
	}
	if cfg.Auth.MinPasswordLength != 6 {
		t.Errorf("default Auth.MinPasswordLength = %d, want 6", cfg.Auth.MinPasswordLength)
	}
	if cfg.Chart.DefaultDays != 30 {
		t.Errorf("default Chart.DefaultDays = %d, want 30", cfg.Chart.DefaultDays)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	defer os.Chdir(origDir)

	t.Setenv("SURA_SERVER_PORT", "9999")

	cfg, err := Load("does-not-exist")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 from SURA_SERVER_PORT", cfg.Server.Port)
	}
}

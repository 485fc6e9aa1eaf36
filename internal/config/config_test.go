package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  port: 9090
  host: "0.0.0.0"
  db_path: "/var/lib/sessiondeck/sessions.db"
client:
  url: "http://example.com:9090"
  token: "secret"
  show_submit_errors: false
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.DBPath != "/var/lib/sessiondeck/sessions.db" {
		t.Errorf("Server.DBPath = %q", cfg.Server.DBPath)
	}
	if cfg.Client.URL != "http://example.com:9090" {
		t.Errorf("Client.URL = %q", cfg.Client.URL)
	}
	if cfg.Client.Token != "secret" {
		t.Errorf("Client.Token = %q, want secret", cfg.Client.Token)
	}
	if cfg.Client.ShowSubmitErrors {
		t.Error("Client.ShowSubmitErrors = true, want false")
	}

	// Defaults should still apply for unspecified fields.
	if cfg.Client.Retry != 3*time.Second {
		t.Errorf("Client.Retry = %v, want default 3s", cfg.Client.Retry)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Load() on missing file should return error")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Client.URL != "http://127.0.0.1:8080" {
		t.Errorf("Client.URL = %q, want default", cfg.Client.URL)
	}
	if !cfg.Client.ShowSubmitErrors {
		t.Error("Client.ShowSubmitErrors should default to true")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(cfgPath, []byte(":::not valid yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Fatal("Load() with invalid YAML should return error")
	}
}

func TestAddr(t *testing.T) {
	cfg := Default()
	if got := cfg.Server.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", got)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfigYAML = `
app_name: notevault-test
run_mode: production

server:
  host: 127.0.0.1
  port: 8080
  domain: example.com

auth:
  jwt:
    secret: test-secret
    expire: 24

data:
  mongodb:
    uri: mongodb://localhost:27017
    database: notevault_test

logger:
  level: 5
  format: text
  output: stdout

frontend:
  dist: ./dist
  origin: https://app.example.com
`

// TestLoadConfig loads a full configuration file.
func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AppName != "notevault-test" {
		t.Errorf("Unexpected app name: got %q", cfg.AppName)
	}
	if !cfg.IsProduction() {
		t.Error("Expected production mode")
	}
	if got := cfg.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Unexpected addr: got %q", got)
	}
	if cfg.Auth.JWT.Secret != "test-secret" {
		t.Errorf("Unexpected jwt secret: got %q", cfg.Auth.JWT.Secret)
	}
	if cfg.Auth.JWT.Expire != 24 {
		t.Errorf("Unexpected jwt expire: got %d", cfg.Auth.JWT.Expire)
	}
	if cfg.Data.MongoDB.Database != "notevault_test" {
		t.Errorf("Unexpected database: got %q", cfg.Data.MongoDB.Database)
	}
	if cfg.Logger.Level != 5 {
		t.Errorf("Unexpected logger level: got %d", cfg.Logger.Level)
	}
	if cfg.Frontend.Origin != "https://app.example.com" {
		t.Errorf("Unexpected frontend origin: got %q", cfg.Frontend.Origin)
	}
}

// TestLoadConfigDefaults fills defaults for keys the file omits.
func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("app_name: minimal\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != 4000 {
		t.Errorf("Unexpected default port: got %d", cfg.Port)
	}
	if cfg.IsProduction() {
		t.Error("Default run mode should not be production")
	}
	if cfg.Data.MongoDB.Database != "notevault" {
		t.Errorf("Unexpected default database: got %q", cfg.Data.MongoDB.Database)
	}
	if cfg.Logger.Format != "json" {
		t.Errorf("Unexpected default logger format: got %q", cfg.Logger.Format)
	}
}

// TestLoadConfigMissingFile errors on a path that does not exist.
func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}

// TestWatch delivers the re-read configuration when the file changes.
func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logger:\n  level: 4\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Logger.Level != 4 {
		t.Fatalf("Unexpected initial logger level: got %d", cfg.Logger.Level)
	}

	reloaded := make(chan *Config, 4)
	Watch(func(c *Config) {
		reloaded <- c
	})

	if err := os.WriteFile(path, []byte("logger:\n  level: 5\n"), 0o600); err != nil {
		t.Fatalf("Failed to rewrite config file: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-reloaded:
			if c.Logger.Level == 5 {
				return
			}
			// A watcher may fire for the first write too; keep waiting.
		case <-deadline:
			t.Fatal("Watch callback never observed the rewritten config")
		}
	}
}

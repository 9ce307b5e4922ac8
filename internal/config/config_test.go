package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("Expected default port 8090, got %d", cfg.Server.Port)
	}
	if cfg.GetServerAddr() != "0.0.0.0:8090" {
		t.Errorf("Unexpected server addr %s", cfg.GetServerAddr())
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: 9999\nstorage:\n  data_directory: /tmp/anno\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Expected port 9999, got %d", cfg.Server.Port)
	}
	if cfg.GetDataDir() != "/tmp/anno" {
		t.Errorf("Expected data dir /tmp/anno, got %s", cfg.GetDataDir())
	}
	// Untouched sections keep their defaults.
	if cfg.Surfaces.TimeoutMinutes != 30 {
		t.Errorf("Expected default surface timeout, got %d", cfg.Surfaces.TimeoutMinutes)
	}
}

func TestStyleRulesPath(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.StyleRulesPath(); got != filepath.Join("./data", "styles.yaml") {
		t.Errorf("Unexpected default style rules path %s", got)
	}
	cfg.Storage.StyleRulesFile = "/etc/styles.yaml"
	if got := cfg.StyleRulesPath(); got != "/etc/styles.yaml" {
		t.Errorf("Expected configured path, got %s", got)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

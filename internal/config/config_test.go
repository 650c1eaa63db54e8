package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Path != "coursedb.db" {
		t.Fatalf("expected default database path, got %q", cfg.Database.Path)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Log.Level)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	// Nested keys use "." in the env var name, per the COURSEDB_ prefix mapping.
	t.Setenv("COURSEDB_DATABASE.PATH", "/tmp/course-test.db")
	t.Setenv("COURSEDB_LOG.LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Path != "/tmp/course-test.db" {
		t.Fatalf("expected env database path, got %q", cfg.Database.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected env log level debug, got %q", cfg.Log.Level)
	}
}

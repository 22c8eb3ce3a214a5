package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PROGRESS_DB", "PROGRESS_USER", "PROGRESS_LANG", "PROGRESS_TZ", "PROGRESS_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if filepath.Base(cfg.DBPath) != "progress.db" {
		t.Errorf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.Language() != language.German {
		t.Errorf("expected German, got %v", cfg.Language())
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Errorf("expected UTC, got %v (%v)", loc, err)
	}
	lvl, err := cfg.Level()
	if err != nil || lvl != slog.LevelInfo {
		t.Errorf("expected info, got %v (%v)", lvl, err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PROGRESS_DB", "/tmp/x.db")
	t.Setenv("PROGRESS_USER", "ana")
	t.Setenv("PROGRESS_LANG", "en-GB")
	t.Setenv("PROGRESS_TZ", "Europe/Berlin")
	t.Setenv("PROGRESS_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" || cfg.User != "ana" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if base, _ := cfg.Language().Base(); base.String() != "en" {
		t.Errorf("expected English, got %v", cfg.Language())
	}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.String() != "Europe/Berlin" {
		t.Errorf("expected Europe/Berlin, got %s", loc)
	}
	lvl, _ := cfg.Level()
	if lvl != slog.LevelDebug {
		t.Errorf("expected debug, got %v", lvl)
	}
}

func TestInvalidValues(t *testing.T) {
	cfg := Config{TZ: "Nowhere/City", LogLevel: "loud"}
	if _, err := cfg.Location(); err == nil {
		t.Error("expected location error")
	}
	if _, err := cfg.Level(); err == nil || !strings.Contains(err.Error(), "loud") {
		t.Errorf("expected level error, got %v", err)
	}
}

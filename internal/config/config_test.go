package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.UsageBackend != BackendSQLite {
		t.Fatalf("UsageBackend = %q, want %q", cfg.UsageBackend, BackendSQLite)
	}
	wantDB, err := ExpandPath(defaultUsageDB)
	if err != nil {
		t.Fatalf("ExpandPath(defaultUsageDB) returned error: %v", err)
	}
	if cfg.UsageDB != wantDB {
		t.Fatalf("UsageDB = %q, want %q", cfg.UsageDB, wantDB)
	}
	if cfg.DefaultColor != "#3b82f6" {
		t.Fatalf("DefaultColor = %q, want #3b82f6", cfg.DefaultColor)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("PollInterval = %v, want %v", cfg.PollInterval, defaultPollInterval)
	}
	if cfg.UserID != "" {
		t.Fatalf("UserID = %q, want empty", cfg.UserID)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
user_id = "  user-1  "
usage_backend = " HTTP "
usage_api = " localhost:9000 "
usage_token = " tok "
usage_db = "  ~/data/usage.db  "
log_file = "~/logs/prism.log"
default_color = "FF5733"
poll_seconds = 12
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.UserID != "user-1" {
		t.Fatalf("UserID = %q, want user-1", cfg.UserID)
	}
	if cfg.UsageBackend != BackendHTTP || cfg.UsageAPI != "localhost:9000" || cfg.UsageToken != "tok" {
		t.Fatalf("usage = %q %q %q, want http localhost:9000 tok", cfg.UsageBackend, cfg.UsageAPI, cfg.UsageToken)
	}
	if cfg.UsageDB != filepath.Join(home, "data/usage.db") {
		t.Fatalf("UsageDB = %q, want it under HOME %q", cfg.UsageDB, home)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.DefaultColor != "#ff5733" {
		t.Fatalf("DefaultColor = %q, want #ff5733", cfg.DefaultColor)
	}
	if cfg.PollInterval != 12*time.Second {
		t.Fatalf("PollInterval = %v, want 12s", cfg.PollInterval)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
usage_backend = "   "
usage_db = ""
default_color = " "
poll_seconds = 0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("Load = %#v, want defaults %#v", cfg, want)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "invalid toml", body: `user_id = [`, want: "parse config"},
		{name: "unknown backend", body: `usage_backend = "redis"`, want: "unknown usage_backend"},
		{name: "http without api", body: `usage_backend = "http"`, want: "requires usage_api"},
		{name: "bad color", body: `default_color = "blue"`, want: "Invalid HEX color format"},
		{name: "negative poll", body: `poll_seconds = -1`, want: "poll_seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
	if dir := Dir(); dir != filepath.Join(home, ".config", "prism") {
		t.Fatalf("Dir = %q, want ~/.config/prism", dir)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
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
	if cfg.Weather.RefreshMinutes != defaultRefreshMinutes {
		t.Fatalf("RefreshMinutes = %d, want %d", cfg.Weather.RefreshMinutes, defaultRefreshMinutes)
	}
	if cfg.Companion.Mode != ModeStatic {
		t.Fatalf("Mode = %q, want %q", cfg.Companion.Mode, ModeStatic)
	}
	if cfg.Animation.Resource != "" {
		t.Fatalf("Resource = %q, want built-in", cfg.Animation.Resource)
	}

	wantLog, err := expandPath(defaultLogPath)
	if err != nil {
		t.Fatalf("expandPath(defaultLogPath) returned error: %v", err)
	}
	if cfg.Log.Path != wantLog {
		t.Fatalf("Log.Path = %q, want %q", cfg.Log.Path, wantLog)
	}
	if !strings.HasPrefix(cfg.Log.Path, home) {
		t.Fatalf("Log.Path = %q, want it under HOME %q", cfg.Log.Path, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
[weather]
refresh_minutes = 5

[animation]
resource = "  ~/gifs/towel.gif  "

[companion]
mode = " HTTP "
url = "  10.0.0.5:9999  "
poll_seconds = 7
temperature = 0
conditions = "  Fog  "

[display]
font = "small"

[log]
path = "~/logs/dp.log"
level = " debug "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Weather.RefreshMinutes != 5 {
		t.Fatalf("RefreshMinutes = %d, want 5", cfg.Weather.RefreshMinutes)
	}
	if cfg.Animation.Resource != filepath.Join(home, "gifs", "towel.gif") {
		t.Fatalf("Resource = %q, want it under HOME", cfg.Animation.Resource)
	}
	c := cfg.Companion
	if c.Mode != ModeHTTP || c.URL != "10.0.0.5:9999" || c.PollSeconds != 7 {
		t.Fatalf("Companion = %+v, want http 10.0.0.5:9999 every 7s", c)
	}
	if c.Temperature != 0 || c.Conditions != "Fog" {
		t.Fatalf("Companion sample = %d %q, want 0 %q", c.Temperature, c.Conditions, "Fog")
	}
	if cfg.Display.Font != "small" {
		t.Fatalf("Font = %q, want small", cfg.Display.Font)
	}
	if cfg.Log.Path != filepath.Join(home, "logs", "dp.log") || cfg.Log.Level != "debug" {
		t.Fatalf("Log = %+v, want expanded path and debug", cfg.Log)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
[companion]
mode = "   "
url = ""
conditions = " "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg.Companion != want.Companion {
		t.Fatalf("Companion = %+v, want %+v", cfg.Companion, want.Companion)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "invalid toml", body: `[weather`, want: "parse config"},
		{name: "cadence too large", body: "[weather]\nrefresh_minutes = 61\n", want: "refresh_minutes"},
		{name: "negative cadence", body: "[weather]\nrefresh_minutes = -5\n", want: "refresh_minutes"},
		{name: "unknown mode", body: "[companion]\nmode = \"bluetooth\"\n", want: "companion.mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want %s error", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %s", err.Error(), tt.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

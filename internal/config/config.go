package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings the watchface reads at startup.
type Config struct {
	Weather   Weather
	Animation Animation
	Companion Companion
	Display   Display
	Log       Log
}

// Weather controls the refresh cadence.
type Weather struct {
	RefreshMinutes int
}

// Animation selects the animated image. An empty Resource uses the
// built-in animation.
type Animation struct {
	Resource string
}

// Companion selects and configures the bridge.
type Companion struct {
	Mode        string // ModeStatic or ModeHTTP
	URL         string
	PollSeconds int
	Temperature int32
	Conditions  string
}

// Display controls the framebuffer text.
type Display struct {
	Font string
}

// Log controls the application log file.
type Log struct {
	Path  string
	Level string
}

// Companion modes.
const (
	ModeStatic = "static"
	ModeHTTP   = "http"
)

const (
	defaultConfigPath     = "~/.config/dontpanic/config.toml"
	defaultLogPath        = "~/.local/state/dontpanic/dontpanic.log"
	defaultLogLevel       = "info"
	defaultRefreshMinutes = 15
	defaultCompanionURL   = "127.0.0.1:7488"
	defaultPollSeconds    = 2
	defaultTemperature    = 42
	defaultConditions     = "Mostly Harmless"
	defaultFont           = "bold"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Weather: Weather{RefreshMinutes: defaultRefreshMinutes},
		Companion: Companion{
			Mode:        ModeStatic,
			URL:         defaultCompanionURL,
			PollSeconds: defaultPollSeconds,
			Temperature: defaultTemperature,
			Conditions:  defaultConditions,
		},
		Display: Display{Font: defaultFont},
		Log: Log{
			Path:  mustExpand(defaultLogPath),
			Level: defaultLogLevel,
		},
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Weather struct {
			RefreshMinutes int `toml:"refresh_minutes"`
		} `toml:"weather"`
		Animation struct {
			Resource string `toml:"resource"`
		} `toml:"animation"`
		Companion struct {
			Mode        string `toml:"mode"`
			URL         string `toml:"url"`
			PollSeconds int    `toml:"poll_seconds"`
			Temperature *int32 `toml:"temperature"`
			Conditions  string `toml:"conditions"`
		} `toml:"companion"`
		Display struct {
			Font string `toml:"font"`
		} `toml:"display"`
		Log struct {
			Path  string `toml:"path"`
			Level string `toml:"level"`
		} `toml:"log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if m := raw.Weather.RefreshMinutes; m != 0 {
		if m < 1 || m > 60 {
			return Config{}, fmt.Errorf("weather.refresh_minutes = %d, want 1-60", m)
		}
		cfg.Weather.RefreshMinutes = m
	}

	if res := strings.TrimSpace(raw.Animation.Resource); res != "" {
		cfg.Animation.Resource = mustExpand(res)
	}

	switch mode := strings.ToLower(strings.TrimSpace(raw.Companion.Mode)); mode {
	case "":
	case ModeStatic, ModeHTTP:
		cfg.Companion.Mode = mode
	default:
		return Config{}, fmt.Errorf("companion.mode = %q, want %q or %q", raw.Companion.Mode, ModeStatic, ModeHTTP)
	}
	if url := strings.TrimSpace(raw.Companion.URL); url != "" {
		cfg.Companion.URL = url
	}
	if raw.Companion.PollSeconds > 0 {
		cfg.Companion.PollSeconds = raw.Companion.PollSeconds
	}
	if raw.Companion.Temperature != nil {
		cfg.Companion.Temperature = *raw.Companion.Temperature
	}
	if cond := strings.TrimSpace(raw.Companion.Conditions); cond != "" {
		cfg.Companion.Conditions = cond
	}

	if font := strings.TrimSpace(raw.Display.Font); font != "" {
		cfg.Display.Font = font
	}

	if p := strings.TrimSpace(raw.Log.Path); p != "" {
		cfg.Log.Path = mustExpand(p)
	}
	if lvl := strings.TrimSpace(raw.Log.Level); lvl != "" {
		cfg.Log.Level = lvl
	}

	return cfg, nil
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/prism/internal/color"
)

// Usage backends accepted by the usage_backend key.
const (
	BackendSQLite = "sqlite"
	BackendHTTP   = "http"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// Config is the resolved prism configuration.
type Config struct {
	UserID       string
	UsageBackend string
	UsageDB      string
	UsageAPI     string
	UsageToken   string
	LogFile      string
	DefaultColor string
	PollInterval time.Duration
}

const (
	defaultConfigPath   = "~/.config/prism/config.toml"
	defaultUsageDB      = "~/.local/share/prism/usage.db"
	defaultLogFile      = "~/.local/share/prism/prism.log"
	defaultPollInterval = 5 * time.Second
)

type fileConfig struct {
	UserID       string `toml:"user_id"`
	UsageBackend string `toml:"usage_backend"`
	UsageDB      string `toml:"usage_db"`
	UsageAPI     string `toml:"usage_api"`
	UsageToken   string `toml:"usage_token"`
	LogFile      string `toml:"log_file"`
	DefaultColor string `toml:"default_color"`
	PollSeconds  int    `toml:"poll_seconds"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		UsageBackend: BackendSQLite,
		UsageDB:      mustExpand(defaultUsageDB),
		LogFile:      mustExpand(defaultLogFile),
		DefaultColor: color.RGBToHex(color.DefaultRGB),
		PollInterval: defaultPollInterval,
	}
}

// Load reads the config at path (or the default location), falling back to
// defaults when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return raw.resolve()
}

func (raw fileConfig) resolve() (Config, error) {
	cfg := Default()
	cfg.UserID = strings.TrimSpace(raw.UserID)
	cfg.UsageAPI = strings.TrimSpace(raw.UsageAPI)
	cfg.UsageToken = strings.TrimSpace(raw.UsageToken)

	if backend := strings.ToLower(strings.TrimSpace(raw.UsageBackend)); backend != "" {
		cfg.UsageBackend = backend
	}
	switch cfg.UsageBackend {
	case BackendSQLite, BackendMemory, BackendNone:
	case BackendHTTP:
		if cfg.UsageAPI == "" {
			return Config{}, fmt.Errorf("usage_backend %q requires usage_api", BackendHTTP)
		}
	default:
		return Config{}, fmt.Errorf("unknown usage_backend %q", cfg.UsageBackend)
	}

	if db := strings.TrimSpace(raw.UsageDB); db != "" {
		cfg.UsageDB = mustExpand(db)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	if hex := strings.TrimSpace(raw.DefaultColor); hex != "" {
		c, err := color.ParseHex(hex)
		if err != nil {
			return Config{}, fmt.Errorf("default_color: %w", err)
		}
		cfg.DefaultColor = color.RGBToHex(c)
	}

	if raw.PollSeconds < 0 {
		return Config{}, fmt.Errorf("poll_seconds must not be negative")
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	return cfg, nil
}

// Dir returns the directory holding the config and prefs files.
func Dir() string {
	return filepath.Dir(mustExpand(defaultConfigPath))
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
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

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/prism/internal/config"
	"github.com/five82/prism/internal/prefs"
	"github.com/five82/prism/internal/state"
	"github.com/five82/prism/internal/ui"
	"github.com/five82/prism/internal/usage"
)

// Options configure the prism application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/prism/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
}

const sessionCloseTimeout = 5 * time.Second

// Run boots the prism TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logCloser, err := setupLogging(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logCloser.Close() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	backend, err := openBackend(cfg)
	if err != nil {
		return fmt.Errorf("open usage backend: %w", err)
	}

	store := &state.Store{}
	uiOpts := ui.Options{
		Context:    ctx,
		Store:      store,
		PollTick:   time.Second,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
		StartColor: startColor(cfg, userPrefs),
		UserID:     cfg.UserID,
		LogPath:    cfg.LogFile,
	}

	if backend != nil {
		defer func() { _ = backend.Close() }()

		tracker := usage.NewTracker(backend, usage.TrackerOptions{
			UserID:  cfg.UserID,
			Limiter: usage.NewRateLimiter(usage.DefaultRateLimit, usage.DefaultRateWindow),
		})
		if _, err := tracker.StartSession(ctx); err != nil {
			log.Printf("session start failed: %v", err)
		}
		defer endSession(tracker)

		interval := cfg.PollInterval
		if opts.PollEvery > 0 {
			interval = time.Duration(opts.PollEvery) * time.Second
		}
		// Populate the store before the UI draws its first frame.
		_ = refresh(ctx, store, tracker)
		StartPoller(ctx, store, tracker, interval)

		uiOpts.Tracker = tracker
	}

	return ui.Run(uiOpts)
}

// openBackend returns the configured usage backend, or nil when tracking is off.
func openBackend(cfg config.Config) (usage.Backend, error) {
	switch cfg.UsageBackend {
	case config.BackendNone:
		return nil, nil
	case config.BackendMemory:
		return usage.NewMemoryStore(), nil
	case config.BackendHTTP:
		return usage.NewClient(cfg.UsageAPI, cfg.UsageToken)
	case config.BackendSQLite, "":
		if err := os.MkdirAll(filepath.Dir(cfg.UsageDB), 0o755); err != nil {
			return nil, fmt.Errorf("create usage db dir: %w", err)
		}
		return usage.OpenSQLite(cfg.UsageDB)
	default:
		return nil, fmt.Errorf("unknown usage backend %q", cfg.UsageBackend)
	}
}

func startColor(cfg config.Config, p prefs.Prefs) string {
	if p.LastColor != "" {
		return p.LastColor
	}
	return cfg.DefaultColor
}

func endSession(tracker *usage.Tracker) {
	ctx, cancel := context.WithTimeout(context.Background(), sessionCloseTimeout)
	defer cancel()
	if _, err := tracker.EndSession(ctx); err != nil && !errors.Is(err, usage.ErrNoSession) {
		log.Printf("session end failed: %v", err)
	}
}

// setupLogging routes the standard logger to path; the TUI owns the terminal.
func setupLogging(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return tea.LogToFile(path, "prism")
}

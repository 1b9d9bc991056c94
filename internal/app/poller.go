package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/five82/prism/internal/state"
	"github.com/five82/prism/internal/usage"
)

const (
	defaultPollInterval = 5 * time.Second
	maxBackoff          = 30 * time.Second
	topToolsLimit       = 5
)

// Source supplies the usage summaries a refresh publishes. *usage.Tracker
// satisfies it.
type Source interface {
	Stats(ctx context.Context) (usage.Stats, error)
	SessionStats(ctx context.Context) (usage.SessionStats, error)
	MostUsedTools(ctx context.Context, n int) ([]usage.ToolCount, error)
	CurrentSession() (usage.Session, bool)
}

// StartPoller launches a background goroutine that refreshes the store. The
// wait between refreshes doubles after each consecutive failure, capped at
// maxBackoff. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, src Source, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		for {
			if err := refresh(ctx, store, src); err != nil {
				failures++
			} else {
				failures = 0
			}

			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// calculateBackoff returns base doubled once per failure, never above maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

func refresh(ctx context.Context, store *state.Store, src Source) error {
	data := &state.Data{}
	if sess, ok := src.CurrentSession(); ok {
		data.Session = &sess
	}

	stats, err := src.Stats(ctx)
	if errors.Is(err, usage.ErrUnauthenticated) {
		// Anonymous users only have a session to show.
		store.Update(data, nil)
		return nil
	}
	if err != nil {
		return fail(store, fmt.Errorf("stats: %w", err))
	}
	sessionStats, err := src.SessionStats(ctx)
	if err != nil {
		return fail(store, fmt.Errorf("session stats: %w", err))
	}
	top, err := src.MostUsedTools(ctx, topToolsLimit)
	if err != nil {
		return fail(store, fmt.Errorf("most used tools: %w", err))
	}

	data.Stats = stats
	data.SessionStats = sessionStats
	data.TopTools = top
	store.Update(data, nil)
	return nil
}

func fail(store *state.Store, err error) error {
	store.Update(nil, err)
	log.Printf("usage refresh failed: %v", err)
	return err
}

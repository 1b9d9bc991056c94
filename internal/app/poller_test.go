package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/five82/prism/internal/state"
	"github.com/five82/prism/internal/usage"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

type stubSource struct {
	stats    usage.Stats
	statsErr error
	ssErr    error
	top      []usage.ToolCount
	session  *usage.Session
}

func (s stubSource) Stats(context.Context) (usage.Stats, error) { return s.stats, s.statsErr }

func (s stubSource) SessionStats(context.Context) (usage.SessionStats, error) {
	return usage.SessionStats{Total: 1, Active: 1}, s.ssErr
}

func (s stubSource) MostUsedTools(context.Context, int) ([]usage.ToolCount, error) {
	return s.top, nil
}

func (s stubSource) CurrentSession() (usage.Session, bool) {
	if s.session == nil {
		return usage.Session{}, false
	}
	return *s.session, true
}

func TestRefresh_PublishesSummaries(t *testing.T) {
	store := &state.Store{}
	src := stubSource{
		stats:   usage.Stats{TotalToolsUsed: 4, FavoriteTool: "color-converter"},
		top:     []usage.ToolCount{{ToolID: "color-converter", Count: 4}},
		session: &usage.Session{ID: "s-1", UserID: "u"},
	}

	if err := refresh(context.Background(), store, src); err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}
	snap := store.Snapshot()
	if !snap.HasData || snap.Stats.TotalToolsUsed != 4 {
		t.Fatalf("snapshot stats = %#v, want 4 uses", snap.Stats)
	}
	if snap.SessionStats.Total != 1 || len(snap.TopTools) != 1 {
		t.Fatalf("snapshot = %#v, want session stats and one top tool", snap)
	}
	if !snap.HasSession || snap.Session.ID != "s-1" {
		t.Fatalf("session = %#v, want s-1", snap.Session)
	}
}

func TestRefresh_AnonymousPublishesSessionOnly(t *testing.T) {
	store := &state.Store{}
	src := stubSource{statsErr: usage.ErrUnauthenticated, session: &usage.Session{ID: "s-1", UserID: "anonymous"}}

	if err := refresh(context.Background(), store, src); err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}
	snap := store.Snapshot()
	if snap.LastError != nil || snap.ConsecutiveFailures != 0 {
		t.Fatalf("anonymous refresh recorded error %v", snap.LastError)
	}
	if !snap.HasSession || snap.Stats.TotalToolsUsed != 0 {
		t.Fatalf("snapshot = %#v, want session only", snap)
	}
}

func TestRefresh_FailureKeepsDataAndCounts(t *testing.T) {
	store := &state.Store{}
	ctx := context.Background()
	_ = refresh(ctx, store, stubSource{stats: usage.Stats{TotalToolsUsed: 2}})

	boom := errors.New("db locked")
	for i := 1; i <= 2; i++ {
		err := refresh(ctx, store, stubSource{ssErr: boom})
		if !errors.Is(err, boom) {
			t.Fatalf("refresh err = %v, want %v", err, boom)
		}
	}
	snap := store.Snapshot()
	if snap.Stats.TotalToolsUsed != 2 {
		t.Fatalf("stats after failure = %#v, want previous data", snap.Stats)
	}
	if !snap.IsOffline() {
		t.Fatalf("IsOffline() = false after two failures")
	}
}

func TestStartPoller_RefreshesUntilCancelled(t *testing.T) {
	store := &state.Store{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartPoller(ctx, store, stubSource{stats: usage.Stats{TotalToolsUsed: 1}}, 10*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for !store.Snapshot().HasData {
		if time.Now().After(deadline) {
			t.Fatalf("poller never published a snapshot")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/prism/internal/usage"
)

func sampleData() *Data {
	last := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Data{
		Stats:        usage.Stats{TotalToolsUsed: 3, FavoriteTool: "color-converter", TotalSessions: 1, LastUsed: &last},
		SessionStats: usage.SessionStats{Total: 1, Active: 1, AverageToolsPerSession: 1},
		Session:      &usage.Session{ID: "s-1", UserID: "u", ToolsUsed: []string{"color-converter"}},
		TopTools:     []usage.ToolCount{{ToolID: "color-converter", Count: 3}, {ToolID: "gradient", Count: 1}},
	}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(sampleData(), nil)

	snap := s.Snapshot()
	if !snap.HasData || snap.Stats.FavoriteTool != "color-converter" {
		t.Fatalf("snapshot stats = %#v, want favorite color-converter", snap.Stats)
	}
	if !snap.HasSession || snap.Session.ID != "s-1" {
		t.Fatalf("snapshot session = %#v, want s-1", snap.Session)
	}
	if len(snap.TopTools) != 2 || snap.TopTools[0].Count != 3 {
		t.Fatalf("snapshot top tools = %#v, want 2 items", snap.TopTools)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.TopTools[0].Count = 999
	snap.Session.ToolsUsed[0] = "changed"
	*snap.Stats.LastUsed = time.Time{}
	snap2 := s.Snapshot()
	if snap2.TopTools[0].Count != 3 {
		t.Fatalf("Snapshot should clone top tools; got count %d want 3", snap2.TopTools[0].Count)
	}
	if snap2.Session.ToolsUsed[0] != "color-converter" {
		t.Fatalf("Snapshot should clone session tools; got %q", snap2.Session.ToolsUsed[0])
	}
	if snap2.Stats.LastUsed.IsZero() {
		t.Fatalf("Snapshot should clone LastUsed")
	}
}

func TestStore_UpdateWithoutSessionClearsIt(t *testing.T) {
	var s Store
	s.Update(sampleData(), nil)

	data := sampleData()
	data.Session = nil
	s.Update(data, nil)

	if snap := s.Snapshot(); snap.HasSession || snap.Session.ID != "" {
		t.Fatalf("session = %#v HasSession=%v, want cleared", snap.Session, snap.HasSession)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(sampleData(), nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if snap.Stats.TotalToolsUsed != prev.Stats.TotalToolsUsed || snap.Session.ID != prev.Session.ID {
		t.Fatalf("data changed on error: got %#v want %#v", snap.Stats, prev.Stats)
	}
	if len(snap.TopTools) != 2 {
		t.Fatalf("top tools changed on error: got %#v want %#v", snap.TopTools, prev.TopTools)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store = %d failures offline=%v, want 0/false", snap.ConsecutiveFailures, snap.IsOffline())
	}

	for i := 1; i <= 3; i++ {
		s.Update(nil, errors.New("fail"))
		snap = s.Snapshot()
		if snap.ConsecutiveFailures != i {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i)
		}
		if want := i >= 2; snap.IsOffline() != want {
			t.Fatalf("IsOffline() = %v with %d failures, want %v", snap.IsOffline(), i, want)
		}
	}

	// Success resets counter
	s.Update(sampleData(), nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success = %d failures offline=%v, want 0/false", snap.ConsecutiveFailures, snap.IsOffline())
	}
}

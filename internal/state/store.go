package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/prism/internal/usage"
)

// Data is one refresh worth of usage summaries.
type Data struct {
	Stats        usage.Stats
	SessionStats usage.SessionStats
	Session      *usage.Session
	TopTools     []usage.ToolCount
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Stats               usage.Stats
	SessionStats        usage.SessionStats
	Session             usage.Session
	HasSession          bool
	TopTools            []usage.ToolCount
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
}

// IsOffline returns true when the usage backend has failed several refreshes in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored summaries. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(data *Data, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if data != nil {
		s.snapshot.Stats = cloneStats(data.Stats)
		s.snapshot.SessionStats = data.SessionStats
		s.snapshot.TopTools = cloneTools(data.TopTools)
		if data.Session != nil {
			s.snapshot.Session = cloneSession(*data.Session)
			s.snapshot.HasSession = true
		} else {
			s.snapshot.Session = usage.Session{}
			s.snapshot.HasSession = false
		}
		s.snapshot.HasData = true
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Stats = cloneStats(s.snapshot.Stats)
	snap.TopTools = cloneTools(s.snapshot.TopTools)
	snap.Session = cloneSession(s.snapshot.Session)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneTools(items []usage.ToolCount) []usage.ToolCount {
	if len(items) == 0 {
		return nil
	}
	dup := make([]usage.ToolCount, len(items))
	copy(dup, items)
	return dup
}

func cloneStats(st usage.Stats) usage.Stats {
	if st.LastUsed != nil {
		last := *st.LastUsed
		st.LastUsed = &last
	}
	return st
}

func cloneSession(s usage.Session) usage.Session {
	if s.ToolsUsed != nil {
		s.ToolsUsed = append([]string(nil), s.ToolsUsed...)
	}
	if s.EndedAt != nil {
		ended := *s.EndedAt
		s.EndedAt = &ended
	}
	return s
}

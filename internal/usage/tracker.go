package usage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	anonymousUser = "anonymous"
	statsHistory  = 1000
)

// TrackerOptions configures a Tracker.
type TrackerOptions struct {
	// UserID identifies the authenticated user. Empty means unauthenticated.
	UserID string
	// Limiter throttles TrackToolUsage. Nil disables throttling.
	Limiter *RateLimiter
	// Now overrides the clock; tests use it to pin timestamps.
	Now func() time.Time
}

// Tracker records tool usage and keeps the current session for one user.
type Tracker struct {
	backend Backend
	userID  string
	limiter *RateLimiter
	now     func() time.Time

	mu      sync.Mutex
	current *Session
}

// NewTracker wires a tracker to backend.
func NewTracker(backend Backend, opts TrackerOptions) *Tracker {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		backend: backend,
		userID:  strings.TrimSpace(opts.UserID),
		limiter: opts.Limiter,
		now:     now,
	}
}

// UserID returns the user the tracker records for.
func (t *Tracker) UserID() string { return t.userID }

// Authenticated reports whether a user id is configured.
func (t *Tracker) Authenticated() bool { return t.userID != "" }

func (t *Tracker) sessionUser() string {
	if t.userID == "" {
		return anonymousUser
	}
	return t.userID
}

// StartSession opens a new session and makes it current.
func (t *Tracker) StartSession(ctx context.Context) (Session, error) {
	now := t.now()
	created, err := t.backend.CreateSession(ctx, Session{
		UserID:    t.sessionUser(),
		StartedAt: now,
		ToolsUsed: []string{},
		CreatedAt: now,
	})
	if err != nil {
		return Session{}, fmt.Errorf("start session: %w", err)
	}
	t.mu.Lock()
	t.current = &created
	t.mu.Unlock()
	return cloneSession(created), nil
}

// EndSession stamps the current session with its end time and duration and
// clears it. It returns ErrNoSession when nothing is active.
func (t *Tracker) EndSession(ctx context.Context) (Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return Session{}, ErrNoSession
	}
	ended := cloneSession(*t.current)
	end := t.now()
	ended.EndedAt = &end
	ended.Duration = FormatDuration(end.Sub(ended.StartedAt))
	if err := t.backend.UpdateSession(ctx, ended); err != nil {
		return Session{}, fmt.Errorf("end session: %w", err)
	}
	t.current = nil
	return ended, nil
}

// CurrentSession returns a copy of the active session, if any.
func (t *Tracker) CurrentSession() (Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return Session{}, false
	}
	return cloneSession(*t.current), true
}

// AddToolToSession appends toolID to the current session's tool list once.
// A session is started first when none is active.
func (t *Tracker) AddToolToSession(ctx context.Context, toolID string) error {
	toolID = strings.TrimSpace(toolID)
	if toolID == "" {
		return &ValidationError{Record: "session", Field: "tool_id"}
	}
	if _, ok := t.CurrentSession(); !ok {
		if _, err := t.StartSession(ctx); err != nil {
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return ErrNoSession
	}
	for _, id := range t.current.ToolsUsed {
		if id == toolID {
			return nil
		}
	}
	next := cloneSession(*t.current)
	next.ToolsUsed = append(next.ToolsUsed, toolID)
	if err := t.backend.UpdateSession(ctx, next); err != nil {
		return fmt.Errorf("add tool to session: %w", err)
	}
	t.current = &next
	return nil
}

// TrackToolUsage stores one usage row for toolID and adds the tool to the
// current session. Unauthenticated trackers return ErrUnauthenticated and
// throttled calls return ErrRateLimited; neither writes anything.
func (t *Tracker) TrackToolUsage(ctx context.Context, toolID, toolName string, metadata map[string]string) (ToolUsage, error) {
	if !t.Authenticated() {
		return ToolUsage{}, ErrUnauthenticated
	}
	if !t.limiter.Allow(t.userID + ":" + toolID) {
		return ToolUsage{}, ErrRateLimited
	}
	var meta map[string]string
	if len(metadata) > 0 {
		meta = make(map[string]string, len(metadata))
		for k, v := range metadata {
			meta[k] = v
		}
	}
	rec, err := t.backend.CreateUsage(ctx, ToolUsage{
		UserID:   t.userID,
		ToolID:   toolID,
		ToolName: toolName,
		UsedAt:   t.now(),
		Metadata: meta,
	})
	if err != nil {
		return ToolUsage{}, fmt.Errorf("track %s: %w", toolID, err)
	}
	if err := t.AddToolToSession(ctx, toolID); err != nil {
		log.Printf("usage: %s recorded but session not updated: %v", toolID, err)
	}
	return rec, nil
}

// Track is the open-a-tool hook: it records usage and adds the tool to the
// session. Anonymous users still get the tool added to their session.
func (t *Tracker) Track(ctx context.Context, toolID, toolName string) error {
	_, err := t.TrackToolUsage(ctx, toolID, toolName, nil)
	if errors.Is(err, ErrUnauthenticated) {
		return t.AddToolToSession(ctx, toolID)
	}
	return err
}

// Stats summarizes the user's last statsHistory usage rows and all sessions.
func (t *Tracker) Stats(ctx context.Context) (Stats, error) {
	if !t.Authenticated() {
		return Stats{}, ErrUnauthenticated
	}
	rows, err := t.backend.ListUsage(ctx, UsageQuery{UserID: t.userID, Limit: statsHistory})
	if err != nil {
		return Stats{}, fmt.Errorf("load usage: %w", err)
	}
	sessions, err := t.backend.ListSessions(ctx, t.userID, 0)
	if err != nil {
		return Stats{}, fmt.Errorf("load sessions: %w", err)
	}

	stats := Stats{TotalToolsUsed: len(rows), TotalSessions: len(sessions)}
	if counts := countTools(rows); len(counts) > 0 {
		stats.FavoriteTool = counts[0].ToolID
	}
	if len(rows) > 0 {
		last := rows[0].UsedAt
		stats.LastUsed = &last
	}
	return stats, nil
}

// MostUsedTools ranks tools by usage count, highest first. Ties keep the
// order in which tools first appear in the newest-first history. n <= 0
// returns every tool.
func (t *Tracker) MostUsedTools(ctx context.Context, n int) ([]ToolCount, error) {
	if !t.Authenticated() {
		return nil, ErrUnauthenticated
	}
	rows, err := t.backend.ListUsage(ctx, UsageQuery{UserID: t.userID})
	if err != nil {
		return nil, fmt.Errorf("load usage: %w", err)
	}
	counts := countTools(rows)
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts, nil
}

// SessionStats summarizes every session the user has opened.
func (t *Tracker) SessionStats(ctx context.Context) (SessionStats, error) {
	if !t.Authenticated() {
		return SessionStats{}, ErrUnauthenticated
	}
	sessions, err := t.backend.ListSessions(ctx, t.userID, 0)
	if err != nil {
		return SessionStats{}, fmt.Errorf("load sessions: %w", err)
	}
	var out SessionStats
	tools := 0
	for _, s := range sessions {
		out.Total++
		if s.Active() {
			out.Active++
		} else {
			out.Completed++
		}
		tools += len(s.ToolsUsed)
	}
	if out.Total > 0 {
		out.AverageToolsPerSession = math.Round(float64(tools)/float64(out.Total)*10) / 10
	}
	return out, nil
}

// FormatDuration renders d as whole minutes, never less than one.
func FormatDuration(d time.Duration) string {
	minutes := int(math.Round(d.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}

func countTools(rows []ToolUsage) []ToolCount {
	index := make(map[string]int)
	var counts []ToolCount
	for _, r := range rows {
		i, ok := index[r.ToolID]
		if !ok {
			index[r.ToolID] = len(counts)
			counts = append(counts, ToolCount{ToolID: r.ToolID, ToolName: r.ToolName})
			i = len(counts) - 1
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts
}

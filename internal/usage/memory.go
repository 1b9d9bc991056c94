package usage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps records in process. It backs the "memory" backend and
// tests; nothing survives a restart.
type MemoryStore struct {
	mu       sync.Mutex
	usage    []ToolUsage
	sessions map[string]Session
	order    []string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) CreateUsage(_ context.Context, u ToolUsage) (ToolUsage, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if err := u.Validate(); err != nil {
		return ToolUsage{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usage = append(m.usage, u)
	return u, nil
}

func (m *MemoryStore) ListUsage(_ context.Context, q UsageQuery) ([]ToolUsage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []ToolUsage
	// Walk backwards so equal timestamps keep newest-insert-first order.
	for i := len(m.usage) - 1; i >= 0; i-- {
		u := m.usage[i]
		if u.UserID != q.UserID {
			continue
		}
		if q.ToolID != "" && u.ToolID != q.ToolID {
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UsedAt.After(out[j].UsedAt) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *MemoryStore) CreateSession(_ context.Context, s Session) (Session, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if err := s.Validate(); err != nil {
		return Session{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = cloneSession(s)
	m.order = append(m.order, s.ID)
	return s, nil
}

func (m *MemoryStore) GetSession(_ context.Context, id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return cloneSession(s), nil
}

func (m *MemoryStore) UpdateSession(_ context.Context, s Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return ErrNotFound
	}
	m.sessions[s.ID] = cloneSession(s)
	return nil
}

func (m *MemoryStore) ListSessions(_ context.Context, userID string, limit int) ([]Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Session
	for i := len(m.order) - 1; i >= 0; i-- {
		s := m.sessions[m.order[i]]
		if s.UserID == userID {
			out = append(out, cloneSession(s))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }

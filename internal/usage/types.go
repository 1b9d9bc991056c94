package usage

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ToolUsage is one recorded use of a tool.
type ToolUsage struct {
	ID       string            `json:"id"`
	UserID   string            `json:"user_id"`
	ToolID   string            `json:"tool_id"`
	ToolName string            `json:"tool_name"`
	UsedAt   time.Time         `json:"used_at"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Session spans one authenticated run of the application.
type Session struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	ToolsUsed []string   `json:"tools_used"`
	Duration  string     `json:"session_duration,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Active reports whether the session has not been ended.
func (s Session) Active() bool { return s.EndedAt == nil }

// Stats summarizes a user's tool usage.
type Stats struct {
	TotalToolsUsed int
	FavoriteTool   string
	TotalSessions  int
	LastUsed       *time.Time
}

// SessionStats summarizes a user's sessions.
type SessionStats struct {
	Total                  int
	Completed              int
	Active                 int
	AverageToolsPerSession float64
}

// ToolCount is one row of the most-used ranking.
type ToolCount struct {
	ToolID   string
	ToolName string
	Count    int
}

// Sentinel errors returned by the tracker and backends.
var (
	ErrUnauthenticated = errors.New("user must be authenticated")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrNotFound        = errors.New("record not found")
	ErrNoSession       = errors.New("no active session")
)

// ValidationError reports a record that is missing a required field.
type ValidationError struct {
	Record string
	Field  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s record: %s is required", e.Record, e.Field)
}

// Validate checks the fields every stored usage row must carry.
func (u ToolUsage) Validate() error {
	switch {
	case strings.TrimSpace(u.UserID) == "":
		return &ValidationError{Record: "tool_usage", Field: "user_id"}
	case strings.TrimSpace(u.ToolID) == "":
		return &ValidationError{Record: "tool_usage", Field: "tool_id"}
	case strings.TrimSpace(u.ToolName) == "":
		return &ValidationError{Record: "tool_usage", Field: "tool_name"}
	case u.UsedAt.IsZero():
		return &ValidationError{Record: "tool_usage", Field: "used_at"}
	}
	return nil
}

// Validate checks the fields every stored session row must carry.
func (s Session) Validate() error {
	switch {
	case strings.TrimSpace(s.ID) == "":
		return &ValidationError{Record: "session", Field: "id"}
	case strings.TrimSpace(s.UserID) == "":
		return &ValidationError{Record: "session", Field: "user_id"}
	case s.StartedAt.IsZero():
		return &ValidationError{Record: "session", Field: "started_at"}
	}
	return nil
}

func cloneSession(s Session) Session {
	if s.ToolsUsed != nil {
		s.ToolsUsed = append([]string(nil), s.ToolsUsed...)
	}
	if s.EndedAt != nil {
		ended := *s.EndedAt
		s.EndedAt = &ended
	}
	return s
}

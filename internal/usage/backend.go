package usage

import "context"

// Backend is the record contract the tracker relies on. Implementations
// assign IDs on create and validate every record they return.
type Backend interface {
	CreateUsage(ctx context.Context, u ToolUsage) (ToolUsage, error)
	ListUsage(ctx context.Context, q UsageQuery) ([]ToolUsage, error)

	CreateSession(ctx context.Context, s Session) (Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
	UpdateSession(ctx context.Context, s Session) error
	ListSessions(ctx context.Context, userID string, limit int) ([]Session, error)

	Close() error
}

// UsageQuery filters ListUsage. Results are newest first.
type UsageQuery struct {
	UserID string
	ToolID string // empty matches every tool
	Limit  int    // zero or negative means no limit
}

// Compile-time interface checks.
var (
	_ Backend = (*MemoryStore)(nil)
	_ Backend = (*SQLiteStore)(nil)
	_ Backend = (*Client)(nil)
)

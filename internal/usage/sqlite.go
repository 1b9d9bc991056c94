package usage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps usage and session records in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open usage db: %w", err)
	}
	_, _ = db.Exec("PRAGMA journal_mode=WAL;")
	_, _ = db.Exec("PRAGMA synchronous=NORMAL;")

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate usage db: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS tool_usage (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  tool_id TEXT NOT NULL,
  tool_name TEXT NOT NULL,
  used_at INTEGER NOT NULL,
  metadata_json TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_tool_usage_user ON tool_usage(user_id, used_at);

CREATE TABLE IF NOT EXISTS user_sessions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  started_at INTEGER NOT NULL,
  ended_at INTEGER NOT NULL DEFAULT 0,
  tools_json TEXT NOT NULL DEFAULT '[]',
  session_duration TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_user_sessions_user ON user_sessions(user_id, started_at);
`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) CreateUsage(ctx context.Context, u ToolUsage) (ToolUsage, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if err := u.Validate(); err != nil {
		return ToolUsage{}, err
	}
	meta := u.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return ToolUsage{}, fmt.Errorf("encode metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO tool_usage(id,user_id,tool_id,tool_name,used_at,metadata_json)
VALUES(?,?,?,?,?,?)
`, u.ID, u.UserID, u.ToolID, u.ToolName, u.UsedAt.UnixNano(), string(metaJSON))
	if err != nil {
		return ToolUsage{}, fmt.Errorf("insert tool usage: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) ListUsage(ctx context.Context, q UsageQuery) ([]ToolUsage, error) {
	query := `SELECT id,user_id,tool_id,tool_name,used_at,metadata_json FROM tool_usage WHERE user_id=?`
	args := []any{q.UserID}
	if q.ToolID != "" {
		query += ` AND tool_id=?`
		args = append(args, q.ToolID)
	}
	query += ` ORDER BY used_at DESC, rowid DESC LIMIT ?`
	args = append(args, sqlLimit(q.Limit))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tool usage: %w", err)
	}
	defer rows.Close()

	var out []ToolUsage
	for rows.Next() {
		var (
			u        ToolUsage
			usedAt   int64
			metaJSON string
		)
		if err := rows.Scan(&u.ID, &u.UserID, &u.ToolID, &u.ToolName, &usedAt, &metaJSON); err != nil {
			return nil, fmt.Errorf("scan tool usage: %w", err)
		}
		u.UsedAt = time.Unix(0, usedAt)
		if err := json.Unmarshal([]byte(metaJSON), &u.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata for %s: %w", u.ID, err)
		}
		if len(u.Metadata) == 0 {
			u.Metadata = nil
		}
		if err := u.Validate(); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CreateSession(ctx context.Context, sess Session) (Session, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if err := sess.Validate(); err != nil {
		return Session{}, err
	}
	tools, err := encodeTools(sess.ToolsUsed)
	if err != nil {
		return Session{}, err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO user_sessions(id,user_id,started_at,ended_at,tools_json,session_duration,created_at)
VALUES(?,?,?,?,?,?,?)
`, sess.ID, sess.UserID, sess.StartedAt.UnixNano(), endedAtValue(sess.EndedAt), tools, sess.Duration, sess.CreatedAt.UnixNano())
	if err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id,user_id,started_at,ended_at,tools_json,session_duration,created_at
FROM user_sessions WHERE id=?
`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	return sess, err
}

func (s *SQLiteStore) UpdateSession(ctx context.Context, sess Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	tools, err := encodeTools(sess.ToolsUsed)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE user_sessions SET ended_at=?, tools_json=?, session_duration=? WHERE id=?
`, endedAtValue(sess.EndedAt), tools, sess.Duration, sess.ID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListSessions(ctx context.Context, userID string, limit int) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id,user_id,started_at,ended_at,tools_json,session_duration,created_at
FROM user_sessions WHERE user_id=? ORDER BY started_at DESC, rowid DESC LIMIT ?
`, userID, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, error) {
	var (
		sess               Session
		started, ended     int64
		created            int64
		toolsJSON, durText string
	)
	if err := row.Scan(&sess.ID, &sess.UserID, &started, &ended, &toolsJSON, &durText, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, err
		}
		return Session{}, fmt.Errorf("scan session: %w", err)
	}
	sess.StartedAt = time.Unix(0, started)
	sess.CreatedAt = time.Unix(0, created)
	if ended != 0 {
		t := time.Unix(0, ended)
		sess.EndedAt = &t
	}
	sess.Duration = durText
	if err := json.Unmarshal([]byte(toolsJSON), &sess.ToolsUsed); err != nil {
		return Session{}, fmt.Errorf("decode tools for session %s: %w", sess.ID, err)
	}
	if err := sess.Validate(); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func encodeTools(tools []string) (string, error) {
	if tools == nil {
		tools = []string{}
	}
	b, err := json.Marshal(tools)
	if err != nil {
		return "", fmt.Errorf("encode tools: %w", err)
	}
	return string(b), nil
}

func endedAtValue(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixNano()
}

func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

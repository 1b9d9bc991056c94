// Package usage records tool usage events and application sessions.
//
// # Overview
//
// The color tools report what a user opens and for how long. This package
// owns that bookkeeping: typed records, a pluggable storage contract, the
// Tracker that applies the rules, and a small sliding-window rate limiter.
// Identity is supplied by the caller; the package never issues or checks
// credentials itself.
//
// # Architecture
//
//   - types.go: ToolUsage, Session, summary types, sentinel errors, validation
//   - backend.go: the Backend interface every store implements
//   - memory.go: in-process store used by tests and the "memory" backend
//   - sqlite.go: SQLite store on mattn/go-sqlite3
//   - client.go: HTTP JSON client for a hosted usage API
//   - tracker.go: Tracker, the explicit context callers hold
//   - ratelimit.go: per-key sliding-window limiter
//
// # Records
//
// Rows are validated at every boundary. Backends validate on create and on
// read, and the HTTP client validates each decoded item, so a malformed row
// surfaces as a *ValidationError instead of a half-filled struct:
//
//	var verr *usage.ValidationError
//	if errors.As(err, &verr) {
//		log.Printf("bad %s row: missing %s", verr.Record, verr.Field)
//	}
//
// # Tracker
//
// A Tracker is built once per run and handed to whoever needs it:
//
//	tracker := usage.NewTracker(store, usage.TrackerOptions{
//		UserID:  cfg.UserID,
//		Limiter: usage.NewRateLimiter(usage.DefaultRateLimit, usage.DefaultRateWindow),
//	})
//	if _, err := tracker.StartSession(ctx); err != nil {
//		log.Printf("session start failed: %v", err)
//	}
//	defer tracker.EndSession(context.Background())
//
// Rules:
//   - TrackToolUsage requires a user id and returns ErrUnauthenticated otherwise
//   - at most ten events per user and tool per minute; excess returns ErrRateLimited
//   - a tracked tool is added to the current session once; a session is
//     started on demand when none is active
//   - sessions without a user belong to "anonymous"
//   - EndSession stores the duration as whole minutes, at least "1 min"
//
// # Summaries
//
// Stats looks at the newest 1000 usage rows. The favorite tool is the one
// with the highest count; on a tie the tool seen first in the newest-first
// history wins. SessionStats reports the average tools per session rounded
// to one decimal place.
//
// # Thread Safety
//
// Tracker, RateLimiter, MemoryStore and SQLiteStore are safe for concurrent
// use. The Tracker serializes changes to the current session.
package usage

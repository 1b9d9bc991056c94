// Package app wires configuration, usage tracking, the refresh poller and
// the UI into the running prism application.
//
// # Overview
//
// This package is the composition root. Nothing else in the module reads
// config files or opens databases on its own; Run does it once and hands the
// results down.
//
// # Startup Sequence
//
//  1. Load ~/.config/prism/config.toml (or the -config override)
//  2. Route the standard logger to the configured log file
//  3. Load UI preferences (theme, last color)
//  4. Open the usage backend: sqlite, http, memory, or none
//  5. Build a usage.Tracker and start a session
//  6. Refresh the state store once, then start the poller
//  7. Run the TUI until the user quits
//  8. End the session with a short timeout of its own
//
// With usage_backend = "none" steps 5, 6 and 8 are skipped and the stats view
// reports that tracking is off.
//
// # Components
//
//   - app.go: Run, backend selection, logging setup
//   - poller.go: background refresh of usage summaries into state.Store
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ config, prefs, backend
//	└──────┬───────┘
//	       │
//	       ├──→ usage.Tracker ──→ Backend (SQLite / HTTP / memory)
//	       │          ↑
//	       │     StartPoller ──→ state.Store
//	       │                          ↑
//	       └──→ ui.Run() ─────────────┘ (Snapshot on each tick)
//
// # Poller Backoff
//
// The poller refreshes every poll_seconds. After a failed refresh the wait
// doubles per consecutive failure (2s, 4s, 8s, ...) and is capped at 30s.
// A success resets it. An anonymous user is not a failure: the store gets
// the session and empty stats.
//
// # Shutdown
//
// Cancelling the context (SIGINT/SIGTERM via cmd/prism) stops the poller.
// The session is ended with a fresh context so it is still recorded after
// the run context is gone.
package app

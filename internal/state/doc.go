// Package state holds the usage summaries shared between the refresh poller
// and the UI.
//
// # Overview
//
// The poller reads stats, session stats and the most-used tools from the
// usage tracker on a fixed cadence. The UI renders them whenever it redraws.
// Store is the single hand-off point between those two goroutines.
//
//	Producer (poller):              Consumer (UI):
//	┌──────────────────┐           ┌──────────────────┐
//	│ tracker.Stats()  │           │                  │
//	│ tracker.Session… │           │                  │
//	│       ↓          │           │                  │
//	│ store.Update()   │──────────→│ store.Snapshot() │
//	│       ↓          │  (mutex)  │       ↓          │
//	│   repeat...      │           │  render stats    │
//	└──────────────────┘           └──────────────────┘
//
// # Update Semantics
//
//	// Success: replace every summary
//	store.Update(&state.Data{Stats: st, SessionStats: ss, TopTools: top}, nil)
//
//	// Failure: keep the last good summaries, record the error
//	store.Update(nil, err)
//
// Each failure bumps ConsecutiveFailures; a success resets it. IsOffline
// reports true from the second failure in a row so a single blip does not
// flash an offline banner.
//
// # Defensive Copying
//
// Snapshot returns copies of every slice and pointer it holds (top tools,
// the session's tool list, LastUsed) and wraps LastError in a fresh value.
// Callers may mutate what they get back.
//
// # Zero Value
//
// The zero Store is ready to use; Snapshot on a never-updated store returns
// a zero Snapshot with HasData false.
package state

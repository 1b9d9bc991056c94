// Package logtail reads the end of prism's log file for the Log view.
//
// # Reading
//
// Tail seeks to the end of the file and reads 4 KiB blocks backwards until it
// has n complete lines, so the cost depends on n and not on the file size:
//
//	lines, err := logtail.Tail(cfg.LogFile, 200)
//	if err != nil {
//		log.Printf("read log: %v", err)
//	}
//
// Lines come back oldest first with trailing newlines and carriage returns
// removed. A partial line at the start of the read window is dropped. A
// missing file is not an error; the log is created on first write.
//
// # Levels
//
// The standard logger writes no levels, so Classify infers one from the
// wording of the line:
//
//   - LevelError: "error", "failed" or "panic"
//   - LevelWarn: "warn", "unavailable" or "rate limit"
//   - LevelInfo: everything else
//
// Matching is case-insensitive. The UI colors lines by level.
package logtail

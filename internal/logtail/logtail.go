package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const blockSize = 4096

// Level classifies a log line for display.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// Line is one log line with its classification.
type Line struct {
	Text  string
	Level Level
}

// Tail returns at most n lines from the end of the file at path, oldest
// first. A missing file yields no lines and no error.
func Tail(path string, n int) ([]Line, error) {
	if n <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}

	// Read blocks backwards until the buffer holds n full lines.
	var buf []byte
	offset := info.Size()
	for offset > 0 && bytes.Count(buf, []byte{'\n'}) <= n {
		size := int64(blockSize)
		if offset < size {
			size = offset
		}
		offset -= size
		block := make([]byte, size)
		if _, err := file.ReadAt(block, offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read log: %w", err)
		}
		buf = append(block, buf...)
	}

	text := strings.TrimRight(string(buf), "\n")
	if text == "" {
		return nil, nil
	}
	raw := strings.Split(text, "\n")
	if offset > 0 {
		// The first piece may be the tail of a line that started earlier.
		raw = raw[1:]
	}
	if len(raw) > n {
		raw = raw[len(raw)-n:]
	}

	lines := make([]Line, len(raw))
	for i, r := range raw {
		r = strings.TrimRight(r, "\r")
		lines[i] = Line{Text: r, Level: Classify(r)}
	}
	return lines, nil
}

// Classify guesses the level of a log line from its wording.
func Classify(line string) Level {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "failed"), strings.Contains(lower, "panic"):
		return LevelError
	case strings.Contains(lower, "warn"), strings.Contains(lower, "unavailable"), strings.Contains(lower, "rate limit"):
		return LevelWarn
	default:
		return LevelInfo
	}
}

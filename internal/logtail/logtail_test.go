package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prism.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestTail(t *testing.T) {
	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}
	path := writeLog(t, content.String())

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "zero", n: 0, want: nil},
		{name: "partial", n: 3, want: all[7:]},
		{name: "exact", n: 10, want: all},
		{name: "more than exists", n: 50, want: all},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(path, tt.n)
			if err != nil {
				t.Fatalf("Tail returned error: %v", err)
			}
			if strings.Join(texts(got), "|") != strings.Join(tt.want, "|") {
				t.Fatalf("Tail(%d) = %v, want %v", tt.n, texts(got), tt.want)
			}
		})
	}
}

func TestTail_SpansBlocks(t *testing.T) {
	var content strings.Builder
	for i := 0; i < 2000; i++ {
		fmt.Fprintf(&content, "prism 2024/03/01 12:00:00 line %04d %s\n", i, strings.Repeat("x", 20))
	}
	path := writeLog(t, content.String())

	got, err := Tail(path, 300)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(got) != 300 {
		t.Fatalf("len = %d, want 300", len(got))
	}
	if !strings.Contains(got[0].Text, "line 1700 ") || !strings.Contains(got[299].Text, "line 1999 ") {
		t.Fatalf("window = %q .. %q, want lines 1700..1999", got[0].Text, got[299].Text)
	}
}

func TestTail_NoTrailingNewlineAndCRLF(t *testing.T) {
	path := writeLog(t, "one\r\ntwo\r\nthree")
	got, err := Tail(path, 2)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if strings.Join(texts(got), "|") != "two|three" {
		t.Fatalf("Tail = %v, want [two three]", texts(got))
	}
}

func TestTail_MissingAndEmpty(t *testing.T) {
	got, err := Tail(filepath.Join(t.TempDir(), "missing.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("missing file = %v, %v; want nil, nil", got, err)
	}
	got, err = Tail(writeLog(t, ""), 10)
	if err != nil || got != nil {
		t.Fatalf("empty file = %v, %v; want nil, nil", got, err)
	}
}

func TestClassify(t *testing.T) {
	tests := map[string]Level{
		"prism 12:00:00 usage tracking failed: boom": LevelError,
		"prism 12:00:00 ERROR something":             LevelError,
		"prism 12:00:00 usage backend unavailable":   LevelWarn,
		"prism 12:00:00 rate limit exceeded":         LevelWarn,
		"prism 12:00:00 session started":             LevelInfo,
	}
	for line, want := range tests {
		if got := Classify(line); got != want {
			t.Fatalf("Classify(%q) = %v, want %v", line, got, want)
		}
	}
}

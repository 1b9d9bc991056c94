package ui

import (
	"testing"

	"github.com/five82/prism/internal/prefs"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Tailwind", "Nightfox", "Kanagawa"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
	names[0] = "mutated"
	if ThemeNames()[0] != "Tailwind" {
		t.Fatalf("ThemeNames should return a copy")
	}
}

func TestNextTheme(t *testing.T) {
	tests := map[string]string{
		"Tailwind": "Nightfox",
		"Nightfox": "Kanagawa",
		"Kanagawa": "Tailwind",
		"Unknown":  "Tailwind",
	}
	for current, want := range tests {
		if got := NextTheme(current); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %s", current, got, want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%s).Name = %q, want %s", name, got, name)
		}
	}
	if got := GetTheme("Unknown").Name; got != prefs.DefaultTheme {
		t.Fatalf("GetTheme(Unknown).Name = %q, want %s (fallback)", got, prefs.DefaultTheme)
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		colors := []string{
			th.Background, th.Surface, th.SurfaceAlt, th.FocusBg, th.Border, th.BorderFocus,
			th.Text, th.Muted, th.Faint, th.Accent, th.Success, th.Warning, th.Danger, th.Info,
		}
		for i, c := range colors {
			if len(c) != 7 || c[0] != '#' {
				t.Fatalf("%s color #%d = %q, want #rrggbb", name, i, c)
			}
		}
	}
}

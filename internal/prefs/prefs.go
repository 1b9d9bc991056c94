// Package prefs persists prism user preferences in ~/.config/prism/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/prism/internal/color"
	"github.com/five82/prism/internal/config"
)

// Prefs holds choices the UI remembers between runs.
type Prefs struct {
	Theme     string `toml:"theme"`
	LastColor string `toml:"last_color,omitempty"`
}

// DefaultTheme is used until the user picks another.
const DefaultTheme = "Tailwind"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return filepath.Join(config.Dir(), "prefs.toml")
}

// Load reads preferences from path. Any problem reading or parsing the file
// yields defaults; preferences never block startup.
func Load(path string) Prefs {
	p := Prefs{Theme: DefaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return p
	}
	bytes, err := os.ReadFile(resolved)
	if err != nil {
		return p
	}
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return Prefs{Theme: DefaultTheme}
	}

	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}
	if c, err := color.ParseHex(p.LastColor); err == nil {
		p.LastColor = color.RGBToHex(c)
	} else {
		p.LastColor = ""
	}
	return p
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath(), nil
	}
	return config.ExpandPath(path)
}

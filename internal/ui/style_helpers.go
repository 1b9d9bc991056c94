package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints runs of text on one background color, gaps included. Without
// it the spaces between styled words show the terminal background.
type BgStyle struct {
	fill lipgloss.Style
}

// NewBgStyle returns a painter for bgColor.
func NewBgStyle(bgColor string) BgStyle {
	return BgStyle{fill: lipgloss.NewStyle().Background(lipgloss.Color(bgColor))}
}

// Render styles each word of text with style on the shared background and
// paints the spaces between words.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Inherit(b.fill)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.Space())
}

// Space returns one painted space.
func (b BgStyle) Space() string {
	return b.fill.Render(" ")
}

// Join joins parts with a painted separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.fill.Render(sep))
}

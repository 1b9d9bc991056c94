package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/prism/internal/logtail"
)

// renderLog renders the newest log lines that fit between header and command bar.
func (m Model) renderLog() string {
	styles := m.theme.Styles()
	pad := lipgloss.NewStyle().Padding(0, 1)

	switch {
	case m.logPath == "":
		return pad.Render(styles.MutedText.Render("No log file configured."))
	case m.logErr != nil:
		return pad.Render(styles.DangerText.Render("Read log: " + m.logErr.Error()))
	case len(m.logLines) == 0:
		return pad.Render(styles.FaintText.Render("Log is empty: " + m.logPath))
	}

	// Header and command bar take one line each.
	room := m.height - 2
	if room < 1 {
		room = 1
	}
	lines := m.logLines
	if len(lines) > room {
		lines = lines[len(lines)-room:]
	}

	width := m.width - 2
	out := make([]string, len(lines))
	for i, l := range lines {
		style := styles.Text
		switch l.Level {
		case logtail.LevelError:
			style = styles.DangerText
		case logtail.LevelWarn:
			style = styles.WarningText
		}
		out[i] = style.Render(truncate(l.Text, width))
	}
	return pad.Render(strings.Join(out, "\n"))
}

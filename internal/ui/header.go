package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the logo, the view tabs and the tracking status.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("prism", styles.Logo)}

	var tabs []string
	for _, v := range viewOrder {
		if v == m.currentView {
			tabs = append(tabs, bg.Render("["+v.String()+"]", styles.AccentText.Bold(true)))
		} else {
			tabs = append(tabs, bg.Render(v.String(), styles.MutedText))
		}
	}
	parts = append(parts, bg.Join(tabs, " "))

	switch {
	case m.tracker == nil:
		parts = append(parts, bg.Render("tracking off", styles.FaintText))
	case m.snapshot.IsOffline():
		parts = append(parts, bg.Render("● usage offline", styles.DangerText))
	case m.userID == "":
		parts = append(parts, bg.Render("● anonymous", styles.WarningText))
	default:
		parts = append(parts, bg.Render("● "+m.userID, styles.SuccessText))
	}

	if m.width >= LayoutCompactWidth {
		parts = append(parts, bg.Render("theme", styles.FaintText)+bg.Space()+bg.Render(m.theme.Name, styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the short help, or the editing hint while a field
// has the cursor.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	if m.editing {
		hint := "Editing " + fieldLabel(m.focus) + ". enter or esc to finish"
		return styles.Footer.Width(m.width).Render(hint)
	}
	return lipgloss.NewStyle().Padding(0, 1).Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

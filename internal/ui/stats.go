package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/prism/internal/usage"
)

const topToolBarWidth = 20

// renderStats renders usage and session summaries from the latest snapshot.
func (m Model) renderStats() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	var lines []string
	section := func(title string) {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.AccentText.Bold(true).Render(title))
	}
	row := func(label, value string) {
		lines = append(lines, styles.MutedText.Width(18).Render(label)+styles.Text.Render(value))
	}

	if m.tracker == nil {
		lines = append(lines, styles.MutedText.Render(`Usage tracking is off (usage_backend = "none").`))
		return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
	}

	if snap.IsOffline() && snap.LastError != nil {
		lines = append(lines, styles.DangerText.Render("Usage backend unavailable: "+snap.LastError.Error()), "")
	}

	section("Current session")
	if snap.HasSession {
		row("Started", snap.Session.StartedAt.Local().Format("15:04:05"))
		row("Duration", usage.FormatDuration(time.Since(snap.Session.StartedAt)))
		row("Tools", strings.Join(snap.Session.ToolsUsed, ", "))
	} else {
		row("Status", "no active session")
	}

	if m.userID == "" {
		section("Usage")
		lines = append(lines, styles.MutedText.Render("Set user_id in config.toml to record usage stats."))
		return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
	}

	if !snap.HasData {
		section("Usage")
		lines = append(lines, styles.InfoText.Render("Loading usage stats..."))
		return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
	}

	section("Usage")
	row("Tools used", fmt.Sprintf("%d", snap.Stats.TotalToolsUsed))
	row("Favorite tool", orDash(snap.Stats.FavoriteTool))
	row("Sessions", fmt.Sprintf("%d", snap.Stats.TotalSessions))
	if snap.Stats.LastUsed != nil {
		row("Last used", humanizeAgo(time.Since(*snap.Stats.LastUsed)))
	} else {
		row("Last used", "never")
	}

	section("Sessions")
	ss := snap.SessionStats
	row("Total", fmt.Sprintf("%d", ss.Total))
	row("Completed", fmt.Sprintf("%d", ss.Completed))
	row("Active", fmt.Sprintf("%d", ss.Active))
	row("Avg tools", fmt.Sprintf("%.1f", ss.AverageToolsPerSession))

	section("Most used")
	if len(snap.TopTools) == 0 {
		lines = append(lines, styles.FaintText.Render("nothing recorded yet"))
	}
	for _, tc := range snap.TopTools {
		lines = append(lines, m.renderToolBar(tc, snap.TopTools[0].Count, styles))
	}

	return lipgloss.NewStyle().Margin(1, 1).Render(styles.Panel.Render(strings.Join(lines, "\n")))
}

func (m Model) renderToolBar(tc usage.ToolCount, top int, styles Styles) string {
	width := topToolBarWidth
	if top > 0 {
		width = tc.Count * topToolBarWidth / top
	}
	if width < 1 {
		width = 1
	}
	name := truncate(orDash(tc.ToolName), 18)
	return styles.Text.Width(20).Render(name) +
		styles.AccentText.Render(strings.Repeat("█", width)) +
		styles.MutedText.Render(fmt.Sprintf(" %d", tc.Count))
}

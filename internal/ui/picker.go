package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/prism/internal/color"
)

// pickerRows is the hue rows plus one row of shades of the current color.
func (m Model) pickerRows() int {
	return len(m.palette) + 1
}

func (m Model) pickerColors(row int) []color.RGB {
	if row < len(m.palette) {
		return m.palette[row]
	}
	return color.Shades(m.conv.CurrentRGB(), PickerColumns)
}

// handlePickerKey moves the cursor over the grid and applies the chosen color.
func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.pickerRow > 0 {
			m.pickerRow--
		}
	case key.Matches(msg, m.keys.Down):
		if m.pickerRow < m.pickerRows()-1 {
			m.pickerRow++
		}
	case key.Matches(msg, m.keys.Left):
		if m.pickerCol > 0 {
			m.pickerCol--
		}
	case key.Matches(msg, m.keys.Right):
		if m.pickerCol < PickerColumns-1 {
			m.pickerCol++
		}
	case key.Matches(msg, m.keys.Select):
		chosen := m.pickerColors(m.pickerRow)[m.pickerCol]
		if err := m.conv.UpdateFromPicker(chosen); err == nil {
			m.syncFields(-1)
		}
		m.focus = fieldIndex(color.FormatHex)
		m.currentView = ViewConverter
	}
	return m, nil
}

// renderPicker renders the palette grid with the cursor cell marked.
func (m Model) renderPicker() string {
	styles := m.theme.Styles()

	var lines []string
	lines = append(lines, styles.AccentText.Bold(true).Render("Palette"), "")
	for row := 0; row < m.pickerRows(); row++ {
		if row == len(m.palette) {
			lines = append(lines, "", styles.MutedText.Render("Shades of "+m.conv.State().Hex))
		}
		var cells []string
		for col, c := range m.pickerColors(row) {
			text := strings.Repeat(" ", PickerCellWidth)
			if row == m.pickerRow && col == m.pickerCol {
				text = " ◆" + strings.Repeat(" ", PickerCellWidth-2)
			}
			cells = append(cells, lipgloss.NewStyle().
				Background(lipgloss.Color(color.RGBToHex(c))).
				Foreground(lipgloss.Color(color.RGBToHex(color.Contrast(c)))).
				Render(text))
		}
		lines = append(lines, strings.Join(cells, ""))
	}

	selected := m.pickerColors(m.pickerRow)[m.pickerCol]
	lines = append(lines, "",
		styles.MutedText.Render("Selected ")+styles.Text.Render(color.RGBToHex(selected)+"  "+color.RenderRGB(selected)),
	)
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

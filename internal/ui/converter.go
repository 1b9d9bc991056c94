package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/prism/internal/color"
)

// editable reports whether field i accepts typed input. RGBA and HSLA are
// derived from the base color and alpha only.
func editable(i int) bool {
	switch color.Formats[i] {
	case color.FormatHex, color.FormatRGB, color.FormatHSL:
		return true
	}
	return false
}

func fieldIndex(f color.Format) int {
	for i, candidate := range color.Formats {
		if candidate == f {
			return i
		}
	}
	return 0
}

// syncFields copies the converter's texts into every field except skip.
func (m *Model) syncFields(skip int) {
	st := m.conv.State()
	for i, f := range color.Formats {
		if i == skip {
			continue
		}
		m.fields[i].SetValue(st.Text(f))
	}
}

// syncAlphaFields rewrites only the RGBA and HSLA fields.
func (m *Model) syncAlphaFields() {
	st := m.conv.State()
	for _, f := range []color.Format{color.FormatRGBA, color.FormatHSLA} {
		m.fields[fieldIndex(f)].SetValue(st.Text(f))
	}
}

// applyField runs the update operation bound to field i. On failure the
// other fields keep their text and the converter records the error.
func (m *Model) applyField(i int, text string) {
	var err error
	switch color.Formats[i] {
	case color.FormatHex:
		err = m.conv.UpdateFromHex(text)
	case color.FormatRGB:
		err = m.conv.UpdateFromRGB(text)
	case color.FormatHSL:
		err = m.conv.UpdateFromHSL(text)
	default:
		return
	}
	if err == nil {
		m.syncFields(i)
	}
}

func (m *Model) adjustAlpha(delta float64) {
	m.conv.UpdateAlpha(m.conv.State().Alpha + delta)
	m.syncAlphaFields()
}

func (m *Model) startEditing() tea.Cmd {
	if !editable(m.focus) {
		return nil
	}
	m.editing = true
	cmd := m.fields[m.focus].Focus()
	m.fields[m.focus].CursorEnd()
	return cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.fields[m.focus].Blur()
}

// handleEditKey routes keys to the field being edited and applies every change.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.savePrefs()
		return m, tea.Quit
	case "esc", "enter", "tab", "shift+tab":
		m.stopEditing()
		return m, nil
	}

	before := m.fields[m.focus].Value()
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	if after := m.fields[m.focus].Value(); after != before {
		m.applyField(m.focus, after)
	}
	return m, cmd
}

// handleConverterKey processes keyboard input for the converter view.
func (m Model) handleConverterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.focus > 0 {
			m.focus--
		}
	case key.Matches(msg, m.keys.Down):
		if m.focus < fieldCount-1 {
			m.focus++
		}
	case key.Matches(msg, m.keys.Edit):
		return m, m.startEditing()
	case key.Matches(msg, m.keys.Copy):
		return m, copyCmd(m.focus, m.fields[m.focus].Value())
	case key.Matches(msg, m.keys.Paste):
		return m, pasteCmd()
	case key.Matches(msg, m.keys.Reset):
		m.conv = color.NewConverterFrom(m.startHex)
		m.syncFields(-1)
	case key.Matches(msg, m.keys.AlphaDown):
		m.adjustAlpha(-AlphaFineStep)
	case key.Matches(msg, m.keys.AlphaUp):
		m.adjustAlpha(AlphaFineStep)
	case key.Matches(msg, m.keys.AlphaDownBig):
		m.adjustAlpha(-AlphaCoarseStep)
	case key.Matches(msg, m.keys.AlphaUpBig):
		m.adjustAlpha(AlphaCoarseStep)
	}
	return m, nil
}

// renderConverter renders the fields, the alpha slider and the swatch.
func (m Model) renderConverter() string {
	styles := m.theme.Styles()

	var rows []string
	for i, f := range color.Formats {
		rows = append(rows, m.renderField(i, f, styles))
	}
	rows = append(rows, "", m.renderAlpha(styles), "")

	if perr := m.conv.Err(); perr != nil {
		rows = append(rows, styles.DangerText.Render(perr.Error()))
	} else if m.notice != "" {
		rows = append(rows, styles.SuccessText.Render(m.notice))
	} else {
		rows = append(rows, "")
	}

	fields := lipgloss.JoinVertical(lipgloss.Left, rows...)
	swatch := m.renderSwatch()

	var body string
	if m.width < LayoutCompactWidth {
		body = lipgloss.JoinVertical(lipgloss.Left, fields, "", swatch)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, fields, "   ", swatch)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (m Model) renderField(i int, f color.Format, styles Styles) string {
	label := styles.Label.Render(f.String())

	var value string
	switch {
	case m.editing && i == m.focus:
		value = styles.EditingField.Render(m.fields[i].View())
	case i == m.focus:
		value = styles.FocusedField.Render(m.fields[i].Value())
	default:
		value = styles.Field.Render(m.fields[i].Value())
	}

	var marker string
	switch {
	case m.copied == i:
		marker = styles.SuccessText.Render(" ✓ copied")
	case !editable(i):
		marker = styles.FaintText.Render(" read-only")
	}

	cursor := "  "
	if i == m.focus {
		cursor = styles.AccentText.Render("› ")
	}
	return cursor + label + value + marker
}

// renderAlpha draws the alpha slider as a filled bar plus the numeric value.
func (m Model) renderAlpha(styles Styles) string {
	alpha := m.conv.State().Alpha
	filled := int(math.Round(alpha * AlphaBarWidth))
	bar := styles.AccentText.Render(strings.Repeat("█", filled)) +
		styles.FaintText.Render(strings.Repeat("░", AlphaBarWidth-filled))
	return "  " + styles.Label.Render("ALPHA") + bar + " " + styles.Text.Render(color.FormatAlpha(alpha))
}

// renderSwatch paints the current color composited at its alpha over the
// theme background, labelled in the better-contrasting of black or white.
func (m Model) renderSwatch() string {
	st := m.conv.State()
	bg, err := color.ParseHex(m.theme.Background)
	if err != nil {
		bg = color.RGB{}
	}
	shown := color.Blend(m.conv.CurrentRGB(), bg, st.Alpha)
	fg := color.Contrast(shown)

	label := "white"
	if fg == (color.RGB{}) {
		label = "black"
	}
	lines := []string{
		st.Hex,
		"alpha " + color.FormatAlpha(st.Alpha),
		fmt.Sprintf("%.1f:1 %s", color.ContrastRatio(shown, fg), label),
	}

	return lipgloss.NewStyle().
		Width(SwatchWidth).
		Height(SwatchHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Background(lipgloss.Color(color.RGBToHex(shown))).
		Foreground(lipgloss.Color(color.RGBToHex(fg))).
		Render(strings.Join(lines, "\n"))
}

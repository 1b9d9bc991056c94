package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/prism/internal/color"
)

// Clipboard access, swapped out in tests.
var (
	writeClipboard = clipboard.WriteAll
	readClipboard  = clipboard.ReadAll
)

type copiedMsg struct {
	field int
	err   error
}

type pastedMsg struct {
	text string
	err  error
}

// copyCmd writes text to the system clipboard verbatim.
func copyCmd(field int, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{field: field, err: writeClipboard(text)}
	}
}

func pasteCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := readClipboard()
		return pastedMsg{text: text, err: err}
	}
}

func (m Model) handleCopied(msg copiedMsg) (tea.Model, tea.Cmd) {
	m.noticeID++
	if msg.err != nil {
		m.notice = "Copy failed: " + msg.err.Error()
		m.copied = -1
	} else {
		m.notice = "Copied " + color.Formats[msg.field].String()
		m.copied = msg.field
	}
	return m, clearNoticeCmd(m.noticeID)
}

// handlePasted routes clipboard text to the field whose format it looks like
// and applies it as if typed there.
func (m Model) handlePasted(msg pastedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.noticeID++
		m.notice = "Paste failed: " + msg.err.Error()
		return m, clearNoticeCmd(m.noticeID)
	}
	text := strings.TrimSpace(msg.text)
	format, _ := color.Sniff(text)
	i := fieldIndex(format)

	if m.editing {
		m.stopEditing()
	}
	m.currentView = ViewConverter
	m.focus = i
	m.fields[i].SetValue(text)
	m.applyField(i, text)
	return m, nil
}

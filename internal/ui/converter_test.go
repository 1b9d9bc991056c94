package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/prism/internal/color"
)

const (
	hexField  = 0
	rgbField  = 1
	rgbaField = 2
	hslField  = 3
	hslaField = 4
)

func fieldValues(m Model) []string {
	out := make([]string, fieldCount)
	for i := range m.fields {
		out[i] = m.fields[i].Value()
	}
	return out
}

func TestNewModel_FieldsShowStartColor(t *testing.T) {
	m := newTestModel(t, Options{})
	want := []string{"#ff0000", "rgb(255, 0, 0)", "rgba(255, 0, 0, 1)", "hsl(0, 100%, 50%)", "hsla(0, 100%, 50%, 1)"}
	got := fieldValues(m)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("field %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEditHexUpdatesOtherFields(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = press(t, m, "enter")
	if !m.editing {
		t.Fatalf("enter did not start editing")
	}
	m, _ = press(t, m, "ctrl+u", "#00ff00")
	if got := m.fields[rgbField].Value(); got != "rgb(0, 255, 0)" {
		t.Fatalf("RGB field = %q, want rgb(0, 255, 0)", got)
	}
	if got := m.fields[hslaField].Value(); got != "hsla(120, 100%, 50%, 1)" {
		t.Fatalf("HSLA field = %q, want hsla(120, 100%%, 50%%, 1)", got)
	}
	m, _ = press(t, m, "esc")
	if m.editing {
		t.Fatalf("esc did not stop editing")
	}
	if m.conv.Err() != nil {
		t.Fatalf("unexpected error: %v", m.conv.Err())
	}
}

func TestEditInvalidKeepsOtherFields(t *testing.T) {
	m := newTestModel(t, Options{})
	before := fieldValues(m)

	m, _ = press(t, m, "enter", "ctrl+u", "#zz")
	got := fieldValues(m)
	if got[hexField] != "#zz" {
		t.Fatalf("HEX field = %q, want typed text kept", got[hexField])
	}
	for i := 1; i < fieldCount; i++ {
		if got[i] != before[i] {
			t.Fatalf("field %d changed to %q after invalid input", i, got[i])
		}
	}
	if m.conv.State().Hex != "#ff0000" {
		t.Fatalf("color changed to %q after invalid input", m.conv.State().Hex)
	}
	if view := m.View(); !strings.Contains(view, "Invalid HEX color format") {
		t.Fatalf("view missing parse error:\n%s", view)
	}
}

func TestEditModeSwallowsShortcuts(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, "enter", "q")
	if !m.editing {
		t.Fatalf("q while editing should not leave edit mode")
	}
	if got := m.fields[hexField].Value(); got != "#ff0000q" {
		t.Fatalf("HEX field = %q, want #ff0000q", got)
	}
}

func TestEditRGBField(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, "j", "enter", "ctrl+u", "rgb(0, 0, 255)", "enter")
	if m.focus != rgbField {
		t.Fatalf("focus = %d, want RGB", m.focus)
	}
	if got := m.fields[hexField].Value(); got != "#0000ff" {
		t.Fatalf("HEX field = %q, want #0000ff", got)
	}
}

func TestReadOnlyFieldsDoNotEdit(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, "j", "j", "enter")
	if m.focus != rgbaField || m.editing {
		t.Fatalf("RGBA field should not enter edit mode (focus %d, editing %v)", m.focus, m.editing)
	}
}

func TestAlphaKeysRewriteOnlyAlphaFields(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = press(t, m, "[")
	if got := m.fields[rgbaField].Value(); got != "rgba(255, 0, 0, 0.99)" {
		t.Fatalf("RGBA field = %q, want alpha 0.99", got)
	}
	m, _ = press(t, m, "{")
	if got := m.fields[hslaField].Value(); got != "hsla(0, 100%, 50%, 0.89)" {
		t.Fatalf("HSLA field = %q, want alpha 0.89", got)
	}
	if got := m.fields[rgbField].Value(); got != "rgb(255, 0, 0)" {
		t.Fatalf("RGB field = %q, want unchanged", got)
	}
	m, _ = press(t, m, "}", "}", "]")
	if got := m.conv.State().Alpha; got != 1 {
		t.Fatalf("alpha = %v, want clamped to 1", got)
	}
}

func TestAlphaChangeKeepsInvalidText(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, "enter", "ctrl+u", "nope", "esc", "[")
	if got := m.fields[hexField].Value(); got != "nope" {
		t.Fatalf("HEX field = %q, want typed text kept", got)
	}
	if got := m.fields[rgbaField].Value(); got != "rgba(255, 0, 0, 0.99)" {
		t.Fatalf("RGBA field = %q, want alpha applied", got)
	}
}

func TestReset(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, "enter", "ctrl+u", "#123456", "esc", "[", "r")
	if got := m.conv.State().Hex; got != "#ff0000" {
		t.Fatalf("hex after reset = %q, want #ff0000", got)
	}
	if got := m.fields[rgbaField].Value(); got != "rgba(255, 0, 0, 1)" {
		t.Fatalf("RGBA after reset = %q", got)
	}
}

func stubClipboard(t *testing.T, read string, readErr error) *string {
	t.Helper()
	origWrite, origRead := writeClipboard, readClipboard
	t.Cleanup(func() {
		writeClipboard, readClipboard = origWrite, origRead
	})
	var written string
	writeClipboard = func(text string) error {
		written = text
		return nil
	}
	readClipboard = func() (string, error) {
		return read, readErr
	}
	return &written
}

func TestCopyField(t *testing.T) {
	written := stubClipboard(t, "", nil)
	m := newTestModel(t, Options{})

	m, cmd := press(t, m, "j", "c")
	if cmd == nil {
		t.Fatalf("copy returned nil command")
	}
	updated, clear := m.Update(cmd())
	m = updated.(Model)
	if *written != "rgb(255, 0, 0)" {
		t.Fatalf("clipboard = %q, want rgb(255, 0, 0)", *written)
	}
	if m.notice != "Copied RGB" || m.copied != rgbField {
		t.Fatalf("notice = %q copied = %d, want Copied RGB on field 1", m.notice, m.copied)
	}
	if clear == nil {
		t.Fatalf("copy did not schedule clearing the notice")
	}

	// A stale clear from an earlier copy leaves the newer notice alone.
	updated, _ = m.Update(clearNoticeMsg{id: m.noticeID - 1})
	if updated.(Model).notice == "" {
		t.Fatalf("stale clear removed the notice")
	}
	updated, _ = m.Update(clearNoticeMsg{id: m.noticeID})
	if got := updated.(Model); got.notice != "" || got.copied != -1 {
		t.Fatalf("notice not cleared: %q %d", got.notice, got.copied)
	}
}

func TestCopyFailure(t *testing.T) {
	m := newTestModel(t, Options{})
	updated, _ := m.Update(copiedMsg{field: hexField, err: errors.New("no clipboard")})
	if got := updated.(Model).notice; got != "Copy failed: no clipboard" {
		t.Fatalf("notice = %q", got)
	}
}

func TestPasteRoutesByFormat(t *testing.T) {
	stubClipboard(t, "  hsl(240, 100%, 50%) ", nil)
	m := newTestModel(t, Options{})
	m, _ = press(t, m, "2")

	m, cmd := press(t, m, "1", "v")
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if m.focus != hslField {
		t.Fatalf("focus = %d, want HSL", m.focus)
	}
	if got := m.fields[hexField].Value(); got != "#0000ff" {
		t.Fatalf("HEX after paste = %q, want #0000ff", got)
	}
}

func TestPasteInvalid(t *testing.T) {
	stubClipboard(t, "rgb(300, 0, 0)", nil)
	m := newTestModel(t, Options{})

	m, cmd := press(t, m, "v")
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if got := m.fields[rgbField].Value(); got != "rgb(300, 0, 0)" {
		t.Fatalf("RGB field = %q, want pasted text", got)
	}
	if got := m.fields[hexField].Value(); got != "#ff0000" {
		t.Fatalf("HEX field = %q, want unchanged", got)
	}
	if m.conv.Err() == nil || m.conv.Err().Format != color.FormatRGB {
		t.Fatalf("err = %v, want RGB parse error", m.conv.Err())
	}
}

func TestPickerSelect(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, "p", "l", "l", "j")
	if m.pickerRow != 1 || m.pickerCol != 2 {
		t.Fatalf("cursor = (%d, %d), want (1, 2)", m.pickerRow, m.pickerCol)
	}
	want := color.RGBToHex(m.palette[1][2])

	m, _ = press(t, m, "enter")
	if m.currentView != ViewConverter {
		t.Fatalf("view = %v, want Converter after select", m.currentView)
	}
	if got := m.fields[hexField].Value(); got != want {
		t.Fatalf("HEX = %q, want %q", got, want)
	}
	if m.focus != hexField {
		t.Fatalf("focus = %d, want HEX", m.focus)
	}
}

func TestPickerCursorClamps(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = press(t, m, "p", "h", "k")
	if m.pickerRow != 0 || m.pickerCol != 0 {
		t.Fatalf("cursor = (%d, %d), want (0, 0)", m.pickerRow, m.pickerCol)
	}
	for i := 0; i < PickerColumns+len(PickerLightness)+2; i++ {
		m, _ = press(t, m, "l", "j")
	}
	if m.pickerRow != m.pickerRows()-1 || m.pickerCol != PickerColumns-1 {
		t.Fatalf("cursor = (%d, %d), want bottom-right", m.pickerRow, m.pickerCol)
	}
	if view := m.View(); !strings.Contains(view, "Shades of #ff0000") {
		t.Fatalf("picker view missing shades row:\n%s", view)
	}
}

func TestSwatchCompactLayout(t *testing.T) {
	m := newTestModel(t, Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 40})
	view := updated.(Model).View()
	if !strings.Contains(view, "#ff0000") || !strings.Contains(view, "alpha 1") {
		t.Fatalf("compact view missing swatch:\n%s", view)
	}
}

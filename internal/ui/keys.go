package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application. It implements
// help.KeyMap so the command bar and the help overlay render from it.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// View switching
	ViewConverter key.Binding
	ViewPicker    key.Binding
	ViewStats     key.Binding
	ViewLog       key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Converter actions
	Edit         key.Binding
	Copy         key.Binding
	Paste        key.Binding
	Reset        key.Binding
	AlphaDown    key.Binding
	AlphaUp      key.Binding
	AlphaDownBig key.Binding
	AlphaUpBig   key.Binding

	// Picker
	Select key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Stop editing / back"),
		),

		// View switching
		ViewConverter: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Converter"),
		),
		ViewPicker: key.NewBinding(
			key.WithKeys("2", "p"),
			key.WithHelp("2/p", "Picker"),
		),
		ViewStats: key.NewBinding(
			key.WithKeys("3", "s"),
			key.WithHelp("3/s", "Stats"),
		),
		ViewLog: key.NewBinding(
			key.WithKeys("4", "L"),
			key.WithHelp("4/L", "Log"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Move right"),
		),

		// Converter actions
		Edit: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("enter/i", "Edit field"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c", "y"),
			key.WithHelp("c", "Copy field"),
		),
		Paste: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Paste color"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reset color"),
		),
		AlphaDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Alpha -0.01"),
		),
		AlphaUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Alpha +0.01"),
		),
		AlphaDownBig: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{", "Alpha -0.1"),
		),
		AlphaUpBig: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("}", "Alpha +0.1"),
		),

		// Picker
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Use color"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Copy, k.AlphaDown, k.AlphaUp, k.Tab, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Views
		{k.Tab, k.ShiftTab, k.ViewConverter, k.ViewPicker, k.ViewStats, k.ViewLog, k.Escape},
		// Converter
		{k.Up, k.Down, k.Edit, k.Copy, k.Paste, k.Reset},
		// Alpha
		{k.AlphaDown, k.AlphaUp, k.AlphaDownBig, k.AlphaUpBig},
		// Picker
		{k.Left, k.Right, k.Select},
		// General
		{k.CycleTheme, k.Help, k.Quit},
	}
}

// Package ui provides the terminal user interface for prism.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds all state; Update handles key,
// window, tick and command-result messages; View renders the current view
// with lipgloss. Text entry uses bubbles/textinput and the command bar and
// help overlay are rendered by bubbles/help from a single key map.
//
// # Package Structure
//
//   - app.go: Model, Update/View, message types, commands and Run
//   - converter.go: the five format fields, editing, alpha and the swatch
//   - picker.go: the hue palette grid and shades of the current color
//   - stats.go: usage and session summaries from state.Store
//   - logs.go: the tail of the prism log file (internal/logtail)
//   - clipboard.go: copy and paste through atotto/clipboard
//   - header.go: header tabs, tracking status and the command bar
//   - help.go: the full-screen help modal
//   - keys.go: key bindings (help.KeyMap)
//   - theme.go: color themes and derived lipgloss styles
//   - layout.go: layout and behavior constants
//   - style_helpers.go: rendering runs of text on one background
//   - strings.go: truncation and relative time helpers
//
// # Views
//
// Four views are available:
//
//   - Converter (1): HEX, RGB, RGBA, HSL and HSLA fields plus alpha
//   - Picker (2 or p): palette grid; enter applies the color
//   - Stats (3 or s): tool usage and session summaries
//   - Log (4 or L): the newest lines of the log file, colored by level
//
// # Modes
//
// The converter has a navigation mode and an edit mode. In navigation mode
// single letters are commands (c copies, v pastes, [ and ] step alpha). Enter
// or i starts editing the focused field; from then on every keystroke goes to
// the field and the color is re-parsed after each change. Esc, enter or tab
// return to navigation mode.
//
// Only HEX, RGB and HSL are editable. RGBA and HSLA are derived from the base
// color and alpha.
//
// # Error Display
//
// An invalid entry keeps the typed text in its field, leaves every other field
// and the color unchanged, and shows the parse error under the alpha bar. The
// next valid entry clears it.
//
// # Data Flow
//
// Usage summaries arrive from state.Store. A tick every PollTick fetches a
// Snapshot; the UI never calls the usage backend directly except through the
// Tracker it is given, which records one use of the converter at startup.
//
// # Preferences
//
// The theme (T to cycle) and the current HEX color are written to prefs.toml
// when the theme changes and on quit.
package ui

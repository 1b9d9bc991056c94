package ui

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/prism/internal/color"
	"github.com/five82/prism/internal/logtail"
	"github.com/five82/prism/internal/prefs"
	"github.com/five82/prism/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewConverter View = iota
	ViewPicker
	ViewStats
	ViewLog
)

var viewOrder = []View{ViewConverter, ViewPicker, ViewStats, ViewLog}

func (v View) String() string {
	switch v {
	case ViewPicker:
		return "Picker"
	case ViewStats:
		return "Stats"
	case ViewLog:
		return "Log"
	default:
		return "Converter"
	}
}

// Tracker records that a tool was opened. *usage.Tracker satisfies it.
type Tracker interface {
	Track(ctx context.Context, toolID, toolName string) error
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Store      *state.Store
	Tracker    Tracker // nil when usage tracking is off
	PollTick   time.Duration
	ThemeName  string
	PrefsPath  string
	StartColor string
	UserID     string
	LogPath    string // empty disables the Log view
}

const fieldCount = 5

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	tracker   Tracker
	prefsPath string
	pollTick  time.Duration
	userID    string
	startHex  string
	logPath   string

	// UI state
	theme       Theme
	keys        keyMap
	help        help.Model
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Converter state; fields are indexed like color.Formats
	conv    *color.Converter
	fields  [fieldCount]textinput.Model
	focus   int
	editing bool

	// Picker state
	palette   [][]color.RGB
	pickerRow int
	pickerCol int

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time
	logLines    []logtail.Line
	logErr      error

	// Copy and paste feedback
	notice   string
	copied   int // field index showing the copied marker, -1 for none
	noticeID int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		tracker:     opts.Tracker,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		userID:      strings.TrimSpace(opts.UserID),
		startHex:    opts.StartColor,
		logPath:     opts.LogPath,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		currentView: ViewConverter,
		conv:        color.NewConverterFrom(opts.StartColor),
		copied:      -1,
	}
	for i := range m.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = FieldWidth - 1
		m.fields[i] = ti
	}
	for _, l := range PickerLightness {
		m.palette = append(m.palette, color.Palette(PickerColumns, PickerSaturation, l))
	}
	m.syncFields(-1)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	// The converter is the first view, so opening the app opens the tool.
	if cmd := m.openConverterCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		return m, nil

	case trackedMsg:
		if msg.err != nil {
			log.Printf("usage tracking failed: %v", msg.err)
		}
		return m, nil

	case logMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		return m, nil

	case copiedMsg:
		return m.handleCopied(msg)

	case pastedMsg:
		return m.handlePasted(msg)

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
			m.copied = -1
		}
		return m, nil
	}

	// Cursor blink and other input messages go to the field being edited.
	if m.editing {
		var cmd tea.Cmd
		m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.editing {
		return m.handleEditKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m, m.cycleView(1)

	case key.Matches(msg, m.keys.ShiftTab):
		return m, m.cycleView(-1)

	case key.Matches(msg, m.keys.ViewConverter), key.Matches(msg, m.keys.Escape):
		return m, m.setView(ViewConverter)

	case key.Matches(msg, m.keys.ViewPicker):
		return m, m.setView(ViewPicker)

	case key.Matches(msg, m.keys.ViewStats):
		return m, m.setView(ViewStats)

	case key.Matches(msg, m.keys.ViewLog):
		return m, m.setView(ViewLog)
	}

	// View-specific keys
	switch m.currentView {
	case ViewConverter:
		return m.handleConverterKey(msg)
	case ViewPicker:
		return m.handlePickerKey(msg)
	}
	return m, nil
}

// cycleView moves through viewOrder by step, wrapping around.
func (m *Model) cycleView(step int) tea.Cmd {
	for i, v := range viewOrder {
		if v == m.currentView {
			next := (i + step + len(viewOrder)) % len(viewOrder)
			return m.setView(viewOrder[next])
		}
	}
	return m.setView(ViewConverter)
}

// setView switches views. Entering the Log view reads the log right away
// instead of waiting for the next tick.
func (m *Model) setView(v View) tea.Cmd {
	m.currentView = v
	if v == ViewLog && m.logPath != "" {
		return readLogCmd(m.logPath)
	}
	return nil
}

// savePrefs persists the theme and the current color.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, LastColor: m.conv.State().Hex}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("save prefs: %v", err)
	}
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLog && m.logPath != "" {
		cmds = append(cmds, readLogCmd(m.logPath))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// openConverterCmd records one use of the converter, or nil without a tracker.
func (m Model) openConverterCmd() tea.Cmd {
	if m.tracker == nil {
		return nil
	}
	return trackCmd(m.ctx, m.tracker)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewPicker:
		return m.renderPicker()
	case ViewStats:
		return m.renderStats()
	case ViewLog:
		return m.renderLog()
	default:
		return m.renderConverter()
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type trackedMsg struct{ err error }

type clearNoticeMsg struct{ id int }

type logMsg struct {
	lines []logtail.Line
	err   error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func trackCmd(ctx context.Context, tracker Tracker) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, TrackTimeout)
		defer cancel()
		return trackedMsg{err: tracker.Track(ctx, ConverterToolID, ConverterToolName)}
	}
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Tail(path, LogTailLines)
		return logMsg{lines: lines, err: err}
	}
}

func clearNoticeCmd(id int) tea.Cmd {
	return tea.Tick(CopyNoticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/hackerstories/internal/prefs"
	"github.com/five82/hackerstories/internal/search"
)

const defaultDebounce = 400 * time.Millisecond

// focusArea is the pane that receives keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *search.Controller
	Store      prefs.Store // theme persistence; nil disables it
	ThemeName  string

	FetchOnStart      bool
	AutoFetch         bool
	AutoFetchDebounce time.Duration // zero uses 400ms
	RefreshEvery      time.Duration // zero disables auto-refresh
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	ctrl         *search.Controller
	store        prefs.Store
	keys         keyMap
	autoFetch    bool
	debounce     time.Duration
	refreshEvery time.Duration

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	focus    focusArea
	showHelp bool

	input   textinput.Model
	spinner spinner.Model

	// List state
	selectedRow int
	filtering   bool
	filterInput textinput.Model
	filter      string

	// Detail state
	detail   viewport.Model
	detailID string

	// Fetch bookkeeping
	startup     tea.Cmd
	debounceSeq uint64
	refreshSeq  uint64
	failures    int
	lastUpdated time.Time
}

// New creates a new Bubble Tea model. With FetchOnStart the initial text is
// submitted immediately, so the controller is already fetching when New
// returns.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	debounce := opts.AutoFetchDebounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Search Hacker News"
	input.CharLimit = 200
	input.SetValue(opts.Controller.Text())
	input.Focus()

	filterInput := textinput.New()
	filterInput.Prompt = "/"
	filterInput.Placeholder = "filter titles"
	filterInput.CharLimit = 100

	m := Model{
		ctx:          ctx,
		ctrl:         opts.Controller,
		store:        opts.Store,
		keys:         DefaultKeyMap(),
		autoFetch:    opts.AutoFetch,
		debounce:     debounce,
		refreshEvery: opts.RefreshEvery,
		theme:        GetTheme(opts.ThemeName),
		focus:        focusInput,
		input:        input,
		filterInput:  filterInput,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		detail:       viewport.New(0, 0),
	}
	if opts.FetchOnStart {
		m.startup = m.submit()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.startup)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case fetchResultMsg:
		return m.handleFetchResult(search.Result(msg))

	case debounceMsg:
		if msg.seq != m.debounceSeq {
			return m, nil
		}
		return m, m.submit()

	case refreshMsg:
		if msg.seq != m.refreshSeq {
			return m, nil
		}
		return m, m.refresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and friends go to whichever input is active.
	var cmd tea.Cmd
	if m.filtering {
		m.filterInput, cmd = m.filterInput.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// handleKey routes keyboard input by overlay, filter prompt and focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}
	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

// handleInputKey processes keys while the search input has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		// A pending auto-fetch is superseded by the explicit submit.
		m.debounceSeq++
		return m, m.submit()
	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Escape):
		m.setFocus(focusList)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, tea.Batch(cmd, m.textChanged())
}

// handleListKey processes keys while the story list has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.setFocus(focusInput)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, m.keys.Filter):
		m.startFilter()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Dismiss):
		m.dismissSelected()
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Top):
		m.selectRow(0)
	case key.Matches(msg, m.keys.Bottom):
		m.selectRow(len(m.visibleStories()) - 1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detail.HalfViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detail.HalfViewUp()
	}
	return m, nil
}

// textChanged writes an edited search text through the controller and, with
// auto-fetch enabled, arms the debounce timer.
func (m *Model) textChanged() tea.Cmd {
	value := m.input.Value()
	if value == m.ctrl.Text() {
		return nil
	}
	m.ctrl.SetText(value)
	if !m.autoFetch {
		return nil
	}
	m.debounceSeq++
	seq := m.debounceSeq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

// submit commits the current text and returns the fetch command, or nil
// when the controller rejected the submit.
func (m *Model) submit() tea.Cmd {
	cycle, ok := m.ctrl.Submit()
	if !ok {
		// Enter on the query that just failed retries it.
		cycle, ok = m.ctrl.Retry()
	}
	if !ok {
		return nil
	}
	return m.fetchCmd(cycle)
}

// refresh re-runs the committed query.
func (m *Model) refresh() tea.Cmd {
	cycle, ok := m.ctrl.Refresh()
	if !ok {
		return nil
	}
	return m.fetchCmd(cycle)
}

// handleFetchResult settles a finished cycle. Stale results change nothing.
func (m Model) handleFetchResult(res search.Result) (tea.Model, tea.Cmd) {
	prevID := m.selectedID()
	if !m.ctrl.Settle(res) {
		return m, nil
	}
	m.lastUpdated = time.Now()
	if res.Err != nil {
		m.failures++
	} else {
		m.failures = 0
	}
	m.restoreSelection(prevID)
	return m, m.scheduleRefresh()
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
		return
	}
	m.input.Blur()
}

// cycleTheme switches to the next theme and remembers it.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.store != nil {
		if err := m.store.Set(m.ctx, prefs.KeyTheme, m.theme.Name); err != nil {
			slog.Warn("ui: save theme failed", "theme", m.theme.Name, "error", err)
		}
	}
	m.updateDetail()
}

// Messages

type fetchResultMsg search.Result

type debounceMsg struct{ seq uint64 }

type refreshMsg struct{ seq uint64 }

// Commands

// fetchCmd runs the network half of a cycle off the update goroutine. The
// result comes back as a message and is settled in Update.
func (m Model) fetchCmd(cycle search.Cycle) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return fetchResultMsg(ctrl.Execute(ctx, cycle))
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("ui requires a search controller")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/hackerstories/internal/hnsearch"
	"github.com/five82/hackerstories/internal/prefs"
	"github.com/five82/hackerstories/internal/search"
)

// scriptedFetcher returns its results in order, repeating the last one.
type scriptedFetcher struct {
	results [][]hnsearch.Story
	err     error
	queries []string
}

func (f *scriptedFetcher) Search(_ context.Context, queryURL string) ([]hnsearch.Story, error) {
	f.queries = append(f.queries, queryURL)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) == 0 {
		return []hnsearch.Story{}, nil
	}
	i := min(len(f.queries), len(f.results)) - 1
	return f.results[i], nil
}

func twoStories() []hnsearch.Story {
	return []hnsearch.Story{
		{ObjectID: "0", Title: "React", URL: "https://reactjs.org/", Author: "Jordan Walke", NumComments: 3, Points: 4},
		{ObjectID: "1", Title: "Redux", URL: "https://redux.js.org/", Author: "Dan Abramov, Andrew Clark", NumComments: 2, Points: 5},
	}
}

type harness struct {
	ctrl  *search.Controller
	store *prefs.MemoryStore
	fetch *scriptedFetcher
}

func newHarness(t *testing.T, fetch *scriptedFetcher, opts Options) (Model, harness) {
	t.Helper()
	store := prefs.NewMemory()
	ctrl, err := search.New(context.Background(), search.Options{
		Endpoint:    "http://hn.test/search?query=",
		DefaultText: "React",
		Store:       store,
		Fetcher:     fetch,
		OnEvent:     func(search.Event) {},
	})
	if err != nil {
		t.Fatalf("search.New: %v", err)
	}
	opts.Controller = ctrl
	opts.Store = store
	m := New(opts)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, harness{ctrl: ctrl, store: store, fetch: fetch}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

// settle runs a fetch command synchronously and feeds its result back.
func settle(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("fetch command is nil")
	}
	msg := cmd()
	if _, ok := msg.(fetchResultMsg); !ok {
		t.Fatalf("command produced %T, want fetchResultMsg", msg)
	}
	return update(t, m, msg)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, fetch *scriptedFetcher, opts Options) (Model, harness) {
	t.Helper()
	opts.FetchOnStart = true
	m, h := newHarness(t, fetch, opts)
	m, _ = settle(t, m, m.startup)
	return m, h
}

func TestFetchOnStart_LoadsStories(t *testing.T) {
	fetch := &scriptedFetcher{results: [][]hnsearch.Story{twoStories()}}
	m, h := newHarness(t, fetch, Options{FetchOnStart: true})

	if h.ctrl.Status() != search.Fetching {
		t.Fatalf("Status = %v, want fetching before the first result", h.ctrl.Status())
	}
	if !strings.Contains(m.View(), "Loading...") {
		t.Fatalf("View while fetching does not show Loading...")
	}

	m, _ = settle(t, m, m.startup)
	if got := h.ctrl.Stories().Len(); got != 2 {
		t.Fatalf("Stories().Len() = %d, want 2", got)
	}
	if got := fetch.queries[0]; got != "http://hn.test/search?query=React" {
		t.Fatalf("query = %q, want React query url", got)
	}
	view := m.View()
	for _, want := range []string{"2 stories", "Redux", "Stories (2)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View does not contain %q", want)
		}
	}
	if m.fetchStatus() != "ready" {
		t.Fatalf("fetchStatus = %q, want ready", m.fetchStatus())
	}
}

func TestNoFetchOnStartStaysIdle(t *testing.T) {
	m, h := newHarness(t, &scriptedFetcher{}, Options{})
	if m.startup != nil {
		t.Fatalf("startup command set without FetchOnStart")
	}
	if h.ctrl.Status() != search.Idle || m.fetchStatus() != "idle" {
		t.Fatalf("Status = %v/%q, want idle", h.ctrl.Status(), m.fetchStatus())
	}
}

func TestTyping_WritesThroughWithoutFetching(t *testing.T) {
	fetch := &scriptedFetcher{}
	m, h := newHarness(t, fetch, Options{})

	m, _ = update(t, m, runes("x"))
	if got := m.input.Value(); got != "Reactx" {
		t.Fatalf("input = %q, want Reactx", got)
	}
	if got, _, _ := h.store.Get(context.Background(), prefs.KeySearchTerm); got != "Reactx" {
		t.Fatalf("stored term = %q, want Reactx", got)
	}
	if h.ctrl.Status() != search.Idle || len(fetch.queries) != 0 {
		t.Fatalf("typing started a fetch: status %v, queries %v", h.ctrl.Status(), fetch.queries)
	}
}

func TestEnter_SubmitsAndSettles(t *testing.T) {
	fetch := &scriptedFetcher{results: [][]hnsearch.Story{twoStories()}}
	m, h := newHarness(t, fetch, Options{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if h.ctrl.Status() != search.Fetching || !h.ctrl.Stories().IsLoading {
		t.Fatalf("after enter: status %v, loading %v, want fetching", h.ctrl.Status(), h.ctrl.Stories().IsLoading)
	}
	m, _ = settle(t, m, cmd)
	if h.ctrl.Stories().Len() != 2 || h.ctrl.Stories().IsLoading {
		t.Fatalf("Stories = %+v, want two loaded stories", h.ctrl.Stories())
	}

	// The same query again is not a change.
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("resubmitting the same text returned a command")
	}
}

func TestEnter_BlankTextIsRejected(t *testing.T) {
	fetch := &scriptedFetcher{}
	store := prefs.NewMemory()
	_ = store.Set(context.Background(), prefs.KeySearchTerm, "   ")
	ctrl, err := search.New(context.Background(), search.Options{Store: store, Fetcher: fetch, OnEvent: func(search.Event) {}})
	if err != nil {
		t.Fatalf("search.New: %v", err)
	}
	m := New(Options{Controller: ctrl, Store: store})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("blank submit returned a command")
	}
	if ctrl.Status() != search.Idle || ctrl.CommittedQuery() != "" {
		t.Fatalf("blank submit changed state: %v %q", ctrl.Status(), ctrl.CommittedQuery())
	}
}

func TestFocus_KeysTypeInInputAndActInList(t *testing.T) {
	m, h := loaded(t, &scriptedFetcher{results: [][]hnsearch.Story{twoStories()}}, Options{})

	m, _ = update(t, m, runes("d"))
	if h.ctrl.Stories().Len() != 2 || m.input.Value() != "Reactd" {
		t.Fatalf("d in input: len %d, input %q; want typed, not dismissed", h.ctrl.Stories().Len(), m.input.Value())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusList {
		t.Fatalf("focus = %v, want list after tab", m.focus)
	}
	m, _ = update(t, m, runes("d"))
	if h.ctrl.Stories().Len() != 1 {
		t.Fatalf("len = %d after dismiss, want 1", h.ctrl.Stories().Len())
	}
	if got := m.selectedID(); got != "1" {
		t.Fatalf("selectedID = %q, want 1 to slide under the cursor", got)
	}

	m, _ = update(t, m, runes("x"))
	if h.ctrl.Stories().Len() != 0 || m.selectedStory() != nil {
		t.Fatalf("x did not dismiss the last story")
	}
	m, _ = update(t, m, runes("d"))
	if h.ctrl.Stories().Len() != 0 {
		t.Fatalf("dismiss on empty list changed state")
	}
}

func TestNavigation_AndSelectionSurvivesReload(t *testing.T) {
	reordered := []hnsearch.Story{
		{ObjectID: "2", Title: "Zustand"},
		twoStories()[1],
		twoStories()[0],
	}
	fetch := &scriptedFetcher{results: [][]hnsearch.Story{twoStories(), reordered}}
	m, h := loaded(t, fetch, Options{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = update(t, m, runes("j"))
	if m.selectedID() != "1" {
		t.Fatalf("after j selectedID = %q, want 1", m.selectedID())
	}
	m, _ = update(t, m, runes("j"))
	if m.selectedRow != 1 {
		t.Fatalf("j past the end moved to row %d, want 1", m.selectedRow)
	}
	m, _ = update(t, m, runes("g"))
	if m.selectedRow != 0 {
		t.Fatalf("g moved to row %d, want 0", m.selectedRow)
	}
	m, _ = update(t, m, runes("G"))
	if m.selectedID() != "1" {
		t.Fatalf("G selectedID = %q, want 1", m.selectedID())
	}

	m, cmd := update(t, m, runes("r"))
	if h.ctrl.Generation() != 2 {
		t.Fatalf("Generation = %d after refresh, want 2", h.ctrl.Generation())
	}
	m, _ = settle(t, m, cmd)
	if m.selectedID() != "1" || m.selectedRow != 1 {
		t.Fatalf("selection = %q at row %d, want story 1 at row 1", m.selectedID(), m.selectedRow)
	}
}

func TestFetchFailure_ShowsInlineErrorAndKeepsItems(t *testing.T) {
	fetch := &scriptedFetcher{results: [][]hnsearch.Story{twoStories()}}
	m, h := loaded(t, fetch, Options{})

	fetch.err = errors.New("connection refused")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := update(t, m, runes("r"))
	m, _ = settle(t, m, cmd)

	stories := h.ctrl.Stories()
	if !stories.IsError || stories.IsLoading || stories.Len() != 2 {
		t.Fatalf("Stories = %+v, want error with items kept", stories)
	}
	if !strings.Contains(m.View(), "Something went wrong ...") {
		t.Fatalf("View does not show the inline error")
	}
	if m.failures != 1 {
		t.Fatalf("failures = %d, want 1", m.failures)
	}
}

func TestEnter_RetriesFailedQuery(t *testing.T) {
	fetch := &scriptedFetcher{results: [][]hnsearch.Story{twoStories()}, err: errors.New("connection refused")}
	m, h := loaded(t, fetch, Options{})
	if !h.ctrl.Stories().IsError {
		t.Fatalf("first fetch did not fail")
	}

	fetch.err = nil
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter on the failed query returned no command")
	}
	m, _ = settle(t, m, cmd)

	stories := h.ctrl.Stories()
	if stories.IsError || stories.Len() != 2 {
		t.Fatalf("Stories = %+v, want two stories after retry", stories)
	}
	if len(fetch.queries) != 2 || fetch.queries[0] != fetch.queries[1] {
		t.Fatalf("queries = %v, want the same query twice", fetch.queries)
	}
	if m.failures != 0 {
		t.Fatalf("failures = %d, want reset after success", m.failures)
	}

	// Once the query succeeded, enter on the same text is a no-op again.
	if _, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("enter on a settled query returned a command")
	}
}

func TestStaleResultIsDropped(t *testing.T) {
	// Responses are handed out in call order: the newer request runs first.
	fetch := &scriptedFetcher{results: [][]hnsearch.Story{{{ObjectID: "9", Title: "Go"}}, twoStories()}}
	m, h := newHarness(t, fetch, Options{FetchOnStart: true})
	first := m.startup

	m, _ = update(t, m, runes("x"))
	m, second := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if h.ctrl.Generation() != 2 {
		t.Fatalf("Generation = %d, want 2", h.ctrl.Generation())
	}

	m, _ = settle(t, m, second)
	m, _ = settle(t, m, first)

	stories := h.ctrl.Stories()
	if stories.Len() != 1 || stories.Items[0].ObjectID != "9" {
		t.Fatalf("Stories = %+v, want only the result of the latest query", stories.Items)
	}
	if !strings.HasSuffix(h.ctrl.CommittedQuery(), "Reactx") {
		t.Fatalf("CommittedQuery = %q, want the Reactx query", h.ctrl.CommittedQuery())
	}
}

func TestThemeCycle_IsPersisted(t *testing.T) {
	m, h := newHarness(t, &scriptedFetcher{}, Options{ThemeName: "Nightfox"})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, runes("T"))

	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got, ok, _ := h.store.Get(context.Background(), prefs.KeyTheme); !ok || got != "Kanagawa" {
		t.Fatalf("stored theme = %q (%v), want Kanagawa", got, ok)
	}

	h.store.SetErr = errors.New("read-only")
	m, _ = update(t, m, runes("T"))
	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate even when saving fails", m.theme.Name)
	}
}

func TestFilter_NarrowsListAndClears(t *testing.T) {
	m, h := loaded(t, &scriptedFetcher{results: [][]hnsearch.Story{twoStories()}}, Options{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = update(t, m, runes("/"))
	if !m.filtering {
		t.Fatalf("/ did not open the filter prompt")
	}
	m, _ = update(t, m, runes("RED"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.filtering || m.filter != "RED" {
		t.Fatalf("filtering = %v, filter = %q; want kept filter RED", m.filtering, m.filter)
	}
	visible := m.visibleStories()
	if len(visible) != 1 || visible[0].ObjectID != "1" {
		t.Fatalf("visible = %+v, want only Redux", visible)
	}
	if h.ctrl.Stories().Len() != 2 {
		t.Fatalf("filter changed the story state")
	}
	if got := m.listTitle(); got != "Stories (1/2) /RED" {
		t.Fatalf("listTitle = %q", got)
	}

	m, _ = update(t, m, runes("/"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.filter != "" || len(m.visibleStories()) != 2 {
		t.Fatalf("esc did not clear the filter: %q", m.filter)
	}
}

func TestEscape_LeavesInputThenQuitsFromList(t *testing.T) {
	m, _ := newHarness(t, &scriptedFetcher{}, Options{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil || m.focus != focusList {
		t.Fatalf("esc in input: focus %v, cmd %v; want list focus and no command", m.focus, cmd != nil)
	}
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("esc in list returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("esc in list did not quit")
	}

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c did not quit")
	}
}

func TestHelp_OpensAndAnyKeyCloses(t *testing.T) {
	m, h := loaded(t, &scriptedFetcher{results: [][]hnsearch.Story{twoStories()}}, Options{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, runes("?"))

	view := m.View()
	if !m.showHelp || !strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	for _, want := range []string{"● Nightfox", "○ Kanagawa", "○ Slate"} {
		if !strings.Contains(view, want) {
			t.Fatalf("help overlay missing theme entry %q", want)
		}
	}
	m, _ = update(t, m, runes("d"))
	if m.showHelp {
		t.Fatalf("help still shown after a key")
	}
	if h.ctrl.Stories().Len() != 2 {
		t.Fatalf("the key closing help also dismissed a story")
	}
}

func TestAutoFetch_DebouncesTyping(t *testing.T) {
	fetch := &scriptedFetcher{results: [][]hnsearch.Story{twoStories()}}
	m, h := newHarness(t, fetch, Options{AutoFetch: true, AutoFetchDebounce: 10 * time.Millisecond})

	m, cmd := update(t, m, runes("x"))
	if cmd == nil {
		t.Fatalf("typing with auto-fetch returned no command")
	}
	firstSeq := m.debounceSeq
	m, _ = update(t, m, runes("y"))

	m, cmd = update(t, m, debounceMsg{seq: firstSeq})
	if cmd != nil || h.ctrl.Status() != search.Idle {
		t.Fatalf("superseded debounce tick started a fetch")
	}

	m, cmd = update(t, m, debounceMsg{seq: m.debounceSeq})
	if h.ctrl.Status() != search.Fetching {
		t.Fatalf("Status = %v, want fetching after the debounce tick", h.ctrl.Status())
	}
	m, _ = settle(t, m, cmd)
	if got := fetch.queries[0]; !strings.HasSuffix(got, "Reactxy") {
		t.Fatalf("query = %q, want the Reactxy query", got)
	}
	if h.ctrl.Stories().Len() != 2 {
		t.Fatalf("auto-fetch result not applied")
	}
}

func TestAutoRefresh_SchedulesAndIgnoresStaleTicks(t *testing.T) {
	fetch := &scriptedFetcher{results: [][]hnsearch.Story{twoStories()}}
	m, h := newHarness(t, fetch, Options{FetchOnStart: true, RefreshEvery: time.Minute})

	m, cmd := settle(t, m, m.startup)
	if cmd == nil || m.refreshSeq != 1 {
		t.Fatalf("settled result did not arm a refresh (seq %d)", m.refreshSeq)
	}

	m, cmd = update(t, m, refreshMsg{seq: 0})
	if cmd != nil || h.ctrl.Generation() != 1 {
		t.Fatalf("stale refresh tick started a fetch")
	}

	m, cmd = update(t, m, refreshMsg{seq: 1})
	if h.ctrl.Generation() != 2 || h.ctrl.Status() != search.Fetching {
		t.Fatalf("refresh tick: generation %d, status %v", h.ctrl.Generation(), h.ctrl.Status())
	}
	_, _ = settle(t, m, cmd)
	if len(fetch.queries) != 2 || fetch.queries[0] != fetch.queries[1] {
		t.Fatalf("queries = %v, want the committed query twice", fetch.queries)
	}
}

func TestDetail_ShowsSelectedStoryAndMarkdown(t *testing.T) {
	stories := []hnsearch.Story{{
		ObjectID:  "42",
		Title:     "Ask HN: Favorite Go libraries?",
		Author:    "gopher",
		Points:    10,
		StoryText: "<p>Looking for <b>ideas</b></p>",
	}}
	m, _ := loaded(t, &scriptedFetcher{results: [][]hnsearch.Story{stories}}, Options{})

	content := m.renderDetailContent(*m.selectedStory(), 60, m.theme.Pane)
	for _, want := range []string{"Ask HN", "gopher", "item?id=42", "**ideas**"} {
		if !strings.Contains(content, want) {
			t.Fatalf("detail does not contain %q:\n%s", want, content)
		}
	}
}

func TestStoryTextMarkdown(t *testing.T) {
	if got := storyTextMarkdown("  "); got != "" {
		t.Fatalf("storyTextMarkdown(blank) = %q, want empty", got)
	}
	got := storyTextMarkdown(`<p>See <a href="https://go.dev">go.dev</a></p>`)
	if got != "See [go.dev](https://go.dev)" {
		t.Fatalf("storyTextMarkdown = %q", got)
	}
}

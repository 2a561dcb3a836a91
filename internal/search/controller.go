package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/hackerstories/internal/hnsearch"
	"github.com/five82/hackerstories/internal/prefs"
	"github.com/five82/hackerstories/internal/state"
)

const (
	defaultText    = "React"
	defaultTimeout = 10 * time.Second
)

// ErrEmptyQuery is returned by Fetch when the search text is blank.
var ErrEmptyQuery = errors.New("search text is empty")

// Status is the controller's position in the fetch lifecycle.
type Status int

const (
	Idle Status = iota
	Fetching
	Settled
)

func (s Status) String() string {
	switch s {
	case Fetching:
		return "fetching"
	case Settled:
		return "settled"
	default:
		return "idle"
	}
}

// Options configure a Controller.
type Options struct {
	Endpoint    string // query URL prefix; empty uses hnsearch.DefaultEndpoint
	DefaultText string // used when the store has no remembered term
	Store       prefs.Store
	StoreKey    string // empty uses prefs.KeySearchTerm
	Fetcher     hnsearch.Searcher
	Timeout     time.Duration // per fetch cycle; zero uses 10s
	OnEvent     func(Event)   // nil logs through slog
}

// Cycle identifies one fetch. Generation increases with every cycle started
// by the controller.
type Cycle struct {
	Generation uint64
	Query      string
}

// Result is the outcome of executing a Cycle.
type Result struct {
	Cycle
	Items []hnsearch.Story
	Err   error
}

// Controller owns the search text, the committed query and the story list.
// It is not safe for concurrent use; only Execute may run off the owning
// goroutine.
type Controller struct {
	endpoint string
	store    prefs.Store
	storeKey string
	fetcher  hnsearch.Searcher
	timeout  time.Duration
	emit     func(Event)

	text       string
	committed  string
	generation uint64
	status     Status
	lastErr    error
	stories    state.Stories
}

// New builds a Controller, restoring the search text from the store.
func New(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("search controller requires a fetcher")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("search controller requires a store")
	}

	c := &Controller{
		endpoint: opts.Endpoint,
		store:    opts.Store,
		storeKey: opts.StoreKey,
		fetcher:  opts.Fetcher,
		timeout:  opts.Timeout,
		emit:     opts.OnEvent,
	}
	if strings.TrimSpace(c.endpoint) == "" {
		c.endpoint = hnsearch.DefaultEndpoint
	}
	if c.storeKey == "" {
		c.storeKey = prefs.KeySearchTerm
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.emit == nil {
		c.emit = logEvent
	}

	c.text = opts.DefaultText
	if c.text == "" {
		c.text = defaultText
	}
	stored, ok, err := c.store.Get(ctx, c.storeKey)
	switch {
	case err != nil:
		c.emit(Event{Kind: EventStoreReadFailed, Err: err})
	case ok && stored != "":
		c.text = stored
	}
	return c, nil
}

// Text returns the live search text.
func (c *Controller) Text() string { return c.text }

// CommittedQuery returns the query URL of the last submitted search.
func (c *Controller) CommittedQuery() string { return c.committed }

// Stories returns the current story list state.
func (c *Controller) Stories() state.Stories { return c.stories }

// Status returns the lifecycle position.
func (c *Controller) Status() Status { return c.status }

// Generation returns the generation of the latest cycle.
func (c *Controller) Generation() uint64 { return c.generation }

// LastError returns the error of the last applied failed cycle, if any.
func (c *Controller) LastError() error { return c.lastErr }

// SetText replaces the search text and writes it through to the store. It
// never starts a fetch. A failed write is reported as an event.
func (c *Controller) SetText(text string) {
	if text == c.text {
		return
	}
	c.text = text
	if err := c.store.Set(context.Background(), c.storeKey, text); err != nil {
		c.emit(Event{Kind: EventStoreWriteFailed, Err: err})
	}
}

// Submit commits the current text. It returns false without side effects
// when the text is blank or its query is already committed; otherwise it
// starts a new cycle which the caller must Execute and Settle.
func (c *Controller) Submit() (Cycle, bool) {
	if strings.TrimSpace(c.text) == "" {
		c.emit(Event{Kind: EventSubmitRejected})
		return Cycle{}, false
	}
	query := hnsearch.BuildQueryURL(c.endpoint, c.text)
	if query == c.committed {
		return Cycle{}, false
	}
	c.committed = query
	return c.begin(), true
}

// Refresh starts a new cycle for the committed query. It returns false when
// nothing has been committed yet.
func (c *Controller) Refresh() (Cycle, bool) {
	if c.committed == "" {
		return Cycle{}, false
	}
	return c.begin(), true
}

// Retry starts a new cycle for the committed query after a failed fetch,
// provided the text still maps to that query. It returns false otherwise.
func (c *Controller) Retry() (Cycle, bool) {
	if !c.stories.IsError || c.stories.IsLoading || strings.TrimSpace(c.text) == "" {
		return Cycle{}, false
	}
	if hnsearch.BuildQueryURL(c.endpoint, c.text) != c.committed {
		return Cycle{}, false
	}
	return c.begin(), true
}

func (c *Controller) begin() Cycle {
	c.generation++
	c.status = Fetching
	c.dispatch(state.FetchInit{})
	cycle := Cycle{Generation: c.generation, Query: c.committed}
	c.emit(Event{Kind: EventFetchStarted, Generation: cycle.Generation, Query: cycle.Query})
	return cycle
}

// Execute performs the network call for cycle. It reads no mutable
// controller state and may run on any goroutine.
func (c *Controller) Execute(ctx context.Context, cycle Cycle) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	items, err := c.fetcher.Search(ctx, cycle.Query)
	return Result{Cycle: cycle, Items: items, Err: err}
}

// Settle applies a finished cycle. Results from any generation other than
// the latest are dropped and Settle returns false.
func (c *Controller) Settle(res Result) bool {
	if res.Generation != c.generation {
		c.emit(Event{Kind: EventStaleDropped, Generation: res.Generation, Query: res.Query, Err: res.Err})
		return false
	}
	c.status = Settled
	if res.Err != nil {
		c.lastErr = res.Err
		c.dispatch(state.FetchFailure{})
		c.emit(Event{Kind: EventFetchFailed, Generation: res.Generation, Query: res.Query, Err: res.Err})
		return true
	}
	c.lastErr = nil
	c.dispatch(state.FetchSuccess{Items: res.Items})
	c.emit(Event{Kind: EventFetchSucceeded, Generation: res.Generation, Query: res.Query, Count: len(res.Items)})
	return true
}

// Dismiss removes a story from the list. Unknown ids are ignored.
func (c *Controller) Dismiss(objectID string) {
	c.dispatch(state.Remove{ObjectID: objectID})
}

// Fetch runs a whole cycle synchronously for the current text. It is meant
// for headless callers; the query is refetched even if already committed.
func (c *Controller) Fetch(ctx context.Context) error {
	cycle, ok := c.Submit()
	if !ok {
		if strings.TrimSpace(c.text) == "" {
			return ErrEmptyQuery
		}
		cycle, _ = c.Refresh()
	}
	res := c.Execute(ctx, cycle)
	c.Settle(res)
	return res.Err
}

func (c *Controller) dispatch(a state.Action) {
	c.stories = state.Reduce(c.stories, a)
}

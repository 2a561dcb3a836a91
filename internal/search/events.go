package search

import "log/slog"

// EventKind names a controller event.
type EventKind int

const (
	EventFetchStarted EventKind = iota
	EventFetchSucceeded
	EventFetchFailed
	EventStaleDropped
	EventSubmitRejected
	EventStoreReadFailed
	EventStoreWriteFailed
)

var eventNames = map[EventKind]string{
	EventFetchStarted:     "fetch started",
	EventFetchSucceeded:   "fetch succeeded",
	EventFetchFailed:      "fetch failed",
	EventStaleDropped:     "stale result dropped",
	EventSubmitRejected:   "submit rejected",
	EventStoreReadFailed:  "store read failed",
	EventStoreWriteFailed: "store write failed",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is reported to Options.OnEvent.
type Event struct {
	Kind       EventKind
	Generation uint64
	Query      string
	Count      int
	Err        error
}

func logEvent(e Event) {
	attrs := []any{"generation", e.Generation}
	if e.Query != "" {
		attrs = append(attrs, "query", e.Query)
	}
	switch e.Kind {
	case EventFetchSucceeded:
		attrs = append(attrs, "count", e.Count)
	case EventFetchFailed, EventStoreReadFailed, EventStoreWriteFailed:
		attrs = append(attrs, "error", e.Err)
		slog.Warn("search: "+e.Kind.String(), attrs...)
		return
	}
	slog.Debug("search: "+e.Kind.String(), attrs...)
}

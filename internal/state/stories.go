package state

import (
	"fmt"
	"strings"

	"github.com/five82/hackerstories/internal/hnsearch"
)

// Stories is the result list together with its fetch lifecycle flags.
type Stories struct {
	Items     []hnsearch.Story
	IsLoading bool
	IsError   bool
}

// Action is a transition request for Reduce. The unexported marker method
// keeps the set of actions closed to this package.
type Action interface {
	action()
}

// FetchInit marks the start of a fetch cycle.
type FetchInit struct{}

// FetchSuccess carries the complete result set of a fetch cycle.
type FetchSuccess struct {
	Items []hnsearch.Story
}

// FetchFailure marks a fetch cycle that ended in a transport or parse error.
type FetchFailure struct{}

// Remove dismisses every story with the given object id.
type Remove struct {
	ObjectID string
}

func (FetchInit) action()    {}
func (FetchSuccess) action() {}
func (FetchFailure) action() {}
func (Remove) action()       {}

// Reduce returns the state that follows s after applying a. It never
// modifies s or the slices it references.
func Reduce(s Stories, a Action) Stories {
	switch a := a.(type) {
	case FetchInit:
		return s.loading()
	case FetchSuccess:
		return s.loaded(a.Items)
	case FetchFailure:
		return s.failed()
	case Remove:
		return s.without(a.ObjectID)
	default:
		panic(fmt.Sprintf("state: unknown action %T", a))
	}
}

// loading sets IsLoading, clears IsError and keeps Items.
func (s Stories) loading() Stories {
	return Stories{Items: s.Items, IsLoading: true, IsError: false}
}

// loaded replaces Items and clears both flags.
func (s Stories) loaded(items []hnsearch.Story) Stories {
	return Stories{Items: cloneStories(items), IsLoading: false, IsError: false}
}

// failed clears IsLoading, sets IsError and keeps Items.
func (s Stories) failed() Stories {
	return Stories{Items: s.Items, IsLoading: false, IsError: true}
}

// without drops matching stories and keeps both flags.
func (s Stories) without(objectID string) Stories {
	idx := s.indexOf(objectID)
	if idx < 0 {
		return s
	}
	items := make([]hnsearch.Story, 0, len(s.Items)-1)
	for _, story := range s.Items {
		if story.ObjectID != objectID {
			items = append(items, story)
		}
	}
	return Stories{Items: items, IsLoading: s.IsLoading, IsError: s.IsError}
}

// Len returns the number of stories.
func (s Stories) Len() int {
	return len(s.Items)
}

// Find returns the story with the given object id.
func (s Stories) Find(objectID string) (hnsearch.Story, bool) {
	if idx := s.indexOf(objectID); idx >= 0 {
		return s.Items[idx], true
	}
	return hnsearch.Story{}, false
}

func (s Stories) indexOf(objectID string) int {
	for i, story := range s.Items {
		if story.ObjectID == objectID {
			return i
		}
	}
	return -1
}

// Filter returns the stories whose title contains term, ignoring case. A
// blank term returns items unchanged.
func Filter(items []hnsearch.Story, term string) []hnsearch.Story {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}
	out := make([]hnsearch.Story, 0, len(items))
	for _, story := range items {
		if strings.Contains(strings.ToLower(story.Title), term) {
			out = append(out, story)
		}
	}
	return out
}

func cloneStories(items []hnsearch.Story) []hnsearch.Story {
	if items == nil {
		return nil
	}
	dup := make([]hnsearch.Story, len(items))
	copy(dup, items)
	return dup
}

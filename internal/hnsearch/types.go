package hnsearch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Story mirrors a single hit returned by the search API.
type Story struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	NumComments int    `json:"num_comments"`
	Points      int    `json:"points"`
	CreatedAt   string `json:"created_at"`
	StoryText   string `json:"story_text"`
}

// UnmarshalJSON decodes a hit. The objectID may arrive as a JSON string or
// a JSON number; either way it is kept in its string form.
func (s *Story) UnmarshalJSON(data []byte) error {
	type plain Story
	var raw struct {
		plain
		ObjectID json.RawMessage `json:"objectID"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := decodeObjectID(raw.ObjectID)
	if err != nil {
		return err
	}
	*s = Story(raw.plain)
	s.ObjectID = id
	return nil
}

func decodeObjectID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
		return "", nil
	case raw[0] == '"':
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", fmt.Errorf("objectID: %w", err)
		}
		return id, nil
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", fmt.Errorf("objectID: %w", err)
		}
		return n.String(), nil
	}
}

// SearchResponse mirrors the search endpoint payload. Hits is a pointer so a
// body without the field can be told apart from an empty result set.
type SearchResponse struct {
	Hits   *[]Story `json:"hits"`
	Query  string   `json:"query"`
	NbHits int      `json:"nbHits"`
}

// DiscussionURL links to the story's comment thread.
func (s Story) DiscussionURL() string {
	return "https://news.ycombinator.com/item?id=" + s.ObjectID
}

// Link returns the story URL, falling back to the discussion page for
// self posts (Ask HN and friends) which carry no URL.
func (s Story) Link() string {
	if s.URL != "" {
		return s.URL
	}
	return s.DiscussionURL()
}

// ParsedCreatedAt returns the creation timestamp, or the zero time when it
// is missing or malformed.
func (s Story) ParsedCreatedAt() time.Time {
	if s.CreatedAt == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

func normalize(stories []Story) []Story {
	out := make([]Story, len(stories))
	for i, s := range stories {
		s.NumComments = max(s.NumComments, 0)
		s.Points = max(s.Points, 0)
		out[i] = s
	}
	return out
}

// Package ui provides the Bubble Tea terminal interface for hackerstories.
//
// # Layout
//
//	hackerstories  Ready  30 stories  updated 12:04:05  https://hn...query=react
//	Search > react
//	┌──── Stories (30) ────┐┌──────── Details ────────┐
//	│ React · jordwalke ·  ││ React                    │
//	│ ...                  ││ https://reactjs.org/     │
//	└──────────────────────┘└──────────────────────────┘
//	j/k:Navigate  d:Dismiss  r:Refresh  /:Filter  tab:Search  esc:Quit  ?:More  T:Nightfox
//
// # Fetch Cycles
//
// All controller state is touched from Update only. A submit starts a cycle
// on the search.Controller and returns a command that runs Controller.Execute
// off the update goroutine; the result comes back as a fetchResultMsg and is
// settled in Update, where results of superseded generations are dropped.
//
// Optional behaviors, all configured through Options:
//
//   - FetchOnStart submits the remembered text before the first frame
//   - AutoFetch submits after typing pauses for AutoFetchDebounce
//   - RefreshEvery re-runs the committed query, backing off after failures
//
// # Keys
//
// The search input has focus at start; enter submits and tab or esc moves to
// the list. In the list j/k, g/G navigate, d or x dismisses, r refreshes, /
// filters titles locally, T cycles the theme (remembered in the prefs store),
// ? shows help and esc quits. ctrl+c quits from anywhere.
package ui

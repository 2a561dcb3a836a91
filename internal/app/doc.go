// Package app is the composition root of hackerstories.
//
// # Overview
//
// Run wires configuration, logging, the prefs store, the search client, the
// search controller and the TUI, then blocks until the user quits:
//
//	Run()
//	  ├─> LoadConfig()          config.Load + Overrides
//	  ├─> setupFileLogging()    tea.LogToFile + slog text handler
//	  ├─> prefs.Open()          file, redis, sqlite or memory store
//	  ├─> hnsearch.NewClient()  HTTP client with request timeout
//	  ├─> search.New()          restores the remembered search term
//	  └─> ui.Run()              Bubble Tea program (blocks)
//
// OpenSession performs the same wiring without a terminal UI, for the
// headless CLI commands; its logs go to Options.LogOutput.
//
// # Theme Selection
//
// An explicit --theme wins, then the theme remembered in the store, then the
// theme from the config file.
//
// # Error Handling
//
// Configuration, log file and store failures are returned before the UI
// starts. Fetch failures never end the program; they surface in the UI.
package app

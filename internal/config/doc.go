// Package config loads the hackerstories TOML configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/hackerstories/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Blank fields fall back to defaults
//
// Overrides from flags or the environment are applied afterwards with
// Config.Apply.
//
// # TOML Format
//
//	endpoint = "https://hn.algolia.com/api/v1/search?query="
//	default_query = "React"
//	request_timeout = "10s"
//	fetch_on_start = true
//	auto_fetch = false
//	auto_fetch_debounce = "400ms"
//	refresh_every = "0s"
//	theme = "Nightfox"
//	log_file = "~/.local/state/hackerstories/hackerstories.log"
//	log_level = "info"
//
//	[store]
//	backend = "file"       # file, redis, sqlite or memory
//	path = ""              # file and sqlite backends
//	redis_addr = "127.0.0.1:6379"
//	redis_password = ""
//	redis_db = 0
//	key_prefix = "hackerstories"
//
// Durations use Go syntax. Tilde expansion is performed for log_file.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML, malformed or
// negative durations, a non-http endpoint and unknown log levels. A missing
// file is not an error.
package config

// Package logtail reads the tail of the hackerstories log file.
//
// Read keeps a ring buffer of the last N matching lines, so memory stays
// bounded for large files. AtLeast filters slog text-handler lines by their
// level=... field; lines from the standard log package carry no level and
// always pass.
package logtail

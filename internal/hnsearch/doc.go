// Package hnsearch provides an HTTP client for the Hacker News search API.
//
// # Overview
//
// A search is a single GET against a query URL built from an endpoint prefix
// and the URL-encoded search text:
//
//	queryURL := hnsearch.BuildQueryURL(hnsearch.DefaultEndpoint, "react")
//	stories, err := client.Search(ctx, queryURL)
//
// The response body must be a JSON object with a "hits" array. Each hit is
// decoded into a Story; negative comment or point counts are clamped to zero.
// The objectID may be a JSON string or number and is stored as a string.
//
// # Error Handling
//
//   - Transport failures: "execute request: ..." (dial errors, timeouts, cancellation)
//   - Non-2xx status: *StatusError
//   - Undecodable body or missing "hits": wraps ErrMalformed
//
// Callers fold all three into a single fetch failure; the distinction exists
// for logging and tests.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package hnsearch

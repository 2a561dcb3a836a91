// Package search decides which query is active and when a fetch runs.
//
// A Controller holds the live search text, the committed query URL and the
// story list. Typing only changes the text (and writes it through to the
// prefs store). Submit commits the text and starts a Cycle; the caller runs
// Execute, usually inside a Bubble Tea command, and hands the Result back to
// Settle on the owning goroutine.
//
// Every cycle carries a generation number. Settle applies a result only when
// its generation is the latest one issued, so a slow response for an
// abandoned query can never overwrite the list of a newer one:
//
//	first, _ := c.Submit()  // generation 1, "react"
//	c.SetText("redux")
//	second, _ := c.Submit() // generation 2, "redux"
//	c.Settle(c.Execute(ctx, second)) // applied
//	c.Settle(c.Execute(ctx, first))  // dropped, returns false
//
// Submitting the already committed query does nothing. Refresh re-runs it,
// and Retry does the same only after that query's fetch failed.
//
// Diagnostics go through Options.OnEvent instead of ambient logging.
package search

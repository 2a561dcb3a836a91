package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxBackoff caps the refresh delay after consecutive failures.
const maxBackoff = 30 * time.Second

// calculateBackoff returns the delay before the next refresh: base doubled
// once per consecutive failure, capped at maxBackoff. A base above the cap is
// never shortened.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	limit := max(maxBackoff, base)
	d := base
	for i := 0; i < failures && d < limit; i++ {
		d *= 2
	}
	return min(d, limit)
}

// scheduleRefresh arms the next auto-refresh. Any previously armed tick is
// invalidated so at most one refresh is pending.
func (m *Model) scheduleRefresh() tea.Cmd {
	if m.refreshEvery <= 0 {
		return nil
	}
	m.refreshSeq++
	seq := m.refreshSeq
	return tea.Tick(calculateBackoff(m.failures, m.refreshEvery), func(time.Time) tea.Msg {
		return refreshMsg{seq: seq}
	})
}

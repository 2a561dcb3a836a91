package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hackerstories/internal/search"
)

// fetchStatus names the list state for the header badge and theme colors.
func (m Model) fetchStatus() string {
	stories := m.ctrl.Stories()
	switch {
	case stories.IsLoading:
		return "loading"
	case stories.IsError:
		return "error"
	case m.ctrl.Status() == search.Settled:
		return "ready"
	default:
		return "idle"
	}
}

// renderHeader renders the status bar: logo, status badge, status text and
// the committed query.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().On(m.theme.Bar)
	bg := newPainter(m.theme.Bar)

	status := m.fetchStatus()
	parts := []string{
		bg.Text("hackerstories", styles.Logo),
		styles.StatusStyle(status).Render(titleCase(status)),
	}

	stories := m.ctrl.Stories()
	switch status {
	case "loading":
		parts = append(parts, m.spinner.View()+bg.Gap(1)+bg.Text("Loading...", styles.WarningText.Bold(true)))
	case "error":
		parts = append(parts, bg.Text("Something went wrong ...", styles.DangerText))
		if err := m.ctrl.LastError(); err != nil && m.width >= 140 {
			parts = append(parts, bg.Text(truncate(err.Error(), 48), styles.FaintText))
		}
	case "ready":
		parts = append(parts, bg.Text(pluralize(stories.Len(), "story", "stories"), styles.SuccessText))
		if !m.lastUpdated.IsZero() {
			parts = append(parts, bg.Text("updated "+m.lastUpdated.Format("15:04:05"), styles.MutedText))
		}
	}

	if q := m.ctrl.CommittedQuery(); q != "" && m.width >= 80 {
		parts = append(parts, bg.Text(truncateMiddle(q, max(m.width/3, 20)), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderSearchBar renders the search label and text input.
func (m Model) renderSearchBar() string {
	styles := m.theme.Styles().On(m.theme.Bar)
	bg := newPainter(m.theme.Bar)

	labelStyle := styles.MutedText
	if m.focus == focusInput {
		labelStyle = styles.AccentText.Bold(true)
	}
	m.input.Width = max(m.width-12, 10)

	return styles.Header.Width(m.width).Render(
		bg.Text("Search", labelStyle) + bg.Text(" > ", styles.FaintText) + m.input.View(),
	)
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().On(m.theme.Bar)
	bg := newPainter(m.theme.Bar)

	if m.filtering {
		m.filterInput.Width = max(m.width/3, 10)
		return styles.Header.Width(m.width).Render(
			m.filterInput.View() + bg.Gap(2) +
				bg.Text("enter", styles.AccentText) + bg.Sep(":") + bg.Text("Keep", styles.MutedText) + bg.Gap(2) +
				bg.Text("esc", styles.AccentText) + bg.Sep(":") + bg.Text("Clear", styles.MutedText),
		)
	}

	type cmd struct{ key, desc string }
	var commands []cmd
	if m.focus == focusInput {
		commands = []cmd{
			{"enter", "Search"},
			{"tab", "List"},
			{"ctrl+c", "Quit"},
		}
	} else {
		commands = []cmd{
			{"j/k", "Navigate"},
			{"d", "Dismiss"},
			{"r", "Refresh"},
			{"/", "Filter"},
			{"tab", "Search"},
			{"esc", "Quit"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Text(c.key, styles.AccentText)+colon+bg.Text(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Text("T", styles.AccentText)+colon+bg.Text(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(segments, "  "))
}

// resize fits the detail viewport to the current window.
func (m *Model) resize() {
	_, detailWidth := m.paneWidths()
	m.detail.Width = max(detailWidth-2, 0)
	m.detail.Height = max(m.contentHeight()-2, 0)
	m.detail.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Pane))
	m.detailID = ""
	m.updateDetail()
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hackerstories/internal/hnsearch"
	"github.com/five82/hackerstories/internal/state"
)

// visibleStories returns the stories that pass the local title filter.
func (m Model) visibleStories() []hnsearch.Story {
	return state.Filter(m.ctrl.Stories().Items, m.filter)
}

// selectedStory returns the highlighted story, or nil when the list is empty.
func (m Model) selectedStory() *hnsearch.Story {
	items := m.visibleStories()
	if m.selectedRow < 0 || m.selectedRow >= len(items) {
		return nil
	}
	story := items[m.selectedRow]
	return &story
}

func (m Model) selectedID() string {
	if story := m.selectedStory(); story != nil {
		return story.ObjectID
	}
	return ""
}

// restoreSelection keeps the selection on the story with the given id when it
// is still visible, otherwise clamps the row to the list.
func (m *Model) restoreSelection(objectID string) {
	items := m.visibleStories()
	if objectID != "" {
		for i, story := range items {
			if story.ObjectID == objectID {
				m.selectedRow = i
				m.updateDetail()
				return
			}
		}
	}
	m.selectRow(m.selectedRow)
}

// selectRow moves the selection to row, clamped to the visible list.
func (m *Model) selectRow(row int) {
	count := len(m.visibleStories())
	switch {
	case count == 0:
		row = 0
	case row >= count:
		row = count - 1
	case row < 0:
		row = 0
	}
	m.selectedRow = row
	m.updateDetail()
}

func (m *Model) moveSelection(delta int) {
	m.selectRow(m.selectedRow + delta)
}

// dismissSelected removes the highlighted story. The row stays put so the
// next story slides under the cursor.
func (m *Model) dismissSelected() {
	story := m.selectedStory()
	if story == nil {
		return
	}
	m.ctrl.Dismiss(story.ObjectID)
	m.selectRow(m.selectedRow)
}

func (m *Model) startFilter() {
	m.filtering = true
	m.filterInput.SetValue(m.filter)
	m.filterInput.CursorEnd()
	m.filterInput.Focus()
}

// handleFilterKey processes keys while the filter prompt is open. The filter
// applies as it is typed; enter keeps it and esc clears it.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prevID := m.selectedID()
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.filter = ""
		m.restoreSelection(prevID)
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filter = strings.TrimSpace(m.filterInput.Value())
	m.restoreSelection(prevID)
	return m, cmd
}

// listTitle returns the list pane title with an optional filter indicator.
func (m Model) listTitle() string {
	total := m.ctrl.Stories().Len()
	if m.filter == "" {
		return fmt.Sprintf("Stories (%d)", total)
	}
	return fmt.Sprintf("Stories (%d/%d) /%s", len(m.visibleStories()), total, truncate(m.filter, 16))
}

// renderContent renders the split layout: story list and detail pane.
func (m Model) renderContent() string {
	contentHeight := m.contentHeight()
	listWidth, detailWidth := m.paneWidths()

	listFocused := m.focus == focusList && !m.filtering
	listBg := m.theme.Pane
	if listFocused {
		listBg = m.theme.PaneFocus
	}
	listContent := m.renderStoryList(listWidth-2, contentHeight-2, listBg)
	listPane := m.renderTitledBox(m.listTitle(), listContent, listWidth, contentHeight, listFocused)

	detailContent := m.detail.View()
	if m.selectedStory() == nil {
		detailContent = lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Muted)).
			Background(lipgloss.Color(m.theme.Pane)).
			Render("Select a story")
	}
	detailPane := m.renderTitledBox("Details", detailContent, detailWidth, contentHeight, false)

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// renderStoryList renders the visible window of stories as styled rows.
func (m Model) renderStoryList(width, height int, bgColor string) string {
	items := m.visibleStories()
	if len(items) == 0 {
		msg := "No stories"
		switch {
		case m.filter != "":
			msg = "No stories match /" + m.filter
		case m.ctrl.Stories().IsLoading:
			msg = "Loading..."
		}
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Muted)).
			Background(lipgloss.Color(bgColor)).
			Render(msg)
	}

	// Keep the selected row inside the window.
	start := 0
	if height > 0 && m.selectedRow >= height {
		start = m.selectedRow - height + 1
	}
	end := len(items)
	if height > 0 {
		end = min(end, start+height)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selected := i == m.selectedRow
		rowBg := bgColor
		if selected {
			rowBg = m.theme.Selection
		}
		content := m.formatStoryRow(items[i], width, rowBg, selected)
		lines = append(lines, newPainter(rowBg).Fill(content, width))
	}
	return strings.Join(lines, "\n")
}

// formatStoryRow formats one story row with inline colors.
// Format: "Title · author · 12p 3c"
// Selected rows use the Selected style throughout for contrast.
func (m Model) formatStoryRow(story hnsearch.Story, width int, bgColor string, selected bool) string {
	bg := newPainter(bgColor)

	meta := fmt.Sprintf("%dp %dc", story.Points, story.NumComments)
	author := truncate(story.Author, 16)
	separatorLen := 3 // " · "
	titleWidth := max(width-len(meta)-len([]rune(author))-2*separatorLen-1, 10)

	styles := m.theme.Styles()
	titleStyle, authorStyle, sepStyle, metaStyle := styles.Text, styles.MutedText, styles.FaintText, styles.InfoText
	if selected {
		titleStyle, authorStyle, sepStyle, metaStyle = styles.Selected, styles.Selected, styles.Selected, styles.Selected
	}

	title := story.Title
	if title == "" {
		title = "(untitled)"
	}
	parts := []string{bg.Text(truncate(title, titleWidth), titleStyle)}
	if author != "" {
		parts = append(parts, bg.Text(author, authorStyle))
	}
	parts = append(parts, bg.Text(meta, metaStyle))
	return strings.Join(parts, bg.Text(" · ", sepStyle))
}

// renderTitledBox renders content in a box with the title embedded in the top border:
// ┌─── Title ───┐
// When focused is true, uses the BorderFocus color on the PaneFocus fill.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	var borderColorStr, bgColorStr string
	if focused {
		borderColorStr = m.theme.BorderFocus
		bgColorStr = m.theme.PaneFocus
	} else {
		borderColorStr = m.theme.Border
		bgColorStr = m.theme.Pane
	}
	bg := newPainter(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	titleLen := len([]rune(title))
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Text("┌", borderStyle) +
		bg.Text(strings.Repeat("─", leftPad), borderStyle) +
		bg.Text(" "+title+" ", titleStyle) +
		bg.Text(strings.Repeat("─", rightPad), borderStyle) +
		bg.Text("┐", borderStyle)

	bottomBorder := bg.Text("└", borderStyle) +
		bg.Text(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Text("┘", borderStyle)

	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	paddedLines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		paddedLines = append(paddedLines,
			bg.Text("│", borderStyle)+
				bg.Fill(line, innerWidth)+
				bg.Text("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(paddedLines, "\n") + "\n" + bottomBorder
}

// contentHeight is the height left for the panes after the header, search
// bar and command bar.
func (m Model) contentHeight() int {
	return max(m.height-3, 3)
}

// paneWidths splits the width between list and detail panes.
// Extra wide (>= 160): 40% list. Default: 55% list.
func (m Model) paneWidths() (list, detail int) {
	if m.width >= 160 {
		list = m.width * 40 / 100
	} else {
		list = m.width * 55 / 100
	}
	return list, m.width - list
}

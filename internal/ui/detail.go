package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/hackerstories/internal/hnsearch"
)

var storyTextConverter = md.NewConverter("", true, nil)

// storyTextMarkdown converts the HTML body of a self post to Markdown. The
// raw HTML is returned when conversion fails.
func storyTextMarkdown(html string) string {
	html = strings.TrimSpace(html)
	if html == "" {
		return ""
	}
	markdown, err := storyTextConverter.ConvertString(html)
	if err != nil {
		slog.Debug("ui: convert story text failed", "error", err)
		return html
	}
	return strings.TrimSpace(markdown)
}

// updateDetail re-renders the detail viewport for the selected story. The
// scroll position resets when the selection moves to another story.
func (m *Model) updateDetail() {
	if m.detail.Width <= 0 {
		return
	}
	m.detail.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.Pane))

	story := m.selectedStory()
	if story == nil {
		m.detailID = ""
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(m.renderDetailContent(*story, m.detail.Width-2, m.theme.Pane))
	if story.ObjectID != m.detailID {
		m.detailID = story.ObjectID
		m.detail.GotoTop()
	}
}

// renderDetailContent renders the fields of a story followed by its text.
func (m Model) renderDetailContent(story hnsearch.Story, width int, bgColor string) string {
	styles := m.theme.Styles().On(bgColor)
	bg := newPainter(bgColor)
	width = max(width, 10)

	var lines []string
	title := story.Title
	if title == "" {
		title = "(untitled)"
	}
	lines = append(lines, styles.Text.Bold(true).Width(width).Render(title))
	if story.URL != "" {
		lines = append(lines, bg.Text(truncate(story.URL, width), styles.AccentText))
	}
	lines = append(lines, "")

	field := func(label, value string, style lipgloss.Style) {
		if value == "" {
			return
		}
		lines = append(lines, bg.Text(padRight(label, 10), styles.FaintText)+bg.Text(value, style))
	}
	field("Author", story.Author, styles.Text)
	field("Points", fmt.Sprint(story.Points), styles.InfoText)
	field("Comments", fmt.Sprint(story.NumComments), styles.InfoText)
	if created := story.ParsedCreatedAt(); !created.IsZero() {
		field("Posted", created.Local().Format("2006-01-02 15:04")+" ("+humanizeDuration(time.Since(created))+" ago)", styles.MutedText)
	}
	field("Thread", truncate(story.DiscussionURL(), width-10), styles.MutedText)
	field("ID", story.ObjectID, styles.FaintText)

	if text := storyTextMarkdown(story.StoryText); text != "" {
		lines = append(lines, "", styles.Text.Width(width).Render(text))
	}
	return strings.Join(lines, "\n")
}

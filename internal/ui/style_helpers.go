package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// painter draws text segments on one shared background. lipgloss resets the
// background after each rendered segment, so the gaps between segments have
// to be painted as well.
type painter struct {
	bg    lipgloss.Color
	space string
}

func newPainter(color string) painter {
	bg := lipgloss.Color(color)
	return painter{bg: bg, space: lipgloss.NewStyle().Background(bg).Render(" ")}
}

// Text renders text in style, painting the spaces between words too.
func (p painter) Text(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(p.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, p.space)
}

// Gap returns n painted spaces.
func (p painter) Gap(n int) string {
	return p.Sep(strings.Repeat(" ", max(n, 0)))
}

// Sep renders sep with no foreground style.
func (p painter) Sep(sep string) string {
	return lipgloss.NewStyle().Background(p.bg).Render(sep)
}

// Join joins already rendered parts with a painted separator.
func (p painter) Join(parts []string, sep string) string {
	return strings.Join(parts, p.Sep(sep))
}

// Fill pads content to exactly width cells on the background.
func (p painter) Fill(content string, width int) string {
	width = max(width, 0)
	return lipgloss.NewStyle().Background(p.bg).Width(width).MaxWidth(width).Render(content)
}

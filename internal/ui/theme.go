package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named color palette for the story browser.
type Theme struct {
	Name string

	Bar       string // header, search bar and command bar
	Pane      string // unfocused pane fill
	PaneFocus string // focused pane fill
	Backdrop  string // behind the help overlay

	Selection     string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Status maps a fetch status (idle, loading, ready, error) to a badge color.
	Status map[string]string
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	status    map[string]string
	badgeText string
	muted     string
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:   fg(t.Text).Background(lipgloss.Color(t.Bar)).Padding(0, 1),
		Logo:     fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.Selection)),

		status:    t.Status,
		badgeText: t.Backdrop,
		muted:     t.Muted,
	}
}

// StatusStyle returns the header badge style for a fetch status. Unknown
// statuses use the muted color.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color, ok := s.status[status]
	if !ok || color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.badgeText)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// On returns a copy of s with every style drawn on the bg color.
func (s Styles) On(bg string) Styles {
	c := lipgloss.Color(bg)
	out := s
	for _, st := range []*lipgloss.Style{
		&out.Text, &out.MutedText, &out.FaintText, &out.AccentText,
		&out.SuccessText, &out.WarningText, &out.DangerText, &out.InfoText,
		&out.Header, &out.Logo, &out.Selected,
	} {
		*st = st.Background(c)
	}
	return out
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

var themes = map[string]Theme{
	// https://github.com/EdenEast/nightfox.nvim
	"Nightfox": {
		Name: "Nightfox",
		Bar:  "#192330", Pane: "#212e3f", PaneFocus: "#29394f", Backdrop: "#131a24",
		Selection: "#2b3b51", SelectionText: "#cdcecf",
		Border: "#39506d", BorderFocus: "#719cd6",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b", Accent: "#719cd6",
		Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d", Info: "#63cdcf",
		Status: map[string]string{
			"idle": "#738091", "loading": "#63cdcf", "ready": "#81b29a", "error": "#c94f6d",
		},
	},
	// https://github.com/rebelot/kanagawa.nvim
	"Kanagawa": {
		Name: "Kanagawa",
		Bar:  "#1F1F28", Pane: "#2A2A37", PaneFocus: "#363646", Backdrop: "#16161D",
		Selection: "#2D4F67", SelectionText: "#DCD7BA",
		Border: "#54546D", BorderFocus: "#7E9CD8",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169", Accent: "#7E9CD8",
		Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876", Info: "#7FB4CA",
		Status: map[string]string{
			"idle": "#727169", "loading": "#7FB4CA", "ready": "#98BB6C", "error": "#E46876",
		},
	},
	// Tailwind slate and sky
	"Slate": {
		Name: "Slate",
		Bar:  "#0f172a", Pane: "#1e293b", PaneFocus: "#283548", Backdrop: "#020617",
		Selection: "#0284c7", SelectionText: "#f8fafc",
		Border: "#334155", BorderFocus: "#38bdf8",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b", Accent: "#38bdf8",
		Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444", Info: "#06b6d4",
		Status: map[string]string{
			"idle": "#64748b", "loading": "#38bdf8", "ready": "#22c55e", "error": "#dc2626",
		},
	},
}

// GetTheme returns the named theme, or Nightfox for an unknown name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

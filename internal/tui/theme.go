package tui

import "github.com/charmbracelet/lipgloss"

// Theme names accepted by the UI.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type theme struct {
	name        string
	correct     lipgloss.Style
	incorrect   lipgloss.Style
	missed      lipgloss.Style
	pending     lipgloss.Style
	currentWord lipgloss.Style
	cursor      lipgloss.Style
	blurred     lipgloss.Style
	timer       lipgloss.Style
	accent      lipgloss.Style
	muted       lipgloss.Style
	selected    lipgloss.Style
	card        lipgloss.Style
	cardTitle   lipgloss.Style
	cardValue   lipgloss.Style
	notice      lipgloss.Style
}

type palette struct {
	text, error, missed, pending, current, accent, muted, border string
}

var (
	darkPalette = palette{
		text:    "#F0F0F0",
		error:   "#FF4D4F",
		missed:  "#7A2E2F",
		pending: "#8C8C8C",
		current: "#C89A3A",
		accent:  "#22D3EE",
		muted:   "#6E6E6E",
		border:  "#4A4A4A",
	}
	lightPalette = palette{
		text:    "#0F172A",
		error:   "#DC2626",
		missed:  "#FCA5A5",
		pending: "#94A3B8",
		current: "#A16207",
		accent:  "#0284C7",
		muted:   "#64748B",
		border:  "#CBD5E1",
	}
)

func newTheme(name string) theme {
	p := darkPalette
	if name == ThemeLight {
		p = lightPalette
	} else {
		name = ThemeDark
	}
	pending := lipgloss.NewStyle().Foreground(lipgloss.Color(p.pending))
	return theme{
		name:        name,
		correct:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Bold(true),
		incorrect:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.error)).Underline(true),
		missed:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.missed)),
		pending:     pending,
		currentWord: lipgloss.NewStyle().Foreground(lipgloss.Color(p.current)),
		cursor:      pending.Underline(true),
		blurred:     pending.Faint(true),
		timer:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Bold(true),
		accent:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true),
		muted:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.text)).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(p.current)),
		card: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(p.border)),
		cardTitle: lipgloss.NewStyle().Foreground(lipgloss.Color(p.pending)),
		cardValue: lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Bold(true),
		notice:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)),
	}
}

// DetectTheme picks a theme from the terminal background.
func DetectTheme() string {
	if lipgloss.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

func (t theme) toggled() theme {
	if t.name == ThemeDark {
		return newTheme(ThemeLight)
	}
	return newTheme(ThemeDark)
}

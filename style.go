package main

import "github.com/charmbracelet/lipgloss"

type themeName string

const (
	themeDark  themeName = "dark"
	themeLight themeName = "light"
)

// palette is the set of colours a theme provides. Protocol names are drawn
// in the protocol's own colour regardless of theme.
type palette struct {
	Title    lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Faint    lipgloss.Color
	Border   lipgloss.Color
	Accent   lipgloss.Color
	Selected lipgloss.Color
	Shifted  lipgloss.Color
}

var palettes = map[themeName]palette{
	themeDark: {
		Title:    lipgloss.Color("#f8fafc"),
		Text:     lipgloss.Color("#e2e8f0"),
		Muted:    lipgloss.Color("#a0aec0"),
		Faint:    lipgloss.Color("#718096"),
		Border:   lipgloss.Color("240"),
		Accent:   lipgloss.Color("#60a5fa"),
		Selected: lipgloss.Color("#3a3a3a"),
		Shifted:  lipgloss.Color("#ff9f1c"),
	},
	themeLight: {
		Title:    lipgloss.Color("#0f172a"),
		Text:     lipgloss.Color("#334155"),
		Muted:    lipgloss.Color("#475569"),
		Faint:    lipgloss.Color("#64748b"),
		Border:   lipgloss.Color("250"),
		Accent:   lipgloss.Color("#2563eb"),
		Selected: lipgloss.Color("#e2e8f0"),
		Shifted:  lipgloss.Color("#c2410c"),
	},
}

func parseTheme(s string) (themeName, bool) {
	switch themeName(s) {
	case themeDark, themeLight:
		return themeName(s), true
	case "":
		if lipgloss.HasDarkBackground() {
			return themeDark, true
		}
		return themeLight, true
	}
	return "", false
}

func (t themeName) toggle() themeName {
	if t == themeDark {
		return themeLight
	}
	return themeDark
}

// styles are rebuilt whenever the theme changes.
type styles struct {
	app        lipgloss.Style
	title      lipgloss.Style
	clock      lipgloss.Style
	text       lipgloss.Style
	muted      lipgloss.Style
	faint      lipgloss.Style
	mono       lipgloss.Style
	card       lipgloss.Style
	cardActive lipgloss.Style
	heading    lipgloss.Style
	protoRow   lipgloss.Style
	protoSel   lipgloss.Style
	shifted    lipgloss.Style
	detail     lipgloss.Style
}

func newStyles(t themeName) styles {
	p := palettes[t]
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		Align(lipgloss.Center)
	return styles{
		app:        lipgloss.NewStyle().Margin(1, 2),
		title:      lipgloss.NewStyle().Bold(true).Foreground(p.Title),
		clock:      lipgloss.NewStyle().Foreground(p.Text),
		text:       lipgloss.NewStyle().Foreground(p.Text),
		muted:      lipgloss.NewStyle().Foreground(p.Muted),
		faint:      lipgloss.NewStyle().Foreground(p.Faint),
		mono:       lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		card:       card,
		cardActive: card.BorderForeground(p.Accent),
		heading:    lipgloss.NewStyle().Bold(true).Foreground(p.Title),
		protoRow:   lipgloss.NewStyle().Padding(0, 1),
		protoSel:   lipgloss.NewStyle().Padding(0, 1).Background(p.Selected),
		shifted:    lipgloss.NewStyle().Foreground(p.Shifted),
		detail: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			BorderTop(false).BorderRight(false).BorderBottom(false).BorderLeft(true).
			PaddingLeft(1).
			MarginLeft(3),
	}
}

package ui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	accent, label lipgloss.Color
}

var palettes = map[string]palette{
	"blue":  {accent: "45", label: "81"},
	"green": {accent: "42", label: "114"},
}

// theme holds the styles for one appearance mode and color theme. Switching
// either rebuilds it; nothing else in the model changes.
type theme struct {
	appearance string
	color      string

	title  lipgloss.Style
	subtle lipgloss.Style
	label  lipgloss.Style
	gauge  lipgloss.Style
	warn   lipgloss.Style
	card   lipgloss.Style
}

func newTheme(appearance, color string) theme {
	p, ok := palettes[color]
	if !ok {
		color, p = "blue", palettes["blue"]
	}
	subtle, border := lipgloss.Color("244"), lipgloss.Color("60")
	if appearance == "light" {
		subtle, border = "240", "250"
	} else {
		appearance = "dark"
	}

	return theme{
		appearance: appearance,
		color:      color,
		title:      lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		subtle:     lipgloss.NewStyle().Foreground(subtle),
		label:      lipgloss.NewStyle().Foreground(p.label).Bold(true),
		gauge:      lipgloss.NewStyle().Foreground(p.accent),
		warn:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			MarginRight(1),
	}
}

func (t theme) toggleAppearance() theme {
	if t.appearance == "dark" {
		return newTheme("light", t.color)
	}
	return newTheme("dark", t.color)
}

func (t theme) toggleColor() theme {
	if t.color == "blue" {
		return newTheme(t.appearance, "green")
	}
	return newTheme(t.appearance, "blue")
}

func (t theme) render(title, body string) string {
	return t.card.Render(t.label.Render(title) + "\n" + body)
}

package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors of everything around the watch display. The
// display itself keeps the watchface's own palette.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Side panel and footer
	FocusBg    string // Log overlay

	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	// Components
	Panel  lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style
}

// Theme definitions

var themes = map[string]Theme{
	"Towel":     towelTheme(),
	"Vogon":     vogonTheme(),
	"Magrathea": magratheaTheme(),
}

var themeOrder = []string{"Towel", "Vogon", "Magrathea"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return towelTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func towelTheme() Theme {
	// Navy and yellow, after the watchface itself.
	return Theme{
		Name: "Towel",

		Background: "#0b1026",
		Surface:    "#141b3a",
		FocusBg:    "#1c2550",

		Border:      "#2e3a73",
		BorderFocus: "#ffd400",

		Text:    "#e8e6d9",
		Muted:   "#9aa0bf",
		Faint:   "#6b7399",
		Accent:  "#ffd400",
		Success: "#7ccf8a",
		Warning: "#ffb347",
		Danger:  "#ff5f5f",
	}
}

func vogonTheme() Theme {
	// Bureaucratic greens.
	return Theme{
		Name: "Vogon",

		Background: "#101a12",
		Surface:    "#18261b",
		FocusBg:    "#213326",

		Border:      "#35503b",
		BorderFocus: "#a3d977",

		Text:    "#d8e6d0",
		Muted:   "#93a88c",
		Faint:   "#6b8066",
		Accent:  "#a3d977",
		Success: "#78c48a",
		Warning: "#e0c060",
		Danger:  "#e06c5f",
	}
}

func magratheaTheme() Theme {
	// Light planet-factory palette.
	return Theme{
		Name: "Magrathea",

		Background: "#f4f1ea",
		Surface:    "#e7e2d6",
		FocusBg:    "#ddd6c6",

		Border:      "#b8ae98",
		BorderFocus: "#8a4fbf",

		Text:    "#2b2633",
		Muted:   "#5d5668",
		Faint:   "#857d8f",
		Accent:  "#8a4fbf",
		Success: "#2f8f5b",
		Warning: "#b26b00",
		Danger:  "#c0392b",
	}
}

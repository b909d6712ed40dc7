package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the deck
type Theme struct {
	Name      string
	Primary   lipgloss.Color // mesh, progress start
	Secondary lipgloss.Color // progress end, user bubbles
	Accent    lipgloss.Color // the mass
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Surface   lipgloss.Color // card borders
	Error     lipgloss.Color
}

var (
	ThemeNebula = Theme{
		Name:      "nebula",
		Primary:   lipgloss.Color("#4fd1c5"),
		Secondary: lipgloss.Color("#9f7aea"),
		Accent:    lipgloss.Color("#ffa500"),
		Text:      lipgloss.Color("#e2e8f0"),
		Muted:     lipgloss.Color("#64748b"),
		Surface:   lipgloss.Color("#334155"),
		Error:     lipgloss.Color("#ff4757"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // Green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Surface:   lipgloss.Color("#003300"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Surface:   lipgloss.Color("#444444"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#feca57"),
		Secondary: lipgloss.Color("#ff6b6b"), // Coral
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Surface:   lipgloss.Color("#4a2f4b"),
		Error:     lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemeNebula,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to nebula.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNebula
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// HasTheme reports whether name is a built-in theme.
func HasTheme(name string) bool {
	for _, t := range Themes {
		if t.Name == name {
			return true
		}
	}
	return false
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

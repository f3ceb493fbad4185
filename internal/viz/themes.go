package viz

import "github.com/charmbracelet/lipgloss"

// Theme sets the colors the canvas and panel use on top of the fixed lobe
// palette.
type Theme struct {
	Name   string
	Arm    lipgloss.Color
	Hot    lipgloss.Color
	Cold   lipgloss.Color
	Header lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Muted  lipgloss.Color
	Graph  lipgloss.Color
}

var (
	ThemeDemon = Theme{
		Name:   "demon",
		Arm:    lipgloss.Color("#c8c8c8"),
		Hot:    lipgloss.Color("#ffffff"),
		Cold:   lipgloss.Color("#6b8cff"),
		Header: lipgloss.Color("#ffd93d"),
		Label:  lipgloss.Color("#8899aa"),
		Value:  lipgloss.Color("#e6eef8"),
		Muted:  lipgloss.Color("#445566"),
		Graph:  lipgloss.Color("#6be36b"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Arm:    lipgloss.Color("#00cc00"),
		Hot:    lipgloss.Color("#88ff88"),
		Cold:   lipgloss.Color("#005500"),
		Header: lipgloss.Color("#00ff00"),
		Label:  lipgloss.Color("#00aa00"),
		Value:  lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Graph:  lipgloss.Color("#88ff88"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Arm:    lipgloss.Color("#888888"),
		Hot:    lipgloss.Color("#ffffff"),
		Cold:   lipgloss.Color("#888888"),
		Header: lipgloss.Color("#ffffff"),
		Label:  lipgloss.Color("#888888"),
		Value:  lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#444444"),
		Graph:  lipgloss.Color("#cccccc"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Arm:    lipgloss.Color("#8b6b8c"),
		Hot:    lipgloss.Color("#ff9ff3"),
		Cold:   lipgloss.Color("#feca57"),
		Header: lipgloss.Color("#ff6b6b"),
		Label:  lipgloss.Color("#8b6b8c"),
		Value:  lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#5a405b"),
		Graph:  lipgloss.Color("#ff9ff3"),
	}

	Themes = []Theme{
		ThemeDemon,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDemon
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

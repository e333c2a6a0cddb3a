package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme of the playback screen.
type Theme struct {
	Name     string
	Title    lipgloss.Color
	Walk     lipgloss.Color
	Expected lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Playing  lipgloss.Color
	Paused   lipgloss.Color
	Error    lipgloss.Color
}

var (
	ThemeDefault = Theme{
		Name:     "default",
		Title:    lipgloss.Color("86"),
		Walk:     lipgloss.Color("#4bc0c0"), // teal walk line
		Expected: lipgloss.Color("#ff6384"), // pink expectation line
		Text:     lipgloss.Color("252"),
		Muted:    lipgloss.Color("240"),
		Playing:  lipgloss.Color("#00ff88"),
		Paused:   lipgloss.Color("#ffaa00"),
		Error:    lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Title:    lipgloss.Color("#00ff00"),
		Walk:     lipgloss.Color("#88ff88"),
		Expected: lipgloss.Color("#ffff00"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Playing:  lipgloss.Color("#88ff88"),
		Paused:   lipgloss.Color("#ffff00"),
		Error:    lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Title:    lipgloss.Color("#ffffff"),
		Walk:     lipgloss.Color("#cccccc"),
		Expected: lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Playing:  lipgloss.Color("#00ff00"),
		Paused:   lipgloss.Color("#ffaa00"),
		Error:    lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{ThemeDefault, ThemeRetroGreen, ThemeMinimal}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDefault
}

// NextTheme cycles through Themes.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeDefault
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

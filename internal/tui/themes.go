package tui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/asciikey/internal/export"
)

// Theme defines the colours of the frame and the status bar.
type Theme struct {
	Name       string
	Foreground lipgloss.Color
	Background lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

var (
	ThemeRetro = Theme{
		Name:       "retro",
		Foreground: lipgloss.Color("#32cd32"), // lime
		Background: lipgloss.Color("#000000"),
		Accent:     lipgloss.Color("#88ff88"),
		Muted:      lipgloss.Color("#005500"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Foreground: lipgloss.Color("#00a8cc"),
		Background: lipgloss.Color("#001a33"),
		Accent:     lipgloss.Color("#ffd700"),
		Muted:      lipgloss.Color("#4488aa"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff4444"),
	}

	ThemeMono = Theme{
		Name:       "mono",
		Foreground: lipgloss.Color("#ffffff"),
		Background: lipgloss.Color("#000000"),
		Accent:     lipgloss.Color("#cccccc"),
		Muted:      lipgloss.Color("#888888"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
	}

	ThemePaper = Theme{
		Name:       "paper",
		Foreground: lipgloss.Color("#1a1a1a"),
		Background: lipgloss.Color("#f5f0e6"),
		Accent:     lipgloss.Color("#0088ff"),
		Muted:      lipgloss.Color("#8b8b8b"),
		Warning:    lipgloss.Color("#cc7700"),
		Error:      lipgloss.Color("#cc0000"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Foreground: lipgloss.Color("#ff6b6b"),
		Background: lipgloss.Color("#2d1b2e"),
		Accent:     lipgloss.Color("#feca57"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Warning:    lipgloss.Color("#ffc048"),
		Error:      lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{ThemeRetro, ThemeOcean, ThemeMono, ThemePaper, ThemeSunset}
)

// GetTheme returns a theme by name, falling back to retro.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeRetro
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// next returns the theme after t in Themes.
func (t Theme) next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeRetro
}

// Palette converts the frame colours for image export.
func (t Theme) Palette() export.Palette {
	return export.Palette{Foreground: rgba(t.Foreground), Background: rgba(t.Background)}
}

func rgba(c lipgloss.Color) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(string(c), "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

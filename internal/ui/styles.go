// Package ui holds the outer browser's chrome: styling, column layout,
// and the status line. None of it touches the embedded terminal emulator
// directly — it only lays out rectangles and renders text around the
// popup's own output.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette is the color set for one theme.
type Palette struct {
	Fg       lipgloss.Color
	Muted    lipgloss.Color
	Accent   lipgloss.Color
	Border   lipgloss.Color
	Selected lipgloss.Color
	Bg       lipgloss.Color
}

var darkPalette = Palette{
	Fg:       lipgloss.Color("253"),
	Muted:    lipgloss.Color("243"),
	Accent:   lipgloss.Color("212"),
	Border:   lipgloss.Color("240"),
	Selected: lipgloss.Color("57"),
	Bg:       lipgloss.Color("235"),
}

var lightPalette = Palette{
	Fg:       lipgloss.Color("235"),
	Muted:    lipgloss.Color("245"),
	Accent:   lipgloss.Color("90"),
	Border:   lipgloss.Color("252"),
	Selected: lipgloss.Color("225"),
	Bg:       lipgloss.Color("255"),
}

// PaletteFor resolves a theme name to a Palette, defaulting to dark.
func PaletteFor(theme string) Palette {
	if theme == "light" {
		return lightPalette
	}
	return darkPalette
}

// Styles bundles the lipgloss.Style values derived from a Palette.
type Styles struct {
	Column       lipgloss.Style
	ColumnTitle  lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemGroup    lipgloss.Style
	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style
	PopupBorder  lipgloss.Style
	PopupTitle   lipgloss.Style
}

// BuildStyles derives a Styles bundle from a Palette.
func BuildStyles(p Palette) Styles {
	return Styles{
		Column: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			Foreground(p.Fg),
		ColumnTitle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		Item: lipgloss.NewStyle().
			Foreground(p.Fg),
		ItemSelected: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.Selected).
			Bold(true),
		ItemGroup: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Fg).
			Background(p.Border),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
		PopupBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent),
		PopupTitle: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),
	}
}

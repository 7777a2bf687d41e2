package palette

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme maps palette entries to concrete display colours. Sinks render
// through a Theme so the fixed enum can be re-skinned from configuration
// without touching the generator.
type Theme struct {
	colors [len(hexTable)]color.RGBA
}

// DefaultTheme returns the theme built from the fixed RGB constants.
func DefaultTheme() Theme {
	var t Theme
	for _, c := range All() {
		t.colors[c] = c.RGBA()
	}
	return t
}

// ThemeFromHex builds a theme from "#RRGGBB" overrides keyed by colour name.
// Colours missing from the map keep their default value.
func ThemeFromHex(overrides map[string]string) (Theme, error) {
	t := DefaultTheme()
	for name, hex := range overrides {
		if hex == "" {
			continue
		}
		c, err := Parse(name)
		if err != nil {
			return Theme{}, err
		}
		parsed, err := colorful.Hex(hex)
		if err != nil {
			return Theme{}, fmt.Errorf("palette %s: invalid hex color %q: %w", name, hex, err)
		}
		r, g, b := parsed.RGB255()
		t.colors[c] = color.RGBA{R: r, G: g, B: b, A: 0xFF}
	}
	return t, nil
}

// RGBA returns the display colour for c.
func (t Theme) RGBA(c Color) color.RGBA {
	if int(c) >= len(t.colors) {
		return t.colors[White]
	}
	return t.colors[c]
}

// Hex returns the display colour for c formatted as "#rrggbb".
func (t Theme) Hex(c Color) string {
	rgba := t.RGBA(c)
	return colorful.Color{
		R: float64(rgba.R) / 255,
		G: float64(rgba.G) / 255,
		B: float64(rgba.B) / 255,
	}.Hex()
}

// Lipgloss returns the display colour for c as a terminal colour.
func (t Theme) Lipgloss(c Color) lipgloss.Color {
	return lipgloss.Color(t.Hex(c))
}

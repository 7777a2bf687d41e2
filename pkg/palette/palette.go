package palette

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is one of the four fixed Mondrian palette entries.
// The zero value is White, which doubles as the background colour.
type Color uint8

const (
	White Color = iota
	Blue
	Red
	Yellow
)

// Fixed RGB constants for each palette entry.
const (
	HexWhite  uint32 = 0xFFFFFF
	HexBlue   uint32 = 0x0000FF
	HexRed    uint32 = 0xFF0000
	HexYellow uint32 = 0xFFD500
)

var (
	hexTable  = [...]uint32{White: HexWhite, Blue: HexBlue, Red: HexRed, Yellow: HexYellow}
	nameTable = [...]string{White: "white", Blue: "blue", Red: "red", Yellow: "yellow"}
)

// All returns every palette colour in declaration order.
func All() []Color {
	return []Color{White, Blue, Red, Yellow}
}

// Hex returns the 24-bit RGB value of c. Unknown values map to white.
func (c Color) Hex() uint32 {
	if int(c) >= len(hexTable) {
		return HexWhite
	}
	return hexTable[c]
}

// RGBA returns c as an opaque color.RGBA.
func (c Color) RGBA() color.RGBA {
	return rgbaFromHex(c.Hex())
}

// HexString returns c formatted as "#RRGGBB".
func (c Color) HexString() string {
	return fmt.Sprintf("#%06X", c.Hex())
}

func (c Color) String() string {
	if int(c) >= len(nameTable) {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return nameTable[c]
}

// MarshalText encodes the colour by name so JSON layouts stay readable.
func (c Color) MarshalText() ([]byte, error) {
	if int(c) >= len(nameTable) {
		return nil, fmt.Errorf("unknown palette color %d", uint8(c))
	}
	return []byte(nameTable[c]), nil
}

// UnmarshalText decodes a colour name produced by MarshalText.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse looks up a palette colour by its case-insensitive name.
func Parse(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, v := range nameTable {
		if v == n {
			return Color(i), nil
		}
	}
	return White, fmt.Errorf("unknown palette color %q (must be one of: white, blue, red, yellow)", name)
}

// Random maps a uniform sample in [0,1) onto the palette with a 70/10/10/10
// weighting: the sample is scaled by 10 and truncated, 0..6 give White,
// 7 Red, 8 Blue and 9 Yellow. Anything outside that range falls back to White.
func Random(sample float64) Color {
	switch bucket := int(sample * 10); {
	case bucket >= 0 && bucket <= 6:
		return White
	case bucket == 7:
		return Red
	case bucket == 8:
		return Blue
	case bucket == 9:
		return Yellow
	default:
		return White
	}
}

func rgbaFromHex(h uint32) color.RGBA {
	return color.RGBA{R: uint8(h >> 16), G: uint8(h >> 8), B: uint8(h), A: 0xFF}
}

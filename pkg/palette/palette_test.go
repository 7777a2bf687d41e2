package palette

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomBuckets(t *testing.T) {
	tests := []struct {
		sample float64
		want   Color
	}{
		{0.0, White},
		{0.35, White},
		{0.69999, White},
		{0.7, Red},
		{0.79, Red},
		{0.8, Blue},
		{0.89, Blue},
		{0.9, Yellow},
		{0.99999, Yellow},
		{1.0, White},
		{-0.5, White},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Random(tt.sample), "Random(%v)", tt.sample)
	}
}

func TestRandomWeighting(t *testing.T) {
	const n = 200_000
	rng := rand.New(rand.NewPCG(1, 2))

	counts := map[Color]int{}
	for range n {
		counts[Random(rng.Float64())]++
	}

	const tolerance = 0.01
	assert.InDelta(t, 0.70, float64(counts[White])/n, tolerance)
	assert.InDelta(t, 0.10, float64(counts[Red])/n, tolerance)
	assert.InDelta(t, 0.10, float64(counts[Blue])/n, tolerance)
	assert.InDelta(t, 0.10, float64(counts[Yellow])/n, tolerance)
}

func TestHexConstants(t *testing.T) {
	assert.Equal(t, uint32(0xFFFFFF), White.Hex())
	assert.Equal(t, uint32(0x0000FF), Blue.Hex())
	assert.Equal(t, uint32(0xFF0000), Red.Hex())
	assert.Equal(t, uint32(0xFFD500), Yellow.Hex())
	assert.Equal(t, "#FFD500", Yellow.HexString())

	rgba := Yellow.RGBA()
	assert.Equal(t, uint8(0xFF), rgba.R)
	assert.Equal(t, uint8(0xD5), rgba.G)
	assert.Equal(t, uint8(0x00), rgba.B)
	assert.Equal(t, uint8(0xFF), rgba.A)
}

func TestZeroValueIsWhite(t *testing.T) {
	var c Color
	assert.Equal(t, White, c)
}

func TestParse(t *testing.T) {
	for _, c := range All() {
		got, err := Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := Parse("  YELLOW ")
	require.NoError(t, err)
	assert.Equal(t, Yellow, got)

	_, err = Parse("green")
	assert.Error(t, err)
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		C Color `json:"c"`
	}{Red})
	require.NoError(t, err)
	assert.JSONEq(t, `{"c":"red"}`, string(data))

	var out struct {
		C Color `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"c":"blue"}`), &out))
	assert.Equal(t, Blue, out.C)

	assert.Error(t, json.Unmarshal([]byte(`{"c":"mauve"}`), &out))
}

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()
	for _, c := range All() {
		assert.Equal(t, c.RGBA(), theme.RGBA(c), "color %s", c)
	}
	assert.Equal(t, "#ffd500", theme.Hex(Yellow))
}

func TestThemeFromHex(t *testing.T) {
	theme, err := ThemeFromHex(map[string]string{"yellow": "#f7d842", "red": ""})
	require.NoError(t, err)

	y := theme.RGBA(Yellow)
	assert.Equal(t, uint8(0xF7), y.R)
	assert.Equal(t, uint8(0xD8), y.G)
	assert.Equal(t, uint8(0x42), y.B)
	assert.Equal(t, Red.RGBA(), theme.RGBA(Red), "empty override keeps default")

	_, err = ThemeFromHex(map[string]string{"yellow": "not-a-color"})
	assert.Error(t, err)

	_, err = ThemeFromHex(map[string]string{"green": "#00FF00"})
	assert.Error(t, err)
}

package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mondrian/pkg/palette"
)

func TestBuild(t *testing.T) {
	l := Build(1000, 50, 42)
	assert.Equal(t, 1000.0, l.Size)
	assert.Equal(t, 50, l.Step)
	assert.Equal(t, uint64(42), l.Seed)
	assert.Equal(t, StrategySequential, l.Strategy)
	assert.Equal(t, Colorize(Generate(1000, 50, 42), 42), l.Rects)
	assert.InDelta(t, 1000.0*1000.0, l.TotalArea(), 1e-3)
	assert.Equal(t, Canvas(1000), l.Bounds())

	total := 0
	for _, n := range l.ColorCounts() {
		total += n
	}
	assert.Equal(t, len(l.Rects), total)
}

func TestBuildStrategy(t *testing.T) {
	l := Build(200, 20, 3, WithStrategy(StrategyExclusive))
	assert.Equal(t, StrategyExclusive, l.Strategy)
}

func TestLayoutJSON(t *testing.T) {
	l := Layout{
		Size:     100,
		Step:     10,
		Seed:     7,
		Strategy: StrategyExclusive,
		Rects: []Rect{
			{X: -25, Y: 0, W: 50, H: 100, Color: palette.Yellow},
			{X: 25, Y: 0, W: 50, H: 100},
		},
	}

	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"color":"yellow"`)
	assert.Contains(t, string(data), `"width":50`)

	var decoded Layout
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, l, decoded)
}

func TestLayoutJSONRejectsUnknownStrategy(t *testing.T) {
	var l Layout
	err := json.Unmarshal([]byte(`{"size":1,"step":1,"seed":1,"strategy":"spiral","rects":[]}`), &l)
	assert.Error(t, err)
}

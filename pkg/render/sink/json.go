package sink

import (
	"encoding/json"

	"github.com/matzehuels/mondrian/pkg/layout"
	"github.com/matzehuels/mondrian/pkg/palette"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	theme   palette.Theme
	stroke  float64
	compact bool
}

// WithJSONTheme resolves display colours through t.
func WithJSONTheme(t palette.Theme) JSONOption { return func(r *jsonRenderer) { r.theme = t } }

// WithJSONStroke records the outline width used by the other sinks, so a
// consumer can reproduce the visual.
func WithJSONStroke(w float64) JSONOption { return func(r *jsonRenderer) { r.stroke = w } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Size     float64        `json:"size"`
	Step     int            `json:"step"`
	Seed     uint64         `json:"seed"`
	Strategy string         `json:"strategy"`
	Stroke   float64        `json:"stroke_width"`
	Counts   map[string]int `json:"counts"`
	Rects    []jsonRect     `json:"rects"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color"`
	Fill   string  `json:"fill"`
}

// RenderJSON exports a frame as JSON. Rectangles keep layout coordinates
// (centre point, y up) and are listed in layout order. Every palette entry
// appears in counts, including those with zero rectangles.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{theme: palette.DefaultTheme(), stroke: DefaultStrokeWidth}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Size:     l.Size,
		Step:     l.Step,
		Seed:     l.Seed,
		Strategy: string(l.Strategy),
		Stroke:   r.stroke,
		Counts:   buildJSONCounts(l),
		Rects:    make([]jsonRect, len(l.Rects)),
	}
	for i, rect := range l.Rects {
		out.Rects[i] = jsonRect{
			X:      rect.X,
			Y:      rect.Y,
			Width:  rect.W,
			Height: rect.H,
			Color:  rect.Color.String(),
			Fill:   r.theme.Hex(rect.Color),
		}
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONCounts(l layout.Layout) map[string]int {
	counts := make(map[string]int, len(palette.All()))
	for _, c := range palette.All() {
		counts[c.String()] = 0
	}
	for c, n := range l.ColorCounts() {
		counts[c.String()] = n
	}
	return counts
}

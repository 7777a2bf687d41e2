package layout

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/mondrian/pkg/palette"
)

// Layout is one fully generated frame: the partition with its colours plus
// the parameters that produced it. Sinks render a Layout; the JSON form is
// an export of a single frame, not a cache.
type Layout struct {
	Size     float64
	Step     int
	Seed     uint64
	Strategy Strategy
	Rects    []Rect
}

// Build generates and colours a frame in one call: Generate followed by
// Colorize with the same seed and options.
func Build(size float64, step int, seed uint64, opts ...Option) Layout {
	l, _ := BuildContext(context.Background(), size, step, seed, opts...)
	return l
}

// BuildContext is Build with cancellation between partition iterations.
func BuildContext(ctx context.Context, size float64, step int, seed uint64, opts ...Option) (Layout, error) {
	cfg := newConfig(opts...)
	rects, err := PartitionContext(ctx, size, Candidates(size, step), seed, opts...)
	if err != nil {
		return Layout{}, err
	}
	return Layout{
		Size:     size,
		Step:     step,
		Seed:     seed,
		Strategy: cfg.strategy,
		Rects:    Colorize(rects, seed, opts...),
	}, nil
}

// Bounds returns the canvas rectangle of the layout.
func (l Layout) Bounds() Rect { return Canvas(l.Size) }

// ColorCounts tallies rectangles by palette colour.
func (l Layout) ColorCounts() map[palette.Color]int {
	counts := make(map[palette.Color]int, len(palette.All()))
	for _, r := range l.Rects {
		counts[r.Color]++
	}
	return counts
}

// TotalArea sums the area of every rectangle.
func (l Layout) TotalArea() float64 {
	var total float64
	for _, r := range l.Rects {
		total += r.Area()
	}
	return total
}

type layoutJSON struct {
	Size     float64    `json:"size"`
	Step     int        `json:"step"`
	Seed     uint64     `json:"seed"`
	Strategy string     `json:"strategy,omitempty"`
	Rects    []rectJSON `json:"rects"`
}

type rectJSON struct {
	X      float64       `json:"x"`
	Y      float64       `json:"y"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Color  palette.Color `json:"color"`
}

// MarshalJSON encodes the layout with lower-case field names and colour
// names instead of enum values.
func (l Layout) MarshalJSON() ([]byte, error) {
	out := layoutJSON{
		Size:     l.Size,
		Step:     l.Step,
		Seed:     l.Seed,
		Strategy: string(l.Strategy),
		Rects:    make([]rectJSON, len(l.Rects)),
	}
	for i, r := range l.Rects {
		out.Rects[i] = rectJSON{X: r.X, Y: r.Y, Width: r.W, Height: r.H, Color: r.Color}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var in layoutJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	strategy, err := ParseStrategy(in.Strategy)
	if err != nil {
		return err
	}
	rects := make([]Rect, len(in.Rects))
	for i, r := range in.Rects {
		rects[i] = Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height, Color: r.Color}
	}
	*l = Layout{Size: in.Size, Step: in.Step, Seed: in.Seed, Strategy: strategy, Rects: rects}
	return nil
}

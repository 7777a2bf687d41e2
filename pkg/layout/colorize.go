package layout

import "github.com/matzehuels/mondrian/pkg/palette"

// Colorize returns a copy of rects with a seeded subset repainted from the
// palette. A single fresh stream derived from seed is consumed in sequence
// order: one sample per rectangle decides whether it is repainted (sample
// above the colour threshold), and a repainted rectangle draws one more
// sample to pick its colour. Geometry is never changed and rects is not
// modified.
func Colorize(rects []Rect, seed uint64, opts ...Option) []Rect {
	cfg := newConfig(opts...)
	rng := newStream(seed)

	out := make([]Rect, len(rects))
	copy(out, rects)
	for i := range out {
		if rng.Float64() > cfg.colorThreshold {
			out[i].Color = palette.Random(rng.Float64())
		}
	}
	return out
}

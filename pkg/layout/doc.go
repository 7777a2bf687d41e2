// Package layout generates Mondrian-style partitions of a square canvas.
//
// # Overview
//
// A frame is built in two passes that share one 64-bit seed:
//
//  1. [Generate] (or [Partition] with explicit positions) refines a single
//     canvas-sized rectangle with axis-aligned guillotine cuts.
//  2. [Colorize] repaints a seeded subset of the resulting rectangles from
//     the [palette].
//
// [Build] runs both passes and returns a [Layout] ready for a sink:
//
//	l := layout.Build(1000, 50, 42)
//	for _, r := range l.Rects {
//	    fmt.Println(r.X, r.Y, r.W, r.H, r.Color)
//	}
//
// # Coordinates
//
// Rectangles are stored by centre, width and height. The canvas is centred
// on the origin with the y axis pointing up, so a 1000-unit canvas spans
// [-500, 500] on both axes.
//
// # Refinement
//
// [Candidates] produces evenly spaced positions from -size/2 up to size/2.
// Each position drives one iteration: the current rectangles are visited
// last to first and the position is tested against both axes of each one.
// A test draws one uniform sample; the rectangle is cut when the position
// lies strictly inside its span and the sample exceeds the split threshold
// (0.5 per axis by default).
//
// Every iteration re-derives its stream from the unchanged seed instead of
// continuing the previous one. Identical seeds and positions therefore give
// bit-identical output.
//
// # Strategies
//
// When both axes qualify in the same iteration, the [Strategy] decides what
// happens:
//
//   - [StrategySequential] (default): cut on X, then test Y on each half.
//   - [StrategyExclusive]: cut on X only; Y is used when X does not qualify.
//   - [StrategyLegacy]: each axis appends its own result. Surviving
//     rectangles are duplicated and dual cuts overlap. Kept so older seeds
//     still reproduce their pictures; output size grows exponentially.
//
// The first two always produce a true partition: rectangle areas sum to the
// canvas area and interiors never overlap.
//
// [palette]: github.com/matzehuels/mondrian/pkg/palette
package layout

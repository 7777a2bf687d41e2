package sink

import "github.com/matzehuels/mondrian/pkg/layout"

// DefaultStrokeWidth is the outline width drawn around every rectangle.
const DefaultStrokeWidth = 15.0

// box is a rectangle in output space: origin top-left, y pointing down.
type box struct {
	X, Y, W, H float64
}

// toBox maps r from the centred, y-up layout space of a size×size canvas
// into output space.
func toBox(r layout.Rect, size float64) box {
	half := size / 2
	return box{
		X: r.Left() + half,
		Y: half - r.Top(),
		W: r.W,
		H: r.H,
	}
}

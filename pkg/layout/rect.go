package layout

import "github.com/matzehuels/mondrian/pkg/palette"

// Rect is an axis-aligned rectangle positioned by its centre.
// Coordinates are canvas units with the origin at the canvas centre and the
// y axis pointing up.
type Rect struct {
	X, Y  float64
	W, H  float64
	Color palette.Color
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X - r.W/2 }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W/2 }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y - r.H/2 }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y + r.H/2 }

// Area returns W*H.
func (r Rect) Area() float64 { return r.W * r.H }

// ContainsX reports whether p lies strictly inside the horizontal span.
func (r Rect) ContainsX(p float64) bool { return p > r.Left() && p < r.Right() }

// ContainsY reports whether p lies strictly inside the vertical span.
func (r Rect) ContainsY(p float64) bool { return p > r.Bottom() && p < r.Top() }

// Overlaps reports whether the open interiors of r and o intersect.
// Rectangles that only share an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Bottom() < o.Top() && o.Bottom() < r.Top()
}

// Within reports whether r lies inside o, allowing eps of floating-point slack.
func (r Rect) Within(o Rect, eps float64) bool {
	return r.Left() >= o.Left()-eps && r.Right() <= o.Right()+eps &&
		r.Bottom() >= o.Bottom()-eps && r.Top() <= o.Top()+eps
}

// SameGeometry reports whether r and o have identical position and size,
// ignoring colour.
func (r Rect) SameGeometry(o Rect) bool {
	return r.X == o.X && r.Y == o.Y && r.W == o.W && r.H == o.H
}

// SplitX cuts r vertically at x = p into a left and a right child.
// The child widths sum to r.W and together they tile r exactly. Both
// children are White. Callers are expected to pass p strictly inside r.
func SplitX(r Rect, p float64) [2]Rect {
	left := r.Left()
	lw := p - left
	rw := r.W - lw
	return [2]Rect{
		{X: left + lw/2, Y: r.Y, W: lw, H: r.H, Color: palette.White},
		{X: p + rw/2, Y: r.Y, W: rw, H: r.H, Color: palette.White},
	}
}

// SplitY cuts r horizontally at y = p into a top and a bottom child,
// returned in that order. The child heights sum to r.H and together they
// tile r exactly. Both children are White.
func SplitY(r Rect, p float64) [2]Rect {
	top := r.Top()
	th := top - p
	bh := r.H - th
	return [2]Rect{
		{X: r.X, Y: top - th/2, W: r.W, H: th, Color: palette.White},
		{X: r.X, Y: p - bh/2, W: r.W, H: bh, Color: palette.White},
	}
}

package sink

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/matzehuels/mondrian/pkg/layout"
	"github.com/matzehuels/mondrian/pkg/palette"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions applies SVG styling options (stroke, theme) to the
// raster output so both formats look the same.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the pixels-per-unit scale factor (default 1.0, so the
// default 1000-unit canvas becomes a 1000×1000 image).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterises the layout. Each rectangle is filled and then
// outlined in black, in layout order.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("png: scale must be positive, got %g", r.scale)
	}
	style := newSVGRenderer(r.svgOpts...)

	px := int(l.Size*r.scale + 0.5)
	if px <= 0 {
		return nil, fmt.Errorf("png: canvas size %g too small at scale %g", l.Size, r.scale)
	}

	dc := gg.NewContext(px, px)
	dc.SetColor(style.theme.RGBA(palette.White))
	dc.Clear()

	// gg does not scale line widths with the transform, so geometry and
	// stroke are scaled by hand.
	dc.SetLineWidth(style.stroke * r.scale)
	for _, rect := range l.Rects {
		b := toBox(rect, l.Size)
		dc.DrawRectangle(b.X*r.scale, b.Y*r.scale, b.W*r.scale, b.H*r.scale)
		dc.SetColor(style.theme.RGBA(rect.Color))
		if style.stroke > 0 {
			dc.FillPreserve()
			dc.SetColor(color.Black)
			dc.Stroke()
			continue
		}
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}

package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/mondrian/pkg/layout"
	"github.com/matzehuels/mondrian/pkg/palette"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	stroke float64
	theme  palette.Theme
	seedID bool
}

// WithStroke sets the outline width. Zero disables outlines.
func WithStroke(w float64) SVGOption { return func(r *svgRenderer) { r.stroke = w } }

// WithTheme sets the colours used for palette entries.
func WithTheme(t palette.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithSeedComment embeds the generating parameters as an XML comment.
func WithSeedComment() SVGOption { return func(r *svgRenderer) { r.seedID = true } }

// RenderSVG draws the layout as an SVG document whose viewBox matches the
// canvas. Rectangles are emitted in layout order, so later rectangles paint
// over earlier ones where they overlap.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Size, l.Size, l.Size, l.Size)
	if r.seedID {
		fmt.Fprintf(&buf, "  <!-- mondrian seed=%d size=%g step=%d strategy=%s -->\n",
			l.Seed, l.Size, l.Step, l.Strategy)
	}
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		l.Size, l.Size, r.theme.Hex(palette.White))

	for i, rect := range l.Rects {
		renderRect(&buf, &r, i, rect, l.Size)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{stroke: DefaultStrokeWidth, theme: palette.DefaultTheme()}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderRect(buf *bytes.Buffer, r *svgRenderer, i int, rect layout.Rect, size float64) {
	b := toBox(rect, size)
	fmt.Fprintf(buf, `  <rect id="rect-%d" class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"`,
		i, rect.Color, b.X, b.Y, b.W, b.H, r.theme.Hex(rect.Color))
	if r.stroke > 0 {
		fmt.Fprintf(buf, ` stroke="#000000" stroke-width="%.1f" stroke-linejoin="miter"`, r.stroke)
	}
	buf.WriteString("/>\n")
}

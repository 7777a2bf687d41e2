// Package sink provides output format renderers for Mondrian layouts.
//
// # Overview
//
// A "sink" transforms a generated [layout.Layout] into a final output
// format. This package provides renderers for:
//
//   - SVG: Scalable vector graphics, one <rect> per partition cell
//   - PNG: Raster image drawn with fogleman/gg
//   - JSON: Frame export (parameters, rectangles, colour counts)
//   - Text: ANSI block art for terminals, used by the interactive viewer
//
// All sinks share one coordinate convention: the layout is centred on the
// origin with the y axis pointing up, and output space has its origin in
// the top-left corner with y pointing down.
//
// # Styling
//
// Every rectangle is filled with its palette colour and outlined in black.
// The outline width defaults to [DefaultStrokeWidth]; the palette colours
// come from a [palette.Theme], defaulting to [palette.DefaultTheme].
//
//	svg := sink.RenderSVG(l, sink.WithStroke(10))
//	png, err := sink.RenderPNG(l, sink.WithScale(2), sink.WithPNGSVGOptions(sink.WithTheme(theme)))
//
// # JSON Output
//
// [RenderJSON] exports a single frame. It records everything needed to
// regenerate the frame from scratch (size, step, seed, strategy) alongside
// the resolved rectangles and their display colours.
//
// [layout.Layout]: github.com/matzehuels/mondrian/pkg/layout.Layout
// [palette.Theme]: github.com/matzehuels/mondrian/pkg/palette.Theme
// [palette.DefaultTheme]: github.com/matzehuels/mondrian/pkg/palette.DefaultTheme
package sink

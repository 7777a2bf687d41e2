package pipeline

import (
	"fmt"

	errs "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/layout"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(l layout.Layout, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l, buildJSONOptions(opts)...)
		default:
			return nil, errs.New(errs.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG styling options shared by the SVG and PNG sinks.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithSeedComment()}
	if opts.StrokeWidth != nil {
		svgOpts = append(svgOpts, sink.WithStroke(*opts.StrokeWidth))
	}
	if opts.Theme != nil {
		svgOpts = append(svgOpts, sink.WithTheme(*opts.Theme))
	}
	return svgOpts
}

func buildJSONOptions(opts Options) []sink.JSONOption {
	var jsonOpts []sink.JSONOption
	if opts.StrokeWidth != nil {
		jsonOpts = append(jsonOpts, sink.WithJSONStroke(*opts.StrokeWidth))
	}
	if opts.Theme != nil {
		jsonOpts = append(jsonOpts, sink.WithJSONTheme(*opts.Theme))
	}
	return jsonOpts
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mondrian/pkg/layout"
	"github.com/matzehuels/mondrian/pkg/observability"
)

// Runner encapsulates pipeline execution with logging and observability
// hooks. The CLI, the viewer, and the server all use it.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results or seeds. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, err := r.GenerateLayout(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.RectCount = len(l.Rects)
	result.Stats.ColorCounts = l.ColorCounts()

	r.Logger.Info("generated layout",
		"seed", l.Seed,
		"rects", len(l.Rects),
		"strategy", l.Strategy,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayout validates the layout options and generates one frame.
func (r *Runner) GenerateLayout(ctx context.Context, opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, err
	}
	if err := ctx.Err(); err != nil {
		return layout.Layout{}, err
	}
	r.applyLogger(&opts)

	if opts.ExpensiveLegacy() {
		r.Logger.Warn("legacy strategy grows exponentially with the number of candidates",
			"step", opts.Step)
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Size, opts.Step, opts.Strategy)
	start := time.Now()

	l, err := generateLayout(ctx, opts)

	hooks.OnLayoutComplete(ctx, opts.Strategy, len(l.Rects), time.Since(start), err)
	if err != nil {
		return layout.Layout{}, err
	}
	r.Logger.Debug("layout parameters",
		"size", opts.Size,
		"step", opts.Step,
		"candidates", len(layout.Candidates(opts.Size, opts.Step)))
	return l, nil
}

// Render validates the render options and produces every requested format.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := Render(l, opts)

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	for format, data := range artifacts {
		r.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))
	}
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

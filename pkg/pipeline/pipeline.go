// Package pipeline provides the generation pipeline for mondrian.
//
// This package implements the complete layout → render pipeline used by the
// CLI commands, the interactive viewer, and the HTTP server. By centralizing
// this logic, every entry point validates options the same way and produces
// byte-identical artifacts for the same seed.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Partition the canvas and recolour it from the seed
//  2. Render: Generate output in various formats (SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Nothing is cached between runs: every call recomputes the layout from the
// seed.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Seed:    42,
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.GenerateLayout(ctx, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/layout"
	"github.com/matzehuels/mondrian/pkg/palette"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Viewer, and Server
// =============================================================================

const (
	// DefaultSize is the canvas edge length.
	DefaultSize = 1000.0

	// DefaultStep is the spacing between candidate split positions.
	DefaultStep = 50

	// DefaultSeed is the seed used when the host has not chosen one.
	DefaultSeed = uint64(42)

	// DefaultStrokeWidth is the outline width drawn around every rectangle.
	DefaultStrokeWidth = sink.DefaultStrokeWidth

	// DefaultScale is the PNG pixels-per-unit factor.
	DefaultScale = 1.0

	// LegacyStepWarning is the smallest step at which the legacy strategy
	// stays tractable on the default canvas. Smaller steps grow the
	// rectangle count exponentially.
	LegacyStepWarning = 100
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for API requests.
//
// Seed is used as given: zero is a valid seed, so it is never replaced by
// DefaultSeed. Threshold and stroke fields are pointers for the same reason;
// nil selects the default.
type Options struct {
	// Layout options
	Size            float64  `json:"size,omitempty"`
	Step            int      `json:"step,omitempty"`
	Seed            uint64   `json:"seed"`
	Strategy        string   `json:"strategy,omitempty"`
	XSplitThreshold *float64 `json:"x_split_threshold,omitempty"`
	YSplitThreshold *float64 `json:"y_split_threshold,omitempty"`
	ColorThreshold  *float64 `json:"color_threshold,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	StrokeWidth *float64 `json:"stroke_width,omitempty"`
	Scale       float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Theme  *palette.Theme `json:"-"`
	Logger *log.Logger    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Float returns a pointer to v, for the optional Options fields.
func Float(v float64) *float64 { return &v }

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the generated frame.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RectCount   int
	ColorCounts map[palette.Color]int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStrategy checks that a strategy name is valid. The empty string
// selects the default strategy.
func ValidateStrategy(strategy string) error {
	if _, err := layout.ParseStrategy(strategy); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidStrategy, err, "invalid strategy")
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming whitespace,
// lowercasing, and dropping empty entries and duplicates.
func ParseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(formats, f) {
			continue
		}
		formats = append(formats, f)
	}
	return formats
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults validates all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout generation.
func (o *Options) SetLayoutDefaults() {
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.Step == 0 {
		o.Step = DefaultStep
	}
	if o.Strategy == "" {
		o.Strategy = string(layout.DefaultStrategy)
	}
	if o.XSplitThreshold == nil {
		o.XSplitThreshold = Float(layout.DefaultXSplitThreshold)
	}
	if o.YSplitThreshold == nil {
		o.YSplitThreshold = Float(layout.DefaultYSplitThreshold)
	}
	if o.ColorThreshold == nil {
		o.ColorThreshold = Float(layout.DefaultColorThreshold)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout generation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errs.ValidateCanvasSize(o.Size); err != nil {
		return err
	}
	if err := errs.ValidateStep(o.Step); err != nil {
		return err
	}
	if err := errs.ValidateCandidates(o.Size, o.Step); err != nil {
		return err
	}
	if err := ValidateStrategy(o.Strategy); err != nil {
		return err
	}
	if err := errs.ValidateThreshold("x_split_threshold", *o.XSplitThreshold); err != nil {
		return err
	}
	if err := errs.ValidateThreshold("y_split_threshold", *o.YSplitThreshold); err != nil {
		return err
	}
	return errs.ValidateThreshold("color_threshold", *o.ColorThreshold)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.StrokeWidth == nil {
		o.StrokeWidth = Float(DefaultStrokeWidth)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Theme == nil {
		theme := palette.DefaultTheme()
		o.Theme = &theme
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errs.ValidateStrokeWidth(*o.StrokeWidth); err != nil {
		return err
	}
	return errs.ValidateScale(o.Scale)
}

// LayoutOptions converts the options into generator options. Call after
// ValidateForLayout.
func (o *Options) LayoutOptions() []layout.Option {
	var opts []layout.Option
	if o.XSplitThreshold != nil && o.YSplitThreshold != nil {
		opts = append(opts, layout.WithThresholds(*o.XSplitThreshold, *o.YSplitThreshold))
	}
	if o.ColorThreshold != nil {
		opts = append(opts, layout.WithColorThreshold(*o.ColorThreshold))
	}
	if o.Strategy != "" {
		opts = append(opts, layout.WithStrategy(layout.Strategy(o.Strategy)))
	}
	return opts
}

// IsLegacy returns true if the legacy strategy is selected.
func (o *Options) IsLegacy() bool {
	return o.Strategy == string(layout.StrategyLegacy)
}

// ExpensiveLegacy reports whether the legacy strategy is combined with a
// step small enough that generation may take very long.
func (o *Options) ExpensiveLegacy() bool {
	return o.IsLegacy() && o.Step < LegacyStepWarning
}

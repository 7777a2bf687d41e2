package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/mondrian/pkg/config"
	errs "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/layout"
	"github.com/matzehuels/mondrian/pkg/observability"
	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/seed"
)

// renderFlags holds the command-line flags for the render command. Flags
// that were not set on the command line fall back to the configuration.
type renderFlags struct {
	seed       string
	randomSeed bool
	size       float64
	step       int
	strategy   string
	formats    string
	output     string
	stroke     float64
	scale      float64
}

func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a composition to SVG, PNG or JSON",
		Long: `Render generates one composition and writes it to disk.

Without --output, files are named <prefix>_seed_<seed>.<format> inside the
configured snapshot directory, so the seed needed to regenerate a picture is
always part of its name.

Some seeds never split the canvas and render a single white square. The
default seed 42 is one of them; try --random-seed or another --seed.

--size divided by --step may not exceed 400 split positions.`,
		Example: `  mondrian render
  mondrian render --seed 1234 -f svg,png
  mondrian render --random-seed --strategy exclusive -o out.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, flags, cmd.Flags())
		},
	}

	cmd.Flags().StringVar(&flags.seed, "seed", fmt.Sprint(seed.Default), "seed for the partition and colours")
	cmd.Flags().BoolVar(&flags.randomSeed, "random-seed", false, "draw a fresh random seed")
	cmd.Flags().Float64Var(&flags.size, "size", pipeline.DefaultSize, "canvas side length in pixels")
	cmd.Flags().IntVar(&flags.step, "step", pipeline.DefaultStep, "spacing between candidate split positions")
	cmd.Flags().StringVar(&flags.strategy, "strategy", "", "dual-split strategy: sequential (default), exclusive, legacy")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, json (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	cmd.Flags().Float64Var(&flags.stroke, "stroke", pipeline.DefaultStrokeWidth, "border width in pixels (0 disables borders)")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.MarkFlagsMutuallyExclusive("seed", "random-seed")
	_ = cmd.RegisterFlagCompletionFunc("strategy", completeStrategies)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJSON}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func completeStrategies(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, s := range layout.Strategies() {
		names = append(names, string(s))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// runRender resolves the options, runs the pipeline and writes one file per
// format.
func (c *CLI) runRender(ctx context.Context, cfg config.Config, flags renderFlags, set *pflag.FlagSet) error {
	logger := loggerFromContext(ctx)

	s, err := resolveSeed(ctx, flags)
	if err != nil {
		return err
	}
	opts := renderOptions(cfg, s, flags, set)
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.ExpensiveLegacy() {
		printWarning("legacy strategy with step %d may take a very long time", opts.Step)
	}

	var spin *Spinner
	if logger.GetLevel() > log.DebugLevel {
		spin = newSpinner(ctx, c.stderr(), fmt.Sprintf("Rendering seed %d", s))
		spin.Start()
	}
	result, err := c.newRunner().Execute(ctx, opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	paths := outputPaths(flags.output, cfg.Snapshot, s, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(paths)))

	printSuccess("Rendered seed %s", StyleNumber.Render(fmt.Sprint(s)))
	printStats(result.Stats, *opts.Theme)
	printKeyValue("strategy", opts.Strategy)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	return nil
}

// resolveSeed returns the explicit seed, or a fresh one when --random-seed
// is set.
func resolveSeed(ctx context.Context, flags renderFlags) (uint64, error) {
	if !flags.randomSeed {
		return errs.ParseSeed(flags.seed)
	}
	s, err := seed.Random()
	if err != nil {
		return 0, fmt.Errorf("draw seed: %w", err)
	}
	observability.Seed().OnReseed(ctx, "cli", s)
	loggerFromContext(ctx).Debug("drew random seed", "seed", s)
	return s, nil
}

// renderOptions layers explicitly set flags over the configuration.
func renderOptions(cfg config.Config, s uint64, flags renderFlags, set *pflag.FlagSet) pipeline.Options {
	opts := cfg.Options(s)
	if set.Changed("size") {
		opts.Size = flags.size
	}
	if set.Changed("step") {
		opts.Step = flags.step
	}
	if set.Changed("strategy") {
		opts.Strategy = flags.strategy
	}
	if set.Changed("stroke") {
		opts.StrokeWidth = pipeline.Float(flags.stroke)
	}
	if set.Changed("scale") {
		opts.Scale = flags.scale
	}
	opts.Formats = pipeline.ParseFormats(flags.formats)
	return opts
}

// outputPaths maps each format to its destination file.
//
// With no output, names come from the snapshot settings. A single format
// writes to output as given. Several formats treat output as a base path,
// dropping a known format extension and appending one per format.
func outputPaths(output string, snap config.SnapshotConfig, s uint64, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	switch {
	case output == "":
		for _, f := range formats {
			paths[f] = filepath.Join(snap.Dir, seed.SnapshotName(snap.Prefix, s, f))
		}
	case len(formats) == 1:
		paths[formats[0]] = output
	default:
		base := output
		if ext := filepath.Ext(output); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			base = strings.TrimSuffix(output, ext)
		}
		for _, f := range formats {
			paths[f] = base + "." + f
		}
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

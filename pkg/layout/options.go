package layout

import (
	"fmt"
	"math/rand/v2"
)

// Defaults for the generator and colorizer.
const (
	DefaultXSplitThreshold = 0.5
	DefaultYSplitThreshold = 0.5
	DefaultColorThreshold  = 0.7
)

// streamIncrement is the fixed PCG stream selector. Only the seed varies
// between runs.
const streamIncrement = 0x6d6f6e647269616e

// Strategy selects how a rectangle that qualifies for both an X and a Y
// split in the same iteration is handled.
type Strategy string

const (
	// StrategySequential splits on X first and evaluates the Y check against
	// each resulting child. The result is always a true partition.
	StrategySequential Strategy = "sequential"

	// StrategyExclusive applies at most one split per rectangle per
	// iteration, preferring X.
	StrategyExclusive Strategy = "exclusive"

	// StrategyLegacy keeps the first-generation behaviour: both axis checks
	// append to the output independently, so a rectangle that survives both
	// checks appears twice. The rectangle count grows exponentially with the
	// number of candidate positions.
	StrategyLegacy Strategy = "legacy"
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = StrategySequential

// Strategies lists the supported strategies.
func Strategies() []Strategy {
	return []Strategy{StrategySequential, StrategyExclusive, StrategyLegacy}
}

// ParseStrategy converts a name into a Strategy. The empty string maps to
// DefaultStrategy.
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return DefaultStrategy, nil
	}
	for _, st := range Strategies() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid strategy: %q (must be one of: sequential, exclusive, legacy)", s)
}

// Option configures Partition, Generate and Colorize.
type Option func(*config)

type config struct {
	xThreshold     float64
	yThreshold     float64
	colorThreshold float64
	strategy       Strategy
}

func newConfig(opts ...Option) config {
	c := config{
		xThreshold:     DefaultXSplitThreshold,
		yThreshold:     DefaultYSplitThreshold,
		colorThreshold: DefaultColorThreshold,
		strategy:       DefaultStrategy,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithThresholds sets the X and Y split thresholds. A qualifying rectangle
// is split when its sample exceeds the threshold.
func WithThresholds(x, y float64) Option {
	return func(c *config) { c.xThreshold, c.yThreshold = x, y }
}

// WithColorThreshold sets the probability cutoff above which Colorize
// repaints a rectangle.
func WithColorThreshold(t float64) Option {
	return func(c *config) { c.colorThreshold = t }
}

// WithStrategy selects the dual-split handling. An empty strategy keeps the
// default.
func WithStrategy(s Strategy) Option {
	return func(c *config) {
		if s != "" {
			c.strategy = s
		}
	}
}

// newStream returns a fresh deterministic stream for seed. Every call with
// the same seed yields the same sequence.
func newStream(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, streamIncrement))
}

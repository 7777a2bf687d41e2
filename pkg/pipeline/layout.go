package pipeline

import (
	"context"

	"github.com/matzehuels/mondrian/pkg/layout"
)

// GenerateLayout builds one frame from validated options: the partition
// from Generate followed by Colorize with the same seed.
func GenerateLayout(opts Options) layout.Layout {
	return layout.Build(opts.Size, opts.Step, opts.Seed, opts.LayoutOptions()...)
}

// generateLayout is GenerateLayout that stops between partition iterations
// once ctx is done.
func generateLayout(ctx context.Context, opts Options) (layout.Layout, error) {
	return layout.BuildContext(ctx, opts.Size, opts.Step, opts.Seed, opts.LayoutOptions()...)
}

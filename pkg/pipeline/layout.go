package pipeline

import (
	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/core/layout/grid"
	"github.com/matzehuels/skyline/pkg/core/layout/lattice"
	"github.com/matzehuels/skyline/pkg/core/layout/stack"
	"github.com/matzehuels/skyline/pkg/errors"
)

// GenerateLayout runs the variant named by opts. Options must already be
// validated; the layouts themselves never fail.
func GenerateLayout(opts Options) (layout.Result, error) {
	switch opts.Variant {
	case VariantGrid:
		return grid.Generate(*opts.Grid, opts.Face(), opts.Seed), nil
	case VariantLattice:
		return lattice.Generate(*opts.Lattice, opts.Face(), opts.Seed), nil
	case VariantStack:
		return stack.Generate(*opts.Stack, opts.Length, geom.Vec2{opts.Width, opts.Height}, opts.Seed), nil
	}
	return layout.Result{}, errors.New(errors.ErrCodeInvalidVariant, "unknown variant %q", opts.Variant)
}

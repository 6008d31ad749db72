// Package layout defines the shared vocabulary of the procedural layout
// engine: placed elements, layout results, size ranges and alignment
// policies.
//
// # Overview
//
// Three layout variants live in sub-packages and all produce a [Result]:
//
//   - [grid]: packs 2-D openings into rows across a face
//   - [lattice]: packs horizontal and vertical members across a face, with an
//     optional border frame
//   - [stack]: packs segments along a single axis
//
// Every variant is a pure function of (config, extent, seed). Identical
// inputs give bit-identical results, and degenerate inputs give empty or
// partial results rather than errors.
//
// # Coordinates
//
// Element positions are element centers. Face layouts use face-local (U, V,
// N) coordinates with the origin at the center of the face surface and N
// pointing outward; the stack layout measures along the parent's Z axis from
// its base.
//
// [grid]: github.com/matzehuels/skyline/pkg/core/layout/grid
// [lattice]: github.com/matzehuels/skyline/pkg/core/layout/lattice
// [stack]: github.com/matzehuels/skyline/pkg/core/layout/stack
package layout

// Hard ceilings on generated counts. Explicit caps in configs are clamped
// to these.
const (
	MaxRows           = 500
	MaxRowElements    = 500
	MaxSegments       = 500
	MaxLatticeMembers = 100
)

// Epsilon absorbs floating point drift when comparing accumulated extents
// against a budget.
const Epsilon = 1e-9

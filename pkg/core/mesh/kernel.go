// Package mesh defines the geometry kernel the layout engine composes
// into, together with a reference implementation.
//
// The layout packages only compute where sub-elements go. Turning them into
// geometry is the job of a [Kernel]: it makes oriented boxes, extrudes,
// combines meshes with boolean operations and assigns materials and UV
// projections. Any CAD or mesh library can sit behind the interface.
//
// [BoxKernel] is a dependency-free kernel that keeps every mesh as a list
// of oriented boxes plus the boolean tools applied to them. It is exact for
// bounds, materials and UV bookkeeping, which is all the CLI, the API and
// the tests need.
package mesh

import (
	"fmt"

	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/uv"
)

// Raw material ids assigned to a fresh box before remapping. They are
// negative so they never collide with allocated ids.
const (
	RawSides = -1
	RawCaps  = -2
)

// Origin selects where a box's frame origin sits.
type Origin int

const (
	// OriginCenter puts the frame origin at the box center.
	OriginCenter Origin = iota
	// OriginBase puts the frame origin at the center of the box's -N face.
	OriginBase
)

// BooleanOp is a boolean combination.
type BooleanOp int

const (
	Union BooleanOp = iota
	Subtract
	Intersect
)

func (op BooleanOp) String() string {
	switch op {
	case Union:
		return "union"
	case Subtract:
		return "subtract"
	case Intersect:
		return "intersect"
	}
	return fmt.Sprintf("BooleanOp(%d)", int(op))
}

// BooleanOptions tunes boolean operations.
type BooleanOptions struct {
	FillHoles bool `json:"fill_holes"`
	Simplify  bool `json:"simplify"`
}

// DefaultBooleanOptions fills holes and simplifies coplanar faces.
func DefaultBooleanOptions() BooleanOptions {
	return BooleanOptions{FillHoles: true, Simplify: true}
}

// Mesh is a kernel-owned geometry handle.
type Mesh interface {
	BoundingBox() geom.Box
}

// Kernel builds and combines meshes. Implementations must treat meshes as
// immutable values: every operation returns a new mesh.
type Kernel interface {
	// Box makes a box of the given size aligned with frame. Side faces get
	// RawSides and the ±N faces RawCaps.
	Box(size geom.Vec3, frame geom.Frame, origin Origin) Mesh
	Extrude(m Mesh, direction geom.Vec3, distance float64) (Mesh, error)
	Boolean(target, tool Mesh, op BooleanOp, opts BooleanOptions) (Mesh, error)
	Append(meshes ...Mesh) (Mesh, error)
	BoundingBox(m Mesh) geom.Box
	RemapMaterialID(m Mesh, from, to int) (Mesh, error)
	ProjectUV(m Mesh, materialID int, t uv.Transform) (Mesh, error)
}

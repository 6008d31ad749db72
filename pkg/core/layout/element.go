package layout

import (
	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/material"
)

// Kind identifies what a placed element represents.
type Kind string

const (
	KindOpening          Kind = "opening"
	KindRowMember        Kind = "row"
	KindColumnMember     Kind = "column"
	KindBorderHorizontal Kind = "border_horizontal"
	KindBorderVertical   Kind = "border_vertical"
	KindSegment          Kind = "segment"
)

// Element is one placed sub-element. Position is the element center and
// Size its full extent, both in the layout's local coordinates.
type Element struct {
	Kind     Kind      `json:"kind"`
	Position geom.Vec3 `json:"position"`
	Size     geom.Vec3 `json:"size"`

	// Row and Index locate the element in generation order: the row (or
	// segment) it belongs to and its index within that row.
	Row   int `json:"row"`
	Index int `json:"index"`

	// Stack-only fields.
	Offset   float64 `json:"offset,omitempty"`   // axial start of the segment slot
	Rotation float64 `json:"rotation,omitempty"` // yaw in degrees
	Floors   int     `json:"floors,omitempty"`
}

// Min returns the element's lower bound on axis.
func (e Element) Min(axis int) float64 { return e.Position[axis] - e.Size[axis]/2 }

// Max returns the element's upper bound on axis.
func (e Element) Max(axis int) float64 { return e.Position[axis] + e.Size[axis]/2 }

// Bounds returns the element's local axis-aligned box.
func (e Element) Bounds() geom.Box { return geom.CenteredBox(e.Position, e.Size) }

// Result is the output of one layout pass.
type Result struct {
	Elements []Element `json:"elements"`

	UsedWidth  float64 `json:"used_width,omitempty"`
	UsedHeight float64 `json:"used_height,omitempty"`
	UsedLength float64 `json:"used_length,omitempty"`

	Rows     int `json:"rows,omitempty"`
	Columns  int `json:"columns,omitempty"`
	Segments int `json:"segments,omitempty"`

	// Materials lists the slot requests the layout's elements need. Ids are
	// assigned later by a single composition stage.
	Materials []material.Request `json:"materials,omitempty"`
}

// Empty reports whether the result holds no elements.
func (r Result) Empty() bool { return len(r.Elements) == 0 }

// Count returns the number of elements of kind k.
func (r Result) Count(k Kind) int {
	n := 0
	for _, e := range r.Elements {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Bounds returns the union of all element bounds.
func (r Result) Bounds() geom.Box {
	b := geom.EmptyBox()
	for _, e := range r.Elements {
		b = b.Union(e.Bounds())
	}
	return b
}

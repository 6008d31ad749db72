package building

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/core/layout/grid"
	"github.com/matzehuels/skyline/pkg/core/layout/lattice"
	"github.com/matzehuels/skyline/pkg/core/layout/stack"
	"github.com/matzehuels/skyline/pkg/core/material"
	"github.com/matzehuels/skyline/pkg/core/random"
	"github.com/matzehuels/skyline/pkg/core/uv"
)

// Material groups requested by a building. Lattice members use the groups
// of the lattice package.
const (
	GroupCore     = "core"
	GroupSegments = "segments"
	GroupPanels   = "panels"
)

// Role identifies what a planned box is for.
type Role string

const (
	RoleCore    Role = "core"
	RoleSegment Role = "segment"
	RoleFloor   Role = "floor"
	RoleRoof    Role = "roof"
	RolePanel   Role = "panel"
	RoleWindow  Role = "window"
	RoleLattice Role = "lattice"
)

// Part is one planned box in world space. Frame sits at the box center.
type Part struct {
	Role  Role       `json:"role"`
	Size  geom.Vec3  `json:"size"`
	Frame geom.Frame `json:"frame"`
	// SideGroup and CapGroup are material groups; both empty for cutting
	// tools.
	SideGroup string `json:"side_group,omitempty"`
	CapGroup  string `json:"cap_group,omitempty"`
}

// Bounds returns the part's world bounding box.
func (p Part) Bounds() geom.Box { return geom.OrientedBounds(p.Frame, p.Size) }

// Panel is a side slab plus the windows cut into its outer face.
type Panel struct {
	Side    Side          `json:"side"`
	Part    Part          `json:"part"`
	Face    geom.Face     `json:"face"`
	Seed    uint64        `json:"seed"`
	Windows layout.Result `json:"windows"`
}

// WindowParts returns the window cutting boxes in world space.
func (p Panel) WindowParts() []Part {
	parts := make([]Part, 0, len(p.Windows.Elements))
	for _, e := range p.Windows.Elements {
		parts = append(parts, Part{Role: RoleWindow, Size: e.Size, Frame: p.Face.Frame.At(e.Position)})
	}
	return parts
}

// Lattice is the framing laid on one side of a segment box.
type Lattice struct {
	Side    Side          `json:"side"`
	Face    geom.Face     `json:"face"`
	Members layout.Result `json:"members"`
}

// Parts returns the lattice members in world space.
func (f Lattice) Parts() []Part {
	parts := make([]Part, 0, len(f.Members.Elements))
	for _, e := range f.Members.Elements {
		g := lattice.Group(e.Kind)
		parts = append(parts, Part{Role: RoleLattice, Size: e.Size, Frame: f.Face.Frame.At(e.Position), SideGroup: g, CapGroup: g})
	}
	return parts
}

// Segment is one stacked box with its attachments.
type Segment struct {
	Index    int        `json:"index"`
	Floors   int        `json:"floors"`
	Rotation float64    `json:"rotation"`
	Frame    geom.Frame `json:"frame"`

	Box     Part      `json:"box"`
	Floor   *Part     `json:"floor,omitempty"`
	Roof    *Part     `json:"roof,omitempty"`
	Panels  []Panel   `json:"panels,omitempty"`
	Framing []Lattice `json:"framing,omitempty"`
}

// BuildingPlan is the fully resolved layout of a building: every box,
// every cut and every material id. It is deterministic in its [Spec].
type BuildingPlan struct {
	Seed      uint64         `json:"seed"`
	Size      geom.Vec3      `json:"size"`
	Core      *Part          `json:"core,omitempty"`
	Stack     layout.Result  `json:"stack"`
	Segments  []Segment      `json:"segments"`
	Materials material.Table `json:"materials"`
	UV        uv.Options     `json:"uv"`
}

// Stats summarises a plan.
type Stats struct {
	Segments int `json:"segments"`
	Floors   int `json:"floors"`
	Panels   int `json:"panels"`
	Windows  int `json:"windows"`
	Members  int `json:"members"`
}

// Stats counts the plan's parts.
func (p *BuildingPlan) Stats() Stats {
	s := Stats{Segments: len(p.Segments)}
	for _, seg := range p.Segments {
		s.Floors += seg.Floors
		s.Panels += len(seg.Panels)
		for _, pn := range seg.Panels {
			s.Windows += len(pn.Windows.Elements)
		}
		for _, f := range seg.Framing {
			s.Members += len(f.Members.Elements)
		}
	}
	return s
}

// Bounds returns the world bounds of every solid part.
func (p *BuildingPlan) Bounds() geom.Box {
	b := geom.EmptyBox()
	if p.Core != nil {
		b = b.Union(p.Core.Bounds())
	}
	for _, seg := range p.Segments {
		for _, part := range seg.Solids() {
			b = b.Union(part.Bounds())
		}
	}
	return b
}

// Solids returns the segment's solid parts: box, floor, roof, panels and
// lattice members, in composition order.
func (s Segment) Solids() []Part {
	parts := []Part{s.Box}
	if s.Floor != nil {
		parts = append(parts, *s.Floor)
	}
	if s.Roof != nil {
		parts = append(parts, *s.Roof)
	}
	for _, pn := range s.Panels {
		parts = append(parts, pn.Part)
	}
	for _, f := range s.Framing {
		parts = append(parts, f.Parts()...)
	}
	return parts
}

// =============================================================================
// Planning
// =============================================================================

// Plan resolves spec into a [BuildingPlan]. Segments are planned
// concurrently; material ids are assigned afterwards in one sequential pass
// so the result does not depend on scheduling.
func Plan(ctx context.Context, spec Spec) (*BuildingPlan, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	cfg := spec.Stack
	cfg.Attachments = attachments(spec.Panels)
	stacked := stack.Generate(cfg, spec.Size[geom.Z], spec.Size.XY(), spec.Seed)

	plan := &BuildingPlan{
		Seed:     spec.Seed,
		Size:     spec.Size,
		Stack:    stacked,
		Segments: make([]Segment, len(stacked.Elements)),
		UV:       spec.UV,
	}
	if spec.KeepCore {
		plan.Core = &Part{
			Role:      RoleCore,
			Size:      spec.Size,
			Frame:     geom.Identity().Translate(geom.Vec3{0, 0, spec.Size[geom.Z] / 2}),
			SideGroup: GroupCore + ".sides",
			CapGroup:  GroupCore + ".caps",
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, e := range stacked.Elements {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			plan.Segments[i] = planSegment(spec, i, e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan.Materials = allocate(spec, plan)
	return plan, nil
}

// attachments reserves room below each segment for its floor slab and above
// it for the roof.
func attachments(p Panels) stack.Attachments {
	var a stack.Attachments
	if p.Floor {
		a.Base = p.Thickness
	}
	if p.Roof {
		a.Top = p.RoofStandoff + p.Thickness
	}
	return a
}

func planSegment(spec Spec, index int, e layout.Element) Segment {
	frame := geom.YawFrame(e.Position, e.Rotation)
	seg := Segment{
		Index:    index,
		Floors:   e.Floors,
		Rotation: e.Rotation,
		Frame:    frame,
		Box: Part{
			Role:      RoleSegment,
			Size:      e.Size,
			Frame:     frame,
			SideGroup: GroupSegments + ".sides",
			CapGroup:  GroupSegments + ".caps",
		},
	}

	p := spec.Panels
	h := e.Size[geom.Z]
	center, extent := slabFootprint(p, e.Size)
	if p.Floor {
		seg.Floor = slab(RoleFloor, frame, center, extent, -h/2-p.Thickness/2, p.Thickness)
	}
	if p.Roof {
		seg.Roof = slab(RoleRoof, frame, center, extent, h/2+p.RoofStandoff+p.Thickness/2, p.Thickness)
	}

	windowSeed := random.Derive(spec.Seed, uint64(index))
	for _, side := range Sides {
		if !p.Has(side) {
			continue
		}
		panel := planPanel(p, frame, e.Size, side)
		panel.Seed = windowSeed
		if !spec.Windows.Uniform {
			windowSeed++
		}
		if spec.Windows.Enabled {
			cfg := spec.Windows.Grid(e.Floors, spec.Stack.FloorHeight)
			panel.Windows = grid.Generate(cfg, panel.Face, panel.Seed)
		}
		seg.Panels = append(seg.Panels, panel)
	}

	if spec.Framing.Enabled {
		seed := spec.Framing.Seed
		if spec.Framing.UseRootSeed {
			seed = spec.Seed
		}
		for _, side := range Sides {
			face := geom.BoxFace(frame, e.Size, side.Normal())
			seg.Framing = append(seg.Framing, Lattice{
				Side:    side,
				Face:    face,
				Members: lattice.Generate(spec.Framing.Lattice, face, seed),
			})
		}
	}
	return seg
}

// slabFootprint returns the center offset and size of a floor or roof slab.
// It reaches the inner surface of each present panel and runs past absent
// ones by the overhang.
func slabFootprint(p Panels, size geom.Vec3) (geom.Vec2, geom.Vec2) {
	reach := func(s Side) float64 {
		d := size[s.Axis()] / 2
		if p.Has(s) {
			return d + p.SideStandoff
		}
		return d + p.Overhang
	}
	n, e, s, w := reach(North), reach(East), reach(South), reach(West)
	center := geom.Vec2{(n - s) / 2, (e - w) / 2}
	extent := geom.Vec2{n + s, e + w}
	return center, extent
}

func slab(role Role, frame geom.Frame, center, extent geom.Vec2, z, thickness float64) *Part {
	return &Part{
		Role:      role,
		Size:      extent.Vec3(thickness),
		Frame:     frame.At(center.Vec3(z)),
		SideGroup: GroupPanels + ".sides",
		CapGroup:  GroupPanels + ".caps",
	}
}

// planPanel places the slab standing off side. Panels facing X run past
// their neighbours' ends so the corners close; panels facing Y stop at the
// inner surface of their neighbours. A side without a neighbour gets the
// overhang instead.
func planPanel(p Panels, frame geom.Frame, size geom.Vec3, side Side) Panel {
	half := size.Scale(0.5)
	axis := side.Axis()
	edge := func(nb Side) float64 {
		if !p.Has(nb) {
			return p.Overhang
		}
		if axis == geom.X {
			return p.SideStandoff + p.Thickness
		}
		return p.SideStandoff
	}
	left, right := edge(side.Prev()), edge(side.Next())

	bottom, top := -half[geom.Z], half[geom.Z]
	if p.Floor {
		bottom -= p.Thickness
	}
	if p.Roof {
		top += p.RoofStandoff + p.Thickness
	}
	width := size[side.Tangent()] + left + right
	height := top - bottom

	n := side.Normal()
	local := geom.NewFrame(geom.Vec3{}, n, geom.UnitZ)
	local.Origin = n.Scale(half[axis] + p.SideStandoff + p.Thickness/2).
		Add(local.U().Scale((right - left) / 2)).
		Add(geom.Vec3{0, 0, (top + bottom) / 2})
	world := frame.Compose(local)

	return Panel{
		Side: side,
		Part: Part{
			Role:      RolePanel,
			Size:      geom.Vec3{width, height, p.Thickness},
			Frame:     world,
			SideGroup: GroupPanels + ".sides",
			CapGroup:  GroupPanels + ".caps",
		},
		Face: geom.Face{
			Frame:  world.At(geom.Vec3{0, 0, p.Thickness / 2}),
			Width:  width,
			Height: height,
			Depth:  p.Thickness,
		},
	}
}

// allocate is the single place material ids are assigned.
func allocate(spec Spec, plan *BuildingPlan) material.Table {
	var requests [][]material.Request
	if plan.Core != nil {
		requests = append(requests, spec.Materials.Core.Requests(GroupCore))
	}
	if len(plan.Segments) > 0 {
		requests = append(requests, spec.Materials.Segments.Requests(GroupSegments))
	}
	if hasSlabs(plan) {
		requests = append(requests, spec.Materials.Panels.Requests(GroupPanels))
	}
	if spec.Framing.Enabled && len(plan.Segments) > 0 {
		requests = append(requests, spec.Framing.Lattice.Materials.Requests())
	}
	return material.Allocate(requests...)
}

func hasSlabs(plan *BuildingPlan) bool {
	for _, seg := range plan.Segments {
		if seg.Floor != nil || seg.Roof != nil || len(seg.Panels) > 0 {
			return true
		}
	}
	return false
}

package mesh

import (
	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/uv"
	"github.com/matzehuels/skyline/pkg/errors"
)

// Part is one oriented box of a [Solid].
type Part struct {
	Size         geom.Vec3  `json:"size"`
	Frame        geom.Frame `json:"frame"`
	SideMaterial int        `json:"side_material"`
	CapMaterial  int        `json:"cap_material"`
}

// Bounds returns the part's parent-space bounding box.
func (p Part) Bounds() geom.Box {
	return geom.OrientedBounds(p.Frame, p.Size)
}

// Tool is a box applied to a solid by a boolean operation.
type Tool struct {
	Op   BooleanOp `json:"op"`
	Part Part      `json:"part"`
}

// Projection records a UV projection for one material id.
type Projection struct {
	MaterialID int          `json:"material_id"`
	Transform  uv.Transform `json:"transform"`
}

// Solid is the mesh type of [BoxKernel].
type Solid struct {
	Parts       []Part         `json:"parts"`
	Tools       []Tool         `json:"tools,omitempty"`
	Projections []Projection   `json:"projections,omitempty"`
	Options     BooleanOptions `json:"options"`
}

// BoundingBox returns the bounds of all parts. Subtracted tools never grow
// the bounds; intersections clip them.
func (s *Solid) BoundingBox() geom.Box {
	b := geom.EmptyBox()
	for _, p := range s.Parts {
		b = b.Union(p.Bounds())
	}
	for _, t := range s.Tools {
		if t.Op == Intersect {
			b = intersect(b, t.Part.Bounds())
		}
	}
	return b
}

// MaterialIDs returns the distinct material ids on the solid's parts in
// first-seen order.
func (s *Solid) MaterialIDs() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, p := range s.Parts {
		for _, id := range []int{p.SideMaterial, p.CapMaterial} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Count returns the number of tools applied with op.
func (s *Solid) Count(op BooleanOp) int {
	n := 0
	for _, t := range s.Tools {
		if t.Op == op {
			n++
		}
	}
	return n
}

func (s *Solid) clone() *Solid {
	return &Solid{
		Parts:       append([]Part(nil), s.Parts...),
		Tools:       append([]Tool(nil), s.Tools...),
		Projections: append([]Projection(nil), s.Projections...),
		Options:     s.Options,
	}
}

// BoxKernel is the reference [Kernel].
type BoxKernel struct{}

// NewBoxKernel returns a BoxKernel.
func NewBoxKernel() *BoxKernel { return &BoxKernel{} }

// Box implements [Kernel].
func (k *BoxKernel) Box(size geom.Vec3, frame geom.Frame, origin Origin) Mesh {
	if origin == OriginBase {
		frame = frame.At(geom.Vec3{0, 0, size[geom.N] / 2})
	}
	return &Solid{Parts: []Part{{
		Size:         size,
		Frame:        frame,
		SideMaterial: RawSides,
		CapMaterial:  RawCaps,
	}}}
}

// Extrude stretches every part along direction by distance. Each part grows
// on the local axis most aligned with direction.
func (k *BoxKernel) Extrude(m Mesh, direction geom.Vec3, distance float64) (Mesh, error) {
	s, err := solid(m)
	if err != nil {
		return nil, err
	}
	out := s.clone()
	d := direction.Normalize()
	for i, p := range out.Parts {
		local := p.Frame.ToLocal(p.Frame.Origin.Add(d))
		axis := dominant(local)
		p.Size[axis] += distance
		p.Frame = p.Frame.Translate(d.Scale(distance / 2))
		out.Parts[i] = p
	}
	return out, nil
}

// Boolean implements [Kernel]. Union merges the tool's parts into the
// target; subtract and intersect record each tool part.
func (k *BoxKernel) Boolean(target, tool Mesh, op BooleanOp, opts BooleanOptions) (Mesh, error) {
	t, err := solid(target)
	if err != nil {
		return nil, err
	}
	u, err := solid(tool)
	if err != nil {
		return nil, err
	}
	out := t.clone()
	out.Options = opts
	switch op {
	case Union:
		out.Parts = append(out.Parts, u.Parts...)
		out.Tools = append(out.Tools, u.Tools...)
		out.Projections = append(out.Projections, u.Projections...)
	case Subtract, Intersect:
		for _, p := range u.Parts {
			out.Tools = append(out.Tools, Tool{Op: op, Part: p})
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown boolean op %v", op)
	}
	return out, nil
}

// Append concatenates meshes without a boolean.
func (k *BoxKernel) Append(meshes ...Mesh) (Mesh, error) {
	out := &Solid{}
	for _, m := range meshes {
		s, err := solid(m)
		if err != nil {
			return nil, err
		}
		out.Parts = append(out.Parts, s.Parts...)
		out.Tools = append(out.Tools, s.Tools...)
		out.Projections = append(out.Projections, s.Projections...)
	}
	return out, nil
}

// BoundingBox implements [Kernel].
func (k *BoxKernel) BoundingBox(m Mesh) geom.Box {
	return m.BoundingBox()
}

// RemapMaterialID implements [Kernel].
func (k *BoxKernel) RemapMaterialID(m Mesh, from, to int) (Mesh, error) {
	s, err := solid(m)
	if err != nil {
		return nil, err
	}
	out := s.clone()
	for i, p := range out.Parts {
		if p.SideMaterial == from {
			p.SideMaterial = to
		}
		if p.CapMaterial == from {
			p.CapMaterial = to
		}
		out.Parts[i] = p
	}
	return out, nil
}

// ProjectUV implements [Kernel].
func (k *BoxKernel) ProjectUV(m Mesh, materialID int, t uv.Transform) (Mesh, error) {
	s, err := solid(m)
	if err != nil {
		return nil, err
	}
	out := s.clone()
	out.Projections = append(out.Projections, Projection{MaterialID: materialID, Transform: t})
	return out, nil
}

func solid(m Mesh) (*Solid, error) {
	s, ok := m.(*Solid)
	if !ok || s == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "mesh %T was not made by BoxKernel", m)
	}
	return s, nil
}

func dominant(v geom.Vec3) int {
	a := v.Abs()
	switch {
	case a[0] >= a[1] && a[0] >= a[2]:
		return geom.X
	case a[1] >= a[2]:
		return geom.Y
	default:
		return geom.Z
	}
}

func intersect(a, b geom.Box) geom.Box {
	for i := 0; i < 3; i++ {
		a.Min[i] = max(a.Min[i], b.Min[i])
		a.Max[i] = min(a.Max[i], b.Max[i])
	}
	return a
}

// Ensure BoxKernel implements Kernel.
var _ Kernel = (*BoxKernel)(nil)

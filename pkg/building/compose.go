package building

import (
	"context"

	"github.com/matzehuels/skyline/pkg/core/mesh"
	"github.com/matzehuels/skyline/pkg/core/random"
	"github.com/matzehuels/skyline/pkg/core/uv"
)

// Compose turns a plan into one mesh using k. Each solid part gets its
// allocated material ids, windows are subtracted from their panel, the
// pieces of a segment are unioned, segments (and the core, if kept) are
// appended, and finally one UV projection is applied per material id.
func Compose(ctx context.Context, k mesh.Kernel, plan *BuildingPlan, opts mesh.BooleanOptions) (mesh.Mesh, error) {
	var pieces []mesh.Mesh
	if plan.Core != nil {
		m, err := box(k, plan.Materials.ID, *plan.Core)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, m)
	}

	for _, seg := range plan.Segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err := composeSegment(k, plan, seg, opts)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, m)
	}

	result, err := k.Append(pieces...)
	if err != nil {
		return nil, err
	}
	return project(k, plan, result)
}

func composeSegment(k mesh.Kernel, plan *BuildingPlan, seg Segment, opts mesh.BooleanOptions) (mesh.Mesh, error) {
	ids := plan.Materials.ID
	m, err := box(k, ids, seg.Box)
	if err != nil {
		return nil, err
	}
	union := func(p Part) error {
		part, err := box(k, ids, p)
		if err != nil {
			return err
		}
		m, err = k.Boolean(m, part, mesh.Union, opts)
		return err
	}

	for _, slab := range []*Part{seg.Floor, seg.Roof} {
		if slab == nil {
			continue
		}
		if err := union(*slab); err != nil {
			return nil, err
		}
	}
	for _, pn := range seg.Panels {
		panel, err := box(k, ids, pn.Part)
		if err != nil {
			return nil, err
		}
		for _, w := range pn.WindowParts() {
			panel, err = k.Boolean(panel, k.Box(w.Size, w.Frame, mesh.OriginCenter), mesh.Subtract, opts)
			if err != nil {
				return nil, err
			}
		}
		if m, err = k.Boolean(m, panel, mesh.Union, opts); err != nil {
			return nil, err
		}
	}
	for _, f := range seg.Framing {
		for _, member := range f.Parts() {
			if err := union(member); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// box builds a part and replaces its raw side and cap ids.
func box(k mesh.Kernel, id func(string) int, p Part) (mesh.Mesh, error) {
	m := k.Box(p.Size, p.Frame, mesh.OriginCenter)
	m, err := k.RemapMaterialID(m, mesh.RawSides, id(p.SideGroup))
	if err != nil {
		return nil, err
	}
	return k.RemapMaterialID(m, mesh.RawCaps, id(p.CapGroup))
}

// project applies one UV transform per allocated id, resolved against the
// bounds of the whole mesh. Random origins draw from a stream derived from
// the plan seed.
func project(k mesh.Kernel, plan *BuildingPlan, m mesh.Mesh) (mesh.Mesh, error) {
	bounds := k.BoundingBox(m)
	rng := random.New(random.Derive(plan.Seed, random.OffsetUV))
	var err error
	for _, id := range plan.Materials.IDs() {
		t := uv.Resolve(bounds, plan.UV, rng)
		if m, err = k.ProjectUV(m, id, t); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Package lattice lays out framing members across a face.
//
// A lattice is two independent 1-D packings: horizontal members (rows) that
// span the full lattice width, and vertical members (columns) that span the
// full lattice height. Each packing draws a spacing and a thickness per
// member and accumulates until the next member would overflow, then the
// members are centered on the face. An optional border frame runs around
// the face edge and shrinks the area available to the members.
//
// Members stand on the face surface and extend outward along N by their
// drawn depth. Combining them into one solid is left to the mesh kernel.
package lattice

import (
	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/core/material"
	"github.com/matzehuels/skyline/pkg/core/random"
)

// Material groups requested by a lattice.
const (
	GroupRows             = "lattice.rows"
	GroupColumns          = "lattice.columns"
	GroupBorderHorizontal = "lattice.border_horizontal"
	GroupBorderVertical   = "lattice.border_vertical"
)

// Config controls a lattice pass.
type Config struct {
	HasRows    bool `json:"has_rows" toml:"has_rows"`
	HasColumns bool `json:"has_columns" toml:"has_columns"`

	// Rows and Columns cap member counts; 0 means as many as fit.
	Rows    int `json:"rows" toml:"rows"`
	Columns int `json:"columns" toml:"columns"`

	// Size holds member thickness: X for columns, Y for rows, Z for depth.
	Size         geom.Vec3 `json:"size" toml:"size"`
	SizeVariance geom.Vec3 `json:"size_variance" toml:"size_variance"`

	// Spacing holds the gap before each member: X for columns, Y for rows.
	Spacing         geom.Vec2 `json:"spacing" toml:"spacing"`
	SpacingVariance geom.Vec2 `json:"spacing_variance" toml:"spacing_variance"`

	HasBorder bool `json:"has_border" toml:"has_border"`
	// BorderSize holds X for the top and bottom thickness, Y for the left
	// and right thickness and Z for depth.
	BorderSize geom.Vec3 `json:"border_size" toml:"border_size"`

	Materials Slots `json:"materials" toml:"materials"`
}

// Slots names the material for each member group.
type Slots struct {
	All               string `json:"all,omitempty" toml:"all"`
	FramingAll        string `json:"framing_all,omitempty" toml:"framing_all"`
	FramingHorizontal string `json:"framing_horizontal,omitempty" toml:"framing_horizontal"`
	FramingVertical   string `json:"framing_vertical,omitempty" toml:"framing_vertical"`
	BorderAll         string `json:"border_all,omitempty" toml:"border_all"`
	BorderHorizontal  string `json:"border_horizontal,omitempty" toml:"border_horizontal"`
	BorderVertical    string `json:"border_vertical,omitempty" toml:"border_vertical"`
}

// DefaultConfig returns a rows-and-columns lattice without a border.
func DefaultConfig() Config {
	return Config{
		HasRows:    true,
		HasColumns: true,
		Size:       geom.Vec3{50, 100, 10},
		Spacing:    geom.Vec2{500, 450},
		BorderSize: geom.Vec3{50, 30, 10},
	}
}

// Requests resolves slot precedence into one request per group. All
// overrides everything; FramingAll and BorderAll override their
// axis-specific slots.
func (s Slots) Requests() []material.Request {
	return []material.Request{
		{Group: GroupRows, Slot: material.First(s.All, s.FramingAll, s.FramingHorizontal)},
		{Group: GroupColumns, Slot: material.First(s.All, s.FramingAll, s.FramingVertical)},
		{Group: GroupBorderHorizontal, Slot: material.First(s.All, s.BorderAll, s.BorderHorizontal)},
		{Group: GroupBorderVertical, Slot: material.First(s.All, s.BorderAll, s.BorderVertical)},
	}
}

// Group returns the material group of a lattice element kind.
func Group(k layout.Kind) string {
	switch k {
	case layout.KindRowMember:
		return GroupRows
	case layout.KindColumnMember:
		return GroupColumns
	case layout.KindBorderHorizontal:
		return GroupBorderHorizontal
	case layout.KindBorderVertical:
		return GroupBorderVertical
	}
	return ""
}

// Generate lays out cfg on face. The lattice draws from its own stream,
// derived from seed with [random.OffsetLattice].
func Generate(cfg Config, face geom.Face, seed uint64) layout.Result {
	res := layout.Result{Materials: cfg.Materials.Requests()}
	if face.Width <= 0 || face.Height <= 0 {
		return res
	}

	areaW, areaH := face.Width, face.Height
	if cfg.HasBorder {
		areaW -= 2 * cfg.BorderSize[geom.Y]
		areaH -= 2 * cfg.BorderSize[geom.X]
	}

	rng := random.New(random.Derive(seed, random.OffsetLattice))

	if cfg.HasRows && areaW > 0 && areaH > 0 {
		rows := pack(rng, axis{
			thickness: layout.VarianceRange(cfg.Size[geom.Y], cfg.SizeVariance[geom.Y], 1),
			depth:     layout.VarianceRange(cfg.Size[geom.Z], cfg.SizeVariance[geom.Z], 1),
			spacing:   layout.VarianceRange(cfg.Spacing[geom.Y], cfg.SpacingVariance[geom.Y], 1),
			limit:     capCount(cfg.Rows),
		}, areaH)
		for i, m := range rows.members {
			res.Elements = append(res.Elements, layout.Element{
				Kind:     layout.KindRowMember,
				Position: geom.Vec3{0, m.center - rows.used/2, m.depth / 2},
				Size:     geom.Vec3{areaW, m.thickness, m.depth},
				Row:      i,
			})
		}
		res.Rows = len(rows.members)
		res.UsedHeight = rows.used
	}

	if cfg.HasColumns && areaW > 0 && areaH > 0 {
		cols := pack(rng, axis{
			thickness: layout.VarianceRange(cfg.Size[geom.X], cfg.SizeVariance[geom.X], 1),
			depth:     layout.VarianceRange(cfg.Size[geom.Z], cfg.SizeVariance[geom.Z], 1),
			spacing:   layout.VarianceRange(cfg.Spacing[geom.X], cfg.SpacingVariance[geom.X], 1),
			limit:     capCount(cfg.Columns),
		}, areaW)
		for i, m := range cols.members {
			res.Elements = append(res.Elements, layout.Element{
				Kind:     layout.KindColumnMember,
				Position: geom.Vec3{m.center - cols.used/2, 0, m.depth / 2},
				Size:     geom.Vec3{m.thickness, areaH, m.depth},
				Index:    i,
			})
		}
		res.Columns = len(cols.members)
		res.UsedWidth = cols.used
	}

	if cfg.HasBorder {
		res.Elements = append(res.Elements, border(cfg.BorderSize, face.Width, face.Height)...)
	}
	return res
}

type axis struct {
	thickness, depth, spacing layout.Range
	limit                     int
}

type member struct {
	center, thickness, depth float64
}

type packing struct {
	members []member
	used    float64
}

// pack accumulates members along one axis. Each member is preceded by its
// spacing, so the first member sits one spacing in from the start and the
// packing ends flush with its last member.
func pack(rng *random.Stream, a axis, extent float64) packing {
	var p packing
	for len(p.members) < a.limit {
		thick := min(a.thickness.Draw(rng), extent)
		depth := max(a.depth.Draw(rng), 1)
		gap := min(a.spacing.Draw(rng), extent)
		if p.used+gap+thick > extent+layout.Epsilon {
			break
		}
		p.used += gap + thick
		p.members = append(p.members, member{
			center:    p.used - thick/2,
			thickness: thick,
			depth:     depth,
		})
	}
	return p
}

func capCount(n int) int {
	if n < 1 {
		return layout.MaxLatticeMembers
	}
	return min(n, layout.MaxLatticeMembers)
}

// border returns the left, right, top and bottom frame members.
func border(size geom.Vec3, w, h float64) []layout.Element {
	hThick, vThick := size[geom.X], size[geom.Y]
	depth := max(size[geom.Z], 1)
	sideH := max(h-2*hThick, 0)
	n := depth / 2
	return []layout.Element{
		{Kind: layout.KindBorderVertical, Position: geom.Vec3{-(w/2 - vThick/2), 0, n}, Size: geom.Vec3{vThick, sideH, depth}, Index: 0},
		{Kind: layout.KindBorderVertical, Position: geom.Vec3{w/2 - vThick/2, 0, n}, Size: geom.Vec3{vThick, sideH, depth}, Index: 1},
		{Kind: layout.KindBorderHorizontal, Position: geom.Vec3{0, h/2 - hThick/2, n}, Size: geom.Vec3{w, hThick, depth}, Index: 2},
		{Kind: layout.KindBorderHorizontal, Position: geom.Vec3{0, -(h/2 - hThick/2), n}, Size: geom.Vec3{w, hThick, depth}, Index: 3},
	}
}

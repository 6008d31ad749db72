package building

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/core/layout/grid"
	"github.com/matzehuels/skyline/pkg/core/layout/lattice"
	"github.com/matzehuels/skyline/pkg/core/layout/stack"
	"github.com/matzehuels/skyline/pkg/core/material"
	"github.com/matzehuels/skyline/pkg/core/uv"
	"github.com/matzehuels/skyline/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultSeed = uint64(1)
	DefaultSize = 10000.0

	DefaultPanelThickness = 60.0
	DefaultSideStandoff   = 30.0
	DefaultRoofStandoff   = 30.0
	DefaultOverhang       = 200.0

	DefaultWindowDepth    = 0.0
	DefaultEdgeTrim       = 80.0
	DefaultWindowHSpacing = 100.0
	DefaultWindowVariance = 300.0
	DefaultWindowVSpacing = 200.0

	DefaultLatticeSeed = uint64(1)
)

// =============================================================================
// Spec
// =============================================================================

// Spec describes a whole building. It is a plain value: copy it, tweak it
// and pass it to [Plan].
type Spec struct {
	Seed uint64    `json:"seed" toml:"seed"`
	Size geom.Vec3 `json:"size" toml:"size"`
	// KeepCore emits the parent volume itself alongside the stacked segments.
	KeepCore bool `json:"keep_core" toml:"keep_core"`

	Stack     stack.Config `json:"stack" toml:"stack"`
	Panels    Panels       `json:"panels" toml:"panels"`
	Windows   Windows      `json:"windows" toml:"windows"`
	Framing   Framing      `json:"framing" toml:"framing"`
	Materials Materials    `json:"materials" toml:"materials"`
	UV        uv.Options   `json:"uv" toml:"uv"`
}

// Panels configures the slabs wrapped around each segment.
type Panels struct {
	Thickness    float64 `json:"thickness" toml:"thickness"`
	SideStandoff float64 `json:"side_standoff" toml:"side_standoff"`
	RoofStandoff float64 `json:"roof_standoff" toml:"roof_standoff"`
	// Overhang is how far a panel or the roof runs past a side that has no
	// neighbouring panel.
	Overhang float64 `json:"overhang" toml:"overhang"`

	Roof  bool `json:"roof" toml:"roof"`
	Floor bool `json:"floor" toml:"floor"`

	North bool `json:"north" toml:"north"`
	East  bool `json:"east" toml:"east"`
	South bool `json:"south" toml:"south"`
	West  bool `json:"west" toml:"west"`
}

// Has reports whether side s carries a panel.
func (p Panels) Has(s Side) bool {
	switch s {
	case North:
		return p.North
	case East:
		return p.East
	case South:
		return p.South
	case West:
		return p.West
	}
	return false
}

// Windows configures the openings cut into side panels.
type Windows struct {
	Enabled bool `json:"enabled" toml:"enabled"`
	// Uniform gives every panel of a segment the same window seed.
	Uniform bool `json:"uniform" toml:"uniform"`

	Orientation layout.Orientation `json:"orientation" toml:"orientation"`
	Size        geom.Vec2          `json:"size" toml:"size"`
	// SizeVariance widens the size range to [Size, Size+SizeVariance].
	SizeVariance geom.Vec2 `json:"size_variance" toml:"size_variance"`

	// RowsMatchFloors places one row per floor and derives the vertical
	// spacing from the floor height.
	RowsMatchFloors bool    `json:"rows_match_floors" toml:"rows_match_floors"`
	Rows            int     `json:"rows" toml:"rows"`
	PerRow          int     `json:"per_row" toml:"per_row"`
	VSpacing        float64 `json:"vspacing" toml:"vspacing"`

	EdgeTrim         float64       `json:"edge_trim" toml:"edge_trim"`
	HSpacing         float64       `json:"hspacing" toml:"hspacing"`
	HSpacingVariance float64       `json:"hspacing_variance" toml:"hspacing_variance"`
	Alignment        layout.HAlign `json:"alignment" toml:"alignment"`

	Depth float64          `json:"depth" toml:"depth"`
	Mode  layout.DepthMode `json:"mode" toml:"mode"`
}

// Grid returns the grid config for a panel of a segment with the given
// floor count.
func (w Windows) Grid(floors int, floorHeight float64) grid.Config {
	cfg := grid.Config{
		Orientation:      w.Orientation,
		SizeMin:          w.Size,
		SizeMax:          w.Size.Add(w.SizeVariance),
		HSpacing:         w.HSpacing,
		HSpacingVariance: w.HSpacingVariance,
		VSpacing:         w.VSpacing,
		SafeMargin:       w.EdgeTrim,
		MaxPerRow:        w.PerRow,
		MaxRows:          w.Rows,
		Alignment:        w.Alignment,
		Depth:            w.Depth,
		DepthMode:        w.Mode,
	}
	if w.RowsMatchFloors {
		cfg.MaxRows = floors
		cfg.VSpacing = floorHeight - max(cfg.SizeMin[1], cfg.SizeMax[1])
	}
	return cfg
}

// Framing configures the lattice applied to every side of each segment.
type Framing struct {
	Enabled bool `json:"enabled" toml:"enabled"`
	// UseRootSeed draws the lattice from the building seed instead of Seed.
	UseRootSeed bool           `json:"use_root_seed" toml:"use_root_seed"`
	Seed        uint64         `json:"seed" toml:"seed"`
	Lattice     lattice.Config `json:"lattice" toml:"lattice"`
}

// BoxSlots names the materials of a box: All overrides the other two.
type BoxSlots struct {
	All       string `json:"all,omitempty" toml:"all"`
	TopBottom string `json:"top_bottom,omitempty" toml:"top_bottom"`
	Sides     string `json:"sides,omitempty" toml:"sides"`
}

// Requests returns the side and cap requests for groups prefix.sides and
// prefix.caps.
func (b BoxSlots) Requests(prefix string) []material.Request {
	return []material.Request{
		{Group: prefix + ".sides", Slot: material.First(b.All, b.Sides)},
		{Group: prefix + ".caps", Slot: material.First(b.All, b.TopBottom)},
	}
}

// Materials holds the slot names of every box family.
type Materials struct {
	Core     BoxSlots `json:"core" toml:"core"`
	Segments BoxSlots `json:"segments" toml:"segments"`
	Panels   BoxSlots `json:"panels" toml:"panels"`
}

// DefaultSpec returns a four-sided panelled tower with windows and no
// framing.
func DefaultSpec() Spec {
	return Spec{
		Seed:  DefaultSeed,
		Size:  geom.Vec3{DefaultSize, DefaultSize, DefaultSize},
		Stack: stack.DefaultConfig(),
		Panels: Panels{
			Thickness:    DefaultPanelThickness,
			SideStandoff: DefaultSideStandoff,
			RoofStandoff: DefaultRoofStandoff,
			Overhang:     DefaultOverhang,
			Roof:         true,
			Floor:        true,
			North:        true,
			East:         true,
			South:        true,
			West:         true,
		},
		Windows: Windows{
			Enabled:          true,
			Size:             geom.Vec2{300, 100},
			SizeVariance:     geom.Vec2{150, 0},
			RowsMatchFloors:  true,
			VSpacing:         DefaultWindowVSpacing,
			EdgeTrim:         DefaultEdgeTrim,
			HSpacing:         DefaultWindowHSpacing,
			HSpacingVariance: DefaultWindowVariance,
			Alignment:        layout.HAlignRandom,
			Depth:            DefaultWindowDepth,
			Mode:             layout.DepthCut,
		},
		Framing: Framing{
			Seed:    DefaultLatticeSeed,
			Lattice: lattice.DefaultConfig(),
		},
		UV: uv.DefaultOptions(),
	}
}

// Validate rejects specs no layout can be computed for.
func (s Spec) Validate() error {
	for i, name := range []string{"size.x", "size.y", "size.z"} {
		if err := errors.ValidateExtent(name, s.Size[i]); err != nil {
			return err
		}
	}
	if s.Panels.Thickness < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "panel thickness cannot be negative")
	}
	if s.Stack.FloorHeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "floor height cannot be negative")
	}
	return nil
}

// LoadSpec decodes a TOML spec on top of [DefaultSpec]. Unknown keys are
// rejected.
func LoadSpec(r io.Reader) (Spec, error) {
	spec := DefaultSpec()
	md, err := toml.NewDecoder(r).Decode(&spec)
	if err != nil {
		return Spec{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode building spec")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Spec{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in building spec: %s", strings.Join(keys, ", "))
	}
	return spec, spec.Validate()
}

// LoadSpecFile reads a TOML spec from path.
func LoadSpecFile(path string) (Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Spec{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "building spec %s", path)
		}
		return Spec{}, err
	}
	defer f.Close()
	return LoadSpec(f)
}

// EncodeSpec writes spec as TOML.
func EncodeSpec(w io.Writer, spec Spec) error {
	return toml.NewEncoder(w).Encode(spec)
}

// Package stack packs segments along a single axis.
//
// Segments are stacked from the base of the parent extent upward. Each
// segment draws a height (either directly or as a floor count times the
// floor height), an optionally varied footprint and a rotation, and is kept
// only if its full slot, attachments included, still fits in the usable
// length. The first segment that does not fit ends the stack, so partial
// stacks are normal. Finally the whole stack is aligned within the parent.
package stack

import (
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/core/random"
)

// Defaults.
const (
	DefaultFloorHeight     = 400.25
	DefaultFloors          = 4
	DefaultFloorVariance   = 1
	DefaultVerticalSpacing = 700.0
	DefaultScalePercent    = 110.0
	DefaultSpawnPercent    = 100.0
)

// Config controls a stack pass.
type Config struct {
	// Count caps the number of segments; 0 means as many as fit.
	Count int `json:"count" toml:"count"`

	FloorHeight float64 `json:"floor_height" toml:"floor_height"`
	Floors      int     `json:"floors" toml:"floors"`
	// FloorVariance enables per-segment floor counts drawn from
	// [Floors, Floors+FloorVariance]. With 0 every segment is Floors tall.
	FloorVariance int `json:"floor_variance" toml:"floor_variance"`

	VerticalSpacing float64 `json:"vertical_spacing" toml:"vertical_spacing"`

	// SpawnPercent is the share of the parent length available to the stack.
	SpawnPercent float64 `json:"spawn_percent" toml:"spawn_percent"`
	// ScalePercent sizes the base footprint relative to the parent's.
	ScalePercent float64 `json:"scale_percent" toml:"scale_percent"`
	// VaryPercent widens each footprint axis by up to this percentage.
	VaryPercent float64 `json:"vary_percent" toml:"vary_percent"`

	// Rotation is a yaw in degrees. With RandomizeIncrements it becomes the
	// step of a random multiple; a negative step turns the other way.
	Rotation            float64   `json:"rotation" toml:"rotation"`
	RandomizeIncrements bool      `json:"randomize_increments" toml:"randomize_increments"`
	RotationSet         []float64 `json:"rotation_set,omitempty" toml:"rotation_set"`

	Alignment layout.VAlign `json:"alignment" toml:"alignment"`

	Attachments Attachments `json:"attachments" toml:"attachments"`
}

// Attachments are panels that ride along with every segment and extend its
// slot: a base slab under the segment and a top slab above it.
type Attachments struct {
	Base float64 `json:"base" toml:"base"`
	Top  float64 `json:"top" toml:"top"`
}

// DefaultConfig returns the stock building stack.
func DefaultConfig() Config {
	return Config{
		FloorHeight:     DefaultFloorHeight,
		Floors:          DefaultFloors,
		FloorVariance:   DefaultFloorVariance,
		VerticalSpacing: DefaultVerticalSpacing,
		SpawnPercent:    DefaultSpawnPercent,
		ScalePercent:    DefaultScalePercent,
		Alignment:       layout.VAlignBottom,
	}
}

// Generate stacks segments along a parent of the given length and
// footprint. Element positions are segment centers with Z measured from the
// parent base; Offset is the start of the segment's slot.
func Generate(cfg Config, parentLength float64, footprint geom.Vec2, seed uint64) layout.Result {
	usable := parentLength * percent(cfg.SpawnPercent, DefaultSpawnPercent) / 100
	if usable <= 0 || cfg.FloorHeight <= 0 {
		return layout.Result{}
	}

	floors := layout.IntVarianceRange(cfg.Floors, cfg.FloorVariance, 1)
	heightUpper := cfg.FloorHeight * float64(floors.High)
	limit := maxCount(cfg.Count, usable, heightUpper)

	scale := percent(cfg.ScalePercent, DefaultScalePercent)
	base := geom.Vec2{footprint[0] * scale / 100, footprint[1] * scale / 100}
	vary := max(cfg.VaryPercent, 0)

	rng := random.New(seed)
	var res layout.Result
	offset := 0.0
	for i := 0; i < limit; i++ {
		n := floors.High
		if cfg.FloorVariance > 0 {
			n = floors.Draw(rng)
		}
		h := cfg.FloorHeight * float64(n)

		fp := base
		if vary > 0 {
			fp[0] = max(rng.Uniform(base[0], base[0]+base[0]*vary/100), 1)
			fp[1] = max(rng.Uniform(base[1], base[1]+base[1]*vary/100), 1)
		}
		rot := rotation(rng, cfg)

		boxTop := cfg.Attachments.Base + h
		extent := max(boxTop+cfg.Attachments.Top, boxTop)
		if offset+extent > usable+layout.Epsilon {
			break
		}

		res.Elements = append(res.Elements, layout.Element{
			Kind:     layout.KindSegment,
			Position: geom.Vec3{0, 0, offset + cfg.Attachments.Base + h/2},
			Size:     geom.Vec3{fp[0], fp[1], h},
			Row:      i,
			Offset:   offset,
			Rotation: rot,
			Floors:   n,
		})
		res.UsedLength = offset + extent
		offset += extent + cfg.VerticalSpacing
	}
	res.Segments = len(res.Elements)
	if res.Segments == 0 {
		return res
	}

	shift := alignment(cfg.Alignment, seed, parentLength, res.UsedLength)
	for i := range res.Elements {
		res.Elements[i].Position[geom.Z] += shift
		res.Elements[i].Offset += shift
	}
	for _, e := range res.Elements {
		res.UsedWidth = max(res.UsedWidth, e.Size[geom.X])
		res.UsedHeight = max(res.UsedHeight, e.Size[geom.Y])
	}
	return res
}

func percent(p, def float64) float64 {
	if p <= 0 {
		return def
	}
	return p
}

// maxCount returns the explicit count, or how many of the tallest segments
// fit, at least one, bounded by the ceiling.
func maxCount(explicit int, usable, heightUpper float64) int {
	if explicit > 0 {
		return min(explicit, layout.MaxSegments)
	}
	n := int(math.Floor(usable / heightUpper))
	return min(max(n, 1), layout.MaxSegments)
}

func rotation(rng *random.Stream, cfg Config) float64 {
	switch {
	case cfg.RandomizeIncrements && cfg.Rotation != 0:
		steps := max(int(360/math.Abs(cfg.Rotation)), 1)
		return float64(rng.IntRange(1, steps)) * cfg.Rotation
	case len(cfg.RotationSet) > 0:
		return cfg.RotationSet[rng.IntRange(0, len(cfg.RotationSet)-1)]
	default:
		return cfg.Rotation
	}
}

// alignment returns the shift applied to the whole stack. Random alignment
// hashes the policy name with the seed so it does not consume the stream.
func alignment(a layout.VAlign, seed uint64, parent, used float64) float64 {
	if a == layout.VAlignRandom {
		a = ResolveRandom(seed)
	}
	switch a {
	case layout.VAlignTop:
		return max(parent-used, 0)
	case layout.VAlignMiddle:
		return max((parent-used)/2, 0)
	default:
		return 0
	}
}

// ResolveRandom picks the concrete alignment used for seed under
// [layout.VAlignRandom].
func ResolveRandom(seed uint64) layout.VAlign {
	choices := [...]layout.VAlign{layout.VAlignTop, layout.VAlignMiddle, layout.VAlignBottom}
	h := xxhash.Sum64String(layout.VAlignRandom.String()) + seed
	return choices[h%uint64(len(choices))]
}

// Package uv resolves box-projection UV transforms for generated parts.
//
// A [Transform] is an origin plus a uniform scale: the world size of one UV
// tile. [Resolve] derives both from the bounds of the geometry being
// textured according to [Options].
package uv

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/random"
)

// DefaultSize is the tile size used by ScaleFixed.
const DefaultSize = 1000.0

// DefaultMinIslandTris is the smallest triangle island the projection
// keeps as its own UV island.
const DefaultMinIslandTris = 2

// ScaleMode picks the tile size.
type ScaleMode int

const (
	ScaleFixed ScaleMode = iota
	ScaleMaxExtent
	ScaleMinExtent
	ScaleMidExtent
	ScaleAvgExtent
	ScaleXExtent
	ScaleYExtent
	ScaleZExtent
)

var scaleNames = [...]string{"fixed", "max", "min", "mid", "avg", "x", "y", "z"}

func (m ScaleMode) String() string {
	if m < 0 || int(m) >= len(scaleNames) {
		return fmt.Sprintf("ScaleMode(%d)", int(m))
	}
	return scaleNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m ScaleMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ScaleMode) UnmarshalText(b []byte) error {
	i := slices.Index(scaleNames[:], strings.ToLower(string(b)))
	if i < 0 {
		return fmt.Errorf("unknown uv scale mode %q", b)
	}
	*m = ScaleMode(i)
	return nil
}

// OriginMode picks the projection origin.
type OriginMode int

const (
	OriginMin OriginMode = iota
	OriginMax
	OriginRandom
)

var originNames = [...]string{"min", "max", "random"}

func (m OriginMode) String() string {
	if m < 0 || int(m) >= len(originNames) {
		return fmt.Sprintf("OriginMode(%d)", int(m))
	}
	return originNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m OriginMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *OriginMode) UnmarshalText(b []byte) error {
	i := slices.Index(originNames[:], strings.ToLower(string(b)))
	if i < 0 {
		return fmt.Errorf("unknown uv origin mode %q", b)
	}
	*m = OriginMode(i)
	return nil
}

// Options configures projection for one material.
type Options struct {
	Scale         ScaleMode  `json:"scale" toml:"scale"`
	Size          float64    `json:"size" toml:"size"`
	Origin        OriginMode `json:"origin" toml:"origin"`
	MinIslandTris int        `json:"min_island_tris" toml:"min_island_tris"`
}

// DefaultOptions returns fixed-size tiles anchored at the minimum corner.
func DefaultOptions() Options {
	return Options{
		Scale:         ScaleFixed,
		Size:          DefaultSize,
		Origin:        OriginMin,
		MinIslandTris: DefaultMinIslandTris,
	}
}

// Transform is a resolved projection.
type Transform struct {
	Origin        geom.Vec3 `json:"origin"`
	Scale         float64   `json:"scale"`
	MinIslandTris int       `json:"min_island_tris"`
}

// Resolve computes the projection for geometry with the given bounds.
// The stream is only drawn from for OriginRandom.
func Resolve(bounds geom.Box, opts Options, rng *random.Stream) Transform {
	size := bounds.Size()
	t := Transform{
		Scale:         scale(size, opts),
		MinIslandTris: opts.MinIslandTris,
	}
	if t.MinIslandTris <= 0 {
		t.MinIslandTris = DefaultMinIslandTris
	}
	if t.Scale <= 0 {
		t.Scale = DefaultSize
	}

	switch opts.Origin {
	case OriginMax:
		t.Origin = bounds.Max
	case OriginRandom:
		for i := range t.Origin {
			t.Origin[i] = rng.Uniform(bounds.Min[i], bounds.Max[i])
		}
	default:
		t.Origin = bounds.Min
	}
	if bounds.IsEmpty() {
		t.Origin = geom.Vec3{}
	}
	return t
}

func scale(size geom.Vec3, opts Options) float64 {
	ext := []float64{size[0], size[1], size[2]}
	switch opts.Scale {
	case ScaleMaxExtent:
		return slices.Max(ext)
	case ScaleMinExtent:
		return slices.Min(ext)
	case ScaleMidExtent:
		slices.Sort(ext)
		return ext[1]
	case ScaleAvgExtent:
		return (ext[0] + ext[1] + ext[2]) / 3
	case ScaleXExtent:
		return ext[0]
	case ScaleYExtent:
		return ext[1]
	case ScaleZExtent:
		return ext[2]
	default:
		return opts.Size
	}
}

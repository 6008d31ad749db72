// Package pipeline runs layouts and buildings for the CLI and the API.
//
// It owns the defaults, option validation and caching shared by every entry
// point, so a layout computed by `skyline grid` and one requested through
// POST /v1/layouts/grid go through the same code.
//
// # Stages
//
//  1. Compute: run one layout variant on a face (or along a parent for
//     stacks), or plan a whole building from a [building.Spec].
//  2. Render: turn the result into artifacts (SVG, JSON, text preview).
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Variant: pipeline.VariantGrid,
//	    Width:   4000,
//	    Height:  3000,
//	    Seed:    7,
//	    Formats: []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
//
// Buildings go through [Runner.Build] with [BuildingOptions].
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/cache"
	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/core/layout/grid"
	"github.com/matzehuels/skyline/pkg/core/layout/lattice"
	"github.com/matzehuels/skyline/pkg/core/layout/stack"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth and DefaultHeight size the face grids and lattices are
	// laid on, and the parent footprint of a stack.
	DefaultWidth  = 2000.0
	DefaultHeight = 1500.0

	// DefaultDepth is the thickness behind a face.
	DefaultDepth = 100.0

	// DefaultLength is the parent length a stack is laid along.
	DefaultLength = 10000.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// Preview dimensions for text artifacts.
	PreviewCols = 72
	PreviewRows = 24
)

// Layout variants.
const (
	VariantGrid    = "grid"
	VariantLattice = "lattice"
	VariantStack   = "stack"
)

// Variants lists every layout variant.
var Variants = []string{VariantGrid, VariantLattice, VariantStack}

// ValidateVariant checks a variant name.
func ValidateVariant(v string) error {
	return errors.ValidateVariant(v, Variants)
}

// =============================================================================
// Options - Layout Configuration
// =============================================================================

// Options configures one layout run. It supports JSON for API requests.
type Options struct {
	Variant string `json:"variant"`
	Seed    uint64 `json:"seed,omitempty"`

	// Face extents for grid and lattice. Width and Height are also the
	// footprint handed to a stack.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Depth  float64 `json:"depth,omitempty"`
	// Length is the parent length for stacks.
	Length float64 `json:"length,omitempty"`

	// Variant configs. Only the one matching Variant is used; nil means
	// the variant's defaults.
	Grid    *grid.Config    `json:"grid,omitempty"`
	Lattice *lattice.Config `json:"lattice,omitempty"`
	Stack   *stack.Config   `json:"stack,omitempty"`

	Formats []string `json:"formats,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is set for layout runs, Plan for building runs.
	Layout layout.Result
	Plan   *building.BuildingPlan

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains execution statistics.
type Stats struct {
	Elements    int
	Building    building.Stats
	ComputeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	ComputeHit bool // layout or plan came from cache
	RenderHit  bool // every artifact came from cache
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateVariant(o.Variant); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	for _, ext := range []struct {
		name string
		v    float64
	}{{"width", o.Width}, {"height", o.Height}, {"depth", o.Depth}, {"length", o.Length}} {
		if err := errors.ValidateExtent(ext.name, ext.v); err != nil {
			return err
		}
	}
	o.SetRenderDefaults()
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults fills zero extents, the seed and the variant config.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Depth == 0 {
		o.Depth = DefaultDepth
	}
	if o.Length == 0 {
		o.Length = DefaultLength
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	switch o.Variant {
	case VariantGrid:
		if o.Grid == nil {
			cfg := grid.DefaultConfig()
			o.Grid = &cfg
		}
	case VariantLattice:
		if o.Lattice == nil {
			cfg := lattice.DefaultConfig()
			o.Lattice = &cfg
		}
	case VariantStack:
		if o.Stack == nil {
			cfg := stack.DefaultConfig()
			o.Stack = &cfg
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults defaults the output to SVG.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Face returns the face grids and lattices are laid on.
func (o *Options) Face() geom.Face {
	return geom.Face{Frame: geom.Identity(), Width: o.Width, Height: o.Height, Depth: o.Depth}
}

// Viewport returns the region artifacts are drawn in.
func (o *Options) Viewport() render.Viewport {
	if o.Variant == VariantStack {
		return render.StackViewport(o.Length, o.Width)
	}
	return render.FaceViewport(o.Face())
}

// Config returns the active variant config.
func (o *Options) Config() any {
	switch o.Variant {
	case VariantGrid:
		return o.Grid
	case VariantLattice:
		return o.Lattice
	case VariantStack:
		return o.Stack
	}
	return nil
}

// DecodeConfig reads the active variant's config from TOML, starting from
// its defaults. Unknown keys are rejected.
func (o *Options) DecodeConfig(r io.Reader) error {
	if err := ValidateVariant(o.Variant); err != nil {
		return err
	}
	o.Grid, o.Lattice, o.Stack = nil, nil, nil
	o.SetLayoutDefaults()
	md, err := toml.NewDecoder(r).Decode(o.Config())
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s config", o.Variant)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s config: %s", o.Variant, strings.Join(keys, ", "))
	}
	return nil
}

// LayoutKeyOpts returns cache key options for the layout.
func (o *Options) LayoutKeyOpts() (cache.LayoutKeyOpts, error) {
	h, err := cache.HashJSON(o.Config())
	if err != nil {
		return cache.LayoutKeyOpts{}, err
	}
	depth := o.Depth
	if o.Variant == VariantStack {
		depth = o.Length
	}
	return cache.LayoutKeyOpts{
		ConfigHash: h,
		Width:      o.Width,
		Height:     o.Height,
		Depth:      depth,
		Seed:       o.Seed,
	}, nil
}

// =============================================================================
// BuildingOptions - Building Configuration
// =============================================================================

// BuildingOptions configures one building run.
type BuildingOptions struct {
	Spec building.Spec `json:"spec"`
	// View is the side the SVG elevation is drawn from.
	View    building.Side `json:"-"`
	Formats []string      `json:"formats,omitempty"`
	Refresh bool          `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the spec and fills in defaults. It is
// idempotent.
func (o *BuildingOptions) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Spec.Validate(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.View < building.North || o.View > building.West {
		return errors.New(errors.ErrCodeInvalidInput, "invalid view side %d", int(o.View))
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

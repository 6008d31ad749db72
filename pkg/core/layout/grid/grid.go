// Package grid packs rectangular openings into rows across a face.
//
// # Algorithm
//
// [Generate] first derives the usable area (the face minus a safe margin on
// every side) and decides how many rows of the tallest allowed element fit.
// Each row is then filled left to right: a width, a height and a trailing
// spacing are drawn per element, and elements are accepted while the row's
// used width stays within the usable width. Rows are aligned horizontally
// according to [layout.HAlign] and the block of rows is centered vertically.
//
// Draws are consumed even for the element that ends a row, so the sequence
// of later rows depends only on the seed and the config.
//
// # Orientation
//
// With [layout.RowMajor] rows run along the face U axis; with
// [layout.ColumnMajor] they run along V and the element width and height
// swap axes accordingly.
package grid

import (
	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/core/random"
)

// Defaults.
const (
	DefaultHSpacing   = 100.0
	DefaultVSpacing   = 100.0
	DefaultSafeMargin = 50.0
)

// Config controls a grid pass. The zero value is usable but places nothing
// because its size range is empty; start from [DefaultConfig].
type Config struct {
	Orientation layout.Orientation `json:"orientation" toml:"orientation"`

	// SizeMin and SizeMax bound element (width, height). A zero minimum
	// component means "same as the maximum".
	SizeMin geom.Vec2 `json:"size_min" toml:"size_min"`
	SizeMax geom.Vec2 `json:"size_max" toml:"size_max"`

	// Horizontal spacing is drawn from [HSpacing, HSpacing+HSpacingVariance].
	// Negative spacings count as zero.
	HSpacing         float64 `json:"hspacing" toml:"hspacing"`
	HSpacingVariance float64 `json:"hspacing_variance" toml:"hspacing_variance"`
	VSpacing         float64 `json:"vspacing" toml:"vspacing"`

	SafeMargin float64 `json:"safe_margin" toml:"safe_margin"`

	// MaxPerRow and MaxRows cap counts; 0 means as many as fit.
	MaxPerRow int `json:"max_per_row" toml:"max_per_row"`
	MaxRows   int `json:"max_rows" toml:"max_rows"`

	Alignment layout.HAlign `json:"alignment" toml:"alignment"`

	// Depth is the element thickness along N; 0 uses the face depth.
	Depth     float64          `json:"depth" toml:"depth"`
	DepthMode layout.DepthMode `json:"depth_mode" toml:"depth_mode"`
}

// DefaultConfig returns the stock window-style grid.
func DefaultConfig() Config {
	return Config{
		Orientation: layout.RowMajor,
		SizeMin:     geom.Vec2{300, 100},
		HSpacing:    DefaultHSpacing,
		VSpacing:    DefaultVSpacing,
		SafeMargin:  DefaultSafeMargin,
		Alignment:   layout.HAlignRandom,
		DepthMode:   layout.DepthCut,
	}
}

// Generate lays out cfg on face using seed. The result is empty when the
// usable area or the size range is degenerate.
func Generate(cfg Config, face geom.Face, seed uint64) layout.Result {
	extentW, extentH := face.Width, face.Height
	if cfg.Orientation == layout.ColumnMajor {
		extentW, extentH = extentH, extentW
	}
	usableW := extentW - 2*cfg.SafeMargin
	usableH := extentH - 2*cfg.SafeMargin
	if usableW <= 0 || usableH <= 0 {
		return layout.Result{}
	}

	widths := layout.NewRange(cfg.SizeMin[0], cfg.SizeMax[0]).Cap(usableW)
	heights := layout.NewRange(cfg.SizeMin[1], cfg.SizeMax[1]).Cap(usableH)
	if !widths.Valid() || !heights.Valid() {
		return layout.Result{}
	}
	spacing := layout.VarianceRange(cfg.HSpacing, cfg.HSpacingVariance, 0)
	vsp := max(cfg.VSpacing, 0)

	rowH := heights.High
	rows := rowCount(rowH, vsp, usableH, cfg.MaxRows)
	if rows == 0 {
		return layout.Result{}
	}
	perRow := capCount(cfg.MaxPerRow, layout.MaxRowElements)

	rng := random.New(seed)
	depth, n := depthPlacement(cfg, face.Depth)

	totalH := float64(rows)*rowH + float64(rows-1)*vsp
	firstV := totalH/2 - rowH/2

	res := layout.Result{Rows: rows, UsedHeight: totalH}
	for row := 0; row < rows; row++ {
		placed := fillRow(rng, widths, heights, spacing, usableW, usableH, perRow)
		shift := alignRow(rng, cfg.Alignment, spacing.Low, placed, usableW)
		v := firstV - (rowH+vsp)*float64(row)

		for i, p := range placed.items {
			along := shift + p.along
			pos := geom.Vec3{along, v, n}
			size := geom.Vec3{p.w, p.h, depth}
			if cfg.Orientation == layout.ColumnMajor {
				pos = geom.Vec3{v, along, n}
				size = geom.Vec3{p.h, p.w, depth}
			}
			res.Elements = append(res.Elements, layout.Element{
				Kind:     layout.KindOpening,
				Position: pos,
				Size:     size,
				Row:      row,
				Index:    i,
			})
		}
		res.UsedWidth = max(res.UsedWidth, placed.used)
		res.Columns = max(res.Columns, len(placed.items))
	}
	return res
}

// rowCount returns the largest n with n*rowH + (n-1)*vspacing within usable,
// bounded by the ceiling and an explicit cap.
func rowCount(rowH, vspacing, usable float64, limit int) int {
	ceiling := capCount(limit, layout.MaxRows)
	n := 0
	for n < ceiling {
		next := float64(n+1)*rowH + float64(n)*vspacing
		if next > usable+layout.Epsilon {
			break
		}
		n++
	}
	return n
}

func capCount(explicit, ceiling int) int {
	if explicit > 0 {
		return min(explicit, ceiling)
	}
	return ceiling
}

type item struct {
	along float64 // center along the row, measured from the row start
	w, h  float64
}

type rowItems struct {
	items []item
	used  float64 // widths plus trailing spacings
}

func fillRow(rng *random.Stream, widths, heights, spacing layout.Range, usableW, usableH float64, limit int) rowItems {
	var r rowItems
	for len(r.items) < limit {
		w := min(widths.Draw(rng), usableW)
		h := min(heights.Draw(rng), usableH)
		s := min(spacing.Draw(rng), usableW)
		if r.used+w > usableW+layout.Epsilon {
			break
		}
		r.items = append(r.items, item{along: r.used + w/2, w: w, h: h})
		r.used += w + s
	}
	return r
}

// alignRow returns the offset of the row start from the face center.
// Centering treats the row as used width minus half the base spacing,
// which is exact when spacing has no variance.
func alignRow(rng *random.Stream, align layout.HAlign, baseSpacing float64, r rowItems, usableW float64) float64 {
	start := -(r.used/2 - baseSpacing/2)
	slack := (usableW - r.used) / 2
	switch align {
	case layout.HAlignLeft:
		start -= slack
	case layout.HAlignRight:
		start += slack
	case layout.HAlignRandom:
		start += rng.Uniform(-slack, slack)
	}
	return clampRow(start, r, usableW)
}

// clampRow keeps every element of the row inside the usable width.
func clampRow(start float64, r rowItems, usableW float64) float64 {
	if len(r.items) == 0 {
		return start
	}
	first, last := r.items[0], r.items[len(r.items)-1]
	left := start + first.along - first.w/2
	right := start + last.along + last.w/2
	if left < -usableW/2 {
		start += -usableW/2 - left
	} else if right > usableW/2 {
		start -= right - usableW/2
	}
	return start
}

// depthPlacement returns the element depth and its center along N relative
// to the face surface.
func depthPlacement(cfg Config, faceDepth float64) (depth, n float64) {
	switch cfg.DepthMode {
	case layout.DepthRaise:
		depth = cfg.Depth
		if depth == 0 {
			depth = faceDepth
		}
		return depth, depth/2 - 1
	default:
		depth = cfg.Depth
		if depth == 0 {
			depth = faceDepth + 1
		}
		return depth, 1 - depth/2
	}
}

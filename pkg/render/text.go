package render

import (
	"math"
	"strings"

	"github.com/matzehuels/skyline/pkg/core/layout"
)

// Preview rasterises res into a cols x rows block of text. Empty cells are
// '.', openings '#', lattice rows '=' and columns '|', borders '+' and
// segments '@'. Crossing rows and columns show as '+'.
func Preview(res layout.Result, vp Viewport, cols, rows int) string {
	size := vp.Size()
	if cols <= 0 || rows <= 0 || size[0] <= 0 || size[1] <= 0 {
		return ""
	}
	cells := make([][]byte, rows)
	for i := range cells {
		cells[i] = []byte(strings.Repeat(".", cols))
	}

	cell := func(v, lo, extent float64, n int) int {
		return min(max(int(math.Floor((v-lo)/extent*float64(n))), 0), n-1)
	}
	a, b := vp.Axes[0], vp.Axes[1]
	for _, e := range res.Elements {
		_, glyph := class(e.Kind)
		c0 := cell(e.Min(a), vp.Min[0], size[0], cols)
		c1 := cell(e.Max(a)-layout.Epsilon, vp.Min[0], size[0], cols)
		// rows count down from the top
		r0 := rows - 1 - cell(e.Max(b)-layout.Epsilon, vp.Min[1], size[1], rows)
		r1 := rows - 1 - cell(e.Min(b), vp.Min[1], size[1], rows)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				cells[r][c] = merge(cells[r][c], glyph)
			}
		}
	}

	var sb strings.Builder
	for i, line := range cells {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(line)
	}
	return sb.String()
}

func merge(have, glyph byte) byte {
	if (have == '=' && glyph == '|') || (have == '|' && glyph == '=') {
		return '+'
	}
	return glyph
}

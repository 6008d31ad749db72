package render

import (
	"bytes"
	"fmt"
	"math"
	"slices"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/core/layout/lattice"
	"github.com/matzehuels/skyline/pkg/errors"
)

const css = `
    .face { fill: #f4f1ea; stroke: #8a8a8a; }
    .segment { fill: #d9d4c7; stroke: #555; }
    .slab { fill: #b8b2a3; stroke: #555; }
    .panel { fill: #e8e4da; stroke: #666; }
    .opening, .window { fill: #5b7fa6; stroke: #2f4a66; }
    .member { fill: #8a6d4b; }
    .border { fill: #6b5438; }`

// DefaultWidth is the pixel width of rendered SVGs.
const DefaultWidth = 800

// Viewport is the region of layout space drawn, and which two element axes
// map to the horizontal and vertical drawing axes.
type Viewport struct {
	Min  geom.Vec2
	Max  geom.Vec2
	Axes [2]int
}

// FaceViewport frames a face layout, whose coordinates are centered.
func FaceViewport(face geom.Face) Viewport {
	w, h := face.Width/2, face.Height/2
	return Viewport{Min: geom.Vec2{-w, -h}, Max: geom.Vec2{w, h}, Axes: [2]int{geom.U, geom.V}}
}

// StackViewport frames a stack layout seen from the side: X across and Z up
// from the parent base.
func StackViewport(parentLength, width float64) Viewport {
	return Viewport{Min: geom.Vec2{-width / 2, 0}, Max: geom.Vec2{width / 2, parentLength}, Axes: [2]int{geom.X, geom.Z}}
}

// Size returns the viewport's extent.
func (v Viewport) Size() geom.Vec2 {
	return geom.Vec2{v.Max[0] - v.Min[0], v.Max[1] - v.Min[1]}
}

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width  int
	margin int
	title  string
}

// WithWidth sets the pixel width of the drawing area (default 800).
func WithWidth(px int) SVGOption { return func(r *svgRenderer) { r.width = px } }

// WithMargin sets the pixel margin around the drawing.
func WithMargin(px int) SVGOption { return func(r *svgRenderer) { r.margin = px } }

// WithTitle sets the SVG title element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{width: DefaultWidth, margin: 20}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 {
		r.width = DefaultWidth
	}
	return r
}

type shape struct {
	x0, y0, x1, y1 float64
	depth          float64
	class          string
}

// FaceSVG draws a layout result inside vp.
func FaceSVG(res layout.Result, vp Viewport, opts ...SVGOption) ([]byte, error) {
	shapes := make([]shape, 0, len(res.Elements))
	for _, e := range res.Elements {
		a, b := vp.Axes[0], vp.Axes[1]
		cls, _ := class(e.Kind)
		shapes = append(shapes, shape{
			x0: e.Min(a), x1: e.Max(a),
			y0: e.Min(b), y1: e.Max(b),
			class: cls,
		})
	}
	return draw(newSVGRenderer(opts...), vp, shapes)
}

// ElevationSVG draws a building seen from outside side: every solid part,
// the windows of panels on that side and the lattice framing it. Parts are
// painted back to front.
func ElevationSVG(plan *building.BuildingPlan, side building.Side, opts ...SVGOption) ([]byte, error) {
	if plan == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no building plan")
	}
	n := side.Normal()
	h := geom.UnitZ.Cross(n)

	bounds := plan.Bounds()
	if bounds.IsEmpty() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "building plan has no geometry")
	}

	var shapes []shape
	add := func(p building.Part, cls string) {
		shapes = append(shapes, project(p.Bounds(), h, n, cls))
	}
	if plan.Core != nil {
		add(*plan.Core, "segment")
	}
	for _, seg := range plan.Segments {
		add(seg.Box, "segment")
		for _, slab := range []*building.Part{seg.Floor, seg.Roof} {
			if slab != nil {
				add(*slab, "slab")
			}
		}
		for _, pn := range seg.Panels {
			add(pn.Part, "panel")
			if pn.Side != side {
				continue
			}
			for _, w := range pn.WindowParts() {
				add(w, "window")
			}
		}
		for _, f := range seg.Framing {
			if f.Side != side {
				continue
			}
			for _, m := range f.Parts() {
				cls, _ := class(kindOf(m))
				add(m, cls)
			}
		}
	}
	slices.SortStableFunc(shapes, func(a, b shape) int {
		switch {
		case a.depth < b.depth:
			return -1
		case a.depth > b.depth:
			return 1
		}
		return 0
	})

	view := project(bounds, h, n, "")
	vp := Viewport{Min: geom.Vec2{view.x0, view.y0}, Max: geom.Vec2{view.x1, view.y1}}
	r := newSVGRenderer(opts...)
	if r.title == "" {
		r.title = fmt.Sprintf("%s elevation", side)
	}
	return draw(r, vp, shapes)
}

// kindOf recovers a lattice part's element kind from its material group.
func kindOf(p building.Part) layout.Kind {
	switch p.SideGroup {
	case lattice.GroupBorderHorizontal:
		return layout.KindBorderHorizontal
	case lattice.GroupBorderVertical:
		return layout.KindBorderVertical
	}
	return layout.KindRowMember
}

// project returns the rectangle b covers on the plane spanned by h and Z,
// and its nearest extent along n.
func project(b geom.Box, h, n geom.Vec3, cls string) shape {
	s := shape{
		x0: math.Inf(1), y0: b.Min[geom.Z],
		x1: math.Inf(-1), y1: b.Max[geom.Z],
		depth: math.Inf(-1),
		class: cls,
	}
	for i := range 8 {
		c := geom.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		x := c.Dot(h)
		s.x0, s.x1 = min(s.x0, x), max(s.x1, x)
		s.depth = max(s.depth, c.Dot(n))
	}
	return s
}

func draw(r svgRenderer, vp Viewport, shapes []shape) ([]byte, error) {
	size := vp.Size()
	if size[0] <= 0 || size[1] <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidExtent, "nothing to draw in a %gx%g viewport", size[0], size[1])
	}
	scale := float64(r.width) / size[0]
	px := func(v float64) int { return int(math.Round(v * scale)) }
	height := px(size[1])

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(r.width+2*r.margin, height+2*r.margin)
	if r.title != "" {
		canvas.Title(r.title)
	}
	canvas.Style("text/css", css)
	canvas.Rect(r.margin, r.margin, r.width, height, `class="face"`)
	for _, s := range shapes {
		x := r.margin + px(s.x0-vp.Min[0])
		y := r.margin + px(vp.Max[1]-s.y1)
		canvas.Rect(x, y, max(px(s.x1-s.x0), 1), max(px(s.y1-s.y0), 1), `class="`+s.class+`"`)
	}
	canvas.End()
	return buf.Bytes(), nil
}

package grid

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/layout"
)

func face(w, h, d float64) geom.Face {
	return geom.Face{Frame: geom.Identity(), Width: w, Height: h, Depth: d}
}

func fixed(w, h, spacing, margin float64) Config {
	return Config{
		SizeMin:    geom.Vec2{w, h},
		SizeMax:    geom.Vec2{w, h},
		HSpacing:   spacing,
		VSpacing:   spacing,
		SafeMargin: margin,
		Alignment:  layout.HAlignCenter,
	}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestSingleRowFitsExactly(t *testing.T) {
	res := Generate(fixed(200, 400, 0, 0), face(1000, 500, 100), 1)

	if res.Rows != 1 {
		t.Errorf("Rows = %d, want 1", res.Rows)
	}
	if len(res.Elements) != 5 {
		t.Fatalf("elements = %d, want 5", len(res.Elements))
	}
	for i, e := range res.Elements {
		want := -400 + 200*float64(i)
		if !approx(e.Position[geom.U], want) {
			t.Errorf("element %d at u=%v, want %v", i, e.Position[geom.U], want)
		}
	}
}

func TestOversizedElementClamps(t *testing.T) {
	cfg := fixed(1000, 1000, 100, 50)
	res := Generate(cfg, face(300, 300, 100), 1)

	if res.Rows != 1 || len(res.Elements) != 1 {
		t.Fatalf("rows=%d elements=%d, want 1 and 1", res.Rows, len(res.Elements))
	}
	e := res.Elements[0]
	if !approx(e.Size[0], 200) || !approx(e.Size[1], 200) {
		t.Errorf("size = %v, want 200x200", e.Size)
	}
}

func TestHalfSpacingCentering(t *testing.T) {
	// Two 300-wide elements with spacing 100 on a 1000-wide face: used width
	// is 800 including the trailing spacing, and the half-spacing correction
	// centers the visible block exactly.
	res := Generate(fixed(300, 100, 100, 0), face(1000, 100, 10), 1)
	if len(res.Elements) != 2 {
		t.Fatalf("elements = %d, want 2", len(res.Elements))
	}
	if res.UsedWidth != 800 {
		t.Errorf("UsedWidth = %v, want 800", res.UsedWidth)
	}
	if u := res.Elements[0].Position[geom.U]; !approx(u, -200) {
		t.Errorf("first u = %v, want -200", u)
	}
	if u := res.Elements[1].Position[geom.U]; !approx(u, 200) {
		t.Errorf("second u = %v, want 200", u)
	}
}

func TestAlignment(t *testing.T) {
	tests := []struct {
		align     layout.HAlign
		firstLeft float64
	}{
		{layout.HAlignLeft, -450},
		{layout.HAlignCenter, -350},
		{layout.HAlignRight, -250},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			cfg := fixed(300, 100, 100, 0)
			cfg.Alignment = tt.align
			res := Generate(cfg, face(1000, 100, 10), 1)
			if got := res.Elements[0].Min(geom.U); !approx(got, tt.firstLeft) {
				t.Errorf("first left edge = %v, want %v", got, tt.firstLeft)
			}
		})
	}
}

func TestRandomAlignmentStability(t *testing.T) {
	cfg := fixed(300, 100, 100, 0)
	cfg.Alignment = layout.HAlignRandom
	f := face(1000, 100, 10)

	a := Generate(cfg, f, 7).Elements[0].Position[geom.U]
	b := Generate(cfg, f, 7).Elements[0].Position[geom.U]
	c := Generate(cfg, f, 8).Elements[0].Position[geom.U]
	if a != b {
		t.Errorf("same seed gave %v and %v", a, b)
	}
	if a == c {
		t.Errorf("seeds 7 and 8 gave the same offset %v", a)
	}
	// Random offsets stay within the slack.
	for seed := uint64(0); seed < 50; seed++ {
		u := Generate(cfg, f, seed).Elements[0].Position[geom.U]
		if u < -300-1e-9 || u > -100+1e-9 {
			t.Errorf("seed %d: u = %v outside slack", seed, u)
		}
	}
}

func TestRowCountAndVerticalCentering(t *testing.T) {
	cfg := fixed(100, 100, 50, 0)
	res := Generate(cfg, face(400, 500, 10), 1)
	// 3 rows: 3*100 + 2*50 = 400 <= 500; 4 rows would need 550.
	if res.Rows != 3 {
		t.Fatalf("Rows = %d, want 3", res.Rows)
	}
	want := map[int]float64{0: 150, 1: 0, 2: -150}
	for _, e := range res.Elements {
		if !approx(e.Position[geom.V], want[e.Row]) {
			t.Errorf("row %d at v=%v, want %v", e.Row, e.Position[geom.V], want[e.Row])
		}
	}
}

func TestExplicitCaps(t *testing.T) {
	cfg := fixed(100, 100, 0, 0)
	cfg.MaxRows = 2
	cfg.MaxPerRow = 3
	res := Generate(cfg, face(1000, 1000, 10), 1)
	if res.Rows != 2 || res.Columns != 3 || len(res.Elements) != 6 {
		t.Errorf("rows=%d columns=%d elements=%d, want 2, 3, 6", res.Rows, res.Columns, len(res.Elements))
	}
}

func TestCeiling(t *testing.T) {
	cfg := fixed(1, 1, 0, 0)
	res := Generate(cfg, face(600, 600, 10), 1)
	if res.Rows > layout.MaxRows || res.Columns > layout.MaxRowElements {
		t.Errorf("rows=%d columns=%d exceed ceilings", res.Rows, res.Columns)
	}
}

func TestDegenerate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		face geom.Face
	}{
		{"margin eats face", fixed(10, 10, 0, 60), face(100, 100, 10)},
		{"zero face", fixed(10, 10, 0, 0), face(0, 100, 10)},
		{"empty size range", Config{}, face(100, 100, 10)},
		{"negative size", fixed(-10, -10, 0, 0), face(100, 100, 10)},
		{"mixed-sign size", Config{SizeMin: geom.Vec2{-50, 100}, SizeMax: geom.Vec2{100, 100}}, face(1000, 500, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if res := Generate(tt.cfg, tt.face, 1); !res.Empty() {
				t.Errorf("got %d elements, want none", len(res.Elements))
			}
		})
	}
}

func TestInvertedRangeSwaps(t *testing.T) {
	a := Config{SizeMin: geom.Vec2{300, 200}, SizeMax: geom.Vec2{100, 50}, HSpacing: 10, Alignment: layout.HAlignLeft}
	b := a
	b.SizeMin, b.SizeMax = a.SizeMax, a.SizeMin
	f := face(2000, 1000, 10)
	if !reflect.DeepEqual(Generate(a, f, 3), Generate(b, f, 3)) {
		t.Error("inverted range produced a different layout")
	}
}

func TestMarginInvariant(t *testing.T) {
	cfg := Config{
		SizeMin:          geom.Vec2{80, 40},
		SizeMax:          geom.Vec2{400, 300},
		HSpacing:         20,
		HSpacingVariance: 200,
		VSpacing:         30,
		SafeMargin:       75,
		Alignment:        layout.HAlignRandom,
	}
	for _, orient := range []layout.Orientation{layout.RowMajor, layout.ColumnMajor} {
		cfg.Orientation = orient
		for seed := uint64(0); seed < 40; seed++ {
			f := face(1800, 1100, 60)
			res := Generate(cfg, f, seed)
			if res.Empty() {
				t.Fatalf("%v seed %d: empty result", orient, seed)
			}
			for _, e := range res.Elements {
				if e.Min(geom.U) < -f.Width/2+cfg.SafeMargin-1e-6 || e.Max(geom.U) > f.Width/2-cfg.SafeMargin+1e-6 {
					t.Errorf("%v seed %d: element %v escapes U margin", orient, seed, e.Position)
				}
				if e.Min(geom.V) < -f.Height/2+cfg.SafeMargin-1e-6 || e.Max(geom.V) > f.Height/2-cfg.SafeMargin+1e-6 {
					t.Errorf("%v seed %d: element %v escapes V margin", orient, seed, e.Position)
				}
			}
		}
	}
}

func TestNegativeVSpacingClamped(t *testing.T) {
	cfg := fixed(100, 100, 0, 0)
	cfg.VSpacing = -200
	f := face(1000, 1000, 10)
	res := Generate(cfg, f, 1)
	if res.Rows != 10 || len(res.Elements) != 100 {
		t.Fatalf("got %d rows, %d elements, want 10 and 100", res.Rows, len(res.Elements))
	}
	if res.UsedHeight != 1000 {
		t.Errorf("UsedHeight = %v, want 1000", res.UsedHeight)
	}
	for _, e := range res.Elements {
		if e.Min(geom.V) < -f.Height/2-1e-6 || e.Max(geom.V) > f.Height/2+1e-6 {
			t.Errorf("element %v escapes the face", e.Position)
		}
	}
}

func TestDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SizeMax = geom.Vec2{450, 300}
	cfg.HSpacingVariance = 300
	f := face(4000, 3000, 60)
	if !reflect.DeepEqual(Generate(cfg, f, 99), Generate(cfg, f, 99)) {
		t.Error("identical inputs produced different results")
	}
}

func TestColumnMajorSwapsAxes(t *testing.T) {
	cfg := fixed(200, 50, 0, 0)
	cfg.Orientation = layout.ColumnMajor
	cfg.MaxRows = 1
	res := Generate(cfg, face(100, 1000, 10), 1)
	if len(res.Elements) != 5 {
		t.Fatalf("elements = %d, want 5", len(res.Elements))
	}
	e := res.Elements[0]
	if e.Size[geom.U] != 50 || e.Size[geom.V] != 200 {
		t.Errorf("size = %v, want 50 along U and 200 along V", e.Size)
	}
}

func TestDepthPlacement(t *testing.T) {
	tests := []struct {
		name        string
		mode        layout.DepthMode
		depth       float64
		wantDepth   float64
		wantNearest float64 // outer face along N
	}{
		{"cut full depth", layout.DepthCut, 0, 61, 1},
		{"cut shallow", layout.DepthCut, 20, 20, 1},
		{"raise full depth", layout.DepthRaise, 0, 60, 59},
		{"raise shallow", layout.DepthRaise, 10, 10, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fixed(100, 100, 0, 0)
			cfg.DepthMode = tt.mode
			cfg.Depth = tt.depth
			e := Generate(cfg, face(100, 100, 60), 1).Elements[0]
			if e.Size[geom.N] != tt.wantDepth {
				t.Errorf("depth = %v, want %v", e.Size[geom.N], tt.wantDepth)
			}
			if !approx(e.Max(geom.N), tt.wantNearest) {
				t.Errorf("outer N = %v, want %v", e.Max(geom.N), tt.wantNearest)
			}
		})
	}
}

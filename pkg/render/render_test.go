package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/core/layout/stack"
	"github.com/matzehuels/skyline/pkg/errors"
)

func opening(u, v, w, h float64) layout.Element {
	return layout.Element{Kind: layout.KindOpening, Position: geom.Vec3{u, v, 0}, Size: geom.Vec3{w, h, 1}}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"all", []string{"svg", "json", "txt"}, false},
		{"unknown", []string{"svg", "png"}, true},
		{"empty", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("code = %s, want INVALID_FORMAT", errors.GetCode(err))
			}
		})
	}
}

func TestExt(t *testing.T) {
	if got := Ext(FormatSVG); got != ".svg" {
		t.Errorf("Ext(svg) = %q", got)
	}
	if got := Ext("png"); got != "" {
		t.Errorf("Ext(png) = %q, want empty", got)
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON(layout.Result{Rows: 2})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	s := string(data)
	if !strings.HasSuffix(s, "}\n") || !strings.Contains(s, "\n  \"rows\": 2") {
		t.Errorf("unexpected JSON:\n%s", s)
	}
}

func TestFaceSVG(t *testing.T) {
	face := geom.Face{Frame: geom.Identity(), Width: 1000, Height: 500}
	res := layout.Result{Elements: []layout.Element{
		opening(0, 0, 100, 100),
		opening(-300, 0, 100, 100),
		opening(300, 0, 100, 100),
	}}

	out, err := FaceSVG(res, FaceViewport(face), WithTitle("grid"))
	if err != nil {
		t.Fatalf("FaceSVG: %v", err)
	}
	s := string(out)
	if got := strings.Count(s, `class="opening"`); got != 3 {
		t.Errorf("openings = %d, want 3", got)
	}
	// 800px across 1000 units: the center opening starts 450 units in.
	if !strings.Contains(s, `x="380" y="180" width="80" height="80"`) {
		t.Errorf("center opening not placed as expected:\n%s", s)
	}
	if !strings.Contains(s, "<title>grid</title>") {
		t.Error("missing title")
	}
}

func TestFaceSVGEmptyViewport(t *testing.T) {
	_, err := FaceSVG(layout.Result{}, Viewport{})
	if !errors.Is(err, errors.ErrCodeInvalidExtent) {
		t.Errorf("err = %v, want INVALID_EXTENT", err)
	}
}

func TestStackViewport(t *testing.T) {
	vp := StackViewport(1000, 200)
	if vp.Min != (geom.Vec2{-100, 0}) || vp.Max != (geom.Vec2{100, 1000}) {
		t.Errorf("viewport = %+v", vp)
	}
	if vp.Axes != [2]int{geom.X, geom.Z} {
		t.Errorf("axes = %v", vp.Axes)
	}
}

func testPlan(t *testing.T) *building.BuildingPlan {
	t.Helper()
	spec := building.DefaultSpec()
	spec.Size = geom.Vec3{1000, 800, 10000}
	spec.Stack = stack.Config{Count: 1, FloorHeight: 100, Floors: 2, ScalePercent: 100}
	spec.Panels = building.Panels{
		Thickness: 10, SideStandoff: 5, RoofStandoff: 5, Overhang: 20,
		Roof: true, Floor: true, North: true, East: true, South: true, West: true,
	}
	spec.Windows = building.Windows{
		Enabled:         true,
		Size:            geom.Vec2{100, 50},
		RowsMatchFloors: true,
		EdgeTrim:        20,
		HSpacing:        100,
		Alignment:       layout.HAlignCenter,
	}
	p, err := building.Plan(context.Background(), spec)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	return p
}

func TestElevationSVG(t *testing.T) {
	p := testPlan(t)
	tests := []struct {
		side    building.Side
		windows int
	}{
		{building.North, 8},
		{building.East, 10},
	}
	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			out, err := ElevationSVG(p, tt.side)
			if err != nil {
				t.Fatalf("ElevationSVG: %v", err)
			}
			s := string(out)
			if got := strings.Count(s, `class="window"`); got != tt.windows {
				t.Errorf("windows = %d, want %d", got, tt.windows)
			}
			if got := strings.Count(s, `class="panel"`); got != 4 {
				t.Errorf("panels = %d, want 4", got)
			}
			if !strings.Contains(s, tt.side.String()+" elevation") {
				t.Error("missing default title")
			}
		})
	}
}

func TestElevationSVGErrors(t *testing.T) {
	if _, err := ElevationSVG(nil, building.North); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil plan: err = %v", err)
	}
	if _, err := ElevationSVG(&building.BuildingPlan{}, building.North); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty plan: err = %v", err)
	}
}

func TestPreview(t *testing.T) {
	face := geom.Face{Frame: geom.Identity(), Width: 100, Height: 100}
	vp := FaceViewport(face)

	t.Run("opening", func(t *testing.T) {
		res := layout.Result{Elements: []layout.Element{opening(0, 0, 20, 20)}}
		lines := strings.Split(Preview(res, vp, 10, 10), "\n")
		if len(lines) != 10 {
			t.Fatalf("lines = %d, want 10", len(lines))
		}
		for i, line := range lines {
			want := ".........."
			if i == 4 || i == 5 {
				want = "....##...."
			}
			if line != want {
				t.Errorf("line %d = %q, want %q", i, line, want)
			}
		}
	})

	t.Run("crossing", func(t *testing.T) {
		res := layout.Result{Elements: []layout.Element{
			{Kind: layout.KindRowMember, Position: geom.Vec3{0, 0, 0}, Size: geom.Vec3{100, 20, 1}},
			{Kind: layout.KindColumnMember, Position: geom.Vec3{0, 0, 0}, Size: geom.Vec3{20, 100, 1}},
		}}
		lines := strings.Split(Preview(res, vp, 10, 10), "\n")
		if lines[4] != "====++====" {
			t.Errorf("row line = %q", lines[4])
		}
		if lines[0] != "....||...." {
			t.Errorf("column line = %q", lines[0])
		}
	})

	t.Run("degenerate", func(t *testing.T) {
		if got := Preview(layout.Result{}, vp, 0, 10); got != "" {
			t.Errorf("Preview = %q, want empty", got)
		}
	})
}

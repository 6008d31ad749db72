package building

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/core/layout"
	"github.com/matzehuels/skyline/pkg/core/layout/stack"
	"github.com/matzehuels/skyline/pkg/core/mesh"
	"github.com/matzehuels/skyline/pkg/errors"
)

// testSpec is one 2-floor segment on a 1000x800 footprint wrapped in
// 10-unit panels.
func testSpec() Spec {
	spec := DefaultSpec()
	spec.Size = geom.Vec3{1000, 800, 10000}
	spec.Stack = stack.Config{Count: 1, FloorHeight: 100, Floors: 2, ScalePercent: 100}
	spec.Panels = Panels{
		Thickness: 10, SideStandoff: 5, RoofStandoff: 5, Overhang: 20,
		Roof: true, Floor: true, North: true, East: true, South: true, West: true,
	}
	spec.Windows = Windows{}
	return spec
}

func windowed(spec Spec) Spec {
	spec.Windows = Windows{
		Enabled:         true,
		Size:            geom.Vec2{100, 50},
		RowsMatchFloors: true,
		EdgeTrim:        20,
		HSpacing:        100,
		Alignment:       layout.HAlignCenter,
		Mode:            layout.DepthCut,
	}
	return spec
}

func mustPlan(t *testing.T, spec Spec) *BuildingPlan {
	t.Helper()
	p, err := Plan(context.Background(), spec)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	return p
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSideCycle(t *testing.T) {
	for _, s := range Sides {
		f := geom.NewFrame(geom.Vec3{}, s.Normal(), geom.UnitZ)
		if !f.U().ApproxEqual(s.Next().Normal(), 1e-12) {
			t.Errorf("%v: U = %v, want normal of %v", s, f.U(), s.Next())
		}
		if s.Next().Prev() != s {
			t.Errorf("%v: Next().Prev() = %v", s, s.Next().Prev())
		}
	}
}

func TestSegmentStacking(t *testing.T) {
	p := mustPlan(t, testSpec())
	if len(p.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(p.Segments))
	}
	seg := p.Segments[0]
	if seg.Box.Size != (geom.Vec3{1000, 800, 200}) {
		t.Errorf("box size = %v", seg.Box.Size)
	}
	if z := seg.Box.Frame.Origin[geom.Z]; !near(z, 110) {
		t.Errorf("box center z = %v, want 110 (above the floor slab)", z)
	}
	if p.Stack.UsedLength != 225 {
		t.Errorf("UsedLength = %v, want 225", p.Stack.UsedLength)
	}
}

func TestSlabs(t *testing.T) {
	p := mustPlan(t, testSpec())
	seg := p.Segments[0]
	if seg.Floor == nil || seg.Roof == nil {
		t.Fatal("expected floor and roof")
	}
	if seg.Floor.Size != (geom.Vec3{1010, 810, 10}) {
		t.Errorf("floor size = %v", seg.Floor.Size)
	}
	if z := seg.Floor.Frame.Origin[geom.Z]; !near(z, 5) {
		t.Errorf("floor z = %v, want 5", z)
	}
	if z := seg.Roof.Frame.Origin[geom.Z]; !near(z, 220) {
		t.Errorf("roof z = %v, want 220", z)
	}

	spec := testSpec()
	spec.Panels.North = false
	seg = mustPlan(t, spec).Segments[0]
	if got := seg.Roof.Size[geom.X]; !near(got, 1025) {
		t.Errorf("roof x extent without north panel = %v, want 1025", got)
	}
	if got := seg.Roof.Frame.Origin[geom.X]; !near(got, 7.5) {
		t.Errorf("roof x center without north panel = %v, want 7.5", got)
	}
}

func TestPanelPlacement(t *testing.T) {
	p := mustPlan(t, testSpec())
	panels := p.Segments[0].Panels
	if len(panels) != 4 {
		t.Fatalf("panels = %d, want 4", len(panels))
	}

	tests := []struct {
		side   Side
		size   geom.Vec3
		origin geom.Vec3
	}{
		{North, geom.Vec3{830, 225, 10}, geom.Vec3{510, 0, 112.5}},
		{East, geom.Vec3{1010, 225, 10}, geom.Vec3{0, 410, 112.5}},
		{South, geom.Vec3{830, 225, 10}, geom.Vec3{-510, 0, 112.5}},
		{West, geom.Vec3{1010, 225, 10}, geom.Vec3{0, -410, 112.5}},
	}
	for i, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			pn := panels[i]
			if pn.Side != tt.side {
				t.Fatalf("side = %v, want %v", pn.Side, tt.side)
			}
			if !pn.Part.Size.ApproxEqual(tt.size, 1e-9) {
				t.Errorf("size = %v, want %v", pn.Part.Size, tt.size)
			}
			if !pn.Part.Frame.Origin.ApproxEqual(tt.origin, 1e-9) {
				t.Errorf("origin = %v, want %v", pn.Part.Frame.Origin, tt.origin)
			}
			if !pn.Face.Frame.N().ApproxEqual(tt.side.Normal(), 1e-12) {
				t.Errorf("face normal = %v, want %v", pn.Face.Frame.N(), tt.side.Normal())
			}
		})
	}
}

func TestPanelOverhang(t *testing.T) {
	spec := testSpec()
	spec.Panels.North = false
	panels := mustPlan(t, spec).Segments[0].Panels
	if len(panels) != 3 || panels[0].Side != East {
		t.Fatalf("panels = %d, first %v", len(panels), panels[0].Side)
	}
	east := panels[0]
	if got := east.Part.Size[0]; !near(got, 1025) {
		t.Errorf("east width = %v, want 1025", got)
	}
	b := east.Part.Bounds()
	if !near(b.Max[geom.X], 520) || !near(b.Min[geom.X], -505) {
		t.Errorf("east x span = [%v, %v], want [-505, 520]", b.Min[geom.X], b.Max[geom.X])
	}
}

func TestWindows(t *testing.T) {
	p := mustPlan(t, windowed(testSpec()))
	st := p.Stats()
	if st.Windows != 36 {
		t.Errorf("windows = %d, want 36", st.Windows)
	}
	north := p.Segments[0].Panels[0]
	if north.Windows.Rows != 2 {
		t.Errorf("rows = %d, want one per floor", north.Windows.Rows)
	}
	for _, w := range north.WindowParts() {
		if !near(w.Frame.Origin[geom.X], 510.5) {
			t.Fatalf("window x = %v, want 510.5", w.Frame.Origin[geom.X])
		}
		if w.Size[geom.N] != 11 {
			t.Fatalf("window depth = %v, want panel thickness + 1", w.Size[geom.N])
		}
	}
}

func TestWindowSeeds(t *testing.T) {
	spec := windowed(testSpec())
	spec.Windows.Alignment = layout.HAlignRandom

	p := mustPlan(t, spec)
	panels := p.Segments[0].Panels
	for i := 1; i < len(panels); i++ {
		if panels[i].Seed != panels[0].Seed+uint64(i) {
			t.Errorf("panel %d seed = %d, want %d", i, panels[i].Seed, panels[0].Seed+uint64(i))
		}
	}

	spec.Windows.Uniform = true
	panels = mustPlan(t, spec).Segments[0].Panels
	north, south := panels[0], panels[2]
	if north.Seed != south.Seed {
		t.Fatalf("uniform seeds differ: %d vs %d", north.Seed, south.Seed)
	}
	if !reflect.DeepEqual(north.Windows, south.Windows) {
		t.Error("uniform windows on equal faces should match")
	}
}

func TestFraming(t *testing.T) {
	spec := testSpec()
	spec.Framing.Enabled = true
	spec.Framing.Lattice.Spacing = geom.Vec2{100, 50}

	p := mustPlan(t, spec)
	seg := p.Segments[0]
	if len(seg.Framing) != 4 {
		t.Fatalf("framed sides = %d, want 4", len(seg.Framing))
	}
	if p.Stats().Members == 0 {
		t.Fatal("expected lattice members")
	}
	north := seg.Framing[0]
	if !near(north.Face.Frame.Origin[geom.X], 500) {
		t.Errorf("north face x = %v, want the box surface", north.Face.Frame.Origin[geom.X])
	}
	if _, ok := p.Materials.Groups["lattice.rows"]; !ok {
		t.Error("lattice groups should be allocated when framing is enabled")
	}

	spec.Framing.Seed = 42
	fixed := mustPlan(t, spec)
	spec.Framing.Seed = 7
	spec.Framing.UseRootSeed = true
	spec.Seed = 42
	rooted := mustPlan(t, spec)
	if !reflect.DeepEqual(fixed.Segments[0].Framing, rooted.Segments[0].Framing) {
		t.Error("lattice drawn from root seed 42 should match framing seed 42")
	}
}

func TestMaterials(t *testing.T) {
	spec := testSpec()
	spec.Materials.Segments.All = "concrete"
	spec.Materials.Panels.Sides = "glass"
	spec.Materials.Panels.TopBottom = "steel"

	p := mustPlan(t, spec)
	tests := []struct {
		group string
		id    int
	}{
		{"segments.sides", 1},
		{"segments.caps", 1},
		{"panels.sides", 2},
		{"panels.caps", 3},
		{"core.sides", 0},
	}
	for _, tt := range tests {
		if got := p.Materials.ID(tt.group); got != tt.id {
			t.Errorf("ID(%s) = %d, want %d", tt.group, got, tt.id)
		}
	}
	if got := p.Materials.Slot(2); got != "glass" {
		t.Errorf("Slot(2) = %q, want glass", got)
	}
}

func TestPlanDeterministic(t *testing.T) {
	spec := DefaultSpec()
	spec.Framing.Enabled = true
	spec.Stack.Count = 0
	a := mustPlan(t, spec)
	b := mustPlan(t, spec)
	if !reflect.DeepEqual(a, b) {
		t.Error("same spec should give identical plans")
	}
	if len(a.Segments) < 2 {
		t.Errorf("default spec should stack several segments, got %d", len(a.Segments))
	}
}

func TestPlanRejectsBadSpec(t *testing.T) {
	spec := testSpec()
	spec.Size[geom.X] = -1
	if _, err := Plan(context.Background(), spec); !errors.Is(err, errors.ErrCodeInvalidExtent) {
		t.Errorf("negative size: err = %v, want INVALID_EXTENT", err)
	}
}

func TestPlanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Plan(ctx, testSpec()); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestEmptyBuilding(t *testing.T) {
	spec := testSpec()
	spec.Size = geom.Vec3{1000, 1000, 0}
	p := mustPlan(t, spec)
	if len(p.Segments) != 0 {
		t.Errorf("segments = %d, want 0", len(p.Segments))
	}
	if len(p.Materials.IDs()) != 0 {
		t.Errorf("empty building should request no materials, got %v", p.Materials.Groups)
	}
}

func TestCompose(t *testing.T) {
	spec := windowed(testSpec())
	spec.KeepCore = true
	spec.Materials.Segments.All = "concrete"
	p := mustPlan(t, spec)

	k := mesh.NewBoxKernel()
	m, err := Compose(context.Background(), k, p, mesh.DefaultBooleanOptions())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	s := m.(*mesh.Solid)

	// core + box + floor + roof + 4 panels
	if len(s.Parts) != 8 {
		t.Errorf("parts = %d, want 8", len(s.Parts))
	}
	if got := s.Count(mesh.Subtract); got != 36 {
		t.Errorf("subtract tools = %d, want 36", got)
	}
	for _, part := range s.Parts {
		if part.SideMaterial < 0 || part.CapMaterial < 0 {
			t.Fatalf("raw material id left on part %+v", part)
		}
	}
	if len(s.Projections) != len(p.Materials.IDs()) {
		t.Errorf("projections = %d, want %d", len(s.Projections), len(p.Materials.IDs()))
	}
	if !s.BoundingBox().Max.ApproxEqual(geom.Vec3{515, 415, 10000}, 1e-9) {
		t.Errorf("bounds max = %v", s.BoundingBox().Max)
	}
}

func TestComposeCancelled(t *testing.T) {
	p := mustPlan(t, testSpec())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compose(ctx, mesh.NewBoxKernel(), p, mesh.DefaultBooleanOptions()); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestLoadSpec(t *testing.T) {
	src := `
seed = 7
size = [2000.0, 2000.0, 5000.0]

[panels]
north = false

[windows]
alignment = "center"
`
	spec, err := LoadSpec(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}
	if spec.Seed != 7 || spec.Size != (geom.Vec3{2000, 2000, 5000}) {
		t.Errorf("seed/size = %d %v", spec.Seed, spec.Size)
	}
	if spec.Panels.North || !spec.Panels.East {
		t.Errorf("panels = %+v, want only north disabled", spec.Panels)
	}
	if spec.Windows.Alignment != layout.HAlignCenter {
		t.Errorf("alignment = %v", spec.Windows.Alignment)
	}
	if spec.Stack.FloorHeight != stack.DefaultFloorHeight {
		t.Errorf("unset keys should keep defaults, floor height = %v", spec.Stack.FloorHeight)
	}
}

func TestLoadSpecErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"unknown key", "bogus = 1\n", errors.ErrCodeInvalidConfig},
		{"bad alignment", "[windows]\nalignment = \"diagonal\"\n", errors.ErrCodeInvalidConfig},
		{"syntax", "seed = = 1\n", errors.ErrCodeInvalidConfig},
		{"negative size", "size = [-1.0, 1.0, 1.0]\n", errors.ErrCodeInvalidExtent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSpec(strings.NewReader(tt.src))
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadSpecFileMissing(t *testing.T) {
	_, err := LoadSpecFile(t.TempDir() + "/missing.toml")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExampleSpec(t *testing.T) {
	spec, err := LoadSpecFile("../../examples/buildings/tower.toml")
	if err != nil {
		t.Fatalf("LoadSpecFile: %v", err)
	}
	if spec.Panels.West || !spec.Framing.Enabled {
		t.Fatalf("example spec decoded wrong: %+v", spec.Panels)
	}
	plan, err := Plan(context.Background(), spec)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	st := plan.Stats()
	if st.Segments != 3 {
		t.Errorf("segments = %d, want 3", st.Segments)
	}
	if st.Panels != 3*3 {
		t.Errorf("panels = %d, want 9 (three sides per segment)", st.Panels)
	}
	if st.Members == 0 {
		t.Error("framing enabled but no lattice members")
	}
}

func TestEncodeSpecRoundTrip(t *testing.T) {
	var sb strings.Builder
	if err := EncodeSpec(&sb, DefaultSpec()); err != nil {
		t.Fatalf("EncodeSpec: %v", err)
	}
	spec, err := LoadSpec(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("LoadSpec: %v\n%s", err, sb.String())
	}
	want := DefaultSpec()
	if spec.Panels != want.Panels || spec.Windows != want.Windows || spec.UV != want.UV {
		t.Error("encoded default spec should decode to itself")
	}
	if spec.Stack.FloorHeight != want.Stack.FloorHeight || spec.Framing.Lattice.Size != want.Framing.Lattice.Size {
		t.Error("nested sections should survive encoding")
	}
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{"north", North, false},
		{"E", East, false},
		{" south ", South, false},
		{"w", West, false},
		{"up", North, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSide(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSide(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

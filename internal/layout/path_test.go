package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/policyposse/legisnet/internal/dataset"
)

func TestArcPath(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 100, Y: 0}

	path := ArcPath(a, b, OuterCurveMultiplier)
	if !strings.HasPrefix(path, "M0.0,0.0 A") {
		t.Errorf("path = %q, want move-then-arc", path)
	}
	// Radius is distance times the multiplier.
	want := fmt.Sprintf("A%.1f,%.1f", 100*OuterCurveMultiplier, 100*OuterCurveMultiplier)
	if !strings.Contains(path, want) {
		t.Errorf("path = %q, want arc radius %s", path, want)
	}
}

func TestArcPath_RadiusScalesWithDistance(t *testing.T) {
	near := ArcPath(Point{}, Point{X: 10}, 1.4)
	far := ArcPath(Point{}, Point{X: 1000}, 1.4)
	if !strings.Contains(near, "A14.0,14.0") {
		t.Errorf("near path = %q, want radius 14.0", near)
	}
	if !strings.Contains(far, "A1400.0,1400.0") {
		t.Errorf("far path = %q, want radius 1400.0", far)
	}
}

func TestArcPath_CoincidentEndpoints(t *testing.T) {
	if path := ArcPath(Point{X: 5, Y: 5}, Point{X: 5, Y: 5}, 1.0); path != "" {
		t.Errorf("coincident endpoints produced path %q, want empty", path)
	}
}

func TestEdgePath_MissingEndpoint(t *testing.T) {
	res := Compute(testNodes(), ModeOverview, Focus{})

	if _, ok := res.EdgePath("ca1", "ghost"); ok {
		t.Error("EdgePath with unknown target should report false")
	}
	if _, ok := res.EdgePath("ghost", "ca1"); ok {
		t.Error("EdgePath with unknown source should report false")
	}
	if path, ok := res.EdgePath("ca1", "ny1"); !ok || path == "" {
		t.Errorf("EdgePath(ca1, ny1) = %q, %v; want a path", path, ok)
	}
}

func TestEdgePath_CurveMultipliers(t *testing.T) {
	nodes := []dataset.Legislator{
		{ID: "ca1", State: "CA"},
		{ID: "ca2", State: "CA"},
		{ID: "ca3", State: "CA"},
		{ID: "ny1", State: "NY"},
	}
	res := Compute(nodes, ModeStateFocus, Focus{State: "CA"})

	// Inner-inner edges use the tighter multiplier.
	a, _ := res.Position("ca1")
	b, _ := res.Position("ca2")
	innerPath, ok := res.EdgePath("ca1", "ca2")
	if !ok {
		t.Fatal("inner edge path missing")
	}
	if want := ArcPath(a, b, InnerCurveMultiplier); innerPath != want {
		t.Errorf("inner edge path = %q, want %q", innerPath, want)
	}

	// Edges touching the outer ring use the flatter multiplier.
	c, _ := res.Position("ny1")
	outerPath, ok := res.EdgePath("ca1", "ny1")
	if !ok {
		t.Fatal("outer edge path missing")
	}
	if want := ArcPath(a, c, OuterCurveMultiplier); outerPath != want {
		t.Errorf("outer edge path = %q, want %q", outerPath, want)
	}
}

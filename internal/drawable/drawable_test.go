package drawable

import (
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/inamate/drafter/internal/geom"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func extentsEqual(a, b geom.Extents2D) bool {
	return near(a.XMin, b.XMin) && near(a.YMin, b.YMin) && near(a.XMax, b.XMax) && near(a.YMax, b.YMax)
}

func TestArcExtents(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		want       geom.Extents2D
	}{
		{"first quadrant", 0, 90, geom.ExtentsOf(geom.Pt(0, 0), geom.Pt(1, 1))},
		{"upper half", 0, 180, geom.ExtentsOf(geom.Pt(-1, 0), geom.Pt(1, 1))},
		{"across zero", 270, 90, geom.ExtentsOf(geom.Pt(0, -1), geom.Pt(1, 1))},
		{"small", 10, 20, geom.ExtentsOf(
			geom.Pt(math.Cos(geom.Radians(20)), math.Sin(geom.Radians(10))),
			geom.Pt(math.Cos(geom.Radians(10)), math.Sin(geom.Radians(20))),
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArc(geom.Pt(0, 0), 1, geom.Radians(tt.start), geom.Radians(tt.end))
			if got := a.Extents(); !extentsEqual(got, tt.want) {
				t.Errorf("Extents() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArcContains(t *testing.T) {
	a := NewArc(geom.Pt(0, 0), 10, 0, math.Pi/2)
	if !a.Contains(geom.Pt(7.07, 7.07), 0.1) {
		t.Error("point on arc not contained")
	}
	if a.Contains(geom.Pt(-7.07, -7.07), 0.1) {
		t.Error("point on the missing part of the circle contained")
	}
	if a.Contains(geom.Pt(5, 5), 0.1) {
		t.Error("point inside the circle contained")
	}
}

func TestArcMirrorKeepsSweep(t *testing.T) {
	a := NewArc(geom.Pt(0, 0), 1, 0, math.Pi/2)
	a.TransformBy(geom.Mirroring(geom.Pt(0, 0), geom.Vec(0, 1)))
	// quarter from +X to +Y mirrored across the Y axis is the quarter from
	// +Y to -X.
	if !near(a.StartAngle, math.Pi/2) || !near(a.EndAngle, math.Pi) {
		t.Errorf("mirrored arc = %s", spew.Sdump(a.StartAngle, a.EndAngle))
	}
	if !near(a.Sweep(), math.Pi/2) {
		t.Errorf("Sweep() = %v, want π/2", a.Sweep())
	}
}

func TestCircleTransform(t *testing.T) {
	c := NewCircle(geom.Pt(1, 1), 2)
	c.TransformBy(geom.ScalingAt(geom.Pt(0, 0), 3))
	if !c.Center.Equal(geom.Pt(3, 3), 1e-9) || !near(c.Radius, 6) {
		t.Errorf("scaled circle = %v r=%v", c.Center, c.Radius)
	}
	if !c.Contains(geom.Pt(9, 3), 1e-6) {
		t.Error("point on scaled circle not contained")
	}
}

func TestEllipseExtents(t *testing.T) {
	e := NewEllipse(geom.Pt(0, 0), 4, 2, 0)
	if got := e.Extents(); !extentsEqual(got, geom.ExtentsOf(geom.Pt(-4, -2), geom.Pt(4, 2))) {
		t.Errorf("Extents() = %v", got)
	}
	e.TransformBy(geom.Rotation(math.Pi / 2))
	if got := e.Extents(); !extentsEqual(got, geom.ExtentsOf(geom.Pt(-2, -4), geom.Pt(2, 4))) {
		t.Errorf("rotated Extents() = %v", got)
	}
	if !e.Contains(geom.Pt(0, 4), 1e-6) || e.Contains(geom.Pt(0, 0), 0.5) {
		t.Error("Contains() wrong after rotation")
	}
}

func TestPolylineContains(t *testing.T) {
	open := NewPolyline(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10))
	closed := NewPolygon(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10))
	p := geom.Pt(5, 5)
	if open.Contains(p, 0.1) {
		t.Error("open polyline contains point on missing closing edge")
	}
	if !closed.Contains(p, 0.1) {
		t.Error("polygon does not contain point on closing edge")
	}
	h := NewHatch(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10))
	if !h.Contains(geom.Pt(3, 3), 0) {
		t.Error("hatch does not contain interior point")
	}
}

func TestCloneFreshID(t *testing.T) {
	shapes := []Drawable{
		NewPoint(geom.Pt(1, 1)),
		NewLine(geom.Pt(0, 0), geom.Pt(1, 1)),
		NewCircle(geom.Pt(0, 0), 1),
		NewArc(geom.Pt(0, 0), 1, 0, 1),
		NewEllipse(geom.Pt(0, 0), 2, 1, 0),
		NewPolyline(geom.Pt(0, 0), geom.Pt(1, 1)),
		NewHatch(geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1)),
		NewText(geom.Pt(0, 0), "abc", 2),
		NewComposite(NewLine(geom.Pt(0, 0), geom.Pt(2, 2))),
	}

	for _, d := range shapes {
		t.Run(d.Kind(), func(t *testing.T) {
			c := d.Clone()
			if c.ID() == d.ID() {
				t.Fatal("clone shares id")
			}
			if !extentsEqual(c.Extents(), d.Extents()) {
				t.Fatalf("clone extents %v, want %v", c.Extents(), d.Extents())
			}
			c.TransformBy(geom.Translation(geom.Vec(5, 5)))
			if extentsEqual(c.Extents(), d.Extents()) {
				t.Error("transforming the clone changed the original")
			}
		})
	}
}

func TestTextExtents(t *testing.T) {
	txt := NewText(geom.Pt(0, 0), "Hello", 10)
	w := TextWidth("Hello", 10)
	if w <= 0 {
		t.Fatalf("TextWidth() = %v, want > 0", w)
	}
	if got := TextWidth("Hello", 20); !near(got, 2*w) {
		t.Errorf("TextWidth() at double height = %v, want %v", got, 2*w)
	}
	e := txt.Extents()
	if !near(e.Width(), w) || !near(e.Height(), 10) {
		t.Errorf("Extents() = %v, want %vx10", e, w)
	}
	if !txt.Contains(geom.Pt(w/2, 5), 0) {
		t.Error("center of text not contained")
	}
}

func TestControlPointApply(t *testing.T) {
	l := NewLine(geom.Pt(0, 0), geom.Pt(10, 0))
	cps := l.ControlPoints()
	if len(cps) != 3 {
		t.Fatalf("len(ControlPoints()) = %d, want 3", len(cps))
	}

	preview := l.Clone()
	cps[1].Apply(preview, geom.Pt(10, 10))
	if got := preview.(*Line).B; !got.Equal(geom.Pt(10, 10), 0) {
		t.Errorf("End grip on clone = %v", got)
	}
	if !l.B.Equal(geom.Pt(10, 0), 0) {
		t.Error("applying to the clone moved the original")
	}

	cps[2].Apply(l, geom.Pt(5, 5))
	if !l.A.Equal(geom.Pt(0, 5), 1e-9) || !l.B.Equal(geom.Pt(10, 5), 1e-9) {
		t.Errorf("Midpoint grip moved line to %v-%v", l.A, l.B)
	}

	c := NewCircle(geom.Pt(0, 0), 1)
	radius := c.ControlPoints()[1]
	if radius.Kind != DistanceControl {
		t.Fatalf("radius grip kind = %v", radius.Kind)
	}
	radius.Apply(c, geom.Pt(0, 4))
	if !near(c.Radius, 4) {
		t.Errorf("Radius = %v, want 4", c.Radius)
	}
}

func TestComposite(t *testing.T) {
	a := NewLine(geom.Pt(0, 0), geom.Pt(1, 0))
	b := NewCircle(geom.Pt(5, 5), 1)
	c := NewComposite(a, b)
	if got := c.Extents(); !extentsEqual(got, geom.ExtentsOf(geom.Pt(0, -0), geom.Pt(6, 6))) {
		t.Errorf("Extents() = %v", got)
	}
	if !c.Remove(a) || c.Remove(a) {
		t.Error("Remove() reported wrong membership")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

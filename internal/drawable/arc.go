package drawable

import (
	"math"

	"github.com/inamate/drafter/internal/geom"
)

// Circle is a full circle.
type Circle struct {
	Base
	Center geom.Point2D
	Radius float64
}

func NewCircle(c geom.Point2D, r float64) *Circle {
	return &Circle{Base: newBase(), Center: c, Radius: r}
}

func (c *Circle) Kind() string { return "circle" }

func (c *Circle) Draw(r Renderer) {
	r.Arc(c.Center, c.Radius, 0, 2*math.Pi, c.style)
}

func (c *Circle) Extents() geom.Extents2D {
	return geom.ExtentsOf(
		geom.Pt(c.Center.X-c.Radius, c.Center.Y-c.Radius),
		geom.Pt(c.Center.X+c.Radius, c.Center.Y+c.Radius),
	)
}

func (c *Circle) Contains(pt geom.Point2D, tol float64) bool {
	return math.Abs(c.Center.DistanceTo(pt)-c.Radius) <= tol
}

func (c *Circle) TransformBy(m geom.Matrix2D) {
	c.Center = c.Center.Transform(m)
	c.Radius *= scaleFactor(m)
}

func (c *Circle) Clone() Drawable {
	return &Circle{Base: c.cloneBase(), Center: c.Center, Radius: c.Radius}
}

func (c *Circle) ControlPoints() []ControlPoint {
	return []ControlPoint{
		moveControl("Center", c.Center),
		{
			Name:      "Radius",
			Kind:      DistanceControl,
			BasePoint: c.Center,
			Location:  c.Center.Add(geom.Vec(c.Radius, 0)),
			apply: func(d Drawable, p geom.Point2D) {
				cc := d.(*Circle)
				cc.Radius = cc.Center.DistanceTo(p)
			},
		},
	}
}

// Arc is a circular arc swept counter-clockwise from StartAngle to EndAngle.
type Arc struct {
	Base
	Center     geom.Point2D
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func NewArc(c geom.Point2D, r, start, end float64) *Arc {
	return &Arc{Base: newBase(), Center: c, Radius: r, StartAngle: geom.ClampAngle(start), EndAngle: geom.ClampAngle(end)}
}

func (a *Arc) Kind() string { return "arc" }

func (a *Arc) StartPoint() geom.Point2D {
	return a.Center.Add(geom.FromAngle(a.StartAngle).Scale(a.Radius))
}

func (a *Arc) EndPoint() geom.Point2D {
	return a.Center.Add(geom.FromAngle(a.EndAngle).Scale(a.Radius))
}

// Sweep is the counter-clockwise angle from start to end in [0, 2π).
func (a *Arc) Sweep() float64 {
	return geom.ClampAngle(a.EndAngle - a.StartAngle)
}

func (a *Arc) Draw(r Renderer) {
	r.Arc(a.Center, a.Radius, a.StartAngle, a.EndAngle, a.style)
}

// Extents covers both endpoints plus every axis extreme the sweep passes.
func (a *Arc) Extents() geom.Extents2D {
	e := geom.ExtentsOf(a.StartPoint(), a.EndPoint())
	start := geom.FromAngle(a.StartAngle)
	end := geom.FromAngle(a.EndAngle)
	for _, q := range []geom.Vector2D{geom.Vec(1, 0), geom.Vec(0, 1), geom.Vec(-1, 0), geom.Vec(0, -1)} {
		if q.IsBetween(start, end) {
			e.Add(a.Center.Add(q.Scale(a.Radius)))
		}
	}
	return e
}

func (a *Arc) Contains(pt geom.Point2D, tol float64) bool {
	if math.Abs(a.Center.DistanceTo(pt)-a.Radius) > tol {
		return false
	}
	if pt.DistanceTo(a.StartPoint()) <= tol || pt.DistanceTo(a.EndPoint()) <= tol {
		return true
	}
	return pt.Sub(a.Center).IsBetween(geom.FromAngle(a.StartAngle), geom.FromAngle(a.EndAngle))
}

// TransformBy maps center and endpoints. A reflection reverses the sweep
// direction, so start and end trade places to keep it counter-clockwise.
func (a *Arc) TransformBy(m geom.Matrix2D) {
	c := a.Center.Transform(m)
	s := a.StartPoint().Transform(m)
	e := a.EndPoint().Transform(m)
	a.Center = c
	a.Radius *= scaleFactor(m)
	a.StartAngle = s.Sub(c).Angle()
	a.EndAngle = e.Sub(c).Angle()
	if m.Determinant() < 0 {
		a.StartAngle, a.EndAngle = a.EndAngle, a.StartAngle
	}
}

func (a *Arc) Clone() Drawable {
	c := *a
	c.Base = a.cloneBase()
	return &c
}

func (a *Arc) ControlPoints() []ControlPoint {
	return []ControlPoint{
		moveControl("Center", a.Center),
		{
			Name: "StartAngle", Kind: AngleControl, BasePoint: a.Center, Location: a.StartPoint(),
			apply: func(d Drawable, p geom.Point2D) {
				aa := d.(*Arc)
				aa.StartAngle = p.Sub(aa.Center).Angle()
			},
		},
		{
			Name: "EndAngle", Kind: AngleControl, BasePoint: a.Center, Location: a.EndPoint(),
			apply: func(d Drawable, p geom.Point2D) {
				aa := d.(*Arc)
				aa.EndAngle = p.Sub(aa.Center).Angle()
			},
		},
		{
			Name:      "Radius",
			Kind:      DistanceControl,
			BasePoint: a.Center,
			Location:  a.Center.Add(geom.FromAngle(a.StartAngle + a.Sweep()/2).Scale(a.Radius)),
			apply: func(d Drawable, p geom.Point2D) {
				aa := d.(*Arc)
				aa.Radius = aa.Center.DistanceTo(p)
			},
		},
	}
}

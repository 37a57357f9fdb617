package drawable

import (
	"math"

	"github.com/inamate/drafter/internal/geom"
)

// Ellipse has semi-axes RX along Rotation and RY perpendicular to it.
type Ellipse struct {
	Base
	Center   geom.Point2D
	RX, RY   float64
	Rotation float64
}

func NewEllipse(c geom.Point2D, rx, ry, rotation float64) *Ellipse {
	return &Ellipse{Base: newBase(), Center: c, RX: rx, RY: ry, Rotation: geom.ClampAngle(rotation)}
}

func (e *Ellipse) Kind() string { return "ellipse" }

func (e *Ellipse) Draw(r Renderer) {
	r.Ellipse(e.Center, e.RX, e.RY, e.Rotation, e.style)
}

func (e *Ellipse) majorAxis() geom.Vector2D {
	return geom.FromAngle(e.Rotation).Scale(e.RX)
}

func (e *Ellipse) minorAxis() geom.Vector2D {
	return geom.FromAngle(e.Rotation).Perpendicular().Scale(e.RY)
}

func (e *Ellipse) Extents() geom.Extents2D {
	cos, sin := math.Cos(e.Rotation), math.Sin(e.Rotation)
	hw := math.Hypot(e.RX*cos, e.RY*sin)
	hh := math.Hypot(e.RX*sin, e.RY*cos)
	return geom.ExtentsOf(
		geom.Pt(e.Center.X-hw, e.Center.Y-hh),
		geom.Pt(e.Center.X+hw, e.Center.Y+hh),
	)
}

// Contains measures the radial distance to the outline, which is close to
// the true distance for moderate eccentricities.
func (e *Ellipse) Contains(pt geom.Point2D, tol float64) bool {
	if e.RX <= 0 || e.RY <= 0 {
		return e.Center.DistanceTo(pt) <= tol
	}
	q := pt.Sub(e.Center).Transform(geom.Rotation(-e.Rotation))
	k := math.Hypot(q.X/e.RX, q.Y/e.RY)
	if k == 0 {
		return min(e.RX, e.RY) <= tol
	}
	return q.Length()*math.Abs(1-1/k) <= tol
}

func (e *Ellipse) TransformBy(m geom.Matrix2D) {
	major := e.majorAxis().Transform(m)
	minor := e.minorAxis().Transform(m)
	e.Center = e.Center.Transform(m)
	e.RX = major.Length()
	e.RY = minor.Length()
	e.Rotation = major.Angle()
}

func (e *Ellipse) Clone() Drawable {
	c := *e
	c.Base = e.cloneBase()
	return &c
}

func (e *Ellipse) ControlPoints() []ControlPoint {
	return []ControlPoint{
		moveControl("Center", e.Center),
		{
			Name: "MajorAxis", Kind: PointControl, BasePoint: e.Center, Location: e.Center.Add(e.majorAxis()),
			apply: func(d Drawable, p geom.Point2D) {
				ee := d.(*Ellipse)
				v := p.Sub(ee.Center)
				ee.RX = v.Length()
				ee.Rotation = v.Angle()
			},
		},
		{
			Name: "MinorAxis", Kind: DistanceControl, BasePoint: e.Center, Location: e.Center.Add(e.minorAxis()),
			apply: func(d Drawable, p geom.Point2D) {
				ee := d.(*Ellipse)
				ee.RY = ee.Center.DistanceTo(p)
			},
		},
	}
}

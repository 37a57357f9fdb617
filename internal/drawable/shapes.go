package drawable

import "github.com/inamate/drafter/internal/geom"

// Point is a single marked location.
type Point struct {
	Base
	Location geom.Point2D
}

func NewPoint(p geom.Point2D) *Point {
	return &Point{Base: newBase(), Location: p}
}

func (p *Point) Kind() string { return "point" }
func (p *Point) Draw(r Renderer) { r.Point(p.Location, p.style) }
func (p *Point) Extents() geom.Extents2D { return geom.ExtentsOf(p.Location) }
func (p *Point) TransformBy(m geom.Matrix2D) { p.Location = p.Location.Transform(m) }

func (p *Point) Contains(pt geom.Point2D, tol float64) bool {
	return p.Location.DistanceTo(pt) <= tol
}

func (p *Point) Clone() Drawable {
	return &Point{Base: p.cloneBase(), Location: p.Location}
}

func (p *Point) ControlPoints() []ControlPoint {
	return []ControlPoint{moveControl("Location", p.Location)}
}

// Line is a straight segment from A to B.
type Line struct {
	Base
	A, B geom.Point2D
}

func NewLine(a, b geom.Point2D) *Line {
	return &Line{Base: newBase(), A: a, B: b}
}

func (l *Line) Kind() string { return "line" }
func (l *Line) Draw(r Renderer) { r.Line(l.A, l.B, l.style) }
func (l *Line) Extents() geom.Extents2D { return geom.ExtentsOf(l.A, l.B) }

func (l *Line) Contains(pt geom.Point2D, tol float64) bool {
	return geom.SegmentDistance(pt, l.A, l.B) <= tol
}

func (l *Line) TransformBy(m geom.Matrix2D) {
	l.A = l.A.Transform(m)
	l.B = l.B.Transform(m)
}

func (l *Line) Clone() Drawable {
	return &Line{Base: l.cloneBase(), A: l.A, B: l.B}
}

func (l *Line) ControlPoints() []ControlPoint {
	return []ControlPoint{
		{
			Name: "Start", Kind: PointControl, BasePoint: l.B, Location: l.A,
			apply: func(d Drawable, p geom.Point2D) { d.(*Line).A = p },
		},
		{
			Name: "End", Kind: PointControl, BasePoint: l.A, Location: l.B,
			apply: func(d Drawable, p geom.Point2D) { d.(*Line).B = p },
		},
		moveControl("Midpoint", l.A.Mid(l.B)),
	}
}

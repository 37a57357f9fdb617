package drawable

import (
	"slices"
	"strconv"

	"github.com/inamate/drafter/internal/geom"
)

// Polyline is a chain of segments. A closed polyline is a polygon.
type Polyline struct {
	Base
	Points []geom.Point2D
	Closed bool
}

func NewPolyline(pts ...geom.Point2D) *Polyline {
	return &Polyline{Base: newBase(), Points: pts}
}

func NewPolygon(pts ...geom.Point2D) *Polyline {
	return &Polyline{Base: newBase(), Points: pts, Closed: true}
}

func (p *Polyline) Kind() string {
	if p.Closed {
		return "polygon"
	}
	return "polyline"
}

func (p *Polyline) Draw(r Renderer) {
	r.Polyline(p.Points, p.Closed, p.style)
}

func (p *Polyline) Extents() geom.Extents2D {
	return geom.ExtentsOf(p.Points...)
}

func (p *Polyline) Contains(pt geom.Point2D, tol float64) bool {
	return outlineContains(p.Points, p.Closed, pt, tol)
}

func (p *Polyline) TransformBy(m geom.Matrix2D) {
	transformAll(p.Points, m)
}

func (p *Polyline) Clone() Drawable {
	return &Polyline{Base: p.cloneBase(), Points: slices.Clone(p.Points), Closed: p.Closed}
}

func (p *Polyline) ControlPoints() []ControlPoint {
	return vertexControls(p.Points, func(d Drawable) []geom.Point2D { return d.(*Polyline).Points })
}

// Hatch is a filled closed region.
type Hatch struct {
	Base
	Points []geom.Point2D
}

func NewHatch(pts ...geom.Point2D) *Hatch {
	return &Hatch{Base: newBase(), Points: pts}
}

func (h *Hatch) Kind() string { return "hatch" }

func (h *Hatch) Draw(r Renderer) {
	r.Fill(h.Points, h.style)
}

func (h *Hatch) Extents() geom.Extents2D {
	return geom.ExtentsOf(h.Points...)
}

func (h *Hatch) Contains(pt geom.Point2D, tol float64) bool {
	return geom.PolygonContains(h.Points, pt) || outlineContains(h.Points, true, pt, tol)
}

func (h *Hatch) TransformBy(m geom.Matrix2D) {
	transformAll(h.Points, m)
}

func (h *Hatch) Clone() Drawable {
	return &Hatch{Base: h.cloneBase(), Points: slices.Clone(h.Points)}
}

func (h *Hatch) ControlPoints() []ControlPoint {
	return vertexControls(h.Points, func(d Drawable) []geom.Point2D { return d.(*Hatch).Points })
}

func transformAll(pts []geom.Point2D, m geom.Matrix2D) {
	for i := range pts {
		pts[i] = pts[i].Transform(m)
	}
}

func outlineContains(pts []geom.Point2D, closed bool, pt geom.Point2D, tol float64) bool {
	n := len(pts)
	if n == 1 {
		return pts[0].DistanceTo(pt) <= tol
	}
	for i := 1; i < n; i++ {
		if geom.SegmentDistance(pt, pts[i-1], pts[i]) <= tol {
			return true
		}
	}
	return closed && n > 2 && geom.SegmentDistance(pt, pts[n-1], pts[0]) <= tol
}

func vertexControls(pts []geom.Point2D, points func(Drawable) []geom.Point2D) []ControlPoint {
	cps := make([]ControlPoint, len(pts))
	for i, p := range pts {
		base := p
		if i > 0 {
			base = pts[i-1]
		}
		cps[i] = ControlPoint{
			Name:      "Vertex" + strconv.Itoa(i+1),
			Kind:      PointControl,
			BasePoint: base,
			Location:  p,
			apply: func(d Drawable, to geom.Point2D) {
				if v := points(d); i < len(v) {
					v[i] = to
				}
			},
		}
	}
	return cps
}

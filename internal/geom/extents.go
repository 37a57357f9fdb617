package geom

import "fmt"

// Extents2D is an axis-aligned bounding box. The zero value is empty, which
// is distinct from a box of zero size around a single point.
type Extents2D struct {
	XMin, YMin float64
	XMax, YMax float64
	set        bool
}

// ExtentsOf returns the bounds of the given points.
func ExtentsOf(pts ...Point2D) Extents2D {
	var e Extents2D
	for _, p := range pts {
		e.Add(p)
	}
	return e
}

// IsEmpty reports whether no point has been added.
func (e Extents2D) IsEmpty() bool {
	return !e.set
}

// Add grows the extents to include p.
func (e *Extents2D) Add(p Point2D) {
	if !e.set {
		e.XMin, e.XMax = p.X, p.X
		e.YMin, e.YMax = p.Y, p.Y
		e.set = true
		return
	}
	e.XMin = min(e.XMin, p.X)
	e.YMin = min(e.YMin, p.Y)
	e.XMax = max(e.XMax, p.X)
	e.YMax = max(e.YMax, p.Y)
}

// Union grows the extents to include other. Adding empty extents is a no-op.
func (e *Extents2D) Union(other Extents2D) {
	if other.IsEmpty() {
		return
	}
	e.Add(Pt(other.XMin, other.YMin))
	e.Add(Pt(other.XMax, other.YMax))
}

// Width returns XMax-XMin, or 0 when empty.
func (e Extents2D) Width() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.XMax - e.XMin
}

// Height returns YMax-YMin, or 0 when empty.
func (e Extents2D) Height() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.YMax - e.YMin
}

// Center returns the midpoint of the box.
func (e Extents2D) Center() Point2D {
	return Point2D{(e.XMin + e.XMax) / 2, (e.YMin + e.YMax) / 2}
}

// ContainsPoint reports whether p is inside or on the border.
func (e Extents2D) ContainsPoint(p Point2D) bool {
	return e.set && p.X >= e.XMin && p.X <= e.XMax && p.Y >= e.YMin && p.Y <= e.YMax
}

// Contains reports whether other lies entirely inside e. Empty extents are
// never contained and contain nothing.
func (e Extents2D) Contains(other Extents2D) bool {
	if e.IsEmpty() || other.IsEmpty() {
		return false
	}
	return other.XMin >= e.XMin && other.XMax <= e.XMax &&
		other.YMin >= e.YMin && other.YMax <= e.YMax
}

// Intersects reports whether the boxes overlap, touching borders included.
func (e Extents2D) Intersects(other Extents2D) bool {
	if e.IsEmpty() || other.IsEmpty() {
		return false
	}
	return other.XMin <= e.XMax && other.XMax >= e.XMin &&
		other.YMin <= e.YMax && other.YMax >= e.YMin
}

// Expand returns a copy grown by d on every side.
func (e Extents2D) Expand(d float64) Extents2D {
	if e.IsEmpty() {
		return e
	}
	return Extents2D{XMin: e.XMin - d, YMin: e.YMin - d, XMax: e.XMax + d, YMax: e.YMax + d, set: true}
}

// Corners returns the four corners counter-clockwise from (XMin, YMin).
func (e Extents2D) Corners() [4]Point2D {
	return [4]Point2D{
		{e.XMin, e.YMin},
		{e.XMax, e.YMin},
		{e.XMax, e.YMax},
		{e.XMin, e.YMax},
	}
}

func (e Extents2D) String() string {
	if e.IsEmpty() {
		return "(empty)"
	}
	return fmt.Sprintf("(%g, %g)-(%g, %g)", e.XMin, e.YMin, e.XMax, e.YMax)
}

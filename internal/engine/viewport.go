package engine

import (
	"math"

	"github.com/inamate/drafter/internal/geom"
)

const (
	minScale = 1e-6
	maxScale = 1e6
)

// Viewport maps world coordinates (y up) to canvas pixels (y down).
// Center is the world point shown in the middle of the canvas and Scale is
// pixels per world unit.
type Viewport struct {
	Width  float64
	Height float64
	Center geom.Point2D
	Scale  float64
}

// NewViewport creates a viewport of the given canvas size centred on the
// world origin at one pixel per unit.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height, Scale: 1}
}

// Matrix returns the world to screen transform.
// screen = T(w/2, h/2) * S(s, -s) * T(-center)
func (v *Viewport) Matrix() geom.Matrix2D {
	return geom.Translation(geom.Vec(v.Width/2, v.Height/2)).
		Multiply(geom.Scaling(v.Scale, -v.Scale)).
		Multiply(geom.Translation(v.Center.AsVector().Negate()))
}

func (v *Viewport) WorldToScreen(p geom.Point2D) geom.Point2D {
	return p.Transform(v.Matrix())
}

func (v *Viewport) ScreenToWorld(p geom.Point2D) geom.Point2D {
	return p.Transform(v.Matrix().Invert())
}

// WorldLength converts a length in pixels to world units.
func (v *Viewport) WorldLength(px float64) float64 {
	return px / v.Scale
}

// VisibleExtents is the world area covered by the canvas.
func (v *Viewport) VisibleExtents() geom.Extents2D {
	return geom.ExtentsOf(
		v.ScreenToWorld(geom.Pt(0, 0)),
		v.ScreenToWorld(geom.Pt(v.Width, v.Height)),
	)
}

// Pan moves the view by a screen-space drag of (dx, dy) pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.Center = v.Center.Add(geom.Vec(-dx/v.Scale, dy/v.Scale))
}

// Zoom multiplies the scale by factor, keeping the world point under the
// screen position at fixed.
func (v *Viewport) Zoom(factor float64, at geom.Point2D) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	anchor := v.ScreenToWorld(at)
	v.Scale = min(max(v.Scale*factor, minScale), maxScale)
	v.Center = v.Center.Add(anchor.Sub(v.ScreenToWorld(at)))
}

func (v *Viewport) Resize(width, height float64) {
	v.Width = max(width, 0)
	v.Height = max(height, 0)
}

// ZoomExtents fits e into the canvas with a margin in pixels.
func (v *Viewport) ZoomExtents(e geom.Extents2D, margin float64) {
	if e.IsEmpty() {
		return
	}
	v.Center = e.Center()
	w, h := v.Width-2*margin, v.Height-2*margin
	if w <= 0 || h <= 0 {
		return
	}
	switch {
	case e.Width() > 0 && e.Height() > 0:
		v.Scale = min(w/e.Width(), h/e.Height())
	case e.Width() > 0:
		v.Scale = w / e.Width()
	case e.Height() > 0:
		v.Scale = h / e.Height()
	}
	v.Scale = min(max(v.Scale, minScale), maxScale)
}

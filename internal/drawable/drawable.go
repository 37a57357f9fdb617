// Package drawable defines the objects held in a document's scenes and the
// capability set every one of them implements.
package drawable

import (
	"image/color"
	"math"

	"github.com/inamate/drafter/internal/geom"
	"github.com/inamate/drafter/internal/typeid"
)

// Drawable is an object that can be drawn, measured, picked and
// transformed.
type Drawable interface {
	ID() string
	Kind() string
	Style() Style
	SetStyle(Style)
	Visible() bool
	SetVisible(bool)

	Draw(r Renderer)
	Extents() geom.Extents2D
	// Contains reports whether pt is within tol world units of the object.
	Contains(pt geom.Point2D, tol float64) bool
	TransformBy(m geom.Matrix2D)
	// Clone returns a deep copy with a fresh id.
	Clone() Drawable
	ControlPoints() []ControlPoint
}

// Renderer receives primitives in world coordinates.
type Renderer interface {
	Point(p geom.Point2D, s Style)
	Line(a, b geom.Point2D, s Style)
	// Arc draws counter-clockwise from start to end (radians).
	Arc(c geom.Point2D, radius, start, end float64, s Style)
	Ellipse(c geom.Point2D, rx, ry, rotation float64, s Style)
	Polyline(pts []geom.Point2D, closed bool, s Style)
	Fill(pts []geom.Point2D, s Style)
	Text(p geom.Point2D, text string, height, rotation float64, s Style)
}

type Style struct {
	Color     color.RGBA `json:"color"`
	LineWidth float64    `json:"lineWidth"`
	Dashed    bool       `json:"dashed,omitempty"`
}

// DefaultStyle is white, one pixel wide.
func DefaultStyle() Style {
	return Style{Color: color.RGBA{255, 255, 255, 255}, LineWidth: 1}
}

// Base carries the id, style and visibility shared by all drawables.
type Base struct {
	id     string
	style  Style
	hidden bool
}

func newBase() Base {
	return Base{id: typeid.NewObjectID(), style: DefaultStyle()}
}

func (b *Base) ID() string { return b.id }
func (b *Base) Style() Style { return b.style }
func (b *Base) SetStyle(s Style) { b.style = s }
func (b *Base) Visible() bool { return !b.hidden }
func (b *Base) SetVisible(v bool) { b.hidden = !v }

// SetID replaces the generated id. Used when loading a stored document.
func (b *Base) SetID(id string) { b.id = id }

func (b *Base) cloneBase() Base {
	c := *b
	c.id = typeid.NewObjectID()
	return c
}

// scaleFactor is the length scale of m, exact for similarity transforms.
func scaleFactor(m geom.Matrix2D) float64 {
	d := m.Determinant()
	if d < 0 {
		d = -d
	}
	return math.Sqrt(d)
}

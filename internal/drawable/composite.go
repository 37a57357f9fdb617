package drawable

import (
	"slices"

	"github.com/inamate/drafter/internal/geom"
)

// Composite owns an ordered group of drawables and acts as one object.
type Composite struct {
	Base
	children []Drawable
}

func NewComposite(children ...Drawable) *Composite {
	return &Composite{Base: newBase(), children: children}
}

func (c *Composite) Kind() string { return "composite" }

// Children returns the owned drawables in draw order.
func (c *Composite) Children() []Drawable {
	return slices.Clone(c.children)
}

func (c *Composite) Add(d ...Drawable) {
	c.children = append(c.children, d...)
}

// Remove drops d if present and reports whether it was a child.
func (c *Composite) Remove(d Drawable) bool {
	i := slices.Index(c.children, d)
	if i < 0 {
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	return true
}

func (c *Composite) Len() int { return len(c.children) }

func (c *Composite) Draw(r Renderer) {
	for _, d := range c.children {
		if d.Visible() {
			d.Draw(r)
		}
	}
}

func (c *Composite) Extents() geom.Extents2D {
	var e geom.Extents2D
	for _, d := range c.children {
		e.Union(d.Extents())
	}
	return e
}

func (c *Composite) Contains(pt geom.Point2D, tol float64) bool {
	for _, d := range c.children {
		if d.Contains(pt, tol) {
			return true
		}
	}
	return false
}

func (c *Composite) TransformBy(m geom.Matrix2D) {
	for _, d := range c.children {
		d.TransformBy(m)
	}
}

func (c *Composite) Clone() Drawable {
	out := &Composite{Base: c.cloneBase(), children: make([]Drawable, len(c.children))}
	for i, d := range c.children {
		out.children[i] = d.Clone()
	}
	return out
}

func (c *Composite) ControlPoints() []ControlPoint {
	e := c.Extents()
	if e.IsEmpty() {
		return nil
	}
	return []ControlPoint{moveControl("Center", e.Center())}
}

// Package geom holds the 2D value types shared by drawables, jigs and the
// input getters.
package geom

import (
	"fmt"
	"math"
)

// Point2D is a location in world coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point2D{x, y}.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Add offsets the point by v.
func (p Point2D) Add(v Vector2D) Point2D {
	return Point2D{p.X + v.X, p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point2D) Sub(q Point2D) Vector2D {
	return Vector2D{p.X - q.X, p.Y - q.Y}
}

// DistanceTo returns the euclidean distance between p and q.
func (p Point2D) DistanceTo(q Point2D) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Transform maps the point through m.
func (p Point2D) Transform(m Matrix2D) Point2D {
	return Point2D{
		m.M11*p.X + m.M12*p.Y + m.DX,
		m.M21*p.X + m.M22*p.Y + m.DY,
	}
}

// Mid returns the midpoint between p and q.
func (p Point2D) Mid(q Point2D) Point2D {
	return Point2D{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// AsVector returns the position vector of p.
func (p Point2D) AsVector() Vector2D {
	return Vector2D(p)
}

// Equal reports whether p and q are within eps of each other on both axes.
func (p Point2D) Equal(q Point2D, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// Format renders the point with the given number of decimals, as shown in
// prompts.
func (p Point2D) Format(precision int) string {
	return fmt.Sprintf("%.*f, %.*f", precision, p.X, precision, p.Y)
}

func (p Point2D) String() string {
	return p.Format(4)
}

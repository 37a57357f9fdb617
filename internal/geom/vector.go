package geom

import (
	"fmt"
	"math"
)

// AngleEpsilon is the tolerance used when comparing angle sums.
const AngleEpsilon = 1e-4

// Vector2D is a direction and magnitude in world coordinates.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec is shorthand for Vector2D{x, y}.
func Vec(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// FromAngle returns the unit vector at angle radians from +X.
func FromAngle(radians float64) Vector2D {
	return Vector2D{math.Cos(radians), math.Sin(radians)}
}

func (v Vector2D) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vector2D) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Angle returns the angle from +X in [0, 2π). The zero vector has no
// direction and yields 0.
func (v Vector2D) Angle() float64 {
	return ClampAngle(math.Atan2(v.Y, v.X))
}

// Normal returns the unit vector in the direction of v. The zero vector is
// returned unchanged.
func (v Vector2D) Normal() Vector2D {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vector2D{v.X / l, v.Y / l}
}

// Perpendicular returns v rotated +90°.
func (v Vector2D) Perpendicular() Vector2D {
	return Vector2D{-v.Y, v.X}
}

func (v Vector2D) Add(w Vector2D) Vector2D { return Vector2D{v.X + w.X, v.Y + w.Y} }
func (v Vector2D) Sub(w Vector2D) Vector2D { return Vector2D{v.X - w.X, v.Y - w.Y} }
func (v Vector2D) Scale(f float64) Vector2D { return Vector2D{v.X * f, v.Y * f} }
func (v Vector2D) Negate() Vector2D { return Vector2D{-v.X, -v.Y} }
func (v Vector2D) Dot(w Vector2D) float64 { return v.X*w.X + v.Y*w.Y }
func (v Vector2D) Cross(w Vector2D) float64 { return v.X*w.Y - v.Y*w.X }
func (v Vector2D) AsPoint() Point2D { return Point2D(v) }

// Transform maps the vector through the linear part of m; translation is
// ignored.
func (v Vector2D) Transform(m Matrix2D) Vector2D {
	return Vector2D{m.M11*v.X + m.M12*v.Y, m.M21*v.X + m.M22*v.Y}
}

// SignedAngleTo returns the signed angle from v to w in (-π, π].
// Counter-clockwise is positive.
func (v Vector2D) SignedAngleTo(w Vector2D) float64 {
	return math.Atan2(v.Cross(w), v.Dot(w))
}

// AngleTo returns the counter-clockwise angle from v to w in [0, 2π).
func (v Vector2D) AngleTo(w Vector2D) float64 {
	return ClampAngle(v.SignedAngleTo(w))
}

// IsBetween reports whether v lies in the counter-clockwise sweep from a to
// b, endpoints included.
func (v Vector2D) IsBetween(a, b Vector2D) bool {
	sweep := a.AngleTo(b)
	partial := a.AngleTo(v) + v.AngleTo(b)
	return math.Abs(partial-sweep) < AngleEpsilon
}

func (v Vector2D) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// ClampAngle wraps radians into [0, 2π).
func ClampAngle(radians float64) float64 {
	a := math.Mod(radians, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

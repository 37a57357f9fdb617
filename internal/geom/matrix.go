package geom

import "math"

// Matrix2D is a 2D affine transform mapping (x, y) to
//
//	| M11  M12  DX |   | x |
//	| M21  M22  DY | * | y |
//	|  0    0    1 |   | 1 |
//
// Composition follows the usual column-vector convention: m.Multiply(n)
// returns m·n, which applies n first and then m.
type Matrix2D struct {
	M11 float64 `json:"m11"`
	M12 float64 `json:"m12"`
	M21 float64 `json:"m21"`
	M22 float64 `json:"m22"`
	DX  float64 `json:"dx"`
	DY  float64 `json:"dy"`
}

// Identity returns the identity matrix.
func Identity() Matrix2D {
	return Matrix2D{M11: 1, M22: 1}
}

// Translation returns a translation by v.
func Translation(v Vector2D) Matrix2D {
	return Matrix2D{M11: 1, M22: 1, DX: v.X, DY: v.Y}
}

// Rotation returns a counter-clockwise rotation about the origin.
func Rotation(radians float64) Matrix2D {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Matrix2D{M11: cos, M12: -sin, M21: sin, M22: cos}
}

// RotationAt returns a counter-clockwise rotation about c:
// T(c)·R(θ)·T(-c).
func RotationAt(c Point2D, radians float64) Matrix2D {
	v := c.AsVector()
	return Translation(v).Multiply(Rotation(radians)).Multiply(Translation(v.Negate()))
}

// Scaling returns a scale about the origin.
func Scaling(sx, sy float64) Matrix2D {
	return Matrix2D{M11: sx, M22: sy}
}

// ScalingAt returns a uniform scale by f about c.
func ScalingAt(c Point2D, f float64) Matrix2D {
	v := c.AsVector()
	return Translation(v).Multiply(Scaling(f, f)).Multiply(Translation(v.Negate()))
}

// Mirroring returns a reflection across the line through p with direction
// dir. A zero direction yields the identity.
func Mirroring(p Point2D, dir Vector2D) Matrix2D {
	if dir.IsZero() {
		return Identity()
	}
	a := math.Atan2(dir.Y, dir.X)
	cos2 := math.Cos(2 * a)
	sin2 := math.Sin(2 * a)
	reflect := Matrix2D{M11: cos2, M12: sin2, M21: sin2, M22: -cos2}
	v := p.AsVector()
	return Translation(v).Multiply(reflect).Multiply(Translation(v.Negate()))
}

// Multiply returns m·n: n is applied first, then m.
func (m Matrix2D) Multiply(n Matrix2D) Matrix2D {
	return Matrix2D{
		M11: m.M11*n.M11 + m.M12*n.M21,
		M12: m.M11*n.M12 + m.M12*n.M22,
		M21: m.M21*n.M11 + m.M22*n.M21,
		M22: m.M21*n.M12 + m.M22*n.M22,
		DX:  m.M11*n.DX + m.M12*n.DY + m.DX,
		DY:  m.M21*n.DX + m.M22*n.DY + m.DY,
	}
}

// Then returns the transform that applies m first and then n.
func (m Matrix2D) Then(n Matrix2D) Matrix2D {
	return n.Multiply(m)
}

// Determinant returns the determinant of the linear part.
func (m Matrix2D) Determinant() float64 {
	return m.M11*m.M22 - m.M12*m.M21
}

// IsInvertible reports whether the determinant is non-zero.
func (m Matrix2D) IsInvertible() bool {
	return m.Determinant() != 0
}

// Invert returns the inverse of the matrix, or Identity if not invertible.
func (m Matrix2D) Invert() Matrix2D {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}

	inv := 1.0 / det
	return Matrix2D{
		M11: m.M22 * inv,
		M12: -m.M12 * inv,
		M21: -m.M21 * inv,
		M22: m.M11 * inv,
		DX:  (m.M12*m.DY - m.M22*m.DX) * inv,
		DY:  (m.M21*m.DX - m.M11*m.DY) * inv,
	}
}

// TransformExtents transforms the four corners of e and returns their
// axis-aligned bounds. Empty extents stay empty.
func (m Matrix2D) TransformExtents(e Extents2D) Extents2D {
	if e.IsEmpty() {
		return e
	}
	var out Extents2D
	out.Add(Pt(e.XMin, e.YMin).Transform(m))
	out.Add(Pt(e.XMax, e.YMin).Transform(m))
	out.Add(Pt(e.XMax, e.YMax).Transform(m))
	out.Add(Pt(e.XMin, e.YMax).Transform(m))
	return out
}

// ToSlice returns the matrix in canvas setTransform order (a, b, c, d, e, f).
func (m Matrix2D) ToSlice() []float64 {
	return []float64{m.M11, m.M21, m.M12, m.M22, m.DX, m.DY}
}

// IsIdentity checks if this is the identity matrix (within epsilon).
func (m Matrix2D) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(m.M11-1) < eps &&
		math.Abs(m.M12) < eps &&
		math.Abs(m.M21) < eps &&
		math.Abs(m.M22-1) < eps &&
		math.Abs(m.DX) < eps &&
		math.Abs(m.DY) < eps
}

// Equal compares two matrices element-wise within eps.
func (m Matrix2D) Equal(n Matrix2D, eps float64) bool {
	return math.Abs(m.M11-n.M11) <= eps &&
		math.Abs(m.M12-n.M12) <= eps &&
		math.Abs(m.M21-n.M21) <= eps &&
		math.Abs(m.M22-n.M22) <= eps &&
		math.Abs(m.DX-n.DX) <= eps &&
		math.Abs(m.DY-n.DY) <= eps
}

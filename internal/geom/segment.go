package geom

// SegmentDistance returns the distance from p to the segment ab.
func SegmentDistance(p, a, b Point2D) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.DistanceTo(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = max(0, min(1, t))
	return p.DistanceTo(a.Add(ab.Scale(t)))
}

// PolygonContains reports whether p is inside the closed polygon pts using
// the even-odd rule.
func PolygonContains(pts []Point2D, p Point2D) bool {
	inside := false
	n := len(pts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

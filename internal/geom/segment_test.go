package geom

import (
	"math"
	"testing"
)

func TestSegmentDistance(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)
	tests := []struct {
		name string
		p    Point2D
		want float64
	}{
		{"above middle", Pt(5, 3), 3},
		{"past end", Pt(13, 4), 5},
		{"before start", Pt(-3, 0), 3},
		{"on segment", Pt(7, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentDistance(tt.p, a, b); math.Abs(got-tt.want) > eps {
				t.Errorf("SegmentDistance() = %v, want %v", got, tt.want)
			}
		})
	}
	if got := SegmentDistance(Pt(3, 4), a, a); math.Abs(got-5) > eps {
		t.Errorf("degenerate SegmentDistance() = %v, want 5", got)
	}
}

func TestPolygonContains(t *testing.T) {
	square := []Point2D{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)}
	if !PolygonContains(square, Pt(2, 2)) {
		t.Error("center not inside")
	}
	if PolygonContains(square, Pt(5, 2)) {
		t.Error("outside point reported inside")
	}
}

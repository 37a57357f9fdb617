package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestVectorNormal(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2D
	}{
		{"unit x", Vec(1, 0)},
		{"diagonal", Vec(3, 4)},
		{"tiny", Vec(1e-7, -2e-7)},
		{"negative", Vec(-12, -5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Normal().Length()
			if math.Abs(got-1) > eps {
				t.Errorf("Normal().Length() = %v, want 1", got)
			}
		})
	}
}

func TestVectorNormalZero(t *testing.T) {
	if got := Vec(0, 0).Normal(); !got.IsZero() {
		t.Errorf("Normal() of zero = %v, want zero", got)
	}
}

func TestFromAngleRange(t *testing.T) {
	for _, deg := range []float64{0, 30, 90, 179, 180, 270, 359, 360, 720, -90, -450} {
		theta := Radians(deg)
		got := FromAngle(theta).Angle()
		if got < 0 || got >= 2*math.Pi {
			t.Fatalf("FromAngle(%v°).Angle() = %v, outside [0, 2π)", deg, got)
		}
		want := ClampAngle(theta)
		diff := math.Abs(got - want)
		if diff > 1e-9 && math.Abs(diff-2*math.Pi) > 1e-9 {
			t.Errorf("FromAngle(%v°).Angle() = %v, want %v", deg, got, want)
		}
		if other := FromAngle(theta + 2*math.Pi).Angle(); math.Abs(other-got) > 1e-9 && math.Abs(math.Abs(other-got)-2*math.Pi) > 1e-9 {
			t.Errorf("angle not periodic at %v°: %v vs %v", deg, other, got)
		}
	}
}

func TestPerpendicular(t *testing.T) {
	v := Vec(2, 1)
	p := v.Perpendicular()
	if math.Abs(v.Dot(p)) > eps {
		t.Errorf("Dot(v, Perpendicular(v)) = %v, want 0", v.Dot(p))
	}
	if got := v.AngleTo(p); math.Abs(got-math.Pi/2) > eps {
		t.Errorf("AngleTo(Perpendicular) = %v, want π/2", got)
	}
}

func TestSignedAngleTo(t *testing.T) {
	tests := []struct {
		name string
		v, w Vector2D
		want float64
	}{
		{"quarter ccw", Vec(1, 0), Vec(0, 1), math.Pi / 2},
		{"quarter cw", Vec(1, 0), Vec(0, -1), -math.Pi / 2},
		{"same", Vec(1, 1), Vec(2, 2), 0},
		{"opposite", Vec(1, 0), Vec(-1, 0), math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.SignedAngleTo(tt.w); math.Abs(got-tt.want) > eps {
				t.Errorf("SignedAngleTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBetween(t *testing.T) {
	sweeps := []struct {
		name       string
		start, end float64
	}{
		{"narrow", 10, 80},
		{"half", 0, 180},
		{"wide", 30, 300},
		{"wrap", 300, 60},
		{"wide wrap", 200, 170},
	}

	for _, s := range sweeps {
		t.Run(s.name, func(t *testing.T) {
			a := FromAngle(Radians(s.start))
			b := FromAngle(Radians(s.end))
			sweep := a.AngleTo(b)
			mid := FromAngle(Radians(s.start) + sweep/2)
			if !mid.IsBetween(a, b) {
				t.Errorf("midpoint %v not between %v and %v", mid, a, b)
			}
			if !a.IsBetween(a, b) || !b.IsBetween(a, b) {
				t.Errorf("endpoints not between themselves")
			}
			if sweep < 2*math.Pi-0.01 {
				outside := FromAngle(Radians(s.start) + sweep + (2*math.Pi-sweep)/2)
				if outside.IsBetween(a, b) {
					t.Errorf("vector %v outside sweep reported between", outside)
				}
			}
			if sweep <= math.Pi {
				opposite := mid.Negate()
				if opposite.IsBetween(a, b) {
					t.Errorf("opposite of midpoint %v reported between", opposite)
				}
			}
		})
	}
}

func TestClampAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{2 * math.Pi, 0},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := ClampAngle(tt.in); math.Abs(got-tt.want) > eps {
			t.Errorf("ClampAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

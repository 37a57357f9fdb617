package geom

import "testing"

func TestExtentsEmpty(t *testing.T) {
	var e Extents2D
	if !e.IsEmpty() {
		t.Fatal("zero value not empty")
	}
	e.Add(Pt(2, 3))
	if e.IsEmpty() {
		t.Fatal("IsEmpty() after Add = true")
	}
	if e.Width() != 0 || e.Height() != 0 {
		t.Errorf("single point size = %vx%v, want 0x0", e.Width(), e.Height())
	}
}

func TestExtentsAddNeverShrinks(t *testing.T) {
	e := ExtentsOf(Pt(0, 0), Pt(10, 10))
	e.Add(Pt(5, 5))
	if e.XMin != 0 || e.XMax != 10 || e.YMin != 0 || e.YMax != 10 {
		t.Errorf("extents = %v, want (0,0)-(10,10)", e)
	}
	e.Add(Pt(-1, 12))
	if e.XMin != -1 || e.YMax != 12 {
		t.Errorf("extents = %v, want (-1,0)-(10,12)", e)
	}
}

func TestExtentsContainsIntersects(t *testing.T) {
	window := ExtentsOf(Pt(0, 0), Pt(10, 10))
	var empty Extents2D

	tests := []struct {
		name       string
		other      Extents2D
		contains   bool
		intersects bool
	}{
		{"inside", ExtentsOf(Pt(1, 1), Pt(2, 2)), true, true},
		{"crossing", ExtentsOf(Pt(8, 8), Pt(12, 12)), false, true},
		{"outside", ExtentsOf(Pt(11, 11), Pt(12, 12)), false, false},
		{"touching", ExtentsOf(Pt(10, 0), Pt(11, 1)), false, true},
		{"equal", window, true, true},
		{"empty", empty, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := window.Contains(tt.other); got != tt.contains {
				t.Errorf("Contains() = %v, want %v", got, tt.contains)
			}
			if got := window.Intersects(tt.other); got != tt.intersects {
				t.Errorf("Intersects() = %v, want %v", got, tt.intersects)
			}
		})
	}

	if empty.Contains(window) || empty.Intersects(window) {
		t.Error("empty extents reported overlap")
	}
}

func TestExtentsUnion(t *testing.T) {
	var e Extents2D
	e.Union(Extents2D{})
	if !e.IsEmpty() {
		t.Fatal("union with empty made extents non-empty")
	}
	e.Union(ExtentsOf(Pt(1, 1), Pt(2, 2)))
	e.Union(ExtentsOf(Pt(-1, 5)))
	if e.XMin != -1 || e.YMin != 1 || e.XMax != 2 || e.YMax != 5 {
		t.Errorf("Union() = %v", e)
	}
}

package geom

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestRegionInside(t *testing.T) {
	reg := NewRegion(0, 0, 100, 60, 0)

	tests := []struct {
		name string
		pos  r2.Vec
		mod  RegionModifier
		want bool
	}{
		{"center normal", r2.Vec{X: 50, Y: 30}, Normal, true},
		{"center half", r2.Vec{X: 50, Y: 30}, HalfSize, true},
		{"outside", r2.Vec{X: 150, Y: 30}, Normal, false},
		{"on left edge", r2.Vec{X: 0, Y: 30}, Normal, false},
		{"on top edge", r2.Vec{X: 50, Y: 0}, Normal, false},
		{"on corner", r2.Vec{X: 100, Y: 60}, Normal, false},
		{"inside full but not half", r2.Vec{X: 10, Y: 30}, Normal, true},
		{"inside full but not half (half)", r2.Vec{X: 10, Y: 30}, HalfSize, false},
		{"just inside half margin", r2.Vec{X: 26, Y: 30}, HalfSize, true},
		{"on half margin", r2.Vec{X: 25, Y: 30}, HalfSize, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reg.Inside(tt.pos, tt.mod); got != tt.want {
				t.Errorf("Inside(%v, %v) = %v, want %v", tt.pos, tt.mod, got, tt.want)
			}
		})
	}
}

// Half-size containment must be a strict subset of normal containment.
func TestRegionHalfSizeSubset(t *testing.T) {
	reg := NewRegion(10, 20, 110, 80, 3)

	for x := 0.0; x <= 120; x += 2.5 {
		for y := 10.0; y <= 90; y += 2.5 {
			p := r2.Vec{X: x, Y: y}
			if reg.Inside(p, HalfSize) && !reg.Inside(p, Normal) {
				t.Fatalf("point %v inside half-size but not full region", p)
			}
		}
	}
}

func TestRegionDerivedValues(t *testing.T) {
	reg := NewRegion(10, 20, 110, 80, 7)

	if reg.Width() != 100 || reg.Height() != 60 {
		t.Errorf("size = (%v, %v), want (100, 60)", reg.Width(), reg.Height())
	}
	if reg.Length() != 100 {
		t.Errorf("Length() = %v, want 100", reg.Length())
	}
	want := r2.Vec{X: 60, Y: 50}
	if reg.Center() != want {
		t.Errorf("Center() = %v, want %v", reg.Center(), want)
	}
	if reg.ID() != 7 {
		t.Errorf("ID() = %v, want 7", reg.ID())
	}
}

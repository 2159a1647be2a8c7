package game

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestSmootherPartialWindow(t *testing.T) {
	s := NewSmoother(4)

	got := s.Update(r2.Vec{X: 4})
	if got != (r2.Vec{X: 4}) {
		t.Errorf("first sample average = %v, want {4,0}", got)
	}

	got = s.Update(r2.Vec{X: 0, Y: 4})
	want := r2.Vec{X: 2, Y: 2}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("two-sample average = %v, want %v", got, want)
	}
}

func TestSmootherRollingWindow(t *testing.T) {
	s := NewSmoother(2)

	s.Update(r2.Vec{X: 10})
	s.Update(r2.Vec{X: 20})
	// The first sample falls out of the window here.
	got := s.Update(r2.Vec{X: 40})
	if math.Abs(got.X-30) > 1e-9 {
		t.Errorf("rolling average = %v, want 30", got.X)
	}
}

func TestSmootherMinimumSize(t *testing.T) {
	s := NewSmoother(0)
	got := s.Update(r2.Vec{X: 7})
	if got != (r2.Vec{X: 7}) {
		t.Errorf("size-clamped smoother average = %v, want {7,0}", got)
	}
}

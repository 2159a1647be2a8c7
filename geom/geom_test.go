package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func vecNear(a, b r2.Vec, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		v    r2.Vec
		max  float64
		want float64 // expected magnitude
	}{
		{"under limit", r2.Vec{X: 3, Y: 4}, 10, 5},
		{"over limit", r2.Vec{X: 30, Y: 40}, 10, 10},
		{"exactly at limit", r2.Vec{X: 3, Y: 4}, 5, 5},
		{"zero vector", r2.Vec{}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r2.Norm(Truncate(tt.v, tt.max))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("|Truncate(%v, %v)| = %v, want %v", tt.v, tt.max, got, tt.want)
			}
		})
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := Normalize(r2.Vec{}); got != (r2.Vec{}) {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
	got := Normalize(r2.Vec{X: 0, Y: -7})
	if !vecNear(got, r2.Vec{X: 0, Y: -1}, 1e-9) {
		t.Errorf("Normalize = %v, want {0,-1}", got)
	}
}

func TestPerpOrthogonal(t *testing.T) {
	v := r2.Vec{X: 2, Y: 5}
	if dot := r2.Dot(v, Perp(v)); math.Abs(dot) > 1e-12 {
		t.Errorf("Perp not orthogonal, dot = %v", dot)
	}
}

func TestLocalSpaceRoundtrip(t *testing.T) {
	heading := Normalize(r2.Vec{X: 1, Y: 1})
	side := Perp(heading)
	origin := r2.Vec{X: 10, Y: -4}

	points := []r2.Vec{
		{X: 0, Y: 0},
		{X: 12, Y: -4},
		{X: -3, Y: 8},
	}
	for _, p := range points {
		local := PointToLocalSpace(p, heading, side, origin)
		back := PointToWorldSpace(local, heading, side, origin)
		if !vecNear(back, p, 1e-9) {
			t.Errorf("roundtrip %v -> %v -> %v", p, local, back)
		}
	}
}

func TestPointToLocalSpaceAhead(t *testing.T) {
	// A point directly ahead of the agent has positive local x and zero y.
	heading := r2.Vec{X: 1, Y: 0}
	side := Perp(heading)
	local := PointToLocalSpace(r2.Vec{X: 15, Y: 5}, heading, side, r2.Vec{X: 5, Y: 5})
	if !vecNear(local, r2.Vec{X: 10, Y: 0}, 1e-9) {
		t.Errorf("local = %v, want {10,0}", local)
	}
}

func TestTangentPoints(t *testing.T) {
	center := r2.Vec{X: 0, Y: 0}
	radius := 5.0
	from := r2.Vec{X: 10, Y: 0}

	t1, t2, ok := TangentPoints(center, radius, from)
	if !ok {
		t.Fatal("expected tangent points for external point")
	}

	// Both tangent points lie on the circle.
	for _, p := range []r2.Vec{t1, t2} {
		if d := Distance(center, p); math.Abs(d-radius) > 1e-9 {
			t.Errorf("tangent point %v at distance %v, want %v", p, d, radius)
		}
	}
	// The tangent line is perpendicular to the radius at the touch point.
	for _, p := range []r2.Vec{t1, t2} {
		radial := r2.Sub(p, center)
		tangent := r2.Sub(from, p)
		if dot := r2.Dot(radial, tangent); math.Abs(dot) > 1e-9 {
			t.Errorf("tangent at %v not perpendicular, dot = %v", p, dot)
		}
	}
	// Symmetric about the center-from axis.
	if math.Abs(t1.Y+t2.Y) > 1e-9 || math.Abs(t1.X-t2.X) > 1e-9 {
		t.Errorf("tangent points %v, %v not symmetric about the x axis", t1, t2)
	}
}

func TestTangentPointsInsideCircle(t *testing.T) {
	if _, _, ok := TangentPoints(r2.Vec{}, 5, r2.Vec{X: 3, Y: 0}); ok {
		t.Error("expected no tangent points from inside the circle")
	}
	if _, _, ok := TangentPoints(r2.Vec{}, 5, r2.Vec{X: 5, Y: 0}); ok {
		t.Error("expected no tangent points from the circle boundary")
	}
}

func TestLineIntersection(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d r2.Vec
		wantOK     bool
		wantPoint  r2.Vec
	}{
		{
			"crossing",
			r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 10},
			r2.Vec{X: 0, Y: 10}, r2.Vec{X: 10, Y: 0},
			true, r2.Vec{X: 5, Y: 5},
		},
		{
			"parallel",
			r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 0},
			r2.Vec{X: 0, Y: 1}, r2.Vec{X: 10, Y: 1},
			false, r2.Vec{},
		},
		{
			"segments too short",
			r2.Vec{X: 0, Y: 0}, r2.Vec{X: 1, Y: 1},
			r2.Vec{X: 0, Y: 10}, r2.Vec{X: 10, Y: 0},
			false, r2.Vec{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, dist, ok := LineIntersection(tt.a, tt.b, tt.c, tt.d)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok {
				if !vecNear(p, tt.wantPoint, 1e-9) {
					t.Errorf("point = %v, want %v", p, tt.wantPoint)
				}
				if want := Distance(tt.a, tt.wantPoint); math.Abs(dist-want) > 1e-9 {
					t.Errorf("dist = %v, want %v", dist, want)
				}
			}
		})
	}
}

func TestWallNormal(t *testing.T) {
	// Walls are wound so the playing area lies on the normal side: a top
	// wall running right-to-left gets a normal pointing down (+y) into
	// the pitch.
	w := NewWall(r2.Vec{X: 100, Y: 0}, r2.Vec{X: 0, Y: 0})
	if !vecNear(w.N, r2.Vec{X: 0, Y: 1}, 1e-9) {
		t.Errorf("N = %v, want {0,1}", w.N)
	}
	if n := r2.Norm(w.N); math.Abs(n-1) > 1e-9 {
		t.Errorf("|N| = %v, want 1", n)
	}
}

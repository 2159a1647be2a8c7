// Package geom provides 2D geometry helpers for the match simulation.
// Vectors are gonum spatial/r2 values; the coordinate system is
// screen-style (x right, y down), matching the renderer.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Normalize returns the unit vector of v, or the zero vector when v is zero.
func Normalize(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n < 1e-12 {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// Truncate clamps the magnitude of v to max.
func Truncate(v r2.Vec, max float64) r2.Vec {
	n := r2.Norm(v)
	if n <= max || n < 1e-12 {
		return v
	}
	return r2.Scale(max/n, v)
}

// Perp returns the vector perpendicular to v. Heading {1,0} yields
// side {0,1}; agents keep heading/side as an orthonormal local frame.
func Perp(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// Distance returns the distance between two points.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// DistanceSq returns the squared distance between two points.
func DistanceSq(a, b r2.Vec) float64 {
	return r2.Norm2(r2.Sub(b, a))
}

// Rotate rotates v by angle radians.
func Rotate(v r2.Vec, angle float64) r2.Vec {
	sin, cos := math.Sincos(angle)
	return r2.Vec{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// PointToLocalSpace transforms a world-space point into the local frame
// defined by heading, side and origin. Local x runs along the heading.
func PointToLocalSpace(point, heading, side, origin r2.Vec) r2.Vec {
	d := r2.Sub(point, origin)
	return r2.Vec{X: r2.Dot(d, heading), Y: r2.Dot(d, side)}
}

// VectorToWorldSpace rotates a local-space vector into world space.
func VectorToWorldSpace(v, heading, side r2.Vec) r2.Vec {
	return r2.Vec{
		X: v.X*heading.X + v.Y*side.X,
		Y: v.X*heading.Y + v.Y*side.Y,
	}
}

// PointToWorldSpace transforms a local-space point into world space.
func PointToWorldSpace(point, heading, side, origin r2.Vec) r2.Vec {
	return r2.Add(VectorToWorldSpace(point, heading, side), origin)
}

// TangentPoints returns the two points where the tangent lines from an
// external point touch the circle (center, radius). ok is false when
// from lies on or inside the circle.
func TangentPoints(center r2.Vec, radius float64, from r2.Vec) (t1, t2 r2.Vec, ok bool) {
	pmc := r2.Sub(from, center)
	sqrLen := r2.Norm2(pmc)
	rSqr := radius * radius
	if sqrLen <= rSqr {
		return r2.Vec{}, r2.Vec{}, false
	}

	invSqrLen := 1 / sqrLen
	root := math.Sqrt(math.Abs(sqrLen - rSqr))

	t1 = r2.Vec{
		X: center.X + radius*(radius*pmc.X-pmc.Y*root)*invSqrLen,
		Y: center.Y + radius*(radius*pmc.Y+pmc.X*root)*invSqrLen,
	}
	t2 = r2.Vec{
		X: center.X + radius*(radius*pmc.X+pmc.Y*root)*invSqrLen,
		Y: center.Y + radius*(radius*pmc.Y-pmc.X*root)*invSqrLen,
	}
	return t1, t2, true
}

// LineIntersection computes the intersection of segments ab and cd.
// It returns the intersection point, the distance from a to it, and
// whether the segments actually cross.
func LineIntersection(a, b, c, d r2.Vec) (point r2.Vec, dist float64, ok bool) {
	rTop := (a.Y-c.Y)*(d.X-c.X) - (a.X-c.X)*(d.Y-c.Y)
	rBot := (b.X-a.X)*(d.Y-c.Y) - (b.Y-a.Y)*(d.X-c.X)

	sTop := (a.Y-c.Y)*(b.X-a.X) - (a.X-c.X)*(b.Y-a.Y)
	sBot := rBot

	if rBot == 0 || sBot == 0 {
		// Parallel
		return r2.Vec{}, 0, false
	}

	r := rTop / rBot
	s := sTop / sBot

	if r > 0 && r < 1 && s > 0 && s < 1 {
		dist = Distance(a, b) * r
		point = r2.Add(a, r2.Scale(r, r2.Sub(b, a)))
		return point, dist, true
	}
	return r2.Vec{}, 0, false
}

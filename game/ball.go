package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/geom"
)

// Ball is the match ball. Physical state lives in the ECS; the struct
// adds the kick/trap interface the tactical layer works with. Unlike the
// players the ball has no force budget: a kick replaces its velocity
// outright and only friction slows it down again.
type Ball struct {
	entityHandle

	walls    []geom.Wall
	friction float64 // negative, per tick
	oldPos   r2.Vec
}

func newBall(h entityHandle, walls []geom.Wall, friction float64) *Ball {
	return &Ball{
		entityHandle: h,
		walls:        walls,
		friction:     friction,
		oldPos:       h.Pos(),
	}
}

// OldPos returns the ball's position on the previous tick. Goals use the
// old/new segment to detect the ball crossing the line.
func (b *Ball) OldPos() r2.Vec { return b.oldPos }

// Kick applies an instantaneous impulse: the ball's velocity becomes
// direction * force / mass, replacing whatever motion it had.
func (b *Ball) Kick(direction r2.Vec, force float64) {
	dir := geom.Normalize(direction)
	b.SetVelocity(r2.Scale(force/b.Mass(), dir))
	if dir != (r2.Vec{}) {
		b.SetHeading(dir)
	}
}

// Trap stops the ball dead, as when a player brings it under control.
func (b *Ball) Trap() {
	b.SetVelocity(r2.Vec{})
}

// PlaceAt teleports the ball to a position at rest. Used for kickoffs.
func (b *Ball) PlaceAt(pos r2.Vec) {
	b.SetPos(pos)
	b.oldPos = pos
	b.SetVelocity(r2.Vec{})
}

// Update advances the ball one tick: bounce off any wall about to be
// penetrated, then decelerate by friction. Once the speed drops to the
// friction magnitude the ball stops.
func (b *Ball) Update() {
	b.oldPos = b.Pos()

	b.testCollisionWithWalls()

	vel := b.Velocity()
	if r2.Norm2(vel) > b.friction*b.friction {
		vel = r2.Add(vel, r2.Scale(b.friction, geom.Normalize(vel)))
		b.SetVelocity(vel)
		b.SetPos(r2.Add(b.Pos(), vel))
		b.SetHeading(geom.Normalize(vel))
	} else if vel != (r2.Vec{}) {
		b.SetVelocity(r2.Vec{})
	}
}

// testCollisionWithWalls reflects the velocity about the normal of the
// closest wall the ball would cross this tick.
func (b *Ball) testCollisionWithWalls() {
	vel := b.Velocity()
	if vel == (r2.Vec{}) {
		return
	}

	closest := -1
	closestDepth := math.MaxFloat64

	for i, w := range b.walls {
		if r2.Dot(vel, w.N) >= 0 {
			continue // moving away from or along this wall
		}

		// Leading point of the ball, nearest the wall plane.
		lead := r2.Sub(b.Pos(), r2.Scale(b.BoundingRadius(), w.N))
		d0 := r2.Dot(r2.Sub(lead, w.From), w.N)
		d1 := r2.Dot(r2.Sub(r2.Add(lead, vel), w.From), w.N)
		if d0 < 0 || d1 >= 0 {
			continue // already behind, or not crossing this tick
		}

		// Crossing point must project onto the wall segment.
		s := d0 / (d0 - d1)
		cross := r2.Add(lead, r2.Scale(s, vel))
		seg := r2.Sub(w.To, w.From)
		t := r2.Dot(r2.Sub(cross, w.From), seg) / r2.Norm2(seg)
		if t < 0 || t > 1 {
			continue
		}

		if depth := -d1; depth < closestDepth {
			closestDepth = depth
			closest = i
		}
	}

	if closest >= 0 {
		n := b.walls[closest].N
		b.SetVelocity(r2.Sub(vel, r2.Scale(2*r2.Dot(vel, n), n)))
	}
}

// FuturePosition returns where the ball will be after the given number
// of ticks under friction, assuming no further contact.
func (b *Ball) FuturePosition(time float64) r2.Vec {
	// x = u*t + 1/2*a*t^2 along the direction of travel.
	ut := r2.Scale(time, b.Velocity())
	half := 0.5 * b.friction * time * time
	return r2.Add(r2.Add(b.Pos(), ut), r2.Scale(half, geom.Normalize(b.Velocity())))
}

// TimeToCoverDistance returns how many ticks the ball needs to travel
// from A to B when kicked with the given force, solving v^2 = u^2 + 2as
// for the arrival speed. It returns -1 when friction kills the ball
// before it arrives.
func (b *Ball) TimeToCoverDistance(from, to r2.Vec, force float64) float64 {
	speed := force / b.Mass()

	term := speed*speed + 2.0*geom.Distance(from, to)*b.friction
	if term <= 0 {
		return -1
	}

	v := math.Sqrt(term)
	// Both numerator and friction are negative, so time is positive.
	return (v - speed) / b.friction
}

package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/components"
	"github.com/pthm-cable/kickoff/geom"
)

// entityHandle is a non-owning handle into the ECS arena. The tactical
// layer (ball, players) holds one of these instead of back-pointers to
// component data; every access goes through the shared component maps.
type entityHandle struct {
	entity ecs.Entity

	pos  *ecs.Map1[components.Position]
	vel  *ecs.Map1[components.Velocity]
	head *ecs.Map1[components.Heading]
	phys *ecs.Map1[components.Physics]
}

// Entity returns the underlying ECS entity.
func (h entityHandle) Entity() ecs.Entity { return h.entity }

// Pos returns the world-space position.
func (h entityHandle) Pos() r2.Vec { return h.pos.Get(h.entity).Vec }

// SetPos moves the entity.
func (h entityHandle) SetPos(p r2.Vec) { h.pos.Get(h.entity).Vec = p }

// Velocity returns the world-space velocity.
func (h entityHandle) Velocity() r2.Vec { return h.vel.Get(h.entity).Vec }

// SetVelocity replaces the velocity.
func (h entityHandle) SetVelocity(v r2.Vec) { h.vel.Get(h.entity).Vec = v }

// Heading returns the unit facing vector.
func (h entityHandle) Heading() r2.Vec { return h.head.Get(h.entity).Facing }

// Side returns the perpendicular of the heading.
func (h entityHandle) Side() r2.Vec { return h.head.Get(h.entity).Side }

// SetHeading installs a new facing vector and keeps the side vector
// perpendicular to it. The argument must be unit length.
func (h entityHandle) SetHeading(facing r2.Vec) {
	hd := h.head.Get(h.entity)
	hd.Facing = facing
	hd.Side = geom.Perp(facing)
}

// Speed returns the velocity magnitude.
func (h entityHandle) Speed() float64 { return r2.Norm(h.vel.Get(h.entity).Vec) }

// Mass returns the entity mass.
func (h entityHandle) Mass() float64 { return h.phys.Get(h.entity).Mass }

// MaxSpeed returns the speed limit.
func (h entityHandle) MaxSpeed() float64 { return h.phys.Get(h.entity).MaxSpeed }

// SetMaxSpeed changes the speed limit; the player global state uses this
// to slow the ball carrier.
func (h entityHandle) SetMaxSpeed(v float64) { h.phys.Get(h.entity).MaxSpeed = v }

// MaxForce returns the steering force budget.
func (h entityHandle) MaxForce() float64 { return h.phys.Get(h.entity).MaxForce }

// MaxTurnRate returns the per-tick turn limit in radians.
func (h entityHandle) MaxTurnRate() float64 { return h.phys.Get(h.entity).MaxTurnRate }

// BoundingRadius returns the collision radius.
func (h entityHandle) BoundingRadius() float64 { return h.phys.Get(h.entity).BoundingRadius }

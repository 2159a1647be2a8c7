// Package components defines the ECS components shared by the ball and
// the player agents. The tactical layer holds ecs.Entity handles and
// reaches these through ecs.Map1 lookups; rendering reads them through
// filter queries and never mutates them.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Position is an agent's world-space position. Owned exclusively by the
// simulation; the renderer only reads it.
type Position struct {
	Vec r2.Vec
}

// Velocity is an agent's world-space velocity.
type Velocity struct {
	Vec r2.Vec
}

// Heading holds the agent's orthonormal local frame. Facing is a unit
// vector; Side is always its perpendicular.
type Heading struct {
	Facing r2.Vec
	Side   r2.Vec
}

// Physics holds the motion limits of an agent. After every integration
// step |velocity| <= MaxSpeed holds.
type Physics struct {
	Mass           float64
	MaxSpeed       float64
	MaxForce       float64
	MaxTurnRate    float64
	BoundingRadius float64
}

// BallTag marks the single ball entity.
type BallTag struct{}

// PlayerTag marks a player entity and records which side it plays for.
type PlayerTag struct {
	TeamColor int // 0 = red, 1 = blue; mirrors game.TeamColor
}

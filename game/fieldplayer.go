package game

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/fsm"
	"github.com/pthm-cable/kickoff/geom"
)

// brakingRate bleeds velocity off when no steering force is produced.
const brakingRate = 0.8

// FieldPlayer is an outfield player driven by its state machine. Motion
// follows the heading-frame model: the lateral component of the steering
// force turns the player, the forward component accelerates it.
type FieldPlayer struct {
	PlayerBase

	machine     *fsm.Machine[*FieldPlayer]
	kickLimiter *Regulator
}

// Machine returns the player's state machine.
func (p *FieldPlayer) Machine() *fsm.Machine[*FieldPlayer] { return p.machine }

// StateName returns the current state's name for logs and overlays.
func (p *FieldPlayer) StateName() string {
	if s, ok := p.machine.Current().(fmt.Stringer); ok {
		return s.String()
	}
	return "?"
}

// HandleMessage routes a telegram through the state machine.
func (p *FieldPlayer) HandleMessage(msg fsm.Telegram) bool {
	return p.machine.HandleMessage(msg)
}

// IsReadyForNextKick consumes a kick slot when the regulator allows one.
// Limiting kick frequency keeps a player from machine-gunning the ball
// on consecutive ticks.
func (p *FieldPlayer) IsReadyForNextKick() bool {
	return p.kickLimiter.Ready(p.Pitch().SimTime())
}

// Update runs one tick: state logic, steering, then integration.
func (p *FieldPlayer) Update(dt float64) {
	p.machine.Update()

	force := p.steer.Calculate(dt)

	vel := p.Velocity()
	if force == (r2.Vec{}) {
		vel = r2.Scale(brakingRate, vel)
	}

	// The lateral component of the force turns the player about its
	// axis, clamped to the turn-rate limit.
	turn := r2.Dot(force, p.Side())
	if maxTurn := p.MaxTurnRate(); turn > maxTurn {
		turn = maxTurn
	} else if turn < -maxTurn {
		turn = -maxTurn
	}
	p.SetHeading(geom.Rotate(p.Heading(), turn))

	// Velocity always points along the heading.
	heading := p.Heading()
	vel = r2.Scale(r2.Norm(vel), heading)

	// The forward component accelerates the player.
	accel := r2.Scale(r2.Dot(force, heading)/p.Mass(), heading)
	vel = geom.Truncate(r2.Add(vel, accel), p.MaxSpeed())

	p.SetVelocity(vel)
	p.SetPos(r2.Add(p.Pos(), vel))

	p.updateSmoothedHeading()
}

package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/config"
	"github.com/pthm-cable/kickoff/fsm"
	"github.com/pthm-cable/kickoff/geom"
	"github.com/pthm-cable/kickoff/steering"
)

// Role classifies a player's job within the team formation.
type Role int

const (
	RoleGoalKeeper Role = iota
	RoleAttacker
	RoleDefender
)

// String returns the role name for logs and the inspector.
func (r Role) String() string {
	switch r {
	case RoleGoalKeeper:
		return "goalkeeper"
	case RoleAttacker:
		return "attacker"
	case RoleDefender:
		return "defender"
	default:
		return "unknown"
	}
}

// Player is the common surface of field players and the goalkeeper. It
// extends the steering agent view with identity, messaging and the
// per-tick update.
type Player interface {
	steering.Agent
	fsm.Receiver

	Role() Role
	Base() *PlayerBase
	Update(dt float64)
	StateName() string
}

// PlayerBase carries the state shared by both player kinds. It embeds
// the ECS handle, so all physical accessors resolve to component data.
// Team and steering references are non-owning.
type PlayerBase struct {
	entityHandle

	id   int
	role Role
	team *Team

	steer *steering.Steering

	homeRegion    int
	defaultRegion int

	// Squared distance to the ball, refreshed by the team each tick
	// before any state logic runs.
	distSqToBall float64

	headingSmoother *Smoother
	smoothedHeading r2.Vec
}

// ID returns the player's dispatcher id, unique across both teams.
func (p *PlayerBase) ID() int { return p.id }

// Role returns the player's formation role.
func (p *PlayerBase) Role() Role { return p.role }

// Base returns the shared player state.
func (p *PlayerBase) Base() *PlayerBase { return p }

// Team returns the player's team.
func (p *PlayerBase) Team() *Team { return p.team }

// Pitch returns the hosting pitch.
func (p *PlayerBase) Pitch() *Pitch { return p.team.pitch }

// Ball returns the match ball.
func (p *PlayerBase) Ball() *Ball { return p.team.pitch.ball }

// Steering returns the player's steering engine.
func (p *PlayerBase) Steering() *steering.Steering { return p.steer }

// HomeRegion returns the player's current home region.
func (p *PlayerBase) HomeRegion() geom.Region {
	return p.team.pitch.RegionFromIndex(p.homeRegion)
}

// SetHomeRegion reassigns the home region; team states call this when
// switching formation.
func (p *PlayerBase) SetHomeRegion(id int) { p.homeRegion = id }

// SetDefaultHomeRegion restores the kickoff home region.
func (p *PlayerBase) SetDefaultHomeRegion() { p.homeRegion = p.defaultRegion }

// DistSqToBall returns the cached squared distance to the ball.
func (p *PlayerBase) DistSqToBall() float64 { return p.distSqToBall }

// SmoothedHeading returns the render-smoothed facing vector.
func (p *PlayerBase) SmoothedHeading() r2.Vec { return p.smoothedHeading }

// TrackBall turns the player (within the turn-rate limit) to face the ball.
func (p *PlayerBase) TrackBall() {
	p.RotateHeadingToFacePosition(p.Ball().Pos())
}

// TrackTarget turns the player to face the steering target.
func (p *PlayerBase) TrackTarget() {
	p.RotateHeadingToFacePosition(p.steer.Target())
}

// RotateHeadingToFacePosition rotates the heading toward the target by
// at most MaxTurnRate radians and reports whether the player is now
// facing it. The velocity rotates with the heading.
func (p *PlayerBase) RotateHeadingToFacePosition(target r2.Vec) bool {
	toTarget := geom.Normalize(r2.Sub(target, p.Pos()))
	if toTarget == (r2.Vec{}) {
		return true
	}

	heading := p.Heading()
	dot := r2.Dot(heading, toTarget)
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}

	angle := math.Acos(dot)
	if angle < 1e-5 {
		return true
	}
	if angle > p.MaxTurnRate() {
		angle = p.MaxTurnRate()
	}
	if r2.Cross(heading, toTarget) < 0 {
		angle = -angle
	}

	p.SetHeading(geom.Rotate(heading, angle))
	p.SetVelocity(geom.Rotate(p.Velocity(), angle))
	return false
}

// BallWithinKickingRange reports whether the ball is close enough to kick.
func (p *PlayerBase) BallWithinKickingRange() bool {
	reach := config.Cfg().Player.KickingDistance + p.Ball().BoundingRadius() + p.BoundingRadius()
	return geom.DistanceSq(p.Ball().Pos(), p.Pos()) < reach*reach
}

// BallWithinReceivingRange reports whether the ball is close enough to
// be considered under control.
func (p *PlayerBase) BallWithinReceivingRange() bool {
	r := config.Cfg().Player.ReceivingRange
	return geom.DistanceSq(p.Pos(), p.Ball().Pos()) < r*r
}

// AtTarget reports whether the player has reached the steering target.
func (p *PlayerBase) AtTarget() bool {
	r := config.Cfg().Player.SupportRange
	return geom.DistanceSq(p.Pos(), p.steer.Target()) < r*r
}

// AtHome reports whether the player is within home range of the home
// region center. Used off the ball, when regions alone are too coarse.
func (p *PlayerBase) AtHome() bool {
	r := config.Cfg().Player.HomeRange
	return geom.DistanceSq(p.Pos(), p.HomeRegion().Center()) < r*r
}

// InHomeRegion reports whether the player stands in its home region.
// Field players use the shrunk half-size test; the keeper the full one.
func (p *PlayerBase) InHomeRegion() bool {
	mod := geom.HalfSize
	if p.role == RoleGoalKeeper {
		mod = geom.Normal
	}
	return p.HomeRegion().Inside(p.Pos(), mod)
}

// InHotRegion reports whether the player is within the attacking third.
func (p *PlayerBase) InHotRegion() bool {
	return math.Abs(p.Pos().X-p.team.OpponentsGoal().Center().X) <
		p.Pitch().PlayingArea().Length()/3.0
}

// IsClosestTeamMemberToBall reports whether no teammate is nearer the ball.
func (p *PlayerBase) IsClosestTeamMemberToBall() bool {
	return p.team.PlayerClosestToBall() != nil && p.team.PlayerClosestToBall().Base() == p
}

// IsClosestPlayerOnPitchToBall reports whether no player on either team
// is nearer the ball.
func (p *PlayerBase) IsClosestPlayerOnPitchToBall() bool {
	return p.IsClosestTeamMemberToBall() &&
		p.distSqToBall < p.team.Opponents().ClosestDistSqToBall()
}

// IsControllingPlayer reports whether this player controls the ball.
func (p *PlayerBase) IsControllingPlayer() bool {
	cp := p.team.ControllingPlayer()
	return cp != nil && cp.Base() == p
}

// IsAheadOfAttacker reports whether the player is closer to the opponent
// goal than the current ball carrier.
func (p *PlayerBase) IsAheadOfAttacker() bool {
	cp := p.team.ControllingPlayer()
	if cp == nil {
		return false
	}
	goalX := p.team.OpponentsGoal().Center().X
	return math.Abs(p.Pos().X-goalX) < math.Abs(cp.Pos().X-goalX)
}

// PositionInFrontOfPlayer reports whether a point lies in the half-plane
// the player is facing.
func (p *PlayerBase) PositionInFrontOfPlayer(pos r2.Vec) bool {
	return r2.Dot(r2.Sub(pos, p.Pos()), p.Heading()) > 0
}

// IsThreatened reports whether an opponent is inside the comfort zone
// and in front of the player.
func (p *PlayerBase) IsThreatened() bool {
	zone := config.Cfg().Player.ComfortZone
	for _, opp := range p.team.Opponents().Players() {
		if p.PositionInFrontOfPlayer(opp.Pos()) &&
			geom.DistanceSq(p.Pos(), opp.Pos()) < zone*zone {
			return true
		}
	}
	return false
}

// FindSupport makes sure the best-placed attacker is making a supporting
// run, messaging the new choice (and releasing the old one) when it
// changes.
func (p *PlayerBase) FindSupport() {
	team := p.team
	best := team.DetermineBestSupportingAttacker()
	if best == nil {
		return
	}

	current := team.SupportingPlayer()
	if current == nil {
		team.SetSupportingPlayer(best)
		p.Pitch().Dispatcher().Dispatch(p.id, best.ID(), fsm.MsgSupportAttacker, nil)
		return
	}

	if best != current {
		p.Pitch().Dispatcher().Dispatch(p.id, current.ID(), fsm.MsgGoHome, nil)
		team.SetSupportingPlayer(best)
		p.Pitch().Dispatcher().Dispatch(p.id, best.ID(), fsm.MsgSupportAttacker, nil)
	}
}

// updateSmoothedHeading feeds the render smoother after integration.
func (p *PlayerBase) updateSmoothedHeading() {
	p.smoothedHeading = p.headingSmoother.Update(p.Heading())
}

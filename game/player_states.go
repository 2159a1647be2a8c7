package game

import (
	"log/slog"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/config"
	"github.com/pthm-cable/kickoff/fsm"
	"github.com/pthm-cable/kickoff/geom"
	"github.com/pthm-cable/kickoff/steering"
)

// Field-player states are stateless singletons: one instance serves
// every player on the pitch. All context arrives through the owner.
var (
	PlayerGlobal       = &playerGlobal{}
	Wait               = &waitState{}
	ChaseBall          = &chaseBall{}
	KickBall           = &kickBall{}
	Dribble            = &dribble{}
	SupportAttacker    = &supportAttacker{}
	ReceiveBall        = &receiveBall{}
	ReturnToHomeRegion = &returnToHomeRegion{}
)

// addNoiseToKick perturbs a kick target within a cone whose aperture is
// controlled by the accuracy parameter (1.0 = perfect aim).
func addNoiseToKick(rng *rand.Rand, ballPos, target r2.Vec) r2.Vec {
	displacement := (math.Pi - math.Pi*config.Cfg().Player.KickAccuracy) *
		(rng.Float64() - rng.Float64())
	return r2.Add(geom.Rotate(r2.Sub(target, ballPos), displacement), ballPos)
}

// --- global state ---

// playerGlobal runs every tick before the current state and handles the
// whole message vocabulary on behalf of the player.
type playerGlobal struct{}

func (playerGlobal) String() string       { return "Global" }
func (playerGlobal) Enter(p *FieldPlayer) {}
func (playerGlobal) Exit(p *FieldPlayer)  {}

func (playerGlobal) Execute(p *FieldPlayer) {
	// Carrying the ball slows a player down.
	cfg := config.Cfg()
	if p.BallWithinReceivingRange() && p.IsControllingPlayer() {
		p.SetMaxSpeed(cfg.Player.MaxSpeedWithBall)
	} else {
		p.SetMaxSpeed(cfg.Player.MaxSpeedWithoutBall)
	}
}

func (playerGlobal) OnMessage(p *FieldPlayer, msg fsm.Telegram) bool {
	switch msg.Kind {
	case fsm.MsgReceiveBall:
		p.Steering().SetTarget(msg.Info.(r2.Vec))
		p.Machine().ChangeState(ReceiveBall)
		return true

	case fsm.MsgSupportAttacker:
		if p.Machine().InState(SupportAttacker) {
			return true
		}
		p.Steering().SetTarget(p.Team().SupportSpot())
		p.Machine().ChangeState(SupportAttacker)
		return true

	case fsm.MsgGoHome:
		p.SetDefaultHomeRegion()
		p.Machine().ChangeState(ReturnToHomeRegion)
		return true

	case fsm.MsgWait:
		p.Machine().ChangeState(Wait)
		return true

	case fsm.MsgPassToMe:
		requester := msg.Info.(*FieldPlayer)

		// The pass can only be made if no other receiver is assigned
		// and the ball is actually at this player's feet.
		if p.Team().Receiver() != nil || !p.BallWithinKickingRange() {
			return true
		}

		ball := p.Ball()
		ball.Kick(r2.Sub(requester.Pos(), ball.Pos()), config.Cfg().Team.MaxPassingForce)
		p.Pitch().notePass(p.Team().Color())

		p.Pitch().Dispatcher().Dispatch(p.ID(), requester.ID(), fsm.MsgReceiveBall, requester.Pos())

		p.Machine().ChangeState(Wait)
		p.FindSupport()
		return true
	}
	return false
}

// --- wait ---

// waitState parks the player at the steering target, facing the ball,
// until there is something to do.
type waitState struct{}

func (waitState) String() string { return "Wait" }

func (waitState) Enter(p *FieldPlayer) {
	// When entered without an explicit target, hold the current spot.
	if p.Steering().Target() == (r2.Vec{}) {
		p.Steering().SetTarget(p.Pos())
	}
}

func (waitState) Execute(p *FieldPlayer) {
	// Jostled out of position: get back first.
	if !p.AtTarget() {
		p.Steering().On(steering.Arrive)
		return
	}
	p.Steering().Off(steering.Arrive)
	p.SetVelocity(r2.Vec{})
	p.TrackBall()

	// Ahead of the ball carrier with the team in control: ask for it.
	if p.Team().InControl() && !p.IsControllingPlayer() && p.IsAheadOfAttacker() {
		p.Team().RequestPass(p)
		return
	}

	if p.Pitch().GameOn() &&
		p.IsClosestTeamMemberToBall() &&
		p.Team().Receiver() == nil &&
		!p.Pitch().GoalKeeperHasBall() {
		p.Machine().ChangeState(ChaseBall)
	}
}

func (waitState) Exit(p *FieldPlayer) {}

func (waitState) OnMessage(*FieldPlayer, fsm.Telegram) bool { return false }

// --- chase ball ---

type chaseBall struct{}

func (chaseBall) String() string { return "ChaseBall" }

func (chaseBall) Enter(p *FieldPlayer) {
	p.Steering().On(steering.Seek)
	p.Steering().SetTarget(p.Ball().Pos())
}

func (chaseBall) Execute(p *FieldPlayer) {
	if p.BallWithinKickingRange() {
		p.Machine().ChangeState(KickBall)
		return
	}

	if p.IsClosestTeamMemberToBall() {
		p.Steering().SetTarget(p.Ball().Pos())
		return
	}

	// Someone else is closer now; fall back.
	p.Machine().ChangeState(ReturnToHomeRegion)
}

func (chaseBall) Exit(p *FieldPlayer) {
	p.Steering().Off(steering.Seek)
}

func (chaseBall) OnMessage(*FieldPlayer, fsm.Telegram) bool { return false }

// --- kick ball ---

// kickBall decides, in one tick, whether to shoot, pass or dribble.
type kickBall struct{}

func (kickBall) String() string { return "KickBall" }

func (kickBall) Enter(p *FieldPlayer) {
	p.Team().SetControllingPlayer(p)

	if !p.IsReadyForNextKick() {
		p.Machine().ChangeState(ChaseBall)
	}
}

func (kickBall) Execute(p *FieldPlayer) {
	cfg := config.Cfg()
	ball := p.Ball()
	team := p.Team()
	rng := team.rng

	toBall := r2.Sub(ball.Pos(), p.Pos())
	dot := r2.Dot(p.Heading(), geom.Normalize(toBall))

	// Cannot kick: a receiver is already assigned, the keeper holds the
	// ball, or the ball is behind the player.
	if team.Receiver() != nil || p.Pitch().GoalKeeperHasBall() || dot < 0 {
		p.Machine().ChangeState(ChaseBall)
		return
	}

	// Attempt a shot. Power scales with how squarely the ball is faced.
	power := cfg.Team.MaxShootingForce * dot
	if target, ok := team.CanShoot(ball.Pos(), power); ok ||
		rng.Float64() < cfg.Player.ChanceOfPotShot {
		if !ok {
			// Pot shot: aim for the middle and hope.
			target = team.OpponentsGoal().Center()
		}
		target = addNoiseToKick(rng, ball.Pos(), target)
		ball.Kick(r2.Sub(target, ball.Pos()), power)
		p.Pitch().noteShot(team.Color())

		p.Machine().ChangeState(Wait)
		p.FindSupport()
		return
	}

	// Attempt a pass, but only under pressure.
	power = cfg.Team.MaxPassingForce * dot
	if p.IsThreatened() {
		if receiver, target, ok := team.FindPass(p, power, cfg.Team.MinPassDistance); ok {
			target = addNoiseToKick(rng, ball.Pos(), target)
			ball.Kick(r2.Sub(target, ball.Pos()), power)
			p.Pitch().notePass(team.Color())

			p.Pitch().Dispatcher().Dispatch(p.ID(), receiver.ID(), fsm.MsgReceiveBall, target)

			p.Machine().ChangeState(Wait)
			p.FindSupport()
			return
		}
	}

	// Nothing on: keep the ball moving.
	p.FindSupport()
	p.Machine().ChangeState(Dribble)
}

func (kickBall) Exit(p *FieldPlayer) {}

func (kickBall) OnMessage(*FieldPlayer, fsm.Telegram) bool { return false }

// --- dribble ---

type dribble struct{}

func (dribble) String() string { return "Dribble" }

func (dribble) Enter(p *FieldPlayer) {
	p.Team().SetControllingPlayer(p)
}

func (dribble) Execute(p *FieldPlayer) {
	cfg := config.Cfg()
	downfield := p.Team().HomeGoal().Facing()

	if r2.Dot(downfield, p.Heading()) < 0 {
		// Facing the wrong way: nudge the ball through a quarter turn in
		// whichever direction brings the heading around faster.
		angle := math.Pi / 4
		if r2.Cross(p.Heading(), downfield) < 0 {
			angle = -angle
		}
		p.Ball().Kick(geom.Rotate(p.Heading(), angle), cfg.Team.MaxDribbleForce*0.5)
	} else {
		p.Ball().Kick(downfield, cfg.Team.MaxDribbleForce)
	}

	// The ball has moved on; go get it again.
	p.Machine().ChangeState(ChaseBall)
}

func (dribble) Exit(p *FieldPlayer) {}

func (dribble) OnMessage(*FieldPlayer, fsm.Telegram) bool { return false }

// --- support attacker ---

type supportAttacker struct{}

func (supportAttacker) String() string { return "SupportAttacker" }

func (supportAttacker) Enter(p *FieldPlayer) {
	p.Steering().On(steering.Arrive)
	p.Steering().SetTarget(p.Team().SupportSpot())
}

func (supportAttacker) Execute(p *FieldPlayer) {
	if !p.Team().InControl() {
		p.Machine().ChangeState(ReturnToHomeRegion)
		return
	}

	// Chase the support spot as it migrates.
	if spot := p.Team().SupportSpot(); spot != p.Steering().Target() {
		p.Steering().SetTarget(spot)
		p.Steering().On(steering.Arrive)
	}

	// A clear sight of goal is worth interrupting the attacker for.
	if _, ok := p.Team().CanShoot(p.Pos(), config.Cfg().Team.MaxShootingForce); ok {
		p.Team().RequestPass(p)
	}

	if p.AtTarget() {
		p.Steering().Off(steering.Arrive)
		p.TrackBall()
		p.SetVelocity(r2.Vec{})

		if !p.IsThreatened() {
			p.Team().RequestPass(p)
		}
	}
}

func (supportAttacker) Exit(p *FieldPlayer) {
	p.Team().SetSupportingPlayer(nil)
	p.Steering().Off(steering.Arrive)
}

func (supportAttacker) OnMessage(*FieldPlayer, fsm.Telegram) bool { return false }

// --- receive ball ---

// receiveBall moves the player onto the end of a pass, either by
// arriving at the announced target or by pursuing the ball directly.
type receiveBall struct{}

func (receiveBall) String() string { return "ReceiveBall" }

func (receiveBall) Enter(p *FieldPlayer) {
	cfg := config.Cfg()
	team := p.Team()

	team.SetReceiver(p)
	team.SetControllingPlayer(p)

	// In the hot region a receiver always chases the ball down; elsewhere
	// arrive is an option when no opponent threatens the pass target.
	threat := cfg.Team.PassThreatRadius
	useArrive := !p.InHotRegion() &&
		team.rng.Float64() < cfg.Player.ChanceOfArriveReceive &&
		!team.IsOpponentWithinRadius(p.Pos(), threat)

	if useArrive {
		p.Steering().On(steering.Arrive)
	} else {
		p.Steering().SetTargetAgent(p.Ball())
		p.Steering().On(steering.Pursuit)
	}
}

func (receiveBall) Execute(p *FieldPlayer) {
	if p.BallWithinReceivingRange() || !p.Team().InControl() {
		p.Team().SetReceiver(nil)
		p.Machine().ChangeState(ChaseBall)
		return
	}

	if p.AtTarget() {
		p.Steering().Off(steering.Arrive)
		p.Steering().Off(steering.Pursuit)
		p.TrackBall()
		p.SetVelocity(r2.Vec{})
	}
}

func (receiveBall) Exit(p *FieldPlayer) {
	p.Steering().Off(steering.Arrive)
	p.Steering().Off(steering.Pursuit)
}

func (receiveBall) OnMessage(*FieldPlayer, fsm.Telegram) bool { return false }

// --- return to home region ---

type returnToHomeRegion struct{}

func (returnToHomeRegion) String() string { return "ReturnToHomeRegion" }

func (returnToHomeRegion) Enter(p *FieldPlayer) {
	p.Steering().On(steering.Arrive)
	if !p.HomeRegion().Inside(p.Steering().Target(), geom.HalfSize) {
		p.Steering().SetTarget(p.HomeRegion().Center())
	}
}

func (returnToHomeRegion) Execute(p *FieldPlayer) {
	if p.Pitch().GameOn() {
		if p.IsClosestTeamMemberToBall() &&
			p.Team().Receiver() == nil &&
			!p.Pitch().GoalKeeperHasBall() {
			p.Machine().ChangeState(ChaseBall)
			return
		}

		if p.HomeRegion().Inside(p.Pos(), geom.HalfSize) {
			p.Steering().SetTarget(p.Pos())
			p.Machine().ChangeState(Wait)
		}
		return
	}

	// Between kickoffs the player must reach the region center proper.
	if p.AtHome() {
		p.Steering().SetTarget(p.Pos())
		p.Machine().ChangeState(Wait)
	}
}

func (returnToHomeRegion) Exit(p *FieldPlayer) {
	p.Steering().Off(steering.Arrive)
}

func (returnToHomeRegion) OnMessage(*FieldPlayer, fsm.Telegram) bool { return false }

// logTransition is used by the keeper and team states; field player
// transitions are too frequent to be worth logging individually.
func logTransition(kind string, id int, to string) {
	slog.Debug("state change", "kind", kind, "id", id, "to", to)
}

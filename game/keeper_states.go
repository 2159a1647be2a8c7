package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/config"
	"github.com/pthm-cable/kickoff/fsm"
	"github.com/pthm-cable/kickoff/geom"
	"github.com/pthm-cable/kickoff/steering"
)

// Keeper states, singletons like the field-player ones.
var (
	KeeperGlobal      = &keeperGlobal{}
	TendGoal          = &tendGoal{}
	InterceptBall     = &interceptBall{}
	ReturnHome        = &returnHome{}
	PutBallBackInPlay = &putBallBackInPlay{}
)

// --- global state ---

type keeperGlobal struct{}

func (keeperGlobal) String() string        { return "Global" }
func (keeperGlobal) Enter(k *GoalKeeper)   {}
func (keeperGlobal) Execute(k *GoalKeeper) {}
func (keeperGlobal) Exit(k *GoalKeeper)    {}

func (keeperGlobal) OnMessage(k *GoalKeeper, msg fsm.Telegram) bool {
	switch msg.Kind {
	case fsm.MsgGoHome:
		k.SetDefaultHomeRegion()
		k.Machine().ChangeState(ReturnHome)
		return true

	case fsm.MsgReceiveBall:
		k.Machine().ChangeState(InterceptBall)
		return true
	}
	return false
}

// --- tend goal ---

// tendGoal slides the keeper along an arc in front of the goal mouth,
// always interposed between the ball and the screened goal-line point.
type tendGoal struct{}

func (tendGoal) String() string { return "TendGoal" }

func (tendGoal) Enter(k *GoalKeeper) {
	k.Steering().On(steering.Arrive)
	k.Steering().SetDeceleration(steering.DecelerateFast)
	k.Steering().SetTarget(k.interposeSpot(k.RearInterposeTarget()))
}

func (tendGoal) Execute(k *GoalKeeper) {
	// The screened point moves with the ball, so re-aim every tick.
	k.Steering().SetTarget(k.interposeSpot(k.RearInterposeTarget()))

	if k.BallWithinKeeperRange() {
		k.Ball().Trap()
		k.Pitch().SetGoalKeeperHasBall(true)
		logTransition("keeper", k.ID(), "PutBallBackInPlay")
		k.Machine().ChangeState(PutBallBackInPlay)
		return
	}

	if k.BallWithinRangeForIntercept() && !k.Team().InControl() {
		k.Machine().ChangeState(InterceptBall)
		return
	}

	// With the ball safely upfield, drift back onto the line.
	if k.TooFarFromGoalMouth() && k.Team().InControl() {
		k.Machine().ChangeState(ReturnHome)
	}
}

func (tendGoal) Exit(k *GoalKeeper) {
	k.Steering().Off(steering.Arrive)
	k.Steering().SetDeceleration(steering.DecelerateNormal)
}

func (tendGoal) OnMessage(*GoalKeeper, fsm.Telegram) bool { return false }

// interposeSpot returns the point at tending distance from the screened
// goal-line point, along the line to the ball.
func (k *GoalKeeper) interposeSpot(rear r2.Vec) r2.Vec {
	toBall := geom.Normalize(r2.Sub(k.Ball().Pos(), rear))
	return r2.Add(rear, r2.Scale(config.Cfg().GoalKeeper.TendingDistance, toBall))
}

// --- intercept ball ---

type interceptBall struct{}

func (interceptBall) String() string { return "InterceptBall" }

func (interceptBall) Enter(k *GoalKeeper) {
	k.Steering().SetTargetAgent(k.Ball())
	k.Steering().On(steering.Pursuit)
}

func (interceptBall) Execute(k *GoalKeeper) {
	// Abandon the chase if it pulls the keeper too far out, unless the
	// keeper is the closest player on the pitch to the ball.
	if k.TooFarFromGoalMouth() && !k.IsClosestPlayerOnPitchToBall() {
		k.Machine().ChangeState(ReturnHome)
		return
	}

	if k.BallWithinKeeperRange() {
		k.Ball().Trap()
		k.Pitch().SetGoalKeeperHasBall(true)
		logTransition("keeper", k.ID(), "PutBallBackInPlay")
		k.Machine().ChangeState(PutBallBackInPlay)
	}
}

func (interceptBall) Exit(k *GoalKeeper) {
	k.Steering().Off(steering.Pursuit)
}

func (interceptBall) OnMessage(*GoalKeeper, fsm.Telegram) bool { return false }

// --- return home ---

type returnHome struct{}

func (returnHome) String() string { return "ReturnHome" }

func (returnHome) Enter(k *GoalKeeper) {
	k.Steering().On(steering.Arrive)
}

func (returnHome) Execute(k *GoalKeeper) {
	k.Steering().SetTarget(k.HomeRegion().Center())

	if k.InHomeRegion() || !k.Pitch().GameOn() {
		k.Machine().ChangeState(TendGoal)
	}
}

func (returnHome) Exit(k *GoalKeeper) {
	k.Steering().Off(steering.Arrive)
}

func (returnHome) OnMessage(*GoalKeeper, fsm.Telegram) bool { return false }

// --- put ball back in play ---

// putBallBackInPlay clears the pitch and waits for a safe pass to open
// up. Everyone is sent home; field players that arrive drop into Wait.
type putBallBackInPlay struct{}

func (putBallBackInPlay) String() string { return "PutBallBackInPlay" }

func (putBallBackInPlay) Enter(k *GoalKeeper) {
	k.Team().SetControllingPlayer(k)

	k.Team().ReturnAllFieldPlayersHome()
	k.Team().Opponents().ReturnAllFieldPlayersHome()
}

func (putBallBackInPlay) Execute(k *GoalKeeper) {
	cfg := config.Cfg()

	receiver, target, ok := k.Team().FindPass(k,
		cfg.Team.MaxPassingForce, cfg.GoalKeeper.MinPassDistance)
	if ok {
		ball := k.Ball()
		ball.Kick(geom.Normalize(r2.Sub(target, ball.Pos())), cfg.Team.MaxPassingForce)
		k.Pitch().SetGoalKeeperHasBall(false)
		k.Pitch().notePass(k.Team().Color())

		k.Pitch().Dispatcher().Dispatch(k.ID(), receiver.ID(), fsm.MsgReceiveBall, target)

		k.Machine().ChangeState(TendGoal)
		return
	}

	k.SetVelocity(r2.Vec{})
}

func (putBallBackInPlay) Exit(k *GoalKeeper) {}

func (putBallBackInPlay) OnMessage(*GoalKeeper, fsm.Telegram) bool { return false }

package game

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/config"
	"github.com/pthm-cable/kickoff/fsm"
	"github.com/pthm-cable/kickoff/geom"
)

// GoalKeeper is the last line of defense. Unlike field players the
// keeper integrates the raw steering force and always keeps its heading
// locked on the ball, so its local frame is ball-relative.
type GoalKeeper struct {
	PlayerBase

	machine *fsm.Machine[*GoalKeeper]
}

// Machine returns the keeper's state machine.
func (k *GoalKeeper) Machine() *fsm.Machine[*GoalKeeper] { return k.machine }

// StateName returns the current state's name for logs and overlays.
func (k *GoalKeeper) StateName() string {
	if s, ok := k.machine.Current().(fmt.Stringer); ok {
		return s.String()
	}
	return "?"
}

// HandleMessage routes a telegram through the state machine.
func (k *GoalKeeper) HandleMessage(msg fsm.Telegram) bool {
	return k.machine.HandleMessage(msg)
}

// Update runs one tick of keeper logic and physics.
func (k *GoalKeeper) Update(dt float64) {
	k.machine.Update()

	force := k.steer.Calculate(dt)

	accel := r2.Scale(1/k.Mass(), force)
	vel := geom.Truncate(r2.Add(k.Velocity(), accel), k.MaxSpeed())
	k.SetVelocity(vel)
	k.SetPos(r2.Add(k.Pos(), vel))

	// The keeper always faces the ball so the goal mouth stays covered.
	if look := geom.Normalize(r2.Sub(k.Ball().Pos(), k.Pos())); look != (r2.Vec{}) {
		k.SetHeading(look)
	}

	k.updateSmoothedHeading()
}

// BallWithinKeeperRange reports whether the ball can be trapped.
func (k *GoalKeeper) BallWithinKeeperRange() bool {
	r := config.Cfg().GoalKeeper.InBallRange
	return geom.DistanceSq(k.Pos(), k.Ball().Pos()) < r*r
}

// BallWithinRangeForIntercept reports whether the ball is close enough
// to the home goal to be worth leaving the line for.
func (k *GoalKeeper) BallWithinRangeForIntercept() bool {
	r := config.Cfg().GoalKeeper.InterceptRange
	return geom.DistanceSq(k.team.HomeGoal().Center(), k.Ball().Pos()) <= r*r
}

// TooFarFromGoalMouth reports whether the keeper has strayed beyond the
// intercept range of its tending position.
func (k *GoalKeeper) TooFarFromGoalMouth() bool {
	r := config.Cfg().GoalKeeper.InterceptRange
	return geom.DistanceSq(k.Pos(), k.RearInterposeTarget()) > r*r
}

// RearInterposeTarget returns the point on the goal line the keeper
// should screen: the goal mouth position corresponding to the ball's
// vertical position on the pitch.
func (k *GoalKeeper) RearInterposeTarget() r2.Vec {
	goal := k.team.HomeGoal()
	area := k.Pitch().PlayingArea()
	goalWidth := goal.BottomPost().Y - goal.TopPost().Y

	y := area.Center().Y - goalWidth*0.5 +
		(k.Ball().Pos().Y*goalWidth)/area.Height()

	return r2.Vec{X: goal.Center().X, Y: y}
}

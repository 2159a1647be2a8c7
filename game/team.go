package game

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/config"
	"github.com/pthm-cable/kickoff/fsm"
	"github.com/pthm-cable/kickoff/geom"
	"github.com/pthm-cable/kickoff/steering"
)

// TeamColor identifies a side. Red defends the left goal, blue the right.
type TeamColor int

const (
	Red TeamColor = iota
	Blue
)

// String returns the color name.
func (c TeamColor) String() string {
	if c == Red {
		return "red"
	}
	return "blue"
}

// teamSize is the number of players per side, keeper included.
const teamSize = 5

// Home region sets per formation. Region ids are column-major
// (id = col*rows + row) on the 6x3 grid; player order is keeper,
// attacker, attacker, defender, defender.
var (
	defendingRegions = map[TeamColor][teamSize]int{
		Red:  {1, 6, 8, 3, 5},
		Blue: {16, 9, 11, 12, 14},
	}
	attackingRegions = map[TeamColor][teamSize]int{
		Red:  {1, 12, 14, 6, 4},
		Blue: {16, 3, 5, 9, 13},
	}
)

// Team owns five players and the tactical decisions they share. The key
// player references (controlling, supporting, receiving, closest) are
// non-owning and recomputed or reset as play develops.
type Team struct {
	pitch *Pitch
	color TeamColor
	rng   *rand.Rand

	players []Player
	keeper  *GoalKeeper

	homeGoal      *Goal
	opponentsGoal *Goal
	opponents     *Team

	machine *fsm.Machine[*Team]
	spots   *SupportSpotCalculator

	controllingPlayer     Player
	supportingPlayer      Player
	receivingPlayer       Player
	playerClosestToBall   Player
	distSqToBallOfClosest float64
}

func newTeam(pitch *Pitch, color TeamColor, homeGoal, opponentsGoal *Goal) *Team {
	t := &Team{
		pitch:         pitch,
		color:         color,
		rng:           pitch.rng,
		homeGoal:      homeGoal,
		opponentsGoal: opponentsGoal,
	}
	t.machine = fsm.New(t)
	t.createPlayers()
	t.spots = newSupportSpotCalculator(
		config.Cfg().SupportSpots.NumX, config.Cfg().SupportSpots.NumY, t)
	return t
}

// createPlayers spawns the five player entities at their kickoff homes.
func (t *Team) createPlayers() {
	cfg := config.Cfg()
	regions := defendingRegions[t.color]
	roles := [teamSize]Role{RoleGoalKeeper, RoleAttacker, RoleAttacker, RoleDefender, RoleDefender}

	params := steering.DefaultParams()
	params.ViewDistance = cfg.Player.ViewDistance
	params.WeightSeparation = cfg.Steering.SeparationCoefficient
	params.WanderJitter = cfg.Steering.WanderJitter
	params.WanderRadius = cfg.Steering.WanderRadius
	params.WanderDistance = cfg.Steering.WanderDistance
	params.FeelerLength = cfg.Steering.FeelerLength

	for i := 0; i < teamSize; i++ {
		home := regions[i]
		spawn := t.pitch.RegionFromIndex(home).Center()

		base := PlayerBase{
			entityHandle:    t.pitch.spawnPlayer(t.color, spawn, r2.Scale(-1, t.opponentsGoal.Facing())),
			id:              int(t.color)*teamSize + i + 1,
			role:            roles[i],
			team:            t,
			homeRegion:      home,
			defaultRegion:   home,
			headingSmoother: NewSmoother(10),
		}
		base.smoothedHeading = base.Heading()

		if roles[i] == RoleGoalKeeper {
			k := &GoalKeeper{PlayerBase: base}
			k.steer = steering.New(k, t.pitch, t.rng, params)
			k.machine = fsm.New(k)
			k.machine.SetGlobal(KeeperGlobal)
			k.machine.ChangeState(TendGoal)
			t.keeper = k
			t.players = append(t.players, k)
		} else {
			p := &FieldPlayer{
				PlayerBase:  base,
				kickLimiter: NewRegulator(cfg.Player.KickFrequency),
			}
			p.steer = steering.New(p, t.pitch, t.rng, params)
			p.steer.On(steering.Separation)
			p.machine = fsm.New(p)
			p.machine.SetGlobal(PlayerGlobal)
			p.machine.ChangeState(Wait)
			t.players = append(t.players, p)
		}
	}
}

// Color returns the team color.
func (t *Team) Color() TeamColor { return t.color }

// Players returns the team's players, keeper first.
func (t *Team) Players() []Player { return t.players }

// Keeper returns the team's goalkeeper.
func (t *Team) Keeper() *GoalKeeper { return t.keeper }

// HomeGoal returns the goal this team defends.
func (t *Team) HomeGoal() *Goal { return t.homeGoal }

// OpponentsGoal returns the goal this team attacks.
func (t *Team) OpponentsGoal() *Goal { return t.opponentsGoal }

// Opponents returns the other team.
func (t *Team) Opponents() *Team { return t.opponents }

// setOpponents links the two teams after construction.
func (t *Team) setOpponents(o *Team) { t.opponents = o }

// Machine returns the team's state machine.
func (t *Team) Machine() *fsm.Machine[*Team] { return t.machine }

// StateName returns the current team state name.
func (t *Team) StateName() string {
	type namer interface{ String() string }
	if s, ok := t.machine.Current().(namer); ok {
		return s.String()
	}
	return "?"
}

// InControl reports whether this team controls the ball.
func (t *Team) InControl() bool { return t.controllingPlayer != nil }

// ControllingPlayer returns the ball carrier, or nil.
func (t *Team) ControllingPlayer() Player { return t.controllingPlayer }

// SetControllingPlayer records possession and strips it from the
// opponents.
func (t *Team) SetControllingPlayer(p Player) {
	t.controllingPlayer = p
	if p != nil && t.opponents != nil {
		t.opponents.LostControl()
	}
}

// LostControl clears the controlling player.
func (t *Team) LostControl() { t.controllingPlayer = nil }

// SupportingPlayer returns the player making a supporting run, or nil.
func (t *Team) SupportingPlayer() Player { return t.supportingPlayer }

// SetSupportingPlayer records the supporting player.
func (t *Team) SetSupportingPlayer(p Player) { t.supportingPlayer = p }

// Receiver returns the player a pass is addressed to, or nil.
func (t *Team) Receiver() Player { return t.receivingPlayer }

// SetReceiver records the pass receiver.
func (t *Team) SetReceiver(p Player) { t.receivingPlayer = p }

// PlayerClosestToBall returns the teammate nearest the ball this tick.
func (t *Team) PlayerClosestToBall() Player { return t.playerClosestToBall }

// ClosestDistSqToBall returns the squared distance of the nearest
// teammate to the ball.
func (t *Team) ClosestDistSqToBall() float64 { return t.distSqToBallOfClosest }

// SupportSpot returns the current best supporting spot.
func (t *Team) SupportSpot() r2.Vec { return t.spots.BestSupportingSpot() }

// SupportSpots returns the scored spot grid for overlays.
func (t *Team) SupportSpots() []SupportSpot { return t.spots.Spots() }

// Update runs one tick of team logic followed by every player's update.
func (t *Team) Update(dt float64) {
	t.calculateClosestPlayerToBall()
	t.machine.Update()
	for _, p := range t.players {
		p.Update(dt)
	}
}

// calculateClosestPlayerToBall refreshes each player's cached distance
// to the ball and the team-level closest pointer.
func (t *Team) calculateClosestPlayerToBall() {
	ballPos := t.pitch.ball.Pos()
	closest := math.MaxFloat64
	t.playerClosestToBall = nil

	for _, p := range t.players {
		d := geom.DistanceSq(p.Pos(), ballPos)
		p.Base().distSqToBall = d
		if d < closest {
			closest = d
			t.playerClosestToBall = p
		}
	}
	t.distSqToBallOfClosest = closest
}

// IsOpponentWithinRadius reports whether any opponent is within radius
// of the given position.
func (t *Team) IsOpponentWithinRadius(pos r2.Vec, radius float64) bool {
	for _, opp := range t.opponents.players {
		if geom.DistanceSq(pos, opp.Pos()) < radius*radius {
			return true
		}
	}
	return false
}

// isPassSafeFromOpponent tests a single opponent against a pass from
// 'from' to 'target'. The test runs in the local frame of the pass
// direction; an opponent behind the kick point is always safe.
func (t *Team) isPassSafeFromOpponent(from, target r2.Vec, receiver Player, opp Player, passingForce float64) bool {
	toTarget := geom.Normalize(r2.Sub(target, from))
	localOpp := geom.PointToLocalSpace(opp.Pos(), toTarget, geom.Perp(toTarget), from)

	// The ball leaves faster than any player can run, so a trailing
	// opponent can never catch it.
	if localOpp.X < 0 {
		return true
	}

	// Opponent beyond the target: only dangerous if it can beat the
	// receiver to the target point.
	if geom.DistanceSq(from, target) < geom.DistanceSq(opp.Pos(), from) {
		if receiver == nil {
			return true
		}
		return geom.DistanceSq(target, opp.Pos()) > geom.DistanceSq(target, receiver.Pos())
	}

	// Can the opponent reach the pass line before the ball crosses its
	// orthogonal position?
	timeForBall := t.pitch.ball.TimeToCoverDistance(
		r2.Vec{}, r2.Vec{X: localOpp.X}, passingForce)
	if timeForBall < 0 {
		// Friction stops the ball short of the opponent's line, so the
		// opponent never gets a play on it.
		return true
	}

	reach := opp.MaxSpeed()*timeForBall + t.pitch.ball.BoundingRadius() + opp.BoundingRadius()
	return math.Abs(localOpp.Y) >= reach
}

// IsPassSafeFromAllOpponents tests a pass against every opponent.
func (t *Team) IsPassSafeFromAllOpponents(from, target r2.Vec, receiver Player, passingForce float64) bool {
	for _, opp := range t.opponents.players {
		if !t.isPassSafeFromOpponent(from, target, receiver, opp, passingForce) {
			return false
		}
	}
	return true
}

// CanShoot samples random points along the opponent's goal mouth and
// returns the first one the ball could reach safely with the given
// power.
func (t *Team) CanShoot(from r2.Vec, power float64) (r2.Vec, bool) {
	goal := t.opponentsGoal
	ballRadius := t.pitch.ball.BoundingRadius()

	minY := goal.TopPost().Y + ballRadius
	maxY := goal.BottomPost().Y - ballRadius

	for i := 0; i < config.Cfg().Player.NumAttemptsToFindValidStrike; i++ {
		target := r2.Vec{
			X: goal.Center().X,
			Y: minY + t.rng.Float64()*(maxY-minY),
		}

		if t.pitch.ball.TimeToCoverDistance(from, target, power) >= 0 &&
			t.IsPassSafeFromAllOpponents(from, target, nil, power) {
			return target, true
		}
	}
	return r2.Vec{}, false
}

// FindPass looks for the teammate, at least minPassingDist away, that
// can receive the most forward safe pass.
func (t *Team) FindPass(passer Player, power, minPassingDist float64) (Player, r2.Vec, bool) {
	var (
		receiver Player
		target   r2.Vec
		found    bool
	)
	closestToGoal := math.MaxFloat64

	for _, candidate := range t.players {
		if candidate == passer ||
			geom.DistanceSq(passer.Pos(), candidate.Pos()) <= minPassingDist*minPassingDist {
			continue
		}

		if tgt, ok := t.GetBestPassToReceiver(passer, candidate, power); ok {
			if dist := math.Abs(tgt.X - t.opponentsGoal.Center().X); dist < closestToGoal {
				closestToGoal = dist
				receiver = candidate
				target = tgt
				found = true
			}
		}
	}
	return receiver, target, found
}

// interceptScale shrinks the receiver's theoretical intercept range to
// account for reaction time.
const interceptScale = 0.3

// GetBestPassToReceiver examines the receiver's position plus the two
// tangent points of its intercept circle, and returns the most forward
// target that is on the pitch and safe from every opponent.
func (t *Team) GetBestPassToReceiver(passer, receiver Player, power float64) (r2.Vec, bool) {
	ball := t.pitch.ball

	time := ball.TimeToCoverDistance(ball.Pos(), receiver.Pos(), power)
	if time < 0 {
		return r2.Vec{}, false
	}

	interceptRange := time * receiver.MaxSpeed() * interceptScale

	candidates := []r2.Vec{receiver.Pos()}
	if ip1, ip2, ok := geom.TangentPoints(receiver.Pos(), interceptRange, ball.Pos()); ok {
		candidates = []r2.Vec{ip1, receiver.Pos(), ip2}
	}

	var (
		target r2.Vec
		found  bool
	)
	closestToGoal := math.MaxFloat64

	for _, pass := range candidates {
		dist := math.Abs(pass.X - t.opponentsGoal.Center().X)
		if dist < closestToGoal &&
			t.pitch.PlayingArea().Inside(pass, geom.Normal) &&
			t.IsPassSafeFromAllOpponents(ball.Pos(), pass, receiver, power) {
			closestToGoal = dist
			target = pass
			found = true
		}
	}
	return target, found
}

// RequestPass asks the ball carrier for an immediate pass on behalf of
// the requester. Requests are throttled by chance and only sent when the
// lane is currently safe.
func (t *Team) RequestPass(requester *FieldPlayer) {
	if t.rng.Float64() > config.Cfg().Team.ChanceRequestPass {
		return
	}
	if t.controllingPlayer == nil {
		return
	}
	if !t.IsPassSafeFromAllOpponents(t.controllingPlayer.Pos(), requester.Pos(),
		requester, config.Cfg().Team.MaxPassingForce) {
		return
	}

	t.pitch.Dispatcher().Dispatch(requester.ID(), t.controllingPlayer.ID(),
		fsm.MsgPassToMe, requester)
}

// DetermineBestSupportingAttacker returns the attacker closest to the
// best supporting spot, excluding the ball carrier.
func (t *Team) DetermineBestSupportingAttacker() Player {
	var best Player
	closest := math.MaxFloat64
	spot := t.spots.BestSupportingSpot()

	for _, p := range t.players {
		if p.Role() != RoleAttacker || p == t.controllingPlayer {
			continue
		}
		if d := geom.DistanceSq(p.Pos(), spot); d < closest {
			closest = d
			best = p
		}
	}
	return best
}

// DetermineBestSupportingPosition recomputes the support spot grid.
func (t *Team) DetermineBestSupportingPosition() {
	t.spots.DetermineBestSupportingPosition()
}

// ReturnAllFieldPlayersHome sends every outfield player home. Players
// already there are told to hold instead of making a round trip.
func (t *Team) ReturnAllFieldPlayersHome() {
	for _, p := range t.players {
		if p.Role() == RoleGoalKeeper {
			continue
		}
		kind := fsm.MsgGoHome
		if p.Base().InHomeRegion() {
			kind = fsm.MsgWait
		}
		t.pitch.Dispatcher().Dispatch(t.keeper.ID(), p.ID(), kind, nil)
	}
}

// AllPlayersAtHome reports whether every player is inside its home
// region.
func (t *Team) AllPlayersAtHome() bool {
	for _, p := range t.players {
		if !p.Base().InHomeRegion() {
			return false
		}
	}
	return true
}

// setHomeRegions reassigns the formation and re-aims players that are
// holding position or already walking home.
func (t *Team) setHomeRegions(regions [teamSize]int) {
	for i, p := range t.players {
		p.Base().SetHomeRegion(regions[i])
	}
	t.updateTargetsOfWaitingPlayers()
}

// updateTargetsOfWaitingPlayers re-targets idle players after a
// formation change.
func (t *Team) updateTargetsOfWaitingPlayers() {
	for _, p := range t.players {
		fp, ok := p.(*FieldPlayer)
		if !ok {
			continue
		}
		if fp.Machine().InState(Wait) || fp.Machine().InState(ReturnToHomeRegion) {
			fp.Steering().SetTarget(fp.HomeRegion().Center())
		}
	}
}

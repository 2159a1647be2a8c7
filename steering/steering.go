package steering

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/geom"
)

// Agent is the read-only view of a moving entity that behaviors need.
// Players and the ball both satisfy it; references held by a Steering
// instance are non-owning.
type Agent interface {
	Pos() r2.Vec
	Velocity() r2.Vec
	Heading() r2.Vec
	Side() r2.Vec
	Speed() float64
	MaxSpeed() float64
	MaxForce() float64
	BoundingRadius() float64
}

// World supplies the colliders and neighbor queries behaviors read from
// the hosting world layer.
type World interface {
	Walls() []geom.Wall
	Obstacles() []geom.Obstacle
	// Neighbors returns agents within radius of center, excluding the
	// given agents.
	Neighbors(center r2.Vec, radius float64, exclude ...Agent) []Agent
}

// Deceleration selects how hard Arrive brakes toward its target.
type Deceleration int

const (
	DecelerateFast Deceleration = iota + 1
	DecelerateNormal
	DecelerateSlow
)

// decelTweaker scales Deceleration into usable time values.
const decelTweaker = 0.3

// Params holds the tunable weights and parameters of the engine. Zero
// values disable the corresponding effect; DefaultParams gives the
// baseline used outside a match context.
type Params struct {
	WeightSeek              float64
	WeightFlee              float64
	WeightArrive            float64
	WeightPursuit           float64
	WeightEvade             float64
	WeightWander            float64
	WeightObstacleAvoidance float64
	WeightWallAvoidance     float64
	WeightFollowPath        float64
	WeightInterpose         float64
	WeightHide              float64
	WeightOffsetPursuit     float64
	WeightSeparation        float64
	WeightAlignment         float64
	WeightCohesion          float64

	// PanicDistance bounds Flee: beyond it the behavior produces no
	// force. Zero means flee from any distance.
	PanicDistance float64
	// ViewDistance is the neighbor radius for the flocking behaviors.
	ViewDistance float64

	WanderRadius   float64
	WanderDistance float64
	WanderJitter   float64

	// FeelerLength is the forward wall feeler length; the two angled
	// feelers are half of it.
	FeelerLength float64
	// MinDetectionBoxLength scales obstacle detection with speed.
	MinDetectionBoxLength float64
	// WaypointSeekDist is how close an agent must come to a waypoint
	// before the path advances.
	WaypointSeekDist float64
	// HideStandoffDist is the gap kept between a hiding spot and the
	// occluding obstacle's boundary.
	HideStandoffDist float64
}

// DefaultParams returns the baseline parameter set.
func DefaultParams() Params {
	return Params{
		WeightSeek:              1.0,
		WeightFlee:              1.0,
		WeightArrive:            1.0,
		WeightPursuit:           1.0,
		WeightEvade:             0.01,
		WeightWander:            1.0,
		WeightObstacleAvoidance: 10.0,
		WeightWallAvoidance:     10.0,
		WeightFollowPath:        0.05,
		WeightInterpose:         1.0,
		WeightHide:              1.0,
		WeightOffsetPursuit:     1.0,
		WeightSeparation:        1.0,
		WeightAlignment:         1.0,
		WeightCohesion:          2.0,

		ViewDistance:          50.0,
		WanderRadius:          1.2,
		WanderDistance:        2.0,
		WanderJitter:          40.0,
		FeelerLength:          40.0,
		MinDetectionBoxLength: 40.0,
		WaypointSeekDist:      20.0,
		HideStandoffDist:      30.0,
	}
}

// Steering is the force-generation engine owned 1:1 by an agent. FSM
// states toggle behaviors on and off; Calculate runs once per tick.
type Steering struct {
	agent Agent
	world World
	rng   *rand.Rand

	flags  Behavior
	params Params

	// Target point for seek/flee/arrive and the match-specific states.
	target r2.Vec
	// Other-agent references for the directional behaviors. Non-owning.
	agentA Agent // pursuit/evade/interpose/hide target
	agentB Agent // second interpose agent
	offset r2.Vec
	path   *Path

	deceleration Deceleration
	wanderTarget r2.Vec

	// Per-tick neighbor set for the flocking behaviors.
	neighbors []Agent

	force r2.Vec
}

// New creates a steering engine for the given agent.
func New(agent Agent, world World, rng *rand.Rand, params Params) *Steering {
	s := &Steering{
		agent:        agent,
		world:        world,
		rng:          rng,
		params:       params,
		deceleration: DecelerateNormal,
	}
	// Seed the wander target on the local unit circle.
	theta := rng.Float64() * 2 * math.Pi
	s.wanderTarget = r2.Vec{
		X: params.WanderRadius * math.Cos(theta),
		Y: params.WanderRadius * math.Sin(theta),
	}
	return s
}

// SetParams replaces the engine's weights and parameters.
func (s *Steering) SetParams(p Params) { s.params = p }

// On enables a behavior.
func (s *Steering) On(b Behavior) { s.flags = s.flags.Add(b) }

// Off disables a behavior.
func (s *Steering) Off(b Behavior) { s.flags = s.flags.Remove(b) }

// IsOn reports whether a behavior is active.
func (s *Steering) IsOn(b Behavior) bool { return s.flags.Has(b) }

// Active returns the set of active behaviors.
func (s *Steering) Active() Behavior { return s.flags }

// SetTarget sets the target point used by seek/flee/arrive.
func (s *Steering) SetTarget(t r2.Vec) { s.target = t }

// Target returns the current target point.
func (s *Steering) Target() r2.Vec { return s.target }

// SetTargetAgent sets the primary other-agent reference.
func (s *Steering) SetTargetAgent(a Agent) { s.agentA = a }

// SetInterposeAgents sets the two agents to interpose between.
func (s *Steering) SetInterposeAgents(a, b Agent) {
	s.agentA = a
	s.agentB = b
}

// SetOffset sets the leader-local offset for offset pursuit.
func (s *Steering) SetOffset(offset r2.Vec) { s.offset = offset }

// SetPath installs the path for follow-path.
func (s *Steering) SetPath(p *Path) { s.path = p }

// SetDeceleration selects the arrive braking rate.
func (s *Steering) SetDeceleration(d Deceleration) { s.deceleration = d }

// Force returns the force computed by the last Calculate call.
func (s *Steering) Force() r2.Vec { return s.force }

// Calculate produces this tick's steering force using prioritized
// summation: behaviors run in fixed priority order and accumulate force
// only while budget (maxForce - |accumulated|) remains. Once the budget
// is exhausted lower-priority behaviors are skipped for the tick.
func (s *Steering) Calculate(dt float64) r2.Vec {
	s.force = r2.Vec{}

	if s.flags.Has(Separation | Alignment | Cohesion) {
		exclude := []Agent{s.agent}
		if s.agentA != nil {
			exclude = append(exclude, s.agentA)
		}
		s.neighbors = s.world.Neighbors(s.agent.Pos(), s.params.ViewDistance, exclude...)
	}

	type step struct {
		flag  Behavior
		force func(dt float64) r2.Vec
		w     float64
	}
	// Fixed priority order, highest first.
	steps := []step{
		{WallAvoidance, s.wallAvoidance, s.params.WeightWallAvoidance},
		{ObstacleAvoidance, s.obstacleAvoidance, s.params.WeightObstacleAvoidance},
		{Evade, s.evadeStep, s.params.WeightEvade},
		{Separation, s.separationStep, s.params.WeightSeparation},
		{Alignment, s.alignmentStep, s.params.WeightAlignment},
		{Cohesion, s.cohesionStep, s.params.WeightCohesion},
		{Flee, s.fleeStep, s.params.WeightFlee},
		{Seek, s.seekStep, s.params.WeightSeek},
		{Arrive, s.arriveStep, s.params.WeightArrive},
		{Wander, s.wander, s.params.WeightWander},
		{Pursuit, s.pursuitStep, s.params.WeightPursuit},
		{OffsetPursuit, s.offsetPursuitStep, s.params.WeightOffsetPursuit},
		{Interpose, s.interposeStep, s.params.WeightInterpose},
		{Hide, s.hideStep, s.params.WeightHide},
		{FollowPath, s.followPath, s.params.WeightFollowPath},
	}

	for _, st := range steps {
		if !s.flags.Has(st.flag) {
			continue
		}
		if !s.accumulate(r2.Scale(st.w, st.force(dt))) {
			return s.force
		}
	}
	return s.force
}

// accumulate adds force within the remaining budget. It returns false
// once the budget is exhausted, which ends the evaluation for this tick.
func (s *Steering) accumulate(force r2.Vec) bool {
	soFar := r2.Norm(s.force)
	remaining := s.agent.MaxForce() - soFar
	if remaining <= 0 {
		return false
	}

	if mag := r2.Norm(force); mag < remaining {
		s.force = r2.Add(s.force, force)
	} else {
		s.force = r2.Add(s.force, r2.Scale(remaining, geom.Normalize(force)))
	}
	return true
}

// requireAgent asserts a directional behavior has its target reference.
// A nil reference under an active flag is a programming error.
func requireAgent(a Agent, behavior string) {
	if a == nil {
		panic(fmt.Sprintf("steering: %s requires a target agent", behavior))
	}
}

// --- individual behaviors ---

// SeekForce returns the seek force toward an arbitrary point. Exposed
// for states that combine forces manually (e.g. keeper interposing).
func (s *Steering) SeekForce(target r2.Vec) r2.Vec {
	desired := r2.Scale(s.agent.MaxSpeed(), geom.Normalize(r2.Sub(target, s.agent.Pos())))
	return r2.Sub(desired, s.agent.Velocity())
}

func (s *Steering) seekStep(float64) r2.Vec { return s.SeekForce(s.target) }

func (s *Steering) fleeForce(target r2.Vec) r2.Vec {
	if pd := s.params.PanicDistance; pd > 0 {
		if geom.DistanceSq(s.agent.Pos(), target) > pd*pd {
			return r2.Vec{}
		}
	}
	desired := r2.Scale(s.agent.MaxSpeed(), geom.Normalize(r2.Sub(s.agent.Pos(), target)))
	return r2.Sub(desired, s.agent.Velocity())
}

func (s *Steering) fleeStep(float64) r2.Vec { return s.fleeForce(s.target) }

// ArriveForce decelerates in proportion to remaining distance.
func (s *Steering) ArriveForce(target r2.Vec, decel Deceleration) r2.Vec {
	toTarget := r2.Sub(target, s.agent.Pos())
	dist := r2.Norm(toTarget)
	if dist <= 0 {
		return r2.Vec{}
	}
	speed := dist / (float64(decel) * decelTweaker)
	if speed > s.agent.MaxSpeed() {
		speed = s.agent.MaxSpeed()
	}
	desired := r2.Scale(speed/dist, toTarget)
	return r2.Sub(desired, s.agent.Velocity())
}

func (s *Steering) arriveStep(float64) r2.Vec {
	return s.ArriveForce(s.target, s.deceleration)
}

// PursuitForce predicts the evader's future position and seeks it. When
// the evader is ahead and facing the agent almost head-on, prediction
// degenerates to a plain seek.
func (s *Steering) PursuitForce(evader Agent) r2.Vec {
	toEvader := r2.Sub(evader.Pos(), s.agent.Pos())
	relativeHeading := r2.Dot(s.agent.Heading(), evader.Heading())

	if r2.Dot(toEvader, s.agent.Heading()) > 0 && relativeHeading < -0.95 {
		return s.SeekForce(evader.Pos())
	}

	lookAhead := r2.Norm(toEvader) / (s.agent.MaxSpeed() + evader.Speed())
	return s.SeekForce(r2.Add(evader.Pos(), r2.Scale(lookAhead, evader.Velocity())))
}

func (s *Steering) pursuitStep(float64) r2.Vec {
	requireAgent(s.agentA, "pursuit")
	return s.PursuitForce(s.agentA)
}

func (s *Steering) evadeStep(float64) r2.Vec {
	requireAgent(s.agentA, "evade")
	pursuer := s.agentA
	toPursuer := r2.Sub(pursuer.Pos(), s.agent.Pos())
	lookAhead := r2.Norm(toPursuer) / (s.agent.MaxSpeed() + pursuer.Speed())
	return s.fleeForce(r2.Add(pursuer.Pos(), r2.Scale(lookAhead, pursuer.Velocity())))
}

// wander drifts a target point on a circle projected ahead of the agent.
// Jitter scales with dt so behavior is framerate independent.
func (s *Steering) wander(dt float64) r2.Vec {
	jitter := s.params.WanderJitter * dt

	s.wanderTarget = r2.Add(s.wanderTarget, r2.Vec{
		X: (s.rng.Float64() - s.rng.Float64()) * jitter,
		Y: (s.rng.Float64() - s.rng.Float64()) * jitter,
	})
	s.wanderTarget = r2.Scale(s.params.WanderRadius, geom.Normalize(s.wanderTarget))

	local := r2.Add(s.wanderTarget, r2.Vec{X: s.params.WanderDistance})
	world := geom.PointToWorldSpace(local, s.agent.Heading(), s.agent.Side(), s.agent.Pos())
	return r2.Sub(world, s.agent.Pos())
}

// wallAvoidance casts three feelers (forward, and ±45° at half length)
// against the wall colliders; the closest hit yields a push along the
// wall normal proportional to penetration depth.
func (s *Steering) wallAvoidance(float64) r2.Vec {
	walls := s.world.Walls()
	if len(walls) == 0 {
		return r2.Vec{}
	}

	pos := s.agent.Pos()
	heading := s.agent.Heading()
	feelers := [3]r2.Vec{
		r2.Add(pos, r2.Scale(s.params.FeelerLength, heading)),
		r2.Add(pos, r2.Scale(s.params.FeelerLength*0.5, geom.Rotate(heading, -math.Pi/4))),
		r2.Add(pos, r2.Scale(s.params.FeelerLength*0.5, geom.Rotate(heading, math.Pi/4))),
	}

	var force r2.Vec
	for _, feeler := range feelers {
		closestDist := math.MaxFloat64
		closestWall := -1
		var closestPoint r2.Vec

		for i, w := range walls {
			point, dist, ok := geom.LineIntersection(pos, feeler, w.From, w.To)
			if ok && dist < closestDist {
				closestDist = dist
				closestWall = i
				closestPoint = point
			}
		}

		if closestWall >= 0 {
			overshoot := r2.Sub(feeler, closestPoint)
			force = r2.Add(force, r2.Scale(r2.Norm(overshoot), walls[closestWall].N))
		}
	}
	return force
}

// obstacleAvoidance tests obstacles against a detection range that grows
// with speed; the closest intersecting obstacle produces a lateral force
// plus braking.
func (s *Steering) obstacleAvoidance(float64) r2.Vec {
	obstacles := s.world.Obstacles()
	if len(obstacles) == 0 {
		return r2.Vec{}
	}

	boxLength := s.params.MinDetectionBoxLength *
		(1 + s.agent.Speed()/s.agent.MaxSpeed())

	pos := s.agent.Pos()
	heading := s.agent.Heading()
	side := s.agent.Side()

	var closest geom.Obstacle
	closestLocal := r2.Vec{}
	distToClosest := math.MaxFloat64

	for _, ob := range obstacles {
		if geom.DistanceSq(pos, ob.Pos()) > boxLength*boxLength {
			continue
		}
		local := geom.PointToLocalSpace(ob.Pos(), heading, side, pos)
		if local.X < 0 {
			continue // behind the agent
		}

		expanded := ob.BoundingRadius() + s.agent.BoundingRadius()
		if math.Abs(local.Y) >= expanded {
			continue
		}

		// Line/circle intersection along the local x axis; nearest root.
		sqrtPart := math.Sqrt(expanded*expanded - local.Y*local.Y)
		ip := local.X - sqrtPart
		if ip <= 0 {
			ip = local.X + sqrtPart
		}
		if ip < distToClosest {
			distToClosest = ip
			closest = ob
			closestLocal = local
		}
	}

	if closest == nil {
		return r2.Vec{}
	}

	// The closer the obstacle, the stronger the correction.
	multiplier := 1 + (boxLength-closestLocal.X)/boxLength

	localForce := r2.Vec{
		X: (closest.BoundingRadius() - closestLocal.X) * 0.2, // braking
		Y: (closest.BoundingRadius() - closestLocal.Y) * multiplier,
	}
	return geom.VectorToWorldSpace(localForce, heading, side)
}

// separationStep pushes away from each neighbor, inversely proportional
// to distance.
func (s *Steering) separationStep(float64) r2.Vec {
	var force r2.Vec
	for _, n := range s.neighbors {
		toAgent := r2.Sub(s.agent.Pos(), n.Pos())
		dist := r2.Norm(toAgent)
		if dist <= 0 {
			continue
		}
		force = r2.Add(force, r2.Scale(1/dist, geom.Normalize(toAgent)))
	}
	return force
}

func (s *Steering) alignmentStep(float64) r2.Vec {
	if len(s.neighbors) == 0 {
		return r2.Vec{}
	}
	var avg r2.Vec
	for _, n := range s.neighbors {
		avg = r2.Add(avg, n.Heading())
	}
	avg = r2.Scale(1/float64(len(s.neighbors)), avg)
	return r2.Sub(avg, s.agent.Heading())
}

func (s *Steering) cohesionStep(float64) r2.Vec {
	if len(s.neighbors) == 0 {
		return r2.Vec{}
	}
	var center r2.Vec
	for _, n := range s.neighbors {
		center = r2.Add(center, n.Pos())
	}
	center = r2.Scale(1/float64(len(s.neighbors)), center)
	// Normalized so cohesion cannot swamp the other flocking forces.
	return geom.Normalize(s.SeekForce(center))
}

func (s *Steering) offsetPursuitStep(float64) r2.Vec {
	requireAgent(s.agentA, "offset pursuit")
	leader := s.agentA

	worldOffset := geom.PointToWorldSpace(s.offset, leader.Heading(), leader.Side(), leader.Pos())
	toOffset := r2.Sub(worldOffset, s.agent.Pos())
	lookAhead := r2.Norm(toOffset) / (s.agent.MaxSpeed() + leader.Speed())

	return s.ArriveForce(r2.Add(worldOffset, r2.Scale(lookAhead, leader.Velocity())), DecelerateFast)
}

// interposeStep steers midway between two agents, predicting where the
// midpoint will be by the time the agent can reach it.
func (s *Steering) interposeStep(float64) r2.Vec {
	requireAgent(s.agentA, "interpose")
	requireAgent(s.agentB, "interpose")
	a, b := s.agentA, s.agentB

	mid := r2.Scale(0.5, r2.Add(a.Pos(), b.Pos()))
	timeToReach := geom.Distance(s.agent.Pos(), mid) / s.agent.MaxSpeed()

	futureA := r2.Add(a.Pos(), r2.Scale(timeToReach, a.Velocity()))
	futureB := r2.Add(b.Pos(), r2.Scale(timeToReach, b.Velocity()))
	mid = r2.Scale(0.5, r2.Add(futureA, futureB))

	return s.ArriveForce(mid, DecelerateFast)
}

// hideStep finds the closest obstacle-occluded spot from the hunter and
// arrives there; with no obstacle available it falls back to evade.
func (s *Steering) hideStep(dt float64) r2.Vec {
	requireAgent(s.agentA, "hide")
	hunter := s.agentA

	bestDistSq := math.MaxFloat64
	var bestSpot r2.Vec
	found := false

	for _, ob := range s.world.Obstacles() {
		away := geom.Normalize(r2.Sub(ob.Pos(), hunter.Pos()))
		spot := r2.Add(ob.Pos(), r2.Scale(ob.BoundingRadius()+s.params.HideStandoffDist, away))

		if d := geom.DistanceSq(spot, s.agent.Pos()); d < bestDistSq {
			bestDistSq = d
			bestSpot = spot
			found = true
		}
	}

	if !found {
		return s.evadeStep(dt)
	}
	return s.ArriveForce(bestSpot, DecelerateFast)
}

func (s *Steering) followPath(float64) r2.Vec {
	if s.path == nil || s.path.Len() == 0 {
		return r2.Vec{}
	}

	seekDistSq := s.params.WaypointSeekDist * s.params.WaypointSeekDist
	if !s.path.Finished() {
		if geom.DistanceSq(s.agent.Pos(), s.path.CurrentWaypoint()) < seekDistSq {
			s.path.Advance()
		}
		return s.SeekForce(s.path.CurrentWaypoint())
	}
	return s.ArriveForce(s.path.CurrentWaypoint(), DecelerateNormal)
}

package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/components"
	"github.com/pthm-cable/kickoff/config"
	"github.com/pthm-cable/kickoff/fsm"
	"github.com/pthm-cable/kickoff/geom"
	"github.com/pthm-cable/kickoff/steering"
	"github.com/pthm-cable/kickoff/telemetry"
)

// Pitch hosts a match: the ECS world holding all physical state, the
// two teams, the ball, the goals, and the playing-area geometry. It is
// the steering.World the players' engines query.
type Pitch struct {
	world *ecs.World

	ballMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Heading,
		components.Physics,
		components.BallTag,
	]
	playerMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Heading,
		components.Physics,
		components.PlayerTag,
	]

	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	headMap *ecs.Map1[components.Heading]
	physMap *ecs.Map1[components.Physics]

	ball  *Ball
	teams [2]*Team
	goals [2]*Goal // [Red's home goal (left), Blue's home goal (right)]

	playingArea geom.Region
	regions     []geom.Region
	walls       []geom.Wall

	dispatcher *fsm.Dispatcher
	collector  *telemetry.Collector
	rng        *rand.Rand

	gameOn            bool
	goalKeeperHasBall bool
	paused            bool

	simTime float64
	tick    int32
}

// NewPitch builds a match in the given ECS world. Config must have been
// initialized.
func NewPitch(world *ecs.World, rng *rand.Rand) *Pitch {
	cfg := config.Cfg()

	p := &Pitch{
		world: world,
		rng:   rng,
		ballMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Heading,
			components.Physics,
			components.BallTag,
		](world),
		playerMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Heading,
			components.Physics,
			components.PlayerTag,
		](world),
		posMap:     ecs.NewMap1[components.Position](world),
		velMap:     ecs.NewMap1[components.Velocity](world),
		headMap:    ecs.NewMap1[components.Heading](world),
		physMap:    ecs.NewMap1[components.Physics](world),
		dispatcher: fsm.NewDispatcher(),
	}

	w := float64(cfg.Screen.Width)
	h := float64(cfg.Screen.Height)
	m := cfg.Pitch.Margin
	p.playingArea = geom.NewRegion(m, m, w-m, h-m, -1)

	p.createRegions(cfg.Pitch.NumRegionsX, cfg.Pitch.NumRegionsY)
	p.createGoalsAndWalls(cfg.Pitch.GoalWidth)

	p.ball = p.spawnBall()

	red := newTeam(p, Red, p.goals[0], p.goals[1])
	blue := newTeam(p, Blue, p.goals[1], p.goals[0])
	red.setOpponents(blue)
	blue.setOpponents(red)
	p.teams = [2]*Team{red, blue}

	for _, t := range p.teams {
		for _, player := range t.Players() {
			p.dispatcher.Register(player)
		}
	}

	// Both sides start by forming up for kickoff; play begins once
	// everyone is home.
	red.Machine().ChangeState(TeamPrepareForKickOff)
	blue.Machine().ChangeState(TeamPrepareForKickOff)

	return p
}

// createRegions splits the playing area into the tactical grid. Ids are
// column-major: id = col*rows + row, column 0 on the left.
func (p *Pitch) createRegions(cols, rows int) {
	w := p.playingArea.Width() / float64(cols)
	h := p.playingArea.Height() / float64(rows)

	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			left := p.playingArea.Left() + float64(col)*w
			top := p.playingArea.Top() + float64(row)*h
			p.regions = append(p.regions,
				geom.NewRegion(left, top, left+w, top+h, col*rows+row))
		}
	}
}

// createGoalsAndWalls builds both goal mouths and the six boundary wall
// segments. Walls are wound so their normals point into play, and the
// goal mouths are left open.
func (p *Pitch) createGoalsAndWalls(goalWidth float64) {
	a := p.playingArea
	cy := a.Center().Y

	p.goals[0] = newGoal(
		r2.Vec{X: a.Left(), Y: cy - goalWidth/2},
		r2.Vec{X: a.Left(), Y: cy + goalWidth/2},
		r2.Vec{X: 1})
	p.goals[1] = newGoal(
		r2.Vec{X: a.Right(), Y: cy - goalWidth/2},
		r2.Vec{X: a.Right(), Y: cy + goalWidth/2},
		r2.Vec{X: -1})

	tl := r2.Vec{X: a.Left(), Y: a.Top()}
	tr := r2.Vec{X: a.Right(), Y: a.Top()}
	bl := r2.Vec{X: a.Left(), Y: a.Bottom()}
	br := r2.Vec{X: a.Right(), Y: a.Bottom()}

	p.walls = []geom.Wall{
		geom.NewWall(tr, tl),                      // top
		geom.NewWall(bl, br),                      // bottom
		geom.NewWall(tl, p.goals[0].TopPost()),    // left, above the goal
		geom.NewWall(p.goals[0].BottomPost(), bl), // left, below the goal
		geom.NewWall(p.goals[1].TopPost(), tr),    // right, above the goal
		geom.NewWall(br, p.goals[1].BottomPost()), // right, below the goal
	}
}

func (p *Pitch) spawnBall() *Ball {
	cfg := config.Cfg()

	pos := components.Position{Vec: p.playingArea.Center()}
	vel := components.Velocity{}
	head := components.Heading{Facing: r2.Vec{X: 1}, Side: r2.Vec{Y: 1}}
	phys := components.Physics{
		Mass:           cfg.Ball.Mass,
		MaxSpeed:       math.MaxFloat64, // the ball has no speed clamp
		BoundingRadius: cfg.Ball.Size,
	}
	tag := components.BallTag{}

	e := p.ballMapper.NewEntity(&pos, &vel, &head, &phys, &tag)
	return newBall(p.newHandle(e), p.walls, cfg.Ball.Friction)
}

// spawnPlayer creates a player entity and returns its handle.
func (p *Pitch) spawnPlayer(color TeamColor, at, facing r2.Vec) entityHandle {
	cfg := config.Cfg()

	pos := components.Position{Vec: at}
	vel := components.Velocity{}
	head := components.Heading{Facing: facing, Side: geom.Perp(facing)}
	phys := components.Physics{
		Mass:           cfg.Player.Mass,
		MaxSpeed:       cfg.Player.MaxSpeedWithoutBall,
		MaxForce:       cfg.Player.MaxForce,
		MaxTurnRate:    cfg.Player.MaxTurnRate,
		BoundingRadius: cfg.Player.BoundingRadius,
	}
	tag := components.PlayerTag{TeamColor: int(color)}

	e := p.playerMapper.NewEntity(&pos, &vel, &head, &phys, &tag)
	return p.newHandle(e)
}

func (p *Pitch) newHandle(e ecs.Entity) entityHandle {
	return entityHandle{
		entity: e,
		pos:    p.posMap,
		vel:    p.velMap,
		head:   p.headMap,
		phys:   p.physMap,
	}
}

// Update advances the match by one tick: ball first, then both teams,
// then the goal check.
func (p *Pitch) Update(dt float64) {
	if p.paused {
		return
	}
	p.tick++
	p.simTime += dt

	p.ball.Update()
	for _, t := range p.teams {
		t.Update(dt)
	}

	if p.goals[0].CheckScored(p.ball) {
		p.onGoalScored(Blue)
	} else if p.goals[1].CheckScored(p.ball) {
		p.onGoalScored(Red)
	}

	if p.collector != nil {
		p.collector.RecordPossession(p.possession())
	}
}

// possession returns which side controls the ball this tick, or -1.
func (p *Pitch) possession() int {
	for i, t := range p.teams {
		if t.InControl() {
			return i
		}
	}
	return -1
}

// onGoalScored resets the pitch for a kickoff.
func (p *Pitch) onGoalScored(scorer TeamColor) {
	slog.Info("goal scored",
		"team", scorer.String(),
		"score_red", p.goals[1].GoalsScored(),
		"score_blue", p.goals[0].GoalsScored(),
		"tick", p.tick)

	if p.collector != nil {
		p.collector.RecordGoal(int(scorer))
	}

	p.gameOn = false
	p.goalKeeperHasBall = false
	p.ball.PlaceAt(p.playingArea.Center())

	for _, t := range p.teams {
		t.Machine().ChangeState(TeamPrepareForKickOff)
	}
}

// --- steering.World ---

// Walls returns the boundary colliders.
func (p *Pitch) Walls() []geom.Wall { return p.walls }

// Obstacles returns the circular colliders. An open pitch has none, but
// the engine contract requires the query.
func (p *Pitch) Obstacles() []geom.Obstacle { return nil }

// Neighbors returns all players within radius of center, minus the
// excluded agents.
func (p *Pitch) Neighbors(center r2.Vec, radius float64, exclude ...steering.Agent) []steering.Agent {
	var out []steering.Agent
	for _, t := range p.teams {
		for _, player := range t.Players() {
			skip := false
			for _, e := range exclude {
				if steering.Agent(player) == e {
					skip = true
					break
				}
			}
			if !skip && geom.DistanceSq(center, player.Pos()) <= radius*radius {
				out = append(out, player)
			}
		}
	}
	return out
}

// --- accessors ---

// World returns the ECS world.
func (p *Pitch) World() *ecs.World { return p.world }

// Ball returns the match ball.
func (p *Pitch) Ball() *Ball { return p.ball }

// Teams returns both teams, red first.
func (p *Pitch) Teams() [2]*Team { return p.teams }

// Goals returns both goals, left (red's home) first.
func (p *Pitch) Goals() [2]*Goal { return p.goals }

// PlayingArea returns the pitch boundary region.
func (p *Pitch) PlayingArea() geom.Region { return p.playingArea }

// Regions returns the tactical region grid.
func (p *Pitch) Regions() []geom.Region { return p.regions }

// RegionFromIndex returns the region with the given id.
func (p *Pitch) RegionFromIndex(id int) geom.Region {
	if id < 0 || id >= len(p.regions) {
		panic(fmt.Sprintf("game: region id %d out of range [0,%d)", id, len(p.regions)))
	}
	return p.regions[id]
}

// Dispatcher returns the telegram dispatcher.
func (p *Pitch) Dispatcher() *fsm.Dispatcher { return p.dispatcher }

// GameOn reports whether play is live (not waiting for a kickoff).
func (p *Pitch) GameOn() bool { return p.gameOn }

// SetGameOn switches play live or dead.
func (p *Pitch) SetGameOn(on bool) { p.gameOn = on }

// GoalKeeperHasBall reports whether either keeper holds the ball.
func (p *Pitch) GoalKeeperHasBall() bool { return p.goalKeeperHasBall }

// SetGoalKeeperHasBall records keeper possession; it suppresses chasing.
func (p *Pitch) SetGoalKeeperHasBall(has bool) { p.goalKeeperHasBall = has }

// TogglePause flips the pause flag.
func (p *Pitch) TogglePause() { p.paused = !p.paused }

// Paused reports whether the simulation is paused.
func (p *Pitch) Paused() bool { return p.paused }

// SimTime returns the simulation clock in seconds.
func (p *Pitch) SimTime() float64 { return p.simTime }

// Tick returns the simulation tick counter.
func (p *Pitch) Tick() int32 { return p.tick }

// Score returns goals for (red, blue).
func (p *Pitch) Score() (int, int) {
	// A team's tally lives on the goal it attacks.
	return p.goals[1].GoalsScored(), p.goals[0].GoalsScored()
}

// SetCollector attaches the telemetry collector. Nil disables recording.
func (p *Pitch) SetCollector(c *telemetry.Collector) { p.collector = c }

// --- telemetry hooks, called from the states ---

func (p *Pitch) notePass(team TeamColor) {
	if p.collector != nil {
		p.collector.RecordPass(int(team))
	}
}

func (p *Pitch) noteShot(team TeamColor) {
	if p.collector != nil {
		p.collector.RecordShot(int(team))
	}
	slog.Debug("shot taken", "team", team.String(), "tick", p.tick)
}

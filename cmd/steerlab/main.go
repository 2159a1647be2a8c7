// Steering behavior sandbox - a flock of vehicles on an empty field with
// interactive behavior toggles and wander parameter sliders.
//
// Usage: go run ./cmd/steerlab
package main

import (
	"fmt"
	"math"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/geom"
	"github.com/pthm-cable/kickoff/steering"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	panelWidth   = 230

	numVehicles = 24
)

// vehicle is a free-moving agent for experimenting with behaviors.
type vehicle struct {
	pos     r2.Vec
	vel     r2.Vec
	heading r2.Vec
	side    r2.Vec

	mass     float64
	maxSpeed float64
	maxForce float64
	radius   float64

	steer *steering.Steering
}

func (v *vehicle) Pos() r2.Vec             { return v.pos }
func (v *vehicle) Velocity() r2.Vec        { return v.vel }
func (v *vehicle) Heading() r2.Vec         { return v.heading }
func (v *vehicle) Side() r2.Vec            { return v.side }
func (v *vehicle) Speed() float64          { return r2.Norm(v.vel) }
func (v *vehicle) MaxSpeed() float64       { return v.maxSpeed }
func (v *vehicle) MaxForce() float64       { return v.maxForce }
func (v *vehicle) BoundingRadius() float64 { return v.radius }

// update integrates one tick of steering force.
func (v *vehicle) update(dt float64) {
	force := v.steer.Calculate(dt)

	accel := r2.Scale(1.0/v.mass, force)
	v.vel = r2.Add(v.vel, accel)
	v.vel = geom.Truncate(v.vel, v.maxSpeed)
	v.pos = r2.Add(v.pos, v.vel)

	if r2.Norm2(v.vel) > 1e-8 {
		v.heading = geom.Normalize(v.vel)
		v.side = geom.Perp(v.heading)
	}
}

// circle is a static circular obstacle.
type circle struct {
	pos    r2.Vec
	radius float64
}

func (c circle) Pos() r2.Vec             { return c.pos }
func (c circle) BoundingRadius() float64 { return c.radius }

// sandbox holds the walls, obstacles and vehicles.
type sandbox struct {
	walls     []geom.Wall
	obstacles []geom.Obstacle
	vehicles  []*vehicle
}

func (s *sandbox) Walls() []geom.Wall         { return s.walls }
func (s *sandbox) Obstacles() []geom.Obstacle { return s.obstacles }

func (s *sandbox) Neighbors(center r2.Vec, radius float64, exclude ...steering.Agent) []steering.Agent {
	var out []steering.Agent
	for _, v := range s.vehicles {
		skip := false
		for _, e := range exclude {
			if steering.Agent(v) == e {
				skip = true
				break
			}
		}
		if !skip && geom.DistanceSq(center, v.pos) <= radius*radius {
			out = append(out, v)
		}
	}
	return out
}

// toggles holds the behavior checkbox state shared by all vehicles.
// The directional behaviors apply to the followers only; the lead and
// the runner keep wandering so there is something to chase.
type toggles struct {
	wander     bool
	walls      bool
	obstacles  bool
	separation bool
	alignment  bool
	cohesion   bool
	seek       bool
	arrive     bool
	flee       bool

	pursuit       bool
	offsetPursuit bool
	interpose     bool
	hide          bool
	followPath    bool
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Steering Lab")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	rng := rand.New(rand.NewSource(42))

	fieldW := float64(windowWidth - panelWidth)
	fieldH := float64(windowHeight)

	box := &sandbox{
		walls: boundaryWalls(fieldW, fieldH),
		obstacles: []geom.Obstacle{
			circle{pos: r2.Vec{X: fieldW * 0.3, Y: fieldH * 0.35}, radius: 40},
			circle{pos: r2.Vec{X: fieldW * 0.65, Y: fieldH * 0.6}, radius: 55},
			circle{pos: r2.Vec{X: fieldW * 0.5, Y: fieldH * 0.2}, radius: 25},
		},
	}

	params := steering.DefaultParams()
	for i := 0; i < numVehicles; i++ {
		box.vehicles = append(box.vehicles, spawnVehicle(box, rng, params, fieldW, fieldH))
	}

	// Vehicle 0 leads, vehicle 1 is the second interpose anchor; the rest
	// follow. Each follower gets a formation slot behind the lead and its
	// own patrol loop around the field.
	lead, runner := box.vehicles[0], box.vehicles[1]
	for i, v := range box.vehicles[2:] {
		v.steer.SetTargetAgent(lead)
		v.steer.SetInterposeAgents(lead, runner)

		row, col := i/4, i%4
		v.steer.SetOffset(r2.Vec{
			X: -20 * float64(row+1),
			Y: 15 * float64(col-2),
		})
		v.steer.SetPath(patrolPath(fieldW, fieldH))
	}

	on := toggles{wander: true, walls: true, obstacles: true, separation: true}
	target := r2.Vec{X: fieldW / 2, Y: fieldH / 2}

	for !rl.WindowShouldClose() {
		dt := float64(rl.GetFrameTime())

		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			m := rl.GetMousePosition()
			if float64(m.X) < fieldW {
				target = r2.Vec{X: float64(m.X), Y: float64(m.Y)}
			}
		}

		for i, v := range box.vehicles {
			applyToggles(v.steer, on, i >= 2)
			v.steer.SetTarget(target)
			v.update(dt)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(30, 35, 40, 255))

		for _, o := range box.obstacles {
			p := o.Pos()
			rl.DrawCircleLines(int32(p.X), int32(p.Y), float32(o.BoundingRadius()), rl.Gray)
		}
		rl.DrawRectangleLines(0, 0, int32(fieldW), int32(fieldH), rl.DarkGray)
		rl.DrawCircleLines(int32(target.X), int32(target.Y), 6, rl.Red)

		for i, v := range box.vehicles {
			drawVehicle(v, vehicleColor(i))
		}

		on, params = drawPanel(on, params, box)

		rl.EndDrawing()
	}
}

// boundaryWalls builds the four screen-edge walls, normals inward.
func boundaryWalls(w, h float64) []geom.Wall {
	tl := r2.Vec{}
	tr := r2.Vec{X: w}
	bl := r2.Vec{Y: h}
	br := r2.Vec{X: w, Y: h}
	return []geom.Wall{
		geom.NewWall(tr, tl),
		geom.NewWall(bl, br),
		geom.NewWall(tl, bl),
		geom.NewWall(br, tr),
	}
}

func spawnVehicle(box *sandbox, rng *rand.Rand, params steering.Params, w, h float64) *vehicle {
	theta := rng.Float64() * 2 * math.Pi
	v := &vehicle{
		pos:      r2.Vec{X: rng.Float64() * w, Y: rng.Float64() * h},
		heading:  r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)},
		mass:     1.0,
		maxSpeed: 2.5,
		maxForce: 1.2,
		radius:   8,
	}
	v.side = geom.Perp(v.heading)
	v.steer = steering.New(v, box, rng, params)
	return v
}

// patrolPath builds a looped rectangle inset from the field edges.
func patrolPath(w, h float64) *steering.Path {
	inset := 80.0
	return steering.NewPath([]r2.Vec{
		{X: inset, Y: inset},
		{X: w - inset, Y: inset},
		{X: w - inset, Y: h - inset},
		{X: inset, Y: h - inset},
	}, true)
}

// applyToggles syncs a vehicle's behavior flags with the checkbox state.
// Directional behaviors are only applied to the follower vehicles.
func applyToggles(s *steering.Steering, on toggles, follower bool) {
	set := func(b steering.Behavior, enabled bool) {
		if enabled {
			s.On(b)
		} else {
			s.Off(b)
		}
	}
	set(steering.Wander, on.wander)
	set(steering.WallAvoidance, on.walls)
	set(steering.ObstacleAvoidance, on.obstacles)
	set(steering.Separation, on.separation)
	set(steering.Alignment, on.alignment)
	set(steering.Cohesion, on.cohesion)
	set(steering.Seek, on.seek)
	set(steering.Arrive, on.arrive)
	set(steering.Flee, on.flee)

	set(steering.Pursuit, follower && on.pursuit)
	set(steering.OffsetPursuit, follower && on.offsetPursuit)
	set(steering.Interpose, follower && on.interpose)
	set(steering.Hide, follower && on.hide)
	set(steering.FollowPath, follower && on.followPath)
}

// vehicleColor distinguishes the lead and the runner from the followers.
func vehicleColor(i int) rl.Color {
	switch i {
	case 0:
		return rl.Orange
	case 1:
		return rl.Lime
	}
	return rl.SkyBlue
}

func drawVehicle(v *vehicle, body rl.Color) {
	size := v.radius
	nose := r2.Add(v.pos, r2.Scale(size, v.heading))
	left := r2.Add(r2.Sub(v.pos, r2.Scale(size*0.6, v.heading)), r2.Scale(size*0.6, v.side))
	right := r2.Sub(r2.Sub(v.pos, r2.Scale(size*0.6, v.heading)), r2.Scale(size*0.6, v.side))

	rl.DrawTriangle(vec(nose), vec(left), vec(right), body)
	rl.DrawTriangleLines(vec(nose), vec(left), vec(right), rl.Black)
}

// drawPanel renders the control panel and returns the updated state.
// Slider changes rebuild nothing; the engines read params by value at
// construction, so wander sliders are pushed into every vehicle.
func drawPanel(on toggles, params steering.Params, box *sandbox) (toggles, steering.Params) {
	x := float32(windowWidth - panelWidth + 15)
	y := float32(10)

	rl.DrawText("Behaviors", int32(x), int32(y), 20, rl.RayWhite)
	y += 30

	check := func(label string, v bool) bool {
		out := gui.CheckBox(rl.NewRectangle(x, y, 15, 15), label, v)
		y += 24
		return out
	}

	on.wander = check("wander", on.wander)
	on.walls = check("wall avoidance", on.walls)
	on.obstacles = check("obstacle avoidance", on.obstacles)
	on.separation = check("separation", on.separation)
	on.alignment = check("alignment", on.alignment)
	on.cohesion = check("cohesion", on.cohesion)
	on.seek = check("seek mouse", on.seek)
	on.arrive = check("arrive at mouse", on.arrive)
	on.flee = check("flee mouse", on.flee)
	on.pursuit = check("pursue lead", on.pursuit)
	on.offsetPursuit = check("offset pursuit", on.offsetPursuit)
	on.interpose = check("interpose lead/runner", on.interpose)
	on.hide = check("hide from lead", on.hide)
	on.followPath = check("patrol path", on.followPath)

	y += 15
	rl.DrawText("Wander", int32(x), int32(y), 20, rl.RayWhite)
	y += 28

	slider := func(label string, v, min, max float64) float64 {
		rl.DrawText(label, int32(x), int32(y), 12, rl.LightGray)
		y += 16
		out := gui.SliderBar(
			rl.NewRectangle(x, y, panelWidth-80, 16),
			"", "", float32(v), float32(min), float32(max))
		rl.DrawText(fmt.Sprintf("%.2f", v), int32(x+panelWidth-60), int32(y), 12, rl.RayWhite)
		y += 26
		return float64(out)
	}

	oldParams := params
	params.WanderJitter = slider("jitter", params.WanderJitter, 0, 100)
	params.WanderRadius = slider("radius", params.WanderRadius, 0.1, 5)
	params.WanderDistance = slider("distance", params.WanderDistance, 0.5, 10)
	params.FeelerLength = slider("feeler length", params.FeelerLength, 10, 120)

	if params != oldParams {
		for _, v := range box.vehicles {
			v.steer.SetParams(params)
		}
	}

	return on, params
}

func vec(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

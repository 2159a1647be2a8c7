// Package renderer draws the pitch and its agents with raylib. It reads
// positions and headings straight from the ECS through filter queries
// and never mutates simulation state.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/components"
)

// Team and ball colors.
var (
	RedTeamColor  = rl.NewColor(200, 60, 50, 255)
	BlueTeamColor = rl.NewColor(60, 110, 210, 255)
	BallColor     = rl.White
	PitchGreen    = rl.NewColor(70, 140, 70, 255)
	LineColor     = rl.NewColor(220, 230, 220, 255)
)

// PitchView holds the ECS filters for drawing agents.
type PitchView struct {
	players *ecs.Filter3[components.Position, components.Heading, components.PlayerTag]
	ball    *ecs.Filter3[components.Position, components.Physics, components.BallTag]
}

// NewPitchView creates the view's filters over the given world.
func NewPitchView(world *ecs.World) *PitchView {
	return &PitchView{
		players: ecs.NewFilter3[components.Position, components.Heading, components.PlayerTag](world),
		ball:    ecs.NewFilter3[components.Position, components.Physics, components.BallTag](world),
	}
}

// DrawAgents renders every player as an oriented triangle and the ball
// as a circle.
func (v *PitchView) DrawAgents() {
	query := v.players.Query()
	for query.Next() {
		pos, head, tag := query.Get()
		color := RedTeamColor
		if tag.TeamColor != 0 {
			color = BlueTeamColor
		}
		drawAgentTriangle(pos.Vec, head.Facing, 10, color)
	}

	ballQuery := v.ball.Query()
	for ballQuery.Next() {
		pos, phys, _ := ballQuery.Get()
		rl.DrawCircleV(vec(pos.Vec), float32(phys.BoundingRadius), BallColor)
		rl.DrawCircleLines(int32(pos.Vec.X), int32(pos.Vec.Y), float32(phys.BoundingRadius), rl.Black)
	}
}

// drawAgentTriangle draws an isoceles triangle pointing along facing.
func drawAgentTriangle(pos, facing r2.Vec, size float64, color rl.Color) {
	side := r2.Vec{X: -facing.Y, Y: facing.X}

	nose := r2.Add(pos, r2.Scale(size, facing))
	left := r2.Add(r2.Sub(pos, r2.Scale(size*0.6, facing)), r2.Scale(size*0.6, side))
	right := r2.Sub(r2.Sub(pos, r2.Scale(size*0.6, facing)), r2.Scale(size*0.6, side))

	// raylib culls triangles wound the wrong way; with y down the
	// counter-clockwise order is nose, left, right.
	rl.DrawTriangle(vec(nose), vec(left), vec(right), color)
	rl.DrawTriangleLines(vec(nose), vec(left), vec(right), rl.Black)
}

func vec(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

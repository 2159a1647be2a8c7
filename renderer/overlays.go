package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// Label is a short piece of text anchored to a world position.
type Label struct {
	Pos  r2.Vec
	Text string
}

// DrawLabels renders state names, ids and similar annotations next to
// their agents.
func DrawLabels(labels []Label, color rl.Color) {
	for _, l := range labels {
		rl.DrawText(l.Text, int32(l.Pos.X)+12, int32(l.Pos.Y)-12, 10, color)
	}
}

// DrawTargetLines draws a line from each agent to its steering target.
func DrawTargetLines(lines [][2]r2.Vec, color rl.Color) {
	for _, l := range lines {
		rl.DrawLineV(vec(l[0]), vec(l[1]), color)
		rl.DrawCircleLines(int32(l[1].X), int32(l[1].Y), 3, color)
	}
}

// DrawSupportSpots renders the support grid; circle area tracks the
// score and the chosen best spot is highlighted.
func DrawSupportSpots(spots []r2.Vec, scores []float64, best r2.Vec, color rl.Color) {
	for i, s := range spots {
		radius := float32(2 + scores[i]*2)
		rl.DrawCircleLines(int32(s.X), int32(s.Y), radius, color)
		if scores[i] > 0 {
			rl.DrawText(fmt.Sprintf("%.1f", scores[i]),
				int32(s.X)+5, int32(s.Y)+5, 10, color)
		}
	}
	rl.DrawCircleV(vec(best), 4, rl.Yellow)
}

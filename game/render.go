package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/renderer"
	"github.com/pthm-cable/kickoff/ui"
)

// Draw renders one frame. Only called in graphical mode.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(renderer.PitchGreen)

	goals := g.pitch.Goals()
	renderer.DrawPitch(g.pitch.PlayingArea(), [2]renderer.GoalLine{
		{TopPost: goals[0].TopPost(), BottomPost: goals[0].BottomPost()},
		{TopPost: goals[1].TopPost(), BottomPost: goals[1].BottomPost()},
	})

	if g.toggles.Regions {
		renderer.DrawRegions(g.pitch.Regions())
	}
	if g.toggles.SupportSpots {
		g.drawSupportSpots()
	}

	g.view.DrawAgents()

	if g.toggles.Targets {
		g.drawSteeringTargets()
	}
	if g.toggles.States || g.toggles.IDs {
		g.drawLabels()
	}
	if g.toggles.Perf {
		g.drawPerf()
	}

	g.inspector.Draw()

	red, blue := g.pitch.Score()
	g.toggles = g.hud.Draw(ui.Info{
		ScoreRed:       red,
		ScoreBlue:      blue,
		RedPossession:  g.lastStats.RedPossession,
		BluePossession: g.lastStats.BluePossession,
		Tick:           g.pitch.Tick(),
		Paused:         g.pitch.Paused(),
		GameOn:         g.pitch.GameOn(),
	}, g.toggles)

	rl.EndDrawing()
}

// drawSupportSpots overlays the attacking team's support grid.
func (g *Game) drawSupportSpots() {
	for _, t := range g.pitch.Teams() {
		if !t.InControl() {
			continue
		}
		grid := t.SupportSpots()
		spots := make([]r2.Vec, len(grid))
		scores := make([]float64, len(grid))
		for i, s := range grid {
			spots[i] = s.Pos
			scores[i] = s.Score
		}
		color := renderer.RedTeamColor
		if t.Color() == Blue {
			color = renderer.BlueTeamColor
		}
		renderer.DrawSupportSpots(spots, scores, t.SupportSpot(), color)
	}
}

func (g *Game) drawSteeringTargets() {
	var lines [][2]r2.Vec
	for _, t := range g.pitch.Teams() {
		for _, p := range t.Players() {
			lines = append(lines, [2]r2.Vec{p.Pos(), p.Base().Steering().Target()})
		}
	}
	renderer.DrawTargetLines(lines, rl.NewColor(255, 255, 255, 90))
}

func (g *Game) drawLabels() {
	var labels []renderer.Label
	for _, t := range g.pitch.Teams() {
		for _, p := range t.Players() {
			text := ""
			if g.toggles.IDs {
				text = fmt.Sprintf("#%d ", p.ID())
			}
			if g.toggles.States {
				text += p.StateName()
			}
			labels = append(labels, renderer.Label{Pos: p.Pos(), Text: text})
		}
	}
	renderer.DrawLabels(labels, rl.RayWhite)
}

func (g *Game) drawPerf() {
	y := int32(30)
	for _, name := range g.perf.SortedNames() {
		rl.DrawText(fmt.Sprintf("%-10s %v", name, g.perf.Avg(name)), 10, y, 10, rl.Yellow)
		y += 12
	}
}

package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// handleInput processes keyboard shortcuts and player selection. Only
// called in graphical mode.
func (g *Game) handleInput() {
	switch {
	case rl.IsKeyPressed(rl.KeyP):
		g.pitch.TogglePause()
	case rl.IsKeyPressed(rl.KeyR):
		g.toggles.Regions = !g.toggles.Regions
	case rl.IsKeyPressed(rl.KeyS):
		g.toggles.SupportSpots = !g.toggles.SupportSpots
	case rl.IsKeyPressed(rl.KeyT):
		g.toggles.Targets = !g.toggles.Targets
	case rl.IsKeyPressed(rl.KeyN):
		g.toggles.States = !g.toggles.States
	case rl.IsKeyPressed(rl.KeyI):
		g.toggles.IDs = !g.toggles.IDs
	case rl.IsKeyPressed(rl.KeyF):
		g.toggles.Perf = !g.toggles.Perf
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		m := rl.GetMousePosition()
		g.selectPlayerAt(r2.Vec{X: float64(m.X), Y: float64(m.Y)})
	}
}

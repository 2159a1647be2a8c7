// Package ui draws the heads-up display and the debug control panel.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Toggles are the debug overlay switches exposed in the control panel.
type Toggles struct {
	Regions      bool
	SupportSpots bool
	Targets      bool
	States       bool
	IDs          bool
	Perf         bool
}

// Info is the per-frame data the HUD displays.
type Info struct {
	ScoreRed       int
	ScoreBlue      int
	RedPossession  float64
	BluePossession float64
	Tick           int32
	Paused         bool
	GameOn         bool
}

// HUD renders the score line and the collapsible control panel.
type HUD struct {
	screenWidth  int32
	screenHeight int32
	showPanel    bool
}

// NewHUD creates a HUD for the given screen size.
func NewHUD(width, height int32) *HUD {
	return &HUD{screenWidth: width, screenHeight: height}
}

// Draw renders the HUD and returns the (possibly changed) toggles.
func (h *HUD) Draw(info Info, toggles Toggles) Toggles {
	score := fmt.Sprintf("%d : %d", info.ScoreRed, info.ScoreBlue)
	rl.DrawText(score, h.screenWidth/2-rl.MeasureText(score, 30)/2, 2, 30, rl.White)

	possession := fmt.Sprintf("possession  red %.0f%%  blue %.0f%%",
		info.RedPossession*100, info.BluePossession*100)
	rl.DrawText(possession, 10, 2, 10, rl.White)
	rl.DrawText(fmt.Sprintf("tick %d", info.Tick), 10, 14, 10, rl.White)

	if info.Paused {
		banner := "PAUSED"
		rl.DrawText(banner, h.screenWidth/2-rl.MeasureText(banner, 40)/2,
			h.screenHeight/2-20, 40, rl.Yellow)
	}
	if !info.GameOn && !info.Paused {
		rl.DrawText("kickoff...", h.screenWidth/2-30, h.screenHeight/2+40, 12, rl.White)
	}

	if gui.Button(rl.NewRectangle(float32(h.screenWidth)-90, 5, 85, 20), "debug panel") {
		h.showPanel = !h.showPanel
	}
	if !h.showPanel {
		return toggles
	}

	x := float32(h.screenWidth) - 150
	y := float32(30)
	rl.DrawRectangle(int32(x)-10, int32(y)-5, 160, 150, rl.NewColor(0, 0, 0, 160))

	toggles.Regions = gui.CheckBox(rl.NewRectangle(x, y, 15, 15), "regions", toggles.Regions)
	toggles.SupportSpots = gui.CheckBox(rl.NewRectangle(x, y+22, 15, 15), "support spots", toggles.SupportSpots)
	toggles.Targets = gui.CheckBox(rl.NewRectangle(x, y+44, 15, 15), "steering targets", toggles.Targets)
	toggles.States = gui.CheckBox(rl.NewRectangle(x, y+66, 15, 15), "states", toggles.States)
	toggles.IDs = gui.CheckBox(rl.NewRectangle(x, y+88, 15, 15), "ids", toggles.IDs)
	toggles.Perf = gui.CheckBox(rl.NewRectangle(x, y+110, 15, 15), "perf", toggles.Perf)

	return toggles
}

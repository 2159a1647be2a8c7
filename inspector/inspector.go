// Package inspector shows a detail panel for a clicked player: identity,
// current state and active steering behaviors.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// Subject is the read-only view of whatever the inspector displays. The
// game layer adapts its players to this; the inspector never touches
// simulation types directly.
type Subject interface {
	ID() int
	TeamName() string
	RoleName() string
	StateName() string
	BehaviorNames() []string
	Pos() r2.Vec
	Speed() float64
}

// Inspector tracks the current selection and draws its panel.
type Inspector struct {
	screenWidth  int32
	screenHeight int32
	subject      Subject
}

// NewInspector creates an inspector for the given screen size.
func NewInspector(width, height int32) *Inspector {
	return &Inspector{screenWidth: width, screenHeight: height}
}

// Select sets the inspected subject; nil clears the selection.
func (in *Inspector) Select(s Subject) { in.subject = s }

// Selected returns the current subject, or nil.
func (in *Inspector) Selected() Subject { return in.subject }

// Draw renders the detail panel and a marker on the subject.
func (in *Inspector) Draw() {
	s := in.subject
	if s == nil {
		return
	}

	pos := s.Pos()
	rl.DrawCircleLines(int32(pos.X), int32(pos.Y), 14, rl.Yellow)

	const w, pad = 220, 8
	x := in.screenWidth - w - 10
	y := in.screenHeight - 130

	rl.DrawRectangle(x, y, w, 120, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, w, 120, rl.Gray)

	line := func(n int32, text string) {
		rl.DrawText(text, x+pad, y+pad+n*16, 10, rl.RayWhite)
	}
	line(0, fmt.Sprintf("player %d  (%s %s)", s.ID(), s.TeamName(), s.RoleName()))
	line(1, "state: "+s.StateName())
	line(2, fmt.Sprintf("pos: %.0f, %.0f   speed: %.2f", pos.X, pos.Y, s.Speed()))

	behaviors := s.BehaviorNames()
	if len(behaviors) == 0 {
		line(3, "steering: none")
	} else {
		line(3, "steering:")
		for i, b := range behaviors {
			line(4+int32(i), "  "+b)
		}
	}
}

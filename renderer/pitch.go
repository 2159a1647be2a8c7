package renderer

import (
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/geom"
)

// GoalLine is the drawable description of one goal mouth.
type GoalLine struct {
	TopPost    r2.Vec
	BottomPost r2.Vec
}

// DrawPitch renders the playing area markings: boundary, halfway line,
// center circle and both goal mouths.
func DrawPitch(area geom.Region, goals [2]GoalLine) {
	left := int32(area.Left())
	top := int32(area.Top())
	w := int32(area.Width())
	h := int32(area.Height())

	rl.DrawRectangleLines(left, top, w, h, LineColor)

	center := area.Center()
	rl.DrawLine(int32(center.X), top, int32(center.X), top+h, LineColor)
	rl.DrawCircleLines(int32(center.X), int32(center.Y), 60, LineColor)

	for _, g := range goals {
		rl.DrawLineEx(vec(g.TopPost), vec(g.BottomPost), 3, rl.Yellow)
	}
}

// DrawRegions overlays the tactical grid with region ids.
func DrawRegions(regions []geom.Region) {
	faint := rl.NewColor(255, 255, 255, 40)
	for _, r := range regions {
		rl.DrawRectangleLines(int32(r.Left()), int32(r.Top()),
			int32(r.Width()), int32(r.Height()), faint)
		rl.DrawText(strconv.Itoa(r.ID()),
			int32(r.Center().X)-5, int32(r.Center().Y)-5, 10, faint)
	}
}

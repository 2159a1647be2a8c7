package game

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/config"
)

func TestRegionsColumnMajor(t *testing.T) {
	p := newTestPitch(t)
	cfg := config.Cfg()

	area := p.PlayingArea()
	cols, rows := cfg.Pitch.NumRegionsX, cfg.Pitch.NumRegionsY
	w := area.Width() / float64(cols)
	h := area.Height() / float64(rows)

	// id = col*rows + row, so id 4 on the 6x3 grid is column 1, row 1.
	r := p.RegionFromIndex(4)
	wantCenter := r2.Vec{
		X: area.Left() + 1.5*w,
		Y: area.Top() + 1.5*h,
	}
	if r.Center() != wantCenter {
		t.Errorf("region 4 center = %v, want %v", r.Center(), wantCenter)
	}

	if got := len(p.Regions()); got != cols*rows {
		t.Errorf("region count = %d, want %d", got, cols*rows)
	}
	for i, region := range p.Regions() {
		if region.ID() != i {
			t.Fatalf("region at index %d has id %d", i, region.ID())
		}
	}
}

func TestRegionFromIndexPanicsOutOfRange(t *testing.T) {
	p := newTestPitch(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range region id")
		}
	}()
	p.RegionFromIndex(len(p.Regions()))
}

func TestKickoffStartsPlay(t *testing.T) {
	p := newTestPitch(t)

	if p.GameOn() {
		t.Fatal("play must not be live before kickoff")
	}
	for _, team := range p.Teams() {
		if got := team.StateName(); got != "PrepareForKickOff" {
			t.Fatalf("%s team state = %s, want PrepareForKickOff", team.Color(), got)
		}
	}

	// Players spawn at their kickoff homes, so one tick is enough.
	dt := config.Cfg().Physics.DT
	for i := 0; i < 10 && !p.GameOn(); i++ {
		p.Update(dt)
	}
	if !p.GameOn() {
		t.Fatal("play never went live after kickoff")
	}
}

func TestGoalScoredResetsForKickoff(t *testing.T) {
	p := newTestPitch(t)
	dt := config.Cfg().Physics.DT

	for i := 0; i < 10 && !p.GameOn(); i++ {
		p.Update(dt)
	}

	// Fire the ball into the left goal, which blue attacks.
	goal := p.Goals()[0]
	p.Ball().PlaceAt(r2.Vec{X: goal.Center().X + 40, Y: goal.Center().Y})
	p.Ball().Kick(r2.Vec{X: -1}, 10)

	scored := false
	for i := 0; i < 20; i++ {
		p.Update(dt)
		red, blue := p.Score()
		if blue == 1 {
			if red != 0 {
				t.Fatalf("score = %d:%d, want 0:1", red, blue)
			}
			scored = true
			break
		}
	}
	if !scored {
		t.Fatal("ball through the goal mouth never scored")
	}

	if p.GameOn() {
		t.Error("play must stop after a goal")
	}
	if got := p.Ball().Pos(); got != p.PlayingArea().Center() {
		t.Errorf("ball at %v, want pitch center %v", got, p.PlayingArea().Center())
	}
	for _, team := range p.Teams() {
		if got := team.StateName(); got != "PrepareForKickOff" {
			t.Errorf("%s team state = %s, want PrepareForKickOff", team.Color(), got)
		}
	}
}

func TestPlayersRespectSpeedLimit(t *testing.T) {
	p := newTestPitch(t)
	dt := config.Cfg().Physics.DT

	for i := 0; i < 600; i++ {
		p.Update(dt)
		for _, team := range p.Teams() {
			for _, player := range team.Players() {
				if s, max := player.Speed(), player.MaxSpeed(); s > max+1e-9 {
					t.Fatalf("tick %d: player %d speed %v above limit %v",
						i, player.ID(), s, max)
				}
			}
		}
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	p := newTestPitch(t)
	dt := config.Cfg().Physics.DT

	p.Update(dt)
	tick := p.Tick()

	p.TogglePause()
	p.Update(dt)
	if p.Tick() != tick {
		t.Error("paused pitch still advanced")
	}

	p.TogglePause()
	p.Update(dt)
	if p.Tick() != tick+1 {
		t.Error("unpaused pitch did not advance")
	}
}

package game

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/config"
	"github.com/pthm-cable/kickoff/geom"
)

// parkTeam moves every player on a team to the same position, out of the
// way of whatever the test is arranging.
func parkTeam(team *Team, pos r2.Vec) {
	for _, p := range team.Players() {
		p.Base().SetPos(pos)
	}
}

func TestPassSafeOpponentBehindKicker(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]

	from := r2.Vec{X: 200, Y: 300}
	target := r2.Vec{X: 400, Y: 300}

	// Every opponent directly on the pass lane but behind the kick point.
	parkTeam(blue, r2.Vec{X: 150, Y: 300})

	if !red.IsPassSafeFromAllOpponents(from, target, nil, 3.0) {
		t.Error("opponents behind the kick point must never threaten a pass")
	}
}

func TestPassUnsafeOpponentOnLane(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]

	from := r2.Vec{X: 200, Y: 300}
	target := r2.Vec{X: 400, Y: 300}

	parkTeam(blue, r2.Vec{X: 150, Y: 300})
	// One opponent sitting on the lane between kicker and target.
	blue.Players()[2].Base().SetPos(r2.Vec{X: 300, Y: 300})

	if red.IsPassSafeFromAllOpponents(from, target, nil, 3.0) {
		t.Error("an opponent on the pass lane must make the pass unsafe")
	}
}

func TestPassSafeOpponentFarOffLane(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]

	from := r2.Vec{X: 200, Y: 300}
	target := r2.Vec{X: 400, Y: 300}

	parkTeam(blue, r2.Vec{X: 150, Y: 300})
	// Ahead of the kicker but far to the side of the lane.
	blue.Players()[2].Base().SetPos(r2.Vec{X: 300, Y: 180})

	if !red.IsPassSafeFromAllOpponents(from, target, nil, 3.0) {
		t.Error("an opponent far off the lane must not threaten the pass")
	}
}

func TestCanShoot(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]
	power := config.Cfg().Team.MaxShootingForce

	// Clear the path: every opponent behind the shooting position.
	parkTeam(blue, r2.Vec{X: 100, Y: 300})

	from := r2.Vec{X: 700, Y: 300}
	target, ok := red.CanShoot(from, power)
	if !ok {
		t.Fatal("expected a clear shot at an open goal")
	}
	goal := red.OpponentsGoal()
	if target.X != goal.Center().X {
		t.Errorf("shot target x = %v, want goal line %v", target.X, goal.Center().X)
	}
	if target.Y < goal.TopPost().Y || target.Y > goal.BottomPost().Y {
		t.Errorf("shot target y = %v outside goal mouth [%v,%v]",
			target.Y, goal.TopPost().Y, goal.BottomPost().Y)
	}
}

func TestCanShootBallDiesShort(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]

	parkTeam(blue, r2.Vec{X: 100, Y: 300})

	// From the own half with a tap: friction kills the ball long before
	// the goal line.
	if _, ok := red.CanShoot(r2.Vec{X: 100, Y: 300}, 2.0); ok {
		t.Error("expected no shot when the ball cannot reach the goal")
	}
}

func TestFindPassPicksForwardReceiver(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]
	cfg := config.Cfg()

	parkTeam(blue, r2.Vec{X: 50, Y: 50})

	passer := red.Players()[1]
	forward := red.Players()[2]

	// The ball sits with the passer; teammates other than the forward are
	// inside the minimum passing distance.
	p.Ball().PlaceAt(r2.Vec{X: 450, Y: 300})
	passer.Base().SetPos(r2.Vec{X: 450, Y: 300})
	forward.Base().SetPos(r2.Vec{X: 650, Y: 300})
	red.Players()[0].Base().SetPos(r2.Vec{X: 400, Y: 300})
	red.Players()[3].Base().SetPos(r2.Vec{X: 460, Y: 320})
	red.Players()[4].Base().SetPos(r2.Vec{X: 430, Y: 280})

	receiver, target, ok := red.FindPass(passer, cfg.Team.MaxPassingForce, cfg.Team.MinPassDistance)
	if !ok {
		t.Fatal("expected a pass to the open forward")
	}
	if receiver != forward {
		t.Errorf("receiver = player %d, want player %d", receiver.ID(), forward.ID())
	}
	if target.X <= 450 {
		t.Errorf("pass target %v not ahead of the ball", target)
	}
	if !p.PlayingArea().Inside(target, geom.Normal) {
		t.Errorf("pass target %v off the pitch", target)
	}
}

func TestFindPassRespectsMinimumDistance(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]
	cfg := config.Cfg()

	parkTeam(blue, r2.Vec{X: 50, Y: 50})

	passer := red.Players()[1]
	p.Ball().PlaceAt(r2.Vec{X: 450, Y: 300})
	passer.Base().SetPos(r2.Vec{X: 450, Y: 300})

	// Every teammate bunched within the minimum passing distance.
	for _, teammate := range red.Players() {
		if teammate != passer {
			teammate.Base().SetPos(r2.Vec{X: 480, Y: 300})
		}
	}

	if _, _, ok := red.FindPass(passer, cfg.Team.MaxPassingForce, cfg.Team.MinPassDistance); ok {
		t.Error("expected no pass when all teammates are too close")
	}
}

func TestControlIsExclusive(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]

	blue.SetControllingPlayer(blue.Players()[1])
	if !blue.InControl() {
		t.Fatal("blue should control the ball")
	}

	red.SetControllingPlayer(red.Players()[1])
	if !red.InControl() {
		t.Error("red should control the ball after winning it")
	}
	if blue.InControl() {
		t.Error("possession must be stripped from the other team")
	}
}

func TestPlayersSpawnAtHome(t *testing.T) {
	p := newTestPitch(t)
	for _, team := range p.Teams() {
		if !team.AllPlayersAtHome() {
			t.Errorf("%s team not at home after spawn", team.Color())
		}
	}
}

func TestClosestPlayerToBall(t *testing.T) {
	p := newTestPitch(t)
	red := p.Teams()[0]

	p.Ball().PlaceAt(r2.Vec{X: 300, Y: 300})
	near := red.Players()[3]
	near.Base().SetPos(r2.Vec{X: 310, Y: 300})

	red.calculateClosestPlayerToBall()
	if got := red.PlayerClosestToBall(); got != near {
		t.Errorf("closest = player %d, want player %d", got.ID(), near.ID())
	}
	if red.ClosestDistSqToBall() != 100 {
		t.Errorf("closest distSq = %v, want 100", red.ClosestDistSqToBall())
	}
}

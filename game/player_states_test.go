package game

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/config"
	"github.com/pthm-cable/kickoff/steering"
)

func firstFieldPlayer(t *testing.T, team *Team) *FieldPlayer {
	t.Helper()
	for _, p := range team.Players() {
		if fp, ok := p.(*FieldPlayer); ok {
			return fp
		}
	}
	t.Fatal("team has no field players")
	return nil
}

func TestReceiveBallPursuesInAttackingThird(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]

	parkTeam(blue, r2.Vec{X: 40, Y: 560})
	receiver := firstFieldPlayer(t, red)
	receiver.SetPos(r2.Vec{X: 700, Y: 300})

	if !receiver.InHotRegion() {
		t.Fatal("receiver not inside the attacking third")
	}

	// Force the chance gate open so only the region rule can decide.
	config.Cfg().Player.ChanceOfArriveReceive = 1.0

	receiver.Machine().ChangeState(ReceiveBall)

	if !receiver.Steering().IsOn(steering.Pursuit) {
		t.Error("receiver in the attacking third should pursue the ball")
	}
	if receiver.Steering().IsOn(steering.Arrive) {
		t.Error("arrive-style receive used inside the attacking third")
	}
}

func TestReceiveBallArrivesWhenUnthreatened(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]

	parkTeam(blue, r2.Vec{X: 40, Y: 560})
	receiver := firstFieldPlayer(t, red)
	receiver.SetPos(r2.Vec{X: 400, Y: 300})

	config.Cfg().Player.ChanceOfArriveReceive = 1.0

	receiver.Machine().ChangeState(ReceiveBall)

	if !receiver.Steering().IsOn(steering.Arrive) {
		t.Error("unthreatened midfield receiver should use arrive")
	}
	if receiver.Steering().IsOn(steering.Pursuit) {
		t.Error("pursuit enabled for an arrive-style receive")
	}
}

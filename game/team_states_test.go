package game

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestTeamFallsBackToDefendingOnLostControl(t *testing.T) {
	p := newTestPitch(t)
	red := p.Teams()[0]

	carrier := red.Players()[1]
	carrier.Base().SetPos(r2.Vec{X: 400, Y: 300})
	red.SetControllingPlayer(carrier)
	red.Machine().ChangeState(TeamAttacking)

	if got := red.StateName(); got != "Attacking" {
		t.Fatalf("state = %q, want Attacking", got)
	}

	red.LostControl()
	red.Machine().Update()

	if got := red.StateName(); got != "Defending" {
		t.Errorf("state after losing control = %q, want Defending", got)
	}
}

func TestTeamAttacksOnGainingControl(t *testing.T) {
	p := newTestPitch(t)
	red := p.Teams()[0]

	red.Machine().ChangeState(TeamDefending)

	carrier := red.Players()[1]
	red.SetControllingPlayer(carrier)
	red.Machine().Update()

	if got := red.StateName(); got != "Attacking" {
		t.Errorf("state after gaining control = %q, want Attacking", got)
	}
}

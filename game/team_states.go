package game

import "github.com/pthm-cable/kickoff/fsm"

// Team states, singletons shared by both sides.
var (
	TeamAttacking         = &teamAttacking{}
	TeamDefending         = &teamDefending{}
	TeamPrepareForKickOff = &teamPrepareForKickOff{}
)

// --- attacking ---

type teamAttacking struct{}

func (teamAttacking) String() string { return "Attacking" }

func (teamAttacking) Enter(t *Team) {
	logTransition("team", int(t.color), "Attacking")
	t.setHomeRegions(attackingRegions[t.color])
}

func (teamAttacking) Execute(t *Team) {
	if !t.InControl() {
		t.Machine().ChangeState(TeamDefending)
		return
	}
	t.DetermineBestSupportingPosition()
}

func (teamAttacking) Exit(t *Team) {
	t.SetSupportingPlayer(nil)
}

func (teamAttacking) OnMessage(*Team, fsm.Telegram) bool { return false }

// --- defending ---

type teamDefending struct{}

func (teamDefending) String() string { return "Defending" }

func (teamDefending) Enter(t *Team) {
	logTransition("team", int(t.color), "Defending")
	t.setHomeRegions(defendingRegions[t.color])
}

func (teamDefending) Execute(t *Team) {
	if t.InControl() {
		t.Machine().ChangeState(TeamAttacking)
	}
}

func (teamDefending) Exit(t *Team) {}

func (teamDefending) OnMessage(*Team, fsm.Telegram) bool { return false }

// --- prepare for kickoff ---

// teamPrepareForKickOff clears all key-player references and walks
// everyone back to their kickoff spots. Play restarts once both full
// teams are home.
type teamPrepareForKickOff struct{}

func (teamPrepareForKickOff) String() string { return "PrepareForKickOff" }

func (teamPrepareForKickOff) Enter(t *Team) {
	logTransition("team", int(t.color), "PrepareForKickOff")

	t.controllingPlayer = nil
	t.supportingPlayer = nil
	t.receivingPlayer = nil
	t.playerClosestToBall = nil

	t.setHomeRegions(defendingRegions[t.color])
	t.ReturnAllFieldPlayersHome()
}

func (teamPrepareForKickOff) Execute(t *Team) {
	if t.AllPlayersAtHome() && t.Opponents().AllPlayersAtHome() {
		t.Machine().ChangeState(TeamDefending)
		t.pitch.SetGameOn(true)
	}
}

func (teamPrepareForKickOff) Exit(t *Team) {}

func (teamPrepareForKickOff) OnMessage(*Team, fsm.Telegram) bool { return false }

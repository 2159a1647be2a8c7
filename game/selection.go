package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/geom"
)

// selectRadius is how close a click must land to a player to select it.
const selectRadius = 14.0

// playerSubject adapts a player to the inspector's Subject interface.
type playerSubject struct {
	player Player
}

func (s playerSubject) ID() int           { return s.player.ID() }
func (s playerSubject) TeamName() string  { return s.player.Base().Team().Color().String() }
func (s playerSubject) RoleName() string  { return s.player.Role().String() }
func (s playerSubject) StateName() string { return s.player.StateName() }
func (s playerSubject) Pos() r2.Vec       { return s.player.Pos() }
func (s playerSubject) Speed() float64    { return s.player.Speed() }

func (s playerSubject) BehaviorNames() []string {
	return s.player.Base().Steering().Active().Names()
}

// selectPlayerAt picks the nearest player within the select radius, or
// clears the selection when the click lands on open grass.
func (g *Game) selectPlayerAt(pos r2.Vec) {
	var nearest Player
	nearestDistSq := selectRadius * selectRadius

	for _, t := range g.pitch.Teams() {
		for _, p := range t.Players() {
			if d := geom.DistanceSq(pos, p.Pos()); d < nearestDistSq {
				nearestDistSq = d
				nearest = p
			}
		}
	}

	if nearest == nil {
		g.inspector.Select(nil)
		return
	}
	g.inspector.Select(playerSubject{player: nearest})
}

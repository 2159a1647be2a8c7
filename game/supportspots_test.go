package game

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestSupportSpotsLieInOpponentHalf(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]
	centerX := p.PlayingArea().Center().X

	for _, s := range red.SupportSpots() {
		if s.Pos.X <= centerX {
			t.Errorf("red support spot %v not in the right half", s.Pos)
		}
	}
	for _, s := range blue.SupportSpots() {
		if s.Pos.X >= centerX {
			t.Errorf("blue support spot %v not in the left half", s.Pos)
		}
	}
}

func TestBestSupportingSpotScoring(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]

	// An open pitch: opponents parked in their own corner, red carrier in
	// midfield.
	parkTeam(blue, r2.Vec{X: 860, Y: 560})
	carrier := red.Players()[1]
	carrier.Base().SetPos(r2.Vec{X: 400, Y: 300})
	red.SetControllingPlayer(carrier)

	best := red.spots.DetermineBestSupportingPosition()

	var bestScore float64
	found := false
	for _, s := range red.SupportSpots() {
		if s.Score > bestScore {
			bestScore = s.Score
		}
		if s.Pos == best {
			found = true
		}
	}
	if !found {
		t.Fatalf("best spot %v not part of the grid", best)
	}
	if bestScore <= 0 {
		t.Fatal("no spot scored with an open pitch and a carrier")
	}

	// The chosen spot carries the top score.
	for _, s := range red.SupportSpots() {
		if s.Pos == best && s.Score != bestScore {
			t.Errorf("best spot score = %v, top score = %v", s.Score, bestScore)
		}
	}
}

func TestSupportSpotRecomputeIsRateLimited(t *testing.T) {
	p := newTestPitch(t)
	red, blue := p.Teams()[0], p.Teams()[1]

	parkTeam(blue, r2.Vec{X: 860, Y: 560})
	carrier := red.Players()[1]
	carrier.Base().SetPos(r2.Vec{X: 400, Y: 300})
	red.SetControllingPlayer(carrier)

	first := red.spots.DetermineBestSupportingPosition()

	// Moving the carrier changes the scoring, but inside the regulator
	// window the cached spot is served.
	carrier.Base().SetPos(r2.Vec{X: 700, Y: 100})
	if got := red.spots.DetermineBestSupportingPosition(); got != first {
		t.Error("support spot recomputed inside the regulator window")
	}

	// Past the window the grid is rescored.
	p.simTime += 2.0
	moved := red.spots.DetermineBestSupportingPosition()
	if moved == first {
		t.Error("support spot not recomputed after the regulator window")
	}
}

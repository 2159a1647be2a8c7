package game

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/config"
	"github.com/pthm-cable/kickoff/geom"
)

// SupportSpot is one candidate supporting position with its last score.
type SupportSpot struct {
	Pos   r2.Vec
	Score float64
}

// SupportSpotCalculator scores a static grid of candidate positions in
// the opponent's half. Scoring walks every spot against every opponent,
// so a Regulator limits recomputation to roughly once per second; in
// between, the cached best spot is served.
type SupportSpotCalculator struct {
	team    *Team
	spots   []SupportSpot
	best    *SupportSpot
	limiter *Regulator
}

func newSupportSpotCalculator(numX, numY int, team *Team) *SupportSpotCalculator {
	c := &SupportSpotCalculator{
		team:    team,
		limiter: NewRegulator(config.Cfg().SupportSpots.UpdateFreq),
	}

	area := team.pitch.PlayingArea()
	// The grid covers slightly less than the half to keep spots off the
	// boundary lines.
	gridHeight := area.Height() * 0.8
	gridWidth := area.Width() * 0.9

	sliceX := gridWidth / float64(numX)
	sliceY := gridHeight / float64(numY)

	left := area.Left() + (area.Width()-gridWidth)/2 + sliceX/2
	right := area.Right() - (area.Width()-gridWidth)/2 - sliceX/2
	top := area.Top() + (area.Height()-gridHeight)/2 + sliceY/2

	// Only the columns in the opponent's half are candidates.
	for x := 0; x < numX/2-1; x++ {
		for y := 0; y < numY; y++ {
			posX := left + float64(x)*sliceX
			if team.Color() == Red {
				// Red attacks right: spots run inward from the right edge.
				posX = right - float64(x)*sliceX
			}
			c.spots = append(c.spots, SupportSpot{
				Pos: r2.Vec{X: posX, Y: top + float64(y)*sliceY},
			})
		}
	}
	// config.Validate keeps the grid non-empty; an empty grid here means
	// the calculator was constructed with bad dimensions directly.
	if len(c.spots) == 0 {
		panic("game: support spot grid has no columns in the opponent half")
	}
	return c
}

// Spots returns the scored grid for overlays.
func (c *SupportSpotCalculator) Spots() []SupportSpot { return c.spots }

// BestSupportingSpot returns the cached best spot, computing it first if
// no score pass has run yet.
func (c *SupportSpotCalculator) BestSupportingSpot() r2.Vec {
	if c.best != nil {
		return c.best.Pos
	}
	return c.DetermineBestSupportingPosition()
}

// DetermineBestSupportingPosition rescores the grid, rate-limited. Ties
// keep the first spot seen, so equal-scoring grids are deterministic.
func (c *SupportSpotCalculator) DetermineBestSupportingPosition() r2.Vec {
	if !c.limiter.Ready(c.team.pitch.SimTime()) && c.best != nil {
		return c.best.Pos
	}

	cfg := config.Cfg().SupportSpots
	controlling := c.team.ControllingPlayer()

	c.best = nil
	bestScore := 0.0

	for i := range c.spots {
		spot := &c.spots[i]
		spot.Score = 0

		if controlling == nil {
			continue
		}

		// A spot is only useful if the carrier could pass to it.
		if c.team.IsPassSafeFromAllOpponents(controlling.Pos(), spot.Pos, nil,
			config.Cfg().Team.MaxPassingForce) {
			spot.Score += cfg.PassSafeScore
		}

		// Better still if a goal attempt could follow.
		if _, ok := c.team.CanShoot(spot.Pos, config.Cfg().Team.MaxShootingForce); ok {
			spot.Score += cfg.CanScoreScore
		}

		// Bonus peaking at the optimal distance from the carrier, so
		// support is neither on top of the ball nor a hopeful punt away.
		dist := geom.Distance(controlling.Pos(), spot.Pos)
		if delta := math.Abs(cfg.OptimalDistance - dist); delta < cfg.OptimalDistance {
			spot.Score += cfg.DistFromControllingScore *
				(cfg.OptimalDistance - delta) / cfg.OptimalDistance
		}

		if spot.Score > bestScore {
			bestScore = spot.Score
			c.best = spot
		}
	}

	if c.best == nil {
		// No controlling player or all spots scored zero: fall back to
		// the grid spot nearest the opponent goal center.
		c.best = &c.spots[0]
	}
	return c.best.Pos
}

// Package telemetry accumulates match events into fixed windows and
// writes them out as CSV for offline analysis.
package telemetry

// Collector counts match events within a stats window. The pitch calls
// the Record methods as play develops; the host flushes a WindowStats
// every windowDurationTicks ticks.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	// Per-window counters, indexed by team (0 = red, 1 = blue).
	passes          [2]int
	shots           [2]int
	goals           [2]int
	possessionTicks [2]int
	contestedTicks  int
}

// NewCollector creates a collector with the given window length.
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticks := int32(windowDurationSec / dt)
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticks,
		dt:                  dt,
	}
}

// RecordPass counts a completed pass kick for a team.
func (c *Collector) RecordPass(team int) { c.passes[team]++ }

// RecordShot counts a shot at goal for a team.
func (c *Collector) RecordShot(team int) { c.shots[team]++ }

// RecordGoal counts a goal for a team.
func (c *Collector) RecordGoal(team int) { c.goals[team]++ }

// RecordPossession records which team controlled the ball this tick;
// -1 means the ball was contested.
func (c *Collector) RecordPossession(team int) {
	if team < 0 {
		c.contestedTicks++
		return
	}
	c.possessionTicks[team]++
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// WindowDurationTicks returns the window length in ticks.
func (c *Collector) WindowDurationTicks() int32 { return c.windowDurationTicks }

// Flush produces the window's stats and resets the counters. The caller
// supplies the running score.
func (c *Collector) Flush(currentTick int32, scoreRed, scoreBlue int) WindowStats {
	redShare, blueShare := PossessionShares(
		c.possessionTicks[0], c.possessionTicks[1], c.contestedTicks)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		RedPossession:  redShare,
		BluePossession: blueShare,

		RedPasses:  c.passes[0],
		BluePasses: c.passes[1],
		RedShots:   c.shots[0],
		BlueShots:  c.shots[1],
		RedGoals:   c.goals[0],
		BlueGoals:  c.goals[1],

		ScoreRed:  scoreRed,
		ScoreBlue: scoreBlue,
	}

	c.windowStartTick = currentTick
	c.passes = [2]int{}
	c.shots = [2]int{}
	c.goals = [2]int{}
	c.possessionTicks = [2]int{}
	c.contestedTicks = 0

	return stats
}

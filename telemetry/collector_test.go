package telemetry

import (
	"math"
	"testing"
)

func TestCollectorFlushResetsCounters(t *testing.T) {
	c := NewCollector(1.0, 1.0/60)
	if c.WindowDurationTicks() != 60 {
		t.Fatalf("window = %d ticks, want 60", c.WindowDurationTicks())
	}

	c.RecordPass(0)
	c.RecordPass(0)
	c.RecordShot(1)
	c.RecordGoal(1)

	if !c.ShouldFlush(60) {
		t.Fatal("window complete but ShouldFlush is false")
	}

	stats := c.Flush(60, 0, 1)
	if stats.RedPasses != 2 || stats.BlueShots != 1 || stats.BlueGoals != 1 {
		t.Errorf("stats = %+v, counters not carried into the window", stats)
	}
	if stats.ScoreBlue != 1 {
		t.Errorf("score_blue = %d, want 1", stats.ScoreBlue)
	}

	// Counters reset after the flush.
	next := c.Flush(120, 0, 1)
	if next.RedPasses != 0 || next.BlueShots != 0 || next.BlueGoals != 0 {
		t.Errorf("second window = %+v, want zeroed counters", next)
	}
	if next.WindowStartTick != 60 {
		t.Errorf("window start = %d, want 60", next.WindowStartTick)
	}
}

func TestPossessionShares(t *testing.T) {
	red, blue := PossessionShares(30, 10, 20)
	if math.Abs(red-0.5) > 1e-12 {
		t.Errorf("red share = %v, want 0.5", red)
	}
	if math.Abs(blue-10.0/60.0) > 1e-12 {
		t.Errorf("blue share = %v, want 1/6", blue)
	}

	// Empty window yields zero, not NaN.
	red, blue = PossessionShares(0, 0, 0)
	if red != 0 || blue != 0 {
		t.Errorf("empty window shares = %v, %v, want zeros", red, blue)
	}
}

package telemetry

import (
	"testing"
	"time"
)

func TestPerfStatsAveragesAndOrdering(t *testing.T) {
	p := NewPerfStats()

	p.Record("ball", 2*time.Millisecond)
	p.Record("ball", 4*time.Millisecond)
	p.Record("teams", 10*time.Millisecond)

	if got := p.Avg("ball"); got != 3*time.Millisecond {
		t.Errorf("avg ball = %v, want 3ms", got)
	}

	names := p.SortedNames()
	if len(names) != 2 || names[0] != "teams" {
		t.Errorf("sorted names = %v, want teams first", names)
	}

	row := p.ToCSV(42)
	if row.Tick != 42 {
		t.Errorf("tick = %d, want 42", row.Tick)
	}
	if row.TeamsMs != 10 {
		t.Errorf("teams_ms = %v, want 10", row.TeamsMs)
	}
}

func TestPerfStatsRollingWindow(t *testing.T) {
	p := NewPerfStats()
	p.maxSamples = 3

	for i := 0; i < 10; i++ {
		p.Record("ball", time.Duration(i)*time.Millisecond)
	}
	// Only the last three samples (7, 8, 9 ms) survive.
	if got := p.Avg("ball"); got != 8*time.Millisecond {
		t.Errorf("avg = %v, want 8ms", got)
	}
}

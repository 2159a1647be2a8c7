package telemetry

import (
	"sort"
	"time"
)

// PerfStats tracks execution time per simulation phase over a rolling
// sample window.
type PerfStats struct {
	samples    map[string][]time.Duration
	maxSamples int
}

// NewPerfStats creates a tracker keeping roughly two seconds of samples
// at 60 ticks per second.
func NewPerfStats() *PerfStats {
	return &PerfStats{
		samples:    make(map[string][]time.Duration),
		maxSamples: 120,
	}
}

// Record adds a duration sample for the named phase.
func (p *PerfStats) Record(name string, d time.Duration) {
	p.samples[name] = append(p.samples[name], d)
	if len(p.samples[name]) > p.maxSamples {
		p.samples[name] = p.samples[name][1:]
	}
}

// Avg returns the average duration for the named phase.
func (p *PerfStats) Avg(name string) time.Duration {
	s := p.samples[name]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// Total returns the sum of all phase averages.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for name := range p.samples {
		total += p.Avg(name)
	}
	return total
}

// SortedNames returns phase names sorted by average duration, slowest
// first. Used by the on-screen perf overlay.
func (p *PerfStats) SortedNames() []string {
	names := make([]string, 0, len(p.samples))
	for name := range p.samples {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.Avg(names[i]) > p.Avg(names[j])
	})
	return names
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Tick        int32   `csv:"tick"`
	BallMs      float64 `csv:"ball_ms"`
	TeamsMs     float64 `csv:"teams_ms"`
	TelemetryMs float64 `csv:"telemetry_ms"`
	TotalMs     float64 `csv:"total_ms"`
}

// ToCSV snapshots the current averages as a CSV row.
func (p *PerfStats) ToCSV(tick int32) PerfStatsCSV {
	ms := func(name string) float64 {
		return float64(p.Avg(name)) / float64(time.Millisecond)
	}
	return PerfStatsCSV{
		Tick:        tick,
		BallMs:      ms("ball"),
		TeamsMs:     ms("teams"),
		TelemetryMs: ms("telemetry"),
		TotalMs:     float64(p.Total()) / float64(time.Millisecond),
	}
}

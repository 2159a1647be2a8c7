package game

import "testing"

func TestRegulatorRate(t *testing.T) {
	r := NewRegulator(2) // every 0.5 sim-seconds

	if !r.Ready(0) {
		t.Fatal("first Ready should pass")
	}
	if r.Ready(0.1) {
		t.Error("Ready inside the period should fail")
	}
	if r.Ready(0.49) {
		t.Error("Ready just inside the period should fail")
	}
	if !r.Ready(0.5) {
		t.Error("Ready at the period boundary should pass")
	}
	// The slot was consumed, next window starts from 0.5.
	if r.Ready(0.9) {
		t.Error("Ready should respect the rescheduled window")
	}
	if !r.Ready(1.0) {
		t.Error("Ready after the rescheduled window should pass")
	}
}

func TestRegulatorAlwaysReady(t *testing.T) {
	r := NewRegulator(0)
	for _, now := range []float64{0, 0.001, 0.002} {
		if !r.Ready(now) {
			t.Errorf("zero-rate regulator not ready at %v", now)
		}
	}
}

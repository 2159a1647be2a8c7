package game

// Regulator rate-limits expensive recomputations to a fixed number of
// updates per simulation second. Callers pass the pitch's simulation
// clock; a Ready that returns true consumes the slot.
type Regulator struct {
	period float64
	next   float64
}

// NewRegulator creates a regulator allowing updatesPerSecond updates.
// A non-positive rate means always ready.
func NewRegulator(updatesPerSecond float64) *Regulator {
	r := &Regulator{}
	if updatesPerSecond > 0 {
		r.period = 1.0 / updatesPerSecond
	}
	return r
}

// Ready reports whether an update is allowed at simulation time now and,
// if so, schedules the next allowed time.
func (r *Regulator) Ready(now float64) bool {
	if now < r.next {
		return false
	}
	r.next = now + r.period
	return true
}

package game

import "gonum.org/v1/gonum/spatial/r2"

// Smoother keeps a rolling average over the last n vector samples. It is
// used to smooth player headings for rendering so the drawn facing does
// not jitter with every steering correction.
type Smoother struct {
	history []r2.Vec
	next    int
	full    bool
}

// NewSmoother creates a smoother averaging over size samples.
func NewSmoother(size int) *Smoother {
	if size < 1 {
		size = 1
	}
	return &Smoother{history: make([]r2.Vec, size)}
}

// Update records a sample and returns the current rolling average.
func (s *Smoother) Update(v r2.Vec) r2.Vec {
	s.history[s.next] = v
	s.next++
	if s.next == len(s.history) {
		s.next = 0
		s.full = true
	}

	n := s.next
	if s.full {
		n = len(s.history)
	}

	var sum r2.Vec
	for i := 0; i < n; i++ {
		sum = r2.Add(sum, s.history[i])
	}
	return r2.Scale(1/float64(n), sum)
}

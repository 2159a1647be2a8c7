package steering

import "gonum.org/v1/gonum/spatial/r2"

// Path is a sequence of waypoints an agent can follow, optionally
// looping back to the start.
type Path struct {
	waypoints []r2.Vec
	current   int
	looped    bool
}

// NewPath creates a path over the given waypoints.
func NewPath(waypoints []r2.Vec, looped bool) *Path {
	return &Path{waypoints: waypoints, looped: looped}
}

// CurrentWaypoint returns the waypoint the agent is heading for.
func (p *Path) CurrentWaypoint() r2.Vec {
	return p.waypoints[p.current]
}

// Advance moves to the next waypoint, wrapping when the path loops and
// holding on the final waypoint otherwise.
func (p *Path) Advance() {
	p.current++
	if p.current >= len(p.waypoints) {
		if p.looped {
			p.current = 0
		} else {
			p.current = len(p.waypoints) - 1
		}
	}
}

// Finished reports whether a non-looping path is on its final waypoint.
func (p *Path) Finished() bool {
	return !p.looped && p.current == len(p.waypoints)-1
}

// Len returns the number of waypoints.
func (p *Path) Len() int { return len(p.waypoints) }

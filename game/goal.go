package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/kickoff/geom"
)

// Goal is one goal mouth: a segment on the goal line between two posts,
// with a facing vector pointing into the pitch.
type Goal struct {
	topPost    r2.Vec
	bottomPost r2.Vec
	center     r2.Vec
	facing     r2.Vec

	goalsScored int
}

func newGoal(topPost, bottomPost, facing r2.Vec) *Goal {
	return &Goal{
		topPost:    topPost,
		bottomPost: bottomPost,
		center:     r2.Scale(0.5, r2.Add(topPost, bottomPost)),
		facing:     facing,
	}
}

// Center returns the midpoint of the goal mouth.
func (g *Goal) Center() r2.Vec { return g.center }

// Facing returns the unit vector pointing from the goal into the pitch.
func (g *Goal) Facing() r2.Vec { return g.facing }

// TopPost returns the post with the smaller y coordinate.
func (g *Goal) TopPost() r2.Vec { return g.topPost }

// BottomPost returns the post with the larger y coordinate.
func (g *Goal) BottomPost() r2.Vec { return g.bottomPost }

// GoalsScored returns how many goals have been scored into this goal.
func (g *Goal) GoalsScored() int { return g.goalsScored }

// CheckScored tests whether the ball crossed the goal line since the
// last tick and bumps the score if it did.
func (g *Goal) CheckScored(b *Ball) bool {
	if _, _, ok := geom.LineIntersection(b.OldPos(), b.Pos(), g.topPost, g.bottomPost); ok {
		g.goalsScored++
		return true
	}
	return false
}

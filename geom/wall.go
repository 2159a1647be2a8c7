package geom

import "gonum.org/v1/gonum/spatial/r2"

// Wall is a line segment collider with a unit normal. Pitch walls are
// wound so the normal points into the playing area.
type Wall struct {
	From r2.Vec
	To   r2.Vec
	N    r2.Vec
}

// NewWall creates a wall from two endpoints and derives its normal.
func NewWall(from, to r2.Vec) Wall {
	dir := Normalize(r2.Sub(to, from))
	return Wall{
		From: from,
		To:   to,
		N:    r2.Vec{X: dir.Y, Y: -dir.X},
	}
}

// Obstacle is a circular collider supplied by the hosting world layer.
type Obstacle interface {
	Pos() r2.Vec
	BoundingRadius() float64
}

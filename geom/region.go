package geom

import "gonum.org/v1/gonum/spatial/r2"

// RegionModifier selects how strictly Region.Inside tests containment.
type RegionModifier int

const (
	// Normal tests against the full rectangle.
	Normal RegionModifier = iota
	// HalfSize shrinks the rectangle by a quarter of each dimension on
	// every side, so only the central area counts as inside.
	HalfSize
)

// Region is an immutable axis-aligned rectangle on the pitch. Regions
// are created once at pitch setup and indexed by dense zero-based ids.
type Region struct {
	top    float64
	left   float64
	right  float64
	bottom float64

	width  float64
	height float64
	center r2.Vec
	id     int
}

// NewRegion creates a region from its edges. In screen coordinates the
// top edge has the smaller y value.
func NewRegion(left, top, right, bottom float64, id int) Region {
	return Region{
		top:    top,
		left:   left,
		right:  right,
		bottom: bottom,
		width:  right - left,
		height: bottom - top,
		center: r2.Vec{X: (left + right) * 0.5, Y: (top + bottom) * 0.5},
		id:     id,
	}
}

// ID returns the region's dense index.
func (r Region) ID() int { return r.id }

// Center returns the region's center point.
func (r Region) Center() r2.Vec { return r.center }

// Top returns the y coordinate of the top edge.
func (r Region) Top() float64 { return r.top }

// Bottom returns the y coordinate of the bottom edge.
func (r Region) Bottom() float64 { return r.bottom }

// Left returns the x coordinate of the left edge.
func (r Region) Left() float64 { return r.left }

// Right returns the x coordinate of the right edge.
func (r Region) Right() float64 { return r.right }

// Width returns the region width.
func (r Region) Width() float64 { return r.width }

// Height returns the region height.
func (r Region) Height() float64 { return r.height }

// Length returns the longest side of the region.
func (r Region) Length() float64 {
	if r.width > r.height {
		return r.width
	}
	return r.height
}

// Inside reports whether pos lies strictly inside the region. Points
// exactly on a boundary are not inside. With HalfSize only the central
// half-sized area counts.
func (r Region) Inside(pos r2.Vec, mod RegionModifier) bool {
	if mod == Normal {
		return pos.X > r.left && pos.X < r.right &&
			pos.Y > r.top && pos.Y < r.bottom
	}
	marginX := r.width * 0.25
	marginY := r.height * 0.25
	return pos.X > r.left+marginX && pos.X < r.right-marginX &&
		pos.Y > r.top+marginY && pos.Y < r.bottom-marginY
}

// Package core provides fundamental types and utilities for the dodger simulation.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

// Rect represents an axis-aligned bounding box in arena units.
// The origin is the top-left corner, y grows downward.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Overlap must be strict on both axes: rectangles sharing only an edge
// do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() && r.Right() > other.X &&
		r.Y < other.Bottom() && r.Bottom() > other.Y
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

// Interval is a closed vertical band [Start, End] with Start < End.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Height returns the length of the interval.
func (iv Interval) Height() float64 {
	return iv.End - iv.Start
}

// Mid returns the midpoint of the interval.
func (iv Interval) Mid() float64 {
	return (iv.Start + iv.End) / 2
}

// Overlaps reports whether the open interiors of two bands intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Subtract removes the band [top, bottom] from the interval and returns what
// is left: nothing, one remainder, or two remainders when the band lies strictly inside.
func (iv Interval) Subtract(top, bottom float64) []Interval {
	if top >= iv.End || bottom <= iv.Start {
		return []Interval{iv}
	}

	var out []Interval
	if top > iv.Start {
		out = append(out, Interval{Start: iv.Start, End: top})
	}
	if bottom < iv.End {
		out = append(out, Interval{Start: bottom, End: iv.End})
	}
	return out
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// AbsF returns the absolute value of a float64.
func AbsF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

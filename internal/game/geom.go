// Package game implements the falling-object game loop shared by the catcher,
// runner and quiz variants. It has no terminal or audio dependencies; a driver
// owns the frame and spawn timers and feeds inputs through Session.Push.
package game

// Rect is an axis-aligned box in canvas cells. Y grows downward.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Overlaps reports whether two boxes intersect. Boxes that only touch along an
// edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

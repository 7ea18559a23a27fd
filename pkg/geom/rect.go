package geom

import "fmt"

// Rect is an axis-aligned rectangle anchored at its lower-left corner.
type Rect struct {
	X, Y, W, H float64
}

// RectFromCorners builds a Rect from two opposite corners in any order,
// the way annotation /Rect arrays are stored.
func RectFromCorners(x1, y1, x2, y2 float64) Rect {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Corners returns the lower-left and upper-right corners.
func (r Rect) Corners() (x1, y1, x2, y2 float64) {
	return r.X, r.Y, r.X + r.W, r.Y + r.H
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}

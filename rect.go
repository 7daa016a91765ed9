package underflipper

import "fmt"

// Rect is an axis-aligned box in points, with the origin at the top left
// of the page and y growing downwards.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Returns a copy of r moved by (dx, dy)
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.X0 + dx, r.Y0 + dy, r.X1 + dx, r.Y1 + dy}
}

// Returns true if the box has a positive width and height
func (r Rect) Valid() bool {
	return r.X0 < r.X1 && r.Y0 < r.Y1
}

func (r Rect) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f, %.2f)", r.X0, r.Y0, r.X1, r.Y1)
}

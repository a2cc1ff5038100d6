package sdf

import "fmt"

// Area is an axis-aligned rectangle of pixels, half-open on both axes:
// it covers columns [X1, X2) and rows [Y1, Y2).
type Area struct {
	X1 int `json:"x1" yaml:"x1"`
	Y1 int `json:"y1" yaml:"y1"`
	X2 int `json:"x2" yaml:"x2"`
	Y2 int `json:"y2" yaml:"y2"`
}

// Rect is shorthand for Area{x1, y1, x2, y2}.
func Rect(x1, y1, x2, y2 int) Area {
	return Area{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Dx returns the width of the area.
func (a Area) Dx() int { return a.X2 - a.X1 }

// Dy returns the height of the area.
func (a Area) Dy() int { return a.Y2 - a.Y1 }

// Pixels returns the number of pixels covered, or 0 for an empty area.
func (a Area) Pixels() int {
	if a.Empty() {
		return 0
	}
	return a.Dx() * a.Dy()
}

// Empty reports whether the area has non-positive width or height.
func (a Area) Empty() bool {
	return a.X1 >= a.X2 || a.Y1 >= a.Y2
}

// SplitX cuts the area at column x into a left and a right part.
// x must satisfy X1 < x < X2 for both parts to be non-empty.
func (a Area) SplitX(x int) (left, right Area) {
	left, right = a, a
	left.X2 = x
	right.X1 = x
	return left, right
}

func (a Area) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", a.X1, a.Y1, a.X2, a.Y2)
}

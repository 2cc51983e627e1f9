package util

import "fmt"

// Point is a pixel coordinate. X grows to the right, Y grows downwards.
type Point struct {
	X uint32
	Y uint32
}

func NewPoint(x uint32, y uint32) Point {
	return Point{X: x, Y: y}
}

// Add returns p+o. Callers are expected to have checked for overflow.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

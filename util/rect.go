package util

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrRectOverflow     = errors.New("rect: bottom right corner overflows")
	ErrInvertedExtremes = errors.New("rect: top left is not above and left of bottom right")
	ErrSizeOverflow     = errors.New("rect: area does not fit in int")
)

// Rect is an axis aligned, half open rectangle. It contains the points
// topLeft.X <= x < topLeft.X+width and topLeft.Y <= y < topLeft.Y+height.
//
// The bottom right corner of a Rect never overflows uint32, so BottomRight is
// always representable.
type Rect struct {
	topLeft Point
	width   uint32
	height  uint32
}

// NewRect creates a Rect and panics if the bottom right corner overflows.
func NewRect(topLeft Point, width uint32, height uint32) Rect {
	r, err := TryNewRect(topLeft, width, height)
	if err != nil {
		panic(fmt.Sprintf("%v: top left %v, dimensions %dx%d", err, topLeft, width, height))
	}
	return r
}

// TryNewRect creates a Rect, returning ErrRectOverflow if the bottom right
// corner doesn't fit in uint32.
func TryNewRect(topLeft Point, width uint32, height uint32) (Rect, error) {
	if uint64(topLeft.X)+uint64(width) > math.MaxUint32 || uint64(topLeft.Y)+uint64(height) > math.MaxUint32 {
		return Rect{}, ErrRectOverflow
	}
	return Rect{topLeft: topLeft, width: width, height: height}, nil
}

// RectFromExtremes creates a Rect from its top left (inclusive) and bottom
// right (exclusive) corners.
func RectFromExtremes(topLeft Point, bottomRight Point) (Rect, error) {
	if topLeft.X > bottomRight.X || topLeft.Y > bottomRight.Y {
		return Rect{}, ErrInvertedExtremes
	}
	return Rect{
		topLeft: topLeft,
		width:   bottomRight.X - topLeft.X,
		height:  bottomRight.Y - topLeft.Y,
	}, nil
}

// EmptyRect returns a zero sized rect at the origin.
func EmptyRect() Rect {
	return Rect{}
}

func (r Rect) TopLeft() Point {
	return r.topLeft
}

// BottomRight returns the exclusive bottom right corner.
func (r Rect) BottomRight() Point {
	return Point{X: r.topLeft.X + r.width, Y: r.topLeft.Y + r.height}
}

// InclusiveBottomRight returns the last point contained by the rect. Empty
// rects have no such point.
func (r Rect) InclusiveBottomRight() (Point, bool) {
	if r.IsEmpty() {
		return Point{}, false
	}
	return Point{X: r.topLeft.X + r.width - 1, Y: r.topLeft.Y + r.height - 1}, true
}

func (r Rect) Dimensions() (uint32, uint32) {
	return r.width, r.height
}

func (r Rect) Width() uint32 {
	return r.width
}

func (r Rect) Height() uint32 {
	return r.height
}

func (r Rect) IsEmpty() bool {
	return r.width == 0 || r.height == 0
}

// Len is the number of points in the rect. It always fits in uint64.
func (r Rect) Len() uint64 {
	return uint64(r.width) * uint64(r.height)
}

// CheckedLen is Len as an int, failing if the area doesn't fit.
func (r Rect) CheckedLen() (int, error) {
	size, ok := CheckedSize(r.width, r.height)
	if !ok {
		return 0, ErrSizeOverflow
	}
	return size, nil
}

// Contains reports whether p, in the same coordinate space as the rect, is
// inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.topLeft.X && p.Y >= r.topLeft.Y &&
		p.X-r.topLeft.X < r.width && p.Y-r.topLeft.Y < r.height
}

// ContainsRelative reports whether p, relative to the rect's own top left,
// is inside the rect.
func (r Rect) ContainsRelative(p Point) bool {
	return p.X < r.width && p.Y < r.height
}

// AbsPointFromRelative converts a point relative to the rect's top left into
// the rect's parent coordinate space.
func (r Rect) AbsPointFromRelative(p Point) Point {
	return r.topLeft.Add(p)
}

// ContainsRect reports whether other lies entirely inside r. Empty rects are
// never contained and never contain anything.
func (r Rect) ContainsRect(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	br, _ := other.InclusiveBottomRight()
	return r.Contains(other.topLeft) && r.Contains(br)
}

// ContainsRectRelative is ContainsRect with other expressed relative to r's
// top left.
func (r Rect) ContainsRectRelative(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	br, _ := other.InclusiveBottomRight()
	return r.ContainsRelative(other.topLeft) && r.ContainsRelative(br)
}

// AbsRectFromRelative converts a rect relative to r's top left into r's
// parent coordinate space. Panics if the result overflows.
func (r Rect) AbsRectFromRelative(other Rect) Rect {
	return NewRect(r.AbsPointFromRelative(other.topLeft), other.width, other.height)
}

// IsCompletelyBelow reports whether every point of r is below every point of other.
func (r Rect) IsCompletelyBelow(other Rect) bool {
	return r.topLeft.Y >= other.BottomRight().Y
}

// IsCompletelyToTheRight reports whether every point of r is to the right of
// every point of other.
func (r Rect) IsCompletelyToTheRight(other Rect) bool {
	return r.topLeft.X >= other.BottomRight().X
}

// Overlaps reports whether r and other share at least one point.
func (r Rect) Overlaps(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	if r.IsCompletelyBelow(other) || other.IsCompletelyBelow(r) {
		return false
	}
	if r.IsCompletelyToTheRight(other) || other.IsCompletelyToTheRight(r) {
		return false
	}
	return true
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect{%v %dx%d}", r.topLeft, r.width, r.height)
}

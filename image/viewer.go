// Package image provides owned pixel buffers and zero copy windows into them.
//
// A Buffer owns a contiguous, row major slice of pixels. View and ViewMut are
// windows over a rectangular region of a Buffer, addressed in the window's own
// coordinate space, and may be further subdivided without copying.
//
// The aliasing rules are enforced where windows are created: a single
// mutable window must fit inside its parent, and windows handed out together
// (ViewMutMultiple) must be pairwise disjoint. Splits at a midpoint are
// disjoint by construction and skip that scan.
//
// Every mutable constructor lends its parent out as a set. Until each window
// of the set has been released (ViewMut.Release, ReleaseAll or the scoped
// WithViewMut), a second mutable request on the parent fails with ErrBorrowed
// and writing through the parent panics. Read only Views are not tracked; one
// must not cover a region some live ViewMut is writing.
package image

import (
	"github.com/kpfaulkner/picture-go/util"
)

// Viewer is the read contract shared by Buffer, View and ViewMut.
type Viewer[P any] interface {
	Width() uint32
	Height() uint32
	Dimensions() (uint32, uint32)

	// Size is Width*Height.
	Size() int

	// Bounds is a rect at (0, 0) with the dimensions of the viewer.
	Bounds() util.Rect

	// Pixel returns the pixel at p, relative to the viewer, and false if p is
	// out of bounds.
	Pixel(p util.Point) (P, bool)

	// Row returns row y as a slice of length Width. The slice aliases the
	// underlying buffer and must not be modified. Panics if y is out of range.
	Row(y uint32) []P

	// View returns a read only window over bounds, relative to the viewer.
	View(bounds util.Rect) (*View[P], error)
}

// MutViewer is the write contract shared by Buffer and ViewMut.
type MutViewer[P any] interface {
	Viewer[P]

	// PixelMut returns a pointer to the pixel at p, or nil if p is out of bounds.
	PixelMut(p util.Point) *P

	// RowMut is Row for writing.
	RowMut(y uint32) []P

	ViewMut(bounds util.Rect) (*ViewMut[P], error)
	WithViewMut(bounds util.Rect, f func(v *ViewMut[P]) error) error
	ViewMutMultiple(bounds ...util.Rect) ([]*ViewMut[P], error)
	SplitXAtMut(mid uint32) (*ViewMut[P], *ViewMut[P], error)
	SplitYAtMut(mid uint32) (*ViewMut[P], *ViewMut[P], error)
}

package image

import (
	"fmt"
	"iter"

	"github.com/kpfaulkner/picture-go/util"
)

// window is the (storage, stride, bounds) triple behind View and ViewMut.
// bounds is expressed in the absolute coordinates of the underlying buffer and
// is always contained in it; callers only ever see coordinates relative to
// bounds' top left.
type window[P any] struct {
	data   []P
	stride uint32
	bounds util.Rect
}

func (w *window[P]) Width() uint32 {
	return w.bounds.Width()
}

func (w *window[P]) Height() uint32 {
	return w.bounds.Height()
}

func (w *window[P]) Dimensions() (uint32, uint32) {
	return w.bounds.Dimensions()
}

func (w *window[P]) Size() int {
	return int(w.bounds.Len())
}

func (w *window[P]) Bounds() util.Rect {
	return util.NewRect(util.Point{}, w.bounds.Width(), w.bounds.Height())
}

// windowed is implemented by Buffer, View and ViewMut.
type windowed[P any] interface {
	base() *window[P]
}

func (w *window[P]) base() *window[P] {
	return w
}

func sharesStorage[P any](a *window[P], b *window[P]) bool {
	return len(a.data) > 0 && len(b.data) > 0 && &a.data[0] == &b.data[0]
}

func (w *window[P]) index(p util.Point) int {
	return util.IndexPoint(w.bounds.AbsPointFromRelative(p), w.stride)
}

// at is the unchecked accessor. p must already be known to be inside the
// window; this is only verified when debugAssertions is on.
func (w *window[P]) at(p util.Point) *P {
	if debugAssertions && !w.bounds.ContainsRelative(p) {
		panic(fmt.Sprintf("image: unchecked access at %v outside %dx%d view", p, w.bounds.Width(), w.bounds.Height()))
	}
	return &w.data[w.index(p)]
}

func (w *window[P]) Pixel(p util.Point) (P, bool) {
	if !w.bounds.ContainsRelative(p) {
		var zero P
		return zero, false
	}
	return *w.at(p), true
}

func (w *window[P]) Row(y uint32) []P {
	if y >= w.bounds.Height() {
		panic(fmt.Sprintf("image: row %d out of range for height %d", y, w.bounds.Height()))
	}
	start := w.index(util.Point{Y: y})
	end := start + int(w.bounds.Width())
	return w.data[start:end:end]
}

// PixelChunks yields the rows of the window top to bottom.
func (w *window[P]) PixelChunks() iter.Seq[[]P] {
	return func(yield func([]P) bool) {
		for y := uint32(0); y < w.bounds.Height(); y++ {
			if !yield(w.Row(y)) {
				return
			}
		}
	}
}

// child builds a window over bounds, relative to w. bounds must be contained
// in w (or be an empty edge produced by a split).
func (w *window[P]) child(bounds util.Rect) window[P] {
	return window[P]{
		data:   w.data,
		stride: w.stride,
		bounds: w.bounds.AbsRectFromRelative(bounds),
	}
}

func (w *window[P]) sub(bounds util.Rect) (window[P], error) {
	if !w.bounds.ContainsRectRelative(bounds) {
		return window[P]{}, fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, bounds, w.bounds.Width(), w.bounds.Height())
	}
	return w.child(bounds), nil
}

// subMultiple checks that every rect fits and, when disjoint is set, that no
// two of them overlap. The check is pairwise, N is expected to be small.
func (w *window[P]) subMultiple(bounds []util.Rect, disjoint bool) ([]window[P], error) {
	for i, a := range bounds {
		if !w.bounds.ContainsRectRelative(a) {
			return nil, fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, a, w.bounds.Width(), w.bounds.Height())
		}
		if !disjoint {
			continue
		}
		for _, b := range bounds[i+1:] {
			if a.Overlaps(b) {
				return nil, fmt.Errorf("%w: %v and %v", ErrOverlap, a, b)
			}
		}
	}

	windows := make([]window[P], len(bounds))
	for i, b := range bounds {
		windows[i] = w.child(b)
	}
	return windows, nil
}

// splitX cuts w into [0, mid) and [mid, width). Either side may be empty.
// The halves are disjoint because they share no column, so no overlap scan
// is needed.
func (w *window[P]) splitX(mid uint32) (window[P], window[P], error) {
	width, height := w.bounds.Dimensions()
	if mid > width {
		return window[P]{}, window[P]{}, fmt.Errorf("%w: split at x=%d of width %d", ErrOutOfBounds, mid, width)
	}
	left := w.child(util.NewRect(util.Point{}, mid, height))
	right := w.child(util.NewRect(util.Point{X: mid}, width-mid, height))
	return left, right, nil
}

// splitY cuts w into [0, mid) and [mid, height).
func (w *window[P]) splitY(mid uint32) (window[P], window[P], error) {
	width, height := w.bounds.Dimensions()
	if mid > height {
		return window[P]{}, window[P]{}, fmt.Errorf("%w: split at y=%d of height %d", ErrOutOfBounds, mid, height)
	}
	upper := w.child(util.NewRect(util.Point{}, width, mid))
	lower := w.child(util.NewRect(util.Point{Y: mid}, width, height-mid))
	return upper, lower, nil
}

func (w *window[P]) View(bounds util.Rect) (*View[P], error) {
	sub, err := w.sub(bounds)
	if err != nil {
		return nil, err
	}
	return &View[P]{window: sub}, nil
}

// ViewMultiple returns a read only window per rect. Read only windows may
// overlap each other.
func (w *window[P]) ViewMultiple(bounds ...util.Rect) ([]*View[P], error) {
	windows, err := w.subMultiple(bounds, false)
	if err != nil {
		return nil, err
	}
	views := make([]*View[P], len(windows))
	for i := range windows {
		views[i] = &View[P]{window: windows[i]}
	}
	return views, nil
}

// SplitXAt splits into two read only views at column mid.
func (w *window[P]) SplitXAt(mid uint32) (*View[P], *View[P], error) {
	left, right, err := w.splitX(mid)
	if err != nil {
		return nil, nil, err
	}
	return &View[P]{window: left}, &View[P]{window: right}, nil
}

// SplitYAt splits into two read only views at row mid.
func (w *window[P]) SplitYAt(mid uint32) (*View[P], *View[P], error) {
	upper, lower, err := w.splitY(mid)
	if err != nil {
		return nil, nil, err
	}
	return &View[P]{window: upper}, &View[P]{window: lower}, nil
}

func (w *window[P]) Pixels() iter.Seq[P] {
	return pixels[P](w)
}

func (w *window[P]) PixelsWithCoords() iter.Seq2[util.Point, P] {
	return pixelsWithCoords[P](w)
}

// View is a read only window over part of a Buffer. Views can be freely
// shared between goroutines as long as nothing writes to their region.
type View[P any] struct {
	window[P]
}

func (v *View[P]) String() string {
	return fmt.Sprintf("View{%dx%d}", v.Width(), v.Height())
}

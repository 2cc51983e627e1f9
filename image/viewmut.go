package image

import (
	"fmt"
	"iter"

	"github.com/kpfaulkner/picture-go/util"
)

// mutWindow adds the write side to window. It is embedded by both ViewMut and
// Buffer so that a buffer behaves exactly like a mutable view over all of it.
type mutWindow[P any] struct {
	window[P]
	state *borrow
}

// lendOut hands out one mutable window per child, lending w until all of
// them are released.
func (w *mutWindow[P]) lendOut(children ...window[P]) ([]*ViewMut[P], error) {
	states, err := w.state.lend(len(children))
	if err != nil {
		return nil, err
	}
	views := make([]*ViewMut[P], len(children))
	for i := range children {
		views[i] = &ViewMut[P]{mutWindow[P]{window: children[i], state: states[i]}}
	}
	return views, nil
}

func (w *mutWindow[P]) PixelMut(p util.Point) *P {
	w.state.checkWritable()
	if !w.bounds.ContainsRelative(p) {
		return nil
	}
	return w.at(p)
}

func (w *mutWindow[P]) RowMut(y uint32) []P {
	w.state.checkWritable()
	return w.Row(y)
}

// PixelChunksMut yields the writable rows of the window top to bottom.
func (w *mutWindow[P]) PixelChunksMut() iter.Seq[[]P] {
	w.state.checkWritable()
	return w.PixelChunks()
}

// AsView reborrows the whole window read only.
func (w *mutWindow[P]) AsView() *View[P] {
	return &View[P]{window: w.window}
}

// ViewMut lends bounds out as a mutable window. w stays lent, and can't be
// written or lend again, until the returned window is released.
func (w *mutWindow[P]) ViewMut(bounds util.Rect) (*ViewMut[P], error) {
	sub, err := w.sub(bounds)
	if err != nil {
		return nil, err
	}
	views, err := w.lendOut(sub)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// WithViewMut lends bounds to f and releases the window when f returns.
func (w *mutWindow[P]) WithViewMut(bounds util.Rect, f func(v *ViewMut[P]) error) error {
	v, err := w.ViewMut(bounds)
	if err != nil {
		return err
	}
	defer v.Release()
	return f(v)
}

// ViewMutMultiple returns one mutable window per rect, or an error if any rect
// does not fit or any two rects overlap. No window is returned on failure.
// w stays lent until every returned window is released.
func (w *mutWindow[P]) ViewMutMultiple(bounds ...util.Rect) ([]*ViewMut[P], error) {
	windows, err := w.subMultiple(bounds, true)
	if err != nil {
		return nil, err
	}
	return w.lendOut(windows...)
}

// SplitXAtMut splits into [0, mid) and [mid, width). Either half may be empty.
func (w *mutWindow[P]) SplitXAtMut(mid uint32) (*ViewMut[P], *ViewMut[P], error) {
	left, right, err := w.splitX(mid)
	if err != nil {
		return nil, nil, err
	}
	views, err := w.lendOut(left, right)
	if err != nil {
		return nil, nil, err
	}
	return views[0], views[1], nil
}

// SplitYAtMut splits into [0, mid) and [mid, height). Either half may be empty.
func (w *mutWindow[P]) SplitYAtMut(mid uint32) (*ViewMut[P], *ViewMut[P], error) {
	upper, lower, err := w.splitY(mid)
	if err != nil {
		return nil, nil, err
	}
	views, err := w.lendOut(upper, lower)
	if err != nil {
		return nil, nil, err
	}
	return views[0], views[1], nil
}

// CopyFrom copies every pixel of src into w. src may overlap w, in which case
// rows are copied in the order that reads each source row before it is
// overwritten.
func (w *mutWindow[P]) CopyFrom(src Viewer[P]) error {
	if err := checkDimensions[P](w, src); err != nil {
		return err
	}
	w.state.checkWritable()

	if s, ok := src.(windowed[P]); ok && sharesStorage(&w.window, s.base()) {
		from := s.base().bounds
		if from == w.bounds {
			return nil
		}
		if from.TopLeft().Y < w.bounds.TopLeft().Y {
			for y := w.Height(); y > 0; y-- {
				copy(w.RowMut(y-1), src.Row(y-1))
			}
			return nil
		}
	}

	for y := uint32(0); y < w.Height(); y++ {
		copy(w.RowMut(y), src.Row(y))
	}
	return nil
}

// SwapWith exchanges every pixel of w with the pixel at the same position in
// other. The two windows must be disjoint.
func (w *mutWindow[P]) SwapWith(other MutViewer[P]) error {
	if err := checkDimensions[P](w, other); err != nil {
		return err
	}
	for y := uint32(0); y < w.Height(); y++ {
		a := w.RowMut(y)
		b := other.RowMut(y)
		for x := range a {
			a[x], b[x] = b[x], a[x]
		}
	}
	return nil
}

// Fill sets every pixel of the window to p.
func (w *mutWindow[P]) Fill(p P) {
	for row := range w.PixelChunksMut() {
		for x := range row {
			row[x] = p
		}
	}
}

func (w *mutWindow[P]) PixelsMut() iter.Seq[*P] {
	return func(yield func(*P) bool) {
		for row := range w.PixelChunksMut() {
			for x := range row {
				if !yield(&row[x]) {
					return
				}
			}
		}
	}
}

func (w *mutWindow[P]) PixelsWithCoordsMut() *CoordsIterMut[P] {
	w.state.checkWritable()
	return newCoordsIterMut(&w.window)
}

// BlockMut is Block for writing. It returns false if the block lies outside
// the window or w is already lent.
func (w *mutWindow[P]) BlockMut(blockCoords util.Point, blockWidth uint32, blockHeight uint32) (*ViewMut[P], bool) {
	bounds, ok := blockBounds(&w.window, blockCoords, blockWidth, blockHeight)
	if !ok {
		return nil, false
	}
	views, err := w.lendOut(w.child(bounds))
	if err != nil {
		return nil, false
	}
	return views[0], true
}

func checkDimensions[P any](a Viewer[P], b Viewer[P]) error {
	aw, ah := a.Dimensions()
	bw, bh := b.Dimensions()
	if aw != bw || ah != bh {
		return fmt.Errorf("%w: %dx%d and %dx%d", ErrDimensionMismatch, aw, ah, bw, bh)
	}
	return nil
}

// ViewMut is a window with exclusive write access to its region. A ViewMut is
// only ever produced by a constructor that has checked its bounds against the
// parent and, for multiple windows, against each other, and that has lent
// the parent out until the window is released.
type ViewMut[P any] struct {
	mutWindow[P]
}

// Release gives the window back. Its parent becomes usable again once every
// window handed out with it has been released. Writing through a released
// window panics. Releasing twice is a no op; releasing a window that still
// has live mutable children panics.
func (v *ViewMut[P]) Release() {
	v.state.release()
}

// ReleaseAll releases every window in views.
func ReleaseAll[P any](views ...*ViewMut[P]) {
	for _, v := range views {
		v.Release()
	}
}

func (v *ViewMut[P]) String() string {
	return fmt.Sprintf("ViewMut{%dx%d}", v.Width(), v.Height())
}

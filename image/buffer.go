package image

import (
	"fmt"

	"github.com/kpfaulkner/picture-go/util"
)

// Buffer owns a row major slice of Width*Height pixels. All the View and
// ViewMut operations are available directly on a Buffer and act on the
// whole image.
type Buffer[P any] struct {
	mutWindow[P]
}

// NewBuffer allocates a zero filled width x height buffer. It panics if the
// pixel count does not fit an int.
func NewBuffer[P any](width uint32, height uint32) *Buffer[P] {
	size, ok := util.CheckedSize(width, height)
	if !ok {
		panic(fmt.Sprintf("image: %dx%d buffer overflows", width, height))
	}
	return newBuffer(make([]P, size), width, height)
}

// NewBufferFromFunc builds a buffer by calling f for every coordinate, in row
// major order.
func NewBufferFromFunc[P any](width uint32, height uint32, f func(p util.Point) P) *Buffer[P] {
	b := NewBuffer[P](width, height)
	i := 0
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			b.data[i] = f(util.Point{X: x, Y: y})
			i++
		}
	}
	return b
}

// NewBufferFromContainer adopts data as the backing storage of a width x
// height buffer. It panics if len(data) is not exactly width*height.
func NewBufferFromContainer[P any](data []P, width uint32, height uint32) *Buffer[P] {
	size, ok := util.CheckedSize(width, height)
	if !ok || size != len(data) {
		panic(fmt.Sprintf("image: container of %d pixels does not match %dx%d", len(data), width, height))
	}
	return newBuffer(data, width, height)
}

func newBuffer[P any](data []P, width uint32, height uint32) *Buffer[P] {
	return &Buffer[P]{mutWindow[P]{
		window: window[P]{
			data:   data,
			stride: width,
			bounds: util.NewRect(util.Point{}, width, height),
		},
		state: &borrow{},
	}}
}

// Data is the backing slice, row major. It is not tracked by the borrow
// state, so it must not be written while mutable views of b are live.
func (b *Buffer[P]) Data() []P {
	return b.data
}

// AsViewMut lends the whole buffer out as a mutable view.
func (b *Buffer[P]) AsViewMut() (*ViewMut[P], error) {
	views, err := b.lendOut(b.window)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// CopyFromBuffer overwrites b with the contents of other. It panics if the
// dimensions differ.
func (b *Buffer[P]) CopyFromBuffer(other *Buffer[P]) {
	if b.Width() != other.Width() || b.Height() != other.Height() {
		panic(fmt.Sprintf("image: cannot copy %dx%d buffer into %dx%d", other.Width(), other.Height(), b.Width(), b.Height()))
	}
	b.state.checkWritable()
	copy(b.data, other.data)
}

// Clone returns a deep copy of b.
func (b *Buffer[P]) Clone() *Buffer[P] {
	data := make([]P, len(b.data))
	copy(data, b.data)
	return newBuffer(data, b.Width(), b.Height())
}

func (b *Buffer[P]) String() string {
	return fmt.Sprintf("Buffer{%dx%d}", b.Width(), b.Height())
}

// ToBuffer copies any viewer into a newly allocated buffer.
func ToBuffer[P any](v Viewer[P]) *Buffer[P] {
	width, height := v.Dimensions()
	b := NewBuffer[P](width, height)
	for y := uint32(0); y < height; y++ {
		copy(b.RowMut(y), v.Row(y))
	}
	return b
}

// MapBuffer builds a buffer of the same dimensions as v by applying f to each
// of its pixels.
func MapBuffer[P any, Q any](v Viewer[P], f func(p P) Q) *Buffer[Q] {
	width, height := v.Dimensions()
	b := NewBuffer[Q](width, height)
	for y := uint32(0); y < height; y++ {
		dst := b.RowMut(y)
		for x, p := range v.Row(y) {
			dst[x] = f(p)
		}
	}
	return b
}

// Fill sets every pixel of v to p.
func Fill[P any](v MutViewer[P], p P) {
	for y := uint32(0); y < v.Height(); y++ {
		row := v.RowMut(y)
		for x := range row {
			row[x] = p
		}
	}
}

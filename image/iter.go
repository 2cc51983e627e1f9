package image

import (
	"iter"

	"github.com/kpfaulkner/picture-go/util"
)

func pixels[P any](w *window[P]) iter.Seq[P] {
	return func(yield func(P) bool) {
		for row := range w.PixelChunks() {
			for _, p := range row {
				if !yield(p) {
					return
				}
			}
		}
	}
}

func pixelsWithCoords[P any](w *window[P]) iter.Seq2[util.Point, P] {
	return func(yield func(util.Point, P) bool) {
		for y := uint32(0); y < w.Height(); y++ {
			for x, p := range w.Row(y) {
				if !yield(util.Point{X: uint32(x), Y: y}, p) {
					return
				}
			}
		}
	}
}

// CoordsIterMut walks a mutable window in row major order, handing out a
// pointer to each pixel together with its coordinates. Len is always the
// exact number of pixels left.
type CoordsIterMut[P any] struct {
	w         *window[P]
	row       []P
	x, y      uint32
	remaining int
}

func newCoordsIterMut[P any](w *window[P]) *CoordsIterMut[P] {
	return &CoordsIterMut[P]{w: w, remaining: w.Size()}
}

// Next returns the next pixel and its coordinates, and false once the
// window is exhausted.
func (it *CoordsIterMut[P]) Next() (util.Point, *P, bool) {
	if it.remaining == 0 {
		return util.Point{}, nil, false
	}
	if it.row == nil {
		it.row = it.w.Row(it.y)
	}

	p := util.Point{X: it.x, Y: it.y}
	px := &it.row[it.x]

	it.remaining--
	it.x++
	if it.x == it.w.Width() {
		it.x = 0
		it.y++
		it.row = nil
	}
	return p, px, true
}

func (it *CoordsIterMut[P]) Len() int {
	return it.remaining
}

// All adapts the iterator to a range-over-func sequence.
func (it *CoordsIterMut[P]) All() iter.Seq2[util.Point, *P] {
	return func(yield func(util.Point, *P) bool) {
		for {
			p, px, ok := it.Next()
			if !ok || !yield(p, px) {
				return
			}
		}
	}
}

// blockBounds returns the rect of the block at blockCoords on a grid of
// blockWidth x blockHeight tiles anchored at the window origin. Blocks on the
// right and bottom edges are cut to fit.
func blockBounds[P any](w *window[P], blockCoords util.Point, blockWidth uint32, blockHeight uint32) (util.Rect, bool) {
	x := uint64(blockCoords.X) * uint64(blockWidth)
	y := uint64(blockCoords.Y) * uint64(blockHeight)
	if x >= uint64(w.Width()) || y >= uint64(w.Height()) {
		return util.Rect{}, false
	}

	tl := util.Point{X: uint32(x), Y: uint32(y)}
	width := util.Min(blockWidth, w.Width()-tl.X)
	height := util.Min(blockHeight, w.Height()-tl.Y)
	if width == 0 || height == 0 {
		return util.Rect{}, false
	}
	return util.NewRect(tl, width, height), true
}

// Block returns a read only view of the block at blockCoords, given in block
// units, and false if the block lies outside the window.
func (w *window[P]) Block(blockCoords util.Point, blockWidth uint32, blockHeight uint32) (*View[P], bool) {
	bounds, ok := blockBounds(w, blockCoords, blockWidth, blockHeight)
	if !ok {
		return nil, false
	}
	return &View[P]{window: w.child(bounds)}, true
}

// Blocks yields every block of the window in row major block order, along
// with the block's top left in window coordinates.
func (w *window[P]) Blocks(blockWidth uint32, blockHeight uint32) iter.Seq2[util.Point, *View[P]] {
	return func(yield func(util.Point, *View[P]) bool) {
		if blockWidth == 0 || blockHeight == 0 {
			return
		}
		bw, bh := w.DimensionsInBlocks(blockWidth, blockHeight)
		for by := uint32(0); by < bh; by++ {
			for bx := uint32(0); bx < bw; bx++ {
				v, ok := w.Block(util.Point{X: bx, Y: by}, blockWidth, blockHeight)
				if !ok {
					continue
				}
				if !yield(util.Point{X: bx * blockWidth, Y: by * blockHeight}, v) {
					return
				}
			}
		}
	}
}

// WidthInBlocks is the number of blockWidth wide columns of blocks, counting
// a partial one. A zero block width has no blocks.
func (w *window[P]) WidthInBlocks(blockWidth uint32) uint32 {
	if blockWidth == 0 {
		return 0
	}
	return uint32(util.CeilDiv(uint64(w.Width()), uint64(blockWidth)))
}

func (w *window[P]) HeightInBlocks(blockHeight uint32) uint32 {
	if blockHeight == 0 {
		return 0
	}
	return uint32(util.CeilDiv(uint64(w.Height()), uint64(blockHeight)))
}

func (w *window[P]) DimensionsInBlocks(blockWidth uint32, blockHeight uint32) (uint32, uint32) {
	return w.WidthInBlocks(blockWidth), w.HeightInBlocks(blockHeight)
}

func (w *window[P]) SizeInBlocks(blockWidth uint32, blockHeight uint32) uint64 {
	bw, bh := w.DimensionsInBlocks(blockWidth, blockHeight)
	return uint64(bw) * uint64(bh)
}

package image

import (
	"testing"

	"github.com/kpfaulkner/picture-go/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelsWithCoordsOfView(t *testing.T) {
	b := numbered(4, 4)
	v, err := b.View(util.NewRect(util.NewPoint(1, 2), 2, 2))
	require.Nil(t, err)

	var coords []util.Point
	var values []uint32
	for p, px := range v.PixelsWithCoords() {
		coords = append(coords, p)
		values = append(values, px)
	}
	assert.Equal(t, []util.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, coords)
	assert.Equal(t, []uint32{9, 10, 13, 14}, values)

	var all []uint32
	for px := range v.Pixels() {
		all = append(all, px)
	}
	assert.Equal(t, values, all)
}

func TestPixelsStopsEarly(t *testing.T) {
	b := numbered(3, 3)
	count := 0
	for range b.Pixels() {
		count++
		if count == 4 {
			break
		}
	}
	assert.Equal(t, 4, count)
}

func TestCoordsIterMutExactLen(t *testing.T) {
	b := NewBuffer[uint32](3, 2)
	v, err := b.ViewMut(util.NewRect(util.NewPoint(1, 0), 2, 2))
	require.Nil(t, err)

	it := v.PixelsWithCoordsMut()
	assert.Equal(t, 4, it.Len())

	for i := 0; ; i++ {
		p, px, ok := it.Next()
		if !ok {
			assert.Equal(t, 4, i)
			break
		}
		assert.Equal(t, 4-i-1, it.Len())
		*px = p.X + 10*p.Y + 1
	}
	assert.Equal(t, 0, it.Len())
	assert.Equal(t, []uint32{0, 1, 2, 0, 11, 12}, b.Data())

	_, _, ok := it.Next()
	assert.False(t, ok)
}

func TestCoordsIterMutAll(t *testing.T) {
	b := NewBuffer[uint32](2, 2)
	for p, px := range b.PixelsWithCoordsMut().All() {
		*px = p.Y*2 + p.X
	}
	assert.Equal(t, []uint32{0, 1, 2, 3}, b.Data())
}

func TestPixelsMut(t *testing.T) {
	b := numbered(2, 2)
	for px := range b.PixelsMut() {
		*px *= 2
	}
	assert.Equal(t, []uint32{0, 2, 4, 6}, b.Data())
}

func TestBlocks(t *testing.T) {
	b := numbered(5, 3)

	bw, bh := b.DimensionsInBlocks(2, 2)
	assert.Equal(t, uint32(3), bw)
	assert.Equal(t, uint32(2), bh)
	assert.Equal(t, uint64(6), b.SizeInBlocks(2, 2))

	edge, ok := b.Block(util.NewPoint(2, 1), 2, 2)
	require.True(t, ok)
	assert.Equal(t, uint32(1), edge.Width())
	assert.Equal(t, uint32(1), edge.Height())
	p, _ := edge.Pixel(util.NewPoint(0, 0))
	assert.Equal(t, uint32(14), p)

	_, ok = b.Block(util.NewPoint(3, 0), 2, 2)
	assert.False(t, ok)

	var origins []util.Point
	total := 0
	for origin, v := range b.Blocks(2, 2) {
		origins = append(origins, origin)
		total += v.Size()
	}
	assert.Equal(t, []util.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 4, Y: 2}}, origins)
	assert.Equal(t, 15, total)
}

func TestBlockMut(t *testing.T) {
	b := NewBuffer[uint32](4, 4)
	blk, ok := b.BlockMut(util.NewPoint(1, 1), 2, 2)
	require.True(t, ok)
	blk.Fill(9)

	for p, v := range b.PixelsWithCoords() {
		if p.X >= 2 && p.Y >= 2 {
			assert.Equal(t, uint32(9), v)
		} else {
			assert.Equal(t, uint32(0), v)
		}
	}
}

func TestZeroBlockSize(t *testing.T) {
	b := NewBuffer[uint8](5, 3)
	assert.Equal(t, uint32(0), b.WidthInBlocks(0))
	assert.Equal(t, uint32(0), b.HeightInBlocks(0))
	assert.Equal(t, uint64(0), b.SizeInBlocks(0, 2))
	assert.Equal(t, uint64(0), b.SizeInBlocks(2, 0))
	assert.Equal(t, uint64(6), b.SizeInBlocks(2, 2))

	_, ok := b.Block(util.NewPoint(0, 0), 0, 2)
	assert.False(t, ok)
}

package processing

import (
	"fmt"
	"math"
	"testing"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/options"
	"github.com/kpfaulkner/picture-go/pixel"
	"github.com/kpfaulkner/picture-go/testcommon"
	"github.com/kpfaulkner/picture-go/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSizes = [][2]uint32{{1, 1}, {2, 3}, {4, 4}, {3, 8}, {7, 5}, {16, 9}}

func grayBuffer(width uint32, values ...uint8) *image.Buffer[pixel.Gray8] {
	data := make([]pixel.Gray8, len(values))
	for i, v := range values {
		data[i] = pixel.NewGray(v)
	}
	return image.NewBufferFromContainer(data, width, uint32(len(values))/width)
}

func TestResizeTwoByTwoBox(t *testing.T) {
	b := grayBuffer(2, 0, 100, 200, 255)

	// ratio 2 with a zero window keeps only the sample at floor(0.5) = 0 on each axis
	horizontal := ResampleHorizontal(b, 1, BoxFilter, 0)
	assert.Equal(t, []pixel.Gray8{{V: 0}, {V: 200}}, horizontal.Data())

	out := Resize(b, 1, 1, FilterBox)
	require.Equal(t, 1, out.Size())
	assert.Equal(t, pixel.NewGray[uint8](0), out.Data()[0])
}

func TestTriangleUpsample(t *testing.T) {
	b := grayBuffer(2, 0, 100)
	out := ResampleHorizontal(b, 4, Triangle, 1)
	assert.Equal(t, []pixel.Gray8{{V: 0}, {V: 25}, {V: 75}, {V: 100}}, out.Data())
}

func TestTriangleUpsampleRoundsToNearest(t *testing.T) {
	// the interpolated values are 0, 0.25, 0.75 and 1; truncating would give
	// 0 0 0 1
	out := ResampleHorizontal(grayBuffer(2, 0, 1), 4, Triangle, 1)
	assert.Equal(t, []pixel.Gray8{{V: 0}, {V: 0}, {V: 1}, {V: 1}}, out.Data())
}

func TestBoxDownsamplePicksCentreLeftSample(t *testing.T) {
	b := grayBuffer(4, 0, 10, 100, 110)
	out := ResampleHorizontal(b, 2, BoxFilter, 0)
	assert.Equal(t, []pixel.Gray8{{V: 0}, {V: 100}}, out.Data())
}

func TestConstantStaysConstant(t *testing.T) {
	colour := pixel.NewRGB[uint8](12, 200, 77)
	src := testcommon.GenerateUniform(4, 4, colour)

	for _, filter := range ResizeFilters() {
		for _, size := range testSizes {
			t.Run(fmt.Sprintf("%v %dx%d", filter, size[0], size[1]), func(t *testing.T) {
				out := Resize(src, size[0], size[1], filter)
				w, h := out.Dimensions()
				assert.Equal(t, size[0], w)
				assert.Equal(t, size[1], h)
				for p, px := range out.PixelsWithCoords() {
					assert.Equal(t, colour, px, "at %v", p)
				}
			})
		}
	}
}

func TestSameSizeIsIdentity(t *testing.T) {
	src := testcommon.GenerateChecker(6, 5, 1, pixel.NewRGB[uint8](250, 3, 40), pixel.NewRGB[uint8](7, 128, 255))
	gradient := testcommon.GenerateGradient(9, 4)

	for _, filter := range []ResizeFilter{FilterBox, FilterTriangle, FilterCatmullRom, FilterLanczos2, FilterLanczos3} {
		t.Run(filter.String(), func(t *testing.T) {
			assert.Equal(t, src.Data(), Resize(src, 6, 5, filter).Data())
			assert.Equal(t, gradient.Data(), Resize(gradient, 9, 4, filter).Data())
		})
	}
}

func TestSinglePixelSource(t *testing.T) {
	src := testcommon.GenerateUniform(1, 1, pixel.NewRGBA[uint8](9, 99, 199, 255))

	for _, filter := range ResizeFilters() {
		for _, size := range testSizes {
			out := Resize(src, size[0], size[1], filter)
			require.Equal(t, int(size[0]*size[1]), out.Size())
			for px := range out.Pixels() {
				assert.Equal(t, pixel.NewRGBA[uint8](9, 99, 199, 255), px, "%v to %v", filter, size)
			}
		}
	}
}

func TestZeroTargetDimensions(t *testing.T) {
	src := testcommon.GenerateGradient(5, 4)

	for _, size := range [][2]uint32{{0, 4}, {5, 0}, {0, 0}, {0, 9}, {12, 0}} {
		out := Resize(src, size[0], size[1], FilterLanczos3)
		w, h := out.Dimensions()
		assert.Equal(t, size[0], w)
		assert.Equal(t, size[1], h)
		assert.Equal(t, 0, out.Size())
	}

	empty := image.NewBuffer[pixel.Gray8](0, 0)
	assert.NotPanics(t, func() { Resize(empty, 0, 0, FilterTriangle) })
	assert.NotPanics(t, func() { Resize(empty, 0, 3, FilterTriangle) })
}

func TestEmptySourcePanics(t *testing.T) {
	src := image.NewBuffer[pixel.Gray8](0, 3)
	assert.Panics(t, func() { ResampleHorizontal(src, 4, Triangle, 1) })

	src = image.NewBuffer[pixel.Gray8](3, 0)
	assert.Panics(t, func() { ResampleVertical(src, 4, Triangle, 1) })
}

func TestNegativeWindowPanics(t *testing.T) {
	src := testcommon.GenerateGradient(3, 3)
	assert.Panics(t, func() { Resample(src, 2, 2, Triangle, -1) })
	assert.Panics(t, func() { Resample(src, 2, 2, Triangle, float32(math.NaN())) })
}

func TestParallelMatchesSequential(t *testing.T) {
	src := testcommon.GenerateChecker(37, 23, 3, pixel.NewRGB[uint8](255, 10, 0), pixel.NewRGB[uint8](0, 90, 255))

	for _, size := range [][2]uint32{{50, 11}, {13, 40}, {37, 23}} {
		sequential := Resize(src, size[0], size[1], FilterLanczos3)
		for _, workers := range []int{2, 4, 7, 64} {
			parallel := Resize(src, size[0], size[1], FilterLanczos3, options.WithMaxGoroutines(workers))
			assert.Equal(t, sequential.Data(), parallel.Data(), "%d workers to %v", workers, size)
		}
	}
}

func TestResizeOfView(t *testing.T) {
	src := testcommon.GenerateGradient(10, 10)
	v, err := src.View(util.NewRect(util.NewPoint(2, 3), 5, 4))
	require.Nil(t, err)

	fromView := Resize(v, 8, 2, FilterMitchell)
	fromCopy := Resize(image.ToBuffer[pixel.Gray8](v), 8, 2, FilterMitchell)
	assert.Equal(t, fromCopy.Data(), fromView.Data())

	// the source is only read
	assert.Equal(t, testcommon.GenerateGradient(10, 10).Data(), src.Data())
}

func TestDownsampleAverages(t *testing.T) {
	// alternating columns blend towards the mean once the kernel is widened
	src := testcommon.GenerateChecker(64, 1, 1, pixel.NewRGB[uint8](0, 0, 0), pixel.NewRGB[uint8](200, 200, 200))
	out := Resize(src, 4, 1, FilterTriangle)
	for px := range out.Pixels() {
		assert.InDelta(t, 100, float64(px.R), 10)
	}
}

func TestFloatPixelsAreNotClamped(t *testing.T) {
	src := image.NewBufferFromContainer([]pixel.GrayF32{{V: -1}, {V: 3}}, 2, 1)
	out := ResampleHorizontal(src, 1, Triangle, 1)
	// the single target sample sits halfway between both sources
	assert.InDelta(t, 1, float64(out.Data()[0].V), 1e-6)
}

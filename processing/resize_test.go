package processing

import (
	"math"
	"testing"

	"github.com/kpfaulkner/picture-go/pixel"
	"github.com/kpfaulkner/picture-go/testcommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResizeFilter(t *testing.T) {
	for _, tc := range []struct {
		name      string
		expected  ResizeFilter
		expectErr bool
	}{
		{name: "box", expected: FilterBox},
		{name: "Triangle", expected: FilterTriangle},
		{name: "b-spline", expected: FilterBSpline},
		{name: "MITCHELL", expected: FilterMitchell},
		{name: "catmull_rom", expected: FilterCatmullRom},
		{name: "lanczos2", expected: FilterLanczos2},
		{name: "Lanczos3", expected: FilterLanczos3},
		{name: "bicubic", expectErr: true},
		{name: "", expectErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f, err := ParseResizeFilter(tc.name)
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrUnknownFilter)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tc.expected, f)
		})
	}
}

func TestResizeFilterWindows(t *testing.T) {
	expected := map[ResizeFilter]float32{
		FilterBox:        0,
		FilterTriangle:   1,
		FilterBSpline:    2,
		FilterMitchell:   2,
		FilterCatmullRom: 2,
		FilterLanczos2:   2,
		FilterLanczos3:   3,
	}
	require.Len(t, ResizeFilters(), len(expected))
	for _, f := range ResizeFilters() {
		assert.Equal(t, expected[f], f.Window(), f.String())
		assert.NotNil(t, f.Kernel())

		parsed, err := ParseResizeFilter(f.String())
		require.Nil(t, err)
		assert.Equal(t, f, parsed)
	}

	assert.Equal(t, "ResizeFilter(42)", ResizeFilter(42).String())
	assert.Panics(t, func() { ResizeFilter(-1).Window() })
}

func TestBlurRejectsNonPositiveStrength(t *testing.T) {
	src := testcommon.GenerateGradient(4, 4)
	for _, strength := range []float32{0, -1, float32(math.NaN())} {
		assert.Panics(t, func() { BoxBlur(src, strength) }, "box %v", strength)
		assert.Panics(t, func() { GaussianBlur(src, strength) }, "gaussian %v", strength)
	}
}

func TestBlurKeepsDimensionsAndConstants(t *testing.T) {
	colour := pixel.NewRGB[uint8](40, 80, 160)
	src := testcommon.GenerateUniform(9, 6, colour)

	for name, out := range map[string][]pixel.RGB8{
		"box":      BoxBlur(src, 2).Data(),
		"gaussian": GaussianBlur(src, 1.5).Data(),
	} {
		require.Len(t, out, 54, name)
		for _, px := range out {
			assert.Equal(t, colour, px, name)
		}
	}
}

func TestBlurSmoothsEdges(t *testing.T) {
	src := testcommon.GenerateChecker(8, 8, 4, pixel.NewRGB[uint8](0, 0, 0), pixel.NewRGB[uint8](255, 255, 255))

	for name, out := range map[string][]pixel.RGB8{
		"box":      BoxBlur(src, 1).Data(),
		"gaussian": GaussianBlur(src, 1).Data(),
	} {
		t.Run(name, func(t *testing.T) {
			// (3,0) is black next to a white cell, so blurring must brighten it
			edge := out[3]
			assert.Greater(t, edge.R, uint8(0))
			assert.Less(t, edge.R, uint8(255))

			// (0,0) is far enough from any white cell to stay black
			assert.Equal(t, uint8(0), out[0].R)
		})
	}
}

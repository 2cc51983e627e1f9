package imageformats

import (
	"errors"
	"fmt"

	"github.com/kpfaulkner/picture-go/pixel"
)

var ErrUnsupportedPixel = errors.New("imageformats: unsupported pixel type")

// PNG colour types, also used to describe every other integer layout.
const (
	colourGray      byte = 0
	colourRGB       byte = 2
	colourGrayAlpha byte = 4
	colourRGBA      byte = 6
)

// layout describes how a pixel type maps onto file formats: the PNG colour
// type, the bits per channel, and for each output channel the index of the
// matching value produced by ToFloat32.
type layout struct {
	colourType byte
	bitDepth   int
	order      []int
}

func (l layout) hasAlpha() bool {
	return l.colourType == colourGrayAlpha || l.colourType == colourRGBA
}

func (l layout) maxValue() float32 {
	if l.bitDepth == 16 {
		return 65535
	}
	return 255
}

func layoutOf[P any]() (layout, error) {
	var zero P
	switch any(zero).(type) {
	case pixel.Gray8:
		return layout{colourGray, 8, []int{0}}, nil
	case pixel.Gray16:
		return layout{colourGray, 16, []int{0}}, nil
	case pixel.GrayAlpha8:
		return layout{colourGrayAlpha, 8, []int{0, 1}}, nil
	case pixel.GrayAlpha16:
		return layout{colourGrayAlpha, 16, []int{0, 1}}, nil
	case pixel.RGB8:
		return layout{colourRGB, 8, []int{0, 1, 2}}, nil
	case pixel.RGB16:
		return layout{colourRGB, 16, []int{0, 1, 2}}, nil
	case pixel.RGBA8:
		return layout{colourRGBA, 8, []int{0, 1, 2, 3}}, nil
	case pixel.RGBA16:
		return layout{colourRGBA, 16, []int{0, 1, 2, 3}}, nil
	case pixel.BGR8:
		return layout{colourRGB, 8, []int{2, 1, 0}}, nil
	case pixel.BGRA8:
		return layout{colourRGBA, 8, []int{2, 1, 0, 3}}, nil
	}
	return layout{}, fmt.Errorf("%w: %T", ErrUnsupportedPixel, zero)
}

package processing

import (
	"fmt"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/util"
)

// FlipHorizontal mirrors v in place around its vertical axis.
func FlipHorizontal[P any](v image.MutViewer[P]) {
	width, height := v.Dimensions()
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width/2; x++ {
			swapPixels(v, util.NewPoint(x, y), util.NewPoint(width-1-x, y))
		}
	}
}

// FlipVertical mirrors v in place around its horizontal axis.
func FlipVertical[P any](v image.MutViewer[P]) {
	width, height := v.Dimensions()
	for x := uint32(0); x < width; x++ {
		for y := uint32(0); y < height/2; y++ {
			swapPixels(v, util.NewPoint(x, y), util.NewPoint(x, height-1-y))
		}
	}
}

// swapPixels exchanges two distinct pixels through a pair of disjoint 1x1
// windows. a and b always differ here, so a failure is a bug.
func swapPixels[P any](v image.MutViewer[P], a util.Point, b util.Point) {
	views, err := v.ViewMutMultiple(util.NewRect(a, 1, 1), util.NewRect(b, 1, 1))
	if err != nil {
		panic(fmt.Sprintf("processing: swapping %v and %v: %v", a, b, err))
	}
	defer image.ReleaseAll(views...)

	pa := views[0].PixelMut(util.Point{})
	pb := views[1].PixelMut(util.Point{})
	*pa, *pb = *pb, *pa
}

package processing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/options"
	"github.com/kpfaulkner/picture-go/pixel"
)

var ErrUnknownFilter = errors.New("processing: unknown resize filter")

// ResizeFilter selects one of the predefined kernels used by Resize.
type ResizeFilter int

const (
	FilterBox ResizeFilter = iota
	FilterTriangle
	FilterBSpline
	FilterMitchell
	FilterCatmullRom
	FilterLanczos2
	FilterLanczos3
)

var resizeFilters = []struct {
	name   string
	kernel Filter
	window float32
}{
	FilterBox:        {name: "box", kernel: BoxFilter, window: 0},
	FilterTriangle:   {name: "triangle", kernel: Triangle, window: 1},
	FilterBSpline:    {name: "bspline", kernel: BSpline, window: 2},
	FilterMitchell:   {name: "mitchell", kernel: Mitchell, window: 2},
	FilterCatmullRom: {name: "catmullrom", kernel: CatmullRom, window: 2},
	FilterLanczos2:   {name: "lanczos2", kernel: Lanczos2, window: 2},
	FilterLanczos3:   {name: "lanczos3", kernel: Lanczos3, window: 3},
}

// ResizeFilters lists every ResizeFilter, in declaration order.
func ResizeFilters() []ResizeFilter {
	filters := make([]ResizeFilter, len(resizeFilters))
	for i := range resizeFilters {
		filters[i] = ResizeFilter(i)
	}
	return filters
}

func (f ResizeFilter) valid() bool {
	return f >= 0 && int(f) < len(resizeFilters)
}

// Kernel is the filter function. It panics for an unknown ResizeFilter.
func (f ResizeFilter) Kernel() Filter {
	if !f.valid() {
		panic(fmt.Sprintf("processing: unknown resize filter %d", int(f)))
	}
	return resizeFilters[f].kernel
}

// Window is the support radius of the filter at scale 1.
func (f ResizeFilter) Window() float32 {
	if !f.valid() {
		panic(fmt.Sprintf("processing: unknown resize filter %d", int(f)))
	}
	return resizeFilters[f].window
}

func (f ResizeFilter) String() string {
	if !f.valid() {
		return fmt.Sprintf("ResizeFilter(%d)", int(f))
	}
	return resizeFilters[f].name
}

// ParseResizeFilter accepts the String form of a filter, ignoring case,
// dashes and underscores.
func ParseResizeFilter(name string) (ResizeFilter, error) {
	normalised := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	for i, rf := range resizeFilters {
		if rf.name == normalised {
			return ResizeFilter(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

// Resize resamples v to width x height with one of the predefined filters.
func Resize[P pixel.Pixel[P]](v image.Viewer[P], width uint32, height uint32, filter ResizeFilter, opts ...options.ProcessingOption) *image.Buffer[P] {
	return Resample(v, width, height, filter.Kernel(), filter.Window(), opts...)
}

// BoxBlur averages every pixel with its neighbours up to strength pixels away.
// It panics unless strength > 0.
func BoxBlur[P pixel.Pixel[P]](v image.Viewer[P], strength float32, opts ...options.ProcessingOption) *image.Buffer[P] {
	if !(strength > 0) {
		panic(fmt.Sprintf("processing: box blur strength must be positive, got %v", strength))
	}
	width, height := v.Dimensions()
	return Resample(v, width, height, BoxFilter, strength, opts...)
}

// GaussianBlur blurs v with a gaussian of standard deviation strength, cut off
// at two deviations. It panics unless strength > 0.
func GaussianBlur[P pixel.Pixel[P]](v image.Viewer[P], strength float32, opts ...options.ProcessingOption) *image.Buffer[P] {
	if !(strength > 0) {
		panic(fmt.Sprintf("processing: gaussian blur strength must be positive, got %v", strength))
	}
	width, height := v.Dimensions()
	gaussian := func(x float32) float32 {
		return Gaussian(x, strength)
	}
	return Resample(v, width, height, gaussian, 2*strength, opts...)
}

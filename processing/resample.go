// Package processing implements separable resampling (resize and blur) and
// in place flips over image views.
//
// Every resample is done one axis at a time: a horizontal pass followed by a
// vertical pass over its result. The input view is only read; each pass
// returns a newly allocated buffer.
package processing

import (
	"fmt"
	"math"
	"sync"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/options"
	"github.com/kpfaulkner/picture-go/pixel"
	"github.com/kpfaulkner/picture-go/util"
	log "github.com/sirupsen/logrus"
)

// weightTable holds, for every target coordinate along one axis, the run of
// source coordinates that contribute to it and their filter weights. It is
// computed once per pass and shared by every row (or column) of the pass.
type weightTable struct {
	starts  []int
	mins    []uint32
	counts  []int
	sums    []float32
	weights []float32
}

func newWeightTable(srcExtent uint32, dstExtent uint32, filter Filter, window float32) *weightTable {
	ratio := float32(srcExtent) / float32(dstExtent)
	samplingRatio := util.Max(ratio, 1)
	inverseSamplingRatio := 1 / samplingRatio

	// widen the support when shrinking so the kernel acts as a low pass filter
	window *= samplingRatio

	offset := 0.5 * (ratio - 1)
	maxSrc := float32(srcExtent - 1)

	wt := &weightTable{
		starts:  make([]int, dstExtent),
		mins:    make([]uint32, dstExtent),
		counts:  make([]int, dstExtent),
		sums:    make([]float32, dstExtent),
		weights: make([]float32, 0, (2*int(math.Min(float64(window), float64(srcExtent)))+1)*int(dstExtent)),
	}

	for t := uint32(0); t < dstExtent; t++ {
		equivalentSrc := float32(t)*ratio + offset
		lo := uint32(util.Clamp(equivalentSrc-window, 0, maxSrc))
		hi := uint32(util.Clamp(equivalentSrc+window, 0, maxSrc))

		start := len(wt.weights)
		var sum float32
		for src := lo; src <= hi; src++ {
			w := filter((float32(src) - equivalentSrc) * inverseSamplingRatio)
			wt.weights = append(wt.weights, w)
			sum += w
		}

		if sum == 0 || sum != sum {
			// the kernel vanished over the whole support; take the nearest sample
			wt.weights = append(wt.weights[:start], 1)
			lo = uint32(util.Clamp(float32(math.Round(float64(equivalentSrc))), 0, maxSrc))
			hi = lo
			sum = 1
		}

		wt.starts[t] = start
		wt.mins[t] = lo
		wt.counts[t] = int(hi-lo) + 1
		wt.sums[t] = sum
	}
	return wt
}

func (wt *weightTable) row(t uint32) ([]float32, uint32, float32) {
	start := wt.starts[t]
	return wt.weights[start : start+wt.counts[t]], wt.mins[t], wt.sums[t]
}

// checkResample validates a pass along one axis. It returns false when the
// output holds no pixels and nothing needs computing.
func checkResample(axis string, srcExtent uint32, dstExtent uint32, otherExtent uint32, window float32) bool {
	if !(window >= 0) {
		panic(fmt.Sprintf("processing: invalid filter window %v", window))
	}
	if dstExtent == 0 || otherExtent == 0 {
		return false
	}
	if srcExtent == 0 {
		panic(fmt.Sprintf("processing: cannot resample empty %s axis to %d", axis, dstExtent))
	}
	return true
}

// forEachBand splits [0, n) into contiguous bands, one per worker, and runs fn
// on each. Bands never overlap so workers write disjoint output rows.
func forEachBand(n uint32, opts *options.ProcessingOptions, fn func(start uint32, end uint32)) {
	numWorkers := uint32(util.Max(opts.MaxGoroutines, 1))
	if numWorkers == 1 || n < 2 {
		fn(0, n)
		return
	}

	rowsPerWorker := (n-1)/numWorkers + 1
	var wg sync.WaitGroup
	for w := uint32(0); w < numWorkers; w++ {
		startY := w * rowsPerWorker
		if startY >= n {
			break
		}
		endY := util.Min(startY+rowsPerWorker, n)
		wg.Add(1)
		go func(sy uint32, ey uint32) {
			defer wg.Done()
			fn(sy, ey)
		}(startY, endY)
	}
	wg.Wait()
}

// ResampleHorizontal resamples v to newWidth columns using filter, keeping the
// height. window is the largest distance, in source pixels, at which filter is
// still evaluated.
func ResampleHorizontal[P pixel.Pixel[P]](v image.Viewer[P], newWidth uint32, filter Filter, window float32, opts ...options.ProcessingOption) *image.Buffer[P] {
	srcWidth, height := v.Dimensions()
	out := image.NewBuffer[P](newWidth, height)
	if !checkResample("horizontal", srcWidth, newWidth, height, window) {
		return out
	}

	log.Debugf("resample horizontal %dx%d -> %dx%d, window %v", srcWidth, height, newWidth, height, window)

	table := newWeightTable(srcWidth, newWidth, filter, window)
	var zero P
	numChannels := zero.NumChannels()

	forEachBand(height, options.NewProcessingOptions(opts...), func(sy uint32, ey uint32) {
		acc := util.GetFloat32Slice(numChannels)
		defer util.ReturnFloat32Slice(acc)
		channels := util.GetFloat32Slice(numChannels)
		defer util.ReturnFloat32Slice(channels)

		for y := sy; y < ey; y++ {
			src := v.Row(y)
			dst := out.RowMut(y)
			for t := range dst {
				weights, lo, sum := table.row(uint32(t))
				clear(acc)
				for i, w := range weights {
					src[lo+uint32(i)].ToFloat32(channels)
					for c := range acc {
						acc[c] += w * channels[c]
					}
				}
				for c := range acc {
					acc[c] /= sum
				}
				dst[t] = zero.FromFloat32(acc)
			}
		}
	})
	return out
}

// ResampleVertical resamples v to newHeight rows using filter, keeping the
// width.
func ResampleVertical[P pixel.Pixel[P]](v image.Viewer[P], newHeight uint32, filter Filter, window float32, opts ...options.ProcessingOption) *image.Buffer[P] {
	width, srcHeight := v.Dimensions()
	out := image.NewBuffer[P](width, newHeight)
	if !checkResample("vertical", srcHeight, newHeight, width, window) {
		return out
	}

	log.Debugf("resample vertical %dx%d -> %dx%d, window %v", width, srcHeight, width, newHeight, window)

	table := newWeightTable(srcHeight, newHeight, filter, window)
	var zero P
	numChannels := zero.NumChannels()

	forEachBand(newHeight, options.NewProcessingOptions(opts...), func(sy uint32, ey uint32) {
		// one accumulator per pixel of the target row, so that source rows
		// are read sequentially
		acc := util.GetFloat32Slice(int(width) * numChannels)
		defer util.ReturnFloat32Slice(acc)
		channels := util.GetFloat32Slice(numChannels)
		defer util.ReturnFloat32Slice(channels)

		for y := sy; y < ey; y++ {
			weights, lo, sum := table.row(y)
			clear(acc)
			for i, w := range weights {
				for x, p := range v.Row(lo + uint32(i)) {
					p.ToFloat32(channels)
					px := acc[x*numChannels : (x+1)*numChannels]
					for c := range px {
						px[c] += w * channels[c]
					}
				}
			}

			dst := out.RowMut(y)
			for x := range dst {
				px := acc[x*numChannels : (x+1)*numChannels]
				for c := range px {
					px[c] /= sum
				}
				dst[x] = zero.FromFloat32(px)
			}
		}
	})
	return out
}

// Resample resizes v to width x height with a horizontal pass followed by a
// vertical pass.
func Resample[P pixel.Pixel[P]](v image.Viewer[P], width uint32, height uint32, filter Filter, window float32, opts ...options.ProcessingOption) *image.Buffer[P] {
	horizontal := ResampleHorizontal(v, width, filter, window, opts...)
	return ResampleVertical[P](horizontal, height, filter, window, opts...)
}

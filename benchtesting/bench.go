package main

import (
	"flag"
	"fmt"
	"math/cmplx"
	"time"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/options"
	"github.com/kpfaulkner/picture-go/pixel"
	"github.com/kpfaulkner/picture-go/processing"
	"github.com/kpfaulkner/picture-go/util"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

// fractal fills a width x height julia set, the same workload on every run.
func fractal(width uint32, height uint32) *image.RGB8Image {
	img := image.NewBuffer[pixel.RGB8](width, height)
	scaleX := 3.0 / float64(width)
	scaleY := 3.0 / float64(height)
	c := complex(-0.4, 0.6)

	for p, px := range img.PixelsWithCoordsMut().All() {
		z := complex(float64(p.Y)*scaleX-1.5, float64(p.X)*scaleY-1.5)
		g := uint8(0)
		for g < 255 && cmplx.Abs(z) <= 2 {
			z = z*z + c
			g++
		}
		*px = pixel.NewRGB(uint8(p.X*255/width), g, uint8(p.Y*255/height))
	}
	return img
}

func main() {
	size := flag.Uint("size", 1024, "source image side")
	iterations := flag.Int("n", 10, "iterations per filter")
	workers := flag.Int("workers", 1, "goroutines used by resampling")
	prof := flag.String("profile", "cpu", "cpu, mem or none")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *iterations < 1 {
		log.Fatalf("need at least one iteration")
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	switch *prof {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileHeap, profile.ProfilePath(".")).Stop()
	}

	start := time.Now()
	src := fractal(uint32(*size), uint32(*size))
	fmt.Printf("fractal took %d ms\n", time.Since(start).Milliseconds())

	half := uint32(*size) / 2
	double := uint32(*size) * 2
	for _, filter := range processing.ResizeFilters() {
		start := time.Now()
		for count := 0; count < *iterations; count++ {
			processing.Resize(src, half, half, filter, options.WithMaxGoroutines(*workers))
			processing.Resize(src, double, double, filter, options.WithMaxGoroutines(*workers))
		}
		elapsed := time.Since(start)
		fmt.Printf("%-10s %d ms per down+up resize\n", filter, elapsed.Milliseconds()/int64(*iterations))
	}

	start = time.Now()
	for count := 0; count < *iterations; count++ {
		processing.GaussianBlur(src, 8, options.WithMaxGoroutines(*workers))
	}
	fmt.Printf("gaussian   %d ms per blur\n", time.Since(start).Milliseconds()/int64(*iterations))

	log.Infof("scratch pool %v", util.GetPoolMetrics())
}

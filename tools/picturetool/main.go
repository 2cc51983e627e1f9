package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	picture "github.com/kpfaulkner/picture-go"
	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/imageformats"
	"github.com/kpfaulkner/picture-go/options"
	"github.com/kpfaulkner/picture-go/pixel"
	"github.com/kpfaulkner/picture-go/processing"
	"github.com/kpfaulkner/picture-go/util"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

type config struct {
	op       string
	width    uint32
	height   uint32
	filter   processing.ResizeFilter
	strength float64
	opts     []options.ProcessingOption
}

func run[P pixel.Pixel[P]](src *image.Buffer[P], cfg config) (*image.Buffer[P], error) {
	switch cfg.op {
	case "resize":
		width, height := cfg.width, cfg.height
		if width == 0 && height == 0 {
			return nil, fmt.Errorf("resize needs -w and/or -h")
		}
		// keep the aspect ratio when only one side is given
		if width == 0 {
			width = uint32(uint64(src.Width()) * uint64(height) / uint64(src.Height()))
		}
		if height == 0 {
			height = uint32(uint64(src.Height()) * uint64(width) / uint64(src.Width()))
		}
		return processing.Resize(src, width, height, cfg.filter, cfg.opts...), nil
	case "blur":
		return processing.BoxBlur(src, float32(cfg.strength), cfg.opts...), nil
	case "gaussian":
		return processing.GaussianBlur(src, float32(cfg.strength), cfg.opts...), nil
	case "flipx":
		processing.FlipHorizontal(src)
		return src, nil
	case "flipy":
		processing.FlipVertical(src)
		return src, nil
	case "swap":
		left, right, err := src.SplitXAtMut(src.Width() / 2)
		if err != nil {
			return nil, err
		}
		defer image.ReleaseAll(left, right)

		target := right
		if left.Width() != right.Width() {
			// odd widths leave the middle column where it is
			if target, err = right.ViewMut(util.NewRect(util.NewPoint(1, 0), left.Width(), left.Height())); err != nil {
				return nil, err
			}
			defer target.Release()
		}
		if err := left.SwapWith(target); err != nil {
			return nil, err
		}
		return src, nil
	case "copy":
		return src, nil
	}
	return nil, fmt.Errorf("unknown operation %q", cfg.op)
}

func process[P pixel.Pixel[P]](src *image.Buffer[P], cfg config, outfile string) error {
	start := time.Now()
	out, err := run(src, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("%s took %d ms, output %s\n", cfg.op, time.Since(start).Milliseconds(), out)

	startEncoding := time.Now()
	if err := picture.Save(outfile, out); err != nil {
		return err
	}
	fmt.Printf("encoding took %d ms\n", time.Since(startEncoding).Milliseconds())
	return nil
}

func main() {
	infile := flag.String("i", "", "input png, bmp or tiff file")
	outfile := flag.String("o", "", "output file, format picked from the extension")
	op := flag.String("op", "resize", "operation: resize, blur, gaussian, flipx, flipy, swap, copy")
	width := flag.Uint("w", 0, "resize width")
	height := flag.Uint("h", 0, "resize height")
	filterName := flag.String("filter", "lanczos3", "resize filter: "+filterNames())
	strength := flag.Float64("s", 2, "blur strength")
	workers := flag.Int("workers", 1, "goroutines used by resampling, 0 for all CPUs")
	prof := flag.String("profile", "", "write a cpu or mem profile to the current directory")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *infile == "" || *outfile == "" {
		fmt.Printf("both input and output files must be specified\n")
		os.Exit(1)
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	switch *prof {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileHeap, profile.ProfilePath(".")).Stop()
	case "":
	default:
		log.Fatalf("unknown profile %q", *prof)
	}

	filter, err := processing.ParseResizeFilter(*filterName)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}

	cfg := config{
		op:       *op,
		width:    uint32(*width),
		height:   uint32(*height),
		filter:   filter,
		strength: *strength,
	}
	if *workers == 0 {
		cfg.opts = append(cfg.opts, options.WithAllCPUs())
	} else {
		cfg.opts = append(cfg.opts, options.WithMaxGoroutines(*workers))
	}

	start := time.Now()
	d, err := picture.Open(*infile)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
	fmt.Printf("decoding took %d ms\n", time.Since(start).Milliseconds())

	switch d.ColorType {
	case imageformats.ColorGray8:
		err = process(d.Gray8, cfg, *outfile)
	case imageformats.ColorGrayAlpha8:
		err = process(d.GrayAlpha8, cfg, *outfile)
	case imageformats.ColorRGB8:
		err = process(d.RGB8, cfg, *outfile)
	case imageformats.ColorRGBA8:
		err = process(d.RGBA8, cfg, *outfile)
	case imageformats.ColorGray16:
		err = process(d.Gray16, cfg, *outfile)
	case imageformats.ColorRGBA16:
		err = process(d.RGBA16, cfg, *outfile)
	}
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
}

func filterNames() string {
	var names []string
	for _, f := range processing.ResizeFilters() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

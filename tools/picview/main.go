package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	picture "github.com/kpfaulkner/picture-go"
	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/options"
	"github.com/kpfaulkner/picture-go/pixel"
	"github.com/kpfaulkner/picture-go/processing"
	"github.com/kpfaulkner/picture-go/util"
	log "github.com/sirupsen/logrus"
)

// upper half block: foreground paints the top pixel, background the bottom
const halfBlock = '▀'

type cellSetter interface {
	SetContent(x int, y int, primary rune, combining []rune, style tcell.Style)
}

// fit returns the largest size with src's aspect ratio inside maxW x maxH.
func fit(srcW uint32, srcH uint32, maxW uint32, maxH uint32) (uint32, uint32) {
	w, h := maxW, uint32(uint64(srcH)*uint64(maxW)/uint64(srcW))
	if h > maxH {
		w, h = uint32(uint64(srcW)*uint64(maxH)/uint64(srcH)), maxH
	}
	return util.Max(w, 1), util.Max(h, 1)
}

func toColour(p pixel.RGBA8) tcell.Color {
	// composite over black
	a := int32(p.A)
	return tcell.NewRGBColor(int32(p.R)*a/255, int32(p.G)*a/255, int32(p.B)*a/255)
}

// render draws img onto the cells of screen, two image rows per cell row.
func render(screen cellSetter, img image.Viewer[pixel.RGBA8]) {
	width, height := img.Dimensions()
	for y := uint32(0); y < height; y += 2 {
		top := img.Row(y)
		var bottom []pixel.RGBA8
		if y+1 < height {
			bottom = img.Row(y + 1)
		}
		for x := uint32(0); x < width; x++ {
			style := tcell.StyleDefault.Foreground(toColour(top[x]))
			if bottom != nil {
				style = style.Background(toColour(bottom[x]))
			} else {
				style = style.Background(tcell.ColorBlack)
			}
			screen.SetContent(int(x), int(y/2), halfBlock, nil, style)
		}
	}
}

func draw(screen tcell.Screen, src *image.Buffer[pixel.RGBA8], filter processing.ResizeFilter) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	w, h := fit(src.Width(), src.Height(), uint32(cols), uint32(rows)*2)
	scaled := processing.Resize(src, w, h, filter, options.WithAllCPUs())
	log.Debugf("preview %dx%d in %dx%d cells", w, h, cols, rows)

	screen.Clear()
	render(screen, scaled)
	screen.Show()
}

func main() {
	infile := flag.String("i", "", "image to preview")
	filterName := flag.String("filter", "triangle", "resize filter")
	flag.Parse()

	if *infile == "" {
		fmt.Printf("input file must be specified\n")
		os.Exit(1)
	}

	filter, err := processing.ParseResizeFilter(*filterName)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}

	d, err := picture.Open(*infile)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
	src := d.ToRGBA8()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("boomage %v", err)
	}
	defer screen.Fini()

	draw(screen, src, filter)
	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			draw(screen, src, filter)
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				return
			}
		case nil:
			return
		}
	}
}

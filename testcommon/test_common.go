package testcommon

import (
	"bytes"
	stdimage "image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/pixel"
	"github.com/kpfaulkner/picture-go/util"
)

// GenerateGradient returns a gray buffer whose value grows left to right and
// top to bottom, wrapping at 256.
func GenerateGradient(width uint32, height uint32) *image.Gray8Image {
	return image.NewBufferFromFunc(width, height, func(p util.Point) pixel.Gray8 {
		return pixel.NewGray(uint8((p.X + p.Y*width) % 256))
	})
}

// GenerateChecker returns an RGB buffer of alternating a and b squares of the
// given cell size.
func GenerateChecker(width uint32, height uint32, cell uint32, a pixel.RGB8, b pixel.RGB8) *image.RGB8Image {
	return image.NewBufferFromFunc(width, height, func(p util.Point) pixel.RGB8 {
		if (p.X/cell+p.Y/cell)%2 == 0 {
			return a
		}
		return b
	})
}

// GenerateUniform returns a buffer filled with p.
func GenerateUniform[P any](width uint32, height uint32, p P) *image.Buffer[P] {
	b := image.NewBuffer[P](width, height)
	b.Fill(p)
	return b
}

// GeneratePNG encodes a small checker pattern as PNG, for decoder tests.
func GeneratePNG(t *testing.T, width uint32, height uint32) []byte {
	checker := GenerateChecker(width, height, 2, pixel.NewRGB[uint8](255, 0, 0), pixel.NewRGB[uint8](0, 0, 255))
	img := ToStdRGBA(checker)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Errorf("error encoding test png : %v", err)
		return nil
	}
	return buf.Bytes()
}

// ReadTestFile loads a fixture from disk, failing the test if it can't.
func ReadTestFile(t *testing.T, filepath string) []byte {
	data, err := os.ReadFile(filepath)
	if err != nil {
		t.Errorf("error reading test file : %v", err)
		return nil
	}
	return data
}

// ToStdRGBA converts an RGB buffer to an opaque standard library image.
func ToStdRGBA(b *image.RGB8Image) *stdimage.RGBA {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, int(b.Width()), int(b.Height())))
	for p, px := range b.PixelsWithCoords() {
		img.SetRGBA(int(p.X), int(p.Y), color.RGBA{R: px.R, G: px.G, B: px.B, A: 255})
	}
	return img
}

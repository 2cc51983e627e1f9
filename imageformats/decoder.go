package imageformats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	stdimage "image"
	_ "image/png"
	"io"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/pixel"
	log "github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

var ErrEmptyImage = errors.New("imageformats: image has no pixels")

// ColorType identifies which buffer of a Decoded image is populated.
type ColorType int

const (
	ColorGray8 ColorType = iota
	ColorGrayAlpha8
	ColorRGB8
	ColorRGBA8
	ColorGray16
	ColorRGBA16
)

func (c ColorType) String() string {
	switch c {
	case ColorGray8:
		return "Gray8"
	case ColorGrayAlpha8:
		return "GrayAlpha8"
	case ColorRGB8:
		return "RGB8"
	case ColorRGBA8:
		return "RGBA8"
	case ColorGray16:
		return "Gray16"
	case ColorRGBA16:
		return "RGBA16"
	}
	return fmt.Sprintf("ColorType(%d)", int(c))
}

// Decoded is a decoded image. Exactly one buffer, selected by ColorType, is
// non nil.
type Decoded struct {
	Format    string
	ColorType ColorType

	Gray8      *image.Gray8Image
	GrayAlpha8 *image.GrayAlpha8Image
	RGB8       *image.RGB8Image
	RGBA8      *image.RGBA8Image
	Gray16     *image.Gray16Image
	RGBA16     *image.RGBA16Image
}

func (d *Decoded) Dimensions() (uint32, uint32) {
	switch d.ColorType {
	case ColorGray8:
		return d.Gray8.Dimensions()
	case ColorGrayAlpha8:
		return d.GrayAlpha8.Dimensions()
	case ColorRGB8:
		return d.RGB8.Dimensions()
	case ColorRGBA8:
		return d.RGBA8.Dimensions()
	case ColorGray16:
		return d.Gray16.Dimensions()
	case ColorRGBA16:
		return d.RGBA16.Dimensions()
	}
	return 0, 0
}

// ToRGBA8 returns the image as 8 bit RGBA, converting if needed.
func (d *Decoded) ToRGBA8() *image.RGBA8Image {
	switch d.ColorType {
	case ColorGray8:
		return image.MapBuffer(d.Gray8, func(p pixel.Gray8) pixel.RGBA8 {
			return pixel.NewRGBA(p.V, p.V, p.V, 255)
		})
	case ColorGrayAlpha8:
		return image.MapBuffer(d.GrayAlpha8, func(p pixel.GrayAlpha8) pixel.RGBA8 {
			return pixel.NewRGBA(p.V, p.V, p.V, p.A)
		})
	case ColorRGB8:
		return image.MapBuffer(d.RGB8, func(p pixel.RGB8) pixel.RGBA8 {
			return pixel.NewRGBA(p.R, p.G, p.B, 255)
		})
	case ColorRGBA8:
		return d.RGBA8.Clone()
	case ColorGray16:
		return image.MapBuffer(d.Gray16, func(p pixel.Gray16) pixel.RGBA8 {
			v := uint8(p.V >> 8)
			return pixel.NewRGBA(v, v, v, 255)
		})
	case ColorRGBA16:
		return image.MapBuffer(d.RGBA16, func(p pixel.RGBA16) pixel.RGBA8 {
			return pixel.NewRGBA(uint8(p.R>>8), uint8(p.G>>8), uint8(p.B>>8), uint8(p.A>>8))
		})
	}
	return nil
}

// Decode reads a PNG, BMP, TIFF or QOI image. The buffer type follows the
// file's own layout where the decoders preserve it; anything else is
// converted to RGBA8.
func Decode(r io.Reader) (*Decoded, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(len(qoiMagic)); err == nil && string(magic) == qoiMagic {
		return decodeQOI(br)
	}
	pngColourType := peekPNGColourType(br)

	img, format, err := stdimage.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("imageformats: decode: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyImage
	}
	log.Debugf("decoded %s image %T %dx%d", format, img, bounds.Dx(), bounds.Dy())

	d := fromStdImage(img, pngColourType)
	d.Format = format
	return d, nil
}

// peekPNGColourType returns the IHDR colour type of a PNG stream without
// consuming it, or -1 if the stream is not a PNG.
func peekPNGColourType(br *bufio.Reader) int {
	header, err := br.Peek(26)
	if err != nil || !bytes.Equal(header[:8], pngSignature) || string(header[12:16]) != "IHDR" {
		return -1
	}
	return int(header[25])
}

func fromStdImage(img stdimage.Image, pngColourType int) *Decoded {
	bounds := img.Bounds()
	width, height := uint32(bounds.Dx()), uint32(bounds.Dy())

	switch src := img.(type) {
	case *stdimage.Gray:
		data := make([]pixel.Gray8, 0, width*height)
		for y := 0; y < bounds.Dy(); y++ {
			for _, v := range src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):][:bounds.Dx()] {
				data = append(data, pixel.NewGray(v))
			}
		}
		return &Decoded{ColorType: ColorGray8, Gray8: image.NewBufferFromContainer(data, width, height)}

	case *stdimage.Gray16:
		data := make([]pixel.Gray16, 0, width*height)
		for y := 0; y < bounds.Dy(); y++ {
			row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):][:2*bounds.Dx()]
			for i := 0; i < len(row); i += 2 {
				data = append(data, pixel.NewGray(uint16(row[i])<<8|uint16(row[i+1])))
			}
		}
		return &Decoded{ColorType: ColorGray16, Gray16: image.NewBufferFromContainer(data, width, height)}

	case *stdimage.NRGBA:
		if pngColourType == int(colourGrayAlpha) {
			data := make([]pixel.GrayAlpha8, 0, width*height)
			for y := 0; y < bounds.Dy(); y++ {
				row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):][:4*bounds.Dx()]
				for i := 0; i < len(row); i += 4 {
					data = append(data, pixel.NewGrayAlpha(row[i], row[i+3]))
				}
			}
			return &Decoded{ColorType: ColorGrayAlpha8, GrayAlpha8: image.NewBufferFromContainer(data, width, height)}
		}
		return &Decoded{ColorType: ColorRGBA8, RGBA8: nrgbaToBuffer(src)}

	case *stdimage.NRGBA64:
		return &Decoded{ColorType: ColorRGBA16, RGBA16: nrgba64ToBuffer(src)}

	case *stdimage.RGBA:
		if src.Opaque() {
			data := make([]pixel.RGB8, 0, width*height)
			for y := 0; y < bounds.Dy(); y++ {
				row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):][:4*bounds.Dx()]
				for i := 0; i < len(row); i += 4 {
					data = append(data, pixel.NewRGB(row[i], row[i+1], row[i+2]))
				}
			}
			return &Decoded{ColorType: ColorRGB8, RGB8: image.NewBufferFromContainer(data, width, height)}
		}

	case *stdimage.RGBA64:
		log.Warnf("converting premultiplied %T to RGBA16", img)
		dst := stdimage.NewNRGBA64(stdimage.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
		return &Decoded{ColorType: ColorRGBA16, RGBA16: nrgba64ToBuffer(dst)}
	}

	if _, ok := img.(*stdimage.Paletted); !ok {
		log.Warnf("converting %T to RGBA8", img)
	}
	dst := stdimage.NewNRGBA(stdimage.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &Decoded{ColorType: ColorRGBA8, RGBA8: nrgbaToBuffer(dst)}
}

func nrgbaToBuffer(src *stdimage.NRGBA) *image.Buffer[pixel.RGBA8] {
	bounds := src.Bounds()
	data := make([]pixel.RGBA8, 0, bounds.Dx()*bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):][:4*bounds.Dx()]
		for i := 0; i < len(row); i += 4 {
			data = append(data, pixel.NewRGBA(row[i], row[i+1], row[i+2], row[i+3]))
		}
	}
	return image.NewBufferFromContainer(data, uint32(bounds.Dx()), uint32(bounds.Dy()))
}

func nrgba64ToBuffer(src *stdimage.NRGBA64) *image.Buffer[pixel.RGBA16] {
	bounds := src.Bounds()
	data := make([]pixel.RGBA16, 0, bounds.Dx()*bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := src.NRGBA64At(x, bounds.Min.Y+y)
			data = append(data, pixel.NewRGBA(c.R, c.G, c.B, c.A))
		}
	}
	return image.NewBufferFromContainer(data, uint32(bounds.Dx()), uint32(bounds.Dy()))
}

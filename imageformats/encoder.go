package imageformats

import (
	"errors"
	"fmt"
	stdimage "image"
	"io"
	"path/filepath"
	"strings"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/pixel"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var ErrUnknownFormat = errors.New("imageformats: unknown output format")

type Format int

const (
	FormatPNG Format = iota
	FormatBMP
	FormatTIFF
	FormatPFM
	FormatRaw
	FormatQOI
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	case FormatPFM:
		return "pfm"
	case FormatRaw:
		return "raw"
	case FormatQOI:
		return "qoi"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromFilename picks the output format from a file extension.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".pfm":
		return FormatPFM, nil
	case ".raw", ".bin":
		return FormatRaw, nil
	case ".qoi":
		return FormatQOI, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Encode writes v to output in the given format.
func Encode[P pixel.Pixel[P]](v image.Viewer[P], output io.Writer, format Format) error {
	switch format {
	case FormatPNG:
		return EncodePNG(v, output)
	case FormatBMP:
		return EncodeBMP(v, output)
	case FormatTIFF:
		return EncodeTIFF(v, output)
	case FormatPFM:
		return WritePFM(v, output)
	case FormatRaw:
		return WriteRaw(v, output)
	case FormatQOI:
		return EncodeQOI(v, output)
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
}

// EncodeBMP writes v as an uncompressed BMP. 16 bit channels are reduced to 8.
func EncodeBMP[P pixel.Pixel[P]](v image.Viewer[P], output io.Writer) error {
	img, err := ToImage(v)
	if err != nil {
		return err
	}
	return bmp.Encode(output, img)
}

// EncodeTIFF writes v as a deflate compressed TIFF.
func EncodeTIFF[P pixel.Pixel[P]](v image.Viewer[P], output io.Writer) error {
	img, err := ToImage(v)
	if err != nil {
		return err
	}
	return tiff.Encode(output, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// ToImage copies v into the closest standard library image type: Gray,
// Gray16, RGBA (opaque), NRGBA or NRGBA64.
func ToImage[P pixel.Pixel[P]](v image.Viewer[P]) (stdimage.Image, error) {
	l, err := layoutOf[P]()
	if err != nil {
		return nil, err
	}

	width, height := v.Dimensions()
	rect := stdimage.Rect(0, 0, int(width), int(height))
	var zero P
	channels := make([]float32, zero.NumChannels())

	// rgba widens any layout to 4 channels in R, G, B, A order
	rgba := func(p P) [4]float32 {
		p.ToFloat32(channels)
		var out [4]float32
		switch l.colourType {
		case colourGray:
			out = [4]float32{channels[0], channels[0], channels[0], l.maxValue()}
		case colourGrayAlpha:
			out = [4]float32{channels[0], channels[0], channels[0], channels[1]}
		case colourRGB:
			out = [4]float32{channels[l.order[0]], channels[l.order[1]], channels[l.order[2]], l.maxValue()}
		default:
			out = [4]float32{channels[l.order[0]], channels[l.order[1]], channels[l.order[2]], channels[l.order[3]]}
		}
		return out
	}

	switch {
	case l.colourType == colourGray && l.bitDepth == 8:
		img := stdimage.NewGray(rect)
		for y := uint32(0); y < height; y++ {
			row := img.Pix[img.PixOffset(0, int(y)):]
			for x, p := range v.Row(y) {
				p.ToFloat32(channels)
				row[x] = pixel.FromFloat32Channel[uint8](channels[0])
			}
		}
		return img, nil

	case l.colourType == colourGray:
		img := stdimage.NewGray16(rect)
		for y := uint32(0); y < height; y++ {
			row := img.Pix[img.PixOffset(0, int(y)):]
			for x, p := range v.Row(y) {
				p.ToFloat32(channels)
				g := pixel.FromFloat32Channel[uint16](channels[0])
				row[2*x] = uint8(g >> 8)
				row[2*x+1] = uint8(g)
			}
		}
		return img, nil

	case l.bitDepth == 8:
		var img interface {
			stdimage.Image
			PixOffset(x int, y int) int
		}
		var pix []uint8
		if l.hasAlpha() {
			nrgba := stdimage.NewNRGBA(rect)
			img, pix = nrgba, nrgba.Pix
		} else {
			opaque := stdimage.NewRGBA(rect)
			img, pix = opaque, opaque.Pix
		}
		for y := uint32(0); y < height; y++ {
			row := pix[img.PixOffset(0, int(y)):]
			for x, p := range v.Row(y) {
				c := rgba(p)
				for i := range c {
					row[4*x+i] = pixel.FromFloat32Channel[uint8](c[i])
				}
			}
		}
		return img, nil
	}

	img := stdimage.NewNRGBA64(rect)
	for y := uint32(0); y < height; y++ {
		row := img.Pix[img.PixOffset(0, int(y)):]
		for x, p := range v.Row(y) {
			c := rgba(p)
			for i := range c {
				s := pixel.FromFloat32Channel[uint16](c[i])
				row[8*x+2*i] = uint8(s >> 8)
				row[8*x+2*i+1] = uint8(s)
			}
		}
	}
	return img, nil
}

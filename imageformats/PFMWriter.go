package imageformats

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/pixel"
)

// WritePFM writes v as a portable float map. Only GrayF32 and RGBF32 pixels
// are accepted. Rows are written bottom up, big endian, as the format expects.
func WritePFM[P pixel.Pixel[P]](v image.Viewer[P], output io.Writer) error {
	var zero P
	var pf string
	switch any(zero).(type) {
	case pixel.GrayF32:
		pf = "Pf"
	case pixel.RGBF32:
		pf = "PF"
	default:
		return fmt.Errorf("%w: %T is not a float gray or RGB pixel", ErrUnsupportedPixel, zero)
	}

	width, height := v.Dimensions()
	w := bufio.NewWriter(output)
	if _, err := fmt.Fprintf(w, "%s\n%d %d\n1.0\n", pf, width, height); err != nil {
		return err
	}

	channels := make([]float32, zero.NumChannels())
	sample := make([]byte, 4)
	for y := int64(height) - 1; y >= 0; y-- {
		for _, p := range v.Row(uint32(y)) {
			p.ToFloat32(channels)
			for _, c := range channels {
				binary.BigEndian.PutUint32(sample, math.Float32bits(c))
				if _, err := w.Write(sample); err != nil {
					return err
				}
			}
		}
	}
	return w.Flush()
}

// WriteRaw writes the channels of every pixel in row major order, with no
// header, using each pixel's own WriteData.
func WriteRaw[P pixel.Pixel[P]](v image.Viewer[P], output io.Writer) error {
	w := bufio.NewWriter(output)
	for y := uint32(0); y < v.Height(); y++ {
		for _, p := range v.Row(y) {
			if err := p.WriteData(w); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

package imageformats

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/pixel"
	"github.com/kpfaulkner/picture-go/util"
)

var ErrInvalidQOI = errors.New("imageformats: invalid qoi stream")

const (
	qoiMagic      = "qoif"
	qoiHeaderSize = 14
	qoiMaxPixels  = 400_000_000

	qoiOpIndex = 0x00
	qoiOpDiff  = 0x40
	qoiOpLuma  = 0x80
	qoiOpRun   = 0xc0
	qoiOpRGB   = 0xfe
	qoiOpRGBA  = 0xff
	qoiMask2   = 0xc0

	qoiColourspaceSRGB = 0
)

var qoiEnd = []byte{0, 0, 0, 0, 0, 0, 0, 1}

type qoiPixel struct {
	r, g, b, a uint8
}

func (p qoiPixel) hash() int {
	return (int(p.r)*3 + int(p.g)*5 + int(p.b)*7 + int(p.a)*11) % 64
}

// EncodeQOI writes v as a "Quite OK Image". Only 8 bit RGB and RGBA layouts
// (including BGR8 and BGRA8) are accepted.
func EncodeQOI[P pixel.Pixel[P]](v image.Viewer[P], output io.Writer) error {
	l, err := layoutOf[P]()
	if err != nil {
		return err
	}
	if l.bitDepth != 8 || (l.colourType != colourRGB && l.colourType != colourRGBA) {
		var zero P
		return fmt.Errorf("%w: qoi needs 8 bit RGB or RGBA, got %T", ErrUnsupportedPixel, zero)
	}

	width, height := v.Dimensions()
	w := bufio.NewWriter(output)

	header := make([]byte, qoiHeaderSize)
	copy(header, qoiMagic)
	binary.BigEndian.PutUint32(header[4:], width)
	binary.BigEndian.PutUint32(header[8:], height)
	header[12] = byte(len(l.order))
	header[13] = qoiColourspaceSRGB
	if _, err := w.Write(header); err != nil {
		return err
	}

	var index [64]qoiPixel
	prev := qoiPixel{a: 255}
	run := 0
	channels := make([]float32, len(l.order))
	remaining := v.Size()

	for y := uint32(0); y < height; y++ {
		for _, p := range v.Row(y) {
			p.ToFloat32(channels)
			px := qoiPixel{a: 255}
			px.r = pixel.FromFloat32Channel[uint8](channels[l.order[0]])
			px.g = pixel.FromFloat32Channel[uint8](channels[l.order[1]])
			px.b = pixel.FromFloat32Channel[uint8](channels[l.order[2]])
			if l.hasAlpha() {
				px.a = pixel.FromFloat32Channel[uint8](channels[l.order[3]])
			}
			remaining--

			if px == prev {
				run++
				if run == 62 || remaining == 0 {
					if err := w.WriteByte(qoiOpRun | byte(run-1)); err != nil {
						return err
					}
					run = 0
				}
				continue
			}

			if run > 0 {
				if err := w.WriteByte(qoiOpRun | byte(run-1)); err != nil {
					return err
				}
				run = 0
			}

			if err := writeQOIPixel(w, &index, prev, px); err != nil {
				return err
			}
			prev = px
		}
	}

	if _, err := w.Write(qoiEnd); err != nil {
		return err
	}
	return w.Flush()
}

func writeQOIPixel(w *bufio.Writer, index *[64]qoiPixel, prev qoiPixel, px qoiPixel) error {
	h := px.hash()
	if index[h] == px {
		return w.WriteByte(qoiOpIndex | byte(h))
	}
	index[h] = px

	if px.a != prev.a {
		_, err := w.Write([]byte{qoiOpRGBA, px.r, px.g, px.b, px.a})
		return err
	}

	// channel differences wrap around, as uint8 arithmetic does
	dr := int(int8(px.r - prev.r))
	dg := int(int8(px.g - prev.g))
	db := int(int8(px.b - prev.b))
	drg := dr - dg
	dbg := db - dg

	switch {
	case dr >= -2 && dr <= 1 && dg >= -2 && dg <= 1 && db >= -2 && db <= 1:
		return w.WriteByte(qoiOpDiff | byte(dr+2)<<4 | byte(dg+2)<<2 | byte(db+2))
	case dg >= -32 && dg <= 31 && drg >= -8 && drg <= 7 && dbg >= -8 && dbg <= 7:
		_, err := w.Write([]byte{qoiOpLuma | byte(dg+32), byte(drg+8)<<4 | byte(dbg+8)})
		return err
	}
	_, err := w.Write([]byte{qoiOpRGB, px.r, px.g, px.b})
	return err
}

// decodeQOI reads a QOI stream into an RGB8 or RGBA8 buffer, following the
// channel count in the header.
func decodeQOI(r io.Reader) (*Decoded, error) {
	br := bufio.NewReader(r)
	header := make([]byte, qoiHeaderSize)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrInvalidQOI, err)
	}
	if string(header[:4]) != qoiMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrInvalidQOI, header[:4])
	}
	width := binary.BigEndian.Uint32(header[4:])
	height := binary.BigEndian.Uint32(header[8:])
	channels := header[12]
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidQOI, channels)
	}
	size, ok := util.CheckedSize(width, height)
	if !ok || size > qoiMaxPixels {
		return nil, fmt.Errorf("%w: %dx%d is too large", ErrInvalidQOI, width, height)
	}
	if size == 0 {
		return nil, ErrEmptyImage
	}

	pixels := make([]qoiPixel, size)
	var index [64]qoiPixel
	px := qoiPixel{a: 255}
	run := 0
	buf := make([]byte, 4)

	for i := range pixels {
		if run > 0 {
			run--
			pixels[i] = px
			continue
		}

		op, err := br.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: pixel %d: %w", ErrInvalidQOI, i, err)
		}

		switch {
		case op == qoiOpRGB:
			if _, err := io.ReadFull(br, buf[:3]); err != nil {
				return nil, fmt.Errorf("%w: pixel %d: %w", ErrInvalidQOI, i, err)
			}
			px.r, px.g, px.b = buf[0], buf[1], buf[2]
		case op == qoiOpRGBA:
			if _, err := io.ReadFull(br, buf); err != nil {
				return nil, fmt.Errorf("%w: pixel %d: %w", ErrInvalidQOI, i, err)
			}
			px = qoiPixel{buf[0], buf[1], buf[2], buf[3]}
		case op&qoiMask2 == qoiOpIndex:
			px = index[op]
		case op&qoiMask2 == qoiOpDiff:
			px.r += (op>>4)&0x03 - 2
			px.g += (op>>2)&0x03 - 2
			px.b += op&0x03 - 2
		case op&qoiMask2 == qoiOpLuma:
			b2, err := br.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("%w: pixel %d: %w", ErrInvalidQOI, i, err)
			}
			dg := op&0x3f - 32
			px.r += dg - 8 + (b2>>4)&0x0f
			px.g += dg
			px.b += dg - 8 + b2&0x0f
		case op&qoiMask2 == qoiOpRun:
			run = int(op & 0x3f)
		}

		index[px.hash()] = px
		pixels[i] = px
	}

	if channels == 3 {
		data := make([]pixel.RGB8, size)
		for i, p := range pixels {
			data[i] = pixel.NewRGB(p.r, p.g, p.b)
		}
		return &Decoded{Format: "qoi", ColorType: ColorRGB8, RGB8: image.NewBufferFromContainer(data, width, height)}, nil
	}

	data := make([]pixel.RGBA8, size)
	for i, p := range pixels {
		data[i] = pixel.NewRGBA(p.r, p.g, p.b, p.a)
	}
	return &Decoded{Format: "qoi", ColorType: ColorRGBA8, RGBA8: image.NewBufferFromContainer(data, width, height)}, nil
}

package imageformats

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/pixel"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// EncodePNG writes v as a non interlaced PNG tagged as sRGB. The colour type
// and bit depth follow the pixel type; BGR layouts are reordered to RGB.
func EncodePNG[P pixel.Pixel[P]](v image.Viewer[P], output io.Writer) error {
	l, err := layoutOf[P]()
	if err != nil {
		return err
	}

	if _, err := output.Write(pngSignature); err != nil {
		return err
	}
	if err := writeIHDR(v, l, output); err != nil {
		return err
	}
	if err := writeSRGB(output); err != nil {
		return err
	}
	if err := writeIDAT(v, l, output); err != nil {
		return err
	}
	return writeChunk(output, "IEND", nil)
}

// writeChunk writes length, type, data and the CRC of type+data.
func writeChunk(output io.Writer, name string, data []byte) error {
	var buf bytes.Buffer
	buf.Grow(len(data) + 12)

	sizeBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(sizeBytes, uint32(len(data)))
	buf.Write(sizeBytes)
	buf.WriteString(name)
	buf.Write(data)

	checksum := crc32.ChecksumIEEE(buf.Bytes()[4:])
	checkSumBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(checkSumBytes, checksum)
	buf.Write(checkSumBytes)

	_, err := output.Write(buf.Bytes())
	return err
}

func writeSRGB(output io.Writer) error {
	// perceptual rendering intent
	return writeChunk(output, "sRGB", []byte{0x00})
}

func writeIHDR[P any](v image.Viewer[P], l layout, output io.Writer) error {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], v.Width())
	binary.BigEndian.PutUint32(ihdr[4:], v.Height())
	ihdr[8] = byte(l.bitDepth)
	ihdr[9] = l.colourType
	ihdr[10] = 0
	ihdr[11] = 0
	ihdr[12] = 0
	return writeChunk(output, "IHDR", ihdr)
}

func writeIDAT[P pixel.Pixel[P]](v image.Viewer[P], l layout, output io.Writer) error {
	var compressedBytes bytes.Buffer
	zw, err := zlib.NewWriterLevel(&compressedBytes, zlib.DefaultCompression)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(zw)
	var zero P
	channels := make([]float32, zero.NumChannels())
	sample := make([]byte, 2)
	for y := uint32(0); y < v.Height(); y++ {
		// filter type none
		if err := w.WriteByte(0); err != nil {
			return err
		}
		for _, p := range v.Row(y) {
			p.ToFloat32(channels)
			for _, c := range l.order {
				if l.bitDepth == 8 {
					if err := w.WriteByte(pixel.FromFloat32Channel[uint8](channels[c])); err != nil {
						return err
					}
					continue
				}
				binary.BigEndian.PutUint16(sample, pixel.FromFloat32Channel[uint16](channels[c]))
				if _, err := w.Write(sample); err != nil {
					return err
				}
			}
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	return writeChunk(output, "IDAT", compressedBytes.Bytes())
}

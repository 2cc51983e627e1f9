package imageformats

import (
	"bytes"
	"encoding/binary"
	"errors"
	stdimage "image"
	"math"
	"testing"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/pixel"
	"github.com/kpfaulkner/picture-go/testcommon"
	"github.com/kpfaulkner/picture-go/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbRamp(width uint32, height uint32) *image.Buffer[pixel.RGB8] {
	return image.NewBufferFromFunc(width, height, func(p util.Point) pixel.RGB8 {
		return pixel.NewRGB(uint8(p.X*40), uint8(p.Y*60), uint8(p.X+p.Y))
	})
}

func TestEncodePNGRoundTrip(t *testing.T) {
	t.Run("gray8", func(t *testing.T) {
		src := testcommon.GenerateGradient(7, 5)
		var out bytes.Buffer
		require.Nil(t, EncodePNG(src, &out))

		d, err := Decode(&out)
		require.Nil(t, err)
		assert.Equal(t, "png", d.Format)
		require.Equal(t, ColorGray8, d.ColorType)
		assert.Equal(t, src.Data(), d.Gray8.Data())
	})

	t.Run("rgb8", func(t *testing.T) {
		src := rgbRamp(4, 3)
		var out bytes.Buffer
		require.Nil(t, EncodePNG(src, &out))

		d, err := Decode(&out)
		require.Nil(t, err)
		require.Equal(t, ColorRGB8, d.ColorType)
		assert.Equal(t, src.Data(), d.RGB8.Data())
	})

	t.Run("rgba8", func(t *testing.T) {
		src := image.NewBufferFromFunc(3, 3, func(p util.Point) pixel.RGBA8 {
			return pixel.NewRGBA(uint8(p.X*80), 10, uint8(p.Y*80), uint8(50+p.X*p.Y*20))
		})
		var out bytes.Buffer
		require.Nil(t, EncodePNG(src, &out))

		d, err := Decode(&out)
		require.Nil(t, err)
		require.Equal(t, ColorRGBA8, d.ColorType)
		assert.Equal(t, src.Data(), d.RGBA8.Data())
	})

	t.Run("gray alpha8", func(t *testing.T) {
		src := image.NewBufferFromFunc(2, 2, func(p util.Point) pixel.GrayAlpha8 {
			return pixel.NewGrayAlpha(uint8(p.X*100+p.Y), uint8(255-p.Y*100))
		})
		var out bytes.Buffer
		require.Nil(t, EncodePNG(src, &out))

		d, err := Decode(&out)
		require.Nil(t, err)
		require.Equal(t, ColorGrayAlpha8, d.ColorType)
		assert.Equal(t, src.Data(), d.GrayAlpha8.Data())
	})

	t.Run("gray16", func(t *testing.T) {
		src := image.NewBufferFromFunc(3, 2, func(p util.Point) pixel.Gray16 {
			return pixel.NewGray(uint16(p.X*20000 + p.Y*7))
		})
		var out bytes.Buffer
		require.Nil(t, EncodePNG(src, &out))

		d, err := Decode(&out)
		require.Nil(t, err)
		require.Equal(t, ColorGray16, d.ColorType)
		assert.Equal(t, src.Data(), d.Gray16.Data())
	})

	t.Run("rgba16", func(t *testing.T) {
		src := image.NewBufferFromFunc(2, 2, func(p util.Point) pixel.RGBA16 {
			return pixel.NewRGBA(uint16(p.X*1000), uint16(p.Y*2000), 3, uint16(40000+p.X))
		})
		var out bytes.Buffer
		require.Nil(t, EncodePNG(src, &out))

		d, err := Decode(&out)
		require.Nil(t, err)
		require.Equal(t, ColorRGBA16, d.ColorType)
		assert.Equal(t, src.Data(), d.RGBA16.Data())
	})

	t.Run("bgr8 is written as rgb", func(t *testing.T) {
		src := image.NewBuffer[pixel.BGR8](2, 1)
		src.Fill(pixel.BGR8{B: 1, G: 2, R: 3})
		var out bytes.Buffer
		require.Nil(t, EncodePNG(src, &out))

		d, err := Decode(&out)
		require.Nil(t, err)
		require.Equal(t, ColorRGB8, d.ColorType)
		assert.Equal(t, []pixel.RGB8{{R: 3, G: 2, B: 1}, {R: 3, G: 2, B: 1}}, d.RGB8.Data())
	})
}

func TestEncodePNGOfView(t *testing.T) {
	src := testcommon.GenerateGradient(6, 6)
	v, err := src.View(util.NewRect(util.NewPoint(2, 1), 3, 2))
	require.Nil(t, err)

	var out bytes.Buffer
	require.Nil(t, EncodePNG(v, &out))

	d, err := Decode(&out)
	require.Nil(t, err)
	require.Equal(t, ColorGray8, d.ColorType)
	w, h := d.Dimensions()
	assert.Equal(t, uint32(3), w)
	assert.Equal(t, uint32(2), h)
	assert.Equal(t, image.ToBuffer(v).Data(), d.Gray8.Data())
}

func TestEncodePNGHeader(t *testing.T) {
	var out bytes.Buffer
	require.Nil(t, EncodePNG(testcommon.GenerateGradient(9, 4), &out))

	b := out.Bytes()
	assert.Equal(t, pngSignature, b[:8])
	assert.Equal(t, "IHDR", string(b[12:16]))
	assert.Equal(t, uint32(9), binary.BigEndian.Uint32(b[16:]))
	assert.Equal(t, uint32(4), binary.BigEndian.Uint32(b[20:]))
	assert.Equal(t, byte(8), b[24])
	assert.Equal(t, colourGray, b[25])
	assert.Equal(t, "IEND", string(b[len(b)-8:len(b)-4]))
}

func TestEncodeUnsupportedPixel(t *testing.T) {
	src := image.NewBuffer[pixel.RGBF32](2, 2)
	var out bytes.Buffer

	assert.True(t, errors.Is(EncodePNG(src, &out), ErrUnsupportedPixel))
	assert.True(t, errors.Is(EncodeBMP(src, &out), ErrUnsupportedPixel))
	assert.True(t, errors.Is(EncodeTIFF(src, &out), ErrUnsupportedPixel))
	assert.Equal(t, 0, out.Len())

	gray := image.NewBuffer[pixel.Gray8](1, 1)
	assert.True(t, errors.Is(WritePFM(gray, &out), ErrUnsupportedPixel))
}

func TestEncodePropagatesWriteErrors(t *testing.T) {
	src := rgbRamp(8, 8)
	for _, limit := range []int{0, 4, 20, 40} {
		fw := &testcommon.FakeWriter{Limit: limit}
		err := EncodePNG(src, fw)
		assert.True(t, errors.Is(err, testcommon.ErrFakeWrite), "limit %d", limit)
	}

	fw := &testcommon.FakeWriter{Limit: 10}
	assert.True(t, errors.Is(WriteRaw(src, fw), testcommon.ErrFakeWrite))
}

func TestBMPRoundTrip(t *testing.T) {
	src := rgbRamp(5, 3)
	var out bytes.Buffer
	require.Nil(t, EncodeBMP(src, &out))

	d, err := Decode(&out)
	require.Nil(t, err)
	assert.Equal(t, "bmp", d.Format)
	require.Equal(t, ColorRGB8, d.ColorType)
	assert.Equal(t, src.Data(), d.RGB8.Data())
}

func TestTIFFRoundTrip(t *testing.T) {
	t.Run("gray8", func(t *testing.T) {
		src := testcommon.GenerateGradient(10, 3)
		var out bytes.Buffer
		require.Nil(t, EncodeTIFF(src, &out))

		d, err := Decode(&out)
		require.Nil(t, err)
		assert.Equal(t, "tiff", d.Format)
		require.Equal(t, ColorGray8, d.ColorType)
		assert.Equal(t, src.Data(), d.Gray8.Data())
	})

	t.Run("gray16", func(t *testing.T) {
		src := image.NewBufferFromFunc(4, 2, func(p util.Point) pixel.Gray16 {
			return pixel.NewGray(uint16(p.X*5000 + p.Y*300))
		})
		var out bytes.Buffer
		require.Nil(t, EncodeTIFF(src, &out))

		d, err := Decode(&out)
		require.Nil(t, err)
		require.Equal(t, ColorGray16, d.ColorType)
		assert.Equal(t, src.Data(), d.Gray16.Data())
	})
}

func TestToImage(t *testing.T) {
	rgb, err := ToImage(rgbRamp(2, 2))
	require.Nil(t, err)
	opaque, ok := rgb.(*stdimage.RGBA)
	require.True(t, ok)
	assert.True(t, opaque.Opaque())
	assert.Equal(t, uint8(40), opaque.RGBAAt(1, 0).R)

	bgra := image.NewBuffer[pixel.BGRA8](1, 1)
	bgra.Fill(pixel.BGRA8{B: 1, G: 2, R: 3, A: 4})
	img, err := ToImage(bgra)
	require.Nil(t, err)
	nrgba, ok := img.(*stdimage.NRGBA)
	require.True(t, ok)
	assert.Equal(t, []uint8{3, 2, 1, 4}, nrgba.Pix)

	ga := image.NewBuffer[pixel.GrayAlpha16](1, 1)
	ga.Fill(pixel.NewGrayAlpha[uint16](0x1234, 0xffff))
	img, err = ToImage(ga)
	require.Nil(t, err)
	nrgba64, ok := img.(*stdimage.NRGBA64)
	require.True(t, ok)
	assert.Equal(t, []uint8{0x12, 0x34, 0x12, 0x34, 0x12, 0x34, 0xff, 0xff}, nrgba64.Pix)
}

func TestWritePFM(t *testing.T) {
	src := image.NewBufferFromContainer([]pixel.GrayF32{{V: 1}, {V: 2}, {V: -0.5}, {V: 4}}, 2, 2)
	var out bytes.Buffer
	require.Nil(t, WritePFM(src, &out))

	header := "Pf\n2 2\n1.0\n"
	b := out.Bytes()
	require.Equal(t, len(header)+4*4, len(b))
	assert.Equal(t, header, string(b[:len(header)]))

	var got []float32
	for i := len(header); i < len(b); i += 4 {
		got = append(got, math.Float32frombits(binary.BigEndian.Uint32(b[i:])))
	}
	// bottom row first
	assert.Equal(t, []float32{-0.5, 4, 1, 2}, got)

	out.Reset()
	rgb := image.NewBuffer[pixel.RGBF32](3, 1)
	require.Nil(t, WritePFM(rgb, &out))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("PF\n3 1\n1.0\n")))
	assert.Equal(t, len("PF\n3 1\n1.0\n")+3*3*4, out.Len())
}

func TestWriteRaw(t *testing.T) {
	src := image.NewBufferFromContainer([]pixel.Gray16{{V: 0x0102}, {V: 0x0304}}, 2, 1)
	var out bytes.Buffer
	require.Nil(t, WriteRaw(src, &out))
	assert.Equal(t, []byte{0x02, 0x01, 0x04, 0x03}, out.Bytes())
}

func TestFormatFromFilename(t *testing.T) {
	for _, tc := range []struct {
		name      string
		expected  Format
		expectErr bool
	}{
		{name: "out.png", expected: FormatPNG},
		{name: "OUT.PNG", expected: FormatPNG},
		{name: "a/b.bmp", expected: FormatBMP},
		{name: "scan.tif", expected: FormatTIFF},
		{name: "scan.tiff", expected: FormatTIFF},
		{name: "hdr.pfm", expected: FormatPFM},
		{name: "dump.raw", expected: FormatRaw},
		{name: "pic.qoi", expected: FormatQOI},
		{name: "photo.jpg", expectErr: true},
		{name: "noext", expectErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f, err := FormatFromFilename(tc.name)
			if tc.expectErr {
				assert.True(t, errors.Is(err, ErrUnknownFormat))
				return
			}
			require.Nil(t, err)
			assert.Equal(t, tc.expected, f)
		})
	}
}

func TestEncodeDispatch(t *testing.T) {
	src := testcommon.GenerateGradient(3, 3)

	var png, raw bytes.Buffer
	require.Nil(t, Encode(src, &png, FormatPNG))
	assert.True(t, bytes.HasPrefix(png.Bytes(), pngSignature))

	require.Nil(t, Encode(src, &raw, FormatRaw))
	assert.Equal(t, 9, raw.Len())

	assert.True(t, errors.Is(Encode(src, &raw, Format(42)), ErrUnknownFormat))
	assert.Equal(t, "Format(42)", Format(42).String())
}

func TestDecodeGeneratedPNG(t *testing.T) {
	data := testcommon.GeneratePNG(t, 4, 4)
	d, err := Decode(bytes.NewReader(data))
	require.Nil(t, err)
	require.Equal(t, ColorRGB8, d.ColorType)

	red := pixel.NewRGB[uint8](255, 0, 0)
	blue := pixel.NewRGB[uint8](0, 0, 255)
	assert.Equal(t, testcommon.GenerateChecker(4, 4, 2, red, blue).Data(), d.RGB8.Data())

	rgba := d.ToRGBA8()
	p, ok := rgba.Pixel(util.NewPoint(2, 0))
	require.True(t, ok)
	assert.Equal(t, pixel.NewRGBA[uint8](0, 0, 255, 255), p)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("definitely not an image")))
	assert.NotNil(t, err)
}

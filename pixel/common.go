package pixel

import "io"

// RGB is a red, green, blue pixel.
type RGB[C Channel] struct {
	R, G, B C
}

func NewRGB[C Channel](r C, g C, b C) RGB[C] {
	return RGB[C]{R: r, G: g, B: b}
}

func (p RGB[C]) Channels() [3]C {
	return [3]C{p.R, p.G, p.B}
}

func (p RGB[C]) NumChannels() int {
	return 3
}

func (p RGB[C]) ToFloat32(dst []float32) {
	dst[0] = float32(p.R)
	dst[1] = float32(p.G)
	dst[2] = float32(p.B)
}

func (p RGB[C]) FromFloat32(src []float32) RGB[C] {
	return RGB[C]{
		R: FromFloat32Channel[C](src[0]),
		G: FromFloat32Channel[C](src[1]),
		B: FromFloat32Channel[C](src[2]),
	}
}

func (p RGB[C]) WriteData(w io.Writer) error {
	c := p.Channels()
	return writeChannels(w, c[:])
}

// RGBA is a red, green, blue, alpha pixel. Alpha is not premultiplied.
type RGBA[C Channel] struct {
	R, G, B, A C
}

func NewRGBA[C Channel](r C, g C, b C, a C) RGBA[C] {
	return RGBA[C]{R: r, G: g, B: b, A: a}
}

func (p RGBA[C]) Channels() [4]C {
	return [4]C{p.R, p.G, p.B, p.A}
}

func (p RGBA[C]) NumChannels() int {
	return 4
}

func (p RGBA[C]) ToFloat32(dst []float32) {
	dst[0] = float32(p.R)
	dst[1] = float32(p.G)
	dst[2] = float32(p.B)
	dst[3] = float32(p.A)
}

func (p RGBA[C]) FromFloat32(src []float32) RGBA[C] {
	return RGBA[C]{
		R: FromFloat32Channel[C](src[0]),
		G: FromFloat32Channel[C](src[1]),
		B: FromFloat32Channel[C](src[2]),
		A: FromFloat32Channel[C](src[3]),
	}
}

func (p RGBA[C]) WriteData(w io.Writer) error {
	c := p.Channels()
	return writeChannels(w, c[:])
}

// BGR stores its channels blue first.
type BGR[C Channel] struct {
	B, G, R C
}

func (p BGR[C]) Channels() [3]C {
	return [3]C{p.B, p.G, p.R}
}

func (p BGR[C]) NumChannels() int {
	return 3
}

func (p BGR[C]) ToFloat32(dst []float32) {
	dst[0] = float32(p.B)
	dst[1] = float32(p.G)
	dst[2] = float32(p.R)
}

func (p BGR[C]) FromFloat32(src []float32) BGR[C] {
	return BGR[C]{
		B: FromFloat32Channel[C](src[0]),
		G: FromFloat32Channel[C](src[1]),
		R: FromFloat32Channel[C](src[2]),
	}
}

func (p BGR[C]) WriteData(w io.Writer) error {
	c := p.Channels()
	return writeChannels(w, c[:])
}

// BGRA stores its channels blue first, alpha last.
type BGRA[C Channel] struct {
	B, G, R, A C
}

func (p BGRA[C]) Channels() [4]C {
	return [4]C{p.B, p.G, p.R, p.A}
}

func (p BGRA[C]) NumChannels() int {
	return 4
}

func (p BGRA[C]) ToFloat32(dst []float32) {
	dst[0] = float32(p.B)
	dst[1] = float32(p.G)
	dst[2] = float32(p.R)
	dst[3] = float32(p.A)
}

func (p BGRA[C]) FromFloat32(src []float32) BGRA[C] {
	return BGRA[C]{
		B: FromFloat32Channel[C](src[0]),
		G: FromFloat32Channel[C](src[1]),
		R: FromFloat32Channel[C](src[2]),
		A: FromFloat32Channel[C](src[3]),
	}
}

func (p BGRA[C]) WriteData(w io.Writer) error {
	c := p.Channels()
	return writeChannels(w, c[:])
}

// Gray is a single luminance channel.
type Gray[C Channel] struct {
	V C
}

func NewGray[C Channel](v C) Gray[C] {
	return Gray[C]{V: v}
}

func (p Gray[C]) Channels() [1]C {
	return [1]C{p.V}
}

func (p Gray[C]) NumChannels() int {
	return 1
}

func (p Gray[C]) ToFloat32(dst []float32) {
	dst[0] = float32(p.V)
}

func (p Gray[C]) FromFloat32(src []float32) Gray[C] {
	return Gray[C]{V: FromFloat32Channel[C](src[0])}
}

func (p Gray[C]) WriteData(w io.Writer) error {
	return writeChannels(w, []C{p.V})
}

// GrayAlpha is luminance plus alpha.
type GrayAlpha[C Channel] struct {
	V, A C
}

func NewGrayAlpha[C Channel](v C, a C) GrayAlpha[C] {
	return GrayAlpha[C]{V: v, A: a}
}

func (p GrayAlpha[C]) Channels() [2]C {
	return [2]C{p.V, p.A}
}

func (p GrayAlpha[C]) NumChannels() int {
	return 2
}

func (p GrayAlpha[C]) ToFloat32(dst []float32) {
	dst[0] = float32(p.V)
	dst[1] = float32(p.A)
}

func (p GrayAlpha[C]) FromFloat32(src []float32) GrayAlpha[C] {
	return GrayAlpha[C]{
		V: FromFloat32Channel[C](src[0]),
		A: FromFloat32Channel[C](src[1]),
	}
}

func (p GrayAlpha[C]) WriteData(w io.Writer) error {
	return writeChannels(w, []C{p.V, p.A})
}

type (
	RGB8        = RGB[uint8]
	RGB16       = RGB[uint16]
	RGBF32      = RGB[float32]
	RGBA8       = RGBA[uint8]
	RGBA16      = RGBA[uint16]
	BGR8        = BGR[uint8]
	BGRA8       = BGRA[uint8]
	Gray8       = Gray[uint8]
	Gray16      = Gray[uint16]
	GrayF32     = Gray[float32]
	GrayAlpha8  = GrayAlpha[uint8]
	GrayAlpha16 = GrayAlpha[uint16]
)

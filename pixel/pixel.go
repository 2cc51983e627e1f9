// Package pixel defines the channel model shared by every pixel format.
//
// A pixel is a fixed size group of numeric channels with no padding. The
// Pixel contract lets generic code (resampling, encoders) move channel values
// in and out of float32 without knowing the concrete format.
package pixel

import (
	"encoding/binary"
	"io"
	"math"

	"golang.org/x/exp/constraints"
)

// Channel is any plain numeric type usable as a pixel channel.
type Channel interface {
	constraints.Integer | constraints.Float
}

// Pixel is implemented by pixel formats. P is the implementing type itself,
// which lets FromFloat32 build a new value without reflection.
type Pixel[P any] interface {
	// NumChannels is the fixed number of channels of the format.
	NumChannels() int

	// ToFloat32 writes the channels into dst, which must hold at least
	// NumChannels values.
	ToFloat32(dst []float32)

	// FromFloat32 builds a pixel from channel values, clamping each value to
	// the range of the channel type.
	FromFloat32(src []float32) P

	// WriteData writes the channels in order, little endian.
	WriteData(w io.Writer) error
}

// ToFloat32Channel converts a channel value to float32.
func ToFloat32Channel[C Channel](c C) float32 {
	return float32(c)
}

// FromFloat32Channel converts v back to the channel type. Values outside the
// channel range are clamped, never wrapped. Integer channels round to the
// nearest value, halves away from zero, rather than truncating: 0.75 becomes
// 1, not 0. NaN becomes zero.
func FromFloat32Channel[C Channel](v float32) C {
	if v != v {
		return 0
	}

	var zero C
	switch any(zero).(type) {
	case float32:
		return C(v)
	case float64:
		return C(float64(v))
	}

	lo, hi := channelLimits[C]()
	if v <= lo {
		return C(lo)
	}
	if v >= hi {
		return maxChannel[C]()
	}
	return C(math.Round(float64(v)))
}

// channelLimits returns the float32 range of an integer channel type.
func channelLimits[C Channel]() (float32, float32) {
	var zero C
	switch any(zero).(type) {
	case uint8:
		return 0, math.MaxUint8
	case uint16:
		return 0, math.MaxUint16
	case uint32:
		return 0, math.MaxUint32
	case uint64, uint, uintptr:
		return 0, math.MaxUint64
	case int8:
		return math.MinInt8, math.MaxInt8
	case int16:
		return math.MinInt16, math.MaxInt16
	case int32:
		return math.MinInt32, math.MaxInt32
	case int64, int:
		return math.MinInt64, math.MaxInt64
	}
	return -math.MaxFloat32, math.MaxFloat32
}

// maxChannel is the largest value of an integer channel type. Converting the
// float32 limit directly would overflow for 32 and 64 bit channels.
func maxChannel[C Channel]() C {
	var zero C
	var v any
	switch any(zero).(type) {
	case uint8:
		v = uint8(math.MaxUint8)
	case uint16:
		v = uint16(math.MaxUint16)
	case uint32:
		v = uint32(math.MaxUint32)
	case uint64:
		v = uint64(math.MaxUint64)
	case uint:
		v = uint(math.MaxUint)
	case uintptr:
		v = ^uintptr(0)
	case int8:
		v = int8(math.MaxInt8)
	case int16:
		v = int16(math.MaxInt16)
	case int32:
		v = int32(math.MaxInt32)
	case int64:
		v = int64(math.MaxInt64)
	case int:
		v = int(math.MaxInt)
	default:
		return zero
	}
	return v.(C)
}

func writeChannels[C Channel](w io.Writer, channels []C) error {
	return binary.Write(w, binary.LittleEndian, channels)
}

package processing

import (
	"math"
)

// Filter is a convolution kernel evaluated at a distance x, in source pixels,
// from the sample being computed.
type Filter func(x float32) float32

func BoxFilter(_ float32) float32 {
	return 1
}

func Triangle(x float32) float32 {
	ax := abs(x)
	if ax < 1 {
		return 1 - ax
	}
	return 0
}

// Cubic is the Mitchell-Netravali family of cubic kernels, parameterised by
// B and C.
func Cubic(x float32, b float32, c float32) float32 {
	ax := abs(x)
	ax2 := ax * ax
	ax3 := ax2 * ax

	var v float32
	switch {
	case ax < 1:
		v = (12-9*b-6*c)*ax3 + (-18+12*b+6*c)*ax2 + (6 - 2*b)
	case ax < 2:
		v = (-b-6*c)*ax3 + (6*b+30*c)*ax2 + (-12*b-48*c)*ax + (8*b + 24*c)
	default:
		return 0
	}
	return v / 6
}

func BSpline(x float32) float32 {
	return Cubic(x, 1, 0)
}

func Mitchell(x float32) float32 {
	return Cubic(x, 1.0/3.0, 1.0/3.0)
}

func CatmullRom(x float32) float32 {
	return Cubic(x, 0, 0.5)
}

// Gaussian is the normal distribution with standard deviation d.
func Gaussian(x float32, d float32) float32 {
	return float32(1 / (math.Sqrt(2*math.Pi) * float64(d)) * math.Exp(-float64(x*x)/(2*float64(d*d))))
}

// Sinc is sin(x)/x, with Sinc(0) = 1.
func Sinc(x float32) float32 {
	if x == 0 {
		return 1
	}
	return float32(math.Sin(float64(x))) / x
}

// NormalizedSinc is Sinc(πx).
func NormalizedSinc(x float32) float32 {
	return Sinc(math.Pi * x)
}

// Lanczos is the Lanczos kernel with a lobes. It is zero outside (-a, a).
func Lanczos(x float32, a float32) float32 {
	if abs(x) < a {
		return NormalizedSinc(x) * NormalizedSinc(x/a)
	}
	return 0
}

func Lanczos2(x float32) float32 {
	return Lanczos(x, 2)
}

func Lanczos3(x float32) float32 {
	return Lanczos(x, 3)
}

func abs(x float32) float32 {
	return math.Float32frombits(math.Float32bits(x) &^ (1 << 31))
}

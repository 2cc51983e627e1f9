package util

import (
	"cmp"
	"math"

	"golang.org/x/exp/constraints"
)

func Max[T cmp.Ordered](args ...T) T {
	if len(args) == 0 {
		return *new(T)
	}

	if isNan(args[0]) {
		return args[0]
	}

	max := args[0]
	for _, arg := range args[1:] {

		if isNan(arg) {
			return arg
		}

		if arg > max {
			max = arg
		}
	}
	return max
}

func Min[T cmp.Ordered](args ...T) T {
	if len(args) == 0 {
		return *new(T)
	}

	if isNan(args[0]) {
		return args[0]
	}

	min := args[0]
	for _, arg := range args[1:] {

		if isNan(arg) {
			return arg
		}

		if arg < min {
			min = arg
		}
	}
	return min
}

// Clamp limits v to [lo, hi]. NaN is passed through untouched.
func Clamp[T cmp.Ordered](v T, lo T, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func CeilDiv[T constraints.Unsigned](numerator T, denominator T) T {
	return (numerator + denominator - 1) / denominator
}

// CheckedSize returns width*height as an int, false if it overflows.
func CheckedSize(width uint32, height uint32) (int, bool) {
	size := uint64(width) * uint64(height)
	if size > math.MaxInt {
		return 0, false
	}
	return int(size), true
}

// IndexPoint is the row major index of p in a buffer with the given row stride.
func IndexPoint(p Point, stride uint32) int {
	return int(p.Y)*int(stride) + int(p.X)
}

func isNan[T comparable](arg T) bool {
	return arg != arg
}

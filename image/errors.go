package image

import "errors"

// Common errors for view construction and copying.
var (
	// ErrOutOfBounds is returned when requested bounds don't fit inside the parent.
	ErrOutOfBounds = errors.New("image: bounds do not fit in view")

	// ErrOverlap is returned when mutable views requested together would overlap.
	ErrOverlap = errors.New("image: mutable views overlap")

	// ErrDimensionMismatch is returned when two views must have equal dimensions but don't.
	ErrDimensionMismatch = errors.New("image: view dimensions do not match")

	// ErrBorrowed is returned (or panicked with, for writes) when a window is
	// used while mutable views lent from it are still live, or after it has
	// been released.
	ErrBorrowed = errors.New("image: window is borrowed")
)

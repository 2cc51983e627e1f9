//go:build !picture_release

package image

// debugAssertions enables the bounds checks inside unchecked accessors.
// Build with the picture_release tag to trust callers instead.
const debugAssertions = true

//go:build picture_release

package image

const debugAssertions = false

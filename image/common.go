package image

import "github.com/kpfaulkner/picture-go/pixel"

type (
	RGB8Image       = Buffer[pixel.RGB8]
	RGBA8Image      = Buffer[pixel.RGBA8]
	RGB16Image      = Buffer[pixel.RGB16]
	RGBA16Image     = Buffer[pixel.RGBA16]
	RGBF32Image     = Buffer[pixel.RGBF32]
	Gray8Image      = Buffer[pixel.Gray8]
	Gray16Image     = Buffer[pixel.Gray16]
	GrayF32Image    = Buffer[pixel.GrayF32]
	GrayAlpha8Image = Buffer[pixel.GrayAlpha8]
)

package main

import (
	"fmt"
	"reflect"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/pixel"
	"github.com/kpfaulkner/picture-go/util"
)

// displays sizes of the pixel and window structs to spot padding wastage
func memStats(input any) {

	rType := reflect.TypeOf(input)
	fmt.Printf("Size of %s : %d bytes\n", rType.String(), rType.Size())

	if rType.Kind() == reflect.Struct {
		for i := 0; i < rType.NumField(); i++ {
			field := rType.Field(i)
			fmt.Printf("  Name %s\n", field.Name)
			fmt.Printf("    Offset of    : %d bytes\n", field.Offset)
			fmt.Printf("    Size of      : %d bytes\n", field.Type.Size())
			fmt.Printf("    Alignment of : %d bytes\n", field.Type.Align())
			fmt.Println()
		}
	}
}

func main() {
	memStats(util.Rect{})
	memStats(pixel.RGB8{})
	memStats(pixel.RGBA16{})
	memStats(pixel.GrayAlpha8{})
	memStats(image.Buffer[pixel.RGB8]{})
	memStats(image.View[pixel.RGB8]{})
	memStats(image.ViewMut[pixel.RGB8]{})
}

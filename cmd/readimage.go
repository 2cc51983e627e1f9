package main

import (
	"fmt"
	"os"

	picture "github.com/kpfaulkner/picture-go"
	"github.com/kpfaulkner/picture-go/util"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("usage: readimage <file>\n")
		os.Exit(1)
	}

	d, err := picture.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error decoding: %v\n", err)
		os.Exit(1)
	}

	w, h := d.Dimensions()
	fmt.Printf("format %s\n", d.Format)
	fmt.Printf("colour type %s\n", d.ColorType)
	fmt.Printf("dimensions %dx%d\n", w, h)

	// average colour and the extremes of the luma
	rgba := d.ToRGBA8()
	var sum [4]uint64
	minLuma, maxLuma := uint8(255), uint8(0)
	for px := range rgba.Pixels() {
		sum[0] += uint64(px.R)
		sum[1] += uint64(px.G)
		sum[2] += uint64(px.B)
		sum[3] += uint64(px.A)
		luma := uint8((uint32(px.R)*299 + uint32(px.G)*587 + uint32(px.B)*114) / 1000)
		minLuma = util.Min(minLuma, luma)
		maxLuma = util.Max(maxLuma, luma)
	}
	n := uint64(rgba.Size())
	fmt.Printf("average RGBA %d %d %d %d\n", sum[0]/n, sum[1]/n, sum[2]/n, sum[3]/n)
	fmt.Printf("luma range %d..%d\n", minLuma, maxLuma)
}

// Package drawing rasterises simple shapes onto mutable views. Every shape
// takes a function that picks the pixel value for each coordinate it touches,
// so solid colours, gradients and patterns all use the same entry points.
package drawing

import (
	"fmt"

	"github.com/kpfaulkner/picture-go/image"
	"github.com/kpfaulkner/picture-go/util"
)

// Solid returns a colour function that always yields p.
func Solid[P any](p P) func(util.Point) P {
	return func(util.Point) P {
		return p
	}
}

// DrawLine draws a line from start to end, both inclusive, using Bresenham's
// algorithm. It panics if either endpoint is outside v.
func DrawLine[P any](v image.MutViewer[P], start util.Point, end util.Point, f func(util.Point) P) {
	bounds := v.Bounds()
	if !bounds.Contains(start) || !bounds.Contains(end) {
		panic(fmt.Sprintf("drawing: line %v -> %v outside %dx%d view", start, end, v.Width(), v.Height()))
	}

	x0, y0 := int64(start.X), int64(start.Y)
	x1, y1 := int64(end.X), int64(end.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := util.IfThenElse[int64](x0 < x1, 1, -1)
	sy := util.IfThenElse[int64](y0 < y1, 1, -1)
	e := dx + dy

	for {
		put(v, x0, y0, f)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawCircle draws a filled circle. Parts of the circle outside v are
// skipped, so center may be anywhere.
func DrawCircle[P any](v image.MutViewer[P], center util.Point, radius uint32, f func(util.Point) P) {
	cx, cy := int64(center.X), int64(center.Y)
	midpointCircle(radius, func(x int64, y int64) {
		span(v, cy+y, cx-x, cx+x, f)
		span(v, cy-y, cx-x, cx+x, f)
	})
}

// DrawCircumference draws the outline of a circle, skipping points outside v.
func DrawCircumference[P any](v image.MutViewer[P], center util.Point, radius uint32, f func(util.Point) P) {
	cx, cy := int64(center.X), int64(center.Y)
	midpointCircle(radius, func(x int64, y int64) {
		put(v, cx+x, cy+y, f)
		put(v, cx-x, cy+y, f)
		put(v, cx+x, cy-y, f)
		put(v, cx-x, cy-y, f)
	})
}

// midpointCircle walks one octant of a circle of the given radius and calls
// plot with each point and its mirror across the diagonal. For every x the
// point plotted is the highest y with x^2 + y^2 <= (radius + 1/2)^2.
func midpointCircle(radius uint32, plot func(x int64, y int64)) {
	relX, relY := int64(0), int64(radius)
	// (radius + 1/2)^2 without the 1/4
	radiusSquared := int64(radius)*int64(radius) + int64(radius)

	for relX <= relY {
		if relX*relX+relY*relY > radiusSquared {
			relY--
			continue
		}
		plot(relX, relY)
		plot(relY, relX)
		relX++
	}
}

// span fills row y from x0 to x1 inclusive, clipped to v.
func span[P any](v image.MutViewer[P], y int64, x0 int64, x1 int64, f func(util.Point) P) {
	if y < 0 || y >= int64(v.Height()) {
		return
	}
	x0 = util.Max(x0, 0)
	x1 = util.Min(x1, int64(v.Width())-1)
	if x0 > x1 {
		return
	}
	row := v.RowMut(uint32(y))
	for x := x0; x <= x1; x++ {
		row[x] = f(util.Point{X: uint32(x), Y: uint32(y)})
	}
}

func put[P any](v image.MutViewer[P], x int64, y int64, f func(util.Point) P) {
	if x < 0 || y < 0 || x >= int64(v.Width()) || y >= int64(v.Height()) {
		return
	}
	p := util.Point{X: uint32(x), Y: uint32(y)}
	*v.PixelMut(p) = f(p)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

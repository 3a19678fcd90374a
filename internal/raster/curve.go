package raster

import (
	"image"
	"math"

	"github.com/example/pixelart/internal/picture"
)

// Radius is the circle radius for a drag from center to pos: the floor of
// the Euclidean distance.
func Radius(center, pos image.Point) int {
	dx, dy := pos.X-center.X, pos.Y-center.Y
	r := int(math.Sqrt(float64(dx*dx + dy*dy)))
	// guard against sqrt landing just below an exact square
	for (r+1)*(r+1) <= dx*dx+dy*dy {
		r++
	}
	return r
}

// Circle traces the outline centred on center passing through the cell at
// floor distance |pos-center|. Each step emits the eight octant mirrors, so
// a zero radius yields the centre eight times.
func Circle(center, pos image.Point, c picture.Color) []picture.CellEdit {
	r := Radius(center, pos)
	var out []picture.CellEdit
	plot := func(x, y int) {
		for _, p := range [8][2]int{{x, y}, {x, -y}, {-x, y}, {-x, -y}, {y, x}, {-y, x}, {y, -x}, {-y, -x}} {
			out = append(out, picture.CellEdit{X: center.X + p[0], Y: center.Y + p[1], Color: c})
		}
	}

	x, y := 0, r
	d := 3 - 2*r
	for y >= x {
		plot(x, y)
		if d < 0 {
			d += 4*x + 6
		} else {
			d += 4*(x-y) + 10
			y--
		}
		x++
	}
	return out
}

// Ellipse traces the axis-aligned outline centred on center with semi-axes
// |pos.X-center.X| and |pos.Y-center.Y|. Region one runs while the slope is
// steeper than -1, region two walks y down to zero. Each step emits the
// four quadrant mirrors.
func Ellipse(center, pos image.Point, c picture.Color) []picture.CellEdit {
	a, b := abs(pos.X-center.X), abs(pos.Y-center.Y)
	a2, b2 := a*a, b*b
	var out []picture.CellEdit
	plot := func(x, y int) {
		for _, p := range [4][2]int{{x, y}, {x, -y}, {-x, y}, {-x, -y}} {
			out = append(out, picture.CellEdit{X: center.X + p[0], Y: center.Y + p[1], Color: c})
		}
	}

	x, y := 0, b
	// decision at (x+1, y-1/2), scaled by 4
	d := 4*b2*(x+1)*(x+1) + a2*(2*y-1)*(2*y-1) - 4*a2*b2
	for a2*(2*y-1) > 2*b2*(x+1) {
		plot(x, y)
		x++
		if d < 0 {
			d += 4 * b2 * (2*x + 3)
		} else {
			d -= 8*a2*(y-1) - 4*b2*(2*x+3)
			y--
		}
	}

	// decision at (x+1/2, y-1), scaled by 4
	d = b2*(2*x+1)*(2*x+1) + 4*a2*(y+1)*(y+1) - 4*a2*b2
	for y+1 != 0 {
		plot(x, y)
		y--
		if d < 0 {
			d += 4 * a2 * (2*y + 3)
		} else {
			d -= 8*b2*(x+1) - 4*a2*(2*y+3)
			x++
		}
	}
	return out
}

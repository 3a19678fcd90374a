// Package raster turns gestures on a cell grid into ordered cell edits.
// Every function is pure; none of them reads or writes a picture except
// Fill, which only reads.
package raster

import (
	"image"

	"github.com/example/pixelart/internal/picture"
)

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Point is the single-cell edit of the freehand tool.
func Point(p image.Point, c picture.Color) []picture.CellEdit {
	return []picture.CellEdit{{X: p.X, Y: p.Y, Color: c}}
}

// Line rasterises the segment from -> to. The major axis is x only when
// |dx| > |dy|; the anchor is always the first cell and the result holds
// major+1 cells.
func Line(from, to image.Point, c picture.Color) []picture.CellEdit {
	x, y := from.X, from.Y
	dx, dy := to.X-x, to.Y-y
	stepX, stepY := sign(dx), sign(dy)
	dx, dy = abs(dx), abs(dy)

	pdX, pdY := stepX, 0
	minor, major := dy, dx
	if dx <= dy {
		pdX, pdY = 0, stepY
		minor, major = dx, dy
	}

	e := major / 2
	out := make([]picture.CellEdit, 0, major+1)
	out = append(out, picture.CellEdit{X: x, Y: y, Color: c})
	for i := 0; i < major; i++ {
		e -= minor
		if e < 0 {
			e += major
			x += stepX
			y += stepY
		} else {
			x += pdX
			y += pdY
		}
		out = append(out, picture.CellEdit{X: x, Y: y, Color: c})
	}
	return out
}

// Rectangle covers the inclusive box spanned by a and b, row by row.
func Rectangle(a, b image.Point, c picture.Color) []picture.CellEdit {
	r := image.Rectangle{Min: a, Max: b}.Canon()
	out := make([]picture.CellEdit, 0, (r.Dx()+1)*(r.Dy()+1))
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			out = append(out, picture.CellEdit{X: x, Y: y, Color: c})
		}
	}
	return out
}

// Package render rasterises pictures into images at a whole-number scale.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/pixelart/internal/picture"
)

// MinGridScale is the smallest scale at which DrawGrid draws lines.
const MinGridScale = 6

// Size returns the image size of p at scale.
func Size(p *picture.Picture, scale int) image.Point {
	if scale < 1 {
		scale = 1
	}
	return image.Pt(p.Width()*scale, p.Height()*scale)
}

// Picture renders p with every cell a scale x scale square.
func Picture(p *picture.Picture, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	dst := image.NewRGBA(image.Rectangle{Max: Size(p, scale)})
	Into(dst, image.Point{}, p, scale)
	return dst
}

// Into draws p onto dst with its top-left cell at origin.
func Into(dst draw.Image, origin image.Point, p *picture.Picture, scale int) {
	if scale < 1 {
		scale = 1
	}
	r := image.Rectangle{Min: origin, Max: origin.Add(Size(p, scale))}
	xdraw.NearestNeighbor.Scale(dst, r, p.Image(), p.Bounds(), draw.Src, nil)
}

// Cell returns the destination rectangle of cell (x, y).
func Cell(origin image.Point, x, y, scale int) image.Rectangle {
	at := origin.Add(image.Pt(x*scale, y*scale))
	return image.Rectangle{Min: at, Max: at.Add(image.Pt(scale, scale))}
}

// Delta repaints onto dst only the cells that differ between prev and next
// and returns the rectangles it touched. When prev is nil or the sizes
// differ the whole picture is repainted.
func Delta(dst draw.Image, origin image.Point, prev, next *picture.Picture, scale int) []image.Rectangle {
	if scale < 1 {
		scale = 1
	}
	if prev == nil || prev.Width() != next.Width() || prev.Height() != next.Height() {
		Into(dst, origin, next, scale)
		return []image.Rectangle{{Min: origin, Max: origin.Add(Size(next, scale))}}
	}
	changed := prev.Diff(next)
	dirty := make([]image.Rectangle, 0, len(changed))
	for _, pt := range changed {
		r := Cell(origin, pt.X, pt.Y, scale)
		draw.Draw(dst, r, image.NewUniform(next.At(pt.X, pt.Y).RGBA()), image.Point{}, draw.Src)
		dirty = append(dirty, r)
	}
	return dirty
}

// DrawGrid outlines every cell of a width x height grid in col. It does
// nothing below MinGridScale.
func DrawGrid(dst draw.Image, origin image.Point, width, height, scale int, col color.Color) {
	if scale < MinGridScale {
		return
	}
	src := image.NewUniform(col)
	bottom := origin.Y + height*scale
	right := origin.X + width*scale
	for x := 0; x <= width; x++ {
		px := origin.X + x*scale
		draw.Draw(dst, image.Rect(px, origin.Y, px+1, bottom), src, image.Point{}, draw.Over)
	}
	for y := 0; y <= height; y++ {
		py := origin.Y + y*scale
		draw.Draw(dst, image.Rect(origin.X, py, right, py+1), src, image.Point{}, draw.Over)
	}
}

// CellAt maps a destination pixel back to the cell under it.
func CellAt(origin, pt image.Point, scale int) image.Point {
	if scale < 1 {
		scale = 1
	}
	d := pt.Sub(origin)
	return image.Pt(floorDiv(d.X, scale), floorDiv(d.Y, scale))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

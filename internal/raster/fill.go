package raster

import (
	"fmt"
	"image"

	"github.com/example/pixelart/internal/picture"
)

// Painter chooses the colour written to a filled cell.
type Painter interface {
	ColorAt(x, y int) picture.Color
}

// Solid paints every cell the same colour.
type Solid picture.Color

func (s Solid) ColorAt(int, int) picture.Color { return picture.Color(s) }

// Pattern tiles a square pattern over the grid using absolute cell
// coordinates: cell (x, y) takes pattern[y%n][x%n].
type Pattern [][]picture.Color

func (p Pattern) ColorAt(x, y int) picture.Color {
	n := len(p)
	row := p[y%n]
	return row[x%len(row)]
}

func (p Pattern) validate() error {
	if len(p) == 0 {
		return fmt.Errorf("empty pattern")
	}
	for i, row := range p {
		if len(row) == 0 {
			return fmt.Errorf("pattern row %d is empty", i)
		}
	}
	return nil
}

// CheckerPattern is the 3x3 dither used by pattern fill: target colour in
// the corners and centre, ink on the edges.
func CheckerPattern(target, ink picture.Color) Pattern {
	return Pattern{
		{target, ink, target},
		{ink, target, ink},
		{target, ink, target},
	}
}

// neighbours is the expansion order of the flood.
var neighbours = [4]image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Fill floods the 4-connected region of start's colour. The returned edits
// are in breadth-first discovery order with the start cell first; the
// picture is not modified.
func Fill(p *picture.Picture, start image.Point, paint Painter) ([]picture.CellEdit, error) {
	target, err := p.Pixel(start.X, start.Y)
	if err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	if pat, ok := paint.(Pattern); ok {
		if err := pat.validate(); err != nil {
			return nil, fmt.Errorf("fill: %w", err)
		}
	}
	w := p.Width()
	visited := make([]bool, w*p.Height())
	visited[start.X+start.Y*w] = true
	out := []picture.CellEdit{{X: start.X, Y: start.Y, Color: paint.ColorAt(start.X, start.Y)}}
	for i := 0; i < len(out); i++ {
		for _, d := range neighbours {
			x, y := out[i].X+d.X, out[i].Y+d.Y
			if !p.In(x, y) || visited[x+y*w] || p.At(x, y) != target {
				continue
			}
			visited[x+y*w] = true
			out = append(out, picture.CellEdit{X: x, Y: y, Color: paint.ColorAt(x, y)})
		}
	}
	return out, nil
}

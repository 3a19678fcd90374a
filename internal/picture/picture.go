package picture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrOutOfRange is returned when a coordinate lies outside the grid.
var ErrOutOfRange = errors.New("pixel out of range")

// CellEdit is a single proposed write to the grid.
type CellEdit struct {
	X, Y  int
	Color Color
}

// Picture is an immutable grid of colours stored row-major.
// Every mutation returns a new Picture; the receiver is never modified.
type Picture struct {
	width  int
	height int
	pixels []Color
}

// Empty returns a width x height picture with every cell set to c.
func Empty(width, height int, c Color) (*Picture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid picture size %dx%d", width, height)
	}
	pixels := make([]Color, width*height)
	for i := range pixels {
		pixels[i] = c
	}
	return &Picture{width: width, height: height, pixels: pixels}, nil
}

// New wraps pixels, which must hold exactly width*height colours in
// row-major order. The slice is copied.
func New(width, height int, pixels []Color) (*Picture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid picture size %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("picture %dx%d needs %d pixels, got %d", width, height, width*height, len(pixels))
	}
	cp := make([]Color, len(pixels))
	copy(cp, pixels)
	return &Picture{width: width, height: height, pixels: cp}, nil
}

func (p *Picture) Width() int  { return p.width }
func (p *Picture) Height() int { return p.height }

// Bounds returns the grid rectangle with its origin at (0, 0).
func (p *Picture) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// In reports whether (x, y) addresses a cell.
func (p *Picture) In(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

// Pixel returns the colour at column x, row y.
func (p *Picture) Pixel(x, y int) (Color, error) {
	if !p.In(x, y) {
		return "", fmt.Errorf("pixel (%d,%d) in %dx%d picture: %w", x, y, p.width, p.height, ErrOutOfRange)
	}
	return p.pixels[x+y*p.width], nil
}

// At is Pixel without the error: out-of-range reads return the empty Color.
func (p *Picture) At(x, y int) Color {
	if !p.In(x, y) {
		return ""
	}
	return p.pixels[x+y*p.width]
}

// Draw copies the grid, applies edits in order and returns the copy.
// Edits outside the grid are dropped.
func (p *Picture) Draw(edits ...CellEdit) *Picture {
	cp := make([]Color, len(p.pixels))
	copy(cp, p.pixels)
	for _, e := range edits {
		if !p.In(e.X, e.Y) {
			continue
		}
		cp[e.X+e.Y*p.width] = e.Color
	}
	return &Picture{width: p.width, height: p.height, pixels: cp}
}

// Equal reports whether both pictures have the same size and cells.
func (p *Picture) Equal(o *Picture) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil || p.width != o.width || p.height != o.height {
		return false
	}
	for i := range p.pixels {
		if p.pixels[i] != o.pixels[i] {
			return false
		}
	}
	return true
}

// Diff lists the cells whose colour differs between p and o, row-major.
// It returns nil when the sizes differ; callers then repaint everything.
func (p *Picture) Diff(o *Picture) []image.Point {
	if o == nil || p.width != o.width || p.height != o.height {
		return nil
	}
	var out []image.Point
	for i := range p.pixels {
		if p.pixels[i] != o.pixels[i] {
			out = append(out, image.Pt(i%p.width, i/p.width))
		}
	}
	return out
}

// Image renders the picture one image pixel per cell.
func (p *Picture) Image() *image.RGBA {
	img := image.NewRGBA(p.Bounds())
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			img.SetRGBA(x, y, p.pixels[x+y*p.width].RGBA())
		}
	}
	return img
}

// DefaultMaxImport bounds pictures built from external images.
var DefaultMaxImport = image.Pt(100, 100)

// FromImage samples the RGB channels of img into a picture, cropping it to
// at most limit cells per axis. Alpha is ignored.
func FromImage(img image.Image, limit image.Point) (*Picture, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}
	b := img.Bounds()
	width := b.Dx()
	height := b.Dy()
	if limit.X > 0 && width > limit.X {
		width = limit.X
	}
	if limit.Y > 0 && height > limit.Y {
		height = limit.Y
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image %v is empty", b)
	}
	pixels := make([]Color, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			pixels = append(pixels, FromRGBA(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}))
		}
	}
	return &Picture{width: width, height: height, pixels: pixels}, nil
}

// Package palette loads named colour lists for the swatch bar.
package palette

import (
	"embed"
	"fmt"

	"github.com/example/pixelart/internal/picture"
)

//go:embed defaults/*.palette
var embedded embed.FS

// DefaultName is the palette used when none is configured.
const DefaultName = "default"

// Swatch is one labelled palette entry.
type Swatch struct {
	Name  string
	Color picture.Color
}

// Palette is an ordered list of swatches.
type Palette struct {
	Name     string
	Swatches []Swatch
}

// Default returns the built-in default palette.
func Default() *Palette {
	f, err := embedded.Open("defaults/" + DefaultName + ext)
	if err != nil {
		panic(fmt.Sprintf("embedded palette: %v", err))
	}
	defer f.Close()
	p, err := Parse(DefaultName, f)
	if err != nil {
		panic(fmt.Sprintf("embedded palette: %v", err))
	}
	return p
}

// Colors returns the swatch colours in order.
func (p *Palette) Colors() []picture.Color {
	out := make([]picture.Color, len(p.Swatches))
	for i, s := range p.Swatches {
		out[i] = s.Color
	}
	return out
}

// Index returns the position of c, or -1.
func (p *Palette) Index(c picture.Color) int {
	for i, s := range p.Swatches {
		if s.Color == c {
			return i
		}
	}
	return -1
}

// At returns swatch i, wrapping in both directions so callers can cycle.
func (p *Palette) At(i int) Swatch {
	n := len(p.Swatches)
	if n == 0 {
		return Swatch{}
	}
	return p.Swatches[((i%n)+n)%n]
}

// Label names c after its swatch, or returns the hex form.
func (p *Palette) Label(c picture.Color) string {
	if i := p.Index(c); i >= 0 {
		return p.Swatches[i].Name
	}
	return c.String()
}

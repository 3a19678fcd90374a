// Package tools maps tool names to the gestures that drive them and tracks
// pointer drags.
package tools

import (
	"fmt"
	"image"

	"github.com/example/pixelart/internal/editor"
	"github.com/example/pixelart/internal/picture"
	"github.com/example/pixelart/internal/raster"
)

// Tool names understood by DefaultRegistry.
const (
	Draw        = "draw"
	Line        = "line"
	Rectangle   = "rectangle"
	Circle      = "circle"
	Ellipse     = "ellipse"
	Fill        = "fill"
	PatternFill = "pattern-fill"
	Pick        = "pick"
)

// Gesture is one tool invocation. Anchor is where the pointer went down and
// Pos where it is now; they are equal on the first call. Base is the state
// at pointer-down and Current the latest state.
type Gesture struct {
	Anchor  image.Point
	Pos     image.Point
	Base    editor.State
	Current editor.State
}

// Tool turns a gesture into the action to dispatch. A nil action means the
// gesture changes nothing.
type Tool interface {
	Apply(Gesture) (editor.Action, error)
	// Drags reports whether the tool keeps following the pointer after
	// pointer-down.
	Drags() bool
}

// Freehand paints the cell under the pointer onto the latest picture, so a
// drag leaves a trail. A pointer off the grid or over a cell that already
// has the ink changes nothing and yields no action.
type Freehand struct{}

func (Freehand) Drags() bool { return true }

func (Freehand) Apply(g Gesture) (editor.Action, error) {
	p := g.Current.Picture
	if c, err := p.Pixel(g.Pos.X, g.Pos.Y); err != nil || c == g.Current.Color {
		return nil, nil
	}
	return editor.SetPicture{Picture: p.Draw(raster.Point(g.Pos, g.Current.Color)...)}, nil
}

// Shape redraws a figure from the anchor to the pointer over the picture
// captured at pointer-down, so only the latest figure of a drag remains.
type Shape func(anchor, pos image.Point, c picture.Color) []picture.CellEdit

func (Shape) Drags() bool { return true }

func (s Shape) Apply(g Gesture) (editor.Action, error) {
	p := g.Base.Picture
	return editor.SetPicture{Picture: p.Draw(s(g.Anchor, g.Pos, g.Base.Color)...)}, nil
}

// FloodFill fills the region under the pointer. With Patterned set the
// region is dithered with raster.CheckerPattern of the region colour and
// the ink.
type FloodFill struct {
	Patterned bool
}

func (FloodFill) Drags() bool { return false }

func (f FloodFill) Apply(g Gesture) (editor.Action, error) {
	p := g.Current.Picture
	var paint raster.Painter = raster.Solid(g.Current.Color)
	if f.Patterned {
		target, err := p.Pixel(g.Pos.X, g.Pos.Y)
		if err != nil {
			return nil, fmt.Errorf("pattern fill: %w", err)
		}
		paint = raster.CheckerPattern(target, g.Current.Color)
	}
	edits, err := raster.Fill(p, g.Pos, paint)
	if err != nil {
		return nil, err
	}
	return editor.SetPicture{Picture: p.Draw(edits...)}, nil
}

// Picker takes the colour under the pointer as the new ink.
type Picker struct{}

func (Picker) Drags() bool { return false }

func (Picker) Apply(g Gesture) (editor.Action, error) {
	c, err := g.Current.Picture.Pixel(g.Pos.X, g.Pos.Y)
	if err != nil {
		return nil, fmt.Errorf("pick: %w", err)
	}
	return editor.SetColor{Color: c}, nil
}

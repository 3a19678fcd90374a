package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/pixelart/internal/picture"
)

// ProgramTitle is shown in the title bar and the top of the toolbar.
const ProgramTitle = "PixelArt"

const (
	topHeight    = 24
	bottomHeight = 24
	buttonHeight = 24
	swatchSize   = 16
	swatchPitch  = 18
	canvasMargin = 8
)

const frameDropThreshold = 10

var (
	panelColor   = color.RGBA{220, 220, 220, 255}
	buttonColor  = color.RGBA{200, 200, 200, 255}
	hoverColor   = color.RGBA{180, 180, 180, 255}
	pressedColor = color.RGBA{150, 150, 150, 255}
	backdrop     = color.RGBA{96, 96, 96, 255}
	gridColor    = color.RGBA{0, 0, 0, 40}
)

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// KeyShortcut identifies a key press that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is a drawable toolbar element. The event loop resolves clicks
// through the layout, so buttons only know how to draw themselves.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func stateColor(state ButtonState) color.RGBA {
	switch state {
	case StateHover:
		return hoverColor
	case StatePressed:
		return pressedColor
	}
	return buttonColor
}

// Shortcut is a clickable hint in the status bar.
type Shortcut struct {
	label  string
	action string
	rect   image.Rectangle
}

var _ Button = (*Shortcut)(nil)

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, s.rect, &image.Uniform{stateColor(state)}, image.Point{}, draw.Src)
	drawRect(dst, s.rect, color.Black)
	drawLabel(dst, s.label, image.Pt(s.rect.Min.X+2, s.rect.Min.Y+14))
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) { s.rect = r }

// ToolButton is a labelled toolbar button.
type ToolButton struct {
	label string
	rect  image.Rectangle
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, tb.rect, &image.Uniform{stateColor(state)}, image.Point{}, draw.Src)
	drawLabel(dst, tb.label, image.Pt(tb.rect.Min.X+4, tb.rect.Min.Y+16))
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func labelWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}

func drawLabel(dst *image.RGBA, s string, at image.Point) {
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13, Dot: fixed.P(at.X, at.Y)}
	d.DrawString(s)
}

// drawRect outlines r one pixel wide, inside its bounds.
func drawRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	if r.Empty() {
		return
	}
	src := &image.Uniform{col}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}

// drawSwatch paints one palette entry, framing it when selected.
func drawSwatch(dst *image.RGBA, r image.Rectangle, c picture.Color, hover, selected bool) {
	draw.Draw(dst, r, &image.Uniform{c.RGBA()}, image.Point{}, draw.Src)
	if hover {
		draw.Draw(dst, r, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
	}
	if selected {
		drawRect(dst, r.Inset(-1), color.Black)
		drawRect(dst, r, color.White)
	}
}

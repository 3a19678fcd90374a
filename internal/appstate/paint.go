package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/pixelart/internal/editor"
	"github.com/example/pixelart/internal/picture"
	"github.com/example/pixelart/internal/render"
)

// paintState is an immutable snapshot handed to the paint goroutine.
type paintState struct {
	lay       layout
	picture   *picture.Picture
	scale     int
	labels    []string
	selected  int
	swatches  []picture.Color
	color     picture.Color
	shortcuts []Shortcut
	status    string

	hoverButton   int
	hoverSwatch   int
	hoverShortcut int

	dragging bool
	anchor   image.Point

	message      string
	messageUntil time.Time
}

// canvas caches the scaled picture between frames. Only cells that changed
// since the last frame are repainted.
type canvas struct {
	img   *image.RGBA
	shown *picture.Picture
	scale int
}

// sync brings the cache up to date with p and returns the repainted
// rectangles in canvas coordinates.
func (c *canvas) sync(p *picture.Picture, scale int) []image.Rectangle {
	if scale < 1 {
		scale = 1
	}
	size := render.Size(p, scale)
	if c.img == nil || c.scale != scale || c.img.Bounds().Size() != size {
		c.img = image.NewRGBA(image.Rectangle{Max: size})
		c.shown = nil
		c.scale = scale
	}
	dirty := render.Delta(c.img, image.Point{}, c.shown, p, scale)
	c.shown = p
	return dirty
}

// painter owns everything the paint goroutine reuses across frames.
type painter struct {
	canvas  canvas
	buttons []*CacheButton
	labels  []string
}

func (pt *painter) toolbar(labels []string, rects []image.Rectangle) []*CacheButton {
	if !sameLabels(pt.labels, labels) {
		pt.labels = append(pt.labels[:0], labels...)
		pt.buttons = pt.buttons[:0]
		for _, lbl := range labels {
			pt.buttons = append(pt.buttons, &CacheButton{Button: &ToolButton{label: lbl}})
		}
	}
	for i, b := range pt.buttons {
		if i < len(rects) {
			b.SetRect(rects[i])
		}
	}
	return pt.buttons
}

func sameLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, pt *painter, st paintState) {
	lay := st.lay
	if lay.width <= 0 || lay.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{lay.width, lay.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()

	draw.Draw(dst, dst.Bounds(), &image.Uniform{backdrop}, image.Point{}, draw.Src)

	dirty := pt.canvas.sync(st.picture, st.scale)
	editor.Logger().Debug("repaint", "rects", len(dirty))
	draw.Draw(dst, lay.canvas, pt.canvas.img, image.Point{}, draw.Src)
	render.DrawGrid(dst, lay.origin, st.picture.Width(), st.picture.Height(), st.scale, gridColor)
	if st.dragging {
		drawRect(dst, render.Cell(lay.origin, st.anchor.X, st.anchor.Y, st.scale), color.White)
	}
	if ctx.Err() != nil {
		return
	}

	drawTopBar(dst, st)
	drawToolbar(dst, pt, st)
	drawStatus(dst, st)
	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawMessage(dst, lay, st.message)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func drawTopBar(dst *image.RGBA, st paintState) {
	bar := image.Rect(0, 0, st.lay.width, topHeight)
	draw.Draw(dst, bar, &image.Uniform{panelColor}, image.Point{}, draw.Src)
	drawLabel(dst, ProgramTitle, image.Pt(4, 16))
	chip := image.Rect(st.lay.toolbarWidth+4, 4, st.lay.toolbarWidth+20, 20)
	draw.Draw(dst, chip, &image.Uniform{st.color.RGBA()}, image.Point{}, draw.Src)
	drawRect(dst, chip, color.Black)
	drawLabel(dst, st.status, image.Pt(chip.Max.X+6, 16))
}

func drawToolbar(dst *image.RGBA, pt *painter, st paintState) {
	panel := image.Rect(0, topHeight, st.lay.toolbarWidth, st.lay.height-bottomHeight)
	draw.Draw(dst, panel, &image.Uniform{panelColor}, image.Point{}, draw.Src)
	for i, b := range pt.toolbar(st.labels, st.lay.buttons) {
		state := StateDefault
		if i == st.selected {
			state = StatePressed
		} else if i == st.hoverButton {
			state = StateHover
		}
		b.Draw(dst, state)
	}
	for i, r := range st.lay.swatches {
		if i >= len(st.swatches) {
			break
		}
		c := st.swatches[i]
		drawSwatch(dst, r, c, i == st.hoverSwatch, c == st.color)
	}
}

func drawStatus(dst *image.RGBA, st paintState) {
	draw.Draw(dst, st.lay.status, &image.Uniform{panelColor}, image.Point{}, draw.Src)
	for i := range st.shortcuts {
		state := StateDefault
		if i == st.hoverShortcut {
			state = StateHover
		}
		st.shortcuts[i].Draw(dst, state)
	}
}

func drawMessage(dst *image.RGBA, lay layout, msg string) {
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := (lay.width - wmsg) / 2
	py := (lay.height-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
	drawRect(dst, rect, color.Black)
	drawRect(dst, rect.Inset(1), color.Black)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

// statusLine summarises the editor state for the top bar.
func statusLine(s editor.State, label string) string {
	line := fmt.Sprintf("%s  %s  %dx%d", s.Tool, label, s.Picture.Width(), s.Picture.Height())
	if n := len(s.Done); n > 0 {
		line += fmt.Sprintf("  undo:%d", n)
	}
	return line
}

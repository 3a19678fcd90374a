package appstate

import (
	"image"
	"strings"

	"github.com/example/pixelart/internal/tools"
)

const minToolbarWidth = 48

var toolKeys = map[string]rune{
	tools.Draw:        'p',
	tools.Line:        'l',
	tools.Rectangle:   'r',
	tools.Circle:      'o',
	tools.Ellipse:     'e',
	tools.Fill:        'f',
	tools.PatternFill: 'g',
	tools.Pick:        'i',
}

var toolTitles = map[string]string{
	tools.Draw:        "Draw",
	tools.Line:        "Line",
	tools.Rectangle:   "Rect",
	tools.Circle:      "Circle",
	tools.Ellipse:     "Ellipse",
	tools.Fill:        "Fill",
	tools.PatternFill: "Pattern",
	tools.Pick:        "Pick",
}

// toolLabel returns the toolbar caption of a tool, prefixed by its key.
func toolLabel(name string) string {
	title, ok := toolTitles[name]
	if !ok {
		title = name
	}
	if r, ok := toolKeys[name]; ok {
		return strings.ToUpper(string(r)) + ":" + title
	}
	return title
}

// toolbarWidthFor is wide enough for the program title and every label.
func toolbarWidthFor(labels []string) int {
	w := labelWidth(ProgramTitle) + 8
	for _, lbl := range labels {
		if lw := labelWidth(lbl) + 8; lw > w {
			w = lw
		}
	}
	if w < minToolbarWidth {
		w = minToolbarWidth
	}
	return w
}

// layout places every widget for one window size. It is rebuilt on each
// size or picture change and handed to the painter by value.
type layout struct {
	width, height int
	toolbarWidth  int
	buttons       []image.Rectangle
	swatches      []image.Rectangle
	origin        image.Point
	canvas        image.Rectangle
	status        image.Rectangle
}

func computeLayout(width, height, toolbarWidth, buttons, swatches int, canvas image.Point) layout {
	l := layout{width: width, height: height, toolbarWidth: toolbarWidth}
	y := topHeight
	for i := 0; i < buttons; i++ {
		l.buttons = append(l.buttons, image.Rect(0, y, toolbarWidth, y+buttonHeight))
		y += buttonHeight
	}
	y += 4
	x := 4
	for i := 0; i < swatches; i++ {
		if x+swatchSize > toolbarWidth && x > 4 {
			x = 4
			y += swatchPitch
		}
		l.swatches = append(l.swatches, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchPitch
	}
	l.origin = image.Pt(toolbarWidth+canvasMargin, topHeight+canvasMargin)
	l.canvas = image.Rectangle{Min: l.origin, Max: l.origin.Add(canvas)}
	l.status = image.Rect(0, height-bottomHeight, width, height)
	return l
}

// toolbarBottom is the lowest pixel used by buttons and swatches.
func (l layout) toolbarBottom() int {
	bottom := topHeight
	if n := len(l.buttons); n > 0 {
		bottom = l.buttons[n-1].Max.Y
	}
	if n := len(l.swatches); n > 0 && l.swatches[n-1].Max.Y > bottom {
		bottom = l.swatches[n-1].Max.Y
	}
	return bottom
}

// windowSize is the initial window size that shows the whole canvas and
// toolbar without clipping.
func windowSize(toolbarWidth, buttons, swatches int, canvas image.Point) image.Point {
	l := computeLayout(0, 0, toolbarWidth, buttons, swatches, canvas)
	w := toolbarWidth + canvas.X + 2*canvasMargin
	h := topHeight + canvas.Y + 2*canvasMargin
	if tb := l.toolbarBottom() + canvasMargin; tb > h {
		h = tb
	}
	return image.Pt(w, h+bottomHeight)
}

// layoutShortcuts lays the status bar hints out left to right.
func layoutShortcuts(list []Shortcut, l layout) {
	x := l.toolbarWidth + 4
	y := l.height - bottomHeight + 16
	for i := range list {
		w := labelWidth(list[i].label)
		list[i].SetRect(image.Rect(x-2, y-14, x+w+2, y+4))
		x += w + 12
	}
}

// hit returns the index of the first rectangle containing p, or -1.
func hit(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

package appstate

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/mobile/event/key"

	"github.com/example/pixelart/internal/editor"
	"github.com/example/pixelart/internal/export"
	"github.com/example/pixelart/internal/picture"
	"github.com/example/pixelart/internal/tools"
)

func newTestState(t *testing.T, opts ...Option) *AppState {
	t.Helper()
	st, err := editor.Blank(4, 3, DefaultBackground, DefaultInk, tools.Draw)
	if err != nil {
		t.Fatalf("blank: %v", err)
	}
	return New(append([]Option{WithStore(editor.NewStore(st))}, opts...)...)
}

func TestNewDefaults(t *testing.T) {
	a := New()
	s := a.Store.State()
	if s.Picture.Width() != 60 || s.Picture.Height() != 30 {
		t.Fatalf("default picture %dx%d", s.Picture.Width(), s.Picture.Height())
	}
	if s.Tool != tools.Draw || s.Color != DefaultInk {
		t.Fatalf("default tool %q colour %q", s.Tool, s.Color)
	}
	if a.Scale != defaultScale || a.Mode != ModeEdit {
		t.Fatalf("scale %d mode %d", a.Scale, a.Mode)
	}
	if len(a.Registry.Names()) != 8 {
		t.Fatalf("registry %v", a.Registry.Names())
	}
}

func TestToolLabels(t *testing.T) {
	if got := toolLabel(tools.PatternFill); got != "G:Pattern" {
		t.Fatalf("pattern label %q", got)
	}
	if got := toolLabel("spray"); got != "spray" {
		t.Fatalf("unknown label %q", got)
	}
	w := toolbarWidthFor([]string{"P:Draw"})
	if w < minToolbarWidth {
		t.Fatalf("toolbar width %d", w)
	}
	if wide := toolbarWidthFor([]string{strings.Repeat("x", 30)}); wide <= w {
		t.Fatalf("long label did not widen toolbar: %d <= %d", wide, w)
	}
}

func TestComputeLayout(t *testing.T) {
	l := computeLayout(400, 300, 64, 3, 5, image.Pt(100, 50))
	if len(l.buttons) != 3 || len(l.swatches) != 5 {
		t.Fatalf("got %d buttons %d swatches", len(l.buttons), len(l.swatches))
	}
	if l.buttons[0] != image.Rect(0, topHeight, 64, topHeight+buttonHeight) {
		t.Fatalf("first button %v", l.buttons[0])
	}
	for _, r := range l.swatches {
		if r.Max.X > 64 {
			t.Fatalf("swatch %v overflows toolbar", r)
		}
		if r.Min.Y < l.buttons[2].Max.Y {
			t.Fatalf("swatch %v overlaps buttons", r)
		}
	}
	if l.swatches[3].Min.Y == l.swatches[0].Min.Y {
		t.Fatalf("swatches did not wrap: %v", l.swatches)
	}
	want := image.Pt(64+canvasMargin, topHeight+canvasMargin)
	if l.origin != want || l.canvas.Size() != image.Pt(100, 50) {
		t.Fatalf("canvas %v origin %v", l.canvas, l.origin)
	}
	if l.status != image.Rect(0, 300-bottomHeight, 400, 300) {
		t.Fatalf("status %v", l.status)
	}
}

func TestWindowSizeFitsToolbar(t *testing.T) {
	size := windowSize(64, 8, 18, image.Pt(40, 20))
	l := computeLayout(size.X, size.Y, 64, 8, 18, image.Pt(40, 20))
	if l.toolbarBottom() > l.status.Min.Y {
		t.Fatalf("toolbar bottom %d below status %d", l.toolbarBottom(), l.status.Min.Y)
	}
	if l.canvas.Max.X > size.X || l.canvas.Max.Y > l.status.Min.Y {
		t.Fatalf("canvas %v does not fit %v", l.canvas, size)
	}
}

func TestHit(t *testing.T) {
	rects := []image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(10, 0, 20, 10)}
	if got := hit(rects, image.Pt(15, 5)); got != 1 {
		t.Fatalf("hit = %d", got)
	}
	if got := hit(rects, image.Pt(25, 5)); got != -1 {
		t.Fatalf("miss = %d", got)
	}
}

func TestKeymapEditing(t *testing.T) {
	m := keymap(bindings(tools.DefaultRegistry().Names(), true))
	cases := []struct {
		ev   key.Event
		want string
	}{
		{key.Event{Rune: 'l', Code: key.CodeL}, toolAction(tools.Line)},
		{key.Event{Rune: 'G', Code: key.CodeG, Modifiers: key.ModShift}, toolAction(tools.PatternFill)},
		{key.Event{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModControl}, actionUndo},
		{key.Event{Rune: 0x13, Code: key.CodeS, Modifiers: key.ModControl}, actionSave},
		{key.Event{Rune: -1, Code: key.CodeEscape}, actionCancel},
		{key.Event{Rune: 'q', Code: key.CodeQ}, actionQuit},
	}
	for _, c := range cases {
		got, ok := matchShortcut(m, c.ev)
		if !ok || got != c.want {
			t.Errorf("%v: got %q %v, want %q", c.ev, got, ok, c.want)
		}
	}
	if _, ok := matchShortcut(m, key.Event{Rune: 'x', Code: key.CodeX}); ok {
		t.Errorf("unbound key matched")
	}
}

func TestKeymapPreview(t *testing.T) {
	bs := bindings(tools.DefaultRegistry().Names(), false)
	m := keymap(bs)
	if got, _ := matchShortcut(m, key.Event{Rune: 'e', Code: key.CodeE}); got != actionEdit {
		t.Fatalf("e in preview = %q", got)
	}
	if _, ok := matchShortcut(m, key.Event{Rune: 'l', Code: key.CodeL}); ok {
		t.Fatalf("tool key bound in preview")
	}
	if _, ok := matchShortcut(m, key.Event{Rune: 'z', Code: key.CodeZ, Modifiers: key.ModControl}); ok {
		t.Fatalf("undo bound in preview")
	}
	for _, s := range statusShortcuts(bs) {
		if s.action == actionPaste || s.action == actionClear {
			t.Fatalf("preview shows %q", s.label)
		}
	}
}

func TestCanvasSyncRepaintsChangedCells(t *testing.T) {
	p, err := picture.Empty(4, 4, "#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	var c canvas
	dirty := c.sync(p, 3)
	if len(dirty) != 1 || dirty[0] != image.Rect(0, 0, 12, 12) {
		t.Fatalf("first sync %v", dirty)
	}
	next := p.Draw(picture.CellEdit{X: 2, Y: 1, Color: "#ff0000"})
	dirty = c.sync(next, 3)
	if len(dirty) != 1 || dirty[0] != image.Rect(6, 3, 9, 6) {
		t.Fatalf("delta sync %v", dirty)
	}
	if got := c.img.RGBAAt(7, 4); got.R != 0xff || got.G != 0 {
		t.Fatalf("cell colour %v", got)
	}
	if dirty = c.sync(next, 3); len(dirty) != 0 {
		t.Fatalf("unchanged sync %v", dirty)
	}
	if dirty = c.sync(next, 2); len(dirty) != 1 || c.img.Bounds().Dx() != 8 {
		t.Fatalf("rescale sync %v bounds %v", dirty, c.img.Bounds())
	}
}

func TestPainterReusesButtons(t *testing.T) {
	pt := &painter{}
	rects := []image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(0, 10, 10, 20)}
	first := pt.toolbar([]string{"a", "b"}, rects)
	again := pt.toolbar([]string{"a", "b"}, rects)
	if first[0] != again[0] {
		t.Fatalf("buttons rebuilt for identical labels")
	}
	changed := pt.toolbar([]string{"c"}, rects)
	if len(changed) != 1 || changed[0].Rect() != rects[0] {
		t.Fatalf("changed toolbar %v", changed)
	}
}

func TestStatusLine(t *testing.T) {
	a := newTestState(t)
	got := statusLine(a.Store.State(), "Ink")
	if got != "draw  Ink  4x3" {
		t.Fatalf("status %q", got)
	}
}

func TestSelectTool(t *testing.T) {
	a := newTestState(t)
	if err := a.SelectTool(tools.Fill); err != nil {
		t.Fatalf("select fill: %v", err)
	}
	if a.Store.State().Tool != tools.Fill {
		t.Fatalf("tool %q", a.Store.State().Tool)
	}
	if err := a.SelectTool("spray"); !errors.Is(err, tools.ErrUnknownTool) {
		t.Fatalf("unknown tool err = %v", err)
	}
	if a.Store.State().Tool != tools.Fill {
		t.Fatalf("failed select changed tool")
	}
}

func TestClearAndUndo(t *testing.T) {
	a := newTestState(t, WithBackground("#123456"))
	if a.Undo() {
		t.Fatalf("undo on fresh state reported true")
	}
	if err := a.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := a.Store.State().Picture.At(0, 0); got != "#123456" {
		t.Fatalf("cleared cell %q", got)
	}
	if !a.Undo() {
		t.Fatalf("undo after clear reported false")
	}
	if got := a.Store.State().Picture.At(0, 0); got != DefaultBackground {
		t.Fatalf("undone cell %q", got)
	}
}

func TestOutputPathUntitled(t *testing.T) {
	dir := t.TempDir()
	a := newTestState(t, WithSaveDir(dir))
	first := a.OutputPath()
	if filepath.Dir(first) != dir {
		t.Fatalf("untitled path %q not in %q", first, dir)
	}
	base := filepath.Base(first)
	if !strings.HasPrefix(base, "pixelart-") || !strings.HasSuffix(base, ".png") || len(base) != len("pixelart-")+8+len(".png") {
		t.Fatalf("untitled name %q", base)
	}
	if again := a.OutputPath(); again != first {
		t.Fatalf("untitled name changed: %q then %q", first, again)
	}
	named := newTestState(t, WithOutput("art.png"))
	if got := named.OutputPath(); got != "art.png" {
		t.Fatalf("output path %q", got)
	}
}

func TestSaveWritesPicture(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	a := newTestState(t, WithOutput(out))
	a.Store.Dispatch(editor.SetPicture{Picture: a.Store.State().Picture.Draw(picture.CellEdit{X: 1, Y: 2, Color: "#00ff00"})})
	path, err := a.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != out {
		t.Fatalf("saved to %q", path)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("stat: %v", err)
	}
	got, err := export.LoadPNG(out, picture.DefaultMaxImport)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Equal(a.Store.State().Picture) {
		t.Fatalf("saved picture differs")
	}
}

func TestSaveReportsErrors(t *testing.T) {
	a := newTestState(t, WithOutput(filepath.Join(t.TempDir(), "missing", "out.png")))
	if _, err := a.Save(); err == nil {
		t.Fatalf("expected error saving into a missing directory")
	}
}

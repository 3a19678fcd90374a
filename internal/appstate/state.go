// Package appstate is the desktop window around the editor: toolbar,
// palette, scaled canvas and status bar on top of golang.org/x/exp/shiny.
package appstate

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/pixelart/internal/clipboard"
	"github.com/example/pixelart/internal/editor"
	"github.com/example/pixelart/internal/export"
	"github.com/example/pixelart/internal/notify"
	"github.com/example/pixelart/internal/palette"
	"github.com/example/pixelart/internal/picture"
	"github.com/example/pixelart/internal/render"
	"github.com/example/pixelart/internal/tools"
)

// Mode selects what the window allows.
type Mode int

const (
	// ModeEdit enables the tools.
	ModeEdit Mode = iota
	// ModePreview shows the picture read-only until the user asks to edit.
	ModePreview
)

// Defaults for a window opened without a store.
var (
	DefaultBackground = picture.Color("#f0f0f0")
	DefaultInk        = picture.Color("#010101")
)

const (
	defaultScale  = 10
	defaultWidth  = 60
	defaultHeight = 30
)

// AppState holds the configuration of one editor window.
type AppState struct {
	Store      *editor.Store
	Registry   *tools.Registry
	Palette    *palette.Palette
	Notifier   *notify.Notifier
	Output     string
	SaveDir    string
	Scale      int
	Background picture.Color
	MaxImport  image.Point
	Mode       Mode

	mu       sync.Mutex
	untitled string

	updateCh  chan struct{}
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithStore sets the store the window edits.
func WithStore(s *editor.Store) Option { return func(a *AppState) { a.Store = s } }

// WithRegistry sets the tools offered in the toolbar.
func WithRegistry(r *tools.Registry) Option { return func(a *AppState) { a.Registry = r } }

// WithPalette sets the swatches shown under the tools.
func WithPalette(p *palette.Palette) Option { return func(a *AppState) { a.Palette = p } }

// WithNotifier sets the notifier used for save and copy events.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithOutput sets the file written by save.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithSaveDir sets where untitled pictures are saved.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithScale sets the screen pixels per cell.
func WithScale(scale int) Option { return func(a *AppState) { a.Scale = scale } }

// WithBackground sets the colour used by clear.
func WithBackground(c picture.Color) Option { return func(a *AppState) { a.Background = c } }

// WithMaxImport bounds pictures pasted from the clipboard.
func WithMaxImport(limit image.Point) Option { return func(a *AppState) { a.MaxImport = limit } }

// WithMode configures the UI mode.
func WithMode(mode Mode) Option { return func(a *AppState) { a.Mode = mode } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Scale:      defaultScale,
		Background: DefaultBackground,
		MaxImport:  picture.DefaultMaxImport,
		Mode:       ModeEdit,
		updateCh:   make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Registry == nil {
		a.Registry = tools.DefaultRegistry()
	}
	if a.Palette == nil {
		a.Palette = palette.Default()
	}
	if a.Scale < 1 {
		a.Scale = 1
	}
	if a.Store == nil {
		st, err := editor.Blank(defaultWidth, defaultHeight, a.Background, DefaultInk, tools.Draw)
		if err != nil {
			log.Fatalf("blank picture: %v", err)
		}
		a.Store = editor.NewStore(st)
	}
	return a
}

// NotifyChanged requests a repaint; the window subscribes it to the store.
func (a *AppState) NotifyChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// UntitledName returns a fresh file name for an unsaved picture.
func UntitledName() string {
	return "pixelart-" + uuid.NewString()[:8] + ".png"
}

// OutputPath is where save writes. Without an output file a name is
// generated once in SaveDir and reused for later saves.
func (a *AppState) OutputPath() string {
	if a.Output != "" {
		return a.Output
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.untitled == "" {
		a.untitled = UntitledName()
	}
	return filepath.Join(a.SaveDir, a.untitled)
}

// SelectTool makes name the active tool.
func (a *AppState) SelectTool(name string) error {
	if _, err := a.Registry.Lookup(name); err != nil {
		return err
	}
	a.Store.Dispatch(editor.SetTool{Name: name})
	return nil
}

// SelectColor sets the drawing colour.
func (a *AppState) SelectColor(c picture.Color) {
	a.Store.Dispatch(editor.SetColor{Color: c})
}

// Undo restores the previous picture. It reports false when there is
// nothing to undo.
func (a *AppState) Undo() bool {
	if !a.Store.State().CanUndo() {
		return false
	}
	a.Store.Dispatch(editor.Undo{})
	return true
}

// Clear fills the picture with the background colour.
func (a *AppState) Clear() error {
	act, err := editor.Clear(a.Store.State(), a.Background)
	if err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	a.Store.Dispatch(act)
	return nil
}

// Save writes the picture at one pixel per cell and returns the path.
func (a *AppState) Save() (string, error) {
	path := a.OutputPath()
	if err := export.Save(path, a.Store.State().Picture, 1); err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	a.Notifier.Save(path)
	return path, nil
}

// Copy places the picture on the clipboard as a PNG.
func (a *AppState) Copy() error {
	p := a.Store.State().Picture
	if err := clipboard.WritePicture(p, 1); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	a.Notifier.Copy(fmt.Sprintf("%dx%d picture", p.Width(), p.Height()))
	return nil
}

// Paste replaces the picture with the clipboard image.
func (a *AppState) Paste() error {
	p, err := clipboard.ReadPicture(a.MaxImport)
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	a.Store.Dispatch(editor.SetPicture{Picture: p})
	return nil
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) title() string {
	if a.Output == "" {
		return ProgramTitle
	}
	return ProgramTitle + " - " + filepath.Base(a.Output)
}

// Main runs the window until it is closed or the user quits.
func (a *AppState) Main(s screen.Screen) {
	names := a.Registry.Names()
	toolLabels := make([]string, len(names))
	for i, n := range names {
		toolLabels[i] = toolLabel(n)
	}
	tbWidth := toolbarWidthFor(append(append([]string(nil), toolLabels...), "E:Edit"))

	initial := a.Store.State()
	win := windowSize(tbWidth, len(names), len(a.Palette.Swatches), render.Size(initial.Picture, a.Scale))
	width, height := win.X, win.Y
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.title()})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	defer a.notifyClose()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)
	unsubscribe := a.Store.Subscribe(func(editor.State) { a.NotifyChanged() })
	defer unsubscribe()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		pt := &painter{}
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, pt, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	session := tools.NewSession(a.Registry, a.Store)
	editing := a.Mode != ModePreview

	var (
		labels        []string
		buttonActions []string
		shortcuts     []Shortcut
		keys          map[KeyShortcut]string
		lay           layout
		hoverButton   = -1
		hoverSwatch   = -1
		hoverShortcut = -1
		pressed       bool
		quit          bool
		message       string
		messageUntil  time.Time
	)

	flash := func(msg string) {
		message = msg
		messageUntil = time.Now().Add(2 * time.Second)
		log.Print(msg)
		w.Send(paint.Event{})
	}

	relayout := func() {
		swatches := 0
		if editing {
			swatches = len(a.Palette.Swatches)
		}
		p := a.Store.State().Picture
		lay = computeLayout(width, height, tbWidth, len(labels), swatches, render.Size(p, a.Scale))
		layoutShortcuts(shortcuts, lay)
	}

	configureMode := func() {
		bs := bindings(names, editing)
		keys = keymap(bs)
		shortcuts = statusShortcuts(bs)
		if editing {
			labels = toolLabels
			buttonActions = make([]string, len(names))
			for i, n := range names {
				buttonActions[i] = toolAction(n)
			}
		} else {
			labels = []string{"E:Edit"}
			buttonActions = []string{actionEdit}
		}
		hoverButton, hoverSwatch, hoverShortcut = -1, -1, -1
		relayout()
	}
	configureMode()

	trigger := func(name string) {
		if strings.HasPrefix(name, toolPrefix) {
			if !editing {
				return
			}
			session.Cancel()
			if err := a.SelectTool(strings.TrimPrefix(name, toolPrefix)); err != nil {
				log.Printf("tool: %v", err)
			}
			return
		}
		switch name {
		case actionUndo:
			session.Cancel()
			if !a.Undo() {
				flash("nothing to undo")
			}
		case actionSave:
			path, err := a.Save()
			if err != nil {
				log.Print(err)
				flash("save failed")
				return
			}
			flash(fmt.Sprintf("saved %s", path))
		case actionCopy:
			if err := a.Copy(); err != nil {
				log.Print(err)
				flash("copy failed")
				return
			}
			flash("picture copied to clipboard")
		case actionPaste:
			session.Cancel()
			if err := a.Paste(); err != nil {
				log.Print(err)
				flash("paste failed")
				return
			}
			relayout()
			flash("picture pasted")
		case actionClear:
			session.Cancel()
			if err := a.Clear(); err != nil {
				log.Print(err)
			}
		case actionCancel:
			session.Cancel()
			w.Send(paint.Event{})
		case actionEdit:
			if editing {
				return
			}
			editing = true
			configureMode()
			w.Send(paint.Event{})
		case actionQuit:
			quit = true
		}
	}

	for !quit {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			relayout()
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			cur := a.Store.State()
			if lay.canvas.Size() != render.Size(cur.Picture, a.Scale) {
				relayout()
			}
			selected := -1
			if editing {
				selected = indexOf(buttonActions, toolAction(cur.Tool))
			}
			var swatches []picture.Color
			if editing {
				swatches = a.Palette.Colors()
			}
			anchor, dragging := session.Anchor()
			st := paintState{
				lay:           lay,
				picture:       cur.Picture,
				scale:         a.Scale,
				labels:        labels,
				selected:      selected,
				swatches:      swatches,
				color:         cur.Color,
				shortcuts:     append([]Shortcut(nil), shortcuts...),
				status:        statusLine(cur, a.Palette.Label(cur.Color)),
				hoverButton:   hoverButton,
				hoverSwatch:   hoverSwatch,
				hoverShortcut: hoverShortcut,
				dragging:      dragging,
				anchor:        anchor,
				message:       message,
				messageUntil:  messageUntil,
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			if e.Direction == mouse.DirPress && time.Now().Before(messageUntil) {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
			}
			if session.Phase() == tools.Dragging && e.Direction != mouse.DirPress {
				if e.Direction == mouse.DirRelease {
					pressed = false
					session.Up()
					w.Send(paint.Event{})
					continue
				}
				cell := render.CellAt(lay.origin, p, a.Scale)
				if err := session.Move(cell, pressed); err != nil {
					log.Printf("%s: %v", session.Tool(), err)
				}
				continue
			}
			if e.Direction == mouse.DirRelease {
				pressed = false
				continue
			}
			click := e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft
			switch {
			case p.In(lay.status):
				i := -1
				for j := range shortcuts {
					if p.In(shortcuts[j].rect) {
						i = j
						break
					}
				}
				if click && i >= 0 {
					trigger(shortcuts[i].action)
				}
				if i != hoverShortcut {
					hoverShortcut = i
					w.Send(paint.Event{})
				}
			case p.X < lay.toolbarWidth:
				bi := hit(lay.buttons, p)
				si := hit(lay.swatches, p)
				if click {
					if bi >= 0 && bi < len(buttonActions) {
						trigger(buttonActions[bi])
					} else if si >= 0 && editing {
						a.SelectColor(a.Palette.At(si).Color)
					}
				}
				if bi != hoverButton || si != hoverSwatch {
					hoverButton, hoverSwatch = bi, si
					w.Send(paint.Event{})
				}
			default:
				if hoverButton != -1 || hoverSwatch != -1 || hoverShortcut != -1 {
					hoverButton, hoverSwatch, hoverShortcut = -1, -1, -1
					w.Send(paint.Event{})
				}
				if !click || !editing || !p.In(lay.canvas) {
					continue
				}
				pressed = true
				cell := render.CellAt(lay.origin, p, a.Scale)
				if err := session.Down(cell); err != nil {
					log.Printf("%s: %v", a.Store.State().Tool, err)
				}
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if name, ok := matchShortcut(keys, e); ok {
				trigger(name)
			}
		case error:
			log.Print(e)
		}
	}
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

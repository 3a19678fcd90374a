//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo the clipboard talks to the X server directly. Written data is
// served from an invisible window until another client takes the selection.

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	owner        *selectionOwner
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		o, err := newSelectionOwner()
		if err != nil {
			initErr = fmt.Errorf("connect to X server: %w", err)
			return
		}
		owner = o
	})
	return initErr
}

func writeData(f format, data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.publish(f, data)
}

func readData(f format) ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	if f == formatImage {
		return owner.request(owner.atoms.png)
	}
	data, err := owner.request(owner.atoms.utf8)
	if err != nil {
		if data, err = owner.request(xproto.AtomString); err != nil {
			return nil, err
		}
	}
	return trimText(data), nil
}

// trimText drops the NUL some clients append to STRING replies.
func trimText(data []byte) []byte {
	if n := len(data); n > 0 && data[n-1] == 0 {
		return data[:n-1]
	}
	return data
}

type atoms struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atoms

	mu   sync.RWMutex
	kind format
	data []byte
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	const mask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{mask}).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	as, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{conn: conn, window: window, atoms: as}
	go o.serve()
	return o, nil
}

func internAtoms(conn *xgb.Conn) (atoms, error) {
	names := []string{"CLIPBOARD", "TARGETS", "UTF8_STRING", "text/plain;charset=utf-8", "image/png", "PIXELART_CLIPBOARD"}
	got := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atoms{}, fmt.Errorf("intern %s: %w", name, err)
		}
		got[i] = reply.Atom
	}
	return atoms{
		clipboard: got[0],
		targets:   got[1],
		utf8:      got[2],
		textPlain: got[3],
		png:       got[4],
		property:  got[5],
	}, nil
}

func (o *selectionOwner) publish(f format, data []byte) error {
	o.mu.Lock()
	o.kind = f
	o.data = append([]byte(nil), data...)
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.data = nil
			o.mu.Unlock()
		}
	}
}

// offers lists the targets the current data can be converted to.
func (o *selectionOwner) offers(kind format, data []byte) []xproto.Atom {
	out := []xproto.Atom{o.atoms.targets}
	if len(data) == 0 {
		return out
	}
	if kind == formatImage {
		return append(out, o.atoms.png)
	}
	return append(out, o.atoms.utf8, xproto.AtomString, o.atoms.textPlain)
}

func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	o.mu.RLock()
	kind, data := o.kind, o.data
	o.mu.RUnlock()

	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	var (
		typ     xproto.Atom
		bits    byte
		payload []byte
	)
	switch {
	case e.Target == o.atoms.targets:
		typ, bits, payload = xproto.AtomAtom, 32, atomsToBytes(o.offers(kind, data))
	case e.Target == o.atoms.png && kind == formatImage && len(data) > 0:
		typ, bits, payload = o.atoms.png, 8, data
	case (e.Target == o.atoms.utf8 || e.Target == xproto.AtomString || e.Target == o.atoms.textPlain) &&
		kind == formatText && len(data) > 0:
		typ, bits, payload = o.atoms.utf8, 8, data
	default:
		property = xproto.AtomNone
	}
	if property != xproto.AtomNone {
		length := uint32(len(payload))
		if bits == 32 {
			length /= 4
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, typ, bits, length, payload)
	}
	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// request converts the clipboard to target on a fresh connection, so it
// also works while this process owns the selection.
func (o *selectionOwner) request(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, o.atoms.clipboard, target, o.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, fmt.Errorf("clipboard target unavailable")
		}
		reply, perr := xproto.GetProperty(conn, true, window, e.Property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}

func atomsToBytes(as []xproto.Atom) []byte {
	buf := make([]byte, len(as)*4)
	for i, a := range as {
		xgb.Put32(buf[i*4:], uint32(a))
	}
	return buf
}

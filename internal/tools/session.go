package tools

import (
	"image"

	"github.com/example/pixelart/internal/editor"
)

// Store is the part of editor.Store a Session needs.
type Store interface {
	State() editor.State
	Dispatch(editor.Action)
}

// Phase is the drag state of a Session.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	if p == Dragging {
		return "dragging"
	}
	return "idle"
}

// Session turns pointer events into tool invocations. The active tool is
// read from the store at pointer-down and kept for the whole drag.
type Session struct {
	registry *Registry
	store    Store

	phase  Phase
	tool   string
	anchor image.Point
	last   image.Point
	cont   Continuation
}

// NewSession returns an idle session over st.
func NewSession(r *Registry, st Store) *Session {
	return &Session{registry: r, store: st}
}

// Phase returns the current drag state.
func (s *Session) Phase() Phase { return s.phase }

// Tool returns the tool driving the current drag, or "" when idle.
func (s *Session) Tool() string { return s.tool }

// Anchor returns where the current drag started.
func (s *Session) Anchor() (image.Point, bool) { return s.anchor, s.phase == Dragging }

// Down starts a gesture at pos with the store's current tool. A drag in
// progress is abandoned first.
func (s *Session) Down(pos image.Point) error {
	s.Cancel()
	st := s.store.State()
	cont, err := s.registry.Start(st.Tool, pos, st, s.store.Dispatch)
	if err != nil {
		return err
	}
	if cont == nil {
		return nil
	}
	s.phase = Dragging
	s.tool = st.Tool
	s.anchor, s.last = pos, pos
	s.cont = cont
	return nil
}

// Move follows the pointer. Moves within the last cell are ignored and a
// move with no button held ends the drag without drawing.
func (s *Session) Move(pos image.Point, pressed bool) error {
	if s.phase != Dragging {
		return nil
	}
	if !pressed {
		s.Cancel()
		return nil
	}
	if pos == s.last {
		return nil
	}
	s.last = pos
	return s.cont(pos, s.store.State())
}

// Up ends the drag. The shape from the last Move stays as drawn.
func (s *Session) Up() {
	s.Cancel()
}

// Cancel drops any drag in progress.
func (s *Session) Cancel() {
	s.phase = Idle
	s.tool = ""
	s.cont = nil
}

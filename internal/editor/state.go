// Package editor holds the editor state and the reducer that moves it
// forward one action at a time.
package editor

import (
	"fmt"
	"time"

	"github.com/example/pixelart/internal/picture"
)

// DefaultUndoWindow is the span during which successive picture edits share
// one undo step.
const DefaultUndoWindow = time.Second

// State is one immutable snapshot of the editor. Done lists earlier pictures
// most recent first; DoneAt is when the last of them was recorded, or the
// zero time when the next edit must record one.
type State struct {
	Tool    string
	Color   picture.Color
	Picture *picture.Picture
	Done    []*picture.Picture
	DoneAt  time.Time
}

// NewState starts an editor on p with an empty history.
func NewState(p *picture.Picture, tool string, c picture.Color) State {
	return State{Tool: tool, Color: c, Picture: p}
}

// Blank starts an editor on a width x height picture filled with background.
func Blank(width, height int, background, ink picture.Color, tool string) (State, error) {
	p, err := picture.Empty(width, height, background)
	if err != nil {
		return State{}, err
	}
	return NewState(p, tool, ink), nil
}

// CanUndo reports whether an Undo would change the state.
func (s State) CanUndo() bool { return len(s.Done) > 0 }

// Action is a requested state transition. The concrete types are SetTool,
// SetColor, SetPicture and Undo.
type Action interface {
	action()
	fmt.Stringer
}

// SetTool selects the tool used for the next gesture.
type SetTool struct{ Name string }

// SetColor selects the ink colour.
type SetColor struct{ Color picture.Color }

// SetPicture replaces the picture, recording history when the undo window
// has elapsed.
type SetPicture struct{ Picture *picture.Picture }

// Undo restores the most recently recorded picture.
type Undo struct{}

func (SetTool) action()    {}
func (SetColor) action()   {}
func (SetPicture) action() {}
func (Undo) action()       {}

func (a SetTool) String() string  { return "tool " + a.Name }
func (a SetColor) String() string { return "color " + string(a.Color) }
func (a SetPicture) String() string {
	if a.Picture == nil {
		return "picture <nil>"
	}
	return fmt.Sprintf("picture %dx%d", a.Picture.Width(), a.Picture.Height())
}
func (Undo) String() string { return "undo" }

// Clear returns the action that resets the picture to background at its
// current size.
func Clear(s State, background picture.Color) (SetPicture, error) {
	if s.Picture == nil {
		return SetPicture{}, fmt.Errorf("clear: no picture")
	}
	p, err := picture.Empty(s.Picture.Width(), s.Picture.Height(), background)
	if err != nil {
		return SetPicture{}, fmt.Errorf("clear: %w", err)
	}
	return SetPicture{Picture: p}, nil
}

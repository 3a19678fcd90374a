package editor

import (
	"time"

	"github.com/example/pixelart/internal/picture"
)

// Reducer applies actions to states. The zero value uses DefaultUndoWindow
// and keeps unlimited history.
type Reducer struct {
	// Window is the undo coalescing span; zero means DefaultUndoWindow.
	Window time.Duration
	// HistoryLimit caps len(State.Done); zero or less keeps everything.
	HistoryLimit int
}

// Reduce applies a with the default Reducer.
func Reduce(s State, a Action, now time.Time) State {
	return Reducer{}.Reduce(s, a, now)
}

// Reduce returns the state that follows s after a at time now. s is not
// modified.
func (r Reducer) Reduce(s State, a Action, now time.Time) State {
	switch a := a.(type) {
	case Undo:
		if len(s.Done) == 0 {
			return s
		}
		s.Picture = s.Done[0]
		s.Done = s.Done[1:]
		s.DoneAt = time.Time{}
	case SetPicture:
		if a.Picture == nil {
			return s
		}
		if now.Sub(s.DoneAt) >= r.window() {
			s.Done = r.push(s.Picture, s.Done)
			s.DoneAt = now
		}
		s.Picture = a.Picture
	case SetTool:
		s.Tool = a.Name
	case SetColor:
		s.Color = a.Color
	}
	return s
}

func (r Reducer) window() time.Duration {
	if r.Window <= 0 {
		return DefaultUndoWindow
	}
	return r.Window
}

func (r Reducer) push(p *picture.Picture, done []*picture.Picture) []*picture.Picture {
	n := len(done) + 1
	if r.HistoryLimit > 0 && n > r.HistoryLimit {
		n = r.HistoryLimit
	}
	out := make([]*picture.Picture, n)
	out[0] = p
	copy(out[1:], done)
	return out
}

package tools

import (
	"errors"
	"fmt"
	"image"

	"github.com/example/pixelart/internal/editor"
	"github.com/example/pixelart/internal/raster"
)

// ErrUnknownTool is returned for names missing from a Registry.
var ErrUnknownTool = errors.New("unknown tool")

// Dispatch hands an action to whoever owns the state.
type Dispatch func(editor.Action)

// Continuation follows a drag: it re-applies the tool for the new pointer
// position against the latest state and dispatches the result.
type Continuation func(pos image.Point, current editor.State) error

// Registry is an ordered set of named tools.
type Registry struct {
	tools map[string]Tool
	names []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: map[string]Tool{}}
}

// DefaultRegistry returns the built-in tools in toolbar order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Draw, Freehand{})
	r.Register(Line, Shape(raster.Line))
	r.Register(Rectangle, Shape(raster.Rectangle))
	r.Register(Circle, Shape(raster.Circle))
	r.Register(Ellipse, Shape(raster.Ellipse))
	r.Register(Fill, FloodFill{})
	r.Register(PatternFill, FloodFill{Patterned: true})
	r.Register(Pick, Picker{})
	return r
}

// Register adds or replaces the tool called name.
func (r *Registry) Register(name string, t Tool) {
	if _, ok := r.tools[name]; !ok {
		r.names = append(r.names, name)
	}
	r.tools[name] = t
}

// Names lists the registered tools in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Lookup returns the tool called name.
func (r *Registry) Lookup(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTool, name)
	}
	return t, nil
}

// Start applies the named tool at pos against s and dispatches the result.
// Drag tools return a Continuation anchored at pos; single-shot tools
// return nil. Nothing is dispatched when the tool fails.
func (r *Registry) Start(name string, pos image.Point, s editor.State, dispatch Dispatch) (Continuation, error) {
	t, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if err := apply(name, t, Gesture{Anchor: pos, Pos: pos, Base: s, Current: s}, dispatch); err != nil {
		return nil, err
	}
	if !t.Drags() {
		return nil, nil
	}
	anchor, base := pos, s
	return func(pos image.Point, current editor.State) error {
		return apply(name, t, Gesture{Anchor: anchor, Pos: pos, Base: base, Current: current}, dispatch)
	}, nil
}

func apply(name string, t Tool, g Gesture, dispatch Dispatch) error {
	a, err := t.Apply(g)
	if err != nil {
		editor.Logger().Warn("gesture rejected", "tool", name, "pos", g.Pos.String(), "err", err)
		return err
	}
	if a != nil {
		dispatch(a)
	}
	return nil
}

package editor

import (
	"sync"
	"time"
)

// Store owns the current State and serialises transitions on it.
type Store struct {
	mu      sync.Mutex
	state   State
	reducer Reducer
	now     func() time.Time
	subs    []subscriber
	nextSub int

	pending    []State
	delivering bool
}

type subscriber struct {
	id int
	fn func(State)
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, for tests and replays.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// WithUndoWindow sets the coalescing span.
func WithUndoWindow(d time.Duration) Option { return func(s *Store) { s.reducer.Window = d } }

// WithHistoryLimit caps the number of undo steps kept.
func WithHistoryLimit(n int) Option { return func(s *Store) { s.reducer.HistoryLimit = n } }

// NewStore returns a store holding initial.
func NewStore(initial State, opts ...Option) *Store {
	s := &Store{state: initial, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces a into the current state and passes the result to every
// subscriber. Subscribers see states in the order they were reduced. They
// run after the store is unlocked, so they may dispatch again; a nested or
// concurrent Dispatch queues its state for the goroutine already delivering
// and returns before its subscribers have run.
func (s *Store) Dispatch(a Action) {
	if a == nil {
		return
	}
	s.mu.Lock()
	prev := s.state
	next := s.reducer.Reduce(prev, a, s.now())
	s.state = next
	s.pending = append(s.pending, next)
	deliver := !s.delivering
	s.delivering = true
	s.mu.Unlock()

	log := Logger()
	log.Debug("dispatch", "action", a.String(), "history", len(next.Done))
	if next.DoneAt.After(prev.DoneAt) {
		log.Debug("undo step recorded", "depth", len(next.Done))
	}
	if deliver {
		s.deliver()
	}
}

// deliver drains the pending queue until it is empty.
func (s *Store) deliver() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.pending = nil
			s.delivering = false
			s.mu.Unlock()
			return
		}
		st := s.pending[0]
		s.pending = s.pending[1:]
		subs := make([]subscriber, len(s.subs))
		copy(subs, s.subs)
		s.mu.Unlock()

		for _, sub := range subs {
			sub.fn(st)
		}
	}
}

// Subscribe registers fn to receive every new state. The returned function
// removes it.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

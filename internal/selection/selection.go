// Package selection tracks which timeline event is currently active.
//
// At most one event is active. Observers are notified only when the active
// event actually changes.
package selection

import "sync"

// Observer receives the previous and new active ids; "" means none.
type Observer func(prev, next string)

// State is a single-selection model with change subscriptions.
type State struct {
	mu        sync.Mutex
	active    string
	nextID    int
	observers map[int]Observer
}

// New returns a State with nothing active.
func New() *State {
	return &State{observers: make(map[int]Observer)}
}

// Active returns the active id and whether one is set.
func (s *State) Active() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.active != ""
}

// Enter makes id the active event, as a pointer entering its card or
// marker would.
func (s *State) Enter(id string) {
	s.set(id)
}

// Leave clears the selection, as the pointer leaving the region would.
func (s *State) Leave() {
	s.set("")
}

// Subscribe registers fn and returns a function that removes it.
func (s *State) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

func (s *State) set(id string) {
	s.mu.Lock()
	prev := s.active
	if prev == id {
		s.mu.Unlock()
		return
	}
	s.active = id
	observers := make([]Observer, 0, len(s.observers))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.observers[i]; ok {
			observers = append(observers, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(prev, id)
	}
}

package access

import (
	"errors"
	"sync"
)

// ErrInFlight is returned when a mutation targets an id that already has one outstanding
var ErrInFlight = errors.New("a request for this item is already in progress")

// InFlight tracks which entity ids have a mutation outstanding
type InFlight struct {
	mu  sync.Mutex
	ids map[string]string
}

// NewInFlight creates an empty marker set
func NewInFlight() *InFlight {
	return &InFlight{ids: make(map[string]string)}
}

// Acquire marks id busy with action; it fails when id is already busy
func (f *InFlight) Acquire(id, action string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, busy := f.ids[id]; busy {
		return false
	}
	f.ids[id] = action
	return true
}

// Release clears the marker for id
func (f *InFlight) Release(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.ids, id)
}

// Action returns the outstanding action for id, if any
func (f *InFlight) Action(id string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	action, ok := f.ids[id]
	return action, ok
}

// Busy reports whether id has a mutation outstanding
func (f *InFlight) Busy(id string) bool {
	_, ok := f.Action(id)
	return ok
}

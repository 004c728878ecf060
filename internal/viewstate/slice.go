// Package viewstate holds per-screen view state: request-tagged data slices,
// pagination, and display-only derivations over backend snapshots.
package viewstate

import "sync"

// Ticket identifies one fetch of a Slice
type Ticket uint64

// Slice is the loading/error/data triple for one piece of a screen. Only the
// result of the most recently issued ticket is applied.
type Slice[T any] struct {
	mu      sync.Mutex
	latest  Ticket
	loading bool
	data    T
	err     error
	loaded  bool
}

// Begin marks the slice loading and returns the ticket for the new fetch
func (s *Slice[T]) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	s.loading = true
	return s.latest
}

// Apply stores a result if ticket is still the newest; it reports whether it did
func (s *Slice[T]) Apply(ticket Ticket, data T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.latest {
		return false
	}
	s.loading = false
	s.err = err
	if err == nil {
		s.data = data
		s.loaded = true
	}
	return true
}

// Reset drops data and invalidates outstanding tickets
func (s *Slice[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.latest++
	s.loading = false
	s.data = zero
	s.err = nil
	s.loaded = false
}

// View is a consistent read of a Slice
type View[T any] struct {
	Loading bool
	Loaded  bool
	Data    T
	Err     error
}

func (s *Slice[T]) View() View[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View[T]{Loading: s.loading, Loaded: s.loaded, Data: s.data, Err: s.err}
}

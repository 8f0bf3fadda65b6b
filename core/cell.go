package core

// accessKind tags a shared-state access for the trace hook
type accessKind uint8

const (
	accessRead accessKind = iota
	accessWrite
)

// traceAccess observes every access to interrupt-shared state.
// Nil in production; tests install a recorder.
var traceAccess func(kind accessKind)

func trace(kind accessKind) {
	if traceAccess != nil {
		traceAccess(kind)
	}
}

// Cell holds a value shared between the interrupt handler and the main loop.
// Every access needs the critical-section token.
type Cell[T any] struct {
	value T
}

// Get returns a copy of the value
func (c *Cell[T]) Get(cs CriticalSection) T {
	trace(accessRead)
	return c.value
}

// Set replaces the value
func (c *Cell[T]) Set(cs CriticalSection, v T) {
	trace(accessWrite)
	c.value = v
}

// Slot is long-lived storage for a resource handed over from bootstrap to
// interrupt context. It starts empty.
type Slot[T any] struct {
	value T
	full  bool
}

// Put moves v into the slot, replacing any previous value
func (s *Slot[T]) Put(cs CriticalSection, v T) {
	trace(accessWrite)
	s.value = v
	s.full = true
}

// Borrow returns the stored value and whether the slot is full
func (s *Slot[T]) Borrow(cs CriticalSection) (T, bool) {
	trace(accessRead)
	return s.value, s.full
}

// Take empties the slot and returns what it held
func (s *Slot[T]) Take(cs CriticalSection) (T, bool) {
	trace(accessWrite)
	v, ok := s.value, s.full
	var zero T
	s.value = zero
	s.full = false
	return v, ok
}

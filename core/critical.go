package core

// CriticalSection is the proof that interrupt delivery is masked. It is only
// handed out by WithCriticalSection and must not outlive the closure it was
// passed to.
type CriticalSection struct {
	_ [0]func()
}

// Gate masks and unmasks interrupt delivery.
// Enter returns the previous state, Exit restores it.
type Gate interface {
	Enter() State
	Exit(state State)
}

// InterruptGate is the platform gate: on TinyGo it disables interrupts,
// on regular Go it serialises with the simulated interrupt source.
type InterruptGate struct{}

// Enter masks interrupts and returns the previous mask
func (InterruptGate) Enter() State {
	return disableInterrupts()
}

// Exit restores the mask saved by Enter
func (InterruptGate) Exit(state State) {
	restoreInterrupts(state)
}

// Interrupts is the gate used by the firmware and the interrupt handler.
var Interrupts Gate = InterruptGate{}

// WithCriticalSection runs fn with interrupts masked and returns its result.
// The previous mask is restored even if fn panics.
//
// The body must be short: an interrupt that becomes pending while it runs is
// delayed until it returns.
func WithCriticalSection[R any](g Gate, fn func(cs CriticalSection) R) R {
	state := g.Enter()
	defer g.Exit(state)
	return fn(CriticalSection{})
}

// Free runs fn inside a critical section without a result.
func Free(g Gate, fn func(cs CriticalSection)) {
	state := g.Enter()
	defer g.Exit(state)
	fn(CriticalSection{})
}

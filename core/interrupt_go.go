//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// interruptMu stands in for the interrupt mask on regular Go. The simulated
// interrupt source (a goroutine) takes it too, so holding it excludes the
// handler just like a masked IRQ line would.
var interruptMu sync.Mutex

// disableInterrupts blocks simulated interrupt delivery. Not reentrant.
func disableInterrupts() State {
	interruptMu.Lock()
	return 0
}

// restoreInterrupts re-enables simulated interrupt delivery
func restoreInterrupts(state State) {
	interruptMu.Unlock()
}

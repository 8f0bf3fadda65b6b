package core

// Counter is the byte counter incremented by the timer interrupt and read by
// the main loop. It wraps from 255 to 0.
type Counter struct {
	cell Cell[uint8]
}

// Ticks is the process-wide counter driven by the tick timer.
var Ticks Counter

// Increment adds one, wrapping at 256
func (c *Counter) Increment(cs CriticalSection) {
	c.cell.Set(cs, c.cell.Get(cs)+1)
}

// Read returns the current value
func (c *Counter) Read(cs CriticalSection) uint8 {
	return c.cell.Get(cs)
}

// Reset sets the value back to zero
func (c *Counter) Reset(cs CriticalSection) {
	c.cell.Set(cs, 0)
}

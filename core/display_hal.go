package core

// DisplaySink is the abstract text display that the main loop writes to.
// Platform-specific implementations handle the actual controller.
type DisplaySink interface {
	// Init brings the controller up. A failure here is fatal.
	Init() error

	// Clear blanks the screen and homes the cursor
	Clear() error

	// WriteText writes s at the cursor and pushes it to the screen
	WriteText(s string) error
}

// Delayer blocks the calling context for a number of milliseconds.
// Interrupts stay enabled while it waits.
type Delayer interface {
	DelayMs(ms uint16)
}

// DelayFunc adapts a plain function to Delayer
type DelayFunc func(ms uint16)

// DelayMs calls f(ms)
func (f DelayFunc) DelayMs(ms uint16) {
	f(ms)
}

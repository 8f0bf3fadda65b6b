//go:build rp2040

package main

// TickSource selects the peripheral that raises the tick interrupt
type TickSource uint8

const (
	// TickAlarm uses TIMER alarm 3 (TIMER_IRQ_3)
	TickAlarm TickSource = iota
	// TickPIO uses a PIO0 state machine raising IRQ flag 0 (PIO0_IRQ_0)
	TickPIO
)

// ModeConfig determines how the board is brought up
type ModeConfig struct {
	Tick TickSource

	// DebugUART routes debug output to UART0 (GP0/GP1). USB carries
	// telemetry frames only.
	DebugUART bool
}

// GetMode returns the current mode configuration.
// Change it here to build the PIO tick variant.
func GetMode() ModeConfig {
	return ModeConfig{
		Tick:      TickAlarm,
		DebugUART: true,
	}
}

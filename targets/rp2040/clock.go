//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// GetHardwareTime reads the low 32 bits of the 1 MHz microsecond counter
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// busyDelay waits by polling the microsecond counter. Interrupts stay
// enabled, so the tick handler keeps running while the main loop sleeps.
type busyDelay struct{}

// DelayMs spins for ms milliseconds
func (busyDelay) DelayMs(ms uint16) {
	start := GetHardwareTime()
	wait := uint32(ms) * 1000
	for GetHardwareTime()-start < wait {
	}
}

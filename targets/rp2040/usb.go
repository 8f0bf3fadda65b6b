//go:build rp2040

package main

import (
	"machine"
)

// InitUSB configures machine.Serial, which is USB CDC on the Pico
func InitUSB() {
	machine.Serial.Configure(machine.UARTConfig{})
}

// usbWriter carries telemetry frames to the host
type usbWriter struct{}

func (usbWriter) Write(data []byte) (int, error) {
	return machine.Serial.Write(data)
}

// InitDebugUART sets up UART0 on GP0 (TX) and GP1 (RX) at 115200 baud and
// returns a core.DebugWriter for it, or nil if the UART would not configure.
func InitDebugUART() func(string) {
	uart := machine.UART0
	err := uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	if err != nil {
		return nil
	}
	return func(s string) {
		uart.Write([]byte(s))
		uart.Write([]byte("\r\n"))
	}
}

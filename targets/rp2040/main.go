//go:build rp2040

package main

import (
	"time"

	"tickcount/core"
	"tickcount/protocol"
)

func main() {
	InitUSB()

	mode := GetMode()
	if mode.DebugUART {
		if w := InitDebugUART(); w != nil {
			core.SetDebugWriter(w)
		}
	}
	core.DebugPrintln("tickcount " + protocol.Version)

	cfg := core.DefaultConfig()
	res, err := core.Bootstrap(core.Interrupts, newPicoBoard(mode), cfg)
	if err != nil {
		halt(err)
	}

	telemetry := core.NewTelemetry(usbWriter{})
	telemetry.PublishBoot(protocol.Version)

	driver := core.NewDriver(core.Interrupts, &core.Ticks, res, cfg)
	driver.AttachTelemetry(telemetry)
	driver.Run()
}

// halt stops after a fatal bring-up error. The event ring is dumped so the
// failing stage shows on the debug UART.
func halt(err error) {
	core.DebugPrintln("[BOOT] fatal: " + err.Error())
	core.DumpEvents()
	for {
		time.Sleep(time.Second)
	}
}

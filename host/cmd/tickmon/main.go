package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tickcount/host/monitor"
	"tickcount/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	verbose = flag.Bool("verbose", false, "Print every counter_state frame")
)

func main() {
	flag.Parse()

	fmt.Println("tickmon - counter display telemetry monitor")
	fmt.Println("===========================================")

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Opening %s...\n", *device)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var last monitor.Event
	mon := monitor.New(port, func(evt monitor.Event, err error) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return
		}
		switch evt.Kind {
		case monitor.EventCounterState:
			// Quiet mode only shows changes
			if *verbose || evt.Value != last.Value || evt.Faults != last.Faults {
				fmt.Printf("[%02d] %s\n", evt.Sequence, evt)
			}
			last = evt
		default:
			fmt.Printf("[%02d] %s\n", evt.Sequence, evt)
		}
	})
	mon.Follow = true

	err = mon.Run(ctx)

	fmt.Printf("\n%d frames, %d dropped, %d iterations missed\n", mon.Frames(), mon.Dropped(), mon.Missed())
	if err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

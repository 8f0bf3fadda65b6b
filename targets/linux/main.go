//go:build !tinygo

package main

import (
	"flag"
	"io"
	"log"
	"os"

	"tickcount/config"
	"tickcount/core"
	"tickcount/protocol"
)

var (
	i2cBus     = flag.String("i2c", "", "I2C bus name (empty for the first bus)")
	configPath = flag.String("config", "", "JSON configuration file")
	telemPath  = flag.String("telemetry", "", "Write telemetry frames to this file or FIFO")
	quiet      = flag.Bool("quiet", false, "Disable debug output")
)

func main() {
	flag.Parse()

	core.SetDebugWriter(func(s string) { log.Println(s) })
	core.SetDebugEnabled(!*quiet)

	cfg := core.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = loaded
	}

	board := &linuxBoard{busName: *i2cBus}
	res, err := core.Bootstrap(core.Interrupts, board, cfg)
	if err != nil {
		core.DumpEvents()
		board.Close()
		log.Fatalf("Bootstrap failed: %v", err)
	}
	defer board.Close()

	driver := core.NewDriver(core.Interrupts, &core.Ticks, res, cfg)

	if *telemPath != "" {
		out, err := openTelemetry(*telemPath)
		if err != nil {
			log.Fatalf("Failed to open telemetry output: %v", err)
		}
		defer out.Close()

		telemetry := core.NewTelemetry(out)
		telemetry.PublishBoot(protocol.Version)
		driver.AttachTelemetry(telemetry)
	}

	log.Printf("tickcount %s: %d Hz tick, %d ms refresh", protocol.Version, cfg.TickHz, cfg.RefreshMs)
	driver.Run()
}

func openTelemetry(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
}

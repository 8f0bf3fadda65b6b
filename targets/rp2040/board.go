//go:build rp2040

package main

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers"

	"tickcount/core"
	"tickcount/display"
)

var errClockFixed = errors.New("system clock is fixed at the TinyGo default")

// picoBoard brings up a Raspberry Pi Pico with the OLED on I2C0
// (SDA=GP4, SCL=GP5).
type picoBoard struct {
	mode ModeConfig
}

func newPicoBoard(mode ModeConfig) *picoBoard {
	return &picoBoard{mode: mode}
}

func (b *picoBoard) ConfigureClock(hz uint32) error {
	if hz != 0 && hz != machine.CPUFrequency() {
		return errClockFixed
	}
	return nil
}

func (b *picoBoard) ConfigureBus(hz uint32) (drivers.I2C, error) {
	bus := machine.I2C0
	err := bus.Configure(machine.I2CConfig{
		Frequency: hz,
		SDA:       machine.GP4,
		SCL:       machine.GP5,
	})
	if err != nil {
		return nil, err
	}
	return bus, nil
}

func (b *picoBoard) NewDelay() core.Delayer {
	return busyDelay{}
}

func (b *picoBoard) NewTimer() core.TimerHardware {
	if b.mode.Tick == TickPIO {
		return newPIOTimer()
	}
	return newAlarmTimer()
}

func (b *picoBoard) NewDisplay(bus drivers.I2C, cfg *core.Config) core.DisplaySink {
	dcfg := display.Config{
		Width:   cfg.DisplayWidth,
		Height:  cfg.DisplayHeight,
		Address: cfg.DisplayAddress,
	}
	return display.NewTerminal(display.NewPanel(bus, dcfg), dcfg)
}

//go:build !tinygo

package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"tickcount/core"
	"tickcount/display"
)

// linuxBoard runs the counter display on a single-board computer: the OLED
// sits on a Linux I2C adapter and the tick comes from a ticker goroutine.
type linuxBoard struct {
	busName string
	bus     i2c.BusCloser
}

func (b *linuxBoard) ConfigureClock(hz uint32) error {
	if hz != 0 {
		return fmt.Errorf("sys_clock_hz=%d: the host clock cannot be changed", hz)
	}
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("initialize periph.io: %w", err)
	}
	return nil
}

func (b *linuxBoard) ConfigureBus(hz uint32) (drivers.I2C, error) {
	bus, err := i2creg.Open(b.busName)
	if err != nil {
		return nil, fmt.Errorf("open I2C bus %q: %w", b.busName, err)
	}
	if err := bus.SetSpeed(physic.Frequency(hz) * physic.Hertz); err != nil {
		// Many adapters fix the clock in the device tree
		core.DebugPrintln("[BOOT] bus speed left at adapter default: " + err.Error())
	}
	b.bus = bus
	return bus, nil
}

func (b *linuxBoard) NewDelay() core.Delayer {
	return core.DelayFunc(func(ms uint16) {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	})
}

func (b *linuxBoard) NewTimer() core.TimerHardware {
	return &tickerTimer{}
}

// NewDisplay expects the periph.io bus returned by ConfigureBus. Any other
// bus leaves the panel without one and Init fails.
func (b *linuxBoard) NewDisplay(bus drivers.I2C, cfg *core.Config) core.DisplaySink {
	dcfg := display.Config{
		Width:   cfg.DisplayWidth,
		Height:  cfg.DisplayHeight,
		Address: cfg.DisplayAddress,
	}
	pbus, _ := bus.(i2c.Bus)
	return display.NewTerminal(display.NewPanel(pbus, dcfg), dcfg)
}

// Close releases the I2C adapter
func (b *linuxBoard) Close() error {
	if b.bus == nil {
		return nil
	}
	return b.bus.Close()
}

// tickerTimer stands in for a timer peripheral. A goroutine raises the
// pending flag every period and, while unmasked, runs the interrupt handler;
// the handler serialises with the main loop through core.Interrupts.
type tickerTimer struct {
	period   time.Duration
	pending  atomic.Bool
	unmasked atomic.Bool
	ticker   *time.Ticker
	stop     chan struct{}
	done     chan struct{}
}

func (t *tickerTimer) SetFrequency(hz uint32) error {
	if hz == 0 || time.Second/time.Duration(hz) < time.Millisecond {
		return core.ErrInvalidFrequency
	}
	t.period = time.Second / time.Duration(hz)
	return nil
}

func (t *tickerTimer) Listen() {
	if t.ticker != nil {
		return
	}
	t.ticker = time.NewTicker(t.period)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.run(t.ticker, t.stop, t.done)
}

func (t *tickerTimer) run(ticker *time.Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.pending.Store(true)
			if t.unmasked.Load() {
				core.HandleTimerInterrupt(core.Interrupts)
			}
		}
	}
}

// SetPriority has no meaning with a single simulated interrupt
func (t *tickerTimer) SetPriority(priority uint8) {}

func (t *tickerTimer) Unmask() {
	t.unmasked.Store(true)
}

func (t *tickerTimer) Unpend() {
	t.pending.Store(false)
}

// Mask stops the ticker goroutine. It is called with core.Interrupts held,
// so it does not wait for a handler that may be blocked on the gate.
func (t *tickerTimer) Mask() {
	t.unmasked.Store(false)
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	close(t.stop)
	t.ticker = nil
}

func (t *tickerTimer) Acknowledge() {
	t.pending.Store(false)
}

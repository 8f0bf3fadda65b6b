package core

import "tinygo.org/x/drivers"

// Singleton is a peripheral set that can be claimed exactly once
type Singleton struct {
	name  string
	taken bool
}

// Peripheral sets claimed by Bootstrap
var (
	CorePeripherals   = Singleton{name: "core"}
	DevicePeripherals = Singleton{name: "device"}
)

// Take claims the set. A second claim is ErrPeripheralsTaken.
func (s *Singleton) Take(cs CriticalSection) error {
	if s.taken {
		return ErrPeripheralsTaken
	}
	s.taken = true
	return nil
}

// Board is the per-target hardware needed to bring the counter display up.
type Board interface {
	// ConfigureClock sets the system clock. Zero keeps the board default.
	ConfigureClock(hz uint32) error

	// ConfigureBus claims the SCL and SDA pins in their I2C function and
	// returns the bus running at hz.
	ConfigureBus(hz uint32) (drivers.I2C, error)

	// NewDelay returns the blocking delay provider
	NewDelay() Delayer

	// NewTimer returns the timer channel used for the tick interrupt
	NewTimer() TimerHardware

	// NewDisplay returns the display on bus, not yet initialised
	NewDisplay(bus drivers.I2C, cfg *Config) DisplaySink
}

// Resources are the handles Bootstrap hands to the main loop
type Resources struct {
	Display DisplaySink
	Delay   Delayer
	Timer   *PeriodicTimer
}

// Bootstrap stages, recorded in the event ring
const (
	StageTake = iota + 1
	StageClock
	StageBus
	StageDelay
	StageTimer
	StageArm
	StageDisplay
	StageStore
)

// Bootstrap brings the hardware up inside one critical section so the tick
// interrupt cannot fire before the timer is stored. Every error is fatal.
func Bootstrap(g Gate, board Board, cfg *Config) (*Resources, error) {
	type result struct {
		res *Resources
		err error
	}
	r := WithCriticalSection(g, func(cs CriticalSection) result {
		res, err := bootstrap(cs, board, cfg)
		return result{res, err}
	})
	return r.res, r.err
}

func bootstrap(cs CriticalSection, board Board, cfg *Config) (*Resources, error) {
	stage := StageTake
	var timer *PeriodicTimer
	fail := func(err error) (*Resources, error) {
		if timer != nil && timer.State(cs) == TimerArmed {
			timer.Disarm(cs)
		}
		RecordEvent(EvtBootFailed, uint32(stage), 0)
		DebugPrintln("[BOOT] stage " + utoa(uint32(stage)) + " failed: " + err.Error())
		return nil, err
	}
	done := func() {
		RecordEvent(EvtBootStage, uint32(stage), 0)
		stage++
	}

	if err := CorePeripherals.Take(cs); err != nil {
		return fail(err)
	}
	if err := DevicePeripherals.Take(cs); err != nil {
		return fail(err)
	}
	done()

	if err := board.ConfigureClock(cfg.SysClockHz); err != nil {
		return fail(err)
	}
	done()

	bus, err := board.ConfigureBus(cfg.BusHz)
	if err != nil {
		return fail(err)
	}
	if bus == nil {
		return fail(ErrBusUnavailable)
	}
	done()

	delay := board.NewDelay()
	done()

	timer = NewPeriodicTimer(board.NewTimer())
	if err := timer.Configure(cfg.TickHz); err != nil {
		return fail(err)
	}
	done()

	if err := timer.Arm(cs, cfg.TimerPriority); err != nil {
		return fail(err)
	}
	done()

	display := board.NewDisplay(bus, cfg)
	if err := display.Init(); err != nil {
		return fail(wrap(ErrDisplayInit, err))
	}
	if err := display.Clear(); err != nil {
		return fail(wrap(ErrDisplayInit, err))
	}
	done()

	TimerStorage.Put(cs, timer)
	done()

	DebugPrintln("[BOOT] ready, tick " + utoa(timer.Frequency()) + " Hz")
	return &Resources{Display: display, Delay: delay, Timer: timer}, nil
}

package core

// TimerState tracks the tick timer through its lifecycle
type TimerState uint8

const (
	TimerUnconfigured TimerState = iota
	TimerConfigured              // frequency set, interrupt not enabled
	TimerArmed                   // interrupt listening and unmasked
	TimerFiring                  // handler running
)

func (s TimerState) String() string {
	switch s {
	case TimerUnconfigured:
		return "unconfigured"
	case TimerConfigured:
		return "configured"
	case TimerArmed:
		return "armed"
	case TimerFiring:
		return "firing"
	default:
		return "unknown"
	}
}

// TimerHardware is the abstract periodic timer that core code drives.
// Platform-specific implementations program the actual peripheral.
type TimerHardware interface {
	// SetFrequency programs the period. Returns error if the rate is
	// out of the peripheral's range.
	SetFrequency(hz uint32) error

	// Listen enables the timeout event at the peripheral
	Listen()

	// SetPriority sets the priority at the interrupt controller
	SetPriority(priority uint8)

	// Unmask enables the interrupt line at the interrupt controller
	Unmask()

	// Unpend clears a stale pending request at the interrupt controller
	Unpend()

	// Mask disables the timeout event and the interrupt line. It undoes
	// Listen and Unmask.
	Mask()

	// Acknowledge clears the peripheral's pending timeout event. The
	// handler must call it first or the interrupt fires again on return.
	Acknowledge()
}

// PeriodicTimer owns one hardware timer channel and drives the counter from
// its interrupt.
type PeriodicTimer struct {
	hw       TimerHardware
	state    TimerState
	hz       uint32
	fired    uint32
	spurious uint32
}

// TimerStorage holds the armed timer after bootstrap so the interrupt
// handler can reach it.
var TimerStorage Slot[*PeriodicTimer]

// NewPeriodicTimer wraps a hardware timer in the unconfigured state
func NewPeriodicTimer(hw TimerHardware) *PeriodicTimer {
	return &PeriodicTimer{hw: hw}
}

// Configure sets the tick frequency. Only valid once, before arming.
func (t *PeriodicTimer) Configure(hz uint32) error {
	if t.state != TimerUnconfigured {
		return ErrTimerState
	}
	if hz == 0 {
		return ErrInvalidFrequency
	}
	if err := t.hw.SetFrequency(hz); err != nil {
		return err
	}
	t.hz = hz
	t.state = TimerConfigured
	return nil
}

// Arm enables the timeout interrupt, sets its priority, unmasks it and
// clears anything left pending from before.
func (t *PeriodicTimer) Arm(cs CriticalSection, priority uint8) error {
	if t.state != TimerConfigured {
		return ErrTimerState
	}
	t.hw.Listen()
	t.hw.SetPriority(priority)
	t.hw.Unmask()
	t.hw.Unpend()
	t.state = TimerArmed
	return nil
}

// Disarm masks the interrupt and drops anything pending, returning the
// timer to the configured state. A timer that is not in storage must be
// disarmed: the handler cannot acknowledge it.
func (t *PeriodicTimer) Disarm(cs CriticalSection) error {
	if t.state != TimerArmed {
		return ErrTimerState
	}
	t.hw.Mask()
	t.hw.Acknowledge()
	t.hw.Unpend()
	t.state = TimerConfigured
	return nil
}

// Fire is the handler body: acknowledge the event, then count it.
// A fire outside the armed state is acknowledged but not counted.
func (t *PeriodicTimer) Fire(cs CriticalSection, counter *Counter) {
	if t.state != TimerArmed {
		t.hw.Acknowledge()
		t.spurious++
		return
	}
	t.state = TimerFiring
	t.hw.Acknowledge()
	counter.Increment(cs)
	t.fired++
	t.state = TimerArmed
}

// State returns the current lifecycle state
func (t *PeriodicTimer) State(cs CriticalSection) TimerState {
	return t.state
}

// Frequency returns the configured tick rate in Hz
func (t *PeriodicTimer) Frequency() uint32 {
	return t.hz
}

// Fired returns the number of counted interrupts
func (t *PeriodicTimer) Fired(cs CriticalSection) uint32 {
	return t.fired
}

// Spurious returns the number of interrupts taken while not armed
func (t *PeriodicTimer) Spurious(cs CriticalSection) uint32 {
	return t.spurious
}

// HandleTimerInterrupt is the registered interrupt handler body. It borrows
// the stored timer and fires it against Ticks, nothing more.
func HandleTimerInterrupt(g Gate) {
	Free(g, func(cs CriticalSection) {
		if t, ok := TimerStorage.Borrow(cs); ok {
			t.Fire(cs, &Ticks)
		}
	})
}

// TimerPeriodUS converts a tick rate to a period in microseconds
func TimerPeriodUS(hz uint32) uint32 {
	if hz == 0 {
		return 0
	}
	return 1000000 / hz
}

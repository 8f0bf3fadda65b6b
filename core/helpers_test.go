package core

import (
	"errors"
	"testing"

	"tinygo.org/x/drivers"
)

// recordingGate counts Enter/Exit pairs and tracks nesting depth
type recordingGate struct {
	depth  int
	enters int
	exits  int
}

func (g *recordingGate) Enter() State {
	g.depth++
	g.enters++
	return State(g.depth - 1)
}

func (g *recordingGate) Exit(state State) {
	g.exits++
	g.depth = int(state)
}

// traceUnguarded installs an access hook that reports every shared-state
// access made while gate is not entered.
func traceUnguarded(t *testing.T, gate *recordingGate) *int {
	t.Helper()
	unguarded := new(int)
	traceAccess = func(kind accessKind) {
		if gate.depth == 0 {
			*unguarded++
		}
	}
	t.Cleanup(func() { traceAccess = nil })
	return unguarded
}

// resetGlobals puts the process-wide state back to power-on
func resetGlobals(t *testing.T) {
	t.Helper()
	Free(Interrupts, func(cs CriticalSection) {
		TimerStorage.Take(cs)
		Ticks.Reset(cs)
	})
	CorePeripherals.taken = false
	DevicePeripherals.taken = false
	ClearEvents()
}

var errMock = errors.New("mock failure")

// mockTimer records calls made to the timer backend
type mockTimer struct {
	calls   []string
	hz      uint32
	freqErr error
	acks    int
}

func (m *mockTimer) SetFrequency(hz uint32) error {
	m.calls = append(m.calls, "set_frequency")
	if m.freqErr != nil {
		return m.freqErr
	}
	m.hz = hz
	return nil
}

func (m *mockTimer) Listen()                    { m.calls = append(m.calls, "listen") }
func (m *mockTimer) SetPriority(priority uint8) { m.calls = append(m.calls, "set_priority") }
func (m *mockTimer) Unmask()                    { m.calls = append(m.calls, "unmask") }
func (m *mockTimer) Unpend()                    { m.calls = append(m.calls, "unpend") }
func (m *mockTimer) Mask()                      { m.calls = append(m.calls, "mask") }

func (m *mockTimer) Acknowledge() {
	m.calls = append(m.calls, "acknowledge")
	m.acks++
}

// mockDisplay records writes. failures < 0 fails every write.
type mockDisplay struct {
	writes   []string
	attempts int
	failures int
	initErr  error
	clearErr error
	calls    *[]string
}

func (m *mockDisplay) record(call string) {
	if m.calls != nil {
		*m.calls = append(*m.calls, call)
	}
}

func (m *mockDisplay) Init() error {
	m.record("display_init")
	return m.initErr
}

func (m *mockDisplay) Clear() error {
	m.record("display_clear")
	return m.clearErr
}

func (m *mockDisplay) WriteText(s string) error {
	m.attempts++
	if m.failures != 0 {
		if m.failures > 0 {
			m.failures--
		}
		return errMock
	}
	m.writes = append(m.writes, s)
	return nil
}

// mockDelay records requested sleeps and can run a hook in their place
type mockDelay struct {
	sleeps []uint16
	onWait func()
}

func (m *mockDelay) DelayMs(ms uint16) {
	m.sleeps = append(m.sleeps, ms)
	if m.onWait != nil {
		m.onWait()
	}
}

// mockBus is a drivers.I2C that accepts everything
type mockBus struct{}

func (mockBus) Tx(addr uint16, w, r []byte) error { return nil }

// mockBoard records the bring-up order
type mockBoard struct {
	calls    []string
	clockErr error
	busErr   error
	nilBus   bool
	timer    *mockTimer
	display  *mockDisplay
}

func newMockBoard() *mockBoard {
	b := &mockBoard{timer: &mockTimer{}}
	b.display = &mockDisplay{calls: &b.calls}
	return b
}

func (b *mockBoard) ConfigureClock(hz uint32) error {
	b.calls = append(b.calls, "clock")
	return b.clockErr
}

func (b *mockBoard) ConfigureBus(hz uint32) (drivers.I2C, error) {
	b.calls = append(b.calls, "bus")
	if b.busErr != nil {
		return nil, b.busErr
	}
	if b.nilBus {
		return nil, nil
	}
	return mockBus{}, nil
}

func (b *mockBoard) NewDelay() Delayer {
	b.calls = append(b.calls, "delay")
	return &mockDelay{}
}

func (b *mockBoard) NewTimer() TimerHardware {
	b.calls = append(b.calls, "timer")
	return b.timer
}

func (b *mockBoard) NewDisplay(bus drivers.I2C, cfg *Config) DisplaySink {
	b.calls = append(b.calls, "display")
	return b.display
}

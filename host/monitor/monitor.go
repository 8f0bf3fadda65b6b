// Package monitor decodes the firmware telemetry stream into events.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tickcount/protocol"
)

var (
	ErrUnknownMessage = errors.New("unknown message id")
	ErrMalformed      = errors.New("malformed message")
)

// EventKind identifies the decoded message
type EventKind int

const (
	EventBoot EventKind = iota
	EventCounterState
	EventDisplayFault
)

func (k EventKind) String() string {
	switch k {
	case EventBoot:
		return "boot"
	case EventCounterState:
		return "counter_state"
	case EventDisplayFault:
		return "display_fault"
	default:
		return "unknown"
	}
}

// Event is one decoded telemetry message. Only the fields of its kind are set.
type Event struct {
	Kind     EventKind
	Sequence uint8

	Version string // boot

	Value     uint8  // counter_state
	Iteration uint32 // counter_state
	Faults    uint32 // counter_state, display_fault
	Error     string // display_fault
}

func (e Event) String() string {
	switch e.Kind {
	case EventBoot:
		return fmt.Sprintf("boot version=%s", e.Version)
	case EventCounterState:
		return fmt.Sprintf("counter_state value=%d faults=%d iteration=%d", e.Value, e.Faults, e.Iteration)
	case EventDisplayFault:
		return fmt.Sprintf("display_fault faults=%d error=%q", e.Faults, e.Error)
	default:
		return e.Kind.String()
	}
}

// Handler receives each event, or the error that kept a frame from decoding
type Handler func(evt Event, err error)

// Decode turns one frame into an event
func Decode(frame protocol.Frame) (Event, error) {
	data := frame.Payload
	evt := Event{Sequence: frame.Sequence}

	id, err := protocol.DecodeVLQUint(&data)
	if err != nil {
		return evt, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch id {
	case protocol.MsgBoot:
		evt.Kind = EventBoot
		evt.Version, err = protocol.DecodeVLQString(&data)
	case protocol.MsgCounterState:
		evt.Kind = EventCounterState
		var value uint32
		value, err = protocol.DecodeVLQUint(&data)
		evt.Value = uint8(value)
		if err == nil {
			evt.Faults, err = protocol.DecodeVLQUint(&data)
		}
		if err == nil {
			evt.Iteration, err = protocol.DecodeVLQUint(&data)
		}
	case protocol.MsgDisplayFault:
		evt.Kind = EventDisplayFault
		evt.Faults, err = protocol.DecodeVLQUint(&data)
		if err == nil {
			evt.Error, err = protocol.DecodeVLQString(&data)
		}
	default:
		return evt, fmt.Errorf("%w: %d", ErrUnknownMessage, id)
	}

	if err != nil {
		return evt, fmt.Errorf("%w: %s: %v", ErrMalformed, evt.Kind, err)
	}
	return evt, nil
}

// Monitor reads a telemetry stream and reports decoded events
type Monitor struct {
	// Follow keeps reading after io.EOF, for serial ports whose read
	// timeout surfaces as EOF.
	Follow bool

	r       io.Reader
	dec     *protocol.FrameDecoder
	handler Handler

	frames        uint64
	missed        uint64
	lastIteration uint32
	seenIteration bool
}

// New returns a monitor reading r and calling handler for each frame
func New(r io.Reader, handler Handler) *Monitor {
	return &Monitor{
		r:       r,
		dec:     protocol.NewFrameDecoder(),
		handler: handler,
	}
}

// Run reads until the context is cancelled, the reader fails, or (without
// Follow) the stream ends.
func (m *Monitor) Run(ctx context.Context) error {
	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := m.r.Read(buf)
		if n > 0 {
			m.Feed(buf[:n])
		}
		if err == io.EOF {
			if m.Follow {
				continue
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("read telemetry: %w", err)
		}
	}
}

// Feed decodes data and dispatches every frame it completes
func (m *Monitor) Feed(data []byte) {
	for _, frame := range m.dec.Feed(data) {
		m.frames++
		evt, err := Decode(frame)
		if err == nil && evt.Kind == EventCounterState {
			m.track(evt.Iteration)
		}
		if evt.Kind == EventBoot && err == nil {
			m.seenIteration = false
		}
		if m.handler != nil {
			m.handler(evt, err)
		}
	}
}

func (m *Monitor) track(iteration uint32) {
	if m.seenIteration && iteration > m.lastIteration+1 {
		m.missed += uint64(iteration - m.lastIteration - 1)
	}
	m.lastIteration = iteration
	m.seenIteration = true
}

// Frames returns the number of valid frames received
func (m *Monitor) Frames() uint64 {
	return m.frames
}

// Dropped returns the number of malformed frames skipped
func (m *Monitor) Dropped() uint32 {
	return m.dec.Dropped()
}

// Missed returns the number of counter_state iterations never received
func (m *Monitor) Missed() uint64 {
	return m.missed
}

package core

import (
	"io"

	"tickcount/protocol"
)

// Telemetry publishes framed status messages on a byte stream (USB CDC on
// the board, a file or pipe on Linux). A nil *Telemetry publishes nothing.
type Telemetry struct {
	w       io.Writer
	seq     uint8
	payload protocol.ScratchOutput
	frame   protocol.ScratchOutput
	sent    uint32
	dropped uint32
}

// NewTelemetry returns a publisher writing to w
func NewTelemetry(w io.Writer) *Telemetry {
	return &Telemetry{w: w}
}

// PublishBoot sends the firmware version
func (t *Telemetry) PublishBoot(version string) {
	if t == nil {
		return
	}
	t.payload.Reset()
	protocol.EncodeBoot(&t.payload, version)
	t.send()
}

// PublishCounterState sends one main loop observation
func (t *Telemetry) PublishCounterState(value uint8, faults, iteration uint32) {
	if t == nil {
		return
	}
	t.payload.Reset()
	protocol.EncodeCounterState(&t.payload, value, faults, iteration)
	t.send()
}

// PublishDisplayFault reports a display write that failed after retries
func (t *Telemetry) PublishDisplayFault(faults uint32, err error) {
	if t == nil {
		return
	}
	text := ""
	if err != nil {
		text = err.Error()
	}
	t.payload.Reset()
	protocol.EncodeDisplayFault(&t.payload, faults, text)
	t.send()
}

// Sent returns the number of frames written
func (t *Telemetry) Sent() uint32 {
	if t == nil {
		return 0
	}
	return t.sent
}

// Dropped returns the number of frames that could not be written
func (t *Telemetry) Dropped() uint32 {
	if t == nil {
		return 0
	}
	return t.dropped
}

func (t *Telemetry) send() {
	if t.payload.Overflowed() {
		t.dropped++
		return
	}
	t.frame.Reset()
	if err := protocol.EncodeFrame(&t.frame, t.seq, t.payload.Result()); err != nil {
		t.dropped++
		return
	}
	t.seq = (t.seq + 1) & protocol.MessageSeqMask

	if _, err := t.w.Write(t.frame.Result()); err != nil {
		t.dropped++
		return
	}
	t.sent++
}

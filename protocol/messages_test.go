package protocol

import (
	"strings"
	"testing"
)

func TestEncodeCounterState(t *testing.T) {
	out := NewScratchOutput()
	EncodeCounterState(out, 200, 3, 1000)

	data := out.Result()
	var fields []uint32
	for len(data) > 0 {
		v, err := DecodeVLQUint(&data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		fields = append(fields, v)
	}

	expected := []uint32{MsgCounterState, 200, 3, 1000}
	if len(fields) != len(expected) {
		t.Fatalf("got %d fields, want %d", len(fields), len(expected))
	}
	for i := range expected {
		if fields[i] != expected[i] {
			t.Errorf("field %d = %d, want %d", i, fields[i], expected[i])
		}
	}
}

func TestEncodeDisplayFaultFitsFrame(t *testing.T) {
	payload := NewScratchOutput()
	EncodeDisplayFault(payload, 0xFFFFFFFF, strings.Repeat("x", 200))

	if payload.CurPosition() > MessagePayloadMax {
		t.Fatalf("payload is %d bytes, limit %d", payload.CurPosition(), MessagePayloadMax)
	}

	frame := NewScratchOutput()
	if err := EncodeFrame(frame, 0, payload.Result()); err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}

	data := payload.Result()
	id, _ := DecodeVLQUint(&data)
	faults, _ := DecodeVLQUint(&data)
	text, err := DecodeVLQString(&data)
	if err != nil {
		t.Fatalf("decode text: %v", err)
	}
	if id != MsgDisplayFault || faults != 0xFFFFFFFF {
		t.Errorf("id=%d faults=%d", id, faults)
	}
	if len(text) != MaxErrorText {
		t.Errorf("text length %d, want %d", len(text), MaxErrorText)
	}
}

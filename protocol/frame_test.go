package protocol

import (
	"bytes"
	"testing"
)

func encodeTestFrame(t *testing.T, seq uint8, payload []byte) []byte {
	t.Helper()
	out := NewScratchOutput()
	if err := EncodeFrame(out, seq, payload); err != nil {
		t.Fatalf("EncodeFrame: %v", err)
	}
	return append([]byte(nil), out.Result()...)
}

func TestEncodeFrameLayout(t *testing.T) {
	frame := encodeTestFrame(t, 0x13, []byte{0x01, 0x02})

	if len(frame) != 7 {
		t.Fatalf("expected 7 bytes, got %d", len(frame))
	}
	if frame[MessagePositionLen] != 7 {
		t.Errorf("length byte = %d, want 7", frame[MessagePositionLen])
	}
	if frame[MessagePositionSeq] != MessageDest|0x03 {
		t.Errorf("sequence byte = 0x%02X, want 0x13", frame[MessagePositionSeq])
	}
	crc := CRC16(frame[:4])
	if frame[4] != byte(crc>>8) || frame[5] != byte(crc) {
		t.Errorf("crc bytes % X, want %04X", frame[4:6], crc)
	}
	if frame[6] != MessageValueSync {
		t.Errorf("missing trailing sync byte")
	}
}

func TestEncodeFrameTooLarge(t *testing.T) {
	out := NewScratchOutput()
	if err := EncodeFrame(out, 0, make([]byte, MessagePayloadMax+1)); err != ErrPayloadTooLarge {
		t.Errorf("expected ErrPayloadTooLarge, got %v", err)
	}
	if out.CurPosition() != 0 {
		t.Error("rejected frame left bytes in the buffer")
	}

	if err := EncodeFrame(out, 0, make([]byte, MessagePayloadMax)); err != nil {
		t.Errorf("largest payload rejected: %v", err)
	}
	if out.CurPosition() != MessageLengthMax {
		t.Errorf("expected %d bytes, got %d", MessageLengthMax, out.CurPosition())
	}
}

func TestFrameDecoderSplitInput(t *testing.T) {
	stream := append(encodeTestFrame(t, 1, []byte("abc")), encodeTestFrame(t, 2, []byte{0x7E, 0x00})...)

	dec := NewFrameDecoder()
	var frames []Frame
	for _, b := range stream {
		frames = append(frames, dec.Feed([]byte{b})...)
	}

	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[0].Sequence != 1 || string(frames[0].Payload) != "abc" {
		t.Errorf("first frame = %+v", frames[0])
	}
	if frames[1].Sequence != 2 || !bytes.Equal(frames[1].Payload, []byte{0x7E, 0x00}) {
		t.Errorf("second frame = %+v", frames[1])
	}
	if dec.Dropped() != 0 {
		t.Errorf("expected no drops, got %d", dec.Dropped())
	}
}

func TestFrameDecoderResync(t *testing.T) {
	testCases := []struct {
		name    string
		prefix  []byte
		dropped uint32
	}{
		{"leading sync bytes", []byte{0x7E, 0x7E}, 0},
		{"garbage then sync", []byte{0x01, 0x02, 0x03, 0x7E}, 1},
		{"oversized length", []byte{0xFF, 0x10, 0x00, 0x00, 0x00, 0x7E}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dec := NewFrameDecoder()
			stream := append(append([]byte(nil), tc.prefix...), encodeTestFrame(t, 5, []byte{0x01})...)

			frames := dec.Feed(stream)
			if len(frames) != 1 {
				t.Fatalf("expected 1 frame, got %d", len(frames))
			}
			if frames[0].Sequence != 5 {
				t.Errorf("sequence = %d, want 5", frames[0].Sequence)
			}
			if dec.Dropped() != tc.dropped {
				t.Errorf("dropped = %d, want %d", dec.Dropped(), tc.dropped)
			}
		})
	}
}

func TestFrameDecoderRejectsBadCRC(t *testing.T) {
	bad := encodeTestFrame(t, 3, []byte{0x01, 0x02})
	bad[2] ^= 0xFF
	good := encodeTestFrame(t, 4, []byte{0x03})

	dec := NewFrameDecoder()
	frames := dec.Feed(append(bad, good...))

	if len(frames) != 1 {
		t.Fatalf("expected only the good frame, got %d", len(frames))
	}
	if frames[0].Sequence != 4 {
		t.Errorf("sequence = %d, want 4", frames[0].Sequence)
	}
	if dec.Dropped() != 1 {
		t.Errorf("dropped = %d, want 1", dec.Dropped())
	}
}

package protocol

import (
	"bytes"
	"testing"
)

func TestScratchOutput(t *testing.T) {
	scratch := NewScratchOutput()
	scratch.Output([]byte{1, 2, 3})
	scratch.Output([]byte{4, 5})

	if scratch.CurPosition() != 5 {
		t.Errorf("expected position 5, got %d", scratch.CurPosition())
	}

	if got := scratch.Result(); !bytes.Equal(got, []byte{1, 2, 3, 4, 5}) {
		t.Errorf("unexpected result % X", got)
	}
	if got := scratch.DataSince(3); !bytes.Equal(got, []byte{4, 5}) {
		t.Errorf("DataSince(3) = % X", got)
	}
	if scratch.DataSince(6) != nil {
		t.Error("DataSince past the end should be nil")
	}

	scratch.Reset()
	if scratch.CurPosition() != 0 || len(scratch.Result()) != 0 {
		t.Error("reset did not clear the buffer")
	}
}

func TestScratchOutputOverflow(t *testing.T) {
	scratch := NewScratchOutput()
	scratch.Output(make([]byte, MessageMax-1))
	if scratch.Overflowed() {
		t.Fatal("overflow reported before the buffer was full")
	}

	scratch.Output([]byte{1, 2})
	if !scratch.Overflowed() {
		t.Error("expected overflow")
	}
	if scratch.CurPosition() != MessageMax {
		t.Errorf("expected position %d, got %d", MessageMax, scratch.CurPosition())
	}

	scratch.Reset()
	if scratch.Overflowed() {
		t.Error("reset did not clear the overflow flag")
	}
}

func TestFifoBuffer(t *testing.T) {
	fifo := NewFifoBuffer(8)

	if n := fifo.Write([]byte{1, 2, 3, 4, 5}); n != 5 {
		t.Fatalf("expected 5 bytes written, got %d", n)
	}
	if fifo.Free() != 2 {
		t.Errorf("expected 2 bytes free, got %d", fifo.Free())
	}

	fifo.Pop(4)
	if fifo.Available() != 1 {
		t.Errorf("expected 1 byte available, got %d", fifo.Available())
	}

	// Wraps around the end of the backing array
	if n := fifo.Write([]byte{6, 7, 8, 9, 10, 11, 12}); n != 6 {
		t.Fatalf("expected 6 bytes written, got %d", n)
	}
	if got := fifo.Data(); !bytes.Equal(got, []byte{5, 6, 7, 8, 9, 10, 11}) {
		t.Errorf("wrapped data = % X", got)
	}

	fifo.Pop(100)
	if !fifo.IsEmpty() {
		t.Error("expected empty buffer after popping everything")
	}
}

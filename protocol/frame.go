package protocol

import (
	"bytes"
	"errors"
)

var ErrPayloadTooLarge = errors.New("payload does not fit in one frame")

// Frame is one validated message taken off the stream
type Frame struct {
	Sequence uint8 // low four bits of the sequence byte
	Payload  []byte
}

// EncodeFrame appends one complete frame carrying payload to out
func EncodeFrame(out OutputBuffer, seq uint8, payload []byte) error {
	if len(payload) > MessagePayloadMax {
		return ErrPayloadTooLarge
	}

	start := out.CurPosition()
	msgLen := len(payload) + MessageLengthMin
	out.Output([]byte{byte(msgLen), MessageDest | seq&MessageSeqMask})
	out.Output(payload)

	crc := CRC16(out.DataSince(start))
	out.Output([]byte{byte(crc >> 8), byte(crc), MessageValueSync})
	return nil
}

// FrameDecoder reassembles frames from a byte stream. Bytes that do not form
// a valid frame are discarded up to the next sync byte.
type FrameDecoder struct {
	input        *FifoBuffer
	synchronized bool
	dropped      uint32
}

// NewFrameDecoder returns a decoder that expects a frame boundary first
func NewFrameDecoder() *FrameDecoder {
	return &FrameDecoder{
		input:        NewFifoBuffer(MessageMax),
		synchronized: true,
	}
}

// Feed queues data and returns every frame it completes, in stream order.
// Payloads are copies and stay valid after the next call.
func (d *FrameDecoder) Feed(data []byte) []Frame {
	var frames []Frame
	for len(data) > 0 {
		n := d.input.Write(data)
		data = data[n:]
		frames = d.process(frames)
		if n == 0 && d.input.Free() == 0 {
			// Nothing consumable in a full queue: start over
			d.input.Reset()
			d.synchronized = false
			d.dropped++
		}
	}
	return frames
}

// Dropped returns how many times a malformed frame forced a resync
func (d *FrameDecoder) Dropped() uint32 {
	return d.dropped
}

// Reset discards buffered data and the resync state
func (d *FrameDecoder) Reset() {
	d.input.Reset()
	d.synchronized = true
}

func (d *FrameDecoder) desync() {
	d.synchronized = false
	d.dropped++
}

func (d *FrameDecoder) process(frames []Frame) []Frame {
	data := d.input.Data()

	for len(data) > 0 {
		if !d.synchronized {
			i := bytes.IndexByte(data, MessageValueSync)
			if i < 0 {
				data = nil
				break
			}
			data = data[i+1:]
			d.synchronized = true
			continue
		}

		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		crc := uint16(data[msgLen-MessageTrailerCRC])<<8 | uint16(data[msgLen-MessageTrailerCRC+1])
		if crc != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		payload := make([]byte, msgLen-MessageLengthMin)
		copy(payload, data[MessageHeaderSize:msgLen-MessageTrailerSize])
		frames = append(frames, Frame{
			Sequence: data[MessagePositionSeq] & MessageSeqMask,
			Payload:  payload,
		})
		data = data[msgLen:]
	}

	d.input.Pop(d.input.Available() - len(data))
	return frames
}

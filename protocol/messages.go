package protocol

// Message ids carried as the first VLQ of every payload
const (
	MsgBoot         = 0 // version=%s
	MsgCounterState = 1 // value=%c faults=%u iteration=%u
	MsgDisplayFault = 2 // faults=%u error=%s
)

// MaxErrorText is the longest error string a display_fault message carries:
// the payload minus the id, a full-width fault count and the length prefix.
const MaxErrorText = MessagePayloadMax - 7

// EncodeBoot writes a boot message payload
func EncodeBoot(out OutputBuffer, version string) {
	EncodeVLQUint(out, MsgBoot)
	EncodeVLQString(out, version)
}

// EncodeCounterState writes a counter_state message payload
func EncodeCounterState(out OutputBuffer, value uint8, faults, iteration uint32) {
	EncodeVLQUint(out, MsgCounterState)
	EncodeVLQUint(out, uint32(value))
	EncodeVLQUint(out, faults)
	EncodeVLQUint(out, iteration)
}

// EncodeDisplayFault writes a display_fault message payload. Long error
// text is cut to MaxErrorText bytes.
func EncodeDisplayFault(out OutputBuffer, faults uint32, errText string) {
	if len(errText) > MaxErrorText {
		errText = errText[:MaxErrorText]
	}
	EncodeVLQUint(out, MsgDisplayFault)
	EncodeVLQUint(out, faults)
	EncodeVLQString(out, errText)
}

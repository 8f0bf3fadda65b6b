// Package protocol implements the framed telemetry stream sent by the firmware
package protocol

// Version represents the firmware version reported in the boot message
const Version = "0.1.0"

// Frame layout: [len][seq][payload...][crc hi][crc lo][sync]
const (
	MessageMax         = 512 // Scratch buffer size
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePayloadMax  = MessageLengthMax - MessageLengthMin
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	// Message sequence masks
	MessageSeqMask = 0x0F
)

package core

// LineWidth is the number of characters that fill the 128x32 terminal
// (16 columns x 4 rows of 8x8 cells).
const LineWidth = 64

const (
	valuePrefix = "value: "
	valueDigits = 4
)

// FormatValue renders v as "value: NNNN" and pads the rest of buf with
// spaces, so a refresh overwrites every cell of the previous one.
func FormatValue(buf *[LineWidth]byte, v uint8) []byte {
	n := copy(buf[:], valuePrefix)
	putPadded(buf[n:n+valueDigits], uint32(v), valueDigits)
	for i := n + valueDigits; i < LineWidth; i++ {
		buf[i] = ' '
	}
	return buf[:]
}

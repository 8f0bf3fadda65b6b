package core

import (
	"strings"
	"testing"
)

func TestFormatValue(t *testing.T) {
	testCases := []struct {
		value  uint8
		prefix string
	}{
		{0, "value: 0000"},
		{7, "value: 0007"},
		{42, "value: 0042"},
		{255, "value: 0255"},
	}

	var buf [LineWidth]byte
	for _, tc := range testCases {
		got := string(FormatValue(&buf, tc.value))
		want := tc.prefix + strings.Repeat(" ", LineWidth-len(tc.prefix))
		if got != want {
			t.Errorf("FormatValue(%d) = %q, want %q", tc.value, got, want)
		}
	}
}

func TestFormatValueOverwritesPrevious(t *testing.T) {
	var buf [LineWidth]byte
	for i := range buf {
		buf[i] = 'x'
	}

	got := FormatValue(&buf, 9)
	if len(got) != LineWidth {
		t.Fatalf("expected %d bytes, got %d", LineWidth, len(got))
	}
	if strings.ContainsRune(string(got), 'x') {
		t.Errorf("stale bytes left in %q", got)
	}
}

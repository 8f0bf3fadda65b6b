package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures a main-loop or bootstrap event for post-mortem analysis
type Event struct {
	Kind   uint8  // Event kind code
	Value  uint32 // Context-dependent value
	Detail uint32 // Context-dependent value
}

// Event kind codes
const (
	EvtBootStage    = 1 // Bootstrap step completed (Value = step)
	EvtBootFailed   = 2 // Bootstrap step failed (Value = step)
	EvtRefresh      = 3 // Display refreshed (Value = counter, Detail = iteration)
	EvtDisplayFault = 4 // Display write failed after retries (Value = counter, Detail = faults)
	EvtWriteRetry   = 5 // Display write failed, retrying (Value = attempt)
)

const (
	EventRingSize = 16 // Keep last 16 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = true

	eventRing     [EventRingSize]Event
	eventRingHead uint8 // Next write position
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordEvent appends an event to the ring buffer. Main context only.
func RecordEvent(kind uint8, value, detail uint32) {
	idx := eventRingHead
	eventRing[idx] = Event{
		Kind:   kind,
		Value:  value,
		Detail: detail,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the recorded events, oldest first
func Events() []Event {
	out := make([]Event, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.Kind == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// DumpEvents outputs the event ring (call on halt)
func DumpEvents() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		var name string
		switch evt.Kind {
		case EvtBootStage:
			name = "BOOT_STAGE"
		case EvtBootFailed:
			name = "BOOT_FAILED!"
		case EvtRefresh:
			name = "REFRESH"
		case EvtDisplayFault:
			name = "DISPLAY_FAULT!"
		case EvtWriteRetry:
			name = "WRITE_RETRY"
		default:
			name = "UNKNOWN"
		}

		debugPrintln("[EVENTS] " + name +
			" value=" + utoa(evt.Value) +
			" detail=" + utoa(evt.Detail))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEvents clears the event ring
func ClearEvents() {
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
}

package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// LoopEvent captures a coordination event for post-mortem analysis
type LoopEvent struct {
	EventType uint8  // Event type code
	Motor     uint8  // Motor/channel index, when relevant
	Clock     uint32 // System clock at event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtSample         = 1 // Sampler timer fired
	EvtToggleAccepted = 2 // Direction toggle consumed
	EvtToggleDropped  = 3 // Press arrived inside the settle window
	EvtTelemetry      = 4 // Display refreshed
	EvtHeartbeat      = 5 // Heartbeat line toggled
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = true

	// Event ring buffer (non-blocking, written from interrupt and loop context)
	eventRing     [EventRingSize]LoopEvent
	eventRingHead uint8

	// Async debug output channel
	debugChan chan string
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

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16) // Buffer 16 messages
	go debugOutputWorker(debugChan)
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker(ch <-chan string) {
	for msg := range ch {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
// Blocks until written; use DebugAsync from the control loop
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Drops the message when the channel is full or async output is not started
func DebugAsync(msg string) {
	if !debugEnabled || debugChan == nil {
		return
	}
	select {
	case debugChan <- msg:
	default:
	}
}

// RecordEvent captures an event in the ring buffer. Safe from interrupt
// context: fixed-size, no allocation.
func RecordEvent(eventType, motor uint8, clock, value1, value2 uint32) {
	state := lockRing()
	idx := eventRingHead
	eventRing[idx] = LoopEvent{
		EventType: eventType,
		Motor:     motor,
		Clock:     clock,
		Value1:    value1,
		Value2:    value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
	unlockRing(state)
}

// Events returns the recorded events, oldest first
func Events() []LoopEvent {
	state := lockRing()
	ring := eventRing
	start := eventRingHead
	unlockRing(state)

	out := make([]LoopEvent, 0, EventRingSize)
	for i := uint8(0); i < EventRingSize; i++ {
		evt := ring[(start+i)%EventRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// EventName returns the log name of an event type code
func EventName(eventType uint8) string {
	switch eventType {
	case EvtSample:
		return "SAMPLE"
	case EvtToggleAccepted:
		return "TOGGLE"
	case EvtToggleDropped:
		return "TOGGLE_DROPPED"
	case EvtTelemetry:
		return "TELEMETRY"
	case EvtHeartbeat:
		return "HEARTBEAT"
	default:
		return "UNKNOWN"
	}
}

// DumpEventRing outputs the event ring buffer through the debug writer
func DumpEventRing() {
	DumpEventRingTo(debugPrintln)
}

// DumpEventRingTo outputs the event ring buffer through w
func DumpEventRingTo(w DebugWriter) {
	if w == nil {
		return
	}

	w("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		w("[EVENTS] " + EventName(evt.EventType) +
			" motor=" + itoa(int(evt.Motor)) +
			" clock=" + utoa(evt.Clock) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	w("[EVENTS] === End Dump ===")
}

// ClearEventRing clears the event buffer
func ClearEventRing() {
	state := lockRing()
	for i := range eventRing {
		eventRing[i] = LoopEvent{}
	}
	eventRingHead = 0
	unlockRing(state)
}

package core

// AnalogSource is a single analog input.
type AnalogSource interface {
	// Read performs a one-shot conversion and returns it normalized to
	// [0,1]. The conversion hardware guarantees the range; callers do not
	// re-validate it. Synchronous with bounded latency.
	Read() float32
}

package core

// DigitalOut drives an enable, direction or indicator line.
// machine.Pin satisfies this interface directly.
type DigitalOut interface {
	// Set drives the line high (true) or low (false)
	Set(value bool)
}

// DigitalIn samples a level input such as an encoder phase line.
// machine.Pin satisfies this interface directly.
type DigitalIn interface {
	// Get reads the instantaneous pin level
	Get() bool
}

// EdgeSource delivers edge interrupts from a pin. The callback runs in
// interrupt context, at most once per physical transition, and must return
// quickly: no blocking, no allocation.
type EdgeSource interface {
	// OnEdge registers the handler. Returns error if the pin cannot raise
	// interrupts on the configured edge.
	OnEdge(callback func()) error
}

// nopOut is used for optional lines a board leaves unwired.
type nopOut struct{}

func (nopOut) Set(bool) {}

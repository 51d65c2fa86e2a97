package core

import "sync/atomic"

// ButtonLatch records direction-toggle presses from a falling-edge
// interrupt for the control loop to consume.
//
// Ownership: pending goes false->true only in OnEdge (interrupt context)
// and true->false only in the control loop, via an atomic swap so a press
// landing between the loop's read and its clear is never lost. The
// interrupt is never masked; presses inside the settle window are
// discarded by the consumer.
type ButtonLatch struct {
	pending        atomic.Bool
	lastTransition atomic.Uint32 // System ticks of the latest edge
	edges          atomic.Uint32
}

// NewButtonLatch creates an idle latch
func NewButtonLatch() *ButtonLatch {
	return &ButtonLatch{}
}

// Attach registers the latch as the falling-edge handler of button
func (b *ButtonLatch) Attach(button EdgeSource) error {
	return button.OnEdge(b.OnEdge)
}

// OnEdge is the button-edge handler (interrupt context)
func (b *ButtonLatch) OnEdge() {
	b.lastTransition.Store(GetTime())
	b.edges.Add(1)
	b.pending.Store(true)
}

// Pending reports whether a press is waiting without consuming it
func (b *ButtonLatch) Pending() bool {
	return b.pending.Load()
}

// Consume atomically reads and clears the pending flag
func (b *ButtonLatch) Consume() bool {
	return b.pending.Swap(false)
}

// Discard drops any press latched since the last Consume and reports
// whether one was dropped. Same operation as Consume; the loop calls it
// after the settle window, where a latched press is bounce.
func (b *ButtonLatch) Discard() bool {
	return b.Consume()
}

// LastTransition returns the system time of the latest edge
func (b *ButtonLatch) LastTransition() uint32 {
	return b.lastTransition.Load()
}

// Edges returns the number of edges seen, accepted or not
func (b *ButtonLatch) Edges() uint32 {
	return b.edges.Load()
}

package core

import "sync/atomic"

// QuadratureCounter is a single-edge quadrature decoder: every rising edge
// of the pulse line moves the count by one, in the direction given by the
// phase line sampled at that edge.
//
// Known limitations: missed or coalesced edge interrupts are not detected
// and leave the count permanently off, and contact bounce is not filtered.
//
// Ownership: the edge handler is the only writer; the control loop reads.
type QuadratureCounter struct {
	phase               DigitalIn
	phaseHighIncrements bool

	count     atomic.Int32
	lastPhase atomic.Bool
}

// NewQuadratureCounter creates a counter reading the companion phase line.
// phaseHighIncrements fixes the polarity and must match the encoder wiring.
func NewQuadratureCounter(phase DigitalIn, phaseHighIncrements bool) *QuadratureCounter {
	return &QuadratureCounter{
		phase:               phase,
		phaseHighIncrements: phaseHighIncrements,
	}
}

// Attach registers the counter as the rising-edge handler of pulse
func (q *QuadratureCounter) Attach(pulse EdgeSource) error {
	return pulse.OnEdge(q.OnEdge)
}

// OnEdge is the pulse-edge handler (interrupt context)
func (q *QuadratureCounter) OnEdge() {
	high := q.phase.Get()
	q.lastPhase.Store(high)
	if high == q.phaseHighIncrements {
		q.count.Add(1)
	} else {
		q.count.Add(-1)
	}
}

// Count returns a snapshot of the signed pulse count
func (q *QuadratureCounter) Count() int32 {
	return q.count.Load()
}

// LastPhase returns the phase level seen at the most recent edge
func (q *QuadratureCounter) LastPhase() bool {
	return q.lastPhase.Load()
}

// Reset zeroes the count
func (q *QuadratureCounter) Reset() {
	q.count.Store(0)
}

// Package sim provides software stand-ins for the board peripherals so the
// control loop can run on a workstation.
package sim

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Pot is a simulated potentiometer wiper, read as a normalized level
type Pot struct {
	bits atomic.Uint32
}

// NewPot creates a pot at position
func NewPot(position float32) *Pot {
	p := &Pot{}
	p.Set(position)
	return p
}

// Set moves the wiper, clamped to [0,1]
func (p *Pot) Set(position float32) {
	if position < 0 {
		position = 0
	} else if position > 1 {
		position = 1
	}
	p.bits.Store(math.Float32bits(position))
}

// Read implements core.AnalogSource
func (p *Pot) Read() float32 {
	return math.Float32frombits(p.bits.Load())
}

// Pin is a simulated digital line, usable as input or output
type Pin struct {
	level   atomic.Bool
	changes atomic.Uint32
}

// Set implements core.DigitalOut
func (p *Pin) Set(high bool) {
	if p.level.Swap(high) != high {
		p.changes.Add(1)
	}
}

// Get implements core.DigitalIn
func (p *Pin) Get() bool {
	return p.level.Load()
}

// Changes returns how many times the level changed
func (p *Pin) Changes() uint32 {
	return p.changes.Load()
}

// Edge is a simulated interrupt-capable input. Fire runs the registered
// handler on the calling goroutine.
type Edge struct {
	mu      sync.Mutex
	handler func()
}

// OnEdge implements core.EdgeSource
func (e *Edge) OnEdge(handler func()) error {
	e.mu.Lock()
	e.handler = handler
	e.mu.Unlock()
	return nil
}

// Fire delivers one edge; it is a no-op until a handler is attached
func (e *Edge) Fire() {
	e.mu.Lock()
	h := e.handler
	e.mu.Unlock()
	if h != nil {
		h()
	}
}

// Wheel is a simulated single-channel quadrature encoder: a pulse edge and
// the phase line sampled at each pulse
type Wheel struct {
	Pulse Edge
	Phase Pin

	position atomic.Int64
}

// Step emits |n| pulses with the phase high for n > 0 and low for n < 0
func (w *Wheel) Step(n int) {
	if n == 0 {
		return
	}
	w.Phase.Set(n > 0)
	steps := n
	if steps < 0 {
		steps = -steps
	}
	for i := 0; i < steps; i++ {
		w.Pulse.Fire()
	}
	w.position.Add(int64(n))
}

// Position returns the true shaft position in pulses
func (w *Wheel) Position() int64 {
	return w.position.Load()
}

// Button is a simulated push button on a falling-edge interrupt
type Button struct {
	Edge
}

// Press delivers one press followed by bounce extra edges
func (b *Button) Press(bounce int) {
	for i := 0; i <= bounce; i++ {
		b.Fire()
	}
}

// PWM is a simulated PWM output that remembers the last duty written
type PWM struct {
	period atomic.Int64
	duty   atomic.Uint32
	writes atomic.Uint32
}

// SetPeriod implements core.PWMSink
func (p *PWM) SetPeriod(period time.Duration) error {
	p.period.Store(int64(period))
	return nil
}

// Write implements core.PWMSink
func (p *PWM) Write(duty float32) {
	p.duty.Store(math.Float32bits(duty))
	p.writes.Add(1)
}

// Period returns the configured period
func (p *PWM) Period() time.Duration {
	return time.Duration(p.period.Load())
}

// Duty returns the last duty written
func (p *PWM) Duty() float32 {
	return math.Float32frombits(p.duty.Load())
}

// Writes returns the number of duty writes
func (p *PWM) Writes() uint32 {
	return p.writes.Load()
}

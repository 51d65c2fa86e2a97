// Analog input channels and their periodic samplers
package core

import (
	"math"
	"sync/atomic"
)

// AnalogChannel holds the latest sample of one analog input.
//
// Ownership: written only by its PeriodicSampler (interrupt context), read
// by the control loop. The normalized value and the derived voltage are
// published together in one 64-bit word, so a reader never pairs a fresh
// normalized value with a stale voltage.
type AnalogChannel struct {
	reference float32       // Reference voltage, fixed at construction
	sample    atomic.Uint64 // voltage bits << 32 | normalized bits
}

// NewAnalogChannel creates a channel reading zero volts.
func NewAnalogChannel(referenceVoltage float32) *AnalogChannel {
	return &AnalogChannel{reference: referenceVoltage}
}

// store publishes a normalized reading and its voltage in one atomic write
func (c *AnalogChannel) store(normalized float32) {
	volts := normalized * c.reference
	c.sample.Store(uint64(math.Float32bits(volts))<<32 | uint64(math.Float32bits(normalized)))
}

// Normalized returns the last completed sample in [0,1]
func (c *AnalogChannel) Normalized() float32 {
	return math.Float32frombits(uint32(c.sample.Load()))
}

// Voltage returns the last completed sample in volts
func (c *AnalogChannel) Voltage() float32 {
	return math.Float32frombits(uint32(c.sample.Load() >> 32))
}

// Reading returns normalized value and voltage from the same sample
func (c *AnalogChannel) Reading() (normalized, volts float32) {
	word := c.sample.Load()
	return math.Float32frombits(uint32(word)), math.Float32frombits(uint32(word >> 32))
}

// Reference returns the reference voltage
func (c *AnalogChannel) Reference() float32 {
	return c.reference
}

// PeriodicSampler refreshes one AnalogChannel from an AnalogSource at a
// fixed frequency. It holds the channel rather than being one: the timing
// policy and the channel data are separate concerns.
type PeriodicSampler struct {
	Timer Timer // Scheduler entry, fires in interrupt context

	channel     *AnalogChannel
	source      AnalogSource
	periodTicks uint32
	samples     atomic.Uint32
}

// NewPeriodicSampler creates a sampler for channel. It does not start
// sampling until Start is called.
func NewPeriodicSampler(channel *AnalogChannel, source AnalogSource, frequencyHz float32) *PeriodicSampler {
	s := &PeriodicSampler{
		channel:     channel,
		source:      source,
		periodTicks: TimerFromHz(frequencyHz),
	}
	s.Timer.Handler = s.timerEvent
	return s
}

// Start takes an initial sample and schedules the periodic timer
func (s *PeriodicSampler) Start() {
	s.Sample()
	if s.periodTicks == 0 {
		return
	}
	s.Timer.WakeTime = GetTime() + s.periodTicks
	ScheduleTimer(&s.Timer)
}

// Stop removes the sampler from the schedule
func (s *PeriodicSampler) Stop() {
	CancelTimer(&s.Timer)
}

// Sample performs one blocking read and publishes it
func (s *PeriodicSampler) Sample() {
	s.channel.store(s.source.Read())
	s.samples.Add(1)
}

// Channel returns the channel this sampler updates
func (s *PeriodicSampler) Channel() *AnalogChannel {
	return s.channel
}

// PeriodTicks returns the sampling period in timer ticks
func (s *PeriodicSampler) PeriodTicks() uint32 {
	return s.periodTicks
}

// Samples returns the number of completed samples
func (s *PeriodicSampler) Samples() uint32 {
	return s.samples.Load()
}

// timerEvent is the timer callback: sample, then reschedule one period
// after the previous wake time so the cadence does not drift with
// dispatch latency.
func (s *PeriodicSampler) timerEvent(t *Timer) uint8 {
	s.Sample()
	RecordEvent(EvtSample, 0, t.WakeTime, s.samples.Load(), 0)

	t.WakeTime += s.periodTicks
	if timeBefore(t.WakeTime, GetTime()) {
		// Fell a whole period behind; skip ahead instead of bursting.
		t.WakeTime = GetTime() + s.periodTicks
	}
	return SF_RESCHEDULE
}

package core

import "time"

// PWMSink is one PWM output channel.
type PWMSink interface {
	// SetPeriod configures the PWM period. Called once at start-up; returns
	// error if the hardware cannot produce the period.
	SetPeriod(period time.Duration) error

	// Write sets the duty cycle, 0 (fully off) to 1 (fully on).
	// Defined never to fail.
	Write(duty float32)
}

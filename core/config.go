package core

import (
	"errors"
	"time"
)

// DirectionMode selects how motor direction reaches the driver stage
type DirectionMode string

const (
	// DirectionLine drives a separate direction pin; duty is magnitude only
	DirectionLine DirectionMode = "line"

	// DirectionDuty encodes direction in the duty cycle (bipolar drive,
	// 0.5 is stop): reverse mirrors the duty to 1-duty
	DirectionDuty DirectionMode = "duty"
)

// Config is the start-up configuration of the control loop. It is fixed
// once the loop starts.
type Config struct {
	ReferenceVoltage [MotorCount]float32 `json:"reference_voltage"`
	SampleHz         float32             `json:"sample_hz"`
	PWMPeriodUS      uint32              `json:"pwm_period_us"`
	DeadBand         float32             `json:"dead_band"`
	Invert           [MotorCount]bool    `json:"invert"`
	DirectionMode    DirectionMode       `json:"direction_mode"`

	// ReversePhase flips the encoder decode polarity: by default a high
	// phase line at the pulse edge counts up.
	ReversePhase bool `json:"reverse_phase"`

	TelemetryPeriodMS uint32 `json:"telemetry_period_ms"`
	SettleMS          uint32 `json:"settle_ms"`
	LoopIntervalMS    uint32 `json:"loop_interval_ms"`

	// HeartbeatEvery is the number of loop iterations between heartbeat
	// toggles.
	HeartbeatEvery uint32 `json:"heartbeat_every"`
}

// DefaultConfig returns the configuration of the reference board: 3.3V
// potentiometers sampled at 100Hz, 20kHz bipolar PWM.
func DefaultConfig() Config {
	return Config{
		ReferenceVoltage:  [MotorCount]float32{3.3, 3.3},
		SampleHz:          100,
		PWMPeriodUS:       50,
		DeadBand:          0.03,
		DirectionMode:     DirectionDuty,
		TelemetryPeriodMS: 200,
		SettleMS:          200,
		LoopIntervalMS:    10,
		HeartbeatEvery:    50,
	}
}

// Validate checks the configuration for values the loop cannot run with
func (c *Config) Validate() error {
	for _, v := range c.ReferenceVoltage {
		if v <= 0 {
			return errors.New("reference_voltage must be positive")
		}
	}
	if c.SampleHz <= 0 || c.SampleHz > TimerFreq {
		return errors.New("sample_hz out of range")
	}
	if c.PWMPeriodUS == 0 {
		return errors.New("pwm_period_us must be positive")
	}
	if c.DeadBand < 0 || c.DeadBand >= 0.5 {
		return errors.New("dead_band must be in [0, 0.5)")
	}
	if c.DirectionMode != DirectionLine && c.DirectionMode != DirectionDuty {
		return errors.New("direction_mode must be \"line\" or \"duty\"")
	}
	if c.TelemetryPeriodMS == 0 {
		return errors.New("telemetry_period_ms must be positive")
	}
	if c.LoopIntervalMS == 0 {
		return errors.New("loop_interval_ms must be positive")
	}
	if c.SettleMS == 0 {
		return errors.New("settle_ms must be positive")
	}
	if c.HeartbeatEvery == 0 {
		return errors.New("heartbeat_every must be positive")
	}
	return nil
}

// PWMPeriod returns the PWM period
func (c Config) PWMPeriod() time.Duration {
	return time.Duration(c.PWMPeriodUS) * time.Microsecond
}

// TelemetryPeriod returns the display refresh period
func (c Config) TelemetryPeriod() time.Duration {
	return time.Duration(c.TelemetryPeriodMS) * time.Millisecond
}

// SettleDelay returns the button settle window
func (c Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleMS) * time.Millisecond
}

// LoopInterval returns the pause between loop iterations
func (c Config) LoopInterval() time.Duration {
	return time.Duration(c.LoopIntervalMS) * time.Millisecond
}

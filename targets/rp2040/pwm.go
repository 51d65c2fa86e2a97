//go:build rp2040

package main

import (
	"machine"
	"time"
)

// pwmPeripheral is an interface for PWM hardware peripherals
// This abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// rpPWMOutput implements core.PWMSink on one slice channel.
//
// GPIO pin N maps to slice (N >> 1) & 0x7 and channel N & 1 (even=A,
// odd=B). Both channels of a slice share its period.
type rpPWMOutput struct {
	pin     machine.Pin
	slice   pwmPeripheral
	channel uint8
	top     uint32
}

func newPWMOutput(pin machine.Pin) *rpPWMOutput {
	return &rpPWMOutput{
		pin:   pin,
		slice: getPWMPeripheral(uint8((uint32(pin) >> 1) & 0x7)),
	}
}

// SetPeriod configures the slice and claims the pin's channel
func (p *rpPWMOutput) SetPeriod(period time.Duration) error {
	if err := p.slice.Configure(machine.PWMConfig{Period: uint64(period.Nanoseconds())}); err != nil {
		return err
	}
	channel, err := p.slice.Channel(p.pin)
	if err != nil {
		return err
	}
	p.channel = channel
	p.top = p.slice.Top()
	return nil
}

// Write sets the duty cycle, clamped to [0,1]
func (p *rpPWMOutput) Write(duty float32) {
	if duty < 0 {
		duty = 0
	} else if duty > 1 {
		duty = 1
	}
	p.slice.Set(p.channel, uint32(duty*float32(p.top)+0.5))
}

// getPWMPeripheral returns the PWM peripheral for a given slice number
// RP2040 has 8 PWM slices: PWM0-PWM7
func getPWMPeripheral(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

//go:build rp2040

package main

import "machine"

// rpOutput implements core.DigitalOut on a push-pull GPIO
type rpOutput struct {
	pin machine.Pin
}

func newOutput(pin machine.Pin) rpOutput {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return rpOutput{pin: pin}
}

func (o rpOutput) Set(high bool) {
	o.pin.Set(high)
}

// rpInput implements core.DigitalIn
type rpInput struct {
	pin machine.Pin
}

func newInput(pin machine.Pin, mode machine.PinMode) rpInput {
	pin.Configure(machine.PinConfig{Mode: mode})
	return rpInput{pin: pin}
}

func (in rpInput) Get() bool {
	return in.pin.Get()
}

// rpEdge implements core.EdgeSource with a bank0 GPIO interrupt. The
// callback runs in interrupt context.
type rpEdge struct {
	pin    machine.Pin
	mode   machine.PinMode
	change machine.PinChange
}

func newEdge(pin machine.Pin, mode machine.PinMode, change machine.PinChange) rpEdge {
	return rpEdge{pin: pin, mode: mode, change: change}
}

func (e rpEdge) OnEdge(handler func()) error {
	e.pin.Configure(machine.PinConfig{Mode: e.mode})
	return e.pin.SetInterrupt(e.change, func(machine.Pin) {
		handler()
	})
}

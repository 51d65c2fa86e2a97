//go:build rp2040

package main

import (
	"errors"
	"machine"
)

// adcFullScale is the top of TinyGo's left-justified 16-bit ADC reading
const adcFullScale = 0xffff

// rpAnalogInput implements core.AnalogSource on one external ADC channel
type rpAnalogInput struct {
	adc machine.ADC
}

// newAnalogInput configures the ADC channel on pin. Only the four external
// channels (GPIO26-29) are accepted.
func newAnalogInput(pin machine.Pin) (*rpAnalogInput, error) {
	switch pin {
	case machine.ADC0, machine.ADC1, machine.ADC2, machine.ADC3:
	default:
		return nil, errors.New("pin " + itoa(int(pin)) + " is not an ADC input")
	}

	in := &rpAnalogInput{adc: machine.ADC{Pin: pin}}
	if err := in.adc.Configure(machine.ADCConfig{}); err != nil {
		return nil, err
	}
	return in, nil
}

// Read performs one blocking conversion (a few microseconds) and returns it
// scaled to [0,1]. Called from the alarm interrupt.
func (in *rpAnalogInput) Read() float32 {
	return float32(in.adc.Get()) / adcFullScale
}

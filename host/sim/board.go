package sim

import (
	"io"

	"dualdrive/core"
)

// Board is a complete simulated board: the peripherals of the reference
// hardware, wired to core components
type Board struct {
	Pots      [core.MotorCount]*Pot
	Wheels    [core.MotorCount]*Wheel
	PWMs      [core.MotorCount]*PWM
	Dirs      [core.MotorCount]*Pin
	Bipolar   [core.MotorCount]*Pin
	Button    *Button
	Heartbeat *Pin
	Enable    *Pin
	Display   *TerminalDisplay

	core core.Board
}

// NewBoard builds the simulated peripherals and the core components
// reading them. Display output goes to w.
func NewBoard(cfg core.Config, w io.Writer) (*Board, error) {
	b := &Board{
		Button:    &Button{},
		Heartbeat: &Pin{},
		Enable:    &Pin{},
		Display:   NewTerminalDisplay(w),
	}
	b.core = core.Board{
		Button:    core.NewButtonLatch(),
		Display:   b.Display,
		Heartbeat: b.Heartbeat,
		Enable:    b.Enable,
	}
	if err := b.core.Button.Attach(b.Button); err != nil {
		return nil, err
	}

	for i := 0; i < core.MotorCount; i++ {
		b.Pots[i] = NewPot(0.5)
		b.Wheels[i] = &Wheel{}
		b.PWMs[i] = &PWM{}
		b.Dirs[i] = &Pin{}
		b.Bipolar[i] = &Pin{}

		channel := core.NewAnalogChannel(cfg.ReferenceVoltage[i])
		encoder := core.NewQuadratureCounter(&b.Wheels[i].Phase, !cfg.ReversePhase)
		if err := encoder.Attach(&b.Wheels[i].Pulse); err != nil {
			return nil, err
		}
		b.core.Samplers = append(b.core.Samplers, core.NewPeriodicSampler(channel, b.Pots[i], cfg.SampleHz))
		b.core.Motors[i] = core.Motor{
			Channel:   channel,
			Encoder:   encoder,
			PWM:       b.PWMs[i],
			Direction: b.Dirs[i],
			Bipolar:   b.Bipolar[i],
		}
	}
	return b, nil
}

// Core returns the core view of the board, ready for core.NewControlLoop
func (b *Board) Core() core.Board {
	return b.core
}

// Latch returns the button latch fed by the simulated button
func (b *Board) Latch() *core.ButtonLatch {
	return b.core.Button
}

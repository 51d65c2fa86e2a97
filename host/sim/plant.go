package sim

import (
	"dualdrive/core"
	"time"
)

// Plant turns the PWM outputs of a Board into encoder motion. A motor at
// full command turns its wheel at MaxPulseRate pulses per second.
type Plant struct {
	board        *Board
	mode         core.DirectionMode
	MaxPulseRate float64

	carry [core.MotorCount]float64
}

// NewPlant creates a plant for board driven in mode
func NewPlant(board *Board, mode core.DirectionMode, maxPulseRate float64) *Plant {
	return &Plant{board: board, mode: mode, MaxPulseRate: maxPulseRate}
}

// Command returns the signed drive of motor i in [-1,1] as the driver
// stage sees it
func (p *Plant) Command(i int) float64 {
	duty := float64(p.board.PWMs[i].Duty())
	if p.mode == core.DirectionDuty {
		// Bipolar: 0.5 is stop
		return 2*duty - 1
	}
	if !p.board.Dirs[i].Get() {
		return -duty
	}
	return duty
}

// Advance moves every wheel by dt of motion. Nothing moves while the
// driver stage is disabled.
func (p *Plant) Advance(dt time.Duration) {
	if !p.board.Enable.Get() {
		return
	}
	for i := range p.board.Wheels {
		p.carry[i] += p.Command(i) * p.MaxPulseRate * dt.Seconds()
		whole := int(p.carry[i])
		p.carry[i] -= float64(whole)
		p.board.Wheels[i].Step(whole)
	}
}

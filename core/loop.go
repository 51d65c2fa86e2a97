// Control loop: the single foreground task that consumes interrupt-produced
// state and drives the motors
package core

import (
	"context"
	"errors"
)

// Motor indices
const (
	MotorLeft  = 0
	MotorRight = 1
	MotorCount = 2
)

// Motor wires one drive channel.
type Motor struct {
	Channel   *AnalogChannel     // Command input
	Encoder   *QuadratureCounter // Optional, shown in telemetry
	PWM       PWMSink
	Direction DigitalOut // Direction line, used in DirectionLine mode
	Bipolar   DigitalOut // Optional bipolar-select line, high in DirectionDuty mode
}

// MotorOutput is what the loop last wrote to a motor. Derived every
// iteration, never stored across them.
type MotorOutput struct {
	Duty    float32
	Forward bool
}

// Board groups the collaborators of a ControlLoop.
type Board struct {
	Motors    [MotorCount]Motor
	Samplers  []*PeriodicSampler
	Button    *ButtonLatch
	Display   Display
	Heartbeat DigitalOut
	Enable    DigitalOut // Optional driver enable line
}

// ControlLoop runs forever in a single RUNNING state. Each iteration
// consumes a pending direction toggle, maps the sampled commands to PWM
// duty cycles, refreshes telemetry when due and advances the heartbeat.
type ControlLoop struct {
	cfg   Config
	clock Clock
	board Board

	telemetry *TelemetryScheduler

	forward [MotorCount]bool
	outputs [MotorCount]MotorOutput

	heartbeatOn bool
	iterations  uint32
}

// NewControlLoop validates cfg and creates a loop with both motors
// pointing forward.
func NewControlLoop(cfg Config, clk Clock, board Board) (*ControlLoop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		return nil, errors.New("control loop needs a clock")
	}
	for i := range board.Motors {
		m := &board.Motors[i]
		if m.Channel == nil || m.PWM == nil {
			return nil, errors.New("motor " + itoa(i) + " needs a channel and a PWM output")
		}
		if m.Direction == nil {
			m.Direction = nopOut{}
		}
		if m.Bipolar == nil {
			m.Bipolar = nopOut{}
		}
	}
	if board.Button == nil {
		board.Button = NewButtonLatch()
	}
	if board.Heartbeat == nil {
		board.Heartbeat = nopOut{}
	}
	if board.Enable == nil {
		board.Enable = nopOut{}
	}

	l := &ControlLoop{
		cfg:       cfg,
		clock:     clk,
		board:     board,
		telemetry: NewTelemetryScheduler(cfg.TelemetryPeriod()),
	}
	for i := range l.forward {
		l.forward[i] = true
	}
	return l, nil
}

// Start configures the outputs, enables the driver stage, starts the
// samplers and shows the mode banner. Call once before Run.
func (l *ControlLoop) Start() error {
	bipolar := l.cfg.DirectionMode == DirectionDuty
	for i := range l.board.Motors {
		m := &l.board.Motors[i]
		if err := m.PWM.SetPeriod(l.cfg.PWMPeriod()); err != nil {
			return err
		}
		m.Bipolar.Set(bipolar)
		m.Direction.Set(true)
	}
	l.board.Enable.Set(true)

	for _, s := range l.board.Samplers {
		s.Start()
	}

	if l.board.Display != nil {
		l.board.Display.Clear()
		if bipolar {
			l.board.Display.WriteText(0, 0, "Bipolar Mode Active")
		} else {
			l.board.Display.WriteText(0, 0, "Direction Mode Active")
		}
		flushDisplay(l.board.Display)
	}
	DebugPrintln("[LOOP] started, direction mode " + string(l.cfg.DirectionMode))
	return nil
}

// Run executes iterations forever, pausing LoopInterval between them
func (l *ControlLoop) Run() {
	l.RunContext(context.Background())
}

// RunContext executes iterations until ctx is cancelled
func (l *ControlLoop) RunContext(ctx context.Context) {
	for ctx.Err() == nil {
		l.Step()
		l.clock.Sleep(l.cfg.LoopInterval())
	}
}

// Step executes one loop iteration without the trailing pause
func (l *ControlLoop) Step() {
	if l.board.Button.Consume() {
		l.toggleDirection()
	}

	for i := range l.board.Motors {
		m := &l.board.Motors[i]
		duty := MapDrive(m.Channel.Normalized(), l.cfg.DeadBand, l.cfg.Invert[i])
		out := l.applyDirection(i, duty)
		m.PWM.Write(out.Duty)
		l.outputs[i] = out
	}

	l.telemetry.MaybeRefresh(l.clock.Now(), l.render)

	l.iterations++
	if l.iterations%l.cfg.HeartbeatEvery == 0 {
		l.heartbeatOn = !l.heartbeatOn
		l.board.Heartbeat.Set(l.heartbeatOn)
		RecordEvent(EvtHeartbeat, 0, GetTime(), l.iterations, 0)
	}
}

// toggleDirection flips every motor, then holds the loop for the settle
// window. Outputs and telemetry are stale while it waits. Presses latched
// during the window are contact bounce and are dropped.
func (l *ControlLoop) toggleDirection() {
	for i := range l.forward {
		l.forward[i] = !l.forward[i]
	}
	RecordEvent(EvtToggleAccepted, 0, GetTime(), boolBit(l.forward[MotorLeft]), boolBit(l.forward[MotorRight]))
	DebugAsync("[LOOP] direction L=" + directionLetter(l.forward[MotorLeft]) + " R=" + directionLetter(l.forward[MotorRight]))

	l.clock.Sleep(l.cfg.SettleDelay())

	if l.board.Button.Discard() {
		RecordEvent(EvtToggleDropped, 0, GetTime(), l.board.Button.LastTransition(), 0)
	}
}

// applyDirection turns a mapped duty into the output for motor i
func (l *ControlLoop) applyDirection(i int, duty float32) MotorOutput {
	forward := l.forward[i]
	switch l.cfg.DirectionMode {
	case DirectionLine:
		l.board.Motors[i].Direction.Set(forward)
	case DirectionDuty:
		if !forward {
			duty = 1 - duty
		}
	}
	return MotorOutput{Duty: duty, Forward: forward}
}

// render draws the current snapshot, when a display is wired, and mirrors
// it to the debug log
func (l *ControlLoop) render() {
	s := l.Snapshot()
	if l.board.Display != nil {
		RenderSnapshot(l.board.Display, s)
	}
	DebugAsync(TelemetryLine(s))
	RecordEvent(EvtTelemetry, 0, GetTime(), l.telemetry.Refreshes(), 0)
}

// Snapshot collects the state shown on the display
func (l *ControlLoop) Snapshot() Snapshot {
	var s Snapshot
	for i := range l.board.Motors {
		m := &l.board.Motors[i]
		if m.Encoder != nil {
			s.Counts[i] = m.Encoder.Count()
		}
		s.Duty[i] = l.outputs[i].Duty
		s.Forward[i] = l.forward[i]
		s.Volts[i] = m.Channel.Voltage()
	}
	return s
}

// Outputs returns the outputs written by the latest iteration
func (l *ControlLoop) Outputs() [MotorCount]MotorOutput {
	return l.outputs
}

// Forward returns the current direction state of each motor
func (l *ControlLoop) Forward() [MotorCount]bool {
	return l.forward
}

// Iterations returns the number of completed iterations
func (l *ControlLoop) Iterations() uint32 {
	return l.iterations
}

// Telemetry returns the loop's telemetry scheduler
func (l *ControlLoop) Telemetry() *TelemetryScheduler {
	return l.telemetry
}

func boolBit(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

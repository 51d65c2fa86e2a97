//go:build rp2040

package main

import (
	_ "embed"
	"machine"
	"time"

	"dualdrive/config"
	"dualdrive/core"

	"github.com/benbjohnson/clock"
)

// Pico pin map
const (
	potLeftPin  = machine.ADC0 // GPIO26
	potRightPin = machine.ADC1 // GPIO27

	pwmLeftPin  = machine.GPIO14 // PWM7 A
	pwmRightPin = machine.GPIO15 // PWM7 B

	dirLeftPin  = machine.GPIO12
	dirRightPin = machine.GPIO13
	bipLeftPin  = machine.GPIO10
	bipRightPin = machine.GPIO11
	enablePin   = machine.GPIO9

	encLeftPulsePin  = machine.GPIO2
	encLeftPhasePin  = machine.GPIO3
	encRightPulsePin = machine.GPIO6
	encRightPhasePin = machine.GPIO7

	buttonPin = machine.GPIO20

	displaySDAPin = machine.GPIO4
	displaySCLPin = machine.GPIO5
)

//go:embed board.json
var boardConfig []byte

func main() {
	// Disable watchdog on boot to clear any previous state
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	InitUSB()
	core.SetDebugWriter(writeDebugLine)
	core.InitAsyncDebug()
	InitClock()

	cfg, err := config.LoadConfig(boardConfig)
	if err != nil {
		fail("[BOOT] " + err.Error())
	}

	board, err := setupBoard(cfg)
	if err != nil {
		fail("[BOOT] board setup: " + err.Error())
	}

	loop, err := core.NewControlLoop(*cfg, clock.New(), board)
	if err != nil {
		fail("[BOOT] " + err.Error())
	}
	if err := loop.Start(); err != nil {
		fail("[BOOT] start: " + err.Error())
	}
	ArmAlarm()

	loop.Run()
}

// setupBoard configures every peripheral the control loop drives
func setupBoard(cfg *core.Config) (core.Board, error) {
	var board core.Board

	pots := [core.MotorCount]machine.Pin{potLeftPin, potRightPin}
	pwms := [core.MotorCount]machine.Pin{pwmLeftPin, pwmRightPin}
	dirs := [core.MotorCount]machine.Pin{dirLeftPin, dirRightPin}
	bips := [core.MotorCount]machine.Pin{bipLeftPin, bipRightPin}
	pulses := [core.MotorCount]machine.Pin{encLeftPulsePin, encRightPulsePin}
	phases := [core.MotorCount]machine.Pin{encLeftPhasePin, encRightPhasePin}

	machine.InitADC()
	for i := range board.Motors {
		input, err := newAnalogInput(pots[i])
		if err != nil {
			return board, err
		}
		channel := core.NewAnalogChannel(cfg.ReferenceVoltage[i])
		board.Samplers = append(board.Samplers, core.NewPeriodicSampler(channel, input, cfg.SampleHz))

		encoder := core.NewQuadratureCounter(newInput(phases[i], machine.PinInputPullup), !cfg.ReversePhase)
		if err := encoder.Attach(newEdge(pulses[i], machine.PinInputPullup, machine.PinRising)); err != nil {
			return board, err
		}

		board.Motors[i] = core.Motor{
			Channel:   channel,
			Encoder:   encoder,
			PWM:       newPWMOutput(pwms[i]),
			Direction: newOutput(dirs[i]),
			Bipolar:   newOutput(bips[i]),
		}
	}

	board.Button = core.NewButtonLatch()
	if err := board.Button.Attach(newEdge(buttonPin, machine.PinInputPullup, machine.PinFalling)); err != nil {
		return board, err
	}

	if err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       displaySDAPin,
		SCL:       displaySCLPin,
	}); err != nil {
		return board, err
	}
	board.Display = newOLEDDisplay(machine.I2C0)

	board.Heartbeat = newOutput(machine.LED)
	board.Enable = newOutput(enablePin)
	return board, nil
}

// fail reports a start-up error forever with a fast heartbeat blink. The
// driver stage is never enabled.
func fail(msg string) {
	led := newOutput(machine.LED)
	on := false
	for {
		core.DebugPrintln(msg)
		for i := 0; i < 10; i++ {
			on = !on
			led.Set(on)
			time.Sleep(100 * time.Millisecond)
		}
	}
}

// itoa converts int to string without importing strconv (for embedded)
func itoa(i int) string {
	if i == 0 {
		return "0"
	}

	negative := i < 0
	if negative {
		i = -i
	}

	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}

	if negative {
		pos--
		buf[pos] = '-'
	}

	return string(buf[pos:])
}

package sim

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"dualdrive/core"
)

// Default simulation rates
const (
	DefaultTimerInterval = time.Millisecond
	DefaultPlantInterval = 5 * time.Millisecond
	DefaultMaxPulseRate  = 400.0
)

// Simulator runs a control loop on a simulated board. Three goroutines
// stand in for the hardware: the timer interrupt, the motors and the
// foreground loop.
type Simulator struct {
	Board *Board
	Plant *Plant
	Loop  *core.ControlLoop

	clock  clock.Clock
	logger *zap.SugaredLogger
	start  time.Time

	TimerInterval time.Duration
	PlantInterval time.Duration
}

// New builds a simulator for cfg. Display output goes to w; debug output
// goes to logger.
func New(cfg core.Config, clk clock.Clock, logger *zap.SugaredLogger, w io.Writer) (*Simulator, error) {
	board, err := NewBoard(cfg, w)
	if err != nil {
		return nil, err
	}
	loop, err := core.NewControlLoop(cfg, clk, board.Core())
	if err != nil {
		return nil, err
	}

	core.SetDebugWriter(func(msg string) {
		logger.Debug(msg)
	})

	return &Simulator{
		Board:         board,
		Plant:         NewPlant(board, cfg.DirectionMode, DefaultMaxPulseRate),
		Loop:          loop,
		clock:         clk,
		logger:        logger,
		TimerInterval: DefaultTimerInterval,
		PlantInterval: DefaultPlantInterval,
	}, nil
}

// Run starts the loop and blocks until ctx is cancelled
func (s *Simulator) Run(ctx context.Context) error {
	s.start = s.clock.Now()
	s.syncTime()
	if err := s.Loop.Start(); err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.runTimers(ctx)
	}()
	go func() {
		defer wg.Done()
		s.runPlant(ctx)
	}()

	s.Loop.RunContext(ctx)
	wg.Wait()

	for _, sampler := range s.Board.Core().Samplers {
		sampler.Stop()
	}
	return nil
}

// syncTime mirrors the simulation clock into the core tick counter
func (s *Simulator) syncTime() {
	core.SetTime(uint32(s.clock.Since(s.start) / time.Microsecond))
}

// runTimers plays the hardware alarm: due core timers run on every tick
func (s *Simulator) runTimers(ctx context.Context) {
	ticker := s.clock.Ticker(s.TimerInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncTime()
			core.ProcessTimers()
		}
	}
}

func (s *Simulator) runPlant(ctx context.Context) {
	ticker := s.clock.Ticker(s.PlantInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Plant.Advance(s.PlantInterval)
		}
	}
}

// Report logs the final state of the loop and the board
func (s *Simulator) Report() {
	snap := s.Loop.Snapshot()
	for i, name := range []string{"left", "right"} {
		s.logger.Infow("motor",
			"motor", name,
			"duty", snap.Duty[i],
			"forward", snap.Forward[i],
			"volts", snap.Volts[i],
			"count", snap.Counts[i],
			"position", s.Board.Wheels[i].Position())
	}
	s.logger.Infow("loop",
		"iterations", s.Loop.Iterations(),
		"telemetry_refreshes", s.Loop.Telemetry().Refreshes(),
		"heartbeat_changes", s.Board.Heartbeat.Changes())
}

// Package main runs the dualdrive control loop against simulated
// peripherals.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"dualdrive/config"
	"dualdrive/core"
	"dualdrive/host/sim"
)

const (
	flagConfig     = "config"
	flagLeft       = "left"
	flagRight      = "right"
	flagDuration   = "duration"
	flagPressEvery = "press-every"
	flagBounce     = "bounce"
	flagVerbose    = "verbose"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:   "dualdrive-sim",
		Usage:  "run the dual motor control loop on simulated hardware",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load board configuration from `FILE`",
			},
			&cli.Float64Flag{
				Name:  flagLeft,
				Value: 0.5,
				Usage: "left potentiometer position in [0,1]",
			},
			&cli.Float64Flag{
				Name:  flagRight,
				Value: 0.5,
				Usage: "right potentiometer position in [0,1]",
			},
			&cli.DurationFlag{
				Name:  flagDuration,
				Value: 3 * time.Second,
				Usage: "how long to run",
			},
			&cli.DurationFlag{
				Name:  flagPressEvery,
				Usage: "press the direction button at this interval (0 disables)",
			},
			&cli.IntFlag{
				Name:  flagBounce,
				Value: 2,
				Usage: "extra bounce edges per button press",
			},
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "show the loop's debug log",
			},
		},
		Action: runAction,
	}
}

func loadConfig(path string) (*core.Config, error) {
	if path == "" {
		return config.LoadConfig([]byte("{}"))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func runAction(c *cli.Context) error {
	cfg, err := loadConfig(c.String(flagConfig))
	if err != nil {
		return err
	}

	zcfg := zap.NewDevelopmentConfig()
	if !c.Bool(flagVerbose) {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zl, err := zcfg.Build()
	if err != nil {
		return err
	}
	logger := zl.Sugar()
	defer func() {
		_ = logger.Sync()
	}()

	clk := clock.New()
	s, err := sim.New(*cfg, clk, logger, c.App.Writer)
	if err != nil {
		return err
	}
	s.Board.Pots[core.MotorLeft].Set(float32(c.Float64(flagLeft)))
	s.Board.Pots[core.MotorRight].Set(float32(c.Float64(flagRight)))
	core.InitAsyncDebug()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, c.Duration(flagDuration))
	defer cancel()

	if every := c.Duration(flagPressEvery); every > 0 {
		go pressButton(ctx, clk, s.Board.Button, every, c.Int(flagBounce))
	}

	logger.Infow("simulating", "direction_mode", cfg.DirectionMode, "duration", c.Duration(flagDuration))
	if err := s.Run(ctx); err != nil {
		return err
	}
	s.Report()

	core.DumpEventRingTo(func(msg string) {
		fmt.Fprintln(c.App.Writer, msg)
	})
	return nil
}

// pressButton presses b at every interval of clk until ctx ends
func pressButton(ctx context.Context, clk clock.Clock, b *sim.Button, every time.Duration, bounce int) {
	ticker := clk.Ticker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Press(bounce)
		}
	}
}

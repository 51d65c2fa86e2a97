// Package main is the dualdrive console: it follows a board's USB log and
// checks board configuration files.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dualdrive/config"
	"dualdrive/host/console"
	"dualdrive/host/serial"
)

const (
	flagDevice  = "device"
	flagBaud    = "baud"
	flagVerbose = "verbose"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "dualdrive-console",
		Usage:     "monitor and configure dualdrive boards",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "log every telemetry line",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "monitor",
				Usage: "follow the log a board writes to its USB port",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagDevice,
						Aliases: []string{"d"},
						Value:   "/dev/ttyACM0",
						Usage:   "serial `DEVICE` of the board",
					},
					&cli.IntFlag{
						Name:  flagBaud,
						Value: serial.DefaultConfig("").Baud,
						Usage: "baud rate (ignored by USB CDC)",
					},
				},
				Action: monitorAction,
			},
			{
				Name:      "check-config",
				Usage:     "validate a board configuration and print it with defaults applied",
				ArgsUsage: "FILE",
				Action:    checkConfigAction,
			},
		},
	}
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func monitorAction(c *cli.Context) (err error) {
	logger, err := newLogger(c.Bool(flagVerbose))
	if err != nil {
		return err
	}
	defer func() {
		// Sync fails on terminals; nothing to report there
		_ = logger.Sync()
	}()

	serialCfg := serial.DefaultConfig(c.String(flagDevice))
	serialCfg.Baud = c.Int(flagBaud)
	port, err := serial.Open(serialCfg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, port.Close())
	}()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	logger.Infow("monitoring", "device", serialCfg.Device)
	mon := console.NewMonitor(port, logger, true)
	if err := mon.Run(ctx); err != nil {
		return fmt.Errorf("reading %s: %w", serialCfg.Device, err)
	}

	stats := mon.Stats()
	logger.Infow("stats", "lines", stats.Lines, "telemetry", stats.Telemetry,
		"malformed", stats.Malformed, "direction_changes", stats.Toggles)
	if tlm, ok := mon.Latest(); ok {
		logger.Infow("last telemetry", "count_left", tlm.Counts[console.Left], "count_right", tlm.Counts[console.Right])
	}
	return nil
}

func checkConfigAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("check-config needs exactly one FILE argument")
	}
	path := c.Args().First()
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	resolved, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s\n", resolved)
	return nil
}

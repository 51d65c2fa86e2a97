package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Stats counts what a Monitor has seen
type Stats struct {
	Lines     int
	Telemetry int
	Malformed int
	Toggles   int
}

// Monitor reads board log lines and logs them as structured entries.
// Telemetry lines are decoded; the latest one is kept for Latest.
type Monitor struct {
	r      io.Reader
	logger *zap.SugaredLogger

	// follow treats io.EOF as an idle read, as a serial port with a read
	// timeout reports it
	follow bool

	mu      sync.Mutex
	stats   Stats
	latest  Telemetry
	haveTLM bool
	prevFwd [2]bool
}

// NewMonitor creates a monitor over r. With follow set, Run keeps reading
// past io.EOF until its context is cancelled.
func NewMonitor(r io.Reader, logger *zap.SugaredLogger, follow bool) *Monitor {
	return &Monitor{r: r, logger: logger, follow: follow}
}

// Run reads until the reader ends or ctx is cancelled. A cancelled context
// is not an error.
func (m *Monitor) Run(ctx context.Context) error {
	buf := make([]byte, 256)
	var pending []byte
	for {
		if ctx.Err() != nil {
			return nil
		}
		n, err := m.r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			for {
				idx := bytes.IndexByte(pending, '\n')
				if idx < 0 {
					break
				}
				m.HandleLine(string(pending[:idx]))
				pending = pending[idx+1:]
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if m.follow {
					continue
				}
				if len(pending) > 0 {
					m.HandleLine(string(pending))
				}
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// HandleLine logs one board log line
func (m *Monitor) HandleLine(line string) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Lines++

	if strings.HasPrefix(line, TelemetryPrefix) {
		tlm, err := ParseTelemetry(line)
		if err != nil {
			m.stats.Malformed++
			m.logger.Warnw("malformed telemetry", "line", line, "error", err)
			return
		}
		m.stats.Telemetry++
		if m.haveTLM && tlm.Forward != m.prevFwd {
			m.stats.Toggles++
			m.logger.Infow("direction changed", "left", tlm.Direction(Left), "right", tlm.Direction(Right))
		}
		m.latest, m.haveTLM, m.prevFwd = tlm, true, tlm.Forward
		m.logger.Debugw("telemetry",
			"count_left", tlm.Counts[Left], "count_right", tlm.Counts[Right],
			"duty_left", tlm.Duty[Left], "duty_right", tlm.Duty[Right],
			"volts_left", tlm.Volts[Left], "volts_right", tlm.Volts[Right])
		return
	}

	tag, msg := splitTag(line)
	switch tag {
	case "BOOT":
		m.logger.Errorw(msg, "source", tag)
	case "":
		m.logger.Infow(msg, "source", "board")
	default:
		m.logger.Infow(msg, "source", tag)
	}
}

// Latest returns the most recent telemetry, if any has arrived
func (m *Monitor) Latest() (Telemetry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest, m.haveTLM
}

// Stats returns the counters so far
func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// splitTag splits "[TAG] message" into TAG and message
func splitTag(line string) (string, string) {
	if !strings.HasPrefix(line, "[") {
		return "", line
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return "", line
	}
	return line[1:end], strings.TrimSpace(line[end+1:])
}

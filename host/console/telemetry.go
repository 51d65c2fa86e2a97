// Package console decodes the log a dualdrive board writes to its USB port.
package console

import (
	"fmt"
	"strconv"
	"strings"
)

// TelemetryPrefix marks a telemetry line in the board log
const TelemetryPrefix = "[TLM]"

// Motor indices, matching the firmware
const (
	Left  = 0
	Right = 1
)

// Telemetry is one decoded telemetry line
type Telemetry struct {
	Counts  [2]int32
	Duty    [2]float64
	Forward [2]bool
	Volts   [2]float64
}

// ParseTelemetry decodes a line of the form
//
//	[TLM] cl=-3 cr=12 dl=0.500 dr=0.000 fl=0 fr=1 vl=1.650 vr=0.000
//
// Unknown keys are ignored so newer firmware can add fields. Every known
// key must be present.
func ParseTelemetry(line string) (Telemetry, error) {
	var tlm Telemetry
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), TelemetryPrefix)
	if !ok {
		return tlm, fmt.Errorf("not a telemetry line: %q", line)
	}

	seen := map[string]bool{}
	for _, field := range strings.Fields(rest) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return tlm, fmt.Errorf("malformed telemetry field %q", field)
		}
		var err error
		switch key {
		case "cl":
			tlm.Counts[Left], err = parseCount(value)
		case "cr":
			tlm.Counts[Right], err = parseCount(value)
		case "dl":
			tlm.Duty[Left], err = strconv.ParseFloat(value, 64)
		case "dr":
			tlm.Duty[Right], err = strconv.ParseFloat(value, 64)
		case "fl":
			tlm.Forward[Left], err = parseFlag(value)
		case "fr":
			tlm.Forward[Right], err = parseFlag(value)
		case "vl":
			tlm.Volts[Left], err = strconv.ParseFloat(value, 64)
		case "vr":
			tlm.Volts[Right], err = strconv.ParseFloat(value, 64)
		default:
			continue
		}
		if err != nil {
			return tlm, fmt.Errorf("telemetry field %s: %w", key, err)
		}
		seen[key] = true
	}

	for _, key := range []string{"cl", "cr", "dl", "dr", "fl", "fr", "vl", "vr"} {
		if !seen[key] {
			return tlm, fmt.Errorf("telemetry line missing %s", key)
		}
	}
	return tlm, nil
}

func parseCount(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

func parseFlag(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("flag must be 0 or 1, got %q", s)
	}
}

// Direction returns "forward" or "reverse" for motor i
func (t Telemetry) Direction(i int) string {
	if t.Forward[i] {
		return "forward"
	}
	return "reverse"
}

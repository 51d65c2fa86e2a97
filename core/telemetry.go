package core

import "time"

// TelemetryScheduler throttles display refreshes to at most one per
// period, independent of how often the control loop iterates.
// Foreground use only.
type TelemetryScheduler struct {
	period      time.Duration
	lastRefresh time.Time
	refreshed   bool
	refreshes   uint32
}

// NewTelemetryScheduler creates a scheduler whose first MaybeRefresh
// always renders.
func NewTelemetryScheduler(period time.Duration) *TelemetryScheduler {
	return &TelemetryScheduler{period: period}
}

// MaybeRefresh calls render if at least one period has passed since the
// previous refresh, and reports whether it did.
func (s *TelemetryScheduler) MaybeRefresh(now time.Time, render func()) bool {
	if s.refreshed && now.Sub(s.lastRefresh) < s.period {
		return false
	}
	s.lastRefresh = now
	s.refreshed = true
	s.refreshes++
	render()
	return true
}

// Period returns the refresh period
func (s *TelemetryScheduler) Period() time.Duration {
	return s.period
}

// Refreshes returns how many times render has been called
func (s *TelemetryScheduler) Refreshes() uint32 {
	return s.refreshes
}

// Snapshot is the state shown on the status display
type Snapshot struct {
	Counts  [MotorCount]int32
	Duty    [MotorCount]float32
	Forward [MotorCount]bool
	Volts   [MotorCount]float32
}

// Display rows
const (
	rowCounts = 0
	rowDuty   = 1
	rowVolts  = 2
)

// RenderSnapshot draws s on d:
//
//	L:+1234 R:-56
//	L: 50% F R:100% R
//	L:1.65V R:3.23V
func RenderSnapshot(d Display, s Snapshot) {
	d.Clear()
	d.WriteText(rowCounts, 0, "L:"+signedItoa(int(s.Counts[MotorLeft]))+" R:"+signedItoa(int(s.Counts[MotorRight])))
	d.WriteText(rowDuty, 0,
		"L:"+padLeft(ftoa(s.Duty[MotorLeft]*100, 0), 3)+"% "+directionLetter(s.Forward[MotorLeft])+
			" R:"+padLeft(ftoa(s.Duty[MotorRight]*100, 0), 3)+"% "+directionLetter(s.Forward[MotorRight]))
	d.WriteText(rowVolts, 0, "L:"+ftoa(s.Volts[MotorLeft], 2)+"V R:"+ftoa(s.Volts[MotorRight], 2)+"V")
	flushDisplay(d)
}

// TelemetryLine formats s as a single key=value log line
func TelemetryLine(s Snapshot) string {
	return "[TLM]" +
		" cl=" + itoa(int(s.Counts[MotorLeft])) +
		" cr=" + itoa(int(s.Counts[MotorRight])) +
		" dl=" + ftoa(s.Duty[MotorLeft], 3) +
		" dr=" + ftoa(s.Duty[MotorRight], 3) +
		" fl=" + boolDigit(s.Forward[MotorLeft]) +
		" fr=" + boolDigit(s.Forward[MotorRight]) +
		" vl=" + ftoa(s.Volts[MotorLeft], 3) +
		" vr=" + ftoa(s.Volts[MotorRight], 3)
}

func directionLetter(forward bool) string {
	if forward {
		return "F"
	}
	return "R"
}

func boolDigit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

package core

// TimerFreq is the rate of the system tick counter. The RP2040 timer
// peripheral counts microseconds.
const TimerFreq = 1000000

// GetTime returns the current system time in timer ticks
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * TimerFreq / 1000000)
}

// TimerToUS converts timer ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}

// TimerFromHz returns the tick period of a frequency. Frequencies above
// TimerFreq collapse to a single tick.
func TimerFromHz(hz float32) uint32 {
	if hz <= 0 {
		return 0
	}
	ticks := uint32(float32(TimerFreq) / hz)
	if ticks == 0 {
		ticks = 1
	}
	return ticks
}

// timeBefore reports whether tick a is before tick b, tolerating wrap of
// the 32-bit counter (~71 minutes at 1MHz).
func timeBefore(a, b uint32) bool {
	return int32(a-b) < 0
}

// ProcessTimers processes scheduled timers. Targets call this from the
// timer alarm interrupt after refreshing the system time.
func ProcessTimers() {
	TimerDispatch(GetTime())
}

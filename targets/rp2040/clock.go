//go:build rp2040

package main

import (
	"device/rp"
	"dualdrive/core"
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x24 // Raw timer high word
	timerTIMERAWL = timerBase + 0x28 // Raw timer low word
)

// minAlarmLead keeps an alarm from being armed in the past. The alarm
// compares only the low 32 bits for equality, so a missed match would not
// fire again for ~71 minutes.
const minAlarmLead = 20

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// InitClock points the core clock at the 1MHz hardware timer and installs
// the alarm interrupt that dispatches core timers. ALARM0 belongs to the
// TinyGo runtime, so the scheduler uses ALARM1.
func InitClock() {
	core.SetTickSource(GetHardwareTime)

	irq := interrupt.New(rp.IRQ_TIMER_IRQ_1, alarmHandler)
	rp.TIMER.INTE.SetBits(rp.TIMER_INTE_ALARM_1)
	irq.SetPriority(0x40)
	irq.Enable()
}

// GetHardwareTime reads the low 32 bits of the microsecond counter
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// GetHardwareUptime reads the full 64-bit hardware timer
func GetHardwareUptime() uint64 {
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()

		// Retry if the high word rolled over between reads
		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// alarmHandler runs due core timers, then re-arms for the next one
func alarmHandler(interrupt.Interrupt) {
	rp.TIMER.INTR.Set(rp.TIMER_INTR_ALARM_1)
	core.ProcessTimers()
	ArmAlarm()
}

// ArmAlarm programs ALARM1 for the earliest scheduled core timer. Call
// after scheduling timers from the foreground.
func ArmAlarm() {
	wake, ok := core.NextWakeTime()
	if !ok {
		return
	}
	now := GetHardwareTime()
	if int32(wake-now) < minAlarmLead {
		wake = now + minAlarmLead
	}
	rp.TIMER.ALARM1.Set(wake)
}

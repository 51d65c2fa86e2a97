package core

import "testing"

// resetTimers drops every queued timer
func resetTimers() {
	state := disableInterrupts()
	timerList = nil
	restoreInterrupts(state)
}

func TestTimerDispatchOrder(t *testing.T) {
	resetTimers()
	defer resetTimers()

	var order []int
	newTimer := func(id int, wake uint32) *Timer {
		return &Timer{WakeTime: wake, Handler: func(*Timer) uint8 {
			order = append(order, id)
			return SF_DONE
		}}
	}

	ScheduleTimer(newTimer(3, 300))
	ScheduleTimer(newTimer(1, 100))
	ScheduleTimer(newTimer(2, 200))

	TimerDispatch(250)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("Expected timers 1,2 to fire by 250, got %v", order)
	}

	wake, ok := NextWakeTime()
	if !ok || wake != 300 {
		t.Errorf("Expected next wake 300, got %d (queued=%v)", wake, ok)
	}

	TimerDispatch(300)
	if len(order) != 3 || order[2] != 3 {
		t.Errorf("Expected timer 3 at 300, got %v", order)
	}
	if _, ok := NextWakeTime(); ok {
		t.Error("Expected empty schedule")
	}
}

func TestTimerDispatchAcrossWrap(t *testing.T) {
	resetTimers()
	defer resetTimers()

	var order []uint32
	handler := func(tm *Timer) uint8 {
		order = append(order, tm.WakeTime)
		return SF_DONE
	}

	ScheduleTimer(&Timer{WakeTime: 0x10, Handler: handler})
	ScheduleTimer(&Timer{WakeTime: 0xFFFFFF00, Handler: handler})

	TimerDispatch(0xFFFFFFF0)
	if len(order) != 1 || order[0] != 0xFFFFFF00 {
		t.Fatalf("Expected only the pre-wrap timer, got %v", order)
	}

	TimerDispatch(0x20)
	if len(order) != 2 || order[1] != 0x10 {
		t.Errorf("Expected post-wrap timer after counter wrap, got %v", order)
	}
}

func TestTimerReschedule(t *testing.T) {
	resetTimers()
	defer resetTimers()

	fired := 0
	tm := &Timer{WakeTime: 10}
	tm.Handler = func(t *Timer) uint8 {
		fired++
		t.WakeTime += 10
		return SF_RESCHEDULE
	}
	ScheduleTimer(tm)

	TimerDispatch(35)
	if fired != 3 {
		t.Errorf("Expected 3 firings by 35, got %d", fired)
	}

	CancelTimer(tm)
	TimerDispatch(100)
	if fired != 3 {
		t.Errorf("Expected cancelled timer not to fire, got %d firings", fired)
	}
}

func TestScheduleTimerTwiceKeepsOneEntry(t *testing.T) {
	resetTimers()
	defer resetTimers()

	fired := 0
	tm := &Timer{WakeTime: 10, Handler: func(*Timer) uint8 {
		fired++
		return SF_DONE
	}}
	ScheduleTimer(tm)
	tm.WakeTime = 20
	ScheduleTimer(tm)

	TimerDispatch(50)
	if fired != 1 {
		t.Errorf("Expected one firing, got %d", fired)
	}
}

func TestTimerConversions(t *testing.T) {
	if TimerFromUS(50) != 50 {
		t.Errorf("Expected 50 ticks for 50us, got %d", TimerFromUS(50))
	}
	if TimerToUS(1000) != 1000 {
		t.Errorf("Expected 1000us for 1000 ticks, got %d", TimerToUS(1000))
	}
	if TimerFromHz(100) != 10000 {
		t.Errorf("Expected 10000 ticks for 100Hz, got %d", TimerFromHz(100))
	}
	if TimerFromHz(0) != 0 {
		t.Errorf("Expected 0 ticks for 0Hz, got %d", TimerFromHz(0))
	}
	if TimerFromHz(5e6) != 1 {
		t.Errorf("Expected 1 tick above the timer rate, got %d", TimerFromHz(5e6))
	}
}

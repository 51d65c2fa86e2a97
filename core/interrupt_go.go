//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// irqMu stands in for the interrupt mask on regular Go. Simulated interrupt
// sources run on their own goroutines, so the critical section is a mutex.
var irqMu sync.Mutex

// disableInterrupts enters the critical section shared with simulated handlers
func disableInterrupts() State {
	irqMu.Lock()
	return 0
}

// restoreInterrupts leaves the critical section
func restoreInterrupts(state State) {
	irqMu.Unlock()
}

// ringMu guards the event ring. It is separate from irqMu because timer
// handlers record events while TimerDispatch holds irqMu.
var ringMu sync.Mutex

func lockRing() State {
	ringMu.Lock()
	return 0
}

func unlockRing(state State) {
	ringMu.Unlock()
}

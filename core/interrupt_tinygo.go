//go:build tinygo

package core

import "runtime/interrupt"

// State is the saved interrupt mask returned by disableInterrupts
type State = interrupt.State

// disableInterrupts masks interrupts on the (single) core and returns the
// previous mask
func disableInterrupts() State {
	return interrupt.Disable()
}

// restoreInterrupts restores the interrupt mask saved by disableInterrupts
func restoreInterrupts(state State) {
	interrupt.Restore(state)
}

// lockRing guards the event ring. Masking nests, so it is safe inside
// timer handlers that already run with interrupts disabled.
func lockRing() State {
	return interrupt.Disable()
}

func unlockRing(state State) {
	interrupt.Restore(state)
}

//go:build tinygo

package core

import "sync/atomic"

var (
	systemTicksValue atomic.Uint32

	// tickSource reads the free-running hardware counter, when registered
	tickSource func() uint32
)

// SetTickSource registers the target's hardware counter read.
func SetTickSource(read func() uint32) {
	tickSource = read
}

// getSystemTicks returns the current system ticks
func getSystemTicks() uint32 {
	if tickSource != nil {
		return tickSource()
	}
	return systemTicksValue.Load()
}

// setSystemTicks sets the system ticks
func setSystemTicks(ticks uint32) {
	systemTicksValue.Store(ticks)
}

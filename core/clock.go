package core

import "time"

// Clock is the monotonic time source of the foreground loop.
// github.com/benbjohnson/clock's Clock and Mock both satisfy it.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	Sleep(d time.Duration)
}

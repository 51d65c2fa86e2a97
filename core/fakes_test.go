package core

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// fakeSource is an AnalogSource returning a settable value
type fakeSource struct {
	bits  atomic.Uint32
	reads atomic.Uint32
}

func newFakeSource(v float32) *fakeSource {
	s := &fakeSource{}
	s.Set(v)
	return s
}

func (s *fakeSource) Set(v float32) {
	s.bits.Store(math.Float32bits(v))
}

func (s *fakeSource) Read() float32 {
	s.reads.Add(1)
	return math.Float32frombits(s.bits.Load())
}

// fakePWM records the configured period and every duty written
type fakePWM struct {
	period    time.Duration
	periodErr error
	writes    []float32
}

func (p *fakePWM) SetPeriod(period time.Duration) error {
	if p.periodErr != nil {
		return p.periodErr
	}
	p.period = period
	return nil
}

func (p *fakePWM) Write(duty float32) {
	p.writes = append(p.writes, duty)
}

func (p *fakePWM) last() float32 {
	if len(p.writes) == 0 {
		return -1
	}
	return p.writes[len(p.writes)-1]
}

// fakePin is a DigitalIn and DigitalOut
type fakePin struct {
	level   atomic.Bool
	changes atomic.Uint32
}

func (p *fakePin) Set(v bool) {
	if p.level.Swap(v) != v {
		p.changes.Add(1)
	}
}

func (p *fakePin) Get() bool {
	return p.level.Load()
}

// fakeEdge is an EdgeSource the test fires by hand
type fakeEdge struct {
	callback func()
	err      error
}

func (e *fakeEdge) OnEdge(callback func()) error {
	if e.err != nil {
		return e.err
	}
	e.callback = callback
	return nil
}

func (e *fakeEdge) fire() {
	e.callback()
}

// fakeDisplay keeps the text of each row
type fakeDisplay struct {
	mu     sync.Mutex
	rows   map[int]string
	clears int
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{rows: make(map[int]string)}
}

func (d *fakeDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rows = make(map[int]string)
	d.clears++
}

func (d *fakeDisplay) WriteText(row, col int, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rows[row] = text
}

func (d *fakeDisplay) row(r int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rows[r]
}

// stepClock is a mock clock whose Sleep advances time instead of blocking.
// onSleep runs before time moves, standing in for interrupts that fire
// while the loop waits.
type stepClock struct {
	*clock.Mock
	onSleep func(d time.Duration)
	slept   []time.Duration
}

func newStepClock() *stepClock {
	return &stepClock{Mock: clock.NewMock()}
}

func (c *stepClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	if c.onSleep != nil {
		c.onSleep(d)
	}
	c.Add(d)
}

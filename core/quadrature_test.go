package core

import "testing"

func TestQuadratureCountsUpWithPhaseHigh(t *testing.T) {
	phase := &fakePin{}
	phase.Set(true)
	q := NewQuadratureCounter(phase, true)

	for i := 0; i < 25; i++ {
		q.OnEdge()
	}

	if q.Count() != 25 {
		t.Errorf("Expected count 25, got %d", q.Count())
	}
	if !q.LastPhase() {
		t.Error("Expected last phase high")
	}
}

func TestQuadratureCountsDownWithPhaseLow(t *testing.T) {
	phase := &fakePin{}
	q := NewQuadratureCounter(phase, true)

	for i := 0; i < 25; i++ {
		q.OnEdge()
	}

	if q.Count() != -25 {
		t.Errorf("Expected count -25, got %d", q.Count())
	}
}

func TestQuadratureAlternatingPhase(t *testing.T) {
	phase := &fakePin{}
	q := NewQuadratureCounter(phase, true)

	highs, lows := 0, 0
	for i := 0; i < 17; i++ {
		high := i%3 != 0
		phase.Set(high)
		if high {
			highs++
		} else {
			lows++
		}
		q.OnEdge()
	}

	if q.Count() != int32(highs-lows) {
		t.Errorf("Expected count %d, got %d", highs-lows, q.Count())
	}
}

func TestQuadratureReversedPolarity(t *testing.T) {
	phase := &fakePin{}
	phase.Set(true)
	q := NewQuadratureCounter(phase, false)

	for i := 0; i < 4; i++ {
		q.OnEdge()
	}

	if q.Count() != -4 {
		t.Errorf("Expected count -4 with reversed polarity, got %d", q.Count())
	}
}

func TestQuadratureAttachAndReset(t *testing.T) {
	phase := &fakePin{}
	phase.Set(true)
	pulse := &fakeEdge{}
	q := NewQuadratureCounter(phase, true)

	if err := q.Attach(pulse); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	pulse.fire()
	pulse.fire()

	if q.Count() != 2 {
		t.Errorf("Expected count 2 after two edges, got %d", q.Count())
	}

	q.Reset()
	if q.Count() != 0 {
		t.Errorf("Expected count 0 after reset, got %d", q.Count())
	}
}

func TestQuadratureConcurrentEdges(t *testing.T) {
	phase := &fakePin{}
	phase.Set(true)
	q := NewQuadratureCounter(phase, true)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			q.OnEdge()
		}
		close(done)
	}()

	// Snapshot reads must be monotonic while only up-counts happen.
	last := int32(0)
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		c := q.Count()
		if c < last {
			t.Fatalf("Count went backwards: %d after %d", c, last)
		}
		last = c
	}

	if q.Count() != 10000 {
		t.Errorf("Expected count 10000, got %d", q.Count())
	}
}

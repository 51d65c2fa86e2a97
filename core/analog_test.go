package core

import (
	"sync"
	"testing"
)

func TestAnalogChannelVoltageInvariant(t *testing.T) {
	src := newFakeSource(0)
	ch := NewAnalogChannel(3.3)
	s := NewPeriodicSampler(ch, src, 100)

	for _, v := range []float32{0, 0.02, 0.5, 0.731, 0.98, 1} {
		src.Set(v)
		s.Sample()

		if ch.Normalized() != v {
			t.Errorf("Expected normalized %v, got %v", v, ch.Normalized())
		}
		if ch.Voltage() != ch.Normalized()*ch.Reference() {
			t.Errorf("Voltage %v != normalized %v * reference %v", ch.Voltage(), ch.Normalized(), ch.Reference())
		}
	}
}

func TestAnalogChannelInitialState(t *testing.T) {
	ch := NewAnalogChannel(5)
	n, v := ch.Reading()
	if n != 0 || v != 0 {
		t.Errorf("Expected zero reading before first sample, got %v/%v", n, v)
	}
	if ch.Reference() != 5 {
		t.Errorf("Expected reference 5, got %v", ch.Reference())
	}
}

func TestAnalogChannelNoTornReads(t *testing.T) {
	ch := NewAnalogChannel(3.3)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			ch.store(float32(i%1000) / 1000)
		}
	}()

	for i := 0; i < 20000; i++ {
		n, v := ch.Reading()
		if v != n*ch.Reference() {
			close(stop)
			wg.Wait()
			t.Fatalf("Torn read: normalized %v with voltage %v", n, v)
		}
	}
	close(stop)
	wg.Wait()
}

func TestPeriodicSamplerTimer(t *testing.T) {
	resetTimers()
	defer resetTimers()
	SetTime(1000)

	src := newFakeSource(0.25)
	ch := NewAnalogChannel(3.3)
	s := NewPeriodicSampler(ch, src, 100)

	if s.PeriodTicks() != 10000 {
		t.Fatalf("Expected 10000 tick period at 100Hz, got %d", s.PeriodTicks())
	}

	s.Start()
	if s.Samples() != 1 || ch.Normalized() != 0.25 {
		t.Fatalf("Expected initial sample 0.25, got %v after %d samples", ch.Normalized(), s.Samples())
	}

	ProcessTimers()
	if s.Samples() != 1 {
		t.Errorf("Expected no sample before the period elapses, got %d", s.Samples())
	}

	src.Set(0.75)
	SetTime(11000)
	ProcessTimers()
	if s.Samples() != 2 {
		t.Errorf("Expected 2 samples after one period, got %d", s.Samples())
	}
	if ch.Normalized() != 0.75 {
		t.Errorf("Expected normalized 0.75, got %v", ch.Normalized())
	}

	wake, ok := NextWakeTime()
	if !ok || wake != 21000 {
		t.Errorf("Expected next sample at 21000, got %d (queued=%v)", wake, ok)
	}

	s.Stop()
	SetTime(50000)
	ProcessTimers()
	if s.Samples() != 2 {
		t.Errorf("Expected stopped sampler to stay at 2 samples, got %d", s.Samples())
	}
}

func TestPeriodicSamplerSkipsMissedPeriods(t *testing.T) {
	resetTimers()
	defer resetTimers()
	SetTime(0)

	s := NewPeriodicSampler(NewAnalogChannel(3.3), newFakeSource(0.5), 1000)
	s.Start()

	// Dispatch runs late by several periods: one catch-up sample, not a burst.
	SetTime(5500)
	ProcessTimers()
	if s.Samples() != 2 {
		t.Errorf("Expected a single catch-up sample, got %d samples", s.Samples())
	}
	wake, _ := NextWakeTime()
	if wake != 6500 {
		t.Errorf("Expected next wake 6500, got %d", wake)
	}
	s.Stop()
}

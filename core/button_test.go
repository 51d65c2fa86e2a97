package core

import "testing"

func TestButtonLatchConsumeOnce(t *testing.T) {
	b := NewButtonLatch()
	if b.Consume() {
		t.Fatal("Expected idle latch to have nothing pending")
	}

	SetTime(4242)
	b.OnEdge()
	if !b.Pending() {
		t.Fatal("Expected press to be pending")
	}
	if b.LastTransition() != 4242 {
		t.Errorf("Expected last transition 4242, got %d", b.LastTransition())
	}

	if !b.Consume() {
		t.Error("Expected first Consume to return true")
	}
	if b.Consume() {
		t.Error("Expected second Consume to return false")
	}
}

func TestButtonLatchRepeatedEdgesCollapse(t *testing.T) {
	b := NewButtonLatch()
	edge := &fakeEdge{}
	if err := b.Attach(edge); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	edge.fire()
	edge.fire()
	edge.fire()

	if b.Edges() != 3 {
		t.Errorf("Expected 3 edges counted, got %d", b.Edges())
	}
	if !b.Consume() || b.Consume() {
		t.Error("Expected several edges before a Consume to latch a single press")
	}
}

func TestButtonLatchDiscard(t *testing.T) {
	b := NewButtonLatch()
	if b.Discard() {
		t.Error("Expected nothing to discard")
	}
	b.OnEdge()
	if !b.Discard() {
		t.Error("Expected pending press to be discarded")
	}
	if b.Pending() {
		t.Error("Expected latch idle after discard")
	}
}

func TestButtonLatchConcurrentPressNotLost(t *testing.T) {
	b := NewButtonLatch()
	const presses = 5000

	done := make(chan struct{})
	go func() {
		for i := 0; i < presses; i++ {
			b.OnEdge()
		}
		close(done)
	}()

	consumed := 0
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		if b.Consume() {
			consumed++
		}
	}
	if b.Consume() {
		consumed++
	}

	// Presses may collapse, but the last one must always be observed.
	if consumed == 0 || consumed > presses {
		t.Errorf("Expected between 1 and %d consumed presses, got %d", presses, consumed)
	}
	if b.Pending() {
		t.Error("Expected no press left pending")
	}
}

func TestButtonLatchDiscardAfterConsume(t *testing.T) {
	b := NewButtonLatch()
	b.OnEdge()
	if !b.Consume() {
		t.Fatal("Expected the press to be consumed")
	}
	if b.Discard() {
		t.Error("Expected nothing left to discard after Consume")
	}
	b.OnEdge()
	if !b.Discard() {
		t.Error("Expected a press latched after Consume to be discarded")
	}
	if b.Pending() {
		t.Error("Expected latch clear after Discard")
	}
}

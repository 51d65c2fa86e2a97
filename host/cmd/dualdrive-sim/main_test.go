package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"dualdrive/core"
	"dualdrive/host/sim"
)

func TestRunSimulation(t *testing.T) {
	var out bytes.Buffer
	err := newApp(&out).Run([]string{"dualdrive-sim", "--duration", "250ms", "--left", "0.9", "--right", "0.1"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "[LCD] Bipolar Mode Active")
	test.That(t, out.String(), test.ShouldContainSubstring, "[EVENTS] === Event Ring Dump ===")
	test.That(t, out.String(), test.ShouldContainSubstring, "[EVENTS] === End Dump ===")
}

func TestRunSimulationBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	test.That(t, os.WriteFile(path, []byte(`{"direction_mode": "sideways"}`), 0o600), test.ShouldBeNil)

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"dualdrive-sim", "--config", path})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "direction_mode")
}

func TestPressButtonFollowsClock(t *testing.T) {
	mock := clock.NewMock()
	var button sim.Button
	latch := core.NewButtonLatch()
	test.That(t, latch.Attach(&button), test.ShouldBeNil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		pressButton(ctx, mock, &button, time.Second, 1)
		close(done)
	}()

	// Let the goroutine create its ticker before time moves
	for i := 0; i < 100 && latch.Edges() == 0; i++ {
		mock.Add(time.Second)
	}
	cancel()
	<-done

	test.That(t, latch.Edges(), test.ShouldBeGreaterThanOrEqualTo, uint32(2))
	test.That(t, latch.Edges()%2, test.ShouldEqual, uint32(0))
}

package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep() int {
	s.calls.Add(1)
	return 1
}

func TestSessionSweeperRunsUntilCancelled(t *testing.T) {
	sw := &countingSweeper{}
	w := NewSessionSweeper(sw, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for sw.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
	if sw.calls.Load() < 2 {
		t.Errorf("sweeps = %d, want at least 2", sw.calls.Load())
	}
}

func TestSweepOnce(t *testing.T) {
	sw := &countingSweeper{}
	w := NewSessionSweeper(sw, time.Hour, zerolog.Nop())
	if got := w.sweepOnce(); got != 1 {
		t.Errorf("sweepOnce = %d, want 1", got)
	}
}

package sim

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingTicker struct {
	n atomic.Int64
}

func (c *countingTicker) Tick() StepResult {
	return StepResult{Tick: uint64(c.n.Add(1))}
}

func TestClockRunUntilCancelled(t *testing.T) {
	target := &countingTicker{}
	clk := NewClock(time.Millisecond, target)
	fired := make(chan struct{}, 64)
	clk.OnTick = func(StepResult) {
		select {
		case fired <- struct{}{}:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- clk.Run(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case <-fired:
		case <-time.After(2 * time.Second):
			t.Fatal("clock did not tick")
		}
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if target.n.Load() < 3 {
		t.Errorf("ticks = %d, want >= 3", target.n.Load())
	}
}

func TestClockStop(t *testing.T) {
	clk := NewClock(time.Hour, &countingTicker{})
	done := make(chan error, 1)
	go func() { done <- clk.Run(context.Background()) }()

	clk.Stop()
	clk.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestNewClockDefaultPeriod(t *testing.T) {
	if got := NewClock(0, &countingTicker{}).Period(); got != 100*time.Millisecond {
		t.Errorf("Period() = %v, want 100ms", got)
	}
}

func TestFrameClockAdvance(t *testing.T) {
	fc := NewFrameClock(100 * time.Millisecond)

	if fc.Advance(0.05) {
		t.Error("tick fired before period elapsed")
	}
	if !fc.Advance(0.05) {
		t.Error("tick did not fire at period")
	}
	// A long frame fires once and does not bank the remainder.
	if !fc.Advance(1.0) {
		t.Error("long frame did not fire")
	}
	if fc.Advance(0.01) {
		t.Error("long frame was caught up")
	}
}

func TestFrameClockPause(t *testing.T) {
	fc := NewFrameClock(100 * time.Millisecond)
	if !fc.TogglePause() {
		t.Fatal("TogglePause should report paused")
	}
	if fc.Advance(5) {
		t.Error("paused clock fired")
	}
	fc.SetPaused(false)
	if fc.Paused() {
		t.Error("clock still paused")
	}
	fc.Advance(0.09)
	fc.Restart()
	if fc.Advance(0.05) {
		t.Error("Restart did not clear accumulated time")
	}
}

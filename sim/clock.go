package sim

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Ticker performs one logical tick per call.
type Ticker interface {
	Tick() StepResult
}

// Clock drives a Ticker at a fixed wall-clock period. Each fire performs
// exactly one tick; missed fires are not caught up.
type Clock struct {
	period time.Duration
	target Ticker

	// OnTick, when set, is called after every tick from the clock goroutine.
	OnTick func(StepResult)

	stopOnce sync.Once
	stop     chan struct{}
}

// NewClock creates a clock. Non-positive periods fall back to 100ms.
func NewClock(period time.Duration, target Ticker) *Clock {
	if period <= 0 {
		period = 100 * time.Millisecond
	}
	return &Clock{
		period: period,
		target: target,
		stop:   make(chan struct{}),
	}
}

// Period returns the tick period.
func (c *Clock) Period() time.Duration {
	return c.period
}

// Run ticks until ctx is cancelled or Stop is called. It blocks.
func (c *Clock) Run(ctx context.Context) error {
	t := time.NewTicker(c.period)
	defer t.Stop()

	slog.Info("simulation clock started", "period", c.period)
	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation clock stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-c.stop:
			slog.Info("simulation clock stopped", "reason", "stop")
			return nil
		case <-t.C:
			res := c.target.Tick()
			if c.OnTick != nil {
				c.OnTick(res)
			}
		}
	}
}

// Stop ends Run. Safe to call more than once.
func (c *Clock) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// FrameClock paces ticks from a render loop's frame deltas: at most one
// tick per frame, fired once the accumulated time reaches the period.
type FrameClock struct {
	period float64
	acc    float64
	paused bool
}

// NewFrameClock creates a frame-driven clock.
func NewFrameClock(period time.Duration) *FrameClock {
	if period <= 0 {
		period = 100 * time.Millisecond
	}
	return &FrameClock{period: period.Seconds()}
}

// Advance adds dt seconds and reports whether a tick is due. The
// accumulator restarts from zero after a tick, so long frames never fire
// more than once.
func (f *FrameClock) Advance(dt float64) bool {
	if f.paused {
		return false
	}
	f.acc += dt
	if f.acc < f.period {
		return false
	}
	f.acc = 0
	return true
}

// SetPaused stops or resumes ticking.
func (f *FrameClock) SetPaused(paused bool) {
	f.paused = paused
}

// TogglePause flips the paused state and returns it.
func (f *FrameClock) TogglePause() bool {
	f.paused = !f.paused
	return f.paused
}

// Paused reports whether ticking is suspended.
func (f *FrameClock) Paused() bool {
	return f.paused
}

// Restart clears accumulated time.
func (f *FrameClock) Restart() {
	f.acc = 0
}

package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/telemetry"
)

// ErrUnbounded is returned for a fast headless run with no tick limit.
var ErrUnbounded = errors.New("fast headless run needs a tick limit")

// HeadlessOptions configures a run without a window.
type HeadlessOptions struct {
	MaxTicks int  // stop after this many ticks; 0 = until the context ends
	Realtime bool // pace ticks at the configured period instead of running flat out
}

// RunHeadless ticks the plant until MaxTicks or ctx ends and returns the
// final state. A context ending is not an error.
func (s *Session) RunHeadless(ctx context.Context, opts HeadlessOptions) (sim.State, error) {
	start := time.Now()
	slog.Info("starting headless simulation",
		"max_ticks", opts.MaxTicks,
		"realtime", opts.Realtime,
	)

	var err error
	if opts.Realtime {
		err = s.runRealtime(ctx, opts.MaxTicks)
	} else {
		err = s.runFast(ctx, opts.MaxTicks)
	}

	final := s.ctrl.Snapshot()
	slog.Info("headless simulation finished",
		"tick", final.Tick,
		"sim_time", final.ElapsedTime,
		"wall", time.Since(start).Round(time.Millisecond),
		"windows", s.rec.Windows(),
	)
	return final, err
}

func (s *Session) runFast(ctx context.Context, maxTicks int) error {
	if maxTicks <= 0 && ctx.Done() == nil {
		return ErrUnbounded
	}
	for n := 0; maxTicks <= 0 || n < maxTicks; n++ {
		if ctx.Err() != nil {
			return nil
		}
		s.perf.StartFrame()
		s.perf.StartPhase(telemetry.PhaseTick)
		s.ctrl.Tick()
		s.perf.EndFrame()
		s.FlushPerf()
	}
	slog.Info("max ticks reached", "tick", maxTicks)
	return nil
}

func (s *Session) runRealtime(ctx context.Context, maxTicks int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clock := sim.NewClock(s.params.TickPeriod, s.ctrl)
	ticks := 0
	clock.OnTick = func(sim.StepResult) {
		s.FlushPerf()
		ticks++
		if maxTicks > 0 && ticks >= maxTicks {
			slog.Info("max ticks reached", "tick", ticks)
			clock.Stop()
		}
	}

	err := clock.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

package telemetry

import (
	"log/slog"
	"sync"

	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/topology"
)

// RecorderOptions configures a Recorder.
type RecorderOptions struct {
	TicksPerWindow int
	RecordEvery    int  // ticks between ticks.csv rows
	LogStats       bool // log each window with slog
}

// Recorder is the controller's telemetry observer. It feeds the window
// collector and event detector and writes their output.
type Recorder struct {
	mu          sync.Mutex
	collector   *Collector
	events      *EventDetector
	out         *OutputManager
	recordEvery uint64
	logStats    bool

	last    WindowStats
	windows int
	err     error
}

// NewRecorder creates a recorder. out may be nil.
func NewRecorder(net *topology.Network, out *OutputManager, opts RecorderOptions) *Recorder {
	every := opts.RecordEvery
	if every < 1 {
		every = 1
	}
	return &Recorder{
		collector:   NewCollector(opts.TicksPerWindow),
		events:      NewEventDetector(net),
		out:         out,
		recordEvery: uint64(every),
		logStats:    opts.LogStats,
	}
}

// OnStep implements sim.StepObserver.
func (r *Recorder) OnStep(res sim.StepResult, s sim.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.collector.Record(res)

	if res.Tick%r.recordEvery == 0 {
		r.keep(r.out.WriteTick(NewTickRecord(res, s)))
	}
	if res.Sampled {
		r.keep(r.out.WriteSample(SampleRecord{Tick: res.Tick, Time: res.Sample.Time, Temperature: res.Sample.Temperature}))
	}
	if evs := r.events.Observe(s); len(evs) > 0 {
		for _, ev := range evs {
			slog.Debug("plant event", "tick", ev.Tick, "event", ev.Type, "subject", ev.Subject)
		}
		r.keep(r.out.WriteEvents(evs))
	}

	if r.collector.ShouldFlush(s.Tick) {
		stats := r.collector.Flush(s)
		r.last = stats
		r.windows++
		if r.logStats {
			stats.LogStats()
		}
		r.keep(r.out.WriteWindow(stats))
	}
}

// keep retains the first write error and logs it once.
func (r *Recorder) keep(err error) {
	if err == nil || r.err != nil {
		return
	}
	r.err = err
	slog.Error("telemetry output failed", "error", err)
}

// LastWindow returns the most recent window stats and whether any window
// has completed.
func (r *Recorder) LastWindow() (WindowStats, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.windows > 0
}

// Windows returns the number of completed windows.
func (r *Recorder) Windows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.windows
}

// Err returns the first output error, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

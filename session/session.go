// Package session assembles one running plant: the controller and its
// state, the chart sink, and telemetry output. Both the window and the
// headless runner drive a Session.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/tanksim/chart"
	"github.com/pthm-cable/tanksim/config"
	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/telemetry"
	"github.com/pthm-cable/tanksim/topology"
)

// ErrNoChart is returned when exporting a chart that was never shown.
var ErrNoChart = errors.New("chart was never shown")

// perfWindow is the number of frames the perf collector averages over.
const perfWindow = 120

// Options configures a Session.
type Options struct {
	OutputDir string // CSV and config snapshot directory; empty disables output
	LogStats  bool   // log each stats window
	LogPerf   bool   // log frame timing with each stats window
	ShowChart bool   // build and show the chart from the first tick
}

// Session owns a plant and everything observing it.
type Session struct {
	cfg    *config.Config
	net    *topology.Network
	params sim.Params

	ctrl  *sim.Controller
	chart *chart.Lazy
	out   *telemetry.OutputManager
	rec   *telemetry.Recorder
	perf  *telemetry.PerfCollector

	logPerf        bool
	perfWindowsOut int
}

// New builds a session from the loaded config.
func New(cfg *config.Config, opts Options) (*Session, error) {
	net := topology.Default()
	if err := net.Validate(); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	params := cfg.Params()
	state, err := sim.NewState(net, params)
	if err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}

	out, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := out.WriteConfig(cfg); err != nil {
		out.Close()
		return nil, err
	}

	s := &Session{
		cfg:     cfg,
		net:     net,
		params:  params,
		ctrl:    sim.NewController(sim.NewEngine(net, params), state),
		chart:   chart.NewLazy(cfg.Chart.MaxSamples),
		out:     out,
		perf:    telemetry.NewPerfCollector(perfWindow),
		logPerf: opts.LogPerf,
	}
	s.rec = telemetry.NewRecorder(net, out, telemetry.RecorderOptions{
		TicksPerWindow: cfg.Derived.TicksPerWindow,
		RecordEvery:    cfg.Telemetry.RecordEvery,
		LogStats:       opts.LogStats,
	})

	s.ctrl.SetSampleSink(s.chart)
	s.ctrl.AddObserver(s.rec)
	if opts.ShowChart {
		s.chart.Show()
	}

	slog.Info("session created",
		"tick_period", params.TickPeriod,
		"tick_size", params.TickSize,
		"clamp_branch_overflow", params.ClampBranchOverflow,
		"output_dir", opts.OutputDir,
	)
	return s, nil
}

// Config returns the configuration the session was built from.
func (s *Session) Config() *config.Config { return s.cfg }

// Network returns the plant graph.
func (s *Session) Network() *topology.Network { return s.net }

// Params returns the engine coefficients.
func (s *Session) Params() sim.Params { return s.params }

// Controller returns the single writer of the plant state.
func (s *Session) Controller() *sim.Controller { return s.ctrl }

// Chart returns the lazily built pump temperature chart.
func (s *Session) Chart() *chart.Lazy { return s.chart }

// Recorder returns the telemetry observer.
func (s *Session) Recorder() *telemetry.Recorder { return s.rec }

// Perf returns the frame timing collector.
func (s *Session) Perf() *telemetry.PerfCollector { return s.perf }

// Submit queues commands for the next tick.
func (s *Session) Submit(cmds ...sim.Command) {
	for _, cmd := range cmds {
		s.ctrl.Submit(cmd)
	}
}

// Tick advances the plant one step.
func (s *Session) Tick() sim.StepResult {
	return s.ctrl.Tick()
}

// FlushPerf writes frame timing once per completed stats window.
func (s *Session) FlushPerf() {
	n := s.rec.Windows()
	if n == s.perfWindowsOut {
		return
	}
	s.perfWindowsOut = n
	last, _ := s.rec.LastWindow()
	stats := s.perf.Stats()
	if s.logPerf {
		stats.LogStats()
	}
	if err := s.out.WritePerf(stats, last.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// ExportChart writes the chart to a PNG using the configured size.
func (s *Session) ExportChart(path string) error {
	if !s.chart.Built() {
		return ErrNoChart
	}
	return s.chart.Series().SavePNG(path, s.cfg.Chart.PNGWidthIn, s.cfg.Chart.PNGHeightIn)
}

// Close flushes and closes telemetry output. It returns the first error
// seen while recording or closing.
func (s *Session) Close() error {
	recErr := s.rec.Err()
	closeErr := s.out.Close()
	if recErr != nil {
		return recErr
	}
	return closeErr
}

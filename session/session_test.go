package session

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/config"
	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/telemetry"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestNewWithoutOutput(t *testing.T) {
	s, err := New(loadConfig(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if s.Chart().Built() {
		t.Error("chart built before it was shown")
	}
	s.Tick()
	if got := s.Controller().Snapshot().Tick; got != 1 {
		t.Errorf("tick = %d, want 1", got)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestRunHeadlessFast(t *testing.T) {
	dir := t.TempDir()
	s, err := New(loadConfig(t), Options{OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	s.Submit(sim.SetTankLevel{Tank: components.Tank1, Percent: 50}, sim.TogglePump{})

	final, err := s.RunHeadless(context.Background(), HeadlessOptions{MaxTicks: 30})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	if final.Tick != 30 {
		t.Errorf("final tick = %d, want 30", final.Tick)
	}
	if got := final.Tanks[components.Tank1].Amount; math.Abs(got-20) > 1e-9 {
		t.Errorf("tank1 = %v, want 20", got)
	}
	if !final.Pump.Running {
		t.Error("scripted pump start was not applied")
	}
	for _, name := range []string{"config.yaml", "ticks.csv", "samples.csv", "events.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestRunHeadlessUnbounded(t *testing.T) {
	s, err := New(loadConfig(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.RunHeadless(context.Background(), HeadlessOptions{}); !errors.Is(err, ErrUnbounded) {
		t.Errorf("err = %v, want ErrUnbounded", err)
	}
}

func TestRunHeadlessCancelled(t *testing.T) {
	s, err := New(loadConfig(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	final, err := s.RunHeadless(ctx, HeadlessOptions{})
	if err != nil {
		t.Fatalf("cancelled run returned %v", err)
	}
	if final.Tick != 0 {
		t.Errorf("cancelled run ticked %d times", final.Tick)
	}
}

func TestRunHeadlessRealtime(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Derived.TickPeriod = time.Millisecond
	s, err := New(cfg, Options{})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	final, err := s.RunHeadless(ctx, HeadlessOptions{MaxTicks: 5, Realtime: true})
	if err != nil {
		t.Fatal(err)
	}
	if final.Tick != 5 {
		t.Errorf("final tick = %d, want 5", final.Tick)
	}
}

func TestExportChart(t *testing.T) {
	s, err := New(loadConfig(t), Options{})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "pump.png")
	if err := s.ExportChart(path); !errors.Is(err, ErrNoChart) {
		t.Errorf("err = %v, want ErrNoChart", err)
	}

	shown, err := New(loadConfig(t), Options{ShowChart: true})
	if err != nil {
		t.Fatal(err)
	}
	shown.Submit(sim.TogglePump{})
	if _, err := shown.RunHeadless(context.Background(), HeadlessOptions{MaxTicks: 20}); err != nil {
		t.Fatal(err)
	}
	if got := shown.Chart().Series().Len(); got != 20 {
		t.Errorf("chart samples = %d, want 20", got)
	}
	if err := shown.ExportChart(path); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("chart PNG missing or empty: %v", err)
	}
}

func TestPerfWrittenPerWindow(t *testing.T) {
	dir := t.TempDir()
	s, err := New(loadConfig(t), Options{OutputDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	// Default window is 10 simulated seconds, 100 ticks.
	if _, err := s.RunHeadless(context.Background(), HeadlessOptions{MaxTicks: 250}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var rows []telemetry.PerfStatsCSV
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("perf rows = %d, want 2", len(rows))
	}
	if rows[0].WindowEnd != 100 || rows[1].WindowEnd != 200 {
		t.Errorf("window ends = %d, %d", rows[0].WindowEnd, rows[1].WindowEnd)
	}
}

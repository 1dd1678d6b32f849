package telemetry

import (
	"path/filepath"
	"testing"

	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/topology"
)

func TestRecorderWritesAllStreams(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctrl := newController(t)
	rec := NewRecorder(topology.Default(), om, RecorderOptions{TicksPerWindow: 10, RecordEvery: 2})
	ctrl.AddObserver(rec)

	ctrl.Submit(sim.SetTankLevel{Tank: components.Tank1, Percent: 30})
	ctrl.Submit(sim.TogglePump{})
	for i := 0; i < 25; i++ {
		if i == 10 {
			ctrl.Submit(sim.TogglePump{})
		}
		ctrl.Tick()
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}
	if err := rec.Err(); err != nil {
		t.Fatal(err)
	}

	if rec.Windows() != 2 {
		t.Errorf("Windows() = %d, want 2", rec.Windows())
	}
	last, ok := rec.LastWindow()
	if !ok || last.WindowEndTick != 20 {
		t.Errorf("LastWindow() = %+v, %v", last, ok)
	}

	var ticks []TickRecord
	if err := readCSV(filepath.Join(dir, "ticks.csv"), &ticks); err != nil {
		t.Fatal(err)
	}
	if len(ticks) != 12 {
		t.Errorf("ticks.csv rows = %d, want 12", len(ticks))
	}

	var samples []SampleRecord
	if err := readCSV(filepath.Join(dir, "samples.csv"), &samples); err != nil {
		t.Fatal(err)
	}
	if len(samples) != 10 {
		t.Errorf("samples.csv rows = %d, want 10", len(samples))
	}

	var events []Event
	if err := readCSV(filepath.Join(dir, "events.csv"), &events); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, ev := range events {
		if ev.Type == "pump_stopped" && ev.Tick == 11 {
			found = true
		}
	}
	if !found {
		t.Errorf("events = %+v, want pump_stopped at tick 11", events)
	}
}

func TestRecorderWithoutOutput(t *testing.T) {
	ctrl := newController(t)
	rec := NewRecorder(topology.Default(), nil, RecorderOptions{TicksPerWindow: 5})
	ctrl.AddObserver(rec)
	for i := 0; i < 12; i++ {
		ctrl.Tick()
	}
	if rec.Windows() != 2 || rec.Err() != nil {
		t.Errorf("Windows() = %d, Err() = %v", rec.Windows(), rec.Err())
	}
}

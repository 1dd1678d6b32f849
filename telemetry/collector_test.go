package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/topology"
)

func newController(t *testing.T) *sim.Controller {
	t.Helper()
	net := topology.Default()
	p := sim.DefaultParams()
	s, err := sim.NewState(net, p)
	if err != nil {
		t.Fatal(err)
	}
	return sim.NewController(sim.NewEngine(net, p), s)
}

func TestCollectorWindow(t *testing.T) {
	ctrl := newController(t)
	c := NewCollector(10)

	ctrl.Submit(sim.SetTankLevel{Tank: components.Tank1, Percent: 5})
	ctrl.Submit(sim.TogglePump{})
	ctrl.Submit(sim.AdjustTarget{Delta: 20})

	var stats WindowStats
	flushed := false
	for i := 0; i < 10; i++ {
		res := ctrl.Tick()
		c.Record(res)
		if c.ShouldFlush(res.Tick) {
			stats = c.Flush(ctrl.Snapshot())
			flushed = true
		}
	}
	if !flushed {
		t.Fatal("window did not flush after 10 ticks")
	}

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 10 {
		t.Errorf("window = [%d, %d], want [0, 10]", stats.WindowStartTick, stats.WindowEndTick)
	}
	// 5 units move along edge A, one per tick.
	if stats.EdgeATicks != 5 || math.Abs(stats.VolumeA-5) > 1e-9 {
		t.Errorf("edge A = %d ticks / %v, want 5 / 5", stats.EdgeATicks, stats.VolumeA)
	}
	if stats.PumpOnTicks != 10 {
		t.Errorf("PumpOnTicks = %d, want 10", stats.PumpOnTicks)
	}
	if stats.PumpTempMean <= 20 || stats.PumpTempStd <= 0 {
		t.Errorf("pump temp stats = %v ± %v", stats.PumpTempMean, stats.PumpTempStd)
	}
	// Edge B drains everything edge A delivered.
	if math.Abs(stats.VolumeB-5) > 1e-9 {
		t.Errorf("VolumeB = %v, want 5", stats.VolumeB)
	}
	if math.Abs(stats.TotalVolume-5) > 1e-9 {
		t.Errorf("TotalVolume = %v, want 5", stats.TotalVolume)
	}
}

func TestCollectorRestartsAfterReset(t *testing.T) {
	ctrl := newController(t)
	c := NewCollector(10)

	for i := 0; i < 25; i++ {
		res := ctrl.Tick()
		c.Record(res)
		if c.ShouldFlush(res.Tick) {
			c.Flush(ctrl.Snapshot())
		}
	}
	if err := ctrl.Apply(sim.Reset{}); err != nil {
		t.Fatal(err)
	}
	res := ctrl.Tick()
	c.Record(res)

	if res.Tick != 1 {
		t.Fatalf("tick after reset = %d, want 1", res.Tick)
	}
	if c.ShouldFlush(res.Tick) {
		t.Error("window should restart at reset")
	}
	for i := 0; i < 9; i++ {
		res = ctrl.Tick()
		c.Record(res)
	}
	if !c.ShouldFlush(res.Tick) {
		t.Errorf("restarted window should flush at tick %d", res.Tick)
	}
}

func TestCollectorCountsOvershoot(t *testing.T) {
	c := NewCollector(5)
	c.Record(sim.StepResult{Tick: 1, Overshoot: 0.25})
	c.Record(sim.StepResult{Tick: 2, Overshoot: 0.5})
	stats := c.Flush(sim.State{Tick: 2})
	if stats.Overshoot != 0.75 {
		t.Errorf("Overshoot = %v, want 0.75", stats.Overshoot)
	}
	if got := c.Flush(sim.State{Tick: 3}).Overshoot; got != 0 {
		t.Errorf("second window Overshoot = %v, want 0", got)
	}
}

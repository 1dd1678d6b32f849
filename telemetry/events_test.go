package telemetry

import (
	"testing"

	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/topology"
)

func eventTypes(evs []Event) []string {
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = ev.Type + ":" + ev.Subject
	}
	return out
}

func TestEventDetector(t *testing.T) {
	ctrl := newController(t)
	d := NewEventDetector(topology.Default())

	ctrl.Tick()
	if evs := d.Observe(ctrl.Snapshot()); evs != nil {
		t.Fatalf("first observation produced %v", evs)
	}

	ctrl.Submit(sim.SetTankLevel{Tank: components.Tank1, Percent: 2})
	ctrl.Submit(sim.TogglePump{})
	ctrl.Tick()
	got := eventTypes(d.Observe(ctrl.Snapshot()))
	want := []string{"pump_started:pump", "edge_started:edge_A", "edge_started:edge_B"}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}

	// Tank1 empties on the second transfer.
	ctrl.Tick()
	got = eventTypes(d.Observe(ctrl.Snapshot()))
	found := false
	for _, ev := range got {
		if ev == "tank_emptied:TANK 1" {
			found = true
		}
	}
	if !found {
		t.Errorf("events = %v, want tank_emptied:TANK 1", got)
	}

	if err := ctrl.Apply(sim.Reset{}); err != nil {
		t.Fatal(err)
	}
	ctrl.Tick()
	got = eventTypes(d.Observe(ctrl.Snapshot()))
	if len(got) != 1 || got[0] != "reset:plant" {
		t.Errorf("events after reset = %v, want [reset:plant]", got)
	}
}

func TestEventDetectorTankFull(t *testing.T) {
	ctrl := newController(t)
	d := NewEventDetector(topology.Default())
	if err := ctrl.Apply(sim.SetTankLevel{Tank: components.Tank1, Percent: 100}); err != nil {
		t.Fatal(err)
	}
	d.Observe(ctrl.Snapshot())

	// Edge A moves 1.0 per tick, so TANK 2 fills on the 100th tick.
	var got []string
	for i := 0; i < 100; i++ {
		ctrl.Tick()
		got = append(got, eventTypes(d.Observe(ctrl.Snapshot()))...)
	}

	found := false
	for _, ev := range got {
		if ev == "tank_full:TANK 2" {
			found = true
		}
	}
	if !found {
		t.Errorf("events = %v, want tank_full:TANK 2", got)
	}
}

func TestEventTypeString(t *testing.T) {
	if EventReset.String() != "reset" || EventType(99).String() != "unknown" {
		t.Error("unexpected event names")
	}
}

package telemetry

import (
	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/topology"
)

// EventType identifies plant state transitions.
type EventType uint8

const (
	EventPumpStarted EventType = iota
	EventPumpStopped
	EventEdgeStarted
	EventEdgeStopped
	EventTankFull
	EventTankEmptied
	EventReset
)

var eventNames = [...]string{
	EventPumpStarted: "pump_started",
	EventPumpStopped: "pump_stopped",
	EventEdgeStarted: "edge_started",
	EventEdgeStopped: "edge_stopped",
	EventTankFull:    "tank_full",
	EventTankEmptied: "tank_emptied",
	EventReset:       "reset",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is a single plant transition observed between two ticks.
type Event struct {
	Tick    uint64  `csv:"tick"`
	Time    float64 `csv:"time"`
	Type    string  `csv:"event"`
	Subject string  `csv:"subject"` // tank, edge, or pump
	Value   float64 `csv:"value"`
}

// EventDetector compares consecutive post-tick states and reports
// transitions.
type EventDetector struct {
	net  *topology.Network
	prev *sim.State
}

// NewEventDetector creates a detector for the given network.
func NewEventDetector(net *topology.Network) *EventDetector {
	return &EventDetector{net: net}
}

// Observe returns the transitions between the previously observed state
// and s. The first call only primes the detector.
func (d *EventDetector) Observe(s sim.State) []Event {
	prev := d.prev
	d.prev = &s
	if prev == nil {
		return nil
	}

	var events []Event
	add := func(t EventType, subject string, value float64) {
		events = append(events, Event{Tick: s.Tick, Time: s.ElapsedTime, Type: t.String(), Subject: subject, Value: value})
	}

	if s.Tick <= prev.Tick {
		add(EventReset, "plant", 0)
		return events
	}

	if s.Pump.Running != prev.Pump.Running {
		if s.Pump.Running {
			add(EventPumpStarted, "pump", s.Pump.Temperature)
		} else {
			add(EventPumpStopped, "pump", s.Pump.Temperature)
		}
	}

	for id := topology.EdgeID(0); id < topology.NumEdges; id++ {
		was, is := prev.EdgeFlowing(d.net, id), s.EdgeFlowing(d.net, id)
		switch {
		case is && !was:
			add(EventEdgeStarted, "edge_"+id.String(), 0)
		case was && !is:
			add(EventEdgeStopped, "edge_"+id.String(), 0)
		}
	}

	for id := components.TankID(0); id < components.NumTanks; id++ {
		before, after := prev.Tanks[id], s.Tanks[id]
		switch {
		case after.Full() && !before.Full():
			add(EventTankFull, id.String(), after.Amount)
		case after.Amount <= 0 && before.Amount > 0:
			add(EventTankEmptied, id.String(), 0)
		}
	}
	return events
}

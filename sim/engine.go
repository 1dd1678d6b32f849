package sim

import (
	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/topology"
)

// EdgeTransfer describes one edge's activity during a tick.
type EdgeTransfer struct {
	Flowing bool
	Amount  float64 // volume removed from the source
}

// Sample is a (time, pump temperature) point for the chart.
type Sample struct {
	Time        float64
	Temperature float64
}

// StepResult reports what a single tick did.
type StepResult struct {
	Tick      uint64
	Time      float64
	EdgeA     EdgeTransfer
	EdgeB     EdgeTransfer
	Overshoot float64 // volume pushed above capacity in the branch tanks this tick
	Sample    Sample
	Sampled   bool // pump was running; Sample is a chart candidate
}

// Engine applies the per-tick update rules over the fixed network.
type Engine struct {
	net    *topology.Network
	params Params
}

// NewEngine creates a step engine.
func NewEngine(net *topology.Network, params Params) *Engine {
	return &Engine{net: net, params: params}
}

// Params returns the engine coefficients.
func (e *Engine) Params() Params {
	return e.params
}

// Network returns the topology the engine steps over.
func (e *Engine) Network() *topology.Network {
	return e.net
}

// Step advances the plant by one tick. Stage order matters: each stage
// sees the amounts left by the previous one.
func (e *Engine) Step(s *State) StepResult {
	s.ElapsedTime += e.params.TickSize
	s.Tick++

	res := StepResult{Tick: s.Tick, Time: s.ElapsedTime}
	res.EdgeA = e.stepEdgeA(s)
	res.EdgeB, res.Overshoot = e.stepEdgeB(s)

	if e.relaxPump(s) {
		res.Sampled = true
		res.Sample = Sample{Time: s.ElapsedTime, Temperature: s.Pump.Temperature}
	}
	e.coupleDownstream(s)
	return res
}

// stepEdgeA moves up to TransferRateA from the source into the target.
// A full target blocks the edge entirely.
func (e *Engine) stepEdgeA(s *State) EdgeTransfer {
	edge := e.net.Edge(topology.EdgeA)
	src := s.Tank(edge.Source)
	dst := s.Tank(edge.Targets[0])

	var xfer EdgeTransfer
	if src.Amount > 0 && !dst.Full() {
		// Capped at headroom: a full step into a nearly full TANK 2 would
		// overshoot capacity. The branch edge keeps its overshoot.
		amount := min(src.Amount, e.params.TransferRateA, dst.Headroom())
		src.Amount -= amount
		dst.Amount = min(dst.Amount+amount, dst.Capacity)
		xfer = EdgeTransfer{Flowing: true, Amount: amount}
	}
	s.setEdgeFlow(e.net, topology.EdgeA, xfer.Flowing)
	return xfer
}

// stepEdgeB drains up to TransferRateB from the source while the pump runs
// and splits it evenly across the targets. A target already at capacity
// gets nothing; otherwise it receives its full share even if that pushes
// it over capacity, unless ClampBranchOverflow is set.
func (e *Engine) stepEdgeB(s *State) (EdgeTransfer, float64) {
	edge := e.net.Edge(topology.EdgeB)
	src := s.Tank(edge.Source)

	if src.Amount <= 0 || (edge.PumpGated && !s.Pump.Running) {
		s.setEdgeFlow(e.net, topology.EdgeB, false)
		return EdgeTransfer{}, 0
	}

	amount := min(src.Amount, e.params.TransferRateB)
	src.Amount -= amount
	share := amount / float64(len(edge.Targets))

	var overshoot float64
	for _, id := range edge.Targets {
		dst := s.Tank(id)
		if dst.Full() {
			continue
		}
		add := share
		if e.params.ClampBranchOverflow {
			add = min(add, dst.Headroom())
			dst.Amount = min(dst.Amount+add, dst.Capacity)
		} else {
			dst.Amount += add
		}
		if over := dst.Amount - dst.Capacity; over > 0 {
			overshoot += min(over, add)
		}
	}

	s.setEdgeFlow(e.net, topology.EdgeB, true)
	return EdgeTransfer{Flowing: true, Amount: amount}, overshoot
}

// relaxPump moves the pump temperature toward the target while running,
// toward ambient otherwise. Returns whether the pump is running.
func (e *Engine) relaxPump(s *State) bool {
	k := e.params.Relaxation
	if s.Pump.Running {
		s.Pump.Temperature += (s.TargetTemperature - s.Pump.Temperature) * k
		return true
	}
	s.Pump.Temperature += (e.params.AmbientTemperature - s.Pump.Temperature) * k
	return false
}

// coupleDownstream relaxes Tank3 toward the pump and mirrors it into Tank4.
// Nothing changes while Tank3 is empty, so Tank4 keeps its last value.
func (e *Engine) coupleDownstream(s *State) {
	t3 := s.Tank(components.Tank3)
	if t3.Amount <= 0 {
		return
	}
	t3.Temperature += (s.Pump.Temperature - t3.Temperature) * e.params.Relaxation
	s.Tank(components.Tank4).Temperature = t3.Temperature
}

// Reset returns the plant to its start-of-simulation values.
func (e *Engine) Reset(s *State) {
	s.reset(e.params)
}

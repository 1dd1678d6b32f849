package sim

import (
	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/topology"
)

// State is the complete mutable plant. A Controller owns exactly one.
type State struct {
	Tanks             [components.NumTanks]components.Tank
	Pump              components.Pump
	Pipes             [components.NumPipes]components.Pipe
	TargetTemperature float64
	ElapsedTime       float64
	Tick              uint64
}

// NewState builds the start-of-simulation plant for the given network.
func NewState(net *topology.Network, p Params) (*State, error) {
	pipes, err := net.Pipes()
	if err != nil {
		return nil, err
	}
	s := &State{
		Pipes:             pipes,
		TargetTemperature: p.DefaultTarget,
	}
	for id := components.TankID(0); id < components.NumTanks; id++ {
		s.Tanks[id] = components.NewTank(id.String(), p.TankCapacity, p.InitialTemperature)
	}
	s.Pump.Temperature = p.InitialTemperature
	return s, nil
}

// Tank returns a pointer to the tank record.
func (s *State) Tank(id components.TankID) *components.Tank {
	return &s.Tanks[id]
}

// EdgeFlowing reports the flow flag shared by every segment of the edge.
func (s *State) EdgeFlowing(net *topology.Network, id topology.EdgeID) bool {
	segs := net.Edge(id).Segments
	if len(segs) == 0 {
		return false
	}
	return s.Pipes[segs[0]].Flowing
}

// setEdgeFlow sets the flow flag on every segment of the edge.
func (s *State) setEdgeFlow(net *topology.Network, id topology.EdgeID, flowing bool) {
	for _, seg := range net.Edge(id).Segments {
		s.Pipes[seg].Flowing = flowing
	}
}

// TotalAmount returns the fluid held across all tanks.
func (s *State) TotalAmount() float64 {
	var sum float64
	for i := range s.Tanks {
		sum += s.Tanks[i].Amount
	}
	return sum
}

// reset returns the plant to its start-of-simulation values.
func (s *State) reset(p Params) {
	for i := range s.Tanks {
		s.Tanks[i].Amount = 0
	}
	s.Tanks[components.Tank3].Temperature = p.InitialTemperature
	s.Tanks[components.Tank4].Temperature = p.InitialTemperature
	s.Pump.Temperature = p.InitialTemperature
	s.Pump.Running = false
	s.TargetTemperature = p.DefaultTarget
	s.ElapsedTime = 0
	s.Tick = 0
	for i := range s.Pipes {
		s.Pipes[i].Flowing = false
	}
}

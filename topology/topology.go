// Package topology describes the fixed plant network: which tanks each
// transfer edge connects, which rendered pipe segments visualize it, and
// where everything sits in the schematic.
package topology

import (
	"fmt"

	"github.com/pthm-cable/tanksim/components"
)

// EdgeID names a logical transfer path.
type EdgeID int

const (
	// EdgeA moves fluid from Tank1 to Tank2.
	EdgeA EdgeID = iota
	// EdgeB is pump-gated and splits Tank2 outflow evenly into Tank3 and Tank4.
	EdgeB
	NumEdges
)

// String returns "A" or "B".
func (e EdgeID) String() string {
	switch e {
	case EdgeA:
		return "A"
	case EdgeB:
		return "B"
	default:
		return "?"
	}
}

// Edge is a logical transfer path between tanks.
type Edge struct {
	ID        EdgeID
	Source    components.TankID
	Targets   []components.TankID // more than one target means an even fan-out
	PumpGated bool
	Segments  []components.PipeID // rendered subdivisions, all driven by one flag
}

// Rect is an axis-aligned box in scene coordinates.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether (x, y) lies inside the box.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Center returns the midpoint of the box.
func (r Rect) Center() components.Point {
	return components.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Layout holds schematic placement for every entity.
type Layout struct {
	Width, Height float32
	Tanks         [components.NumTanks]Rect
	Pump          Rect
	Pipes         [components.NumPipes][]components.Point
}

// Network is the hard-wired plant graph.
type Network struct {
	Edges  [NumEdges]Edge
	Layout Layout

	edgeOf [components.NumPipes]EdgeID
}

// Default returns the four-tank, one-pump, six-segment plant.
func Default() *Network {
	n := &Network{
		Edges: [NumEdges]Edge{
			EdgeA: {
				ID:       EdgeA,
				Source:   components.Tank1,
				Targets:  []components.TankID{components.Tank2},
				Segments: []components.PipeID{components.PipeTank1ToTank2},
			},
			EdgeB: {
				ID:        EdgeB,
				Source:    components.Tank2,
				Targets:   []components.TankID{components.Tank3, components.Tank4},
				PumpGated: true,
				Segments: []components.PipeID{
					components.PipeTank2ToPump,
					components.PipePumpOutlet,
					components.PipeSplit,
					components.PipeBranchToTank4,
					components.PipeBranchToTank3,
				},
			},
		},
		Layout: defaultLayout(),
	}
	n.index()
	return n
}

func defaultLayout() Layout {
	return Layout{
		Width:  800,
		Height: 550,
		Tanks: [components.NumTanks]Rect{
			components.Tank1: {X: 600, Y: 50, W: 100, H: 140},
			components.Tank2: {X: 100, Y: 50, W: 100, H: 140},
			components.Tank3: {X: 600, Y: 380, W: 100, H: 140},
			components.Tank4: {X: 150, Y: 380, W: 100, H: 140},
		},
		Pump: Rect{X: 350, Y: 220, W: 60, H: 60},
		Pipes: [components.NumPipes][]components.Point{
			components.PipeTank1ToTank2:  {{X: 640, Y: 160}, {X: 140, Y: 160}},
			components.PipeTank2ToPump:   {{X: 140, Y: 160}, {X: 140, Y: 260}, {X: 350, Y: 260}},
			components.PipePumpOutlet:    {{X: 410, Y: 260}, {X: 450, Y: 260}},
			components.PipeSplit:         {{X: 450, Y: 260}, {X: 450, Y: 330}},
			components.PipeBranchToTank4: {{X: 450, Y: 330}, {X: 190, Y: 330}, {X: 190, Y: 380}},
			components.PipeBranchToTank3: {{X: 450, Y: 330}, {X: 640, Y: 330}, {X: 640, Y: 380}},
		},
	}
}

func (n *Network) index() {
	for i := range n.edgeOf {
		n.edgeOf[i] = -1
	}
	for _, e := range n.Edges {
		for _, seg := range e.Segments {
			n.edgeOf[seg] = e.ID
		}
	}
}

// Edge returns the edge definition.
func (n *Network) Edge(id EdgeID) *Edge {
	return &n.Edges[id]
}

// EdgeOf returns the logical edge a rendered segment belongs to.
func (n *Network) EdgeOf(pipe components.PipeID) EdgeID {
	return n.edgeOf[pipe]
}

// TankEdges lists the edges that fill and drain a tank.
func (n *Network) TankEdges(id components.TankID) (inbound, outbound []EdgeID) {
	for _, e := range n.Edges {
		if e.Source == id {
			outbound = append(outbound, e.ID)
		}
		for _, t := range e.Targets {
			if t == id {
				inbound = append(inbound, e.ID)
			}
		}
	}
	return inbound, outbound
}

// Pipes builds the six pipe segments from the layout.
func (n *Network) Pipes() ([components.NumPipes]components.Pipe, error) {
	var pipes [components.NumPipes]components.Pipe
	for id := components.PipeID(0); id < components.NumPipes; id++ {
		p, err := components.NewPipe(id, n.Layout.Pipes[id]...)
		if err != nil {
			return pipes, fmt.Errorf("pipe %s: %w", id, err)
		}
		pipes[id] = p
	}
	return pipes, nil
}

// Validate checks that every segment belongs to exactly one edge and that
// edges reference real tanks.
func (n *Network) Validate() error {
	seen := make(map[components.PipeID]EdgeID)
	for _, e := range n.Edges {
		if !e.Source.Valid() {
			return fmt.Errorf("edge %s: invalid source tank %d", e.ID, e.Source)
		}
		if len(e.Targets) == 0 {
			return fmt.Errorf("edge %s: no targets", e.ID)
		}
		for _, t := range e.Targets {
			if !t.Valid() || t == e.Source {
				return fmt.Errorf("edge %s: invalid target tank %d", e.ID, t)
			}
		}
		for _, seg := range e.Segments {
			if prev, dup := seen[seg]; dup {
				return fmt.Errorf("segment %s claimed by edges %s and %s", seg, prev, e.ID)
			}
			seen[seg] = e.ID
		}
	}
	if len(seen) != int(components.NumPipes) {
		return fmt.Errorf("%d of %d segments assigned to an edge", len(seen), components.NumPipes)
	}
	return nil
}

// Package scene keeps a read-only view of the plant as an ECS world of
// drawable entities. A projection pass copies the simulation snapshot into
// view components each frame; renderers and hit-testing only query them.
package scene

import (
	"image/color"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/topology"
)

// Shape is an entity's axis-aligned footprint in scene coordinates.
type Shape struct {
	X, Y, W, H float32
}

// Contains reports whether the point lies inside the shape.
func (s Shape) Contains(x, y float32) bool {
	return x >= s.X && x <= s.X+s.W && y >= s.Y && y <= s.Y+s.H
}

// TankView is the drawable state of a tank.
type TankView struct {
	ID          components.TankID
	Label       string
	Fraction    float64 // amount / capacity; may exceed 1 on branch overshoot
	Liquid      Shape   // fill rectangle, empty when Fraction is 0
	LiquidColor color.RGBA
	Percent     string
	ShowPercent bool
	Temperature float64
}

// PumpView is the drawable state of the pump.
type PumpView struct {
	Running     bool
	Temperature float64
	Target      float64
	Body        color.RGBA
	Lamp        color.RGBA
}

// PipeView is the drawable state of one pipe segment.
type PipeView struct {
	ID      components.PipeID
	Edge    topology.EdgeID
	Path    []components.Point
	Flowing bool
}

// TargetKind says what a click landed on.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetTank
	TargetPump
)

// Clickable marks an entity that reacts to mouse clicks.
type Clickable struct {
	Kind TargetKind
	Tank components.TankID
}

// Scene owns the view world.
type Scene struct {
	world ecs.World
	net   *topology.Network

	tankMapper *ecs.Map3[Shape, TankView, Clickable]
	pumpMapper *ecs.Map3[Shape, PumpView, Clickable]
	pipeMapper *ecs.Map1[PipeView]

	tanks      *ecs.Filter2[Shape, TankView]
	pumps      *ecs.Filter2[Shape, PumpView]
	pipes      *ecs.Filter1[PipeView]
	clickables *ecs.Filter2[Shape, Clickable]

	tankEntities [components.NumTanks]ecs.Entity
	pumpEntity   ecs.Entity
}

// New builds the view entities for the network layout.
func New(net *topology.Network) *Scene {
	s := &Scene{
		world: ecs.NewWorld(),
		net:   net,
	}
	w := &s.world
	s.tankMapper = ecs.NewMap3[Shape, TankView, Clickable](w)
	s.pumpMapper = ecs.NewMap3[Shape, PumpView, Clickable](w)
	s.pipeMapper = ecs.NewMap1[PipeView](w)
	s.tanks = ecs.NewFilter2[Shape, TankView](w)
	s.pumps = ecs.NewFilter2[Shape, PumpView](w)
	s.pipes = ecs.NewFilter1[PipeView](w)
	s.clickables = ecs.NewFilter2[Shape, Clickable](w)

	layout := net.Layout
	for id := components.TankID(0); id < components.NumTanks; id++ {
		r := layout.Tanks[id]
		shape := Shape{X: r.X, Y: r.Y, W: r.W, H: r.H}
		view := TankView{ID: id, Label: id.String()}
		click := Clickable{Kind: TargetTank, Tank: id}
		s.tankEntities[id] = s.tankMapper.NewEntity(&shape, &view, &click)
	}

	pr := layout.Pump
	pumpShape := Shape{X: pr.X, Y: pr.Y, W: pr.W, H: pr.H}
	pumpView := PumpView{Body: PumpBodyColor(20), Lamp: LampColor(false)}
	pumpClick := Clickable{Kind: TargetPump}
	s.pumpEntity = s.pumpMapper.NewEntity(&pumpShape, &pumpView, &pumpClick)

	for id := components.PipeID(0); id < components.NumPipes; id++ {
		pts := layout.Pipes[id]
		view := PipeView{
			ID:   id,
			Edge: net.EdgeOf(id),
			Path: append([]components.Point(nil), pts...),
		}
		s.pipeMapper.NewEntity(&view)
	}
	return s
}

// Project copies the snapshot into the view components. It never writes
// back to the simulation.
func (s *Scene) Project(st *sim.State) {
	tq := s.tanks.Query()
	for tq.Next() {
		shape, view := tq.Get()
		projectTank(view, *shape, &st.Tanks[view.ID])
	}

	pq := s.pumps.Query()
	for pq.Next() {
		_, view := pq.Get()
		view.Running = st.Pump.Running
		view.Temperature = st.Pump.Temperature
		view.Target = st.TargetTemperature
		view.Body = PumpBodyColor(st.Pump.Temperature)
		view.Lamp = LampColor(st.Pump.Running)
	}

	lq := s.pipes.Query()
	for lq.Next() {
		view := lq.Get()
		view.Flowing = st.Pipes[view.ID].Flowing
	}
}

func projectTank(view *TankView, shape Shape, t *components.Tank) {
	view.Label = t.Label
	view.Temperature = t.Temperature
	view.Fraction = t.Fraction()
	view.LiquidColor = LiquidColor(t.Temperature)
	view.Percent, view.ShowPercent = PercentLabel(view.Fraction)
	view.Liquid = LiquidRect(shape, view.Fraction)
}

// LiquidRect is the fill rectangle inside the tank walls for a fill
// fraction. The drawn height is capped at the tank height.
func LiquidRect(tank Shape, fraction float64) Shape {
	if fraction <= 0 {
		return Shape{}
	}
	if fraction > 1 {
		fraction = 1
	}
	h := (tank.H - TankWall) * float32(fraction)
	return Shape{
		X: tank.X + TankWall/2,
		Y: tank.Y + tank.H - TankWall/2 - h,
		W: tank.W - TankWall,
		H: h,
	}
}

// HitTest returns the clickable under a scene point.
func (s *Scene) HitTest(x, y float32) (Clickable, bool) {
	var hit Clickable
	found := false
	q := s.clickables.Query()
	for q.Next() {
		shape, click := q.Get()
		if !found && shape.Contains(x, y) {
			hit = *click
			found = true
		}
	}
	return hit, found
}

// Tank returns the view of one tank.
func (s *Scene) Tank(id components.TankID) (Shape, TankView) {
	shape, view, _ := s.tankMapper.Get(s.tankEntities[id])
	return *shape, *view
}

// Pump returns the view of the pump.
func (s *Scene) Pump() (Shape, PumpView) {
	shape, view, _ := s.pumpMapper.Get(s.pumpEntity)
	return *shape, *view
}

// EachTank calls fn for every tank view.
func (s *Scene) EachTank(fn func(Shape, TankView)) {
	q := s.tanks.Query()
	for q.Next() {
		shape, view := q.Get()
		fn(*shape, *view)
	}
}

// EachPipe calls fn for every pipe segment.
func (s *Scene) EachPipe(fn func(PipeView)) {
	q := s.pipes.Query()
	for q.Next() {
		fn(*q.Get())
	}
}

// Size returns the scene dimensions.
func (s *Scene) Size() (w, h float32) {
	return s.net.Layout.Width, s.net.Layout.Height
}

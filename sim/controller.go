package sim

import (
	"log/slog"
	"sync"
)

// SampleSink receives pump temperature samples; typically the chart.
type SampleSink interface {
	Visible() bool
	Push(time, temperature float64)
	Clear()
}

// StepObserver is notified after every tick with the result and a copy of
// the post-tick state. Observers run outside the controller lock.
type StepObserver interface {
	OnStep(res StepResult, s State)
}

// StepObserverFunc adapts a function to StepObserver.
type StepObserverFunc func(res StepResult, s State)

// OnStep implements StepObserver.
func (f StepObserverFunc) OnStep(res StepResult, s State) { f(res, s) }

// Controller is the single writer for a State. One mutex spans command
// draining and the whole tick, so external mutations never interleave with
// a step.
type Controller struct {
	mu        sync.Mutex
	state     *State
	engine    *Engine
	pending   []Command
	sink      SampleSink
	observers []StepObserver
}

// NewController wraps state with its engine.
func NewController(engine *Engine, state *State) *Controller {
	return &Controller{engine: engine, state: state}
}

// SetSampleSink installs the chart collaborator. nil disables sampling.
func (c *Controller) SetSampleSink(sink SampleSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = sink
}

// AddObserver registers a post-tick observer.
func (c *Controller) AddObserver(o StepObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Engine returns the step engine.
func (c *Controller) Engine() *Engine {
	return c.engine
}

// Submit queues a command for the start of the next tick.
func (c *Controller) Submit(cmd Command) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, cmd)
}

// Pending returns the number of queued commands.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Apply runs a command immediately, between ticks.
func (c *Controller) Apply(cmd Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apply(cmd)
}

// Flush applies queued commands without stepping.
func (c *Controller) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drain()
}

func (c *Controller) apply(cmd Command) error {
	if err := cmd.Apply(c.state, c.engine); err != nil {
		return err
	}
	if _, ok := cmd.(Reset); ok {
		if c.sink != nil {
			c.sink.Clear()
		}
		slog.Info("simulation reset")
	}
	return nil
}

func (c *Controller) drain() {
	for _, cmd := range c.pending {
		if err := c.apply(cmd); err != nil {
			slog.Warn("command rejected", "command", cmd, "error", err)
		}
	}
	c.pending = c.pending[:0]
}

// Tick applies queued commands, steps the plant once, and forwards the pump
// sample to a visible sink.
func (c *Controller) Tick() StepResult {
	c.mu.Lock()
	c.drain()
	res := c.engine.Step(c.state)
	if res.Sampled && c.sink != nil && c.sink.Visible() {
		c.sink.Push(res.Sample.Time, res.Sample.Temperature)
	}
	snap := *c.state
	observers := c.observers
	c.mu.Unlock()

	for _, o := range observers {
		o.OnStep(res, snap)
	}
	return res
}

// Snapshot returns a copy of the current state. Pipe paths are shared but
// immutable.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.state
}

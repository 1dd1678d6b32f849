package sim

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/tanksim/components"
)

type fakeSink struct {
	visible bool
	points  []Sample
	clears  int
}

func (f *fakeSink) Visible() bool { return f.visible }

func (f *fakeSink) Push(time, temperature float64) {
	f.points = append(f.points, Sample{Time: time, Temperature: temperature})
}

func (f *fakeSink) Clear() {
	f.points = nil
	f.clears++
}

func newController(t *testing.T) *Controller {
	t.Helper()
	e, s := newPlant(t, DefaultParams())
	return NewController(e, s)
}

func TestControllerAppliesQueuedCommandsBeforeStep(t *testing.T) {
	c := newController(t)
	c.Submit(SetTankLevelText{Tank: components.Tank1, Text: "50"})
	assert.Equal(t, 1, c.Pending())

	// Nothing changes until the next tick.
	assert.Equal(t, 0.0, c.Snapshot().Tanks[components.Tank1].Amount)

	res := c.Tick()
	snap := c.Snapshot()
	assert.Equal(t, 0, c.Pending())
	assert.True(t, res.EdgeA.Flowing)
	assert.Equal(t, 49.0, snap.Tanks[components.Tank1].Amount)
	assert.Equal(t, 1.0, snap.Tanks[components.Tank2].Amount)
}

func TestControllerRejectedCommandDoesNotStopQueue(t *testing.T) {
	c := newController(t)
	c.Submit(SetTankLevel{Tank: components.NumTanks, Percent: 50})
	c.Submit(TogglePump{})
	c.Flush()
	assert.True(t, c.Snapshot().Pump.Running)
}

func TestControllerInvalidTextLeavesStateUntouched(t *testing.T) {
	c := newController(t)
	before := c.Snapshot()
	require.NoError(t, c.Apply(SetTankLevelText{Tank: components.Tank1, Text: "abc"}))
	assert.Equal(t, before, c.Snapshot())
}

func TestControllerSamplesOnlyWhenSinkVisible(t *testing.T) {
	c := newController(t)
	sink := &fakeSink{}
	c.SetSampleSink(sink)
	require.NoError(t, c.Apply(TogglePump{}))

	c.Tick()
	assert.Empty(t, sink.points, "hidden sink must not receive samples")

	sink.visible = true
	c.Tick()
	c.Tick()
	require.Len(t, sink.points, 2)
	assert.InDelta(t, 0.2, sink.points[0].Time, eps)
	assert.InDelta(t, 0.3, sink.points[1].Time, eps)

	// Stopped pump produces no samples.
	require.NoError(t, c.Apply(TogglePump{}))
	c.Tick()
	assert.Len(t, sink.points, 2)
}

func TestControllerResetClearsSink(t *testing.T) {
	c := newController(t)
	sink := &fakeSink{visible: true}
	c.SetSampleSink(sink)
	c.Submit(SetTankLevel{Tank: components.Tank1, Percent: 80})
	c.Submit(TogglePump{})
	c.Submit(AdjustTarget{Delta: 15})
	for i := 0; i < 20; i++ {
		c.Tick()
	}
	require.NotEmpty(t, sink.points)

	require.NoError(t, c.Apply(Reset{}))

	snap := c.Snapshot()
	assert.Equal(t, 1, sink.clears)
	assert.Empty(t, sink.points)
	assert.Equal(t, 0.0, snap.TotalAmount())
	assert.False(t, snap.Pump.Running)
	assert.Equal(t, 20.0, snap.Pump.Temperature)
	assert.Equal(t, 20.0, snap.TargetTemperature)
	assert.Equal(t, 0.0, snap.ElapsedTime)
}

func TestControllerNotifiesObservers(t *testing.T) {
	c := newController(t)
	var got []uint64
	c.AddObserver(StepObserverFunc(func(res StepResult, s State) {
		assert.Equal(t, res.Tick, s.Tick)
		got = append(got, res.Tick)
	}))
	for i := 0; i < 3; i++ {
		c.Tick()
	}
	assert.Equal(t, []uint64{1, 2, 3}, got)
}

func TestControllerConcurrentAccess(t *testing.T) {
	c := newController(t)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			c.Tick()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			c.Submit(TogglePump{})
			c.Submit(SetTankLevel{Tank: components.Tank1, Percent: float64(i % 100)})
			_ = c.Snapshot()
		}
	}()
	wg.Wait()
	c.Flush()

	snap := c.Snapshot()
	for _, tank := range snap.Tanks {
		assert.GreaterOrEqual(t, tank.Amount, 0.0)
	}
	assert.Equal(t, uint64(200), snap.Tick)
}

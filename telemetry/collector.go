// Package telemetry aggregates per-tick plant activity into windowed
// statistics and writes them, with per-tick records, to CSV.
package telemetry

import (
	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/sim"
)

// Collector accumulates step results within a window of ticks and produces
// WindowStats.
type Collector struct {
	ticksPerWindow uint64

	windowStartTick uint64

	edgeATicks  int
	edgeBTicks  int
	volumeA     float64
	volumeB     float64
	overshoot   float64
	pumpOnTicks int
	pumpTemps   []float64
}

// NewCollector creates a collector that flushes every ticksPerWindow ticks.
func NewCollector(ticksPerWindow int) *Collector {
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		ticksPerWindow: uint64(ticksPerWindow),
		pumpTemps:      make([]float64, 0, ticksPerWindow),
	}
}

// Record adds one step result to the current window. A tick counter that
// went backwards means the plant was reset; the window restarts.
func (c *Collector) Record(res sim.StepResult) {
	if res.Tick <= c.windowStartTick {
		c.restart(res.Tick - 1)
	}
	if res.EdgeA.Flowing {
		c.edgeATicks++
		c.volumeA += res.EdgeA.Amount
	}
	if res.EdgeB.Flowing {
		c.edgeBTicks++
		c.volumeB += res.EdgeB.Amount
	}
	c.overshoot += res.Overshoot
	if res.Sampled {
		c.pumpOnTicks++
		c.pumpTemps = append(c.pumpTemps, res.Sample.Temperature)
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.ticksPerWindow
}

// Flush produces a WindowStats from the accumulated results and the
// post-tick plant, then starts the next window.
func (c *Collector) Flush(s sim.State) WindowStats {
	ts := ComputeTempStats(c.pumpTemps)
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   s.Tick,
		SimTimeSec:      s.ElapsedTime,

		EdgeATicks: c.edgeATicks,
		EdgeBTicks: c.edgeBTicks,
		VolumeA:    c.volumeA,
		VolumeB:    c.volumeB,
		Overshoot:  c.overshoot,

		PumpOnTicks:  c.pumpOnTicks,
		PumpTempMean: ts.Mean,
		PumpTempStd:  ts.Std,
		PumpTempP10:  ts.P10,
		PumpTempP50:  ts.P50,
		PumpTempP90:  ts.P90,

		Tank1:       s.Tanks[components.Tank1].Amount,
		Tank2:       s.Tanks[components.Tank2].Amount,
		Tank3:       s.Tanks[components.Tank3].Amount,
		Tank4:       s.Tanks[components.Tank4].Amount,
		TotalVolume: s.TotalAmount(),
		Tank3Temp:   s.Tanks[components.Tank3].Temperature,
		Target:      s.TargetTemperature,
	}
	c.restart(s.Tick)
	return stats
}

func (c *Collector) restart(tick uint64) {
	c.windowStartTick = tick
	c.edgeATicks = 0
	c.edgeBTicks = 0
	c.volumeA = 0
	c.volumeB = 0
	c.overshoot = 0
	c.pumpOnTicks = 0
	c.pumpTemps = c.pumpTemps[:0]
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int {
	return int(c.ticksPerWindow)
}

package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Edge activity during window
	EdgeATicks int     `csv:"edge_a_ticks"`
	EdgeBTicks int     `csv:"edge_b_ticks"`
	VolumeA    float64 `csv:"volume_a"`
	VolumeB    float64 `csv:"volume_b"`
	Overshoot  float64 `csv:"overshoot"` // volume pushed above capacity in Tank3/Tank4

	// Pump
	PumpOnTicks  int     `csv:"pump_on_ticks"`
	PumpTempMean float64 `csv:"pump_temp_mean"`
	PumpTempStd  float64 `csv:"pump_temp_std"`
	PumpTempP10  float64 `csv:"pump_temp_p10"`
	PumpTempP50  float64 `csv:"pump_temp_p50"`
	PumpTempP90  float64 `csv:"pump_temp_p90"`

	// Plant at window end
	Tank1       float64 `csv:"tank1"`
	Tank2       float64 `csv:"tank2"`
	Tank3       float64 `csv:"tank3"`
	Tank4       float64 `csv:"tank4"`
	TotalVolume float64 `csv:"total_volume"`
	Tank3Temp   float64 `csv:"tank3_temp"`
	Target      float64 `csv:"target"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// TempStats summarises a set of temperature samples.
type TempStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeTempStats calculates mean, sample standard deviation, and
// percentiles. Std is 0 for fewer than two values.
func ComputeTempStats(values []float64) TempStats {
	n := len(values)
	if n == 0 {
		return TempStats{}
	}

	var ts TempStats
	if n == 1 {
		ts.Mean = values[0]
	} else {
		ts.Mean, ts.Std = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	ts.P10 = Percentile(sorted, 0.10)
	ts.P50 = Percentile(sorted, 0.50)
	ts.P90 = Percentile(sorted, 0.90)
	return ts
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("edge_a_ticks", s.EdgeATicks),
		slog.Int("edge_b_ticks", s.EdgeBTicks),
		slog.Float64("volume_a", s.VolumeA),
		slog.Float64("volume_b", s.VolumeB),
		slog.Float64("overshoot", s.Overshoot),
		slog.Int("pump_on_ticks", s.PumpOnTicks),
		slog.Float64("pump_temp_mean", s.PumpTempMean),
		slog.Float64("pump_temp_std", s.PumpTempStd),
		slog.Float64("pump_temp_p10", s.PumpTempP10),
		slog.Float64("pump_temp_p50", s.PumpTempP50),
		slog.Float64("pump_temp_p90", s.PumpTempP90),
		slog.Float64("tank1", s.Tank1),
		slog.Float64("tank2", s.Tank2),
		slog.Float64("tank3", s.Tank3),
		slog.Float64("tank4", s.Tank4),
		slog.Float64("total_volume", s.TotalVolume),
		slog.Float64("tank3_temp", s.Tank3Temp),
		slog.Float64("target", s.Target),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"edge_a_ticks", s.EdgeATicks,
		"edge_b_ticks", s.EdgeBTicks,
		"volume_a", s.VolumeA,
		"volume_b", s.VolumeB,
		"overshoot", s.Overshoot,
		"pump_on_ticks", s.PumpOnTicks,
		"pump_temp_mean", s.PumpTempMean,
		"pump_temp_std", s.PumpTempStd,
		"tank1", s.Tank1,
		"tank2", s.Tank2,
		"tank3", s.Tank3,
		"tank4", s.Tank4,
		"total_volume", s.TotalVolume,
		"target", s.Target,
	)
}

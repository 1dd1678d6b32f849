package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeTempStats(t *testing.T) {
	values := []float64{29, 21, 25, 23, 27, 22, 30, 24, 28, 26}
	ts := ComputeTempStats(values)

	if math.Abs(ts.Mean-25.5) > 0.001 {
		t.Errorf("Mean = %v, want 25.5", ts.Mean)
	}
	// Sample standard deviation of 21..30.
	if math.Abs(ts.Std-3.0277) > 0.001 {
		t.Errorf("Std = %v, want ~3.0277", ts.Std)
	}
	if math.Abs(ts.P10-21.9) > 0.01 || math.Abs(ts.P50-25.5) > 0.01 || math.Abs(ts.P90-29.1) > 0.01 {
		t.Errorf("percentiles = %v/%v/%v, want 21.9/25.5/29.1", ts.P10, ts.P50, ts.P90)
	}
	// Input must not be reordered.
	if values[0] != 29 {
		t.Error("ComputeTempStats sorted its input")
	}
}

func TestComputeTempStatsSmall(t *testing.T) {
	if (ComputeTempStats(nil) != TempStats{}) {
		t.Error("empty slice should return all zeros")
	}
	ts := ComputeTempStats([]float64{21.5})
	if ts.Mean != 21.5 || ts.Std != 0 || ts.P50 != 21.5 {
		t.Errorf("single value stats = %+v", ts)
	}
}

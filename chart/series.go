// Package chart holds the pump temperature history shown in the chart
// window and exported to PNG.
package chart

import (
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultMaxSamples is the history length used when none is configured.
const DefaultMaxSamples = 100

// MinTempSpan is the smallest vertical range a chart axis covers, in degrees.
const MinTempSpan = 2.0

// Point is one (time, temperature) sample.
type Point struct {
	Time        float64 `csv:"time"`
	Temperature float64 `csv:"temperature"`
}

// Series is a bounded, append-only history of samples. When full, the
// oldest sample is dropped. Safe for concurrent use.
type Series struct {
	mu      sync.Mutex
	max     int
	points  []Point
	visible bool
}

// NewSeries creates an empty, hidden series holding at most max samples.
func NewSeries(max int) *Series {
	if max <= 0 {
		max = DefaultMaxSamples
	}
	return &Series{max: max, points: make([]Point, 0, max)}
}

// Max returns the capacity of the series.
func (s *Series) Max() int {
	return s.max
}

// Show makes the series visible.
func (s *Series) Show() {
	s.mu.Lock()
	s.visible = true
	s.mu.Unlock()
}

// Hide makes the series invisible. Existing samples are kept.
func (s *Series) Hide() {
	s.mu.Lock()
	s.visible = false
	s.mu.Unlock()
}

// Visible reports whether the chart is on screen.
func (s *Series) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Push appends a sample, dropping the oldest once the series is full.
func (s *Series) Push(time, temperature float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.points) == s.max {
		copy(s.points, s.points[1:])
		s.points = s.points[:s.max-1]
	}
	s.points = append(s.points, Point{Time: time, Temperature: temperature})
}

// Clear drops every sample.
func (s *Series) Clear() {
	s.mu.Lock()
	s.points = s.points[:0]
	s.mu.Unlock()
}

// Len returns the number of stored samples.
func (s *Series) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

// Points returns a copy of the samples, oldest first.
func (s *Series) Points() []Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Summary describes the stored samples.
type Summary struct {
	Count   int
	MinTemp float64
	MaxTemp float64
	Mean    float64
	Last    Point
	// Time span covered, used for axis ranges.
	Start, End float64
}

// Summary computes statistics over the stored samples. The zero Summary is
// returned for an empty series.
func (s *Series) Summary() Summary {
	pts := s.Points()
	if len(pts) == 0 {
		return Summary{}
	}
	temps := make([]float64, len(pts))
	for i, p := range pts {
		temps[i] = p.Temperature
	}
	return Summary{
		Count:   len(pts),
		MinTemp: floats.Min(temps),
		MaxTemp: floats.Max(temps),
		Mean:    stat.Mean(temps, nil),
		Last:    pts[len(pts)-1],
		Start:   pts[0].Time,
		End:     pts[len(pts)-1].Time,
	}
}

// TempRange is the vertical axis range for the samples. A flat series is
// widened to at least MinTempSpan so it does not collapse to a line.
func (s Summary) TempRange() (lo, hi float64) {
	lo, hi = s.MinTemp, s.MaxTemp
	if hi-lo < MinTempSpan {
		mid := (lo + hi) / 2
		lo, hi = mid-MinTempSpan/2, mid+MinTempSpan/2
	}
	return lo, hi
}

package chart

import "sync"

// Lazy defers building the series until the chart is first shown. Until
// then it reports invisible, so no samples reach it.
type Lazy struct {
	mu     sync.Mutex
	max    int
	series *Series
}

// NewLazy creates an unbuilt chart holder.
func NewLazy(max int) *Lazy {
	return &Lazy{max: max}
}

// Show builds the series on first use and makes it visible.
func (l *Lazy) Show() *Series {
	l.mu.Lock()
	if l.series == nil {
		l.series = NewSeries(l.max)
	}
	s := l.series
	l.mu.Unlock()
	s.Show()
	return s
}

// Hide hides the series if it exists.
func (l *Lazy) Hide() {
	if s := l.Series(); s != nil {
		s.Hide()
	}
}

// Toggle shows a hidden chart and hides a visible one. Returns the new
// visibility.
func (l *Lazy) Toggle() bool {
	if l.Visible() {
		l.Hide()
		return false
	}
	l.Show()
	return true
}

// Built reports whether the series has been constructed.
func (l *Lazy) Built() bool {
	return l.Series() != nil
}

// Series returns the underlying series, or nil if never shown.
func (l *Lazy) Series() *Series {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.series
}

// Visible implements sim.SampleSink.
func (l *Lazy) Visible() bool {
	s := l.Series()
	return s != nil && s.Visible()
}

// Push implements sim.SampleSink.
func (l *Lazy) Push(time, temperature float64) {
	if s := l.Series(); s != nil {
		s.Push(time, temperature)
	}
}

// Clear implements sim.SampleSink.
func (l *Lazy) Clear() {
	if s := l.Series(); s != nil {
		s.Clear()
	}
}

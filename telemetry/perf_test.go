package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseTick)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrame <= 0 {
		t.Error("expected positive average frame duration")
	}
	if stats.PhaseAvg[PhaseTick] <= 0 || stats.PhaseAvg[PhaseDraw] <= 0 {
		t.Errorf("phases not tracked: %v", stats.PhaseAvg)
	}
	if stats.PhaseAvg[PhaseProject] != 0 {
		t.Error("untimed phase should be zero")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseTick)
		time.Sleep(10 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrame <= 0 {
		t.Error("expected positive average frame duration after window filled")
	}
	if stats.MinFrame > stats.MaxFrame {
		t.Errorf("min %v > max %v", stats.MinFrame, stats.MaxFrame)
	}
	if stats.FPS <= 0 {
		t.Error("expected positive FPS after several frames")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseTelemetry)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		time.Sleep(500 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseDraw] <= stats.PhasePct[PhaseTelemetry] {
		t.Errorf("expected draw (%v%%) > telemetry (%v%%)", stats.PhasePct[PhaseDraw], stats.PhasePct[PhaseTelemetry])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	if stats.AvgFrame != 0 || stats.FPS != 0 {
		t.Errorf("empty collector stats = %+v", stats)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var s PerfStats
	s.AvgFrame = 1500 * time.Microsecond
	s.PhasePct[PhaseTick] = 40
	s.PhasePct[PhaseDraw] = 55
	rec := s.ToCSV(120)
	if rec.WindowEnd != 120 || rec.AvgFrameUS != 1500 || rec.TickPct != 40 || rec.DrawPct != 55 {
		t.Errorf("ToCSV = %+v", rec)
	}
	if PhaseProject.String() != "project" || Phase(-1).String() != "unknown" {
		t.Error("unexpected phase names")
	}
}

package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/config"
	"github.com/pthm-cable/tanksim/sim"
)

// TickRecord is one row of ticks.csv.
type TickRecord struct {
	Tick      uint64  `csv:"tick"`
	Time      float64 `csv:"time"`
	Tank1     float64 `csv:"tank1"`
	Tank2     float64 `csv:"tank2"`
	Tank3     float64 `csv:"tank3"`
	Tank4     float64 `csv:"tank4"`
	Tank3Temp float64 `csv:"tank3_temp"`
	Tank4Temp float64 `csv:"tank4_temp"`
	PumpTemp  float64 `csv:"pump_temp"`
	PumpOn    bool    `csv:"pump_on"`
	Target    float64 `csv:"target"`
	EdgeA     bool    `csv:"edge_a"`
	EdgeB     bool    `csv:"edge_b"`
	Overshoot float64 `csv:"overshoot"`
}

// NewTickRecord flattens a step result and the post-tick plant.
func NewTickRecord(res sim.StepResult, s sim.State) TickRecord {
	return TickRecord{
		Tick:      res.Tick,
		Time:      res.Time,
		Tank1:     s.Tanks[components.Tank1].Amount,
		Tank2:     s.Tanks[components.Tank2].Amount,
		Tank3:     s.Tanks[components.Tank3].Amount,
		Tank4:     s.Tanks[components.Tank4].Amount,
		Tank3Temp: s.Tanks[components.Tank3].Temperature,
		Tank4Temp: s.Tanks[components.Tank4].Temperature,
		PumpTemp:  s.Pump.Temperature,
		PumpOn:    s.Pump.Running,
		Target:    s.TargetTemperature,
		EdgeA:     res.EdgeA.Flowing,
		EdgeB:     res.EdgeB.Flowing,
		Overshoot: res.Overshoot,
	}
}

// SampleRecord is one row of samples.csv: a pump temperature sample taken
// while the pump was running.
type SampleRecord struct {
	Tick        uint64  `csv:"tick"`
	Time        float64 `csv:"time"`
	Temperature float64 `csv:"temperature"`
}

// csvFile is an output file whose header is written with the first record.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles structured run output with CSV logging.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir     string
	ticks   csvFile
	windows csvFile
	samples csvFile
	events  csvFile
	perf    csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	files := []struct {
		name string
		dst  *csvFile
	}{
		{"ticks.csv", &om.ticks},
		{"windows.csv", &om.windows},
		{"samples.csv", &om.samples},
		{"events.csv", &om.events},
		{"perf.csv", &om.perf},
	}
	for _, file := range files {
		f, err := os.Create(filepath.Join(dir, file.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", file.name, err)
		}
		file.dst.f = f
	}
	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTick writes a row to ticks.csv.
func (om *OutputManager) WriteTick(rec TickRecord) error {
	if om == nil {
		return nil
	}
	if err := om.ticks.write([]TickRecord{rec}); err != nil {
		return fmt.Errorf("writing tick: %w", err)
	}
	return nil
}

// WriteWindow writes a window stats record to windows.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.windows.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing window: %w", err)
	}
	return nil
}

// WriteSample writes a pump temperature sample to samples.csv.
func (om *OutputManager) WriteSample(rec SampleRecord) error {
	if om == nil {
		return nil
	}
	if err := om.samples.write([]SampleRecord{rec}); err != nil {
		return fmt.Errorf("writing sample: %w", err)
	}
	return nil
}

// WriteEvents writes plant transitions to events.csv.
func (om *OutputManager) WriteEvents(events []Event) error {
	if om == nil || len(events) == 0 {
		return nil
	}
	if err := om.events.write(events); err != nil {
		return fmt.Errorf("writing events: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd uint64) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Path returns the path of a file inside the output directory.
func (om *OutputManager) Path(name string) string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, name)
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{&om.ticks, &om.windows, &om.samples, &om.events, &om.perf} {
		if c.f == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.f = nil
	}
	return firstErr
}

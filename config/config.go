// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/tanksim/sim"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Scene      SceneConfig      `yaml:"scene"`
	Simulation SimulationConfig `yaml:"simulation"`
	Chart      ChartConfig      `yaml:"chart"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SceneConfig is the coordinate space the schematic is laid out in.
// The camera fits it into the window.
type SceneConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SimulationConfig holds the plant model coefficients.
type SimulationConfig struct {
	TickPeriodMS        int     `yaml:"tick_period_ms"` // wall-clock ms between ticks
	TickSize            float64 `yaml:"tick_size"`      // simulated seconds per tick
	TankCapacity        float64 `yaml:"tank_capacity"`
	InitialTemperature  float64 `yaml:"initial_temperature"`
	AmbientTemperature  float64 `yaml:"ambient_temperature"`
	TransferRateA       float64 `yaml:"transfer_rate_a"` // Tank1 -> Tank2 per tick
	TransferRateB       float64 `yaml:"transfer_rate_b"` // Tank2 -> Tank3+Tank4 per tick
	Relaxation          float64 `yaml:"relaxation"`
	TargetStep          float64 `yaml:"target_step"`
	DefaultTarget       float64 `yaml:"default_target"`
	ClampBranchOverflow bool    `yaml:"clamp_branch_overflow"`
}

// ChartConfig holds chart history and export settings.
type ChartConfig struct {
	MaxSamples  int     `yaml:"max_samples"`
	PNGWidthIn  float64 `yaml:"png_width_in"`
	PNGHeightIn float64 `yaml:"png_height_in"`
}

// TelemetryConfig holds stats and CSV output settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // window length in simulated seconds
	RecordEvery int     `yaml:"record_every"` // ticks between ticks.csv rows
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	TickPeriod     time.Duration
	TicksPerWindow int
	ScreenW32      float32
	ScreenH32      float32
	SceneW32       float32
	SceneH32       float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	s := c.Simulation
	switch {
	case s.TickPeriodMS <= 0:
		return fmt.Errorf("%w: simulation.tick_period_ms must be positive, got %d", ErrInvalid, s.TickPeriodMS)
	case s.TickSize <= 0:
		return fmt.Errorf("%w: simulation.tick_size must be positive, got %g", ErrInvalid, s.TickSize)
	case s.TankCapacity <= 0:
		return fmt.Errorf("%w: simulation.tank_capacity must be positive, got %g", ErrInvalid, s.TankCapacity)
	case s.TransferRateA < 0 || s.TransferRateB < 0:
		return fmt.Errorf("%w: transfer rates must not be negative", ErrInvalid)
	case s.Relaxation < 0 || s.Relaxation > 1:
		return fmt.Errorf("%w: simulation.relaxation must be in [0, 1], got %g", ErrInvalid, s.Relaxation)
	case c.Chart.MaxSamples <= 0:
		return fmt.Errorf("%w: chart.max_samples must be positive, got %d", ErrInvalid, c.Chart.MaxSamples)
	case c.Telemetry.StatsWindow <= 0:
		return fmt.Errorf("%w: telemetry.stats_window must be positive, got %g", ErrInvalid, c.Telemetry.StatsWindow)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.TickPeriod = time.Duration(c.Simulation.TickPeriodMS) * time.Millisecond
	c.Derived.TicksPerWindow = int(c.Telemetry.StatsWindow/c.Simulation.TickSize + 0.5)
	if c.Derived.TicksPerWindow < 1 {
		c.Derived.TicksPerWindow = 1
	}
	if c.Telemetry.RecordEvery < 1 {
		c.Telemetry.RecordEvery = 1
	}

	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Scene dimensions default to screen size if not specified
	sceneW := c.Scene.Width
	if sceneW == 0 {
		sceneW = c.Screen.Width
	}
	sceneH := c.Scene.Height
	if sceneH == 0 {
		sceneH = c.Screen.Height
	}
	c.Derived.SceneW32 = float32(sceneW)
	c.Derived.SceneH32 = float32(sceneH)
}

// Params converts the simulation section into engine coefficients.
func (c *Config) Params() sim.Params {
	s := c.Simulation
	return sim.Params{
		TickSize:            s.TickSize,
		TickPeriod:          c.Derived.TickPeriod,
		TankCapacity:        s.TankCapacity,
		InitialTemperature:  s.InitialTemperature,
		AmbientTemperature:  s.AmbientTemperature,
		DefaultTarget:       s.DefaultTarget,
		TargetStep:          s.TargetStep,
		TransferRateA:       s.TransferRateA,
		TransferRateB:       s.TransferRateB,
		Relaxation:          s.Relaxation,
		ClampBranchOverflow: s.ClampBranchOverflow,
	}
}

// Marshal returns the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

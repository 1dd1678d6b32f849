// Package sim is the discrete-time process engine for the tank plant:
// the aggregate state, the per-tick step, the command surface that mutates
// state between ticks, and the clocks that drive it.
package sim

import "time"

// Params are the fixed coefficients of the linear plant model.
type Params struct {
	TickSize            float64       // simulated seconds added per tick
	TickPeriod          time.Duration // wall-clock period between ticks
	TankCapacity        float64
	InitialTemperature  float64 // tank and pump temperature at start and after reset
	AmbientTemperature  float64 // pump relaxes toward this while stopped
	DefaultTarget       float64
	TargetStep          float64 // increment used by IncreaseTarget/DecreaseTarget
	TransferRateA       float64 // Tank1 -> Tank2 per tick
	TransferRateB       float64 // Tank2 -> Tank3+Tank4 per tick
	Relaxation          float64 // thermal relaxation coefficient per tick
	ClampBranchOverflow bool    // cap edge-B additions at the branch tank's headroom
}

// DefaultParams returns the reference plant coefficients.
func DefaultParams() Params {
	return Params{
		TickSize:           0.1,
		TickPeriod:         100 * time.Millisecond,
		TankCapacity:       100.0,
		InitialTemperature: 20.0,
		AmbientTemperature: 20.0,
		DefaultTarget:      20.0,
		TargetStep:         0.5,
		TransferRateA:      1.0,
		TransferRateB:      1.5,
		Relaxation:         0.05,
	}
}

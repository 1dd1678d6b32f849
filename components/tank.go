package components

import "fmt"

// TankID identifies one of the plant's four tanks.
type TankID int

const (
	Tank1 TankID = iota
	Tank2
	Tank3
	Tank4
	NumTanks
)

// String returns the display label for the tank.
func (id TankID) String() string {
	if id < 0 || id >= NumTanks {
		return fmt.Sprintf("TANK ?%d", int(id))
	}
	return fmt.Sprintf("TANK %d", int(id)+1)
}

// Valid reports whether id names one of the four tanks.
func (id TankID) Valid() bool {
	return id >= 0 && id < NumTanks
}

// Tank holds the fluid state of a single vessel.
// Amount is kept within [0, Capacity] by the step engine and SetLevel,
// not by the record itself.
type Tank struct {
	Label       string  `inspect:"label"`
	Capacity    float64 `inspect:"label,fmt:%.1f"`
	Amount      float64 `inspect:"bar,of:Capacity"`
	Temperature float64 `inspect:"label,fmt:%.2f C"`
}

// NewTank creates an empty tank.
func NewTank(label string, capacity, temperature float64) Tank {
	return Tank{
		Label:       label,
		Capacity:    capacity,
		Temperature: temperature,
	}
}

// Fraction returns amount / capacity. It exceeds 1 when a branch transfer
// overshoots capacity. Zero-capacity tanks read as empty.
func (t *Tank) Fraction() float64 {
	if t.Capacity <= 0 {
		return 0
	}
	return t.Amount / t.Capacity
}

// Headroom returns how much more fluid fits before the tank is full.
func (t *Tank) Headroom() float64 {
	h := t.Capacity - t.Amount
	if h < 0 {
		return 0
	}
	return h
}

// Full reports whether the tank is at or above capacity.
func (t *Tank) Full() bool {
	return t.Amount >= t.Capacity
}

// SetLevel sets the absolute fill to pct percent of capacity.
// pct is clamped to [0, 100].
func (t *Tank) SetLevel(pct float64) {
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	t.Amount = t.Capacity * (pct / 100.0)
}

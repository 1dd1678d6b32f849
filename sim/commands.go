package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pthm-cable/tanksim/components"
)

var (
	// ErrUnknownTank is returned when a command names a tank outside the plant.
	ErrUnknownTank = errors.New("unknown tank")
	// ErrLevelNotSettable is returned when a level command names a tank
	// other than Tank1.
	ErrLevelNotSettable = errors.New("tank level not settable")
)

// Command is a state mutation issued by the control surface. Commands are
// applied by the state's owner between ticks, never during one.
type Command interface {
	Apply(s *State, e *Engine) error
}

// SetTankLevel sets Tank1 to an absolute fill percentage, clamped to
// [0, 100]. The other tanks only fill through their transfer edges.
type SetTankLevel struct {
	Tank    components.TankID
	Percent float64
}

// Apply implements Command.
func (c SetTankLevel) Apply(s *State, _ *Engine) error {
	if !c.Tank.Valid() {
		return fmt.Errorf("set level: %w: %d", ErrUnknownTank, c.Tank)
	}
	if c.Tank != components.Tank1 {
		return fmt.Errorf("set level: %w: %s", ErrLevelNotSettable, c.Tank)
	}
	s.Tank(c.Tank).SetLevel(c.Percent)
	return nil
}

// SetTankLevelText sets a tank level from user-entered text. Text that is
// not an integer is ignored.
type SetTankLevelText struct {
	Tank components.TankID
	Text string
}

// Apply implements Command.
func (c SetTankLevelText) Apply(s *State, e *Engine) error {
	pct, ok := ParseLevel(c.Text)
	if !ok {
		return nil
	}
	return SetTankLevel{Tank: c.Tank, Percent: pct}.Apply(s, e)
}

// ParseLevel parses a level entry: a signed decimal integer with optional
// surrounding whitespace. The result is clamped to [0, 100]; out-of-range
// magnitudes clamp by sign.
func ParseLevel(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, false
		}
		if strings.HasPrefix(text, "-") {
			return 0, true
		}
		return 100, true
	}
	return float64(min(max(v, 0), 100)), true
}

// TogglePump flips the pump between running and stopped.
type TogglePump struct{}

// Apply implements Command.
func (TogglePump) Apply(s *State, _ *Engine) error {
	s.Pump.Toggle()
	return nil
}

// AdjustTarget shifts the target temperature. There is no min/max bound.
type AdjustTarget struct {
	Delta float64
}

// Apply implements Command.
func (c AdjustTarget) Apply(s *State, _ *Engine) error {
	s.TargetTemperature += c.Delta
	return nil
}

// IncreaseTarget raises the target by one step.
func IncreaseTarget(p Params) AdjustTarget {
	return AdjustTarget{Delta: p.TargetStep}
}

// DecreaseTarget lowers the target by one step.
func DecreaseTarget(p Params) AdjustTarget {
	return AdjustTarget{Delta: -p.TargetStep}
}

// Reset returns the plant to its start values. The controller also clears
// the chart sink when it applies this command.
type Reset struct{}

// Apply implements Command.
func (Reset) Apply(s *State, e *Engine) error {
	e.Reset(s)
	return nil
}

package sim

import (
	"errors"
	"testing"

	"github.com/pthm-cable/tanksim/components"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		text string
		want float64
		ok   bool
	}{
		{"50", 50, true},
		{"0", 0, true},
		{"007", 7, true},
		{"100", 100, true},
		{"150", 100, true},
		{"+30", 30, true},
		{" 30 ", 30, true},
		{"30\n", 30, true},
		{"-5", 0, true},
		{"-0", 0, true},
		{"99999999999999999999999999", 100, true},
		{"-99999999999999999999999999", 0, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"5.5", 0, false},
		{"1e2", 0, false},
		{"+-5", 0, false},
		{"3 0", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSetTankLevelTextIgnoresInvalid(t *testing.T) {
	e, s := newPlant(t, DefaultParams())
	s.Tanks[components.Tank1].Amount = 30

	for _, text := range []string{"abc", "", "12.5", "ten"} {
		if err := (SetTankLevelText{Tank: components.Tank1, Text: text}).Apply(s, e); err != nil {
			t.Fatalf("Apply(%q) returned %v", text, err)
		}
		if got := s.Tanks[components.Tank1].Amount; got != 30 {
			t.Errorf("after %q amount = %v, want 30", text, got)
		}
	}
}

func TestSetTankLevelTextSignedInput(t *testing.T) {
	e, s := newPlant(t, DefaultParams())
	s.Tanks[components.Tank1].Amount = 40

	steps := []struct {
		text string
		want float64
	}{
		{"-5", 0},
		{"+30", 30},
		{"30 ", 30},
		{" 45", 45},
	}
	for _, step := range steps {
		if err := (SetTankLevelText{Tank: components.Tank1, Text: step.text}).Apply(s, e); err != nil {
			t.Fatalf("Apply(%q) returned %v", step.text, err)
		}
		if got := s.Tanks[components.Tank1].Amount; got != step.want {
			t.Errorf("after %q amount = %v, want %v", step.text, got, step.want)
		}
	}
}

func TestSetTankLevelTextClamps(t *testing.T) {
	e, s := newPlant(t, DefaultParams())
	if err := (SetTankLevelText{Tank: components.Tank1, Text: "250"}).Apply(s, e); err != nil {
		t.Fatal(err)
	}
	if got := s.Tanks[components.Tank1].Amount; got != 100 {
		t.Errorf("amount = %v, want 100", got)
	}
}

func TestSetTankLevelOnlyTank1(t *testing.T) {
	e, s := newPlant(t, DefaultParams())
	for id := components.Tank2; id < components.NumTanks; id++ {
		err := SetTankLevel{Tank: id, Percent: 25}.Apply(s, e)
		if !errors.Is(err, ErrLevelNotSettable) {
			t.Errorf("%s: err = %v, want ErrLevelNotSettable", id, err)
		}
		err = SetTankLevelText{Tank: id, Text: "25"}.Apply(s, e)
		if !errors.Is(err, ErrLevelNotSettable) {
			t.Errorf("%s text: err = %v, want ErrLevelNotSettable", id, err)
		}
		if got := s.Tanks[id].Amount; got != 0 {
			t.Errorf("%s amount = %v, want 0", id, got)
		}
	}
	if err := (SetTankLevel{Tank: components.Tank1, Percent: 25}).Apply(s, e); err != nil {
		t.Fatal(err)
	}
	if got := s.Tanks[components.Tank1].Amount; got != 25 {
		t.Errorf("TANK 1 amount = %v, want 25", got)
	}
}

func TestSetTankLevelUnknownTank(t *testing.T) {
	e, s := newPlant(t, DefaultParams())
	err := SetTankLevel{Tank: components.NumTanks, Percent: 10}.Apply(s, e)
	if !errors.Is(err, ErrUnknownTank) {
		t.Errorf("err = %v, want ErrUnknownTank", err)
	}
	err = SetTankLevelText{Tank: -1, Text: "10"}.Apply(s, e)
	if !errors.Is(err, ErrUnknownTank) {
		t.Errorf("text err = %v, want ErrUnknownTank", err)
	}
}

func TestTargetAdjustUnbounded(t *testing.T) {
	p := DefaultParams()
	e, s := newPlant(t, p)

	for i := 0; i < 400; i++ {
		_ = IncreaseTarget(p).Apply(s, e)
	}
	if s.TargetTemperature != 220 {
		t.Errorf("target = %v, want 220", s.TargetTemperature)
	}
	for i := 0; i < 1000; i++ {
		_ = DecreaseTarget(p).Apply(s, e)
	}
	if s.TargetTemperature != -280 {
		t.Errorf("target = %v, want -280", s.TargetTemperature)
	}
}

func TestTogglePumpCommand(t *testing.T) {
	e, s := newPlant(t, DefaultParams())
	_ = TogglePump{}.Apply(s, e)
	if !s.Pump.Running {
		t.Fatal("pump should be running")
	}
	_ = TogglePump{}.Apply(s, e)
	if s.Pump.Running {
		t.Fatal("pump should be stopped")
	}
}

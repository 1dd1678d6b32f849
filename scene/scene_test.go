package scene

import (
	"image/color"
	"math"
	"testing"

	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/topology"
)

func TestLiquidColor(t *testing.T) {
	tests := []struct {
		temp float64
		want color.RGBA
	}{
		{20, color.RGBA{0, 0, 255, 200}},
		{10, color.RGBA{0, 0, 255, 200}},
		{30, color.RGBA{50, 0, 205, 200}},
		{20.19, color.RGBA{0, 0, 255, 200}}, // truncates toward zero
		{71, color.RGBA{255, 0, 0, 200}},
		{500, color.RGBA{255, 0, 0, 200}},
	}
	for _, tt := range tests {
		if got := LiquidColor(tt.temp); got != tt.want {
			t.Errorf("LiquidColor(%v) = %v, want %v", tt.temp, got, tt.want)
		}
	}
}

func TestPumpBodyColor(t *testing.T) {
	tests := []struct {
		temp  float64
		wantR uint8
	}{
		{20, 70},
		{0, 70},
		{35.9, 85},
		{50, 100},
		{90, 100},
	}
	for _, tt := range tests {
		got := PumpBodyColor(tt.temp)
		if got.R != tt.wantR || got.G != 70 || got.B != 70 {
			t.Errorf("PumpBodyColor(%v) = %v, want R=%d", tt.temp, got, tt.wantR)
		}
	}
}

func TestPercentLabel(t *testing.T) {
	tests := []struct {
		fraction float64
		want     string
		shown    bool
	}{
		{0, "", false},
		{0.05, "", false},
		{0.051, "5%", true},
		{0.25, "25%", true},
		{1, "100%", true},
		{1.0025, "100%", true},
	}
	for _, tt := range tests {
		got, shown := PercentLabel(tt.fraction)
		if got != tt.want || shown != tt.shown {
			t.Errorf("PercentLabel(%v) = %q, %v; want %q, %v", tt.fraction, got, shown, tt.want, tt.shown)
		}
	}
}

func TestLiquidRect(t *testing.T) {
	tank := Shape{X: 600, Y: 50, W: 100, H: 140}

	if got := LiquidRect(tank, 0); got != (Shape{}) {
		t.Errorf("empty tank liquid = %+v", got)
	}
	half := LiquidRect(tank, 0.5)
	if half.H != 69 || half.W != 98 || half.X != 601 {
		t.Errorf("half liquid = %+v", half)
	}
	// Bottom edge sits on the inner wall.
	if math.Abs(float64(half.Y+half.H-(50+140-1))) > 1e-4 {
		t.Errorf("liquid bottom = %v", half.Y+half.H)
	}
	if over := LiquidRect(tank, 1.2); over.H != 138 {
		t.Errorf("overfull liquid height = %v, want 138", over.H)
	}
}

func newScene(t *testing.T) (*Scene, *sim.State) {
	t.Helper()
	net := topology.Default()
	st, err := sim.NewState(net, sim.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	return New(net), st
}

func TestProject(t *testing.T) {
	sc, st := newScene(t)
	st.Tanks[components.Tank1].Amount = 75
	st.Tanks[components.Tank3].Amount = 3
	st.Tanks[components.Tank3].Temperature = 30
	st.Pump.Running = true
	st.Pump.Temperature = 25
	st.TargetTemperature = 40
	st.Pipes[components.PipeTank1ToTank2].Flowing = true
	before := *st

	sc.Project(st)

	_, t1 := sc.Tank(components.Tank1)
	if t1.Percent != "75%" || !t1.ShowPercent || t1.Label != "TANK 1" {
		t.Errorf("tank1 view = %+v", t1)
	}
	_, t3 := sc.Tank(components.Tank3)
	if t3.ShowPercent {
		t.Error("3% fill should hide the percent label")
	}
	if t3.LiquidColor != (color.RGBA{50, 0, 205, 200}) {
		t.Errorf("tank3 color = %v", t3.LiquidColor)
	}

	_, pump := sc.Pump()
	if !pump.Running || pump.Lamp != ColorLampOn || pump.Body.R != 75 || pump.Target != 40 {
		t.Errorf("pump view = %+v", pump)
	}

	flowing := 0
	sc.EachPipe(func(p PipeView) {
		if p.Flowing {
			flowing++
			if p.ID != components.PipeTank1ToTank2 || p.Edge != topology.EdgeA {
				t.Errorf("unexpected flowing pipe %+v", p)
			}
		}
	})
	if flowing != 1 {
		t.Errorf("flowing pipes = %d, want 1", flowing)
	}

	if st.Tanks != before.Tanks || st.Pump != before.Pump || st.TargetTemperature != before.TargetTemperature {
		t.Error("Project modified the simulation state")
	}
}

func TestEachTankVisitsAll(t *testing.T) {
	sc, st := newScene(t)
	sc.Project(st)
	seen := map[components.TankID]bool{}
	sc.EachTank(func(_ Shape, v TankView) { seen[v.ID] = true })
	if len(seen) != int(components.NumTanks) {
		t.Errorf("visited %d tanks", len(seen))
	}
}

func TestHitTest(t *testing.T) {
	sc, _ := newScene(t)
	net := topology.Default()

	tests := []struct {
		name string
		p    components.Point
		kind TargetKind
		tank components.TankID
		hit  bool
	}{
		{"pump center", net.Layout.Pump.Center(), TargetPump, 0, true},
		{"tank2", net.Layout.Tanks[components.Tank2].Center(), TargetTank, components.Tank2, true},
		{"tank4", net.Layout.Tanks[components.Tank4].Center(), TargetTank, components.Tank4, true},
		{"empty space", components.Point{X: 5, Y: 5}, TargetNone, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sc.HitTest(tt.p.X, tt.p.Y)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && (got.Kind != tt.kind || (tt.kind == TargetTank && got.Tank != tt.tank)) {
				t.Errorf("HitTest = %+v", got)
			}
		})
	}
}

func TestSize(t *testing.T) {
	sc, _ := newScene(t)
	if w, h := sc.Size(); w != 800 || h != 550 {
		t.Errorf("Size() = %v x %v", w, h)
	}
}

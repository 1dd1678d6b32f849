package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tanksim/telemetry"
)

// HUDData holds all the data needed to render the status line.
type HUDData struct {
	Title       string
	Time        float64
	Tick        uint64
	Target      float64
	PumpRunning bool
	PumpTemp    float64
	TotalVolume float64
	FPS         int32
	Paused      bool
}

// StatusLine formats the running state of the plant.
func StatusLine(d HUDData) string {
	pump := "stopped"
	if d.PumpRunning {
		pump = "running"
	}
	return fmt.Sprintf("t=%.1fs | tick %d | pump %s %.2f C | target %.1f C | volume %.1f | FPS %d",
		d.Time, d.Tick, pump, d.PumpTemp, d.Target, d.TotalVolume, d.FPS)
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD along the top of the screen.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 8, 20, h.renderer.Theme.TitleColor)
	titleW := rl.MeasureText(data.Title, 20)
	rl.DrawText(StatusLine(data), 24+titleW, 12, 14, h.renderer.Theme.LabelColor)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 34, 16, rl.Orange)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-22, 14, rl.Gray)
}

// PerfPanel renders per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	pad := r.Theme.Padding
	height := int32(telemetry.NumPhases)*14 + 60
	r.DrawPanel(p.x, p.y, 230, height)

	x := p.x + pad
	y := p.y + pad
	rl.DrawText("Frame Timing", x, y, 16, r.Theme.TitleColor)
	y += 20

	rl.DrawText(fmt.Sprintf("avg %s  max %s", stats.AvgFrame.Round(time.Microsecond), stats.MaxFrame.Round(time.Microsecond)),
		x, y, 12, r.Theme.ValueColor)
	y += 16

	for ph := telemetry.Phase(0); ph < telemetry.NumPhases; ph++ {
		pct := stats.PhasePct[ph]
		color := r.Theme.LabelColor
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", ph, stats.PhaseAvg[ph].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

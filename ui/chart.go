package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tanksim/chart"
)

const (
	chartTitleBar = 24
	chartMargin   = 44
	chartLine     = 3
)

// ChartColor is the pump temperature trace colour.
var ChartColor = rl.Red

// ChartWindow draws the pump temperature history in a closable window.
type ChartWindow struct {
	renderer *Renderer
	Bounds   rl.Rectangle
}

// NewChartWindow creates a chart window with the given screen bounds.
func NewChartWindow(x, y, w, h float32) *ChartWindow {
	return &ChartWindow{
		renderer: NewRenderer(),
		Bounds:   rl.Rectangle{X: x, Y: y, Width: w, Height: h},
	}
}

// Contains reports whether a screen point is inside the window.
func (c *ChartWindow) Contains(x, y float32) bool {
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, c.Bounds)
}

// PlotArea is the rectangle the trace is drawn into.
func (c *ChartWindow) PlotArea() rl.Rectangle {
	return rl.Rectangle{
		X:      c.Bounds.X + chartMargin,
		Y:      c.Bounds.Y + chartTitleBar + 12,
		Width:  c.Bounds.Width - chartMargin - 16,
		Height: c.Bounds.Height - chartTitleBar - 12 - chartMargin,
	}
}

// ChartAxes are the data ranges mapped onto the plot area.
type ChartAxes struct {
	T0, T1 float64
	Lo, Hi float64
}

// AxesFor derives the axes from a summary. A single sample gets a
// one-second time span.
func AxesFor(sum chart.Summary) ChartAxes {
	lo, hi := sum.TempRange()
	t0, t1 := sum.Start, sum.End
	if t1-t0 <= 0 {
		t1 = t0 + 1
	}
	return ChartAxes{T0: t0, T1: t1, Lo: lo, Hi: hi}
}

// Map converts a sample to screen coordinates inside area.
func (a ChartAxes) Map(area rl.Rectangle, p chart.Point) rl.Vector2 {
	fx := (p.Time - a.T0) / (a.T1 - a.T0)
	fy := (p.Temperature - a.Lo) / (a.Hi - a.Lo)
	return rl.Vector2{
		X: area.X + float32(fx)*area.Width,
		Y: area.Y + area.Height - float32(fy)*area.Height,
	}
}

// Draw renders the series. It returns true when the close button was
// pressed.
func (c *ChartWindow) Draw(s *chart.Series) bool {
	closed := gui.WindowBox(c.Bounds, "Pump temperature")
	t := c.renderer.Theme
	area := c.PlotArea()

	rl.DrawRectangleRec(area, rl.White)
	rl.DrawRectangleLinesEx(area, 1, t.PanelBorder)
	rl.DrawText("Time (s)", int32(area.X+area.Width/2)-24, int32(area.Y+area.Height)+22, 12, t.LabelColor)

	pts := s.Points()
	if len(pts) == 0 {
		rl.DrawText("waiting for samples", int32(area.X)+10, int32(area.Y)+10, 14, t.LabelColor)
		return closed
	}

	sum := s.Summary()
	axes := AxesFor(sum)

	rl.DrawText(fmt.Sprintf("%.1f", axes.Hi), int32(c.Bounds.X)+6, int32(area.Y), 12, t.LabelColor)
	rl.DrawText(fmt.Sprintf("%.1f", axes.Lo), int32(c.Bounds.X)+6, int32(area.Y+area.Height)-12, 12, t.LabelColor)
	rl.DrawText(fmt.Sprintf("%.1f", axes.T0), int32(area.X), int32(area.Y+area.Height)+6, 12, t.LabelColor)
	t1 := fmt.Sprintf("%.1f", axes.T1)
	rl.DrawText(t1, int32(area.X+area.Width)-rl.MeasureText(t1, 12), int32(area.Y+area.Height)+6, 12, t.LabelColor)

	prev := axes.Map(area, pts[0])
	for _, p := range pts[1:] {
		cur := axes.Map(area, p)
		rl.DrawLineEx(prev, cur, chartLine, ChartColor)
		prev = cur
	}
	if len(pts) == 1 {
		rl.DrawCircleV(prev, chartLine, ChartColor)
	}

	rl.DrawText(fmt.Sprintf("now %.2f C  mean %.2f C", sum.Last.Temperature, sum.Mean),
		int32(area.X)+6, int32(area.Y)+4, 12, t.LabelColor)
	return closed
}

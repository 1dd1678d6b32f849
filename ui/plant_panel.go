package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/scene"
	"github.com/pthm-cable/tanksim/sim"
)

// PlantPanelDescriptor lays out the plant summary for a *sim.State.
func PlantPanelDescriptor(capacity float64) PanelDescriptor {
	levels := SectionDescriptor{ID: "levels", Title: "Levels"}
	for id := components.TankID(0); id < components.NumTanks; id++ {
		levels.Fields = append(levels.Fields, FieldDescriptor{
			ID:     fmt.Sprintf("tank%d", int(id)+1),
			Label:  id.String(),
			Widget: WidgetLevelBar,
			Max:    float32(capacity),
			Getter: func(d any) float32 { return float32(d.(*sim.State).Tanks[id].Amount) },
		})
	}

	return PanelDescriptor{
		ID:    "plant",
		Title: "Plant",
		Sections: []SectionDescriptor{
			levels,
			{
				ID:    "thermal",
				Title: "Thermal",
				Fields: []FieldDescriptor{
					{
						ID: "pump", Label: "Pump", Widget: WidgetText,
						TextGetter: func(d any) string {
							if d.(*sim.State).Pump.Running {
								return "running"
							}
							return "stopped"
						},
					},
					{
						ID: "pump_temp", Label: "Pump temp", Widget: WidgetText, Format: "%.2f C",
						Getter: func(d any) float32 { return float32(d.(*sim.State).Pump.Temperature) },
					},
					{
						ID: "tank3_temp", Label: "Tank 3 temp", Widget: WidgetText, Format: "%.2f C",
						Getter: func(d any) float32 { return float32(d.(*sim.State).Tanks[components.Tank3].Temperature) },
					},
					{
						ID: "target", Label: "Target", Widget: WidgetText, Format: "%.1f C",
						Getter: func(d any) float32 { return float32(d.(*sim.State).TargetTemperature) },
					},
					{
						ID: "liquid", Label: "Tank 3 fill", Widget: WidgetColorSwatch,
						ColorGetter: func(d any) rl.Color {
							return scene.LiquidColor(d.(*sim.State).Tanks[components.Tank3].Temperature)
						},
					},
				},
			},
			{
				ID:    "totals",
				Title: "Totals",
				Fields: []FieldDescriptor{
					{
						ID: "volume", Label: "Volume", Widget: WidgetText, Format: "%.2f",
						Getter: func(d any) float32 { return float32(d.(*sim.State).TotalAmount()) },
					},
					{
						ID: "time", Label: "Time", Widget: WidgetText, Format: "%.1f s",
						Getter: func(d any) float32 { return float32(d.(*sim.State).ElapsedTime) },
					},
				},
			},
		},
		Width: 260,
	}
}

// PlantPanel renders the plant summary.
type PlantPanel struct {
	renderer   *Renderer
	descriptor PanelDescriptor
	x, y       int32
}

// NewPlantPanel creates the panel for tanks of the given capacity.
func NewPlantPanel(x, y int32, capacity float64) *PlantPanel {
	return &PlantPanel{
		renderer:   NewRenderer(),
		descriptor: PlantPanelDescriptor(capacity),
		x:          x,
		y:          y,
	}
}

// SetPosition updates the panel position.
func (p *PlantPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height is the vertical space the panel occupies.
func (p *PlantPanel) Height() int32 {
	t := p.renderer.Theme
	h := t.Padding*2 + t.LineHeight + 6
	for _, sd := range p.descriptor.Sections {
		h += t.LineHeight + 2 + 4
		for _, fd := range sd.Fields {
			switch fd.Widget {
			case WidgetBar, WidgetLevelBar:
				h += t.LineHeight + 2
			default:
				h += t.LineHeight
			}
		}
	}
	return h
}

// Draw renders the panel for the given state.
func (p *PlantPanel) Draw(s *sim.State) {
	r := p.renderer
	width := p.descriptor.Width
	r.DrawPanel(p.x, p.y, width, p.Height())
	pad := r.Theme.Padding
	r.DrawPanelDescriptor(p.x+pad, p.y+pad, p.descriptor, s, width-pad*2)
}

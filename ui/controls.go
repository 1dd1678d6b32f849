package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/sim"
)

// ControlAction is what the operator asked for during one frame.
type ControlAction struct {
	Commands    []sim.Command
	ToggleChart bool
}

// Empty reports whether nothing was requested.
func (a ControlAction) Empty() bool {
	return len(a.Commands) == 0 && !a.ToggleChart
}

func (a *ControlAction) merge(b ControlAction) {
	a.Commands = append(a.Commands, b.Commands...)
	a.ToggleChart = a.ToggleChart != b.ToggleChart
}

// ControlPanel is the operator surface: the Tank1 level entry, the target
// temperature stepper, the chart toggle, and reset.
type ControlPanel struct {
	renderer *Renderer
	params   sim.Params
	x, y     int32
	width    int32

	levelText string
	editing   bool
}

// NewControlPanel creates the panel at the given position.
func NewControlPanel(x, y, width int32, params sim.Params) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		params:   params,
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Editing reports whether the level box has keyboard focus.
func (c *ControlPanel) Editing() bool {
	return c.editing
}

// LevelText returns the current contents of the level box.
func (c *ControlPanel) LevelText() string {
	return c.levelText
}

// SetLevelText replaces the contents of the level box.
func (c *ControlPanel) SetLevelText(text string) {
	c.levelText = text
}

func (c *ControlPanel) submitLevel() ControlAction {
	return ControlAction{Commands: []sim.Command{
		sim.SetTankLevelText{Tank: components.Tank1, Text: c.levelText},
	}}
}

func (c *ControlPanel) pressMinus() ControlAction {
	return ControlAction{Commands: []sim.Command{sim.DecreaseTarget(c.params)}}
}

func (c *ControlPanel) pressPlus() ControlAction {
	return ControlAction{Commands: []sim.Command{sim.IncreaseTarget(c.params)}}
}

func (c *ControlPanel) pressReset() ControlAction {
	c.levelText = ""
	c.editing = false
	return ControlAction{Commands: []sim.Command{sim.Reset{}}}
}

// Height is the vertical space the panel occupies.
func (c *ControlPanel) Height() int32 {
	return 230
}

// Draw renders the panel and returns the requested actions.
func (c *ControlPanel) Draw(target float64, chartVisible bool) ControlAction {
	var act ControlAction
	r := c.renderer
	pad := r.Theme.Padding
	inner := float32(c.width - pad*2)

	r.DrawPanel(c.x, c.y, c.width, c.Height())
	x := float32(c.x + pad)
	y := float32(c.y + pad)

	rl.DrawText("Controls", int32(x), int32(y), r.Theme.HeaderFontSize+2, r.Theme.TitleColor)
	y += 26

	r.DrawLabel(int32(x), int32(y), "Tank 1 level (%)")
	y += 18
	box := rl.Rectangle{X: x, Y: y, Width: inner, Height: 28}
	if gui.TextBox(box, &c.levelText, 8, c.editing) {
		if c.editing && rl.IsKeyPressed(rl.KeyEnter) {
			act.merge(c.submitLevel())
		}
		c.editing = !c.editing
	}
	y += 40

	r.DrawLabel(int32(x), int32(y), "Target temperature")
	y += 18
	if colorButton(rl.Rectangle{X: x, Y: y, Width: 40, Height: 28}, "-", r.Theme.MinusButton) {
		act.merge(c.pressMinus())
	}
	label := fmt.Sprintf("%.1f C", target)
	lw := rl.MeasureText(label, 20)
	rl.DrawText(label, int32(x+inner/2)-lw/2, int32(y)+4, 20, r.Theme.ValueColor)
	if colorButton(rl.Rectangle{X: x + inner - 40, Y: y, Width: 40, Height: 28}, "+", r.Theme.PlusButton) {
		act.merge(c.pressPlus())
	}
	y += 40

	chartLabel := "Show chart"
	if chartVisible {
		chartLabel = "Hide chart"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: 30}, chartLabel) {
		act.ToggleChart = true
	}
	y += 38

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: 30}, "Reset") {
		act.merge(c.pressReset())
	}

	return act
}

// colorButton is a flat button with a custom fill.
func colorButton(bounds rl.Rectangle, text string, fill rl.Color) bool {
	mouse := rl.GetMousePosition()
	hover := rl.CheckCollisionPointRec(mouse, bounds)
	c := fill
	if hover {
		c = rl.ColorBrightness(fill, -0.15)
	}
	rl.DrawRectangleRec(bounds, c)
	rl.DrawRectangleLinesEx(bounds, 1, rl.DarkGray)
	tw := rl.MeasureText(text, 20)
	rl.DrawText(text, int32(bounds.X+bounds.Width/2)-tw/2, int32(bounds.Y+bounds.Height/2)-10, 20, rl.Black)
	return hover && rl.IsMouseButtonPressed(rl.MouseButtonLeft)
}

// OverlayPanel lists the overlay toggles with their key bindings.
type OverlayPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewOverlayPanel creates a new overlay panel.
func NewOverlayPanel(x, y, width int32) *OverlayPanel {
	return &OverlayPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (o *OverlayPanel) SetPosition(x, y int32) {
	o.x = x
	o.y = y
}

// Draw renders the overlay list and returns the Y below it.
func (o *OverlayPanel) Draw(overlays *OverlayRegistry) int32 {
	r := o.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := 0
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight

	r.DrawPanel(o.x, o.y, o.width, panelHeight)

	y := o.y + padding
	rl.DrawText("Overlays", o.x+padding, y, r.Theme.HeaderFontSize, r.Theme.TitleColor)
	y += lineHeight + 4

	for _, category := range categories {
		rl.DrawText(categoryLabel(category), o.x+padding, y, r.Theme.FontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			o.drawToggle(o.x+padding, y, desc, overlays.IsEnabled(desc.ID), o.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	return o.y + panelHeight
}

func (o *OverlayPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := o.renderer

	statusColor := rl.LightGray
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 60, G: 170, B: 60, A: 255}
		nameColor = r.Theme.ValueColor
	}
	rl.DrawRectangle(x, y+3, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Gray)
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "schematic":
		return "Schematic"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

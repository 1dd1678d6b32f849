// Package inspector shows the fields of the selected tank or the pump in a
// side panel, built by reflecting over the component's inspect tags.
package inspector

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tanksim/camera"
	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/scene"
	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/topology"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
	actionHeight = 36
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 235}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector manages tank and pump selection and panel rendering.
type Inspector struct {
	net         *topology.Network
	selected    scene.Clickable
	hasSelected bool
	panelX      int32
	panelY      int32

	levelText string
	editing   bool
}

// NewInspector creates an inspector whose panel hugs the right edge of the
// given area.
func NewInspector(net *topology.Network, right, top int32) *Inspector {
	ins := &Inspector{net: net}
	ins.SetAnchor(right, top)
	return ins
}

// SetAnchor moves the panel so its right edge sits at x=right.
func (ins *Inspector) SetAnchor(right, top int32) {
	ins.panelX = right - PanelWidth - 10
	ins.panelY = top + 10
}

// Select shows the given clickable in the panel.
func (ins *Inspector) Select(c scene.Clickable) {
	if c.Kind == scene.TargetNone {
		ins.Deselect()
		return
	}
	if !ins.hasSelected || ins.selected != c {
		ins.levelText = ""
		ins.editing = false
	}
	ins.selected = c
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
	ins.selected = scene.Clickable{}
	ins.levelText = ""
	ins.editing = false
}

// Selected returns the current selection.
func (ins *Inspector) Selected() (scene.Clickable, bool) {
	return ins.selected, ins.hasSelected
}

// Editing reports whether the level box has keyboard focus.
func (ins *Inspector) Editing() bool {
	return ins.editing
}

// PanelContains reports whether a screen point is over the open panel.
func (ins *Inspector) PanelContains(x, y float32) bool {
	if !ins.hasSelected {
		return false
	}
	h := float32(ins.panelHeight())
	return x >= float32(ins.panelX) && x <= float32(ins.panelX+PanelWidth) &&
		y >= float32(ins.panelY) && y <= float32(ins.panelY)+h
}

// HandleInput deselects on right click or Escape, and on the close button.
// It returns true when the click was consumed by the panel.
func (ins *Inspector) HandleInput(mouseX, mouseY float32) bool {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || (rl.IsKeyPressed(rl.KeyEscape) && !ins.editing) {
		ins.Deselect()
		return false
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) || !ins.hasSelected {
		return false
	}

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	if int32(mouseX) >= closeX && int32(mouseX) <= closeX+20 &&
		int32(mouseY) >= closeY && int32(mouseY) <= closeY+20 {
		ins.Deselect()
		return true
	}
	return ins.PanelContains(mouseX, mouseY)
}

// title returns the panel heading for the selection.
func (ins *Inspector) title() string {
	if ins.selected.Kind == scene.TargetPump {
		return "PUMP"
	}
	return ins.selected.Tank.String()
}

// fields reflects over the selected component.
func (ins *Inspector) fields(s *sim.State) []Field {
	switch ins.selected.Kind {
	case scene.TargetTank:
		return ExtractFields(s.Tank(ins.selected.Tank))
	case scene.TargetPump:
		return ExtractFields(&s.Pump)
	}
	return nil
}

// edgeLines describes the transfer edges touching the selection.
func (ins *Inspector) edgeLines(s *sim.State) []string {
	var lines []string
	describe := func(dir string, ids []topology.EdgeID) {
		for _, id := range ids {
			state := "idle"
			if s.EdgeFlowing(ins.net, id) {
				state = "flowing"
			}
			lines = append(lines, fmt.Sprintf("%s edge %s: %s", dir, id, state))
		}
	}
	switch ins.selected.Kind {
	case scene.TargetTank:
		in, out := ins.net.TankEdges(ins.selected.Tank)
		describe("in ", in)
		describe("out", out)
	case scene.TargetPump:
		describe("gates", []topology.EdgeID{topology.EdgeB})
	}
	return lines
}

func (ins *Inspector) panelHeight() int32 {
	// Field and edge counts do not depend on state values, so a zero
	// state gives the layout.
	var s sim.State
	height := int32(HeaderHeight + PanelPadding)
	for _, f := range ins.fields(&s) {
		height += FieldHeight(f)
	}
	height += 12 + 20
	switch ins.selected.Kind {
	case scene.TargetTank:
		in, out := ins.net.TankEdges(ins.selected.Tank)
		height += int32(len(in)+len(out)) * 16
	case scene.TargetPump:
		height += 16
	}
	height += 12 + actionHeight + PanelPadding
	return height
}

// Draw renders the panel for the selection and returns any commands the
// operator issued from it.
func (ins *Inspector) Draw(s *sim.State) []sim.Command {
	if !ins.hasSelected {
		return nil
	}

	height := ins.panelHeight()
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, height, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(height)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR  "+ins.title(), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding

	for _, f := range ins.fields(s) {
		y += DrawField(x, y, f)
	}

	y += 4
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8
	ins.drawSectionHeader(x, y, "TRANSFER")
	y += 20
	for _, line := range ins.edgeLines(s) {
		c := ColorLabelDim
		if strings.HasSuffix(line, "flowing") {
			c = ColorBoolOn
		}
		rl.DrawText(line, x, y, 14, c)
		y += 16
	}

	y += 4
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	return ins.drawActions(x, y)
}

// drawActions renders the per-selection controls.
func (ins *Inspector) drawActions(x, y int32) []sim.Command {
	inner := float32(PanelWidth - 2*PanelPadding)
	switch ins.selected.Kind {
	case scene.TargetPump:
		if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: inner, Height: 28}, "Toggle pump") {
			return []sim.Command{sim.TogglePump{}}
		}

	case scene.TargetTank:
		if !ins.levelSettable() {
			rl.DrawText("Filled by transfer only", x, y+7, 14, ColorLabelDim)
			return nil
		}
		rl.DrawText("Level %", x, y+7, 14, ColorTextDim)
		box := rl.Rectangle{X: float32(x) + 70, Y: float32(y), Width: inner - 140, Height: 28}
		submit := false
		if gui.TextBox(box, &ins.levelText, 8, ins.editing) {
			submit = ins.editing && rl.IsKeyPressed(rl.KeyEnter)
			ins.editing = !ins.editing
		}
		if gui.Button(rl.Rectangle{X: box.X + box.Width + 8, Y: float32(y), Width: 62, Height: 28}, "Set") {
			submit = true
		}
		if submit {
			return []sim.Command{ins.levelCommand()}
		}
	}
	return nil
}

// levelSettable reports whether the selection takes level commands.
func (ins *Inspector) levelSettable() bool {
	return ins.selected.Kind == scene.TargetTank && ins.selected.Tank == components.Tank1
}

// levelCommand builds the level change for the selected tank.
func (ins *Inspector) levelCommand() sim.Command {
	return sim.SetTankLevelText{Tank: ins.selected.Tank, Text: ins.levelText}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// DrawSelectionHighlight outlines the selected entity on the schematic.
func (ins *Inspector) DrawSelectionHighlight(sc *scene.Scene, cam *camera.Camera) {
	if !ins.hasSelected {
		return
	}

	var shape scene.Shape
	switch ins.selected.Kind {
	case scene.TargetTank:
		shape, _ = sc.Tank(ins.selected.Tank)
	case scene.TargetPump:
		shape, _ = sc.Pump()
	default:
		return
	}

	const margin = 6
	sx, sy := cam.WorldToScreen(shape.X-margin, shape.Y-margin)
	w := cam.ScaleLength(shape.W + 2*margin)
	h := cam.ScaleLength(shape.H + 2*margin)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: sx, Y: sy, Width: w, Height: h}, 3, scene.ColorSelection)
}

package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tanksim/camera"
	"github.com/pthm-cable/tanksim/components"
	"github.com/pthm-cable/tanksim/scene"
)

// SchematicRenderer draws pipes, tanks, and the pump.
type SchematicRenderer struct {
	ShowPercent bool
}

// NewSchematicRenderer creates a schematic renderer.
func NewSchematicRenderer() *SchematicRenderer {
	return &SchematicRenderer{ShowPercent: true}
}

// Draw renders the whole schematic. Pipes go first so tanks and the pump
// cover their ends.
func (r *SchematicRenderer) Draw(sc *scene.Scene, cam *camera.Camera) {
	sc.EachPipe(func(p scene.PipeView) {
		drawPipe(cam, p)
	})
	sc.EachTank(func(shape scene.Shape, t scene.TankView) {
		if cam.IsVisible(shape.X, shape.Y-30, shape.W, shape.H+30) {
			r.drawTank(cam, shape, t)
		}
	})
	shape, pump := sc.Pump()
	if cam.IsVisible(shape.X, shape.Y, shape.W, shape.H+30) {
		drawPump(cam, shape, pump)
	}
}

func screenPath(cam *camera.Camera, path []components.Point) []rl.Vector2 {
	pts := make([]rl.Vector2, len(path))
	for i, p := range path {
		x, y := cam.WorldToScreen(p.X, p.Y)
		pts[i] = rl.Vector2{X: x, Y: y}
	}
	return pts
}

func drawPolyline(pts []rl.Vector2, width float32, color rl.Color) {
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(pts[i-1], pts[i], width, color)
	}
	// Round the joints so corners do not show notches.
	for _, p := range pts {
		rl.DrawCircleV(p, width/2, color)
	}
}

func drawPipe(cam *camera.Camera, p scene.PipeView) {
	pts := screenPath(cam, p.Path)
	drawPolyline(pts, cam.ScaleLength(scene.PipeWidth), scene.ColorPipe)
	if p.Flowing {
		drawPolyline(pts, cam.ScaleLength(scene.PipeFluidWidth), scene.ColorPipeFluid)
	}
}

func rectOnScreen(cam *camera.Camera, s scene.Shape) rl.Rectangle {
	x, y := cam.WorldToScreen(s.X, s.Y)
	return rl.Rectangle{X: x, Y: y, Width: cam.ScaleLength(s.W), Height: cam.ScaleLength(s.H)}
}

func fontSize(cam *camera.Camera, size float32) int32 {
	fs := int32(cam.ScaleLength(size))
	if fs < 8 {
		fs = 8
	}
	return fs
}

// drawCenteredText draws text centered on a screen point.
func drawCenteredText(text string, cx, cy float32, size int32, color rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, int32(cx)-w/2, int32(cy)-size/2, size, color)
}

func (r *SchematicRenderer) drawTank(cam *camera.Camera, shape scene.Shape, t scene.TankView) {
	body := rectOnScreen(cam, shape)
	rl.DrawRectangleRec(body, scene.ColorTankBody)

	if t.Liquid.H > 0 {
		rl.DrawRectangleRec(rectOnScreen(cam, t.Liquid), t.LiquidColor)
	}
	rl.DrawRectangleLinesEx(body, cam.ScaleLength(scene.TankWall), scene.ColorOutline)

	fs := fontSize(cam, 16)
	drawCenteredText(t.Label, body.X+body.Width/2, body.Y-float32(fs), fs, scene.ColorText)

	if r.ShowPercent && t.ShowPercent {
		drawCenteredText(t.Percent, body.X+body.Width/2, body.Y+body.Height/2, fontSize(cam, 20), scene.ColorText)
	}
}

func drawPump(cam *camera.Camera, shape scene.Shape, p scene.PumpView) {
	// Inlet cap on top of the pump body.
	top := scene.Shape{X: shape.X + shape.W/4, Y: shape.Y, W: shape.W / 2, H: shape.H / 5}
	main := scene.Shape{X: shape.X, Y: shape.Y + top.H, W: shape.W, H: shape.H - top.H}

	topRect := rectOnScreen(cam, top)
	mainRect := rectOnScreen(cam, main)
	rl.DrawRectangleRec(topRect, p.Body)
	rl.DrawRectangleRec(mainRect, p.Body)
	rl.DrawRectangleLinesEx(topRect, 1, scene.ColorOutline)
	rl.DrawRectangleLinesEx(mainRect, 1, scene.ColorOutline)

	inset := cam.ScaleLength(10)
	thick := cam.ScaleLength(3)
	rl.DrawLineEx(
		rl.Vector2{X: mainRect.X + inset, Y: mainRect.Y + inset},
		rl.Vector2{X: mainRect.X + mainRect.Width - inset, Y: mainRect.Y + mainRect.Height - inset},
		thick, rl.White)
	rl.DrawLineEx(
		rl.Vector2{X: mainRect.X + mainRect.Width - inset, Y: mainRect.Y + inset},
		rl.Vector2{X: mainRect.X + inset, Y: mainRect.Y + mainRect.Height - inset},
		thick, rl.White)

	lx, ly := cam.WorldToScreen(shape.X+shape.W-8, shape.Y+top.H+8)
	rl.DrawCircleV(rl.Vector2{X: lx, Y: ly}, cam.ScaleLength(scene.LampRadius), p.Lamp)
	rl.DrawCircleLines(int32(lx), int32(ly), cam.ScaleLength(scene.LampRadius), scene.ColorOutline)

	fs := fontSize(cam, 16)
	drawCenteredText("PUMP", mainRect.X+mainRect.Width/2, mainRect.Y+mainRect.Height+float32(fs), fs, scene.ColorText)
}

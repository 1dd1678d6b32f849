package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tanksim/camera"
	"github.com/pthm-cable/tanksim/scene"
)

var (
	colorTempLabel = rl.Color{R: 160, G: 40, B: 40, A: 255}
	colorEdgeLabel = rl.Color{R: 40, G: 90, B: 160, A: 255}
	colorHitBox    = rl.Color{R: 255, G: 0, B: 255, A: 160}
)

// DrawTemperatures labels each tank and the pump with its temperature.
func DrawTemperatures(sc *scene.Scene, cam *camera.Camera) {
	fs := fontSize(cam, 12)
	sc.EachTank(func(shape scene.Shape, t scene.TankView) {
		x, y := cam.WorldToScreen(shape.X+shape.W+6, shape.Y+4)
		rl.DrawText(fmt.Sprintf("%.1f C", t.Temperature), int32(x), int32(y), fs, colorTempLabel)
	})

	shape, p := sc.Pump()
	x, y := cam.WorldToScreen(shape.X+shape.W+6, shape.Y)
	rl.DrawText(fmt.Sprintf("%.2f C", p.Temperature), int32(x), int32(y), fs, colorTempLabel)
	rl.DrawText(fmt.Sprintf("target %.1f C", p.Target), int32(x), int32(y)+fs+2, fs, colorTempLabel)
}

// DrawEdgeLabels names the edge and segment at the midpoint of each pipe.
func DrawEdgeLabels(sc *scene.Scene, cam *camera.Camera) {
	fs := fontSize(cam, 11)
	sc.EachPipe(func(p scene.PipeView) {
		mid := scene.Midpoint(p.Path)
		x, y := cam.WorldToScreen(mid.X, mid.Y)
		text := fmt.Sprintf("%s:%s", p.Edge, p.ID)
		w := rl.MeasureText(text, fs)
		rl.DrawRectangle(int32(x)-w/2-2, int32(y)-fs-8, w+4, fs+2, rl.Color{R: 255, G: 255, B: 255, A: 200})
		rl.DrawText(text, int32(x)-w/2, int32(y)-fs-7, fs, colorEdgeLabel)
	})
}

// DrawHitBoxes outlines every clickable footprint.
func DrawHitBoxes(sc *scene.Scene, cam *camera.Camera) {
	sc.EachTank(func(shape scene.Shape, _ scene.TankView) {
		rl.DrawRectangleLinesEx(rectOnScreen(cam, shape), 1, colorHitBox)
	})
	shape, _ := sc.Pump()
	rl.DrawRectangleLinesEx(rectOnScreen(cam, shape), 1, colorHitBox)
}

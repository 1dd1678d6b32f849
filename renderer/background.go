// Package renderer draws the plant schematic from the scene's view
// components through the camera.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tanksim/camera"
	"github.com/pthm-cable/tanksim/scene"
)

// BackgroundRenderer fills the viewport and draws a faint grid over the
// scene area.
type BackgroundRenderer struct {
	GridSpacing float32
	GridColor   rl.Color
}

// NewBackgroundRenderer creates a background with a grid every spacing
// scene units.
func NewBackgroundRenderer(spacing float32) *BackgroundRenderer {
	return &BackgroundRenderer{
		GridSpacing: spacing,
		GridColor:   rl.Color{R: 225, G: 225, B: 230, A: 255},
	}
}

// Draw renders the background for the camera's viewport.
func (b *BackgroundRenderer) Draw(cam *camera.Camera, sceneW, sceneH float32) {
	rl.DrawRectangle(int32(cam.ViewportX), int32(cam.ViewportY), int32(cam.ViewportW), int32(cam.ViewportH), scene.ColorBackground)
	if b.GridSpacing <= 0 {
		return
	}

	for x := float32(0); x <= sceneW; x += b.GridSpacing {
		x0, y0 := cam.WorldToScreen(x, 0)
		x1, y1 := cam.WorldToScreen(x, sceneH)
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, b.GridColor)
	}
	for y := float32(0); y <= sceneH; y += b.GridSpacing {
		x0, y0 := cam.WorldToScreen(0, y)
		x1, y1 := cam.WorldToScreen(sceneW, y)
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, b.GridColor)
	}
}

package app

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tanksim/scene"
	"github.com/pthm-cable/tanksim/sim"
)

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	a.handleResize()

	typing := a.controls.Editing() || a.inspector.Editing()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if !typing {
		if rl.IsKeyPressed(rl.KeySpace) {
			paused := a.frame.TogglePause()
			slog.Info("pause toggled", "paused", paused)
		}

		key := rl.GetKeyPressed()
		for key != 0 {
			if id, on, ok := a.overlays.HandleKeyPress(key); ok {
				slog.Debug("overlay toggled", "overlay", id, "enabled", on)
			}
			key = rl.GetKeyPressed()
		}

		a.handleCameraInput()
	}

	mouse := rl.GetMousePosition()
	if a.inspector.HandleInput(mouse.X, mouse.Y) {
		return
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.handleClick(mouse.X, mouse.Y)
	}
}

// handleClick routes a left click on the schematic. Clicking the pump
// toggles it and selects it; clicking a tank selects it.
func (a *App) handleClick(sx, sy float32) {
	if !a.cam.InViewport(sx, sy) {
		return
	}
	if a.sess.Chart().Visible() && a.chartWin.Contains(sx, sy) {
		return
	}

	wx, wy := a.cam.ScreenToWorld(sx, sy)
	hit, ok := a.scene.HitTest(wx, wy)
	if !ok {
		a.inspector.Deselect()
		return
	}

	if hit.Kind == scene.TargetPump {
		a.submit(sim.TogglePump{})
		slog.Info("pump toggled", "running", a.state.Pump.Running)
	}
	a.inspector.Select(hit)
}

// handleResize checks for window resize and propagates new dimensions.
func (a *App) handleResize() {
	if !rl.IsWindowResized() && !rl.IsWindowFullscreen() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == a.width && h == a.height {
		return
	}
	a.layout(w, h)
}

// handleCameraInput processes camera pan/zoom controls.
func (a *App) handleCameraInput() {
	const panSpeed = 8

	if rl.IsKeyDown(rl.KeyRight) {
		a.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.cam.Pan(0, -panSpeed)
	}

	mouse := rl.GetMousePosition()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && a.cam.InViewport(mouse.X, mouse.Y) {
		a.cam.ZoomBy(1 + wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.cam.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		a.cam.Reset()
	}
}

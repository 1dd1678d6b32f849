package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tanksim/renderer"
	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/telemetry"
	"github.com/pthm-cable/tanksim/ui"
)

const windowTitle = "Tank Plant"

// Draw renders one frame and applies anything the operator clicked.
func (a *App) Draw() {
	perf := a.sess.Perf()
	perf.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	a.drawSchematic()

	cmds := a.inspector.Draw(&a.state)
	a.drawChrome()
	a.submit(cmds...)

	rl.EndDrawing()
	perf.EndFrame()
}

// drawSchematic renders the plant inside the camera viewport.
func (a *App) drawSchematic() {
	sw, sh := a.scene.Size()
	vp := a.cam
	rl.BeginScissorMode(int32(vp.ViewportX), int32(vp.ViewportY), int32(vp.ViewportW), int32(vp.ViewportH))

	a.background.Draw(a.cam, sw, sh)
	a.schematic.ShowPercent = a.overlays.IsEnabled(ui.OverlayPercentLabels)
	a.schematic.Draw(a.scene, a.cam)
	a.flow.Draw(a.scene, a.cam, a.animTime)

	if a.overlays.IsEnabled(ui.OverlayTemperatures) {
		renderer.DrawTemperatures(a.scene, a.cam)
	}
	if a.overlays.IsEnabled(ui.OverlayEdgeLabels) {
		renderer.DrawEdgeLabels(a.scene, a.cam)
	}
	if a.overlays.IsEnabled(ui.OverlayHitBoxes) {
		renderer.DrawHitBoxes(a.scene, a.cam)
	}
	a.inspector.DrawSelectionHighlight(a.scene, a.cam)

	rl.EndScissorMode()
}

// drawChrome renders the HUD, the sidebar and the floating windows.
func (a *App) drawChrome() {
	a.hud.Draw(ui.HUDData{
		Title:       windowTitle,
		Time:        a.state.ElapsedTime,
		Tick:        a.state.Tick,
		Target:      a.state.TargetTemperature,
		PumpRunning: a.state.Pump.Running,
		PumpTemp:    a.state.Pump.Temperature,
		TotalVolume: a.state.TotalAmount(),
		FPS:         rl.GetFPS(),
		Paused:      a.frame.Paused(),
	})

	viewW := a.width - SidebarWidth
	rl.DrawRectangle(int32(viewW), TopBar, SidebarWidth, int32(a.height)-TopBar-BottomBar, rl.Color{R: 235, G: 235, B: 240, A: 255})

	chart := a.sess.Chart()
	action := a.controls.Draw(a.state.TargetTemperature, chart.Visible())
	a.handleControlAction(action)

	a.plant.Draw(&a.state)
	a.overlayUI.Draw(a.overlays)

	if a.overlays.IsEnabled(ui.OverlayPerf) {
		a.perfPanel.Draw(a.sess.Perf().Stats())
	}

	if chart.Visible() {
		if a.chartWin.Draw(chart.Series()) {
			chart.Hide()
		}
	}

	a.hud.DrawControls(int32(a.height), controlsLegend)
}

// handleControlAction applies what the sidebar controls emitted.
func (a *App) handleControlAction(action ui.ControlAction) {
	if action.Empty() {
		return
	}
	if action.ToggleChart {
		a.sess.Chart().Toggle()
	}
	for _, cmd := range action.Commands {
		if _, ok := cmd.(sim.Reset); ok {
			a.frame.Restart()
			a.inspector.Deselect()
		}
	}
	a.submit(action.Commands...)
}

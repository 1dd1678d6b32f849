// Package app runs the plant in a raylib window: it owns the frame clock,
// the scene projection, the camera, and the control surface, and forwards
// operator input to the session as commands.
package app

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tanksim/camera"
	"github.com/pthm-cable/tanksim/inspector"
	"github.com/pthm-cable/tanksim/renderer"
	"github.com/pthm-cable/tanksim/scene"
	"github.com/pthm-cable/tanksim/session"
	"github.com/pthm-cable/tanksim/sim"
	"github.com/pthm-cable/tanksim/telemetry"
	"github.com/pthm-cable/tanksim/ui"
)

// Layout constants in screen pixels.
const (
	SidebarWidth = 280
	TopBar       = 56
	BottomBar    = 28
)

const controlsLegend = "Click pump: toggle | Click tank: inspect | Space: pause | Wheel/+/-: zoom | Arrows: pan | Home: fit | F11: fullscreen"

// App holds the window-side state around a session.
type App struct {
	sess  *session.Session
	frame *sim.FrameClock
	scene *scene.Scene
	cam   *camera.Camera

	background *renderer.BackgroundRenderer
	schematic  *renderer.SchematicRenderer
	flow       *renderer.FlowRenderer

	hud       *ui.HUD
	controls  *ui.ControlPanel
	plant     *ui.PlantPanel
	overlays  *ui.OverlayRegistry
	overlayUI *ui.OverlayPanel
	perfPanel *ui.PerfPanel
	chartWin  *ui.ChartWindow
	inspector *inspector.Inspector

	// Latest snapshot, refreshed after every tick and command.
	state sim.State

	animTime      float32
	width, height float32
}

// New creates the window-side state. The raylib window must already be open.
func New(sess *session.Session) *App {
	cfg := sess.Config()
	a := &App{
		sess:       sess,
		frame:      sim.NewFrameClock(sess.Params().TickPeriod),
		scene:      scene.New(sess.Network()),
		background: renderer.NewBackgroundRenderer(50),
		schematic:  renderer.NewSchematicRenderer(),
		flow:       renderer.NewFlowRenderer(24, 60),
		hud:        ui.NewHUD(),
		controls:   ui.NewControlPanel(0, 0, SidebarWidth-20, sess.Params()),
		plant:      ui.NewPlantPanel(0, 0, cfg.Simulation.TankCapacity),
		overlays:   ui.NewOverlayRegistry(),
		overlayUI:  ui.NewOverlayPanel(0, 0, SidebarWidth-20),
		perfPanel:  ui.NewPerfPanel(0, 0),
		chartWin:   ui.NewChartWindow(0, 0, 460, 300),
		inspector:  inspector.NewInspector(sess.Network(), 0, 0),
	}

	sw, sh := a.scene.Size()
	a.cam = camera.New(1, 1, sw, sh)
	a.layout(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)

	a.refresh()
	slog.Info("window ready", "width", a.width, "height", a.height)
	return a
}

// layout positions every panel for the given window size.
func (a *App) layout(w, h float32) {
	a.width, a.height = w, h
	viewW := w - SidebarWidth
	viewH := h - TopBar - BottomBar
	a.cam.SetViewport(0, TopBar, viewW, viewH)

	x := int32(viewW) + 10
	a.controls.SetPosition(x, TopBar)
	y := TopBar + a.controls.Height() + 10
	a.plant.SetPosition(x, y)
	y += a.plant.Height() + 10
	a.overlayUI.SetPosition(x, y)

	a.perfPanel.SetPosition(10, int32(h)-BottomBar-int32(telemetry.NumPhases)*14-70)
	a.inspector.SetAnchor(int32(viewW), TopBar)
	a.chartWin.Bounds.X = 20
	a.chartWin.Bounds.Y = TopBar + 20
}

// refresh takes a fresh snapshot and projects it into the scene.
func (a *App) refresh() {
	a.state = a.sess.Controller().Snapshot()
	a.scene.Project(&a.state)
}

// submit hands commands to the controller and applies them right away so
// the next frame shows their effect.
func (a *App) submit(cmds ...sim.Command) {
	if len(cmds) == 0 {
		return
	}
	ctrl := a.sess.Controller()
	for _, cmd := range cmds {
		if err := ctrl.Apply(cmd); err != nil {
			slog.Warn("command rejected", "command", cmd, "error", err)
		}
	}
	a.refresh()
}

// Update runs one frame of input and simulation.
func (a *App) Update() {
	perf := a.sess.Perf()
	perf.StartFrame()

	a.handleInput()

	dt := rl.GetFrameTime()
	if !a.frame.Paused() {
		a.animTime += dt
	}
	if a.frame.Advance(float64(dt)) {
		perf.StartPhase(telemetry.PhaseTick)
		a.sess.Tick()
		perf.StartPhase(telemetry.PhaseTelemetry)
		a.sess.FlushPerf()
	}

	perf.StartPhase(telemetry.PhaseProject)
	a.refresh()
}

// Tick returns the current tick count.
func (a *App) Tick() uint64 {
	return a.state.Tick
}

// Unload releases window-side resources.
func (a *App) Unload() {
	slog.Info("window closed", "tick", a.state.Tick)
}

// Run drives frames until the window closes or maxTicks ticks have run.
// A zero maxTicks runs until the window closes.
func (a *App) Run(maxTicks uint64) {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
		if maxTicks > 0 && a.Tick() >= maxTicks {
			slog.Info("tick limit reached", "tick", a.Tick())
			return
		}
	}
}

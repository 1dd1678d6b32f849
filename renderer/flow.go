package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tanksim/camera"
	"github.com/pthm-cable/tanksim/scene"
)

// FlowRenderer animates bubbles along pipes that carry fluid.
type FlowRenderer struct {
	Spacing float32 // scene units between bubbles
	Speed   float32 // scene units per second
}

// NewFlowRenderer creates a flow renderer.
func NewFlowRenderer(spacing, speed float32) *FlowRenderer {
	return &FlowRenderer{Spacing: spacing, Speed: speed}
}

// Draw renders bubbles on every flowing segment at animation time t.
func (r *FlowRenderer) Draw(sc *scene.Scene, cam *camera.Camera, t float32) {
	if r.Spacing <= 0 {
		return
	}
	offset := float32(math.Mod(float64(t*r.Speed), float64(r.Spacing)))
	radius := cam.ScaleLength(scene.PipeFluidWidth / 4)

	rl.BeginBlendMode(rl.BlendAlpha)
	sc.EachPipe(func(p scene.PipeView) {
		if !p.Flowing {
			return
		}
		length := scene.PathLength(p.Path)
		for d := offset; d < length; d += r.Spacing {
			pt := scene.PointAlong(p.Path, d)
			x, y := cam.WorldToScreen(pt.X, pt.Y)

			// Fade in and out at the segment ends.
			edge := min(d, length-d) / r.Spacing
			alpha := uint8(200 * min(edge, 1))
			rl.DrawCircleV(rl.Vector2{X: x, Y: y}, radius, rl.Color{R: 255, G: 255, B: 255, A: alpha})
		}
	})
	rl.EndBlendMode()
}

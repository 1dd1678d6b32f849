package scene

import (
	"fmt"
	"image/color"
)

// Schematic palette.
var (
	ColorBackground = color.RGBA{240, 240, 240, 255}
	ColorTankBody   = color.RGBA{255, 255, 255, 255}
	ColorOutline    = color.RGBA{0, 0, 0, 255}
	ColorText       = color.RGBA{0, 0, 0, 255}
	ColorPipe       = color.RGBA{128, 128, 128, 255}
	ColorPipeFluid  = color.RGBA{0, 180, 255, 255}
	ColorLampOn     = color.RGBA{0, 255, 0, 255}
	ColorLampOff    = color.RGBA{255, 0, 0, 255}
	ColorSelection  = color.RGBA{255, 200, 0, 255}
)

// Geometry constants in scene units.
const (
	TankWall        = 2
	PipeWidth       = 12
	PipeFluidWidth  = PipeWidth - 4
	LampRadius      = 6
	PercentMinShown = 0.05
)

// LiquidColor maps a tank temperature to its liquid fill: blue at 20°C,
// shading to red by 71°C.
func LiquidColor(temp float64) color.RGBA {
	r := clampInt(int((temp-20)*5), 0, 255)
	return color.RGBA{R: uint8(r), G: 0, B: uint8(255 - r), A: 200}
}

// PumpBodyColor darkens the pump body toward red as it heats.
func PumpBodyColor(temp float64) color.RGBA {
	r := clampInt(int(70+(temp-20)), 70, 100)
	return color.RGBA{R: uint8(r), G: 70, B: 70, A: 255}
}

// LampColor is green while the pump runs, red otherwise.
func LampColor(running bool) color.RGBA {
	if running {
		return ColorLampOn
	}
	return ColorLampOff
}

// PercentLabel formats a fill fraction. Levels at or below 5% show no label.
func PercentLabel(fraction float64) (string, bool) {
	if fraction <= PercentMinShown {
		return "", false
	}
	return fmt.Sprintf("%d%%", int(fraction*100)), true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

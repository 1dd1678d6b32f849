// Package camera maps the fixed schematic coordinate space onto the part of
// the window reserved for it.
package camera

// Camera controls the viewport onto the schematic. The scene is bounded:
// panning keeps the camera center inside it.
type Camera struct {
	// Position is the camera center in scene coordinates
	X, Y float32

	// Zoom level relative to 1:1 scene units per pixel
	Zoom float32

	// Viewport rectangle on screen
	ViewportX, ViewportY float32
	ViewportW, ViewportH float32

	// Scene dimensions
	SceneW, SceneH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera for a viewport at the screen origin, fitted to the scene.
func New(viewportW, viewportH, sceneW, sceneH float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		SceneW:    sceneW,
		SceneH:    sceneH,
		MaxZoom:   4.0,
	}
	c.Fit()
	return c
}

// FitZoom is the zoom at which the whole scene fits the viewport.
func (c *Camera) FitZoom() float32 {
	if c.SceneW <= 0 || c.SceneH <= 0 {
		return 1
	}
	zx := c.ViewportW / c.SceneW
	zy := c.ViewportH / c.SceneH
	if zy < zx {
		return zy
	}
	return zx
}

// Fit centers the scene and zooms so it fills the viewport.
func (c *Camera) Fit() {
	c.MinZoom = c.FitZoom()
	c.X = c.SceneW / 2
	c.Y = c.SceneH / 2
	c.Zoom = c.MinZoom
}

// WorldToScreen converts scene coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportX + c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportY + c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to scene coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportX-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportY-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// ScaleLength converts a scene length to pixels.
func (c *Camera) ScaleLength(l float32) float32 {
	return l * c.Zoom
}

// InViewport reports whether a screen point lies inside the viewport.
func (c *Camera) InViewport(sx, sy float32) bool {
	return sx >= c.ViewportX && sx < c.ViewportX+c.ViewportW &&
		sy >= c.ViewportY && sy < c.ViewportY+c.ViewportH
}

// IsVisible returns true if a scene rectangle could be visible on screen
// (conservative check for culling).
func (c *Camera) IsVisible(x, y, w, h float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return x+w >= minX && x <= maxX && y+h >= minY && y <= maxY
}

// SetViewport places the viewport on screen and refits if the fit zoom changed.
func (c *Camera) SetViewport(x, y, w, h float32) {
	if x == c.ViewportX && y == c.ViewportY && w == c.ViewportW && h == c.ViewportH {
		return
	}
	atFit := c.Zoom == c.MinZoom
	c.ViewportX, c.ViewportY = x, y
	c.ViewportW, c.ViewportH = w, h
	c.MinZoom = c.FitZoom()
	if atFit || c.Zoom < c.MinZoom {
		c.Fit()
	}
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, c.SceneW)
	c.Y = clamp(c.Y+dy/c.Zoom, 0, c.SceneH)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the fitted view.
func (c *Camera) Reset() {
	c.Fit()
}

// VisibleWorldBounds returns the scene-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

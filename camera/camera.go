// Package camera provides a 2D viewport onto the playfield. At rest it shows
// the screen 1:1; the debug view zooms out to reveal the cull envelope.
package camera

import "github.com/pthm-cable/spacestorm/components"

// Camera controls the viewport into the playfield.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 0.5 = twice as much world visible)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera showing the viewport-sized playfield at 1:1.
func New(viewportW, viewportH float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.05,
		MaxZoom:   4.0,
	}
	c.Reset()
	return c
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible reports whether rect r overlaps the visible area.
func (c *Camera) IsVisible(r components.Rect) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return r.X+r.W >= minX && r.X <= maxX && r.Y+r.H >= minY && r.Y <= maxY
}

// Resize updates viewport dimensions. A camera at rest stays at rest.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	atRest := c.AtRest()
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	if atRest {
		c.Reset()
	}
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor keeping the world point under screen (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	nx, ny := c.WorldToScreen(wx, wy)
	c.Pan(nx-sx, ny-sy)
}

// Fit centers on r and zooms so all of it is visible.
func (c *Camera) Fit(r components.Rect) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	c.X = float32(r.X + r.W/2)
	c.Y = float32(r.Y + r.H/2)
	zx := c.ViewportW / float32(r.W)
	zy := c.ViewportH / float32(r.H)
	c.SetZoom(min(zx, zy))
}

// Reset returns the camera to the 1:1 screen view.
func (c *Camera) Reset() {
	c.X = c.ViewportW / 2
	c.Y = c.ViewportH / 2
	c.Zoom = 1.0
}

// AtRest reports whether the camera shows the screen 1:1.
func (c *Camera) AtRest() bool {
	return c.Zoom == 1 && c.X == c.ViewportW/2 && c.Y == c.ViewportH/2
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return float64(c.X - halfW), float64(c.Y - halfH), float64(c.X + halfW), float64(c.Y + halfH)
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

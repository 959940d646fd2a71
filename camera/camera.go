// Package camera provides the scrolling 2D camera that maps world positions
// into the viewport.
package camera

// Camera controls the viewport into the game world.
// The focus point is drawn at the center of the viewport.
type Camera struct {
	// Focus is the world point currently centered in the viewport
	X, Y float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// World dimensions
	WorldW, WorldH float64
}

// New creates a camera focused on (x, y).
func New(viewportW, viewportH, worldW, worldH, x, y float64) *Camera {
	return &Camera{
		X:         x,
		Y:         y,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
	}
}

// Focus recenters the camera on a world position.
func (c *Camera) Focus(x, y float64) {
	c.X = x
	c.Y = y
}

// Center returns the viewport center in screen coordinates.
func (c *Camera) Center() (sx, sy float64) {
	return c.ViewportW / 2, c.ViewportH / 2
}

// WorldToScreen converts world coordinates to screen coordinates:
// viewportCenter - (focus - world).
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = c.ViewportW/2 - (c.X - wx)
	sy = c.ViewportH/2 - (c.Y - wy)
	return sx, sy
}

// IsVisible returns true if a w×h box with its top-left corner at world
// (wx, wy) intersects the viewport.
func (c *Camera) IsVisible(wx, wy, w, h float64) bool {
	sx, sy := c.WorldToScreen(wx, wy)
	return sx+w >= 0 && sx <= c.ViewportW &&
		sy+h >= 0 && sy <= c.ViewportH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

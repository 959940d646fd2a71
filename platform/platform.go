// Package platform defines the collaborators the game core calls into:
// the render surface, the input source, the frame clock and the image
// loader. The raylib implementations live in package renderer; this package
// also carries headless implementations used by -headless runs and tests.
package platform

import (
	"image/color"

	"github.com/pthm-cable/shooter/geom"
	"github.com/pthm-cable/shooter/input"
)

// Sprite is a drawable image with its intrinsic size.
// Handle 0 is a solid rectangle filled with Color.
type Sprite struct {
	Handle int
	W, H   float64
	Color  color.RGBA
	Path   string
}

// Solid returns a solid-color rectangle sprite.
func Solid(w, h float64, c color.RGBA) Sprite {
	return Sprite{W: w, H: h, Color: c}
}

// IsSolid reports whether the sprite has no backing texture.
func (s Sprite) IsSolid() bool {
	return s.Handle == 0
}

// Surface is the render target.
type Surface interface {
	// Clear fills the frame buffer.
	Clear(c color.RGBA)
	// DrawSprite draws s rotated by angle degrees (counter-clockwise) so
	// that its rotated bounding box has its top-left corner at topLeft.
	DrawSprite(s Sprite, topLeft geom.Vec, angle float64)
	// DrawText draws one line of text with its top-left corner at pos.
	DrawText(text string, pos geom.Vec, c color.RGBA)
	// Present shows the finished frame.
	Present()
	// Size returns the viewport size in pixels.
	Size() (w, h float64)
	// Close releases the surface.
	Close()
}

// Input is the keyboard and window event source.
type Input interface {
	// Snapshot returns the pressed state of every logical key.
	Snapshot() input.Snapshot
	// Events drains the pending discrete events.
	Events() []input.Event
}

// Clock paces frames.
type Clock interface {
	// Tick blocks until the frame budget for targetFPS has elapsed and
	// returns the milliseconds since the previous call.
	Tick(targetFPS int) float64
}

// Loader loads sprite images.
type Loader interface {
	LoadImage(path string) (Sprite, error)
}

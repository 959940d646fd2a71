// Package renderer implements the platform collaborators on raylib: the
// window surface, keyboard input, frame clock and texture loader.
// Every function must be called from the thread that opened the window.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shooter/geom"
	"github.com/pthm-cable/shooter/platform"
)

// Window is a raylib window used as the render surface.
type Window struct {
	fontSize int32
	textures map[int]rl.Texture2D
	drawing  bool
	closed   bool
}

// Open creates the window. The frame rate is capped at targetFPS and
// EndDrawing blocks until the frame budget has elapsed.
func Open(width, height, targetFPS int, title string, fontSize int) *Window {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetTargetFPS(int32(targetFPS))

	return &Window{
		fontSize: int32(fontSize),
		textures: make(map[int]rl.Texture2D),
	}
}

// Clear begins a frame and fills it with c.
func (w *Window) Clear(c color.RGBA) {
	if !w.drawing {
		rl.BeginDrawing()
		w.drawing = true
	}
	rl.ClearBackground(c)
}

// DrawSprite draws s rotated counter-clockwise by angle degrees about its
// center, placed so its rotated bounding box starts at topLeft.
func (w *Window) DrawSprite(s platform.Sprite, topLeft geom.Vec, angle float64) {
	size := geom.RotatedSize(s.W, s.H, angle)
	dst := rl.Rectangle{
		X:      float32(topLeft.X + size.X/2),
		Y:      float32(topLeft.Y + size.Y/2),
		Width:  float32(s.W),
		Height: float32(s.H),
	}
	origin := rl.Vector2{X: float32(s.W / 2), Y: float32(s.H / 2)}
	rotation := float32(-angle)

	tex, ok := w.textures[s.Handle]
	if s.IsSolid() || !ok {
		rl.DrawRectanglePro(dst, origin, rotation, s.Color)
		return
	}
	src := rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)}
	rl.DrawTexturePro(tex, src, dst, origin, rotation, rl.White)
}

// DrawText draws one line of text.
func (w *Window) DrawText(text string, pos geom.Vec, c color.RGBA) {
	rl.DrawText(text, int32(pos.X), int32(pos.Y), w.fontSize, c)
}

// Present ends the frame and swaps buffers.
func (w *Window) Present() {
	if !w.drawing {
		return
	}
	rl.EndDrawing()
	w.drawing = false
}

// Size returns the current window size.
func (w *Window) Size() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

// Close unloads every texture and closes the window.
func (w *Window) Close() {
	if w.closed {
		return
	}
	if w.drawing {
		rl.EndDrawing()
		w.drawing = false
	}
	for handle, tex := range w.textures {
		rl.UnloadTexture(tex)
		delete(w.textures, handle)
	}
	rl.CloseWindow()
	w.closed = true
}

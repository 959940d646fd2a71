package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shooter/input"
)

// Bindings maps each logical key to a raylib key code.
var Bindings = [input.KeyCount]int32{
	input.KeyUp:          rl.KeyUp,
	input.KeyDown:        rl.KeyDown,
	input.KeyLeft:        rl.KeyLeft,
	input.KeyRight:       rl.KeyRight,
	input.KeyStrafeLeft:  rl.KeyQ,
	input.KeyStrafeRight: rl.KeyE,
	input.KeyBrake:       rl.KeyW,
	input.KeyFire:        rl.KeySpace,
}

// Keyboard reads the raylib keyboard and window events.
type Keyboard struct {
	events []input.Event
}

// Snapshot returns the held state of every bound key.
func (k *Keyboard) Snapshot() input.Snapshot {
	var s input.Snapshot
	for key, code := range Bindings {
		s[key] = rl.IsKeyDown(code)
	}
	return s
}

// Events reports window close and resize since the last frame.
func (k *Keyboard) Events() []input.Event {
	k.events = k.events[:0]
	if rl.WindowShouldClose() {
		k.events = append(k.events, input.Event{Type: input.EventQuit})
	}
	if rl.IsWindowResized() {
		k.events = append(k.events, input.Event{
			Type:   input.EventResize,
			Width:  rl.GetScreenWidth(),
			Height: rl.GetScreenHeight(),
		})
	}
	return k.events
}

// Clock reports raylib frame times. raylib paces frames inside EndDrawing,
// so Tick only reads the duration of the frame that just ended.
type Clock struct {
	fps int
}

// Tick returns the last frame duration in milliseconds.
func (c *Clock) Tick(targetFPS int) float64 {
	if targetFPS != c.fps {
		rl.SetTargetFPS(int32(targetFPS))
		c.fps = targetFPS
	}
	return float64(rl.GetFrameTime()) * 1000
}

// Package systems contains the per-frame ECS systems of the game.
package systems

import (
	"image/color"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shooter/camera"
	"github.com/pthm-cable/shooter/components"
	"github.com/pthm-cable/shooter/geom"
	"github.com/pthm-cable/shooter/platform"
)

// Frame carries the values every system needs for one frame.
type Frame struct {
	DT      float64 // normalization / elapsed milliseconds
	Camera  *camera.Camera
	Surface platform.Surface
	Debug   DebugStyle
}

// DebugStyle controls the per-entity state dump.
type DebugStyle struct {
	Enabled    bool
	LineHeight float64
	Color      color.RGBA
}

// Body bundles the components every drawable entity carries.
type Body struct {
	Pos    *components.Position
	Vel    *components.Velocity
	Rot    *components.Rotation
	Rect   *components.Rect
	Cam    *components.Camera
	App    *components.Appearance
	Render *components.Render
}

// bodyFilter matches drawable entities.
type bodyFilter = ecs.Filter7[
	components.Position,
	components.Velocity,
	components.Rotation,
	components.Rect,
	components.Camera,
	components.Appearance,
	components.Render,
]

// newBodyFilter returns a filter over live drawable entities carrying tag.
func newBodyFilter(w *ecs.World, tag ecs.Comp) *bodyFilter {
	return ecs.NewFilter7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Rect,
		components.Camera,
		components.Appearance,
		components.Render,
	](w).With(tag).Without(ecs.C[components.Dead]())
}

// bodyOf assembles a Body from the current row of a body query.
func bodyOf(q *ecs.Query7[
	components.Position,
	components.Velocity,
	components.Rotation,
	components.Rect,
	components.Camera,
	components.Appearance,
	components.Render,
]) Body {
	pos, vel, rot, rect, cam, app, render := q.Get()
	return Body{Pos: pos, Vel: vel, Rot: rot, Rect: rect, Cam: cam, App: app, Render: render}
}

// Integrate advances a body by one frame: position += velocity / dt, the
// integer rect is truncated from the position and the rotated origin is
// recomputed. Edge walls keep their raw rect position as origin.
func Integrate(b Body, dt float64, edge bool) {
	b.Pos.X += b.Vel.X / dt
	b.Pos.Y += b.Vel.Y / dt
	b.Rect.X, b.Rect.Y = geom.Truncate(geom.Vec{X: b.Pos.X, Y: b.Pos.Y})

	if edge {
		b.Render.Origin = geom.Vec{X: float64(b.Rect.X), Y: float64(b.Rect.Y)}
		return
	}
	b.Render.Origin = geom.RotatedOrigin(
		float64(b.Rect.X), float64(b.Rect.Y),
		float64(b.Rect.W), float64(b.Rect.H),
		b.Rot.Angle,
	)
}

// Present draws a body and updates its label anchor. A scrolling body moves
// the camera focus to its rect and is drawn centered in the viewport; normal
// bodies are drawn relative to the current focus and skipped when their
// rotated box lies outside the viewport.
func Present(b Body, f *Frame) {
	size := geom.RotatedSize(b.App.Sprite.W, b.App.Sprite.H, b.Rot.Angle)

	if b.Cam.Mode == components.CameraScrolling {
		f.Camera.Focus(float64(b.Rect.X), float64(b.Rect.Y))

		cx, cy := f.Camera.Center()
		left := cx - size.X/2
		top := cy - size.Y/2
		b.Render.Label = geom.Vec{X: left + 45, Y: 10 + top}
		f.Surface.DrawSprite(b.App.Sprite, geom.Vec{X: left, Y: top}, b.Rot.Angle)
		return
	}

	sx, sy := f.Camera.WorldToScreen(b.Render.Origin.X, b.Render.Origin.Y)
	b.Render.Label = geom.Vec{X: sx, Y: sy - 30}
	if f.Camera.IsVisible(b.Render.Origin.X, b.Render.Origin.Y, size.X, size.Y) {
		f.Surface.DrawSprite(b.App.Sprite, geom.Vec{X: sx, Y: sy}, b.Rot.Angle)
	}
}

// DrawDump draws one line of text per entry, starting at anchor.
func DrawDump(f *Frame, anchor geom.Vec, lines []string) {
	for i, line := range lines {
		pos := geom.Vec{X: anchor.X, Y: anchor.Y + float64(i)*f.Debug.LineHeight}
		f.Surface.DrawText(line, pos, f.Debug.Color)
	}
}

// healthOf returns the entity's health, or nil when it has none.
func healthOf(m *ecs.Map[components.Health], e ecs.Entity) *components.Health {
	if !m.Has(e) {
		return nil
	}
	return m.Get(e)
}

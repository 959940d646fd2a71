// Package components defines ECS components for the game.
package components

import (
	"strconv"

	"github.com/pthm-cable/shooter/geom"
	"github.com/pthm-cable/shooter/platform"
)

// CameraMode determines how an entity relates to the camera.
type CameraMode uint8

const (
	CameraNormal    CameraMode = iota // Drawn relative to the camera focus
	CameraScrolling                   // Becomes the camera focus each frame
)

func (m CameraMode) String() string {
	if m == CameraScrolling {
		return "scrolling"
	}
	return "normal"
}

// Position is the authoritative sub-pixel world position.
type Position struct {
	X, Y float64 `inspect:"label,fmt:%.2f"`
}

// Velocity is applied as velocity / deltaTime each frame.
type Velocity struct {
	X, Y float64 `inspect:"label,fmt:%.3f"`
}

// Rotation holds the facing angle and constant spin, both in degrees.
type Rotation struct {
	Angle float64 `inspect:"angle"`
	Spin  float64
}

// Rect is the integer pixel rect truncated from Position each frame.
// W and H come from the sprite and never change.
type Rect struct {
	X, Y int
	W, H int `inspect:"skip"`
}

// Geom returns the rect as a geom.Rect.
func (r Rect) Geom() geom.Rect {
	return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// Health tracks remaining life. Immortal entities ignore damage.
type Health struct {
	Value    float64
	Immortal bool
}

// Hit applies damage and reports whether the entity is destroyed.
func (h *Health) Hit(damage float64) bool {
	if h.Immortal {
		return false
	}
	h.Value -= damage
	return h.Value <= 0
}

func (h Health) String() string {
	if h.Immortal {
		return "immortal"
	}
	return strconv.FormatFloat(h.Value, 'f', 1, 64)
}

// Immortal returns an indestructible health value.
func Immortal() Health {
	return Health{Immortal: true}
}

// Mortal returns a finite health value.
func Mortal(value float64) Health {
	return Health{Value: value}
}

// Camera holds the entity's camera mode.
type Camera struct {
	Mode CameraMode
}

// Appearance holds the entity's sprite. Immutable after construction.
type Appearance struct {
	Sprite platform.Sprite `inspect:"skip"`
}

// Render holds values derived each frame for drawing.
type Render struct {
	Origin geom.Vec `inspect:"skip"` // top-left of the rotated sprite in world space
	Label  geom.Vec `inspect:"skip"` // screen anchor of the debug dump
}

// Ship holds ship-specific handling and weapon state.
type Ship struct {
	Acceleration       float64
	StrafeAcceleration float64
	MaxSpeed           float64
	BulletSpeed        float64
	FireRate           float64 // cooldown in nominal ticks
	Cooldown           float64 `inspect:"label,fmt:%.2f"`
	Controlled         bool
}

// Bullet holds projectile data.
type Bullet struct {
	Damage float64
}

// Surface marks plain rectangular obstacles.
type Surface struct{}

// Edge tags the map boundary walls.
type Edge struct{}

// Obstacle tags the generic randomly placed obstacles.
type Obstacle struct{}

// Environment tags everything bullets collide with (edges and obstacles).
type Environment struct{}

// Dead tags entities scheduled for removal at the end of the phase.
type Dead struct{}

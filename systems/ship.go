package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shooter/components"
	"github.com/pthm-cable/shooter/geom"
	"github.com/pthm-cable/shooter/input"
	"github.com/pthm-cable/shooter/inspector"
)

// BulletSpawner creates the bullets fired by ships.
type BulletSpawner interface {
	SpawnBullet(x, y int, angle, speed float64) ecs.Entity
}

// shot is a bullet requested during the ship query. Spawning is structural,
// so it waits until the query has finished.
type shot struct {
	x, y         int
	angle, speed float64
}

// ShipSystem handles ship input, cooldowns and movement.
type ShipSystem struct {
	filter    *bodyFilter
	shipMap   *ecs.Map[components.Ship]
	healthMap *ecs.Map[components.Health]
	spawner   BulletSpawner

	shots []shot
}

// NewShipSystem creates a ship system that fires through spawner.
func NewShipSystem(w *ecs.World, spawner BulletSpawner) *ShipSystem {
	return &ShipSystem{
		filter:    newBodyFilter(w, ecs.C[components.Ship]()),
		shipMap:   ecs.NewMap[components.Ship](w),
		healthMap: ecs.NewMap[components.Health](w),
		spawner:   spawner,
	}
}

// Update ticks cooldowns, applies keys to controlled ships, integrates and
// draws every ship, then spawns the bullets fired this frame. It returns the
// number of bullets fired.
func (s *ShipSystem) Update(f *Frame, keys input.Snapshot) int {
	s.shots = s.shots[:0]

	query := s.filter.Query()
	for query.Next() {
		e := query.Entity()
		b := bodyOf(&query)
		ship := s.shipMap.Get(e)

		if ship.Cooldown > 0 {
			ship.Cooldown -= 1 / f.DT
		}

		if ship.Controlled && Steer(ship, b.Vel, b.Rot, keys, f.DT) {
			s.shots = append(s.shots, shot{x: b.Rect.X, y: b.Rect.Y, angle: b.Rot.Angle, speed: ship.BulletSpeed})
		}

		Integrate(b, f.DT, false)
		Present(b, f)

		if f.Debug.Enabled {
			DrawDump(f, b.Render.Label, inspector.Dump("Ship",
				b.Pos, b.Vel, b.Rot, healthOf(s.healthMap, e), ship, b.Cam))
		}
	}

	for _, sh := range s.shots {
		s.spawner.SpawnBullet(sh.x, sh.y, sh.angle, sh.speed)
	}
	return len(s.shots)
}

// Steer applies one frame of keys to a ship and reports whether it fired.
//
// Forward and reverse thrust accumulate toward the maximum velocity resolved
// along the facing angle; strafing does the same along angle+90 with the
// strafe acceleration. Neither exceeds that ceiling.
func Steer(ship *components.Ship, vel *components.Velocity, rot *components.Rotation, keys input.Snapshot, dt float64) bool {
	a := geom.Radians(rot.Angle)
	cos, sin := math.Cos(a), math.Sin(a)
	a90 := geom.Radians(rot.Angle + 90)
	cos90, sin90 := math.Cos(a90), math.Sin(a90)

	relX, relY := ship.MaxSpeed*cos, ship.MaxSpeed*-sin
	strafeX, strafeY := ship.MaxSpeed*cos90, ship.MaxSpeed*-sin90

	incX, incY := ship.Acceleration*cos/dt, ship.Acceleration*-sin/dt
	if keys.Pressed(input.KeyUp) {
		vel.X = approach(vel.X, relX, incX)
		vel.Y = approach(vel.Y, relY, incY)
	} else if keys.Pressed(input.KeyDown) {
		vel.X = approach(vel.X, -relX, -incX)
		vel.Y = approach(vel.Y, -relY, -incY)
	}

	sIncX, sIncY := ship.StrafeAcceleration*cos90/dt, ship.StrafeAcceleration*-sin90/dt
	if keys.Pressed(input.KeyStrafeLeft) {
		vel.X = approach(vel.X, strafeX, sIncX)
		vel.Y = approach(vel.Y, strafeY, sIncY)
	} else if keys.Pressed(input.KeyStrafeRight) {
		vel.X = approach(vel.X, -strafeX, -sIncX)
		vel.Y = approach(vel.Y, -strafeY, -sIncY)
	}

	if keys.Pressed(input.KeyLeft) {
		rot.Angle += rot.Spin / dt
	}
	if keys.Pressed(input.KeyRight) {
		rot.Angle -= rot.Spin / dt
	}

	if keys.Pressed(input.KeyBrake) {
		vel.X, vel.Y = 0, 0
	}

	if keys.Pressed(input.KeyFire) && ship.Cooldown <= 0 {
		ship.Cooldown = ship.FireRate
		return true
	}
	return false
}

// approach adds delta to v while v has not passed ceiling. The comparison
// direction follows the sign of ceiling, and the result is capped at it.
func approach(v, ceiling, delta float64) float64 {
	if ceiling > 0 {
		if v <= ceiling {
			return math.Min(v+delta, ceiling)
		}
		return v
	}
	if v >= ceiling {
		return math.Max(v+delta, ceiling)
	}
	return v
}

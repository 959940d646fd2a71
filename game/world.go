package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shooter/components"
	"github.com/pthm-cable/shooter/geom"
	"github.com/pthm-cable/shooter/inspector"
	"github.com/pthm-cable/shooter/platform"
	"github.com/pthm-cable/shooter/telemetry"
)

// ErrInvalidSize is returned when an entity is built from a sprite smaller
// than one pixel or of non-finite size in either dimension.
var ErrInvalidSize = errors.New("invalid sprite size")

// EntityDef describes a new entity.
type EntityDef struct {
	X, Y     float64
	Sprite   platform.Sprite
	Camera   components.CameraMode
	Velocity components.Velocity
	Angle    float64
	Spin     float64
	Health   components.Health
}

// World is the single authoritative entity store. Groups (ships, bullets,
// edge, obstacles, environment) are tag components on its entities, so
// removing an entity removes it from every group.
type World struct {
	world *ecs.World

	bodyMapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Rect,
		components.Camera,
		components.Appearance,
		components.Render,
	]
	healthMap   *ecs.Map[components.Health]
	shipMap     *ecs.Map[components.Ship]
	bulletMap   *ecs.Map[components.Bullet]
	surfaceMap  *ecs.Map[components.Surface]
	edgeMap     *ecs.Map[components.Edge]
	obstacleMap *ecs.Map[components.Obstacle]
	envMap      *ecs.Map[components.Environment]

	deadFilter *ecs.Filter1[components.Dead]

	bulletSprite platform.Sprite
	bulletDamage float64

	doomed []ecs.Entity
}

// NewWorld creates an empty world. Bullets fired by ships use bulletSprite
// and deal bulletDamage.
func NewWorld(bulletSprite platform.Sprite, bulletDamage float64) (*World, error) {
	if err := checkSize(bulletSprite); err != nil {
		return nil, fmt.Errorf("bullet sprite: %w", err)
	}

	w := ecs.NewWorld()
	return &World{
		world: w,
		bodyMapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Rect,
			components.Camera,
			components.Appearance,
			components.Render,
		](w),
		healthMap:    ecs.NewMap[components.Health](w),
		shipMap:      ecs.NewMap[components.Ship](w),
		bulletMap:    ecs.NewMap[components.Bullet](w),
		surfaceMap:   ecs.NewMap[components.Surface](w),
		edgeMap:      ecs.NewMap[components.Edge](w),
		obstacleMap:  ecs.NewMap[components.Obstacle](w),
		envMap:       ecs.NewMap[components.Environment](w),
		deadFilter:   ecs.NewFilter1[components.Dead](w),
		bulletSprite: bulletSprite,
		bulletDamage: bulletDamage,
	}, nil
}

// ECS returns the underlying ark world.
func (w *World) ECS() *ecs.World {
	return w.world
}

func checkSize(s platform.Sprite) error {
	// Rects truncate to whole pixels, so anything below 1 would collapse to 0.
	if !(s.W >= 1) || !(s.H >= 1) || math.IsInf(s.W, 0) || math.IsInf(s.H, 0) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, s.W, s.H)
	}
	return nil
}

// newEntity creates the components every entity carries.
func (w *World) newEntity(def EntityDef) (ecs.Entity, error) {
	if err := checkSize(def.Sprite); err != nil {
		return ecs.Entity{}, err
	}

	pos := components.Position{X: def.X, Y: def.Y}
	vel := def.Velocity
	rot := components.Rotation{Angle: def.Angle, Spin: def.Spin}
	rect := components.Rect{
		X: int(def.X),
		Y: int(def.Y),
		W: int(def.Sprite.W),
		H: int(def.Sprite.H),
	}
	cam := components.Camera{Mode: def.Camera}
	app := components.Appearance{Sprite: def.Sprite}
	render := components.Render{}

	e := w.bodyMapper.NewEntity(&pos, &vel, &rot, &rect, &cam, &app, &render)
	health := def.Health
	w.healthMap.Add(e, &health)
	return e, nil
}

// NewShip creates a ship.
func (w *World) NewShip(def EntityDef, ship components.Ship) (ecs.Entity, error) {
	e, err := w.newEntity(def)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("ship: %w", err)
	}
	w.shipMap.Add(e, &ship)
	return e, nil
}

// NewBullet creates a bullet at (x, y) travelling along angle at speed.
func (w *World) NewBullet(x, y, angle, speed float64) (ecs.Entity, error) {
	a := geom.Radians(angle)
	e, err := w.newEntity(EntityDef{
		X:        x,
		Y:        y,
		Sprite:   w.bulletSprite,
		Velocity: components.Velocity{X: speed * math.Cos(a), Y: speed * -math.Sin(a)},
		Angle:    angle,
		Health:   components.Immortal(),
	})
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("bullet: %w", err)
	}
	w.bulletMap.Add(e, &components.Bullet{Damage: w.bulletDamage})
	return e, nil
}

// SpawnBullet creates a bullet fired from a ship rect. The bullet sprite was
// validated by NewWorld, so spawning cannot fail.
func (w *World) SpawnBullet(x, y int, angle, speed float64) ecs.Entity {
	e, _ := w.NewBullet(float64(x), float64(y), angle, speed)
	return e
}

// NewSurface creates an environment surface. Edge surfaces form the map
// boundary and keep their raw rect position as draw origin; the rest are
// generic obstacles.
func (w *World) NewSurface(def EntityDef, edge bool) (ecs.Entity, error) {
	e, err := w.newEntity(def)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("surface: %w", err)
	}
	w.surfaceMap.Add(e, &components.Surface{})
	w.envMap.Add(e, &components.Environment{})
	if edge {
		w.edgeMap.Add(e, &components.Edge{})
	} else {
		w.obstacleMap.Add(e, &components.Obstacle{})
	}
	return e, nil
}

// Reap removes every entity tagged Dead and returns how many were removed.
func (w *World) Reap() int {
	w.doomed = w.doomed[:0]
	query := w.deadFilter.Query()
	for query.Next() {
		w.doomed = append(w.doomed, query.Entity())
	}
	for _, e := range w.doomed {
		w.world.RemoveEntity(e)
	}
	return len(w.doomed)
}

// Alive reports whether e still exists.
func (w *World) Alive(e ecs.Entity) bool {
	return w.world.Alive(e)
}

// Counts returns the number of live entities in each group.
func (w *World) Counts() telemetry.Counts {
	return telemetry.Counts{
		Ships:     countOf[components.Ship](w.world),
		Bullets:   countOf[components.Bullet](w.world),
		Edges:     countOf[components.Edge](w.world),
		Obstacles: countOf[components.Obstacle](w.world),
	}
}

// EnvironmentCount returns the number of live environment entities.
func (w *World) EnvironmentCount() int {
	return countOf[components.Environment](w.world)
}

func countOf[T any](w *ecs.World) int {
	n := 0
	query := ecs.NewFilter1[T](w).Without(ecs.C[components.Dead]()).Query()
	for query.Next() {
		n++
	}
	return n
}

// Describe returns the state dump of a ship, or nil if e is not a live ship.
func (w *World) Describe(e ecs.Entity) []string {
	if !w.world.Alive(e) || !w.shipMap.Has(e) {
		return nil
	}
	pos, vel, rot, _, cam, _, _ := w.bodyMapper.Get(e)
	health := w.healthMap.Get(e)
	return inspector.Dump("Ship", pos, vel, rot, health, w.shipMap.Get(e), cam)
}

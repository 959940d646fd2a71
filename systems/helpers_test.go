package systems

import (
	"image/color"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shooter/camera"
	"github.com/pthm-cable/shooter/components"
	"github.com/pthm-cable/shooter/input"
	"github.com/pthm-cable/shooter/platform"
)

// testWorld builds entities directly on an ark world.
type testWorld struct {
	w      *ecs.World
	bodies *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Rect,
		components.Camera,
		components.Appearance,
		components.Render,
	]
	health *ecs.Map[components.Health]
	ship   *ecs.Map[components.Ship]
	bullet *ecs.Map[components.Bullet]
	env    *ecs.Map[components.Environment]
	edge   *ecs.Map[components.Edge]
	dead   *ecs.Map[components.Dead]
}

func newTestWorld() *testWorld {
	w := ecs.NewWorld()
	return &testWorld{
		w: w,
		bodies: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Rect,
			components.Camera,
			components.Appearance,
			components.Render,
		](w),
		health: ecs.NewMap[components.Health](w),
		ship:   ecs.NewMap[components.Ship](w),
		bullet: ecs.NewMap[components.Bullet](w),
		env:    ecs.NewMap[components.Environment](w),
		edge:   ecs.NewMap[components.Edge](w),
		dead:   ecs.NewMap[components.Dead](w),
	}
}

func (tw *testWorld) body(x, y, w, h float64, mode components.CameraMode) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	rot := components.Rotation{}
	rect := components.Rect{X: int(x), Y: int(y), W: int(w), H: int(h)}
	cam := components.Camera{Mode: mode}
	app := components.Appearance{Sprite: platform.Solid(w, h, color.RGBA{A: 255})}
	render := components.Render{}
	return tw.bodies.NewEntity(&pos, &vel, &rot, &rect, &cam, &app, &render)
}

func (tw *testWorld) obstacle(x, y, size float64, health components.Health) ecs.Entity {
	e := tw.body(x, y, size, size, components.CameraNormal)
	tw.health.Add(e, &health)
	tw.env.Add(e, &components.Environment{})
	return e
}

func (tw *testWorld) bulletAt(x, y float64, damage float64) ecs.Entity {
	e := tw.body(x, y, 10, 4, components.CameraNormal)
	tw.bullet.Add(e, &components.Bullet{Damage: damage})
	return e
}

// reap removes every Dead entity.
func (tw *testWorld) reap() {
	var doomed []ecs.Entity
	q := ecs.NewFilter1[components.Dead](tw.w).Query()
	for q.Next() {
		doomed = append(doomed, q.Entity())
	}
	for _, e := range doomed {
		tw.w.RemoveEntity(e)
	}
}

// count returns the number of live entities carrying T.
func count[T any](w *ecs.World) int {
	n := 0
	q := ecs.NewFilter1[T](w).Without(ecs.C[components.Dead]()).Query()
	for q.Next() {
		n++
	}
	return n
}

func newFrame(dt float64) (*Frame, *platform.Recorder) {
	rec := platform.NewRecorder(1300, 800)
	return &Frame{
		DT:      dt,
		Camera:  camera.New(1300, 800, 3000, 3000, 100, 200),
		Surface: rec,
		Debug: DebugStyle{
			LineHeight: 15,
			Color:      color.RGBA{R: 255, G: 255, A: 255},
		},
	}, rec
}

// spawnRecorder counts spawned bullets.
type spawnRecorder struct {
	tw     *testWorld
	angles []float64
	pos    [][2]int
}

func (s *spawnRecorder) SpawnBullet(x, y int, angle, speed float64) ecs.Entity {
	s.angles = append(s.angles, angle)
	s.pos = append(s.pos, [2]int{x, y})
	return s.tw.bulletAt(float64(x), float64(y), 1)
}

func keys(k ...input.Key) input.Snapshot {
	return input.Snapshot{}.With(k...)
}

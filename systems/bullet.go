package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shooter/components"
	"github.com/pthm-cable/shooter/inspector"
)

// Hit is one environment entity struck during the collision pass.
type Hit struct {
	Target    ecs.Entity
	Damage    float64
	Destroyed bool
}

// BulletSystem resolves bullet collisions and moves the survivors.
type BulletSystem struct {
	filter    *bodyFilter
	bullets   *ecs.Filter2[components.Rect, components.Bullet]
	targets   *ecs.Filter2[components.Rect, components.Health]
	healthMap *ecs.Map[components.Health]
	deadMap   *ecs.Map[components.Dead]
	grid      *SpatialGrid

	// Scratch buffers reused across frames
	hits      []Hit
	hitIndex  map[ecs.Entity]int
	spent     []ecs.Entity
	neighbors []ecs.Entity
}

// NewBulletSystem creates a bullet system over a world of the given size.
func NewBulletSystem(w *ecs.World, worldW, worldH, cellSize int) *BulletSystem {
	return &BulletSystem{
		filter: newBodyFilter(w, ecs.C[components.Bullet]()),
		bullets: ecs.NewFilter2[components.Rect, components.Bullet](w).
			Without(ecs.C[components.Dead]()),
		targets: ecs.NewFilter2[components.Rect, components.Health](w).
			With(ecs.C[components.Environment]()).
			Without(ecs.C[components.Dead]()),
		healthMap: ecs.NewMap[components.Health](w),
		deadMap:   ecs.NewMap[components.Dead](w),
		grid:      NewSpatialGrid(worldW, worldH, cellSize),
		hitIndex:  make(map[ecs.Entity]int),
	}
}

// Update runs the collision pass, then integrates and draws the surviving
// bullets. It returns the hits applied this frame.
func (s *BulletSystem) Update(f *Frame) []Hit {
	hits := s.Collide()

	query := s.filter.Query()
	for query.Next() {
		b := bodyOf(&query)
		Integrate(b, f.DT, false)
		Present(b, f)

		if f.Debug.Enabled {
			DrawDump(f, b.Render.Label, inspector.Dump("Bullet", b.Pos, b.Vel, b.Rot, b.Cam))
		}
	}

	return hits
}

// Collide tests every bullet against the environment. Each environment
// entity overlapping at least one bullet takes a single hit per frame with
// the largest damage among those bullets; every overlapping bullet is spent.
// Spent bullets and destroyed targets are tagged Dead.
func (s *BulletSystem) Collide() []Hit {
	s.hits = s.hits[:0]
	s.spent = s.spent[:0]
	clear(s.hitIndex)

	s.grid.Clear()
	tq := s.targets.Query()
	for tq.Next() {
		rect, _ := tq.Get()
		s.grid.Insert(tq.Entity(), rect.Geom())
	}

	bq := s.bullets.Query()
	for bq.Next() {
		rect, bullet := bq.Get()

		s.neighbors = s.grid.QueryInto(s.neighbors[:0], rect.Geom())
		if len(s.neighbors) == 0 {
			continue
		}
		s.spent = append(s.spent, bq.Entity())

		for _, target := range s.neighbors {
			if i, ok := s.hitIndex[target]; ok {
				if bullet.Damage > s.hits[i].Damage {
					s.hits[i].Damage = bullet.Damage
				}
				continue
			}
			s.hitIndex[target] = len(s.hits)
			s.hits = append(s.hits, Hit{Target: target, Damage: bullet.Damage})
		}
	}

	for i := range s.hits {
		h := &s.hits[i]
		if s.healthMap.Get(h.Target).Hit(h.Damage) {
			h.Destroyed = true
			s.deadMap.Add(h.Target, &components.Dead{})
			slog.Debug("obstacle destroyed", "entity", h.Target.ID())
		}
	}
	for _, e := range s.spent {
		s.deadMap.Add(e, &components.Dead{})
	}

	return s.hits
}

package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shooter/components"
	"github.com/pthm-cable/shooter/inspector"
)

// SurfaceSystem spins, integrates and draws the environment.
type SurfaceSystem struct {
	filter    *bodyFilter
	edgeMap   *ecs.Map[components.Edge]
	healthMap *ecs.Map[components.Health]
}

// NewSurfaceSystem creates a surface system over the environment group.
func NewSurfaceSystem(w *ecs.World) *SurfaceSystem {
	return &SurfaceSystem{
		filter:    newBodyFilter(w, ecs.C[components.Environment]()),
		edgeMap:   ecs.NewMap[components.Edge](w),
		healthMap: ecs.NewMap[components.Health](w),
	}
}

// Update advances every environment entity by one frame.
func (s *SurfaceSystem) Update(f *Frame) {
	query := s.filter.Query()
	for query.Next() {
		e := query.Entity()
		b := bodyOf(&query)

		b.Rot.Angle += b.Rot.Spin / f.DT
		Integrate(b, f.DT, s.edgeMap.Has(e))
		Present(b, f)

		if f.Debug.Enabled {
			DrawDump(f, b.Render.Label, inspector.Dump("Surface",
				b.Pos, b.Vel, b.Rot, healthOf(s.healthMap, e), b.Cam))
		}
	}
}

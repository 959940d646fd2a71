package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shooter/components"
	"github.com/pthm-cable/shooter/geom"
)

func TestSurfaceSpins(t *testing.T) {
	tw := newTestWorld()
	e := tw.obstacle(500, 500, 100, components.Mortal(5))
	rotMap := ecs.NewMap[components.Rotation](tw.w)
	rotMap.Get(e).Spin = 0.5

	sys := NewSurfaceSystem(tw.w)
	f, rec := newFrame(2)

	for i := 0; i < 4; i++ {
		sys.Update(f)
	}
	if got := rotMap.Get(e).Angle; math.Abs(got-1) > 1e-9 {
		t.Errorf("angle = %f, want 1 after four frames of 0.5/2", got)
	}
	if len(rec.Sprites) != 4 {
		t.Errorf("expected one draw per frame, got %d", len(rec.Sprites))
	}

	want := geom.RotatedOrigin(500, 500, 100, 100, 1)
	if got := ecs.NewMap[components.Render](tw.w).Get(e).Origin; got != want {
		t.Errorf("origin = %v, want %v", got, want)
	}
}

func TestSurfaceEdgeKeepsRawOrigin(t *testing.T) {
	tw := newTestWorld()
	e := tw.obstacle(0, 3000, 20, components.Immortal())
	tw.edge.Add(e, &components.Edge{})
	ecs.NewMap[components.Rotation](tw.w).Get(e).Spin = 3

	sys := NewSurfaceSystem(tw.w)
	f, _ := newFrame(1)
	sys.Update(f)

	if got := ecs.NewMap[components.Render](tw.w).Get(e).Origin; got != (geom.Vec{X: 0, Y: 3000}) {
		t.Errorf("edge origin = %v, want raw rect position", got)
	}
}

func TestSurfaceSkipsDead(t *testing.T) {
	tw := newTestWorld()
	e := tw.obstacle(500, 500, 100, components.Mortal(5))
	tw.dead.Add(e, &components.Dead{})

	sys := NewSurfaceSystem(tw.w)
	f, rec := newFrame(1)
	f.Debug.Enabled = true
	sys.Update(f)

	if len(rec.Sprites) != 0 || len(rec.Texts) != 0 {
		t.Error("dead entities must not be drawn")
	}
}

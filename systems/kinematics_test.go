package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/shooter/components"
	"github.com/pthm-cable/shooter/geom"
)

func newBody(x, y float64, w, h int) Body {
	return Body{
		Pos:    &components.Position{X: x, Y: y},
		Vel:    &components.Velocity{},
		Rot:    &components.Rotation{},
		Rect:   &components.Rect{X: int(x), Y: int(y), W: w, H: h},
		Cam:    &components.Camera{},
		App:    &components.Appearance{},
		Render: &components.Render{},
	}
}

func TestIntegrateDividesByDeltaTime(t *testing.T) {
	tests := []struct {
		name         string
		vx, vy, dt   float64
		wantX, wantY float64
		rectX, rectY int
	}{
		{"nominal", 10, -4, 2, 15, 8, 15, 8},
		{"fractional truncates", 1.8, 0.9, 1, 11.8, 10.9, 11, 10},
		{"negative truncates toward zero", -11.5, -12.5, 1, -1.5, -2.5, -1, -2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newBody(10, 10, 20, 20)
			b.Vel.X, b.Vel.Y = tc.vx, tc.vy

			Integrate(b, tc.dt, false)

			if math.Abs(b.Pos.X-tc.wantX) > 1e-9 || math.Abs(b.Pos.Y-tc.wantY) > 1e-9 {
				t.Errorf("position = (%f, %f), want (%f, %f)", b.Pos.X, b.Pos.Y, tc.wantX, tc.wantY)
			}
			if b.Rect.X != tc.rectX || b.Rect.Y != tc.rectY {
				t.Errorf("rect = (%d, %d), want (%d, %d)", b.Rect.X, b.Rect.Y, tc.rectX, tc.rectY)
			}
		})
	}
}

func TestIntegrateOrigin(t *testing.T) {
	b := newBody(100, 100, 40, 20)
	b.Rot.Angle = 30

	Integrate(b, 1, false)
	want := geom.RotatedOrigin(100, 100, 40, 20, 30)
	if b.Render.Origin != want {
		t.Errorf("origin = %v, want %v", b.Render.Origin, want)
	}

	Integrate(b, 1, true)
	if b.Render.Origin != (geom.Vec{X: 100, Y: 100}) {
		t.Errorf("edge origin = %v, want raw rect position", b.Render.Origin)
	}
}

func TestPresentScrolling(t *testing.T) {
	f, rec := newFrame(1)
	b := newBody(250, 300, 48, 32)
	b.App.Sprite.W, b.App.Sprite.H = 48, 32
	b.Cam.Mode = components.CameraScrolling

	Present(b, f)

	if f.Camera.X != 250 || f.Camera.Y != 300 {
		t.Errorf("camera focus = (%f, %f), want (250, 300)", f.Camera.X, f.Camera.Y)
	}
	if len(rec.Sprites) != 1 {
		t.Fatalf("expected one sprite, got %d", len(rec.Sprites))
	}
	if got := rec.Sprites[0].TopLeft; got != (geom.Vec{X: 626, Y: 384}) {
		t.Errorf("sprite drawn at %v, want viewport center minus half size", got)
	}
	if b.Render.Label != (geom.Vec{X: 671, Y: 394}) {
		t.Errorf("label anchor = %v, want (671, 394)", b.Render.Label)
	}
}

func TestPresentNormal(t *testing.T) {
	f, rec := newFrame(1)
	b := newBody(0, 0, 10, 10)
	b.Render.Origin = geom.Vec{X: 150, Y: 250}

	Present(b, f)

	// camera focus (100,200), viewport center (650,400)
	if got := rec.Sprites[0].TopLeft; got != (geom.Vec{X: 700, Y: 450}) {
		t.Errorf("sprite drawn at %v, want (700, 450)", got)
	}
	if b.Render.Label != (geom.Vec{X: 700, Y: 420}) {
		t.Errorf("label anchor = %v, want (700, 420)", b.Render.Label)
	}
	if f.Camera.X != 100 || f.Camera.Y != 200 {
		t.Error("normal body must not move the camera")
	}
}

func TestPresentSkipsOffscreen(t *testing.T) {
	tests := []struct {
		name   string
		origin geom.Vec
		drawn  bool
	}{
		{"inside", geom.Vec{X: 150, Y: 250}, true},
		{"overlapping left edge", geom.Vec{X: -590, Y: 200}, true},
		{"far right", geom.Vec{X: 2000, Y: 200}, false},
		{"above", geom.Vec{X: 100, Y: -400}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, rec := newFrame(1)
			b := newBody(0, 0, 100, 100)
			b.App.Sprite.W, b.App.Sprite.H = 100, 100
			b.Render.Origin = tc.origin

			Present(b, f)

			if drawn := len(rec.Sprites) == 1; drawn != tc.drawn {
				t.Errorf("drawn = %v, want %v", drawn, tc.drawn)
			}
			sx, sy := f.Camera.WorldToScreen(tc.origin.X, tc.origin.Y)
			if b.Render.Label != (geom.Vec{X: sx, Y: sy - 30}) {
				t.Errorf("label anchor = %v, want it updated even when culled", b.Render.Label)
			}
		})
	}
}

func TestDrawDump(t *testing.T) {
	f, rec := newFrame(1)
	DrawDump(f, geom.Vec{X: 10, Y: 20}, []string{"a", "b", "c"})

	if len(rec.Texts) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(rec.Texts))
	}
	for i, text := range rec.Texts {
		wantY := 20 + float64(i)*15
		if text.Pos.X != 10 || text.Pos.Y != wantY {
			t.Errorf("line %d at %v, want (10, %f)", i, text.Pos, wantY)
		}
		if text.Color != f.Debug.Color {
			t.Errorf("line %d color = %v", i, text.Color)
		}
	}
}

package camera

import "testing"

func TestNew(t *testing.T) {
	cam := New(1300, 800, 3000, 3000, 100, 200)

	if cam.X != 100 || cam.Y != 200 {
		t.Errorf("expected focus (100, 200), got (%f, %f)", cam.X, cam.Y)
	}
	cx, cy := cam.Center()
	if cx != 650 || cy != 400 {
		t.Errorf("expected center (650, 400), got (%f, %f)", cx, cy)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1300, 800, 3000, 3000, 100, 200)

	// Focus point maps to screen center
	sx, sy := cam.WorldToScreen(100, 200)
	if sx != 650 || sy != 400 {
		t.Errorf("expected screen center (650, 400), got (%f, %f)", sx, sy)
	}

	// Offsets are preserved 1:1
	sx, sy = cam.WorldToScreen(150, 150)
	if sx != 700 || sy != 350 {
		t.Errorf("expected (700, 350), got (%f, %f)", sx, sy)
	}
}

func TestFocusMovesView(t *testing.T) {
	cam := New(1300, 800, 3000, 3000, 0, 0)
	cam.Focus(500, 500)

	sx, sy := cam.WorldToScreen(500, 500)
	if sx != 650 || sy != 400 {
		t.Errorf("expected refocused point at center, got (%f, %f)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1300, 800, 3000, 3000, 1000, 1000)

	if !cam.IsVisible(1000, 1000, 10, 10) {
		t.Error("focus point should be visible")
	}
	if cam.IsVisible(2500, 2500, 10, 10) {
		t.Error("far point should not be visible")
	}
	// Left of the viewport but wide enough to reach into it
	if !cam.IsVisible(300, 1000, 100, 10) {
		t.Error("box overlapping the left edge should be visible")
	}
}

func TestResize(t *testing.T) {
	cam := New(1300, 800, 3000, 3000, 0, 0)
	cam.Resize(800, 600)

	cx, cy := cam.Center()
	if cx != 400 || cy != 300 {
		t.Errorf("expected center (400, 300) after resize, got (%f, %f)", cx, cy)
	}
}

package ui

import (
	"testing"

	"github.com/pthm-cable/shooter/game"
	"github.com/pthm-cable/shooter/telemetry"
)

func TestStatusLines(t *testing.T) {
	lines := StatusLines(game.Status{
		Frame:  42,
		FPS:    59.6,
		Counts: telemetry.Counts{Ships: 1, Bullets: 3, Edges: 4, Obstacles: 38},
	})

	want := []string{
		"Frame: 42  FPS: 60",
		"Ships: 1  Bullets: 3",
		"Obstacles: 38  Edges: 4",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

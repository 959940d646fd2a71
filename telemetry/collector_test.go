package telemetry

import "testing"

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(60)

	c.RecordShots(4)
	c.RecordHit(false)
	c.RecordHit(true)
	c.RecordCommand()

	if c.ShouldFlush(59) {
		t.Error("window should not flush early")
	}
	if !c.ShouldFlush(60) {
		t.Fatal("window should flush after 60 frames")
	}

	s := c.Flush(60, Counts{Ships: 1, Bullets: 2, Edges: 4, Obstacles: 38})
	if s.WindowStartFrame != 0 || s.WindowEndFrame != 60 {
		t.Errorf("unexpected window bounds %d-%d", s.WindowStartFrame, s.WindowEndFrame)
	}
	if s.Shots != 4 || s.Hits != 2 || s.Destroyed != 1 || s.Commands != 1 {
		t.Errorf("unexpected counters %+v", s)
	}
	if s.HitRate != 0.5 {
		t.Errorf("hit rate = %f, want 0.5", s.HitRate)
	}
	if s.Obstacles != 38 || s.Bullets != 2 {
		t.Errorf("unexpected counts %+v", s)
	}

	// Counters reset for the next window
	next := c.Flush(120, Counts{})
	if next.WindowStartFrame != 60 || next.Shots != 0 || next.Hits != 0 || next.HitRate != 0 {
		t.Errorf("expected reset window, got %+v", next)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0)
	if c.WindowFrames() != 1 {
		t.Errorf("expected window clamped to 1, got %d", c.WindowFrames())
	}
}

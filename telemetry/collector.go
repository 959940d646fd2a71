package telemetry

// Collector accumulates gameplay events within windows of frames and
// produces WindowStats.
type Collector struct {
	windowFrames     int
	windowStartFrame int

	// Event counters for current window
	shots     int
	hits      int
	destroyed int
	commands  int
}

// NewCollector creates a new stats collector flushing every windowFrames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: windowFrames}
}

// RecordShots records bullets fired.
func (c *Collector) RecordShots(n int) {
	c.shots += n
}

// RecordHit records one obstacle hit.
func (c *Collector) RecordHit(destroyed bool) {
	c.hits++
	if destroyed {
		c.destroyed++
	}
}

// RecordCommand records one console command.
func (c *Collector) RecordCommand() {
	c.commands++
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentFrame int) bool {
	return currentFrame-c.windowStartFrame >= c.windowFrames
}

// Counts holds the entity counts sampled at window end.
type Counts struct {
	Ships     int
	Bullets   int
	Edges     int
	Obstacles int
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentFrame int, counts Counts) WindowStats {
	var hitRate float64
	if c.shots > 0 {
		hitRate = float64(c.hits) / float64(c.shots)
	}

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		Ships:            counts.Ships,
		Bullets:          counts.Bullets,
		Obstacles:        counts.Obstacles,
		Shots:            c.shots,
		Hits:             c.hits,
		Destroyed:        c.destroyed,
		Commands:         c.commands,
		HitRate:          hitRate,
	}

	c.windowStartFrame = currentFrame
	c.shots = 0
	c.hits = 0
	c.destroyed = 0
	c.commands = 0

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int {
	return c.windowFrames
}

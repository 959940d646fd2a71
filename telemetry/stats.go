package telemetry

import "log/slog"

// WindowStats holds aggregated gameplay statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame int `csv:"-"`
	WindowEndFrame   int `csv:"window_end"`

	// Entity counts at window end
	Ships     int `csv:"ships"`
	Bullets   int `csv:"bullets"`
	Obstacles int `csv:"obstacles"`

	// Events during window
	Shots     int     `csv:"shots"`
	Hits      int     `csv:"hits"`
	Destroyed int     `csv:"destroyed"`
	Commands  int     `csv:"commands"`
	HitRate   float64 `csv:"hit_rate"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartFrame),
		slog.Int("window_end", s.WindowEndFrame),
		slog.Int("ships", s.Ships),
		slog.Int("bullets", s.Bullets),
		slog.Int("obstacles", s.Obstacles),
		slog.Int("shots", s.Shots),
		slog.Int("hits", s.Hits),
		slog.Int("destroyed", s.Destroyed),
		slog.Int("commands", s.Commands),
		slog.Float64("hit_rate", s.HitRate),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"ships", s.Ships,
		"bullets", s.Bullets,
		"obstacles", s.Obstacles,
		"shots", s.Shots,
		"hits", s.Hits,
		"destroyed", s.Destroyed,
	)
}

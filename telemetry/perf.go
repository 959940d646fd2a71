package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame of the game loop.
const (
	PhaseConsole     = "console"
	PhaseInput       = "input"
	PhaseBullets     = "bullets"
	PhaseShips       = "ships"
	PhaseEnvironment = "environment"
	PhaseCleanup     = "cleanup"
	PhasePresent     = "present"
)

// phaseOrder is the order phases are logged in.
var phaseOrder = []string{
	PhaseConsole, PhaseInput, PhaseBullets, PhaseShips,
	PhaseEnvironment, PhaseCleanup, PhasePresent,
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
	FrameMillis  float64 // elapsed milliseconds reported by the clock
	DeltaTime    float64
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	frameMillis float64
	deltaTime   float64
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to aggregate over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
	p.frameMillis = 0
	p.deltaTime = 0
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// RecordFrame records the clock's elapsed milliseconds and the derived
// deltaTime for the current frame.
func (p *PerfCollector) RecordFrame(elapsedMillis, deltaTime float64) {
	p.frameMillis = elapsedMillis
	p.deltaTime = deltaTime
}

// EndTick finishes timing the current frame and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
		FrameMillis:  p.frameMillis,
		DeltaTime:    p.deltaTime,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Work time per frame, excluding the clock wait
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	StdTickDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame work
	PhasePct map[string]float64

	// Clock timing
	FrameMillisMean float64
	FrameMillisStd  float64
	FrameMillisP90  float64
	DeltaTimeMean   float64
	FPS             float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	ticks := make([]float64, p.sampleCount)
	frames := make([]float64, p.sampleCount)
	deltas := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		ticks[i] = float64(s.TickDuration)
		frames[i] = s.FrameMillis
		deltas[i] = s.DeltaTime

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	tickMean, tickStd := stat.MeanStdDev(ticks, nil)
	if p.sampleCount < 2 {
		tickStd = 0
	}
	sort.Float64s(ticks)

	frameMean, frameStd := stat.MeanStdDev(frames, nil)
	if p.sampleCount < 2 {
		frameStd = 0
	}
	sort.Float64s(frames)

	avgTick := time.Duration(tickMean)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avgTick > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avgTick) * 100
		}
	}

	var fps float64
	if frameMean > 0 {
		fps = 1000 / frameMean
	}

	return PerfStats{
		AvgTickDuration: avgTick,
		MinTickDuration: time.Duration(ticks[0]),
		MaxTickDuration: time.Duration(ticks[len(ticks)-1]),
		StdTickDuration: time.Duration(tickStd),
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		FrameMillisMean: frameMean,
		FrameMillisStd:  frameStd,
		FrameMillisP90:  stat.Quantile(0.9, stat.Empirical, frames, nil),
		DeltaTimeMean:   stat.Mean(deltas, nil),
		FPS:             fps,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"frame_ms", int(s.FrameMillisMean*10) / 10.0,
		"frame_p90_ms", int(s.FrameMillisP90*10) / 10.0,
		"delta_time", int(s.DeltaTimeMean*100) / 100.0,
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int64("std_tick_us", s.StdTickDuration.Microseconds()),
		slog.Float64("frame_ms", s.FrameMillisMean),
		slog.Float64("delta_time", s.DeltaTimeMean),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd      int     `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	StdTickUS      int64   `csv:"std_tick_us"`
	FrameMS        float64 `csv:"frame_ms"`
	FrameStdMS     float64 `csv:"frame_std_ms"`
	FrameP90MS     float64 `csv:"frame_p90_ms"`
	DeltaTime      float64 `csv:"delta_time"`
	FPS            float64 `csv:"fps"`
	ConsolePct     float64 `csv:"console_pct"`
	InputPct       float64 `csv:"input_pct"`
	BulletsPct     float64 `csv:"bullets_pct"`
	ShipsPct       float64 `csv:"ships_pct"`
	EnvironmentPct float64 `csv:"environment_pct"`
	CleanupPct     float64 `csv:"cleanup_pct"`
	PresentPct     float64 `csv:"present_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		StdTickUS:      s.StdTickDuration.Microseconds(),
		FrameMS:        s.FrameMillisMean,
		FrameStdMS:     s.FrameMillisStd,
		FrameP90MS:     s.FrameMillisP90,
		DeltaTime:      s.DeltaTimeMean,
		FPS:            s.FPS,
		ConsolePct:     s.PhasePct[PhaseConsole],
		InputPct:       s.PhasePct[PhaseInput],
		BulletsPct:     s.PhasePct[PhaseBullets],
		ShipsPct:       s.PhasePct[PhaseShips],
		EnvironmentPct: s.PhasePct[PhaseEnvironment],
		CleanupPct:     s.PhasePct[PhaseCleanup],
		PresentPct:     s.PhasePct[PhasePresent],
	}
}

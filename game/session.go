// Package game builds the shooter world and runs the frame loop.
package game

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/shooter/camera"
	"github.com/pthm-cable/shooter/components"
	"github.com/pthm-cable/shooter/config"
	"github.com/pthm-cable/shooter/console"
	"github.com/pthm-cable/shooter/input"
	"github.com/pthm-cable/shooter/platform"
	"github.com/pthm-cable/shooter/systems"
	"github.com/pthm-cable/shooter/telemetry"
)

// GridCellSize is the collision grid cell size in pixels.
const GridCellSize = 128

// ClearColor fills the frame buffer every frame.
var ClearColor = color.RGBA{A: 255}

// State is the session lifecycle state. Stopped is terminal.
type State uint8

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}

// Status is what the overlay shows each frame.
type Status struct {
	Frame  int
	FPS    float64
	Counts telemetry.Counts
}

// Overlay draws on top of the finished frame and returns whether the
// per-entity debug dump should be drawn.
type Overlay interface {
	Draw(status Status, debug bool) bool
}

// Deps are the collaborators a session runs against.
type Deps struct {
	Surface platform.Surface
	Input   platform.Input
	Clock   platform.Clock
	Loader  platform.Loader
	Rand    *rand.Rand

	// Optional
	Console <-chan console.Command
	Overlay Overlay
	Output  *telemetry.OutputManager
}

// Options tune a session run.
type Options struct {
	MaxFrames int  // stop after this many frames; 0 runs until quit
	LogStats  bool // log every telemetry window
}

// Session owns the world and advances it one frame per Tick.
type Session struct {
	cfg  *config.Config
	opts Options

	surface  platform.Surface
	input    platform.Input
	clock    platform.Clock
	commands <-chan console.Command
	overlay  Overlay
	output   *telemetry.OutputManager

	world  *World
	camera *camera.Camera
	player ecs.Entity

	bullets  *systems.BulletSystem
	ships    *systems.ShipSystem
	surfaces *systems.SurfaceSystem

	frame systems.Frame
	state State

	frameCount int
	fps        float64

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
}

// NewSession loads the sprites and builds the world: the player ship, four
// boundary walls enclosing the map and the randomly placed obstacles.
func NewSession(cfg *config.Config, deps Deps, opts Options) (*Session, error) {
	shipSprite, err := deps.Loader.LoadImage(cfg.Assets.Ship)
	if err != nil {
		return nil, fmt.Errorf("loading ship sprite: %w", err)
	}
	bulletSprite, err := deps.Loader.LoadImage(cfg.Assets.Bullet)
	if err != nil {
		return nil, fmt.Errorf("loading bullet sprite: %w", err)
	}

	world, err := NewWorld(bulletSprite, cfg.Bullet.Damage)
	if err != nil {
		return nil, err
	}

	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	vw, vh := deps.Surface.Size()
	s := &Session{
		cfg:       cfg,
		opts:      opts,
		surface:   deps.Surface,
		input:     deps.Input,
		clock:     deps.Clock,
		commands:  deps.Console,
		overlay:   deps.Overlay,
		output:    deps.Output,
		world:     world,
		camera:    camera.New(vw, vh, cfg.Derived.WorldW, cfg.Derived.WorldH, cfg.Ship.StartX, cfg.Ship.StartY),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector: telemetry.NewCollector(cfg.Telemetry.PerfWindow),
	}

	s.player, err = world.NewShip(EntityDef{
		X:      cfg.Ship.StartX,
		Y:      cfg.Ship.StartY,
		Sprite: shipSprite,
		Camera: components.CameraScrolling,
		Spin:   cfg.Ship.Spin,
		Health: components.Mortal(cfg.Ship.Health),
	}, components.Ship{
		Acceleration:       cfg.Ship.Acceleration,
		StrafeAcceleration: cfg.Ship.StrafeAcceleration,
		MaxSpeed:           cfg.Ship.MaxSpeed,
		BulletSpeed:        cfg.Ship.BulletSpeed,
		FireRate:           cfg.Ship.FireRate,
		Controlled:         true,
	})
	if err != nil {
		return nil, err
	}

	if err := s.buildBoundary(); err != nil {
		return nil, err
	}
	if err := s.scatterObstacles(rng); err != nil {
		return nil, err
	}

	w := world.ECS()
	s.bullets = systems.NewBulletSystem(w, int(cfg.Derived.WorldW), int(cfg.Derived.WorldH), GridCellSize)
	s.ships = systems.NewShipSystem(w, world)
	s.surfaces = systems.NewSurfaceSystem(w)

	s.frame = systems.Frame{
		Camera:  s.camera,
		Surface: s.surface,
		Debug: systems.DebugStyle{
			Enabled:    cfg.Debug.Overlay,
			LineHeight: cfg.Debug.LineHeight,
			Color:      rgb(cfg.Debug.Color),
		},
	}

	counts := world.Counts()
	slog.Info("session started",
		"world_w", cfg.Derived.WorldW,
		"world_h", cfg.Derived.WorldH,
		"edges", counts.Edges,
		"obstacles", counts.Obstacles,
	)
	return s, nil
}

// buildBoundary encloses the map in four immortal walls.
func (s *Session) buildBoundary() error {
	w, h := s.cfg.Derived.WorldW, s.cfg.Derived.WorldH
	t := s.cfg.Boundary.Thickness
	c := rgb(s.cfg.Boundary.Color)

	walls := []struct{ x, y, w, h float64 }{
		{0, 0, w, t},
		{0, h, w, t},
		{0, 0, t, h},
		{w, 0, t, h},
	}
	for _, wall := range walls {
		if _, err := s.world.NewSurface(EntityDef{
			X:      wall.x,
			Y:      wall.y,
			Sprite: platform.Solid(wall.w, wall.h, c),
			Health: components.Immortal(),
		}, true); err != nil {
			return fmt.Errorf("boundary: %w", err)
		}
	}
	return nil
}

// scatterObstacles places the destructible obstacles uniformly in
// [1, W-1] x [1, H-1].
func (s *Session) scatterObstacles(rng *rand.Rand) error {
	oc := s.cfg.Obstacles
	c := rgb(oc.Color)
	for i := 0; i < oc.Count; i++ {
		x := 1 + rng.Intn(max(int(s.cfg.Derived.WorldW)-1, 1))
		y := 1 + rng.Intn(max(int(s.cfg.Derived.WorldH)-1, 1))
		if _, err := s.world.NewSurface(EntityDef{
			X:      float64(x),
			Y:      float64(y),
			Sprite: platform.Solid(oc.Size, oc.Size, c),
			Spin:   oc.Spin,
			Health: components.Mortal(oc.Health),
		}, false); err != nil {
			return fmt.Errorf("obstacle %d: %w", i, err)
		}
	}
	return nil
}

// Run ticks until the session stops or ctx is canceled.
func (s *Session) Run(ctx context.Context) error {
	for s.state == Running {
		select {
		case <-ctx.Done():
			s.stop("canceled")
			return ctx.Err()
		default:
		}
		s.Tick()
	}
	return nil
}

// Tick runs one frame and returns the resulting state.
func (s *Session) Tick() State {
	if s.state == Stopped {
		return Stopped
	}

	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseConsole)
	s.drainConsole()

	s.perf.StartPhase(telemetry.PhaseInput)
	for _, ev := range s.input.Events() {
		switch ev.Type {
		case input.EventQuit:
			s.perf.EndTick()
			s.stop("quit")
			return s.state
		case input.EventResize:
			s.camera.Resize(float64(ev.Width), float64(ev.Height))
		}
	}
	keys := s.input.Snapshot()

	elapsed := s.clock.Tick(s.cfg.Screen.TargetFPS)
	if elapsed > 0 {
		s.frame.DT = s.cfg.Timing.Normalization / elapsed
	} else {
		elapsed = s.cfg.Derived.FrameMilli
		s.frame.DT = s.cfg.Derived.NominalDT
	}
	s.fps = 1000 / elapsed
	s.perf.RecordFrame(elapsed, s.frame.DT)

	s.surface.Clear(ClearColor)

	s.perf.StartPhase(telemetry.PhaseBullets)
	for _, hit := range s.bullets.Update(&s.frame) {
		s.collector.RecordHit(hit.Destroyed)
	}

	s.perf.StartPhase(telemetry.PhaseShips)
	s.collector.RecordShots(s.ships.Update(&s.frame, keys))

	s.perf.StartPhase(telemetry.PhaseEnvironment)
	s.surfaces.Update(&s.frame)

	s.perf.StartPhase(telemetry.PhaseCleanup)
	s.world.Reap()

	s.perf.StartPhase(telemetry.PhasePresent)
	if s.overlay != nil {
		s.frame.Debug.Enabled = s.overlay.Draw(Status{
			Frame:  s.frameCount,
			FPS:    s.fps,
			Counts: s.world.Counts(),
		}, s.frame.Debug.Enabled)
	}
	s.surface.Present()

	s.perf.EndTick()
	s.frameCount++
	s.flushTelemetry()

	if s.opts.MaxFrames > 0 && s.frameCount >= s.opts.MaxFrames {
		s.stop("max frames")
	}
	return s.state
}

// drainConsole answers every queued console command without blocking.
func (s *Session) drainConsole() {
	for {
		select {
		case cmd, ok := <-s.commands:
			if !ok {
				s.commands = nil
				return
			}
			s.handleCommand(cmd)
		default:
			return
		}
	}
}

func (s *Session) handleCommand(cmd console.Command) {
	s.collector.RecordCommand()
	if strings.TrimSpace(cmd.Text) == "exit" {
		slog.Info("console shutdown requested")
		cmd.Respond(console.Response{Text: "shutdown()", Close: true})
		return
	}
	cmd.Respond(console.Response{Text: strings.Join(s.world.Describe(s.player), "\n")})
}

// flushTelemetry logs and writes the stats window when it is complete.
func (s *Session) flushTelemetry() {
	if !s.collector.ShouldFlush(s.frameCount) {
		return
	}

	stats := s.collector.Flush(s.frameCount, s.world.Counts())
	perfStats := s.perf.Stats()

	if s.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := s.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// stop releases the render surface. Stopped is terminal.
func (s *Session) stop(reason string) {
	if s.state == Stopped {
		return
	}
	s.state = Stopped
	s.surface.Close()
	slog.Info("session stopped", "reason", reason, "frames", s.frameCount)
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// World returns the entity store.
func (s *Session) World() *World { return s.world }

// Camera returns the scrolling camera.
func (s *Session) Camera() *camera.Camera { return s.camera }

// Player returns the player ship.
func (s *Session) Player() ecs.Entity { return s.player }

// Frames returns the number of completed frames.
func (s *Session) Frames() int { return s.frameCount }

// DeltaTime returns the deltaTime of the last frame.
func (s *Session) DeltaTime() float64 { return s.frame.DT }

func rgb(c [3]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

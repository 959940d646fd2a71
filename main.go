package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/shooter/config"
	"github.com/pthm-cable/shooter/console"
	"github.com/pthm-cable/shooter/game"
	"github.com/pthm-cable/shooter/platform"
	"github.com/pthm-cable/shooter/renderer"
	"github.com/pthm-cable/shooter/telemetry"
	"github.com/pthm-cable/shooter/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// run wires the game from command-line args and blocks until the session
// stops. Resources are released before it returns.
func run(args []string) error {
	// CLI flags
	fs := flag.NewFlagSet("shooter", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := fs.Bool("headless", false, "Run without a window")
	logStats := fs.Bool("log-stats", false, "Output telemetry windows via slog")
	outputDir := fs.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := fs.Int64("seed", 0, "RNG seed for obstacle placement (0 = time-based)")
	maxFrames := fs.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	debugLog := fs.Bool("debug", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	level := slog.LevelInfo
	if *debugLog {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	deps := game.Deps{
		Rand:   rand.New(rand.NewSource(rngSeed)),
		Output: output,
	}

	if cfg.Console.Enabled {
		srv := console.NewServer(cfg.Console.Transport, cfg.Console.Address, cfg.Console.QueueSize)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("starting console: %w", err)
		}
		defer srv.Stop()
		deps.Console = srv.Commands()
	}

	if *headless {
		deps.Surface = platform.NewRecorder(cfg.Derived.ScreenW, cfg.Derived.ScreenH)
		deps.Input = &platform.ScriptedInput{}
		deps.Clock = &platform.FixedClock{}
		deps.Loader = &platform.ImageLoader{}
	} else {
		win := renderer.Open(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.TargetFPS, cfg.Screen.Title, cfg.Debug.FontSize)
		deps.Surface = win
		deps.Input = &renderer.Keyboard{}
		deps.Clock = &renderer.Clock{}
		deps.Loader = win
		deps.Overlay = ui.NewHUD(cfg.Screen.Title)
	}

	session, err := game.NewSession(cfg, deps, game.Options{
		MaxFrames: *maxFrames,
		LogStats:  *logStats,
	})
	if err != nil {
		deps.Surface.Close()
		return fmt.Errorf("starting session: %w", err)
	}

	slog.Info("starting",
		"headless", *headless,
		"seed", rngSeed,
		"max_frames", *maxFrames,
		"console", cfg.Console.Enabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := session.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("session: %w", err)
	}
	return nil
}

// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/shooter/asset"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Timing    TimingConfig    `yaml:"timing"`
	Ship      ShipConfig      `yaml:"ship"`
	Bullet    BulletConfig    `yaml:"bullet"`
	Boundary  BoundaryConfig  `yaml:"boundary"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Debug     DebugConfig     `yaml:"debug"`
	Console   ConsoleConfig   `yaml:"console"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Assets    AssetsConfig    `yaml:"assets"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// WorldConfig holds the map dimensions.
// The map is larger than the screen; the scrolling camera handles the viewport.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig holds the frame-rate normalization.
// deltaTime = Normalization / elapsed milliseconds.
type TimingConfig struct {
	Normalization float64 `yaml:"normalization"`
}

// ShipConfig holds the player ship parameters.
type ShipConfig struct {
	StartX             float64 `yaml:"start_x"`
	StartY             float64 `yaml:"start_y"`
	Acceleration       float64 `yaml:"acceleration"`
	StrafeAcceleration float64 `yaml:"strafe_acceleration"`
	Spin               float64 `yaml:"spin"`
	MaxSpeed           float64 `yaml:"max_speed"`
	BulletSpeed        float64 `yaml:"bullet_speed"`
	FireRate           float64 `yaml:"fire_rate"` // cooldown in nominal ticks
	Health             float64 `yaml:"health"`
}

// BulletConfig holds projectile parameters.
type BulletConfig struct {
	Damage float64 `yaml:"damage"`
}

// BoundaryConfig holds the map edge walls.
type BoundaryConfig struct {
	Thickness float64  `yaml:"thickness"`
	Color     [3]uint8 `yaml:"color"`
}

// ObstacleConfig holds the randomly placed destructible obstacles.
type ObstacleConfig struct {
	Count  int      `yaml:"count"`
	Size   float64  `yaml:"size"`
	Spin   float64  `yaml:"spin"`
	Health float64  `yaml:"health"`
	Color  [3]uint8 `yaml:"color"`
}

// DebugConfig holds the debug overlay settings.
type DebugConfig struct {
	Overlay    bool     `yaml:"overlay"`     // per-entity state dump
	LineHeight float64  `yaml:"line_height"` // pixels between dump lines
	FontSize   int      `yaml:"font_size"`
	Color      [3]uint8 `yaml:"color"`
}

// ConsoleConfig holds the remote command console.
type ConsoleConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Transport string `yaml:"transport"` // "tcp" or "websocket"
	Address   string `yaml:"address"`
	QueueSize int    `yaml:"queue_size"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // frames per aggregation window
}

// AssetsConfig holds sprite image paths. Paths prefixed with "embed:" use the
// images compiled into the binary.
type AssetsConfig struct {
	Ship   string `yaml:"ship"`
	Bullet string `yaml:"bullet"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW    float64 // Screen.Width as float64
	ScreenH    float64 // Screen.Height as float64
	WorldW     float64 // Effective world width
	WorldH     float64 // Effective world height
	NominalDT  float64 // deltaTime of a frame that hits TargetFPS exactly
	FrameMilli float64 // milliseconds per frame at TargetFPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the game loop cannot run with and fills empty
// asset paths with the embedded images.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("target_fps must be positive, got %d", c.Screen.TargetFPS)
	}
	if c.Timing.Normalization <= 0 {
		return fmt.Errorf("timing.normalization must be positive, got %f", c.Timing.Normalization)
	}
	if c.Obstacles.Count < 0 {
		return fmt.Errorf("obstacles.count must not be negative, got %d", c.Obstacles.Count)
	}
	if c.Assets.Ship == "" {
		c.Assets.Ship = asset.ShipImage
	}
	if c.Assets.Bullet == "" {
		c.Assets.Bullet = asset.BulletImage
	}
	switch c.Console.Transport {
	case "tcp", "websocket":
	default:
		return fmt.Errorf("console.transport must be tcp or websocket, got %q", c.Console.Transport)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW = float64(worldW)
	c.Derived.WorldH = float64(worldH)

	c.Derived.FrameMilli = 1000.0 / float64(c.Screen.TargetFPS)
	c.Derived.NominalDT = c.Timing.Normalization / c.Derived.FrameMilli
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/shooter/asset"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Screen.Width != 1300 || cfg.Screen.Height != 800 {
		t.Errorf("expected screen 1300x800, got %dx%d", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Derived.WorldW != 3000 || cfg.Derived.WorldH != 3000 {
		t.Errorf("expected world 3000x3000, got %fx%f", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
	if cfg.Obstacles.Count != 39 {
		t.Errorf("expected 39 obstacles, got %d", cfg.Obstacles.Count)
	}
	if cfg.Ship.StartX != 100 || cfg.Ship.StartY != 200 {
		t.Errorf("expected ship start (100, 200), got (%f, %f)", cfg.Ship.StartX, cfg.Ship.StartY)
	}

	// 30 / (1000/60) = 1.8
	if math.Abs(cfg.Derived.NominalDT-1.8) > 1e-9 {
		t.Errorf("expected nominal dt 1.8, got %f", cfg.Derived.NominalDT)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("world:\n  width: 1000\nobstacles:\n  count: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Derived.WorldW != 1000 {
		t.Errorf("expected overridden world width 1000, got %f", cfg.Derived.WorldW)
	}
	// Untouched fields keep their defaults
	if cfg.Derived.WorldH != 3000 {
		t.Errorf("expected default world height 3000, got %f", cfg.Derived.WorldH)
	}
	if cfg.Obstacles.Count != 3 {
		t.Errorf("expected 3 obstacles, got %d", cfg.Obstacles.Count)
	}
	if cfg.Obstacles.Health != 5 {
		t.Errorf("expected default obstacle health 5, got %f", cfg.Obstacles.Health)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero fps", "screen:\n  target_fps: 0\n"},
		{"negative normalization", "timing:\n  normalization: -1\n"},
		{"negative obstacles", "obstacles:\n  count: -2\n"},
		{"unknown transport", "console:\n  transport: udp\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEmptyAssetPathsUseEmbeddedImages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("assets:\n  ship: \"\"\n  bullet: \"\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Assets.Ship != asset.ShipImage {
		t.Errorf("ship asset = %q, want %q", cfg.Assets.Ship, asset.ShipImage)
	}
	if cfg.Assets.Bullet != asset.BulletImage {
		t.Errorf("bullet asset = %q, want %q", cfg.Assets.Bullet, asset.BulletImage)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Obstacles.Count = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Obstacles.Count != 7 {
		t.Errorf("expected 7 obstacles after roundtrip, got %d", loaded.Obstacles.Count)
	}
}

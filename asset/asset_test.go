package asset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestReadEmbedded(t *testing.T) {
	for _, path := range []string{ShipImage, BulletImage} {
		data, err := Read(path)
		if err != nil {
			t.Fatalf("Read(%q): %v", path, err)
		}
		if !bytes.HasPrefix(data, pngMagic) {
			t.Errorf("%s is not a PNG", path)
		}
	}
}

func TestReadEmbeddedMissing(t *testing.T) {
	if _, err := Read(EmbedPrefix + "nope.png"); err == nil {
		t.Error("expected error for missing embedded image")
	}
}

func TestReadDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.png")
	if err := os.WriteFile(path, pngMagic, 0644); err != nil {
		t.Fatal(err)
	}
	data, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(data, pngMagic) {
		t.Errorf("unexpected contents %q", data)
	}
}

func TestExt(t *testing.T) {
	if got := Ext("images/ship.png"); got != ".png" {
		t.Errorf("Ext = %q, want .png", got)
	}
	if got := Ext("noext"); got != "" {
		t.Errorf("Ext = %q, want empty", got)
	}
}

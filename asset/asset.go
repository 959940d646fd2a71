// Package asset resolves sprite image paths to bytes. Paths prefixed with
// "embed:" come from the images compiled into the binary; anything else is
// read from disk.
package asset

import (
	"embed"
	"fmt"
	"os"
	"strings"
)

//go:embed images/*.png
var images embed.FS

// EmbedPrefix marks a path as referring to an embedded image.
const EmbedPrefix = "embed:"

// Default sprite paths.
const (
	ShipImage   = EmbedPrefix + "ship.png"
	BulletImage = EmbedPrefix + "bullet.png"
)

// Read returns the raw bytes of the image at path.
func Read(path string) ([]byte, error) {
	if name, ok := strings.CutPrefix(path, EmbedPrefix); ok {
		data, err := images.ReadFile("images/" + name)
		if err != nil {
			return nil, fmt.Errorf("reading embedded image %s: %w", name, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return data, nil
}

// Ext returns the file extension of path including the dot, e.g. ".png".
func Ext(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}

package renderer

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shooter/asset"
	"github.com/pthm-cable/shooter/platform"
)

// LoadImage uploads the image at path as a texture owned by the window.
func (w *Window) LoadImage(path string) (platform.Sprite, error) {
	data, err := asset.Read(path)
	if err != nil {
		return platform.Sprite{}, err
	}

	img := rl.LoadImageFromMemory(asset.Ext(path), data, int32(len(data)))
	if img == nil || img.Width == 0 || img.Height == 0 {
		return platform.Sprite{}, fmt.Errorf("decoding %s: unsupported image", path)
	}
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if tex.ID == 0 {
		return platform.Sprite{}, fmt.Errorf("uploading %s: texture creation failed", path)
	}

	handle := len(w.textures) + 1
	w.textures[handle] = tex
	return platform.Sprite{
		Handle: handle,
		W:      float64(tex.Width),
		H:      float64(tex.Height),
		Color:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Path:   path,
	}, nil
}

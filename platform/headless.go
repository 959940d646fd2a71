package platform

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"

	"github.com/pthm-cable/shooter/asset"
	"github.com/pthm-cable/shooter/geom"
	"github.com/pthm-cable/shooter/input"
)

// SpriteCall is one recorded DrawSprite call.
type SpriteCall struct {
	Sprite  Sprite
	TopLeft geom.Vec
	Angle   float64
}

// TextCall is one recorded DrawText call.
type TextCall struct {
	Text  string
	Pos   geom.Vec
	Color color.RGBA
}

// Recorder is a Surface that records the draw calls of the current frame.
type Recorder struct {
	W, H float64

	Background color.RGBA
	Sprites    []SpriteCall
	Texts      []TextCall
	Frames     int
	Closed     bool
}

// NewRecorder creates a recording surface with the given viewport size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

// Clear starts a new frame.
func (r *Recorder) Clear(c color.RGBA) {
	r.Background = c
	r.Sprites = r.Sprites[:0]
	r.Texts = r.Texts[:0]
}

// DrawSprite records a sprite draw.
func (r *Recorder) DrawSprite(s Sprite, topLeft geom.Vec, angle float64) {
	r.Sprites = append(r.Sprites, SpriteCall{Sprite: s, TopLeft: topLeft, Angle: angle})
}

// DrawText records a text draw.
func (r *Recorder) DrawText(text string, pos geom.Vec, c color.RGBA) {
	r.Texts = append(r.Texts, TextCall{Text: text, Pos: pos, Color: c})
}

// Present counts the frame.
func (r *Recorder) Present() {
	r.Frames++
}

// Size returns the viewport size.
func (r *Recorder) Size() (w, h float64) {
	return r.W, r.H
}

// Close marks the surface released.
func (r *Recorder) Close() {
	r.Closed = true
}

// FixedClock returns the same frame duration every tick without blocking.
type FixedClock struct {
	Millis float64
}

// Tick returns the fixed frame duration, or the targetFPS budget when
// Millis is unset.
func (c *FixedClock) Tick(targetFPS int) float64 {
	if c.Millis > 0 {
		return c.Millis
	}
	return 1000.0 / float64(targetFPS)
}

// ScriptedInput replays one snapshot per frame and reports Quit once the
// script (or QuitAfter frames, if set) is exhausted.
type ScriptedInput struct {
	Frames    []input.Snapshot
	QuitAfter int

	frame int
}

// Snapshot returns the snapshot scripted for the current frame.
func (s *ScriptedInput) Snapshot() input.Snapshot {
	if s.frame > 0 && s.frame <= len(s.Frames) {
		return s.Frames[s.frame-1]
	}
	return input.Snapshot{}
}

// Events advances to the next frame and reports Quit when the script ends.
func (s *ScriptedInput) Events() []input.Event {
	s.frame++

	limit := s.QuitAfter
	if limit == 0 {
		limit = len(s.Frames)
	}
	if limit > 0 && s.frame > limit {
		return []input.Event{{Type: input.EventQuit}}
	}
	return nil
}

// ImageLoader decodes image headers to size sprites without a GPU.
type ImageLoader struct {
	next int
}

// LoadImage reads the image at path and returns a sprite with its size.
func (l *ImageLoader) LoadImage(path string) (Sprite, error) {
	data, err := asset.Read(path)
	if err != nil {
		return Sprite{}, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Sprite{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	l.next++
	return Sprite{
		Handle: l.next,
		W:      float64(cfg.Width),
		H:      float64(cfg.Height),
		Color:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Path:   path,
	}, nil
}

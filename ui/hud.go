package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/shooter/game"
)

const (
	panelWidth  = 200
	checkSize   = 14
	marginRight = 10
)

// HUD shows frame counters and a checkbox toggling the debug dump.
// The D key toggles it as well.
type HUD struct {
	Theme Theme
	Title string
}

// NewHUD creates a HUD with the default theme.
func NewHUD(title string) *HUD {
	return &HUD{Theme: DefaultTheme(), Title: title}
}

// StatusLines returns the counter lines shown in the panel.
func StatusLines(s game.Status) []string {
	return []string{
		fmt.Sprintf("Frame: %d  FPS: %.0f", s.Frame, s.FPS),
		fmt.Sprintf("Ships: %d  Bullets: %d", s.Counts.Ships, s.Counts.Bullets),
		fmt.Sprintf("Obstacles: %d  Edges: %d", s.Counts.Obstacles, s.Counts.Edges),
	}
}

// Draw renders the panel and returns the new debug state.
func (h *HUD) Draw(status game.Status, debug bool) bool {
	t := h.Theme
	lines := StatusLines(status)

	x := int32(rl.GetScreenWidth()) - panelWidth - marginRight
	y := int32(marginRight)
	height := t.Padding*2 + t.LineHeight*int32(len(lines)+2)
	t.drawPanel(x, y, panelWidth, height)

	ty := y + t.Padding
	rl.DrawText(h.Title, x+t.Padding, ty, t.TitleSize, t.TitleColor)
	ty += t.LineHeight
	for _, line := range lines {
		rl.DrawText(line, x+t.Padding, ty, t.FontSize, t.TextColor)
		ty += t.LineHeight
	}

	bounds := rl.Rectangle{X: float32(x + t.Padding), Y: float32(ty), Width: checkSize, Height: checkSize}
	debug = gui.CheckBox(bounds, "Debug dump [D]", debug)
	if rl.IsKeyPressed(rl.KeyD) {
		debug = !debug
	}
	return debug
}

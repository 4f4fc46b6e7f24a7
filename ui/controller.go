package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Controller owns the on-screen panels. Panels added later draw on top.
type Controller struct {
	panels        []*Panel
	width, height int
}

func NewController() *Controller {
	return &Controller{}
}

// AddPanel places panel above the existing ones, anchored to the current
// window if the size is known.
func (c *Controller) AddPanel(panel *Panel) {
	c.panels = append(c.panels, panel)
	if c.width > 0 && c.height > 0 {
		panel.UpdateWindowSize(c.width, c.height)
	}
}

// Update lets the topmost panel see input first
func (c *Controller) Update() error {
	for i := len(c.panels) - 1; i >= 0; i-- {
		if err := c.panels[i].Update(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) Draw(screen *ebiten.Image) {
	for _, panel := range c.panels {
		panel.Draw(screen)
	}
}

// Resize re-anchors every panel to a window of the given size
func (c *Controller) Resize(width, height int) {
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	for _, panel := range c.panels {
		panel.UpdateWindowSize(width, height)
	}
}

// DrawStats prints frame and tick rates in the bottom-left corner
func (c *Controller) DrawStats(screen *ebiten.Image) {
	stats := fmt.Sprintf("FPS: %.2f TPS: %.2f", ebiten.ActualFPS(), ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, stats, 0, screen.Bounds().Dy()-16)
}

// CapturesPointer reports whether the cursor belongs to the UI rather than
// the map: it is over a panel, or a press that started on one is held.
func (c *Controller) CapturesPointer() bool {
	x, y := ebiten.CursorPosition()
	for _, panel := range c.panels {
		if panel.isDragging || panel.hasCapture || panel.ContainsCursor(float64(x), float64(y)) {
			return true
		}
	}
	return false
}

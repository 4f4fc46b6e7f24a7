package main

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/atlas/config"
	"github.com/OpticalFlyer/atlas/render"
	"github.com/OpticalFlyer/atlas/ui"
	"github.com/OpticalFlyer/atlas/viewer"
)

var digitKeys = map[string]ebiten.Key{
	"0": ebiten.KeyDigit0, "1": ebiten.KeyDigit1, "2": ebiten.KeyDigit2,
	"3": ebiten.KeyDigit3, "4": ebiten.KeyDigit4, "5": ebiten.KeyDigit5,
	"6": ebiten.KeyDigit6, "7": ebiten.KeyDigit7, "8": ebiten.KeyDigit8,
	"9": ebiten.KeyDigit9,
}

type overlayToggle struct {
	name     string
	checkbox *ui.Checkbox
	key      ebiten.Key
	hasKey   bool
}

// controls binds the on-screen widgets and hotkeys of one viewer
type controls struct {
	viewer  *viewer.Viewer
	toggles []*overlayToggle
}

func newControls(v *viewer.Viewer, overlays []config.OverlayConfig) *controls {
	c := &controls{viewer: v}
	for _, oc := range overlays {
		t := &overlayToggle{name: oc.Name}
		label := oc.Label
		if label == "" {
			label = oc.Name
		}
		if k, ok := parseKey(oc.Key); ok {
			t.key, t.hasKey = k, true
			label += " [" + oc.Key + "]"
		}
		t.checkbox = ui.NewCheckbox(label, func(checked bool) {
			c.setOverlay(t.name, checked)
		})
		c.toggles = append(c.toggles, t)
	}
	return c
}

func parseKey(s string) (ebiten.Key, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if k, ok := digitKeys[s]; ok {
		return k, true
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(s)); err != nil {
		zap.L().Warn("ignoring unknown overlay hotkey", zap.String("key", s))
		return 0, false
	}
	return k, true
}

// install adds the overlay panel and the zoom control to the UI
func (c *controls) install(ctrl *ui.Controller) {
	overlayPanel := ui.NewPanel(10, 10, 160, 0, "Map Controls")
	for _, t := range c.toggles {
		overlayPanel.AddChild(t.checkbox)
	}
	overlayPanel.AddChild(ui.NewButton(0, 0, 120, 24, "Reset view", c.viewer.ResetView))
	overlayPanel.SetAnchor(ui.AnchorTopLeft)
	ctrl.AddPanel(overlayPanel)

	zoomPanel := ui.NewPanel(0, 0, 0, 0, "")
	zoomPanel.SetLayout(ui.HorizontalLayout{})
	zoomPanel.AddChild(ui.NewButton(0, 0, 30, 30, "+", c.viewer.View.ZoomIn))
	zoomPanel.AddChild(ui.NewButton(0, 0, 30, 30, "-", c.viewer.View.ZoomOut))
	zoomPanel.SetAnchor(ui.AnchorBottomRight)
	ctrl.AddPanel(zoomPanel)
}

// handleKeys toggles overlays from their hotkeys, keeping checkboxes in sync
func (c *controls) handleKeys() {
	for _, t := range c.toggles {
		if t.hasKey && inpututil.IsKeyJustPressed(t.key) {
			t.checkbox.Toggle()
		}
	}
}

func (c *controls) setOverlay(name string, visible bool) {
	if err := c.viewer.SetOverlayVisible(name, visible); err != nil {
		zap.L().Error("toggle overlay", zap.String("overlay", name), zap.Error(err))
	}
}

// vectorStyles builds shapefile styles from the overlay config
func vectorStyles(overlays []config.OverlayConfig) map[string]render.VectorStyle {
	styles := make(map[string]render.VectorStyle)
	for _, oc := range overlays {
		style := render.DefaultVectorStyle()
		if c, ok, err := oc.ParseColor(); err == nil && ok {
			style.Stroke = c
		}
		if c, ok, err := oc.FillColor(); err == nil && ok {
			style.Fill = c
		}
		if oc.LineWidth > 0 {
			style.LineWidth = float32(oc.LineWidth)
		}
		style.FlipY = oc.FlipY
		styles[oc.Name] = style
	}
	return styles
}

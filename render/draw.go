// Package render draws the base map and its attached overlays with Ebiten.
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/OpticalFlyer/atlas/overlay"
	"github.com/OpticalFlyer/atlas/proj"
	"github.com/OpticalFlyer/atlas/viewport"
)

var backgroundColor = color.RGBA{R: 24, G: 24, B: 28, A: 255}

// Draw renders the base map over mapBounds and the given overlays, bottom first
func Draw(screen *ebiten.Image, view *viewport.Viewport, tex *Textures, mapBounds proj.Bounds, layers []*overlay.Overlay, debugMode bool) {
	screen.Fill(backgroundColor)

	if tex.Base != nil {
		screen.DrawImage(tex.Base, imageOptions(view, mapBounds, tex.Base.Bounds().Dx(), 1))
	}

	for _, o := range layers {
		img, ok := tex.Overlay(o)
		if !ok {
			continue
		}
		alpha := o.DisplayedOpacity()
		if alpha <= 0 {
			continue
		}
		b := img.Bounds()
		screen.DrawImage(img, imageOptions(view, o.Bounds, b.Dx(), alpha))
	}

	if debugMode {
		drawDebug(screen, view, mapBounds, layers)
	}
}

// imageOptions places an image of srcWidth pixels so it covers bounds
func imageOptions(view *viewport.Viewport, bounds proj.Bounds, srcWidth int, alpha float64) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	// Overlays are stretched to the shared bounds so they align with the base
	scale, x, y := view.ImagePlacement(bounds, srcWidth)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	op.ColorScale.ScaleAlpha(float32(alpha))
	return op
}

func drawDebug(screen *ebiten.Image, view *viewport.Viewport, mapBounds proj.Bounds, layers []*overlay.Overlay) {
	redColor := color.RGBA{R: 255, A: 255}
	strokeWidth := float32(1.0)

	// Outline the map extent
	x0, y0 := view.WorldToScreen(mapBounds.Min)
	x1, y1 := view.WorldToScreen(mapBounds.Max)
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0),
		strokeWidth, redColor, false)

	// Draw crosshair
	centerX := float32(view.ScreenWidth / 2)
	centerY := float32(view.ScreenHeight / 2)
	crosshairSize := float32(10.0)
	vector.StrokeLine(screen, centerX-crosshairSize, centerY, centerX+crosshairSize, centerY,
		strokeWidth, redColor, false)
	vector.StrokeLine(screen, centerX, centerY-crosshairSize, centerX, centerY+crosshairSize,
		strokeWidth, redColor, false)

	visible := view.Bounds()
	debugText := fmt.Sprintf("Center: %.1f, %.1f\nZoom: %.2f (min %.3f, max %.2f)\nView: %.0f,%.0f - %.0f,%.0f\nFPS: %.1f",
		view.Center.X, view.Center.Y, view.Zoom, view.MinZoom(), view.MaxZoom(),
		visible.Min.X, visible.Min.Y, visible.Max.X, visible.Max.Y, ebiten.ActualFPS())
	for _, o := range layers {
		debugText += fmt.Sprintf("\n%s: %s z=%d opacity=%.2f", o.Name, o.State(), o.ZIndex(), o.DisplayedOpacity())
	}
	ebitenutil.DebugPrint(screen, debugText)
}

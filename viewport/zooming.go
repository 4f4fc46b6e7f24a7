package viewport

import (
	"math"

	"github.com/OpticalFlyer/atlas/proj"
)

// WheelPixelsPerNotch is the scroll distance one mouse wheel notch reports
const WheelPixelsPerNotch = 100

// ZoomIn increases the zoom level by one step if not at max zoom
func (v *Viewport) ZoomIn() {
	v.SetView(v.Center, v.snap(v.Zoom+v.zoomDelta))
}

// ZoomOut decreases the zoom level by one step if not at minimum zoom
func (v *Viewport) ZoomOut() {
	v.SetView(v.Center, v.snap(v.Zoom-v.zoomDelta))
}

// ZoomAtPoint changes the zoom by delta while keeping the world point under
// the given screen location in place
func (v *Viewport) ZoomAtPoint(delta, screenX, screenY float64) {
	newZoom := v.clampZoom(v.snap(v.Zoom + delta))
	if newZoom == v.Zoom {
		return
	}

	// Get cursor position on the plane before zoom
	anchor := v.ScreenToWorld(screenX, screenY)

	// Put the anchor back under the cursor at the new scale
	s := proj.Scale(newZoom)
	center := proj.Point{
		X: anchor.X - (screenX-float64(v.ScreenWidth)/2)/s,
		Y: anchor.Y - (screenY-float64(v.ScreenHeight)/2)/s,
	}

	v.Zoom = newZoom
	v.Center = v.limitCenter(center, newZoom)
}

// WheelZoomDelta converts a wheel movement in notches (positive zooms in)
// into a zoom change. Large scrolls are damped so one flick never jumps more
// than a few levels.
func (v *Viewport) WheelZoomDelta(notches float64) float64 {
	px := notches * WheelPixelsPerNotch
	d2 := math.Abs(px) / (v.wheelPx * 4)
	d3 := 4 * math.Log2(2/(1+math.Exp(-d2)))
	if v.zoomSnap > 0 {
		d3 = math.Ceil(d3/v.zoomSnap) * v.zoomSnap
	}
	if px < 0 {
		d3 = -d3
	}
	return v.clampZoom(v.Zoom+d3) - v.Zoom
}

// WheelZoom zooms around the cursor by a mouse wheel movement
func (v *Viewport) WheelZoom(notches, screenX, screenY float64) {
	if delta := v.WheelZoomDelta(notches); delta != 0 {
		v.ZoomAtPoint(delta, screenX, screenY)
	}
}

func (v *Viewport) snap(zoom float64) float64 {
	if v.zoomSnap <= 0 {
		return zoom
	}
	return math.Round(zoom/v.zoomSnap) * v.zoomSnap
}

func (v *Viewport) clampZoom(zoom float64) float64 {
	return math.Max(v.minZoom, math.Min(v.maxZoom, zoom))
}

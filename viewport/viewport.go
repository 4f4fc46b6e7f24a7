package viewport

import (
	"math"

	"github.com/OpticalFlyer/atlas/proj"
)

const (
	// DefaultZoomSnap is the granularity zoom levels are rounded to
	DefaultZoomSnap = 0.1
	// DefaultZoomDelta is how far ZoomIn and ZoomOut move
	DefaultZoomDelta = 1.0
	// DefaultWheelPxPerZoomLevel is how many wheel pixels make one zoom level
	DefaultWheelPxPerZoomLevel = 60.0
)

// Options configures a Viewport
type Options struct {
	MinZoom             float64
	MaxZoom             float64
	Zoom                float64
	Center              proj.Point
	ZoomSnap            float64
	ZoomDelta           float64
	WheelPxPerZoomLevel float64
}

// Viewport tracks which part of the pixel plane is visible on screen
type Viewport struct {
	// View state
	Center       proj.Point
	Zoom         float64
	ScreenWidth  int
	ScreenHeight int

	// Constraints
	minZoom   float64
	maxZoom   float64
	zoomSnap  float64
	zoomDelta float64
	wheelPx   float64
	maxBounds *proj.Bounds
}

// New creates a new Viewport instance
func New(screenWidth, screenHeight int, opts Options) *Viewport {
	if opts.ZoomSnap < 0 {
		opts.ZoomSnap = 0
	}
	if opts.ZoomDelta <= 0 {
		opts.ZoomDelta = DefaultZoomDelta
	}
	if opts.WheelPxPerZoomLevel <= 0 {
		opts.WheelPxPerZoomLevel = DefaultWheelPxPerZoomLevel
	}

	v := &Viewport{
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		Center:       opts.Center,
		minZoom:      opts.MinZoom,
		maxZoom:      opts.MaxZoom,
		zoomSnap:     opts.ZoomSnap,
		zoomDelta:    opts.ZoomDelta,
		wheelPx:      opts.WheelPxPerZoomLevel,
	}
	v.Zoom = v.clampZoom(opts.Zoom)
	return v
}

func (v *Viewport) MinZoom() float64 { return v.minZoom }
func (v *Viewport) MaxZoom() float64 { return v.maxZoom }

// SetMinZoom changes the lower zoom bound, zooming in if the view is below it
func (v *Viewport) SetMinZoom(zoom float64) {
	v.minZoom = zoom
	if v.Zoom < zoom {
		v.SetView(v.Center, zoom)
	}
}

// SetMaxZoom changes the upper zoom bound, zooming out if the view is above it
func (v *Viewport) SetMaxZoom(zoom float64) {
	v.maxZoom = zoom
	if v.Zoom > zoom {
		v.SetView(v.Center, zoom)
	}
}

// SetMaxBounds restricts panning so the view stays inside b
func (v *Viewport) SetMaxBounds(b proj.Bounds) {
	v.maxBounds = &b
	v.Center = v.limitCenter(v.Center, v.Zoom)
}

// MaxBounds returns the panning restriction, if any
func (v *Viewport) MaxBounds() (proj.Bounds, bool) {
	if v.maxBounds == nil {
		return proj.Bounds{}, false
	}
	return *v.maxBounds, true
}

// SetView moves the view to center at zoom, honoring zoom and pan limits
func (v *Viewport) SetView(center proj.Point, zoom float64) {
	v.Zoom = v.clampZoom(zoom)
	v.Center = v.limitCenter(center, v.Zoom)
}

// BoundsZoom returns the largest snapped zoom at which b is fully visible
func (v *Viewport) BoundsZoom(b proj.Bounds) float64 {
	zoom := proj.FitZoom(b.Width(), b.Height(), float64(v.ScreenWidth), float64(v.ScreenHeight))
	if v.zoomSnap > 0 {
		// Round away float noise before flooring to the snap grid
		fine := v.zoomSnap / 100
		zoom = math.Round(zoom/fine) * fine
		zoom = math.Floor(zoom/v.zoomSnap) * v.zoomSnap
	}
	return math.Max(v.minZoom, math.Min(v.maxZoom, zoom))
}

// FitBounds centers the view on b at the zoom that shows all of it
func (v *Viewport) FitBounds(b proj.Bounds) {
	v.SetView(b.Center(), v.BoundsZoom(b))
}

// Bounds returns the world rectangle currently visible on screen
func (v *Viewport) Bounds() proj.Bounds {
	return proj.Bounds{
		Min: v.ScreenToWorld(0, 0),
		Max: v.ScreenToWorld(float64(v.ScreenWidth), float64(v.ScreenHeight)),
	}
}

// ScreenToWorld converts screen coordinates to pixel-plane coordinates
func (v *Viewport) ScreenToWorld(screenX, screenY float64) proj.Point {
	return proj.ScreenToWorld(screenX, screenY, v.Center, v.Zoom, v.ScreenWidth, v.ScreenHeight)
}

// WorldToScreen converts pixel-plane coordinates to screen coordinates
func (v *Viewport) WorldToScreen(p proj.Point) (x, y float64) {
	return proj.WorldToScreen(p, v.Center, v.Zoom, v.ScreenWidth, v.ScreenHeight)
}

// ImagePlacement returns the uniform scale and screen origin that draw an
// image srcWidth pixels wide over bounds. A zero srcWidth draws one image
// pixel per world pixel.
func (v *Viewport) ImagePlacement(bounds proj.Bounds, srcWidth int) (scale, x, y float64) {
	scale = proj.Scale(v.Zoom)
	if srcWidth > 0 {
		scale *= bounds.Width() / float64(srcWidth)
	}
	x, y = v.WorldToScreen(bounds.Min)
	return scale, x, y
}

// limitCenter keeps the view inside the max bounds. An axis where the bounds
// are smaller than the view is centered instead.
func (v *Viewport) limitCenter(c proj.Point, zoom float64) proj.Point {
	if v.maxBounds == nil {
		return c
	}
	s := proj.Scale(zoom)
	halfW := float64(v.ScreenWidth) / 2 / s
	halfH := float64(v.ScreenHeight) / 2 / s
	return proj.Point{
		X: limitAxis(c.X, halfW, v.maxBounds.Min.X, v.maxBounds.Max.X),
		Y: limitAxis(c.Y, halfH, v.maxBounds.Min.Y, v.maxBounds.Max.Y),
	}
}

func limitAxis(c, half, lo, hi float64) float64 {
	if hi-lo <= 2*half {
		return (lo + hi) / 2
	}
	return math.Max(lo+half, math.Min(hi-half, c))
}

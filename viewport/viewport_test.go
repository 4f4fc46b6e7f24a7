package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpticalFlyer/atlas/proj"
)

const eps = 1e-9

func newTestViewport(w, h int) (*Viewport, proj.Bounds) {
	bounds := proj.NewBounds(3840, 2160)
	v := New(w, h, Options{
		MinZoom:             -2,
		MaxZoom:             2,
		Zoom:                1,
		Center:              bounds.Center(),
		ZoomSnap:            0.1,
		WheelPxPerZoomLevel: 50,
	})
	v.SetMinZoom(proj.FitZoom(bounds.Width(), bounds.Height(), float64(w), float64(h)))
	v.SetMaxBounds(bounds)
	v.FitBounds(bounds)
	return v, bounds
}

func TestFitBoundsExactFit(t *testing.T) {
	v, bounds := newTestViewport(1920, 1080)

	assert.InDelta(t, -1.0, v.Zoom, eps)
	assert.Equal(t, bounds.Center(), v.Center)

	got := v.Bounds()
	assert.InDelta(t, 0, got.Min.X, 1e-6)
	assert.InDelta(t, 0, got.Min.Y, 1e-6)
	assert.InDelta(t, 3840, got.Max.X, 1e-6)
	assert.InDelta(t, 2160, got.Max.Y, 1e-6)
}

func TestFitBoundsUsesMinZoomWhenSnapWouldUndershoot(t *testing.T) {
	v, bounds := newTestViewport(800, 600)

	// log2(800/3840) is not on the 0.1 grid; flooring it would fall below the
	// min zoom, so the clamp lands exactly on the fitted zoom.
	fit := proj.FitZoom(bounds.Width(), bounds.Height(), 800, 600)
	assert.InDelta(t, fit, v.MinZoom(), eps)
	assert.InDelta(t, fit, v.Zoom, eps)

	got := v.Bounds()
	assert.InDelta(t, 0, got.Min.X, 1e-6)
	assert.InDelta(t, 3840, got.Max.X, 1e-6)
}

func TestBoundsZoomSnapsDown(t *testing.T) {
	v := New(1000, 1000, Options{MinZoom: -5, MaxZoom: 5, ZoomSnap: 0.1})
	// Fit zoom for 3000x3000 into 1000x1000 is log2(1/3) ~ -1.585
	assert.InDelta(t, -1.6, v.BoundsZoom(proj.NewBounds(3000, 3000)), eps)

	v = New(1000, 1000, Options{MinZoom: -5, MaxZoom: 5, ZoomSnap: 0})
	assert.InDelta(t, -1.5849625, v.BoundsZoom(proj.NewBounds(3000, 3000)), 1e-6)
}

func TestZoomClamped(t *testing.T) {
	v, _ := newTestViewport(1920, 1080)

	for i := 0; i < 10; i++ {
		v.ZoomIn()
	}
	assert.InDelta(t, 2.0, v.Zoom, eps)

	for i := 0; i < 10; i++ {
		v.ZoomOut()
	}
	assert.InDelta(t, -1.0, v.Zoom, eps)
}

func TestZoomAtPointKeepsAnchor(t *testing.T) {
	v, _ := newTestViewport(1920, 1080)
	v.ZoomIn() // zoom 0, so panning has room

	sx, sy := 700.0, 400.0
	before := v.ScreenToWorld(sx, sy)
	v.ZoomAtPoint(1, sx, sy)
	after := v.ScreenToWorld(sx, sy)

	assert.InDelta(t, 1.0, v.Zoom, eps)
	assert.InDelta(t, before.X, after.X, 1e-6)
	assert.InDelta(t, before.Y, after.Y, 1e-6)
}

func TestPanRestrictedToMaxBounds(t *testing.T) {
	v, bounds := newTestViewport(1920, 1080)
	v.ZoomIn()
	v.ZoomIn() // zoom 1: view is 960x540 world pixels

	v.PanBy(1e6, 1e6)
	got := v.Bounds()
	assert.InDelta(t, bounds.Min.X, got.Min.X, 1e-6)
	assert.InDelta(t, bounds.Min.Y, got.Min.Y, 1e-6)

	v.PanBy(-1e6, -1e6)
	got = v.Bounds()
	assert.InDelta(t, bounds.Max.X, got.Max.X, 1e-6)
	assert.InDelta(t, bounds.Max.Y, got.Max.Y, 1e-6)
}

func TestPanCentersAxisSmallerThanView(t *testing.T) {
	v, bounds := newTestViewport(1920, 1920) // square screen, wide image
	v.PanBy(0, 500)
	assert.InDelta(t, bounds.Center().Y, v.Center.Y, eps)
}

func TestPanDirections(t *testing.T) {
	v := New(800, 600, Options{MinZoom: -2, MaxZoom: 2, Center: proj.Point{X: 500, Y: 500}})

	v.Pan(PanLeft)
	assert.InDelta(t, 500-PanSpeed, v.Center.X, eps)
	v.Pan(PanRight)
	v.Pan(PanUp)
	assert.InDelta(t, 500, v.Center.X, eps)
	assert.InDelta(t, 500-PanSpeed, v.Center.Y, eps)
	v.Pan(PanDown)
	assert.InDelta(t, 500, v.Center.Y, eps)
}

func TestWheelZoomDelta(t *testing.T) {
	v, _ := newTestViewport(1920, 1080)
	v.SetView(v.Center, 0)

	// One notch: 100px / (50*4) = 0.5, damped to ~1.26, snapped up to 1.3
	assert.InDelta(t, 1.3, v.WheelZoomDelta(1), 1e-9)
	assert.InDelta(t, -1.0, v.WheelZoomDelta(-1), 1e-9) // clamped at min zoom -1
	assert.Zero(t, v.WheelZoomDelta(0))
}

func TestZoomStepsSnap(t *testing.T) {
	// Fit zoom log2(1/3) ~ -1.585 is off the 0.1 grid
	v, _ := newTestViewport(1280, 720)
	require.InDelta(t, proj.FitZoom(3840, 2160, 1280, 720), v.Zoom, eps)

	v.ZoomIn()
	assert.InDelta(t, -0.6, v.Zoom, eps)
	v.ZoomIn()
	assert.InDelta(t, 0.4, v.Zoom, eps)

	v.ZoomOut()
	assert.InDelta(t, -0.6, v.Zoom, eps)
	v.ZoomOut()
	assert.InDelta(t, v.MinZoom(), v.Zoom, eps) // -1.6 clamps to the fit
}

func TestResetRestoresFit(t *testing.T) {
	v, bounds := newTestViewport(1280, 720)
	want := v.Bounds()
	wantZoom := v.Zoom

	v.WheelZoom(3, 100, 100)
	v.PanBy(-400, 250)
	v.Pan(PanDown)
	v.ZoomAtPoint(0.4, 900, 10)
	require.NotEqual(t, want, v.Bounds())

	v.FitBounds(bounds)
	assert.InDelta(t, wantZoom, v.Zoom, eps)
	assert.Equal(t, want, v.Bounds())
}

func TestImagePlacement(t *testing.T) {
	bounds := proj.NewBounds(3840, 2160)

	tests := []struct {
		name         string
		zoom         float64
		center       proj.Point
		srcWidth     int
		wantScale    float64
		wantX, wantY float64
	}{
		{
			name: "Full size image at fit",
			zoom: -1, center: bounds.Center(), srcWidth: 3840,
			wantScale: 0.5, wantX: 0, wantY: 0,
		},
		{
			name: "Half size image is stretched",
			zoom: -1, center: bounds.Center(), srcWidth: 1920,
			wantScale: 1, wantX: 0, wantY: 0,
		},
		{
			name: "Zoomed in on the top left corner",
			zoom: 1, center: proj.Point{X: 480, Y: 270}, srcWidth: 3840,
			wantScale: 2, wantX: 0, wantY: 0,
		},
		{
			name: "Zoomed in past the origin",
			zoom: 0, center: proj.Point{X: 1000, Y: 1000}, srcWidth: 3840,
			wantScale: 1, wantX: -40, wantY: -460,
		},
		{
			name: "Unknown width draws at world scale",
			zoom: 1, center: bounds.Center(), srcWidth: 0,
			wantScale: 2, wantX: 960 - 2*1920, wantY: 540 - 2*1080,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(1920, 1080, Options{MinZoom: -2, MaxZoom: 2, Zoom: tt.zoom, Center: tt.center})
			scale, x, y := v.ImagePlacement(bounds, tt.srcWidth)
			assert.InDelta(t, tt.wantScale, scale, eps)
			assert.InDelta(t, tt.wantX, x, 1e-6)
			assert.InDelta(t, tt.wantY, y, 1e-6)
		})
	}
}

package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpticalFlyer/atlas/overlay"
	"github.com/OpticalFlyer/atlas/viewport"
)

func testConfig() Config {
	return Config{
		Width:  3840,
		Height: 2160,
		Base:   "assets/Maps/map-base.png",
		View: viewport.Options{
			MinZoom:             -2,
			MaxZoom:             2,
			Zoom:                1,
			ZoomSnap:            0.1,
			WheelPxPerZoomLevel: 50,
		},
		Overlays: []OverlaySpec{
			{Name: "border", Kind: overlay.KindBorder, Source: "assets/Maps/map-overlay-borders.png"},
			{Name: "names", Kind: overlay.KindNames, Source: "assets/Maps/map-overlay-names.png"},
			{Name: "shields", Kind: overlay.KindShields, Source: "assets/Maps/map-overlay-shields.png"},
		},
		Timing: overlay.DefaultTiming(),
	}
}

func TestNewFitsContainer(t *testing.T) {
	v, err := New(testConfig(), 1920, 1080, nil)
	require.NoError(t, err)

	assert.InDelta(t, -1.0, v.View.MinZoom(), 1e-9)
	assert.InDelta(t, -1.0, v.View.Zoom, 1e-9)
	assert.Equal(t, v.Bounds.Center(), v.View.Center)

	mb, ok := v.View.MaxBounds()
	require.True(t, ok)
	assert.Equal(t, v.Bounds, mb)

	for _, o := range v.Overlays.All() {
		assert.False(t, v.Stack.HasLayer(o), o.Name)
		assert.Equal(t, v.Bounds, o.Bounds, o.Name)
		assert.False(t, v.OverlayVisible(o.Name))
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 0
	_, err := New(cfg, 800, 600, nil)
	assert.Error(t, err)

	_, err = New(testConfig(), 0, 600, nil)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Overlays = append(cfg.Overlays, OverlaySpec{Name: "names", Kind: overlay.KindNames})
	_, err = New(cfg, 800, 600, nil)
	assert.ErrorContains(t, err, "duplicate")
}

func TestResetAfterPanZoom(t *testing.T) {
	v, err := New(testConfig(), 1280, 720, nil)
	require.NoError(t, err)
	want := v.View.Bounds()

	v.View.ZoomIn()
	v.View.PanBy(300, -200)
	v.View.WheelZoom(2, 40, 600)
	v.View.ZoomAtPoint(-0.3, 1000, 100)
	require.NotEqual(t, want, v.View.Bounds())

	v.ResetView()
	assert.Equal(t, want, v.View.Bounds())
}

func TestMinZoomNotRefittedOnResize(t *testing.T) {
	v, err := New(testConfig(), 1920, 1080, nil)
	require.NoError(t, err)

	v.Resize(960, 540)
	assert.InDelta(t, -1.0, v.View.MinZoom(), 1e-9)
}

func TestViewersAreIndependent(t *testing.T) {
	a, err := New(testConfig(), 1920, 1080, nil)
	require.NoError(t, err)
	b, err := New(testConfig(), 1920, 1080, nil)
	require.NoError(t, err)

	require.NoError(t, a.SetOverlayVisible("names", true))
	a.Update(time.Second)

	assert.True(t, a.OverlayVisible("names"))
	assert.False(t, b.OverlayVisible("names"))
	assert.Len(t, a.Stack.Layers(), 1)
	assert.Empty(t, b.Stack.Layers())
}

func TestOverlayRaceThroughViewer(t *testing.T) {
	v, err := New(testConfig(), 1920, 1080, nil)
	require.NoError(t, err)

	require.NoError(t, v.SetOverlayVisible("border", true))
	v.Update(time.Second)
	require.NoError(t, v.SetOverlayVisible("border", false))
	v.Update(500 * time.Millisecond)
	require.NoError(t, v.SetOverlayVisible("border", true))
	for i := 0; i < 120; i++ {
		v.Update(time.Second / 60)
	}

	o, _ := v.Overlays.Get("border")
	assert.True(t, v.Stack.HasLayer(o))
	assert.Equal(t, 1.0, o.Opacity())
	assert.Equal(t, overlay.Shown, o.State())

	assert.Error(t, v.SetOverlayVisible("roads", true))
}

func TestShownOverlaysLeavePointerToMap(t *testing.T) {
	v, err := New(testConfig(), 1920, 1080, nil)
	require.NoError(t, err)

	for _, o := range v.Overlays.All() {
		require.NoError(t, v.SetOverlayVisible(o.Name, true))
	}
	v.Update(time.Second)
	require.Len(t, v.Stack.Layers(), 3)
	assert.False(t, v.PointerCaptured())
}

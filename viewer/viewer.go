// Package viewer wires the viewport and overlay registry of one map into an
// application state object that input handlers close over.
package viewer

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/atlas/overlay"
	"github.com/OpticalFlyer/atlas/proj"
	"github.com/OpticalFlyer/atlas/viewport"
)

// OverlaySpec describes one optional layer
type OverlaySpec struct {
	Name   string
	Kind   overlay.Kind
	Source string
}

// Config describes a map: its base image size, view limits and overlays
type Config struct {
	Width    float64
	Height   float64
	Base     string
	View     viewport.Options
	Overlays []OverlaySpec
	Timing   overlay.Timing
}

// Viewer is the state of one interactive map
type Viewer struct {
	Base     string
	Bounds   proj.Bounds
	View     *viewport.Viewport
	Stack    *overlay.Stack
	Overlays *overlay.Registry
}

// New builds a viewer for a container of containerW x containerH pixels.
// The min zoom is fitted to that size once; later resizes keep it.
func New(cfg Config, containerW, containerH int, prepare overlay.PrepareFunc) (*Viewer, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, eris.Errorf("viewer: invalid map size %vx%v", cfg.Width, cfg.Height)
	}
	if containerW <= 0 || containerH <= 0 {
		return nil, eris.Errorf("viewer: invalid container size %dx%d", containerW, containerH)
	}

	bounds := proj.NewBounds(cfg.Width, cfg.Height)
	opts := cfg.View
	if opts.Center == (proj.Point{}) {
		opts.Center = bounds.Center()
	}

	stack := overlay.NewStack(prepare)
	v := &Viewer{
		Base:     cfg.Base,
		Bounds:   bounds,
		View:     viewport.New(containerW, containerH, opts),
		Stack:    stack,
		Overlays: overlay.NewRegistry(stack, cfg.Timing),
	}

	for _, def := range cfg.Overlays {
		if _, err := v.Overlays.Register(def.Name, def.Kind, def.Source, bounds); err != nil {
			return nil, eris.Wrapf(err, "viewer: register overlay %s", def.Name)
		}
	}

	minZoom := proj.FitZoom(cfg.Width, cfg.Height, float64(containerW), float64(containerH))
	v.View.SetMinZoom(minZoom)
	zap.L().Info("calculated min zoom", zap.Float64("min_zoom", minZoom),
		zap.Int("container_width", containerW), zap.Int("container_height", containerH))

	v.View.SetMaxBounds(bounds)
	v.View.FitBounds(bounds)
	return v, nil
}

// ResetView restores the fit-to-bounds view
func (v *Viewer) ResetView() {
	v.View.FitBounds(v.Bounds)
	zap.L().Debug("reset map view", zap.Float64("zoom", v.View.Zoom))
}

// SetOverlayVisible shows or hides the named overlay
func (v *Viewer) SetOverlayVisible(name string, visible bool) error {
	if err := v.Overlays.SetVisible(name, visible); err != nil {
		return err
	}
	zap.L().Debug("toggle overlay", zap.String("overlay", name), zap.Bool("visible", visible))
	return nil
}

// OverlayVisible reports whether the named overlay is shown or fading in
func (v *Viewer) OverlayVisible(name string) bool {
	o, ok := v.Overlays.Get(name)
	if !ok {
		return false
	}
	s := o.State()
	return s == overlay.Showing || s == overlay.Shown
}

// PointerCaptured reports whether an attached overlay takes pointer input,
// in which case drags and wheel events must not move the map.
func (v *Viewer) PointerCaptured() bool {
	return v.Stack.CapturesPointer()
}

// Resize records a new container size. The min zoom is not refitted.
func (v *Viewer) Resize(w, h int) {
	v.View.ScreenWidth = w
	v.View.ScreenHeight = h
}

// Update advances fade transitions by dt
func (v *Viewer) Update(dt time.Duration) {
	v.Overlays.Advance(dt)
}

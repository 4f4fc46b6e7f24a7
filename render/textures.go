package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/atlas/assets"
	"github.com/OpticalFlyer/atlas/overlay"
)

// VectorStyle controls how shapefile overlays are rasterized
type VectorStyle struct {
	Fill      color.Color
	Stroke    color.Color
	LineWidth float32
	FlipY     bool
}

// DefaultVectorStyle draws translucent dark fills with solid outlines
func DefaultVectorStyle() VectorStyle {
	return VectorStyle{
		Fill:      color.NRGBA{R: 40, G: 40, B: 40, A: 96},
		Stroke:    color.NRGBA{R: 20, G: 20, B: 20, A: 255},
		LineWidth: 3,
	}
}

// Textures holds the GPU images of the base map and its overlays
type Textures struct {
	Base     *ebiten.Image
	overlays map[*overlay.Overlay]*ebiten.Image
	styles   map[string]VectorStyle
}

// NewTextures creates an empty texture set. styles is keyed by overlay name
// and only consulted for shapefile sources.
func NewTextures(styles map[string]VectorStyle) *Textures {
	return &Textures{
		overlays: make(map[*overlay.Overlay]*ebiten.Image),
		styles:   styles,
	}
}

// LoadBase decodes and uploads the base map image
func (t *Textures) LoadBase(path string) error {
	img, err := assets.LoadImage(path)
	if err != nil {
		return eris.Wrap(err, "render: load base map")
	}
	t.Base = ebiten.NewImageFromImage(img)
	zap.L().Info("loaded base map", zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
	return nil
}

// Prepare loads the texture for o. It is the overlay stack's prepare hook.
func (t *Textures) Prepare(o *overlay.Overlay) error {
	if _, ok := t.overlays[o]; ok {
		return nil
	}

	var img *ebiten.Image
	if assets.IsShapefile(o.Source) {
		style, ok := t.styles[o.Name]
		if !ok {
			style = DefaultVectorStyle()
		}
		shapes, err := assets.LoadShapes(o.Source, assets.ShapeOptions{FlipY: style.FlipY, Height: o.Bounds.Height()})
		if err != nil {
			return err
		}
		img, err = Rasterize(shapes, o.Bounds, style)
		if err != nil {
			return err
		}
	} else {
		src, err := assets.LoadImage(o.Source)
		if err != nil {
			return err
		}
		img = ebiten.NewImageFromImage(src)
	}

	t.overlays[o] = img
	zap.L().Debug("prepared overlay", zap.String("overlay", o.Name), zap.String("source", o.Source))
	return nil
}

// Overlay returns the texture prepared for o
func (t *Textures) Overlay(o *overlay.Overlay) (*ebiten.Image, bool) {
	img, ok := t.overlays[o]
	return img, ok
}

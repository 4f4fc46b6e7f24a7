package viewport

import "github.com/OpticalFlyer/atlas/proj"

// PanDirection represents a direction to pan the map
type PanDirection int

const (
	PanLeft PanDirection = iota
	PanRight
	PanUp
	PanDown
)

// PanSpeed in screen pixels per frame
const PanSpeed = 20

// Pan moves the view in the specified direction by a fixed number of pixels
func (v *Viewport) Pan(dir PanDirection) {
	switch dir {
	case PanLeft:
		v.PanBy(PanSpeed, 0)
	case PanRight:
		v.PanBy(-PanSpeed, 0)
	case PanUp:
		v.PanBy(0, PanSpeed)
	case PanDown:
		v.PanBy(0, -PanSpeed)
	}
}

// PanBy moves the map by screen pixel offsets, like dragging it.
// Positive dx drags the map right (view moves left), positive dy drags it down.
func (v *Viewport) PanBy(dx, dy float64) {
	s := proj.Scale(v.Zoom)
	center := v.Center.Sub(proj.Point{X: dx / s, Y: dy / s})
	v.Center = v.limitCenter(center, v.Zoom)
}

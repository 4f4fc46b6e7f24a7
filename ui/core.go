package ui

import "github.com/hajimehoshi/ebiten/v2"

// Component represents the basic building block of the UI system.
// All UI elements must implement this interface.
type Component interface {
	Update() error
	Draw(screen *ebiten.Image)
	Bounds() Rectangle
	SetPosition(x, y float64)
	// HandleInput receives the cursor in parent-relative coordinates and
	// reports whether the component consumed it.
	HandleInput(x, y float64, pressed bool) bool
	SetParent(parent Container)
	GetParent() Container
}

// Container represents a Component that can hold and manage other Components.
type Container interface {
	Component
	AddChild(child Component)
	RemoveChild(child Component)
	Children() []Component
	Layout() Layout
}

// Rectangle represents the bounds of a Component
type Rectangle struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies inside r
func (r Rectangle) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// Layout defines how Components are arranged within a Container
type Layout interface {
	ArrangeChildren(container Container)
}

// absolute returns the screen position of a point relative to parent
func absolute(parent Container, x, y float64) (float64, float64) {
	if parent == nil {
		return x, y
	}
	pb := parent.Bounds()
	return x + pb.X, y + pb.Y
}

// pressable tracks hover and press for clickable widgets. A click is a press
// followed by a release inside the same bounds.
type pressable struct {
	hovered bool
	pressed bool
}

// track updates the state and reports whether the cursor is inside, and
// whether this input completed a click.
func (p *pressable) track(r Rectangle, x, y float64, down bool) (inside, clicked bool) {
	if !r.Contains(x, y) {
		p.hovered, p.pressed = false, false
		return false, false
	}
	p.hovered = true
	if down {
		p.pressed = true
	} else if p.pressed {
		p.pressed = false
		clicked = true
	}
	return true, clicked
}

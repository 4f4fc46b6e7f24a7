package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var _ Component = (*Button)(nil)

var (
	buttonIdle    = color.RGBA{150, 150, 150, 255}
	buttonHover   = color.RGBA{180, 180, 180, 255}
	buttonPressed = color.RGBA{100, 100, 100, 255}
)

// Button runs onClick when released over itself
type Button struct {
	rect    Rectangle
	label   string
	onClick func()
	parent  Container
	state   pressable
}

func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		rect:    Rectangle{X: x, Y: y, Width: width, Height: height},
		label:   label,
		onClick: onClick,
	}
}

func (b *Button) SetParent(parent Container) { b.parent = parent }
func (b *Button) GetParent() Container       { return b.parent }
func (b *Button) SetPosition(x, y float64)   { b.rect.X, b.rect.Y = x, y }
func (b *Button) Bounds() Rectangle          { return b.rect }
func (b *Button) Update() error              { return nil }

func (b *Button) Draw(screen *ebiten.Image) {
	fill := buttonIdle
	switch {
	case b.state.pressed:
		fill = buttonPressed
	case b.state.hovered:
		fill = buttonHover
	}

	x, y := absolute(b.parent, b.rect.X, b.rect.Y)
	w, h := float32(b.rect.Width), float32(b.rect.Height)
	vector.DrawFilledRect(screen, float32(x), float32(y), w, h, fill, true)
	vector.StrokeRect(screen, float32(x), float32(y), w, h, 1, color.Black, true)

	// Debug font glyphs are 6x16
	textX := x + (b.rect.Width-float64(len(b.label)*6))/2
	textY := y + (b.rect.Height-16)/2
	ebitenutil.DebugPrintAt(screen, b.label, int(textX), int(textY))
}

func (b *Button) HandleInput(x, y float64, pressed bool) bool {
	inside, clicked := b.state.track(b.rect, x, y, pressed)
	if clicked && b.onClick != nil {
		b.onClick()
	}
	return inside
}

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var _ Component = (*Checkbox)(nil)

const checkboxSize = 16.0

// Checkbox is a labelled on/off toggle. onChange fires on user clicks only.
type Checkbox struct {
	x, y     float64
	width    float64
	label    string
	checked  bool
	onChange func(checked bool)
	parent   Container
	state    pressable
}

func NewCheckbox(label string, onChange func(checked bool)) *Checkbox {
	return &Checkbox{
		width:    float64(len(label)*6) + checkboxSize + 8,
		label:    label,
		onChange: onChange,
	}
}

// Toggle flips the state and fires onChange, as a click would
func (c *Checkbox) Toggle() {
	c.checked = !c.checked
	if c.onChange != nil {
		c.onChange(c.checked)
	}
}

func (c *Checkbox) SetParent(parent Container) { c.parent = parent }
func (c *Checkbox) GetParent() Container       { return c.parent }
func (c *Checkbox) SetPosition(x, y float64)   { c.x, c.y = x, y }
func (c *Checkbox) Update() error              { return nil }

func (c *Checkbox) Bounds() Rectangle {
	return Rectangle{X: c.x, Y: c.y, Width: c.width, Height: checkboxSize}
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	absoluteX, absoluteY := absolute(c.parent, c.x, c.y)

	boxColor := color.RGBA{230, 230, 230, 255}
	if c.state.hovered {
		boxColor = color.RGBA{255, 255, 255, 255}
	}
	vector.DrawFilledRect(screen, float32(absoluteX), float32(absoluteY),
		checkboxSize, checkboxSize, boxColor, true)
	vector.StrokeRect(screen, float32(absoluteX), float32(absoluteY),
		checkboxSize, checkboxSize, 1, color.Black, true)

	if c.checked {
		vector.DrawFilledRect(screen, float32(absoluteX+4), float32(absoluteY+4),
			checkboxSize-8, checkboxSize-8, color.RGBA{33, 150, 243, 255}, true)
	}

	ebitenutil.DebugPrintAt(screen, c.label, int(absoluteX+checkboxSize+6), int(absoluteY))
}

func (c *Checkbox) HandleInput(x, y float64, pressed bool) bool {
	inside, clicked := c.state.track(c.Bounds(), x, y, pressed)
	if clicked {
		c.Toggle()
	}
	return inside
}

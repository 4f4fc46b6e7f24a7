package ui

import (
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var _ Container = (*Panel)(nil)

// Anchor pins a panel to a window corner across resizes
type Anchor int

const (
	AnchorNone Anchor = iota
	AnchorTopLeft
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

const (
	titleBarHeight = 20.0
	panelPadding   = 8.0
	panelSpacing   = 6.0
	anchorMargin   = 10.0
	panelAlpha     = 200
)

type Panel struct {
	X, Y          float64
	Width, Height float64
	Title         string

	anchor   Anchor
	children []Component
	layout   Layout
	parent   Container

	// Interaction state
	isDragging                bool
	dragStartX                float64
	dragStartY                float64
	mouseButtonPreviouslyDown bool
	hasCapture                bool

	// Window dimensions
	windowWidth  int
	windowHeight int
}

// NewPanel creates a panel. An empty title hides the title bar, which also
// makes the panel immovable.
func NewPanel(x, y, width, height float64, title string) *Panel {
	return &Panel{
		X:            x,
		Y:            y,
		Width:        width,
		Height:       height,
		Title:        title,
		layout:       VerticalLayout{},
		windowWidth:  800, // Default window size
		windowHeight: 600, // Default window size
	}
}

// SetAnchor pins the panel to a window corner
func (p *Panel) SetAnchor(a Anchor) {
	p.anchor = a
	p.UpdateWindowSize(p.windowWidth, p.windowHeight)
}

// SetLayout replaces the child layout
func (p *Panel) SetLayout(l Layout) {
	p.layout = l
	p.layout.ArrangeChildren(p)
}

func (p *Panel) Layout() Layout             { return p.layout }
func (p *Panel) Children() []Component      { return p.children }
func (p *Panel) SetParent(parent Container) { p.parent = parent }
func (p *Panel) GetParent() Container       { return p.parent }

func (p *Panel) AddChild(child Component) {
	child.SetParent(p)
	p.children = append(p.children, child)
	p.layout.ArrangeChildren(p)
}

func (p *Panel) RemoveChild(child Component) {
	if i := slices.Index(p.children, child); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
		child.SetParent(nil)
		p.layout.ArrangeChildren(p)
	}
}

func (p *Panel) SetPosition(x, y float64) {
	p.X, p.Y = x, y
}

func (p *Panel) Bounds() Rectangle {
	return Rectangle{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

func (p *Panel) headerHeight() float64 {
	if p.Title == "" {
		return 0
	}
	return titleBarHeight
}

func (p *Panel) UpdateWindowSize(width, height int) {
	p.windowWidth = width
	p.windowHeight = height

	switch p.anchor {
	case AnchorTopLeft:
		p.X = anchorMargin
		p.Y = anchorMargin
	case AnchorTopRight:
		p.X = float64(width) - p.Width - anchorMargin
		p.Y = anchorMargin
	case AnchorBottomLeft:
		p.X = anchorMargin
		p.Y = float64(height) - p.Height - anchorMargin
	case AnchorBottomRight:
		p.X = float64(width) - p.Width - anchorMargin
		p.Y = float64(height) - p.Height - anchorMargin
	}
}

// ContainsCursor reports whether the point is over the panel
func (p *Panel) ContainsCursor(x, y float64) bool {
	return p.Bounds().Contains(x, y)
}

func (p *Panel) HandleInput(x, y float64, pressed bool) bool {
	consumed := false
	for _, child := range p.children {
		if child.HandleInput(x-p.X, y-p.Y, pressed) {
			consumed = true
		}
	}
	return consumed || p.Bounds().Contains(x, y)
}

func (p *Panel) Update() error {
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)
	isMousePressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if isMousePressed && !p.mouseButtonPreviouslyDown {
		p.mouseButtonPreviouslyDown = true
		// A press that starts on the panel belongs to it until release
		p.hasCapture = p.ContainsCursor(fx, fy)
		if p.isInTitleBar(fx, fy) {
			p.isDragging = true
			p.anchor = AnchorNone
			p.dragStartX = fx - p.X
			p.dragStartY = fy - p.Y
		}
	} else if !isMousePressed {
		p.isDragging = false
		p.mouseButtonPreviouslyDown = false
	}

	if p.isDragging {
		p.X = fx - p.dragStartX
		p.Y = fy - p.dragStartY
	} else if p.hasCapture || !isMousePressed {
		p.HandleInput(fx, fy, isMousePressed)
	}

	if !isMousePressed {
		p.hasCapture = false
	}

	for _, child := range p.children {
		if err := child.Update(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Panel) Draw(screen *ebiten.Image) {
	bgColor := color.RGBA{100, 100, 100, panelAlpha}
	titleColor := color.RGBA{60, 60, 60, panelAlpha}

	// Draw panel background
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), bgColor, true)

	// Draw title bar
	if p.Title != "" {
		vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(titleBarHeight), titleColor, true)
		ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+4), int(p.Y+2))
	}

	for _, child := range p.children {
		child.Draw(screen)
	}
}

func (p *Panel) isInTitleBar(x, y float64) bool {
	return p.Title != "" && x >= p.X && x <= p.X+p.Width &&
		y >= p.Y && y <= p.Y+titleBarHeight
}

// VerticalLayout stacks children top to bottom under the title bar and
// grows the panel to fit them
type VerticalLayout struct{}

func (VerticalLayout) ArrangeChildren(c Container) {
	p, ok := c.(*Panel)
	if !ok {
		return
	}
	y := p.headerHeight() + panelPadding
	width := p.Width
	for _, child := range p.Children() {
		child.SetPosition(panelPadding, y)
		b := child.Bounds()
		y += b.Height + panelSpacing
		width = max(width, b.Width+2*panelPadding)
	}
	p.Width = width
	p.Height = y - panelSpacing + panelPadding
	p.UpdateWindowSize(p.windowWidth, p.windowHeight)
}

// HorizontalLayout places children left to right and grows the panel to fit
type HorizontalLayout struct{}

func (HorizontalLayout) ArrangeChildren(c Container) {
	p, ok := c.(*Panel)
	if !ok {
		return
	}
	x := panelPadding
	height := 0.0
	for _, child := range p.Children() {
		child.SetPosition(x, p.headerHeight()+panelPadding)
		b := child.Bounds()
		x += b.Width + panelSpacing
		height = max(height, b.Height)
	}
	p.Width = x - panelSpacing + panelPadding
	p.Height = p.headerHeight() + height + 2*panelPadding
	p.UpdateWindowSize(p.windowWidth, p.windowHeight)
}

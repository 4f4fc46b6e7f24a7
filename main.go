package main

import (
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/atlas/assets"
	"github.com/OpticalFlyer/atlas/config"
	"github.com/OpticalFlyer/atlas/render"
	"github.com/OpticalFlyer/atlas/ui"
	"github.com/OpticalFlyer/atlas/viewer"
	"github.com/OpticalFlyer/atlas/viewport"
)

// Atlas implements ebiten.Game interface.
type Atlas struct {
	viewer    *viewer.Viewer
	textures  *render.Textures
	debugMode bool
	ui        *ui.Controller
	controls  *controls

	// Mouse panning state
	isDragging bool
	lastMouseX int
	lastMouseY int

	lastZoomTime time.Time // Track last wheel zoom

	touches touches
}

func (g *Atlas) Update() error {
	// Fades run on the tick clock so they stay in step with drawing
	g.viewer.Update(time.Second / time.Duration(ebiten.TPS()))

	// Update UI first to handle any panel interactions
	if err := g.ui.Update(); err != nil {
		return err
	}

	view := g.viewer.View

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debugMode = !g.debugMode
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.viewer.ResetView()
	}
	g.controls.handleKeys()

	// Handle keyboard zooming
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || // = key
		inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) { // numpad +
		view.ZoomIn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || // - key
		inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) { // numpad -
		view.ZoomOut()
	}

	// Handle keyboard panning
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		view.Pan(viewport.PanLeft)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		view.Pan(viewport.PanRight)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		view.Pan(viewport.PanUp)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		view.Pan(viewport.PanDown)
	}

	// Only handle pointer interactions with the map if we're not over the UI
	// or an overlay that takes input
	if (g.ui.CapturesPointer() || g.viewer.PointerCaptured()) && !g.isDragging {
		return nil
	}

	// Handle mouse wheel zooming with time-based throttling
	_, wheelY := ebiten.Wheel()
	if wheelY != 0 && time.Since(g.lastZoomTime) > 40*time.Millisecond {
		x, y := ebiten.CursorPosition()
		view.WheelZoom(wheelY, float64(x), float64(y))
		g.lastZoomTime = time.Now()
	}

	// Handle mouse panning
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		// Start dragging
		g.isDragging = true
		g.lastMouseX, g.lastMouseY = ebiten.CursorPosition()
	} else if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		// Stop dragging
		g.isDragging = false
	}

	if g.isDragging {
		currentX, currentY := ebiten.CursorPosition()
		dx := float64(currentX - g.lastMouseX)
		dy := float64(currentY - g.lastMouseY)
		if dx != 0 || dy != 0 {
			view.PanBy(dx, dy)
		}
		g.lastMouseX = currentX
		g.lastMouseY = currentY
	}

	// Touch pan and pinch
	g.touches.update(view)

	return nil
}

func (g *Atlas) Draw(screen *ebiten.Image) {
	render.Draw(screen, g.viewer.View, g.textures, g.viewer.Bounds, g.viewer.Stack.Layers(), g.debugMode)

	// Draw UI
	g.ui.Draw(screen)
	if g.debugMode {
		g.ui.DrawStats(screen)
	}
}

func (g *Atlas) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewer.Resize(outsideWidth, outsideHeight)
	g.ui.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

var (
	configPath string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:          "atlas",
	Short:        "Interactive image map viewer",
	Long:         "Shows a large base map image with pan and zoom, and fades optional border, name and shield overlays in and out.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		if debugFlag {
			cfg.Log.Level = "debug"
		}
		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		defer func() { _ = zap.L().Sync() }()

		app, err := newAtlas(cfg)
		if err != nil {
			zap.L().Error("start viewer", zap.Error(err))
			return err
		}
		app.debugMode = debugFlag

		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		ebiten.SetWindowTitle(cfg.Window.Title)
		ebiten.SetVsyncEnabled(true)

		return ebiten.RunGame(app)
	},
}

func newAtlas(cfg *config.Config) (*Atlas, error) {
	vc, err := cfg.Viewer()
	if err != nil {
		return nil, err
	}

	if err := checkBaseSize(vc.Base, vc.Width, vc.Height); err != nil {
		return nil, err
	}

	textures := render.NewTextures(vectorStyles(cfg.Overlays))
	if err := textures.LoadBase(vc.Base); err != nil {
		return nil, err
	}

	// The window is not open yet; its configured size is the container the
	// min zoom is fitted to.
	v, err := viewer.New(vc, cfg.Window.Width, cfg.Window.Height, textures.Prepare)
	if err != nil {
		return nil, err
	}

	uiController := ui.NewController()
	ctl := newControls(v, cfg.Overlays)
	ctl.install(uiController)
	uiController.Resize(cfg.Window.Width, cfg.Window.Height)

	return &Atlas{
		viewer:   v,
		textures: textures,
		ui:       uiController,
		controls: ctl,
	}, nil
}

// checkBaseSize warns when the base image is not the configured map size;
// it is then stretched to the map bounds.
func checkBaseSize(path string, width, height float64) error {
	ok, err := assets.SizeMatches(path, width, height)
	if err != nil {
		return err
	}
	if !ok {
		zap.L().Warn("base map size differs from map bounds, stretching",
			zap.String("path", path), zap.Float64("map_width", width), zap.Float64("map_height", height))
	}
	return nil
}

func bindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&configPath, "config", "c", "", "config file (default ./config.yaml)")
	fs.BoolVar(&debugFlag, "debug", false, "debug logging and on-screen diagnostics")
}

func main() {
	bindFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package config

import (
	"encoding/hex"
	"image/color"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/OpticalFlyer/atlas/overlay"
	"github.com/OpticalFlyer/atlas/viewer"
	"github.com/OpticalFlyer/atlas/viewport"
)

// Config holds the full application configuration.
type Config struct {
	Map      MapConfig       `yaml:"map" mapstructure:"map"`
	Overlays []OverlayConfig `yaml:"overlays" mapstructure:"overlays"`
	Fade     FadeConfig      `yaml:"fade" mapstructure:"fade"`
	Window   WindowConfig    `yaml:"window" mapstructure:"window"`
	Log      LogConfig       `yaml:"log" mapstructure:"log"`
}

// MapConfig describes the base image and the view limits.
type MapConfig struct {
	Base                string  `yaml:"base" mapstructure:"base"`
	Width               float64 `yaml:"width" mapstructure:"width"`
	Height              float64 `yaml:"height" mapstructure:"height"`
	MinZoom             float64 `yaml:"min_zoom" mapstructure:"min_zoom"`
	MaxZoom             float64 `yaml:"max_zoom" mapstructure:"max_zoom"`
	Zoom                float64 `yaml:"zoom" mapstructure:"zoom"`
	ZoomSnap            float64 `yaml:"zoom_snap" mapstructure:"zoom_snap"`
	ZoomDelta           float64 `yaml:"zoom_delta" mapstructure:"zoom_delta"`
	WheelPxPerZoomLevel float64 `yaml:"wheel_px_per_zoom_level" mapstructure:"wheel_px_per_zoom_level"`
}

// OverlayConfig describes one optional layer. Source is an image, or a
// shapefile (.shp) rasterized with Color and LineWidth.
type OverlayConfig struct {
	Name      string  `yaml:"name" mapstructure:"name"`
	Label     string  `yaml:"label" mapstructure:"label"`
	Kind      string  `yaml:"kind" mapstructure:"kind"`
	Source    string  `yaml:"source" mapstructure:"source"`
	Key       string  `yaml:"key" mapstructure:"key"`
	Color     string  `yaml:"color" mapstructure:"color"`
	LineWidth float64 `yaml:"line_width" mapstructure:"line_width"`
	FlipY     bool    `yaml:"flip_y" mapstructure:"flip_y"`
}

// ParseColor decodes Color as #rrggbb or #rrggbbaa into a straight-alpha
// color. ok is false when no color is set.
func (o OverlayConfig) ParseColor() (c color.NRGBA, ok bool, err error) {
	s := strings.TrimPrefix(strings.TrimSpace(o.Color), "#")
	if s == "" {
		return color.NRGBA{}, false, nil
	}
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, false, eris.Errorf("config: invalid color %q", o.Color)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return color.NRGBA{}, false, eris.Wrapf(err, "config: invalid color %q", o.Color)
	}
	c = color.NRGBA{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, true, nil
}

// FillAlphaDivisor thins the outline color into the polygon fill color
const FillAlphaDivisor = 3

// FillColor returns the polygon fill for a shapefile overlay: the outline
// color at a third of its alpha.
func (o OverlayConfig) FillColor() (c color.NRGBA, ok bool, err error) {
	c, ok, err = o.ParseColor()
	if !ok || err != nil {
		return c, ok, err
	}
	c.A /= FillAlphaDivisor
	return c, true, nil
}

// FadeConfig holds overlay transition timings in milliseconds.
type FadeConfig struct {
	ShowDelayMS int `yaml:"show_delay_ms" mapstructure:"show_delay_ms"`
	DurationMS  int `yaml:"duration_ms" mapstructure:"duration_ms"`
}

// WindowConfig configures the initial window.
type WindowConfig struct {
	Title  string `yaml:"title" mapstructure:"title"`
	Width  int    `yaml:"width" mapstructure:"width"`
	Height int    `yaml:"height" mapstructure:"height"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultOverlays returns the border, name and shield layers.
func DefaultOverlays() []OverlayConfig {
	return []OverlayConfig{
		{Name: "border", Label: "Borders", Kind: "border", Source: "assets/Maps/map-overlay-borders.png", Key: "1"},
		{Name: "names", Label: "Names", Kind: "names", Source: "assets/Maps/map-overlay-names.png", Key: "2"},
		{Name: "shields", Label: "Shields", Kind: "shields", Source: "assets/Maps/map-overlay-shields.png", Key: "3"},
	}
}

// Load reads configuration from file and environment. An empty path looks
// for config.yaml in the working directory and is optional.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Config file
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, eris.Wrap(err, "config: expand path")
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("map.base", "assets/Maps/map-base.png")
	v.SetDefault("map.width", 3840)
	v.SetDefault("map.height", 2160)
	v.SetDefault("map.min_zoom", -2)
	v.SetDefault("map.max_zoom", 2)
	v.SetDefault("map.zoom", 1)
	v.SetDefault("map.zoom_snap", 0.1)
	v.SetDefault("map.zoom_delta", 1)
	v.SetDefault("map.wheel_px_per_zoom_level", 50)
	v.SetDefault("fade.show_delay_ms", 10)
	v.SetDefault("fade.duration_ms", 700)
	v.SetDefault("window.title", "Atlas")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if len(cfg.Overlays) == 0 {
		cfg.Overlays = DefaultOverlays()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the viewer cannot start without.
func (c *Config) Validate() error {
	if c.Map.Base == "" {
		return eris.New("config: map.base is required")
	}
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return eris.Errorf("config: invalid map size %vx%v", c.Map.Width, c.Map.Height)
	}
	if c.Map.MinZoom > c.Map.MaxZoom {
		return eris.Errorf("config: min_zoom %v above max_zoom %v", c.Map.MinZoom, c.Map.MaxZoom)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return eris.Errorf("config: invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	seen := make(map[string]bool)
	for i, o := range c.Overlays {
		if o.Name == "" || o.Source == "" {
			return eris.Errorf("config: overlay %d needs a name and a source", i)
		}
		if seen[o.Name] {
			return eris.Errorf("config: duplicate overlay %q", o.Name)
		}
		seen[o.Name] = true
		if _, err := overlay.ParseKind(o.Kind); err != nil {
			return eris.Wrapf(err, "config: overlay %s", o.Name)
		}
		if _, _, err := o.ParseColor(); err != nil {
			return eris.Wrapf(err, "config: overlay %s", o.Name)
		}
	}
	return nil
}

// Viewer converts the configuration into a viewer description.
func (c *Config) Viewer() (viewer.Config, error) {
	base, err := homedir.Expand(c.Map.Base)
	if err != nil {
		return viewer.Config{}, eris.Wrap(err, "config: expand map.base")
	}

	vc := viewer.Config{
		Width:  c.Map.Width,
		Height: c.Map.Height,
		Base:   base,
		View: viewport.Options{
			MinZoom:             c.Map.MinZoom,
			MaxZoom:             c.Map.MaxZoom,
			Zoom:                c.Map.Zoom,
			ZoomSnap:            c.Map.ZoomSnap,
			ZoomDelta:           c.Map.ZoomDelta,
			WheelPxPerZoomLevel: c.Map.WheelPxPerZoomLevel,
		},
		Timing: overlay.Timing{
			ShowDelay:    time.Duration(c.Fade.ShowDelayMS) * time.Millisecond,
			FadeDuration: time.Duration(c.Fade.DurationMS) * time.Millisecond,
		},
	}

	for _, o := range c.Overlays {
		kind, err := overlay.ParseKind(o.Kind)
		if err != nil {
			return viewer.Config{}, eris.Wrapf(err, "config: overlay %s", o.Name)
		}
		src, err := homedir.Expand(o.Source)
		if err != nil {
			return viewer.Config{}, eris.Wrapf(err, "config: expand overlay %s source", o.Name)
		}
		vc.Overlays = append(vc.Overlays, viewer.OverlaySpec{Name: o.Name, Kind: kind, Source: src})
	}
	return vc, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

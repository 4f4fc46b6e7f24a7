// Package assets loads the base map and overlay sources from disk: raster
// images and vector shapefiles.
package assets

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	// Decoders for the raster formats overlays may use
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/rotisserie/eris"
)

// IsShapefile reports whether path names an ESRI shapefile
func IsShapefile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".shp")
}

// LoadImage decodes the image at path
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "assets: open %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, eris.Wrapf(err, "assets: decode %s", path)
	}
	return img, nil
}

// ImageSize reads only the header of the image at path
func ImageSize(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "assets: open %s", path)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "assets: decode header %s", path)
	}
	return cfg.Width, cfg.Height, nil
}

// SizeMatches reports whether the image at path is exactly width x height,
// reading only its header.
func SizeMatches(path string, width, height float64) (bool, error) {
	w, h, err := ImageSize(path)
	if err != nil {
		return false, err
	}
	return float64(w) == width && float64(h) == height, nil
}

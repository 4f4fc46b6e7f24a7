package proj

import "math"

// Point is a position on the flat pixel plane. X grows right, Y grows down.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Bounds is an axis-aligned rectangle on the pixel plane.
type Bounds struct {
	Min, Max Point
}

// NewBounds returns the extent of a width x height image anchored at the origin.
func NewBounds(width, height float64) Bounds {
	return Bounds{Max: Point{X: width, Y: height}}
}

func (b Bounds) Width() float64  { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Center returns the midpoint of b.
func (b Bounds) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Scale returns the screen pixels per world pixel at the given zoom.
// Zoom 0 draws the image 1:1, each whole zoom step doubles it.
func Scale(zoom float64) float64 {
	return math.Exp2(zoom)
}

// ScaleZoom is the inverse of Scale.
func ScaleZoom(scale float64) float64 {
	return math.Log2(scale)
}

// FitZoom returns the zoom at which a source image of sw x sh pixels fits
// entirely inside a target of tw x th pixels, keeping its aspect ratio.
//
// Parameters:
//   - sw, sh: source image width and height
//   - tw, th: target container width and height
//
// Results for zero or negative inputs are undefined.
func FitZoom(sw, sh, tw, th float64) float64 {
	scale := math.Min(tw/sw, th/sh)
	return ScaleZoom(scale)
}

// WorldToScreen converts a world point to screen pixels for a view centered
// on center at zoom, drawn into a screen of sw x sh pixels.
func WorldToScreen(p, center Point, zoom float64, sw, sh int) (x, y float64) {
	s := Scale(zoom)
	x = (p.X-center.X)*s + float64(sw)/2
	y = (p.Y-center.Y)*s + float64(sh)/2
	return x, y
}

// ScreenToWorld is the inverse of WorldToScreen.
func ScreenToWorld(x, y float64, center Point, zoom float64, sw, sh int) Point {
	s := Scale(zoom)
	return Point{
		X: center.X + (x-float64(sw)/2)/s,
		Y: center.Y + (y-float64(sh)/2)/s,
	}
}

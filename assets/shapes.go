package assets

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/OpticalFlyer/atlas/proj"
)

// Polygon is an outer ring followed by zero or more hole rings
type Polygon struct {
	Rings [][]proj.Point
}

// Shapes holds the vector geometry read from a shapefile
type Shapes struct {
	Polygons []Polygon
	Lines    [][]proj.Point
}

// ShapeOptions controls how shapefile coordinates map onto the pixel plane
type ShapeOptions struct {
	// FlipY mirrors Y across Height, for files authored with Y growing up
	FlipY  bool
	Height float64
}

func (o ShapeOptions) point(p shp.Point) proj.Point {
	if o.FlipY {
		return proj.Point{X: p.X, Y: o.Height - p.Y}
	}
	return proj.Point{X: p.X, Y: p.Y}
}

// LoadShapes reads polygons and polylines from the shapefile at path.
// Coordinates are taken as map pixels. Other shape types are skipped.
func LoadShapes(path string, opts ShapeOptions) (*Shapes, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "assets: open shapefile %s", path)
	}
	defer r.Close()

	out := &Shapes{}
	for r.Next() {
		_, shape := r.Shape()
		switch s := shape.(type) {
		case *shp.Polygon:
			out.Polygons = append(out.Polygons, polygons(s.Parts, s.Points, opts)...)
		case *shp.PolygonZ:
			out.Polygons = append(out.Polygons, polygons(s.Parts, s.Points, opts)...)
		case *shp.PolyLine:
			out.Lines = append(out.Lines, lines(s.Parts, s.Points, opts)...)
		case *shp.PolyLineZ:
			out.Lines = append(out.Lines, lines(s.Parts, s.Points, opts)...)
		}
	}
	if err := r.Err(); err != nil {
		return nil, eris.Wrapf(err, "assets: read shapefile %s", path)
	}
	return out, nil
}

// parts splits a shapefile point list at the part offsets
func parts(offsets []int32, pts []shp.Point) [][]shp.Point {
	out := make([][]shp.Point, 0, len(offsets))
	for i, start := range offsets {
		end := int32(len(pts))
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		if start < 0 || start > end || end > int32(len(pts)) {
			continue
		}
		out = append(out, pts[start:end])
	}
	return out
}

func lines(offsets []int32, pts []shp.Point, opts ShapeOptions) [][]proj.Point {
	var out [][]proj.Point
	for _, part := range parts(offsets, pts) {
		if len(part) < 2 {
			continue
		}
		line := make([]proj.Point, len(part))
		for i, p := range part {
			line[i] = opts.point(p)
		}
		out = append(out, line)
	}
	return out
}

// polygons groups rings into polygons. Shapefiles store outer rings
// clockwise and holes counter-clockwise (with Y up); a hole belongs to the
// outer ring preceding it.
func polygons(offsets []int32, pts []shp.Point, opts ShapeOptions) []Polygon {
	var out []Polygon
	for _, part := range parts(offsets, pts) {
		if len(part) < 3 {
			continue
		}
		ring := make([]proj.Point, 0, len(part))
		for _, p := range part {
			ring = append(ring, opts.point(p))
		}
		// Drop the closing point; rings are implicitly closed
		if len(ring) > 3 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}

		hole := signedArea(part) > 0
		if hole && len(out) > 0 {
			last := &out[len(out)-1]
			last.Rings = append(last.Rings, ring)
			continue
		}
		out = append(out, Polygon{Rings: [][]proj.Point{ring}})
	}
	return out
}

// signedArea is positive for counter-clockwise rings in a Y-up frame
func signedArea(ring []shp.Point) float64 {
	var a float64
	for i := range ring {
		j := (i + 1) % len(ring)
		a += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return a / 2
}

package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpticalFlyer/atlas/proj"
)

func square(x, y, size float64) []proj.Point {
	return []proj.Point{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}}
}

func TestTriangulateSquare(t *testing.T) {
	m, err := Triangulate(Polygon{Rings: [][]proj.Point{square(0, 0, 10)}})
	require.NoError(t, err)

	assert.Len(t, m.Indices, 6)
	assert.InDelta(t, 100, m.Area(), 1e-9)
}

func TestTriangulateWithHole(t *testing.T) {
	m, err := Triangulate(Polygon{Rings: [][]proj.Point{
		square(0, 0, 10),
		square(3, 3, 4),
	}})
	require.NoError(t, err)

	assert.Len(t, m.Vertices, 8)
	assert.InDelta(t, 100-16, m.Area(), 1e-9)
}

func TestTriangulateDegenerate(t *testing.T) {
	m, err := Triangulate(Polygon{Rings: [][]proj.Point{{{X: 0, Y: 0}, {X: 1, Y: 1}}}})
	require.NoError(t, err)
	assert.Empty(t, m.Indices)

	m, err = Triangulate(Polygon{})
	require.NoError(t, err)
	assert.Empty(t, m.Indices)
}

func TestBuildMeshOffsetsIndices(t *testing.T) {
	m, err := BuildMesh([]Polygon{
		{Rings: [][]proj.Point{square(0, 0, 10)}},
		{Rings: [][]proj.Point{square(20, 0, 5)}},
	})
	require.NoError(t, err)

	assert.Len(t, m.Vertices, 8)
	assert.Len(t, m.Indices, 12)
	assert.InDelta(t, 125, m.Area(), 1e-9)
	for _, idx := range m.Indices[6:] {
		assert.GreaterOrEqual(t, idx, 4)
	}
}

func writeShapefile(t *testing.T, path string, typ shp.ShapeType, shapes ...shp.Shape) {
	t.Helper()
	w, err := shp.Create(path, typ)
	require.NoError(t, err)
	for _, s := range shapes {
		w.Write(s)
	}
	w.Close()
}

func TestLoadShapesPolygonWithHole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "borders.shp")

	// Outer ring clockwise, hole counter-clockwise (Y up), both closed
	outer := []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}
	hole := []shp.Point{{X: 3, Y: 3}, {X: 7, Y: 3}, {X: 7, Y: 7}, {X: 3, Y: 7}, {X: 3, Y: 3}}
	poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{outer, hole}))
	writeShapefile(t, path, shp.POLYGON, &poly)

	shapes, err := LoadShapes(path, ShapeOptions{})
	require.NoError(t, err)

	require.Len(t, shapes.Polygons, 1)
	require.Len(t, shapes.Polygons[0].Rings, 2)
	assert.Len(t, shapes.Polygons[0].Rings[0], 4)

	m, err := BuildMesh(shapes.Polygons)
	require.NoError(t, err)
	assert.InDelta(t, 84, m.Area(), 1e-9)
}

func TestLoadShapesLinesFlipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roads.shp")
	line := shp.NewPolyLine([][]shp.Point{
		{{X: 0, Y: 0}, {X: 100, Y: 50}},
		{{X: 10, Y: 10}, {X: 20, Y: 20}, {X: 30, Y: 10}},
	})
	writeShapefile(t, path, shp.POLYLINE, line)

	shapes, err := LoadShapes(path, ShapeOptions{FlipY: true, Height: 200})
	require.NoError(t, err)

	require.Len(t, shapes.Lines, 2)
	assert.Equal(t, []proj.Point{{X: 0, Y: 200}, {X: 100, Y: 150}}, shapes.Lines[0])
	assert.Len(t, shapes.Lines[1], 3)
	assert.Empty(t, shapes.Polygons)
}

func TestLoadShapesMissing(t *testing.T) {
	_, err := LoadShapes(filepath.Join(t.TempDir(), "nope.shp"), ShapeOptions{})
	assert.Error(t, err)
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.png")

	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	src.Set(1, 1, color.NRGBA{R: 255, A: 128})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())

	w, h, err := ImageSize(path)
	require.NoError(t, err)
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)

	_, err = LoadImage(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "junk.png"), []byte("not an image"), 0644))
	_, err = LoadImage(filepath.Join(dir, "junk.png"))
	assert.Error(t, err)
}

func TestSizeMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 16, 9))))
	require.NoError(t, f.Close())

	ok, err := SizeMatches(path, 16, 9)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = SizeMatches(path, 3840, 2160)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = SizeMatches(filepath.Join(t.TempDir(), "missing.png"), 16, 9)
	assert.Error(t, err)
}

func TestIsShapefile(t *testing.T) {
	assert.True(t, IsShapefile("borders.shp"))
	assert.True(t, IsShapefile("dir/Borders.SHP"))
	assert.False(t, IsShapefile("borders.png"))
}

// disjointTriangles builds n triangles that share no vertices
func disjointTriangles(n int) Mesh {
	var m Mesh
	for i := 0; i < n; i++ {
		x := float64(i * 2)
		base := len(m.Vertices)
		m.Vertices = append(m.Vertices, proj.Point{X: x, Y: 0}, proj.Point{X: x + 1, Y: 0}, proj.Point{X: x, Y: 1})
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	return m
}

func TestBatchesSplitsLargeMesh(t *testing.T) {
	m := disjointTriangles(23334)
	require.Greater(t, len(m.Vertices), MaxBatchVertices)

	batches := m.Batches(MaxBatchVertices)
	require.Len(t, batches, 2)

	var indices int
	var area float64
	for _, b := range batches {
		assert.LessOrEqual(t, len(b.Vertices), MaxBatchVertices)
		assert.Zero(t, len(b.Indices)%3)
		maxIdx := 0
		for _, idx := range b.Indices {
			maxIdx = max(maxIdx, idx)
		}
		assert.Less(t, maxIdx, len(b.Vertices))
		indices += len(b.Indices)
		area += b.Area()
	}
	assert.Equal(t, len(m.Indices), indices)
	assert.InDelta(t, m.Area(), area, 1e-6)
	assert.Len(t, batches[0].Vertices, MaxBatchVertices)
}

func TestBatchesRemapsSharedVertices(t *testing.T) {
	// Fan of four triangles around vertex 0
	m := Mesh{
		Vertices: []proj.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}},
		Indices:  []int{0, 1, 2, 0, 2, 3, 0, 3, 4, 0, 4, 5},
	}

	batches := m.Batches(4)
	require.Len(t, batches, 2)
	for _, b := range batches {
		assert.Len(t, b.Vertices, 4)
		assert.Equal(t, []int{0, 1, 2, 0, 2, 3}, b.Indices)
		assert.Equal(t, proj.Point{}, b.Vertices[0])
	}
	assert.Equal(t, proj.Point{X: 0, Y: 1}, batches[1].Vertices[1])
	assert.InDelta(t, m.Area(), batches[0].Area()+batches[1].Area(), 1e-9)
}

func TestBatchesSmallMesh(t *testing.T) {
	m := disjointTriangles(2)
	assert.Equal(t, []Mesh{m}, m.Batches(MaxBatchVertices))
	assert.Empty(t, Mesh{}.Batches(MaxBatchVertices))
}

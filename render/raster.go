package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/OpticalFlyer/atlas/assets"
	"github.com/OpticalFlyer/atlas/proj"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Rasterize draws vector shapes into a transparent image the size of bounds
func Rasterize(shapes *assets.Shapes, bounds proj.Bounds, style VectorStyle) (*ebiten.Image, error) {
	w := int(math.Ceil(bounds.Width()))
	h := int(math.Ceil(bounds.Height()))
	dst := ebiten.NewImage(w, h)

	if style.Fill != nil && len(shapes.Polygons) > 0 {
		m, err := assets.BuildMesh(shapes.Polygons)
		if err != nil {
			return nil, err
		}
		batches := m.Batches(assets.MaxBatchVertices)
		for _, b := range batches {
			fillMesh(dst, b, bounds.Min, style.Fill)
		}
		zap.L().Debug("filled polygons", zap.Int("polygons", len(shapes.Polygons)),
			zap.Int("triangles", len(m.Indices)/3), zap.Int("batches", len(batches)),
			zap.Float64("area", m.Area()))
	}

	if style.Stroke != nil && style.LineWidth > 0 {
		for _, p := range shapes.Polygons {
			for _, ring := range p.Rings {
				strokePath(dst, ring, true, bounds.Min, style)
			}
		}
		for _, line := range shapes.Lines {
			strokePath(dst, line, false, bounds.Min, style)
		}
	}

	return dst, nil
}

// fillMesh draws one batch; m must fit 16-bit indices
func fillMesh(dst *ebiten.Image, m assets.Mesh, origin proj.Point, c color.Color) {
	// color.Color reports premultiplied channels
	r, g, b, a := c.RGBA()
	cr, cg, cb, ca := float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff

	vs := make([]ebiten.Vertex, len(m.Vertices))
	for i, p := range m.Vertices {
		vs[i] = ebiten.Vertex{
			DstX:   float32(p.X - origin.X),
			DstY:   float32(p.Y - origin.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
	}

	is := make([]uint16, len(m.Indices))
	for i, idx := range m.Indices {
		is[i] = uint16(idx)
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	dst.DrawTriangles(vs, is, whiteSubImage, op)
}

func strokePath(dst *ebiten.Image, pts []proj.Point, closed bool, origin proj.Point, style VectorStyle) {
	n := len(pts)
	if n < 2 {
		return
	}
	last := n - 1
	if closed {
		last = n
	}
	for i := 0; i < last; i++ {
		a, b := pts[i], pts[(i+1)%n]
		vector.StrokeLine(dst,
			float32(a.X-origin.X), float32(a.Y-origin.Y),
			float32(b.X-origin.X), float32(b.Y-origin.Y),
			style.LineWidth, style.Stroke, true)
	}
}

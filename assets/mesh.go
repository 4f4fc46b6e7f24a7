package assets

import (
	"math"

	earcut "github.com/flywave/go-earcut"
	"github.com/rotisserie/eris"

	"github.com/OpticalFlyer/atlas/proj"
)

// Mesh is a triangle list: every three Indices name one triangle of Vertices
type Mesh struct {
	Vertices []proj.Point
	Indices  []int
}

// Triangulate splits a polygon with holes into triangles
func Triangulate(p Polygon) (Mesh, error) {
	if len(p.Rings) == 0 || len(p.Rings[0]) < 3 {
		return Mesh{}, nil
	}

	var (
		flat  []float64
		holes []int
		verts []proj.Point
	)
	for i, ring := range p.Rings {
		if i > 0 {
			holes = append(holes, len(verts))
		}
		for _, pt := range ring {
			flat = append(flat, pt.X, pt.Y)
			verts = append(verts, pt)
		}
	}

	indices, err := earcut.Earcut(flat, holes, 2)
	if err != nil {
		return Mesh{}, eris.Wrap(err, "assets: triangulate polygon")
	}
	return Mesh{Vertices: verts, Indices: indices}, nil
}

// BuildMesh triangulates every polygon into one mesh
func BuildMesh(polys []Polygon) (Mesh, error) {
	var m Mesh
	for _, p := range polys {
		part, err := Triangulate(p)
		if err != nil {
			return Mesh{}, err
		}
		base := len(m.Vertices)
		m.Vertices = append(m.Vertices, part.Vertices...)
		for _, idx := range part.Indices {
			m.Indices = append(m.Indices, base+idx)
		}
	}
	return m, nil
}

// Area sums the areas of the mesh triangles
func (m Mesh) Area() float64 {
	var a float64
	for i := 0; i+2 < len(m.Indices); i += 3 {
		p, q, r := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		cross := (q.X-p.X)*(r.Y-p.Y) - (r.X-p.X)*(q.Y-p.Y)
		if cross < 0 {
			cross = -cross
		}
		a += cross / 2
	}
	return a
}

// MaxBatchVertices is the most vertices one 16-bit indexed draw can address
const MaxBatchVertices = math.MaxUint16

// Batches splits m into meshes of at most maxVertices distinct vertices each,
// renumbering indices per batch. Triangles are never split.
func (m Mesh) Batches(maxVertices int) []Mesh {
	if len(m.Indices) < 3 {
		return nil
	}
	if maxVertices < 3 {
		maxVertices = 3
	}
	if len(m.Vertices) <= maxVertices {
		return []Mesh{m}
	}

	var (
		out   []Mesh
		cur   Mesh
		remap = make(map[int]int)
	)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri := m.Indices[i : i+3]
		fresh := 0
		for _, idx := range tri {
			if _, ok := remap[idx]; !ok {
				fresh++
			}
		}
		if len(cur.Vertices)+fresh > maxVertices {
			out = append(out, cur)
			cur = Mesh{}
			clear(remap)
		}
		for _, idx := range tri {
			j, ok := remap[idx]
			if !ok {
				j = len(cur.Vertices)
				remap[idx] = j
				cur.Vertices = append(cur.Vertices, m.Vertices[idx])
			}
			cur.Indices = append(cur.Indices, j)
		}
	}
	if len(cur.Indices) > 0 {
		out = append(out, cur)
	}
	return out
}

// Package hypothesis builds the candidate-face hypothesis graph H=(V,E,F)
// from a set of planar segments: a plane arrangement clipped to a
// bounding region, scored against each segment's alpha-shape coverage.
//
// The graph is stored as three flat slices rather than a pointer-linked
// structure, the same anti-cycle convention the teacher's design graph
// documents for its own Nodes/Edges bookkeeping: every reference between
// vertices, edges, and faces is an integer index into one of the three
// slices, never a pointer.
package hypothesis

import (
	"github.com/chazu/lignin/pkg/kernel/exact"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is a point where three or more arrangement planes meet, or a
// point on the bounding box. Its exact representation is the identity
// used to merge coincident vertices across planes; Pos is the one-way
// conversion to floating point for scoring and output.
type Vertex struct {
	Exact exact.Rat3
	Pos   r3.Vec
}

// Edge is an arrangement edge between two vertices, keyed by its exact
// endpoint pair. Faces lists the indices of every face incident to this
// edge; for every edge with two or more of them, a solution of
// pkg/selection's BIP selects exactly 0 or 2.
type Edge struct {
	VA, VB int
	Faces  []int
}

// Face is a single 2-cell of the arrangement on one supporting plane.
type Face struct {
	PlaneIndex int
	Polygon    exact.Polygon
	Vertices   []int // indices into Graph.Vertices, same order as Polygon.Vertices
	Edges      []int

	// Boundary marks a face carved from one of the bounding box's own six
	// planes rather than an input segment's supporting plane. Boundary
	// faces never carry data support; they exist only to let the
	// selector close an otherwise-open rim (spec.md §4.3 point 3).
	Boundary bool

	Supp float64
	Conf float64
	Area float64
}

// Cov returns the face's coverage term, conf(f)·area(f) (spec.md §4.2).
func (f Face) Cov() float64 {
	return f.Conf * f.Area
}

// Graph is the hypothesis graph H=(V,E,F).
type Graph struct {
	Vertices []Vertex
	Edges    []Edge
	Faces    []Face

	// AreaTotal is the total area of the alpha-shape meshes across all
	// input segments (spec.md §4.3's area_total), used by pkg/selection
	// as the coverage term's denominator.
	AreaTotal float64
}

// IsEmpty reports whether the arrangement produced no faces, the
// failure case of spec.md §4.2 ("fewer than two planes, or all parallel
// and non-coincident").
func (g *Graph) IsEmpty() bool {
	return g == nil || len(g.Faces) == 0
}

// vertexRegistry deduplicates exact vertices by their canonical key,
// assigning indices in first-seen order so that two runs over the same
// input (processed in the same plane order) produce identical indices.
type vertexRegistry struct {
	index map[string]int
	verts []Vertex
}

func newVertexRegistry() *vertexRegistry {
	return &vertexRegistry{index: make(map[string]int)}
}

func (r *vertexRegistry) intern(p exact.Rat3) int {
	key := p.Key()
	if i, ok := r.index[key]; ok {
		return i
	}
	i := len(r.verts)
	r.verts = append(r.verts, Vertex{Exact: p, Pos: toVec(p)})
	r.index[key] = i
	return i
}

func toVec(r exact.Rat3) r3.Vec {
	x, _ := r.X.Float64()
	y, _ := r.Y.Float64()
	z, _ := r.Z.Float64()
	return r3.Vec{X: x, Y: y, Z: z}
}

// edgeRegistry deduplicates edges by their unordered vertex-index pair,
// accumulating incident face indices (spec.md §4.2 step 6, "Merge edges
// identical across planes").
type edgeRegistry struct {
	index map[[2]int]int
	edges []Edge
}

func newEdgeRegistry() *edgeRegistry {
	return &edgeRegistry{index: make(map[[2]int]int)}
}

func (r *edgeRegistry) intern(va, vb, face int) int {
	key := [2]int{va, vb}
	if key[0] > key[1] {
		key[0], key[1] = key[1], key[0]
	}
	if i, ok := r.index[key]; ok {
		r.edges[i].Faces = append(r.edges[i].Faces, face)
		return i
	}
	i := len(r.edges)
	r.edges = append(r.edges, Edge{VA: va, VB: vb, Faces: []int{face}})
	r.index[key] = i
	return i
}

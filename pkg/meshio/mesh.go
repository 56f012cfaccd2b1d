// Package meshio defines PolyFit's output mesh representation and
// writers for it: a plain vertex/face form (spec.md §6.2), an OBJ
// writer, a 3MF writer (github.com/hpinc/go3mf), and an SVG diagnostic
// writer (github.com/ajstarks/svgo) for visualizing a single plane's
// arrangement.
package meshio

import "gonum.org/v1/gonum/spatial/r3"

// Mesh is the output polyhedral mesh: a vertex list and a face list,
// each face an ordered list of vertex indices (spec.md §6.2).
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][]int
}

// IsEmpty reports whether the mesh has no faces.
func (m Mesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// VertexCount returns the number of vertices.
func (m Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m Mesh) FaceCount() int {
	return len(m.Faces)
}

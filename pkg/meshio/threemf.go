package meshio

import (
	"io"

	"github.com/hpinc/go3mf"
	"github.com/pkg/errors"
)

// Write3MF writes m as a single-object 3MF package, via go3mf.
func Write3MF(w io.Writer, m Mesh) error {
	mesh := &go3mf.Mesh{}
	for _, v := range m.Vertices {
		mesh.Vertices.Vertex = append(mesh.Vertices.Vertex, go3mf.Point3D{float32(v.X), float32(v.Y), float32(v.Z)})
	}
	for _, face := range m.Faces {
		for _, tri := range triangulateFan(face) {
			mesh.Triangles.Triangle = append(mesh.Triangles.Triangle, go3mf.Triangle{V1: uint32(tri[0]), V2: uint32(tri[1]), V3: uint32(tri[2])})
		}
	}

	obj := &go3mf.Object{ID: 1, Mesh: mesh}
	model := &go3mf.Model{
		Resources: go3mf.Resources{Objects: []*go3mf.Object{obj}},
		Build:     go3mf.Build{Items: []*go3mf.Item{{ObjectID: 1}}},
	}

	if err := go3mf.NewEncoder(w).Encode(model); err != nil {
		return errors.Wrap(err, "meshio: encode 3mf")
	}
	return nil
}

// triangulateFan fan-triangulates a convex polygon face (vertex indices
// into the mesh's vertex list) from its first vertex, the same
// convention pkg/kernel/exact.Polygon.AreaVector uses.
func triangulateFan(face []int) [][3]int {
	if len(face) < 3 {
		return nil
	}
	out := make([][3]int, 0, len(face)-2)
	for i := 1; i < len(face)-1; i++ {
		out = append(out, [3]int{face[0], face[i], face[i+1]})
	}
	return out
}

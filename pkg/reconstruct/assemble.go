package reconstruct

import (
	"github.com/chazu/lignin/pkg/hypothesis"
	"github.com/chazu/lignin/pkg/meshio"
	"github.com/chazu/lignin/pkg/selection"
	"gonum.org/v1/gonum/spatial/r3"
)

type edgeNeighbor struct {
	face, edge int
}

// assembleMesh walks the selected faces and emits the output mesh
// (spec.md §4.3 "Output assembly"). Face winding is made consistent
// within each connected component by a breadth-first propagation from
// an arbitrary seed face, per spec.md §9's resolution of the
// orientation open question: adjacent faces sharing an edge must
// traverse it in opposite directions.
func assembleMesh(g *hypothesis.Graph, result selection.Result) *meshio.Mesh {
	selected := make(map[int]bool, len(result.SelectedFaces))
	for _, f := range result.SelectedFaces {
		selected[f] = true
	}

	adj := make(map[int][]edgeNeighbor)
	for e, edge := range g.Edges {
		var sel []int
		for _, f := range edge.Faces {
			if selected[f] {
				sel = append(sel, f)
			}
		}
		if len(sel) == 2 {
			adj[sel[0]] = append(adj[sel[0]], edgeNeighbor{face: sel[1], edge: e})
			adj[sel[1]] = append(adj[sel[1]], edgeNeighbor{face: sel[0], edge: e})
		}
	}

	reversed := make(map[int]bool)
	visited := make(map[int]bool)
	for _, seed := range result.SelectedFaces {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		queue := []int{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, nb := range adj[cur] {
				if visited[nb.face] {
					continue
				}
				edge := g.Edges[nb.edge]
				rawDirA := edgeDirectionInFace(g.Faces[cur], edge.VA, edge.VB)
				effectiveDirA := rawDirA != reversed[cur]
				rawDirB := edgeDirectionInFace(g.Faces[nb.face], edge.VA, edge.VB)
				reversed[nb.face] = rawDirB != !effectiveDirA

				visited[nb.face] = true
				queue = append(queue, nb.face)
			}
		}
	}

	vertexRemap := make(map[int]int)
	var outVerts []r3.Vec
	outFaces := make([][]int, 0, len(result.SelectedFaces))

	for _, f := range result.SelectedFaces {
		face := g.Faces[f]
		verts := face.Vertices
		if reversed[f] {
			verts = reverseInts(verts)
		}
		outFace := make([]int, len(verts))
		for k, vi := range verts {
			oi, ok := vertexRemap[vi]
			if !ok {
				oi = len(outVerts)
				outVerts = append(outVerts, g.Vertices[vi].Pos)
				vertexRemap[vi] = oi
			}
			outFace[k] = oi
		}
		outFaces = append(outFaces, outFace)
	}

	return &meshio.Mesh{Vertices: outVerts, Faces: outFaces}
}

// edgeDirectionInFace reports whether face's boundary visits va
// immediately followed by vb (rather than vb followed by va).
func edgeDirectionInFace(face hypothesis.Face, va, vb int) bool {
	n := len(face.Vertices)
	for i := 0; i < n; i++ {
		if face.Vertices[i] == va && face.Vertices[(i+1)%n] == vb {
			return true
		}
	}
	return false
}

func reverseInts(in []int) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

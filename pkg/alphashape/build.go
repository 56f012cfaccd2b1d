package alphashape

import (
	"github.com/chazu/lignin/pkg/segment"
	"gonum.org/v1/gonum/spatial/r3"
)

// Build extracts the alpha-shape boundary mesh for a segment, per
// spec.md §4.1: project to 2D, Delaunay-triangulate, classify each
// triangle against α by circumradius, keep interior and regular
// triangles, and lift survivors back to 3D.
//
// alphaScale is the c in the auto-α policy α≔c·d̄; pass 0 to use
// DefaultAlphaScale. A caller-supplied alpha overrides the auto policy
// entirely when alpha > 0.
func Build(s segment.Segment, alpha, alphaScale float64) Mesh {
	pts2 := make([]Point2, len(s.Points))
	for i, p := range s.Points {
		xy := s.Frame.To2D(p.Position)
		pts2[i] = Point2{X: xy[0], Y: xy[1], Index: i}
	}

	tri, err := Triangulate(pts2)
	if err != nil || len(tri.Triangles) == 0 {
		return Mesh{}
	}

	if alpha <= 0 {
		scale := alphaScale
		if scale <= 0 {
			scale = DefaultAlphaScale
		}
		alpha = scale * MeanNearestNeighborSpacing2D(pts2)
		if alpha <= 0 {
			return Mesh{}
		}
	}

	lift := func(p Point2) r3.Vec { return s.Frame.To3D([2]float64{p.X, p.Y}) }

	var out Mesh
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		ia, ib, ic := tri.Triangles[i], tri.Triangles[i+1], tri.Triangles[i+2]
		a, b, c := pts2[ia], pts2[ib], pts2[ic]
		if circumradius(a, b, c) > alpha {
			continue // exterior: circumcircle doesn't fit within α of the data
		}
		out.Triangles = append(out.Triangles, Triangle3{
			V3: [3]r3.Vec{lift(a), lift(b), lift(c)},
			V2: [3][2]float64{{a.X, a.Y}, {b.X, b.Y}, {c.X, c.Y}},
		})
	}
	return out
}

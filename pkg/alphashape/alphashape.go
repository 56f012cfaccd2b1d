package alphashape

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultAlphaScale is the default multiplier c in spec.md §4.1's
// auto-α policy, α ≔ c·d̄.
const DefaultAlphaScale = 5.0

// Triangle3 is a single alpha-shape triangle, lifted back to 3D, plus
// the 2D coordinates it was built from (kept for fast containment
// tests when scoring candidate faces on the same plane).
type Triangle3 struct {
	V3 [3]r3.Vec
	V2 [3][2]float64
}

// Mesh is the alpha-shape boundary mesh Aₛ for a planar segment: the
// retained Delaunay triangles approximating the region actually
// covered by the segment's points.
type Mesh struct {
	Triangles []Triangle3
}

// IsEmpty reports whether the mesh has no triangles, the condition
// spec.md §4.1 "Failure" maps to zero coverage everywhere on the plane.
func (m Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// TotalArea returns the sum of the mesh's triangle areas, in the
// segment's 2D frame (which is isometric to 3D since the frame is
// orthonormal, so 2D area equals 3D area).
func (m Mesh) TotalArea() float64 {
	var total float64
	for _, t := range m.Triangles {
		total += triangleArea2D(t.V2)
	}
	return total
}

// MeanNearestNeighborSpacing2D returns d̄, the mean distance from each
// projected point to its nearest neighbor among the others. Segments
// feeding alpha-shape extraction are single planar patches, typically
// small enough that the O(n²) scan is not a bottleneck; pkg/hypothesis
// uses an rtreego index instead where point counts are larger and the
// query shape (bounding-box containment, not nearest-neighbor) is a
// better fit for an R-tree than a k-d tree.
func MeanNearestNeighborSpacing2D(points []Point2) float64 {
	n := len(points)
	if n < 2 {
		return 0
	}
	var total float64
	for i := range points {
		best := -1.0
		for j := range points {
			if i == j {
				continue
			}
			dx := points[i].X - points[j].X
			dy := points[i].Y - points[j].Y
			d2 := dx*dx + dy*dy
			if best < 0 || d2 < best {
				best = d2
			}
		}
		total += math.Sqrt(best)
	}
	return total / float64(n)
}

func triangleArea2D(v [3][2]float64) float64 {
	a := (v[1][0]-v[0][0])*(v[2][1]-v[0][1]) - (v[2][0]-v[0][0])*(v[1][1]-v[0][1])
	if a < 0 {
		a = -a
	}
	return a / 2
}

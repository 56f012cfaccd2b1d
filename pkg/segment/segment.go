// Package segment defines the planar segment data model: a set of point
// samples believed to lie on a common supporting plane, plus the 2D
// frame used to embed them for alpha-shape work (spec.md §3).
package segment

import (
	"fmt"
	"math"

	"github.com/chazu/lignin/pkg/kernel/inexact"
	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a single point sample: position, optional normal and color,
// and the index of the segment it belongs to (-1 if unassigned). A
// plain index, rather than a pointer back into a Segment, keeps Point
// trivially copyable — the teacher's flat, index-based storage
// convention (pkg/graph's Nodes/Edges maps keyed by ID rather than
// pointer-linked) generalizes here to "index into a slice" since
// segments have no need for a map.
type Point struct {
	Position     r3.Vec
	Normal       *r3.Vec
	Color        *[3]uint8
	SegmentIndex int
}

// Frame is a 2D orthonormal basis embedded in a supporting plane, used
// to project member points to 2D for Delaunay triangulation and
// alpha-shape extraction.
type Frame struct {
	Origin r3.Vec
	U, V   r3.Vec // orthonormal, both perpendicular to the plane normal
}

// NewFrame builds an arbitrary, but deterministic, orthonormal frame on
// a plane with the given unit normal, anchored at origin.
func NewFrame(origin, normal r3.Vec) Frame {
	n := r3.Unit(normal)
	// Use the world X axis as the reference, or Y when n is nearly
	// parallel to X, to avoid a degenerate cross product.
	ref := r3.Vec{X: 1, Y: 0, Z: 0}
	if math.Abs(n.X) > 0.9 {
		ref = r3.Vec{X: 0, Y: 1, Z: 0}
	}
	u := r3.Unit(r3.Cross(ref, n))
	v := r3.Cross(n, u)
	return Frame{Origin: origin, U: u, V: v}
}

// To2D projects a 3D point into the frame's 2D coordinates.
func (f Frame) To2D(p r3.Vec) [2]float64 {
	d := r3.Sub(p, f.Origin)
	return [2]float64{r3.Dot(d, f.U), r3.Dot(d, f.V)}
}

// To3D lifts a 2D frame coordinate back to 3D.
func (f Frame) To3D(p [2]float64) r3.Vec {
	return r3.Add(f.Origin, r3.Add(r3.Scale(p[0], f.U), r3.Scale(p[1], f.V)))
}

// Segment is a planar subset of the input point cloud: its member
// points, supporting plane, 2D frame, and optional color. It holds no
// alpha-shape mesh; pkg/alphashape.Build computes one from a Segment —
// the segment package itself only knows about the plane-fit and framing,
// matching the teacher's convention of small, single-purpose packages
// (pkg/kernel knows geometry, pkg/graph knows design structure — never
// both in one file).
type Segment struct {
	Points []Point
	Plane  inexact.Plane
	Frame  Frame
	Color  *[3]uint8
}

// New builds a Segment from member points and a supporting plane,
// deriving a deterministic 2D frame from the points' centroid and the
// plane's normal. Per spec.md §6.1 the plane's normal must already be unit
// length; New does not re-normalize it, so a malformed plane surfaces
// as a validation error in pkg/reconstruct rather than being silently
// corrected here.
func New(points []Point, plane inexact.Plane) Segment {
	centroid := Centroid(points)
	return Segment{
		Points: points,
		Plane:  plane,
		Frame:  NewFrame(centroid, plane.Normal),
	}
}

// Centroid returns the arithmetic mean position of points. Returns the
// zero vector for an empty slice.
func Centroid(points []Point) r3.Vec {
	if len(points) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for _, p := range points {
		sum = r3.Add(sum, p.Position)
	}
	return r3.Scale(1/float64(len(points)), sum)
}

// Validate reports an error if the segment does not satisfy spec.md
// §6.1's input contract: at least 3 points, unit-normal plane, and
// every member point within tolerance of the plane.
func (s Segment) Validate(tolerance float64) error {
	if len(s.Points) < 3 {
		return fmt.Errorf("segment: need >= 3 points, got %d", len(s.Points))
	}
	n := s.Plane.Normal
	length := r3.Norm(n)
	if math.Abs(length-1) > 1e-6 {
		return fmt.Errorf("segment: plane normal is not unit length (|n|=%.6f)", length)
	}
	for i, p := range s.Points {
		d := s.Plane.SignedDistance(p.Position)
		if math.Abs(d) > tolerance {
			return fmt.Errorf("segment: point %d is %.6g from its supporting plane, exceeds tolerance %.6g", i, d, tolerance)
		}
	}
	return nil
}

// MeanNearestNeighborSpacing returns the mean 3D distance from each
// point to its nearest neighbor among the others, used by
// pkg/hypothesis for the default residual tolerance (spec.md §4.2). It
// is the same brute-force O(n²) scan as alphashape's
// MeanNearestNeighborSpacing2D, duplicated here in 3D rather than
// shared because the two packages project to different 2D frames and
// callers of this one (default residual tolerance) only ever see a
// handful of points.
func MeanNearestNeighborSpacing(points []Point) float64 {
	n := len(points)
	if n < 2 {
		return 0
	}
	var total float64
	for i := range points {
		best := math.Inf(1)
		for j := range points {
			if i == j {
				continue
			}
			d := r3.Norm(r3.Sub(points[i].Position, points[j].Position))
			if d < best {
				best = d
			}
		}
		total += best
	}
	return total / float64(n)
}

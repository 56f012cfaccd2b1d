// Package alphashape extracts a 2D alpha-shape boundary mesh for a
// planar segment: the region of the segment's plane actually covered
// by its member points (spec.md §4.1).
package alphashape

import "math"

// Point2 is a 2D point with its originating point-cloud index, so
// lifted triangles can be traced back to member points.
type Point2 struct {
	X, Y  float64
	Index int
}

// Triangulation is a 2D Delaunay triangulation: Triangles holds vertex
// indices into Points, three per triangle, grouped as consecutive
// entries — the same flat-index convention used by the retrieval
// pack's own Delaunay implementation (vertex indices rather than
// pointer-linked triangle structs).
type Triangulation struct {
	Points    []Point2
	Triangles []int
}

// Triangulate computes the Delaunay triangulation of a 2D point set
// using incremental insertion, in input order, with a Bowyer–Watson
// cavity rebuild. This is a from-scratch, didactic implementation rather than
// a production flip-based triangulator (no O(n log n) guarantee), which
// is acceptable here since alpha-shape input segments are the points
// of a single planar patch, not whole-scene point clouds.
func Triangulate(points []Point2) (*Triangulation, error) {
	n := len(points)
	if n < 3 {
		return &Triangulation{Points: points}, nil
	}

	// Build an enclosing super-triangle so every input point is always
	// strictly inside at least one triangle of the working set.
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	dx, dy := maxX-minX, maxY-minY
	if dx == 0 && dy == 0 {
		return &Triangulation{Points: points}, nil
	}
	span := math.Max(dx, dy)*10 + 1

	work := make([]Point2, n, n+3)
	copy(work, points)
	superA := Point2{X: minX - span, Y: minY - span, Index: -1}
	superB := Point2{X: maxX + span*2, Y: minY - span, Index: -1}
	superC := Point2{X: minX - span, Y: maxY + span*2, Index: -1}
	work = append(work, superA, superB, superC)

	type tri struct{ a, b, c int }
	triangles := []tri{{n, n + 1, n + 2}}

	for i := 0; i < n; i++ {
		p := work[i]

		var bad []int
		for ti, t := range triangles {
			if inCircumcircle(work[t.a], work[t.b], work[t.c], p) {
				bad = append(bad, ti)
			}
		}
		if len(bad) == 0 {
			continue
		}

		type edge struct{ u, v int }
		count := make(map[edge]int)
		addEdge := func(u, v int) {
			if u > v {
				u, v = v, u
			}
			count[edge{u, v}]++
		}
		for _, ti := range bad {
			t := triangles[ti]
			addEdge(t.a, t.b)
			addEdge(t.b, t.c)
			addEdge(t.c, t.a)
		}

		var boundary []edge
		for e, c := range count {
			if c == 1 {
				boundary = append(boundary, e)
			}
		}

		kept := make([]tri, 0, len(triangles))
		badSet := make(map[int]bool, len(bad))
		for _, ti := range bad {
			badSet[ti] = true
		}
		for ti, t := range triangles {
			if !badSet[ti] {
				kept = append(kept, t)
			}
		}
		for _, e := range boundary {
			kept = append(kept, tri{e.u, e.v, i})
		}
		triangles = kept
	}

	out := &Triangulation{Points: points}
	for _, t := range triangles {
		if t.a >= n || t.b >= n || t.c >= n {
			continue // discard triangles still touching the super-triangle
		}
		out.Triangles = append(out.Triangles, t.a, t.b, t.c)
	}
	return out, nil
}

// inCircumcircle reports whether point d lies strictly inside the
// circumcircle of triangle (a,b,c).
func inCircumcircle(a, b, c, d Point2) bool {
	ax, ay := a.X-d.X, a.Y-d.Y
	bx, by := b.X-d.X, b.Y-d.Y
	cx, cy := c.X-d.X, c.Y-d.Y

	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)

	// Orientation of (a,b,c) determines the sign convention.
	orient := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
	if orient < 0 {
		det = -det
	}
	return det > 1e-12
}

// circumradius returns the circumradius of triangle (a,b,c).
func circumradius(a, b, c Point2) float64 {
	ax, ay := b.X-a.X, b.Y-a.Y
	bx, by := c.X-a.X, c.Y-a.Y
	d := 2 * (ax*by - ay*bx)
	if math.Abs(d) < 1e-15 {
		return math.Inf(1)
	}
	ux := (by*(ax*ax+ay*ay) - ay*(bx*bx+by*by)) / d
	uy := (ax*(bx*bx+by*by) - bx*(ax*ax+ay*ay)) / d
	return math.Hypot(ux, uy)
}

package hypothesis

import (
	"math"

	"github.com/chazu/lignin/pkg/alphashape"
	"github.com/chazu/lignin/pkg/kernel/exact"
	"github.com/chazu/lignin/pkg/kernel/inexact"
	"github.com/chazu/lignin/pkg/segment"
)

// scoreFaces fills in Supp, Conf, and Area for every face, per spec.md
// §4.2's per-face scoring rules. Candidate-face-to-point assignment for
// supp(f) is accelerated per plane with an rtreego.Rtree of face
// bounding boxes, rather than testing every member point against every
// candidate face's polygon directly.
func scoreFaces(g *Graph, inputs []Input, cfg Config) {
	eps := cfg.ResidualTolerance
	if eps <= 0 {
		eps = defaultEpsMult * meanSpacing(inputs)
		if eps <= 0 {
			eps = 1 // degenerate single-point segments: avoid division by zero
		}
	}

	byPlane := make(map[int][]int)
	for i, f := range g.Faces {
		g.Faces[i].Area = inexact.Area(f.Polygon)
		if f.Boundary {
			continue // no segment backs a bounding-box face: zero reward either way
		}
		byPlane[f.PlaneIndex] = append(byPlane[f.PlaneIndex], i)
	}

	for planeIdx, faceIdxs := range byPlane {
		in := inputs[planeIdx]
		polys2D := make([][][2]float64, len(faceIdxs))
		for k, fi := range faceIdxs {
			polys2D[k] = projectPolygon2D(g.Faces[fi].Polygon, in.Segment)
		}
		idx := newFaceIndex(polys2D)

		for _, p := range in.Segment.Points {
			d := in.Segment.Plane.SignedDistance(p.Position)
			r := 1 - (d*d)/(eps*eps)
			if r <= 0 {
				continue
			}
			xy := in.Segment.Frame.To2D(p.Position)
			for _, k := range idx.candidates(xy) {
				if pointInConvexPolygon(xy, polys2D[k]) {
					g.Faces[faceIdxs[k]].Supp += r
					break // the arrangement's cells don't overlap
				}
			}
		}

		for k, fi := range faceIdxs {
			g.Faces[fi].Conf = confidenceTerm(polys2D[k], g.Faces[fi].Area, in.Alpha)
		}
	}

	for _, in := range inputs {
		g.AreaTotal += in.Alpha.TotalArea()
	}
}

func meanSpacing(inputs []Input) float64 {
	var total, n float64
	for _, in := range inputs {
		d := segment.MeanNearestNeighborSpacing(in.Segment.Points)
		if d > 0 {
			total += d
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / n
}

// projectPolygon2D converts a face's exact polygon to the 2D coordinates
// of its supporting segment's frame.
func projectPolygon2D(poly exact.Polygon, s segment.Segment) [][2]float64 {
	out := make([][2]float64, len(poly.Vertices))
	for i, v := range poly.Vertices {
		out[i] = s.Frame.To2D(inexact.ToVec(v))
	}
	return out
}

// confidenceTerm computes conf(f): the fraction of poly2D's area covered
// by alpha's triangles, via 2D polygon clipping.
func confidenceTerm(poly2D [][2]float64, faceArea float64, alpha alphashape.Mesh) float64 {
	if faceArea <= 0 || alpha.IsEmpty() {
		return 0
	}
	var covered float64
	for _, tri := range alpha.Triangles {
		clipped := clipConvex(tri.V2[:], poly2D)
		covered += polygonArea2D(clipped)
	}
	frac := covered / faceArea
	if frac > 1 {
		frac = 1
	}
	return frac
}

// pointInConvexPolygon reports whether p lies inside (or on the
// boundary of) the convex polygon poly, given in consistent winding
// order, via a same-side-of-every-edge test.
func pointInConvexPolygon(p [2]float64, poly [][2]float64) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	var sign float64
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
		if math.Abs(cross) < 1e-12 {
			continue
		}
		if sign == 0 {
			sign = cross
			continue
		}
		if (cross > 0) != (sign > 0) {
			return false
		}
	}
	return true
}

// clipConvex clips convex polygon subject against convex polygon clip,
// both given as ordered 2D vertex lists, via Sutherland–Hodgman.
func clipConvex(subject, clip [][2]float64) [][2]float64 {
	out := subject
	n := len(clip)
	for i := 0; i < n && len(out) > 0; i++ {
		a, b := clip[i], clip[(i+1)%n]
		out = clipEdge(out, a, b)
	}
	return out
}

func clipEdge(poly [][2]float64, a, b [2]float64) [][2]float64 {
	var out [][2]float64
	n := len(poly)
	for i := 0; i < n; i++ {
		cur := poly[i]
		prev := poly[(i-1+n)%n]
		curIn := sideOf(a, b, cur) >= 0
		prevIn := sideOf(a, b, prev) >= 0
		if curIn {
			if !prevIn {
				out = append(out, lineIntersect(prev, cur, a, b))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, lineIntersect(prev, cur, a, b))
		}
	}
	return out
}

func sideOf(a, b, p [2]float64) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

func lineIntersect(p1, p2, a, b [2]float64) [2]float64 {
	d1 := sideOf(a, b, p1)
	d2 := sideOf(a, b, p2)
	t := d1 / (d1 - d2)
	return [2]float64{p1[0] + t*(p2[0]-p1[0]), p1[1] + t*(p2[1]-p1[1])}
}

func polygonArea2D(poly [][2]float64) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		sum += a[0]*b[1] - b[0]*a[1]
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

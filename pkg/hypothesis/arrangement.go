package hypothesis

import (
	"math/big"

	"github.com/chazu/lignin/pkg/alphashape"
	"github.com/chazu/lignin/pkg/kernel/exact"
	"github.com/chazu/lignin/pkg/kernel/inexact"
	"github.com/chazu/lignin/pkg/segment"
	"gonum.org/v1/gonum/spatial/r3"
)

// Input pairs a planar segment with its alpha-shape coverage mesh, the
// two pieces of per-plane data the arrangement and scoring steps need.
type Input struct {
	Segment segment.Segment
	Alpha   alphashape.Mesh
}

// Config controls arrangement construction and scoring.
type Config struct {
	// Margin is the fraction of the bounding box diagonal to inflate B
	// by before clipping (spec.md §4.2 step 1). Zero means the default
	// of 0.05.
	Margin float64
	// ResidualTolerance is ε in the support term supp(f). Zero means
	// auto: 3 times the mean point spacing across all input segments
	// (spec.md §4.2, "default 3·average point spacing").
	ResidualTolerance float64
	// IncludeBBoxFaces adds the bounding box's own six planes to the
	// arrangement as additional candidate planes (spec.md §6.4's
	// include_bbox_faces). Without it, a rim edge bordering only one
	// real candidate face is left unconstrained (an open boundary);
	// with it, that same edge gains a second, zero-reward candidate and
	// the selector is free to close it or not.
	IncludeBBoxFaces bool
}

const (
	defaultMargin  = 0.05
	defaultEpsMult = 3.0
)

// Generate builds the hypothesis graph from a set of planar segments,
// per spec.md §4.2: bounding box, per-plane initial polygon, pairwise
// plane-line subdivision, vertex/edge/face registration, and per-face
// scoring.
func Generate(inputs []Input, cfg Config) (*Graph, error) {
	if len(inputs) < 2 {
		return &Graph{}, nil
	}

	margin := cfg.Margin
	if margin <= 0 {
		margin = defaultMargin
	}

	var allPoints []r3.Vec
	for _, in := range inputs {
		for _, p := range in.Segment.Points {
			allPoints = append(allPoints, p.Position)
		}
	}
	box := inexact.BoundingBox(allPoints).Inflate(margin)
	boxPlanes := box.FacePlanes()

	numInputPlanes := len(inputs)
	planes := make([]exact.Plane, numInputPlanes)
	boundary := make([]bool, numInputPlanes)
	for i, in := range inputs {
		planes[i] = in.Segment.Plane.ToExact()
	}
	if cfg.IncludeBBoxFaces {
		for _, bp := range boxPlanes {
			planes = append(planes, bp)
			boundary = append(boundary, true)
		}
	}

	cells := make([][]exact.Polygon, len(planes))
	for i, p := range planes {
		initial := initialPolygon(p, box)
		selfBoxIdx := -1
		if boundary[i] {
			selfBoxIdx = i - numInputPlanes
		}
		for bi, bp := range boxPlanes {
			if bi == selfBoxIdx {
				continue // a box plane never clips against itself
			}
			initial = initial.ClipHalfspace(bp)
		}
		if len(initial.Vertices) < 3 {
			cells[i] = nil
			continue
		}
		cells[i] = []exact.Polygon{initial}
	}

	inputsIntersect := false
	for i := range planes {
		for j := range planes {
			if i == j {
				continue
			}
			line, err := exact.IntersectPlanes(planes[i], planes[j])
			if err != nil {
				continue // parallel: ℓᵢⱼ empty, no subdivision contributed
			}
			if i < numInputPlanes && j < numInputPlanes {
				inputsIntersect = true
			}
			var next []exact.Polygon
			for _, cell := range cells[i] {
				left, right, ok := exact.SplitByLine(cell, planes[i], line)
				if !ok {
					next = append(next, cell)
					continue
				}
				next = append(next, left, right)
			}
			cells[i] = next
		}
	}
	if !inputsIntersect {
		// Every pair of input planes is parallel: no arrangement forms,
		// and the graph is empty.
		return &Graph{}, nil
	}

	g := &Graph{}
	vr := newVertexRegistry()
	er := newEdgeRegistry()

	for planeIdx, polys := range cells {
		for _, poly := range polys {
			if len(poly.Vertices) < 3 {
				continue
			}
			faceIdx := len(g.Faces)
			vIdx := make([]int, len(poly.Vertices))
			for k, v := range poly.Vertices {
				vIdx[k] = vr.intern(v)
			}
			edgeIdx := make([]int, len(vIdx))
			for k := range vIdx {
				a, b := vIdx[k], vIdx[(k+1)%len(vIdx)]
				edgeIdx[k] = er.intern(a, b, faceIdx)
			}
			g.Faces = append(g.Faces, Face{
				PlaneIndex: planeIdx,
				Polygon:    poly,
				Vertices:   vIdx,
				Edges:      edgeIdx,
				Boundary:   boundary[planeIdx],
			})
		}
	}
	g.Vertices = vr.verts
	g.Edges = er.edges

	scoreFaces(g, inputs, cfg)

	return g, nil
}

// initialPolygon builds a convex quad on plane p, large enough to
// strictly contain p's intersection with box, by spanning two exact
// in-plane directions (obtained as cross products of the plane normal
// with a non-parallel coordinate axis, which are perpendicular to the
// normal by construction and therefore lie in the plane) from one
// exact point on the plane.
func initialPolygon(p exact.Plane, box inexact.Box) exact.Polygon {
	origin := pointOnPlane(p)
	normal := p.Normal()

	axis := exact.NewRat3(1, 0, 0)
	if big0, big1, big2 := absRat(normal.X), absRat(normal.Y), absRat(normal.Z); big0.Cmp(big1) >= 0 && big0.Cmp(big2) >= 0 {
		axis = exact.NewRat3(0, 1, 0)
	}
	d1 := normal.Cross(axis)
	d2 := normal.Cross(d1)

	scale := new(big.Rat).SetFloat64(box.Diagonal()*1000 + 1)
	d1 = d1.Scale(scale)
	d2 = d2.Scale(scale)

	return exact.Polygon{Vertices: []exact.Rat3{
		origin.Add(d1).Add(d2),
		origin.Sub(d1).Add(d2),
		origin.Sub(d1).Sub(d2),
		origin.Add(d1).Sub(d2),
	}}
}

// pointOnPlane returns an exact point satisfying p's equation, by
// setting the two non-pivot coordinates to zero and solving for the
// third along whichever axis has the largest-magnitude coefficient.
func pointOnPlane(p exact.Plane) exact.Rat3 {
	zero := new(big.Rat)
	ax, ay, az := absRat(p.A), absRat(p.B), absRat(p.C)
	switch {
	case az.Cmp(ax) >= 0 && az.Cmp(ay) >= 0:
		z := new(big.Rat).Quo(new(big.Rat).Neg(p.D), p.C)
		return exact.Rat3{X: zero, Y: zero, Z: z}
	case ay.Cmp(ax) >= 0:
		y := new(big.Rat).Quo(new(big.Rat).Neg(p.D), p.B)
		return exact.Rat3{X: zero, Y: y, Z: zero}
	default:
		x := new(big.Rat).Quo(new(big.Rat).Neg(p.D), p.A)
		return exact.Rat3{X: x, Y: zero, Z: zero}
	}
}

func absRat(r *big.Rat) *big.Rat {
	if r.Sign() < 0 {
		return new(big.Rat).Neg(r)
	}
	return r
}

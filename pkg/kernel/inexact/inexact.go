// Package inexact provides the floating-point half of PolyFit's
// exact/inexact kernel split (spec.md §9). Scoring, alpha-shape
// construction, and mesh emission all happen here, in terms of
// gonum.org/v1/gonum/spatial/r3.Vec; arrangement construction itself
// stays in pkg/kernel/exact and is converted once, at the boundary.
package inexact

import (
	"math"

	"github.com/chazu/lignin/pkg/kernel/exact"
	"gonum.org/v1/gonum/spatial/r3"
)

// ToVec converts an exact point to its floating-point approximation.
// This is the one-way conversion spec.md §9 calls out: "mixing exact
// outputs into LP coefficients must go through an explicit, documented
// conversion" — every LP coefficient that originates from exact
// geometry (areas, residuals) passes through this function or Area.
func ToVec(r exact.Rat3) r3.Vec {
	xf, _ := r.X.Float64()
	yf, _ := r.Y.Float64()
	zf, _ := r.Z.Float64()
	return r3.Vec{X: xf, Y: yf, Z: zf}
}

// ToPolygon converts an exact polygon boundary to floating-point.
func ToPolygon(p exact.Polygon) []r3.Vec {
	out := make([]r3.Vec, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = ToVec(v)
	}
	return out
}

// Area returns the floating-point area of an exact polygon, taking the
// square root that pkg/kernel/exact deliberately avoids.
func Area(p exact.Polygon) float64 {
	return 0.5 * r3.Norm(ToVec(p.AreaVector()))
}

// Plane is the floating-point supporting plane: unit normal (A,B,C) and
// signed offset D such that Ax+By+Cz+D≈0 for member points.
type Plane struct {
	Normal r3.Vec
	D      float64
}

// NewPlane builds a unit-normal Plane, normalizing (a,b,c) if it is not
// already unit length.
func NewPlane(a, b, c, d float64) Plane {
	n := r3.Vec{X: a, Y: b, Z: c}
	length := r3.Norm(n)
	if length == 0 {
		return Plane{Normal: n, D: d}
	}
	return Plane{Normal: r3.Scale(1/length, n), D: d / length}
}

// SignedDistance returns the signed distance of p to the plane.
func (pl Plane) SignedDistance(p r3.Vec) float64 {
	return r3.Dot(pl.Normal, p) + pl.D
}

// ToExact converts the plane to its exact-rational representation for
// use in arrangement construction.
func (pl Plane) ToExact() exact.Plane {
	return exact.NewPlaneFromFloats(pl.Normal.X, pl.Normal.Y, pl.Normal.Z, pl.D)
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max r3.Vec
}

// Diagonal returns the box's diagonal length.
func (b Box) Diagonal() float64 {
	return r3.Norm(r3.Sub(b.Max, b.Min))
}

// Inflate returns a box grown by margin (a fraction of the diagonal) on
// every side, matching spec.md §4.2 step 1's "inflated by a small
// margin (default 5% of diagonal)".
func (b Box) Inflate(margin float64) Box {
	d := b.Diagonal() * margin
	grow := r3.Vec{X: d, Y: d, Z: d}
	return Box{Min: r3.Sub(b.Min, grow), Max: r3.Add(b.Max, grow)}
}

// BoundingBox computes the axis-aligned bounding box of a point set.
func BoundingBox(points []r3.Vec) Box {
	if len(points) == 0 {
		return Box{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = r3.Vec{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y), Z: math.Min(min.Z, p.Z)}
		max = r3.Vec{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y), Z: math.Max(max.Z, p.Z)}
	}
	return Box{Min: min, Max: max}
}

// FacePlanes returns the six outward-facing half-space planes (as
// exact.Plane, Eval(x)<=0 meaning "inside") bounding the box. These
// are what pkg/hypothesis clips each supporting plane's initial
// polygon against, per spec.md §4.2 step 2.
func (b Box) FacePlanes() []exact.Plane {
	return []exact.Plane{
		NewPlane(-1, 0, 0, b.Min.X).ToExact(), // x >= min.X
		NewPlane(1, 0, 0, -b.Max.X).ToExact(), // x <= max.X
		NewPlane(0, -1, 0, b.Min.Y).ToExact(),
		NewPlane(0, 1, 0, -b.Max.Y).ToExact(),
		NewPlane(0, 0, -1, b.Min.Z).ToExact(),
		NewPlane(0, 0, 1, -b.Max.Z).ToExact(),
	}
}

// Contains reports whether p lies within the box (inclusive).
func (b Box) Contains(p r3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Package exact provides exact-rational geometric predicates and
// constructions for plane arrangement construction. It is the only place
// in PolyFit where exact arithmetic is required: plane–plane–plane
// intersection, polygon splitting, and half-space clipping must be exact
// so that the hypothesis graph's edge and vertex identities are stable
// across planes that meet in the same line or point.
//
// Nothing in this package performs scoring, rendering, or statistics —
// those operations convert to pkg/kernel/inexact first (see inexact.ToVec).
package exact

import (
	"fmt"
	"math/big"
)

// Rat3 is an exact point or vector in ℝ³, represented with arbitrary
// precision rational components.
type Rat3 struct {
	X, Y, Z *big.Rat
}

// NewRat3 builds a Rat3 from float64 components. Floats from point-cloud
// input are exactly representable in binary floating point, so the
// conversion to *big.Rat is lossless.
func NewRat3(x, y, z float64) Rat3 {
	return Rat3{X: new(big.Rat).SetFloat64(x), Y: new(big.Rat).SetFloat64(y), Z: new(big.Rat).SetFloat64(z)}
}

func ratZero() *big.Rat { return new(big.Rat) }

// Add returns r+o.
func (r Rat3) Add(o Rat3) Rat3 {
	return Rat3{
		X: ratZero().Add(r.X, o.X),
		Y: ratZero().Add(r.Y, o.Y),
		Z: ratZero().Add(r.Z, o.Z),
	}
}

// Sub returns r-o.
func (r Rat3) Sub(o Rat3) Rat3 {
	return Rat3{
		X: ratZero().Sub(r.X, o.X),
		Y: ratZero().Sub(r.Y, o.Y),
		Z: ratZero().Sub(r.Z, o.Z),
	}
}

// Scale returns r scaled by a rational factor.
func (r Rat3) Scale(s *big.Rat) Rat3 {
	return Rat3{
		X: ratZero().Mul(r.X, s),
		Y: ratZero().Mul(r.Y, s),
		Z: ratZero().Mul(r.Z, s),
	}
}

// Dot returns the exact dot product r·o.
func (r Rat3) Dot(o Rat3) *big.Rat {
	sum := ratZero().Mul(r.X, o.X)
	sum.Add(sum, ratZero().Mul(r.Y, o.Y))
	sum.Add(sum, ratZero().Mul(r.Z, o.Z))
	return sum
}

// Cross returns the exact cross product r×o.
func (r Rat3) Cross(o Rat3) Rat3 {
	return Rat3{
		X: ratZero().Sub(ratZero().Mul(r.Y, o.Z), ratZero().Mul(r.Z, o.Y)),
		Y: ratZero().Sub(ratZero().Mul(r.Z, o.X), ratZero().Mul(r.X, o.Z)),
		Z: ratZero().Sub(ratZero().Mul(r.X, o.Y), ratZero().Mul(r.Y, o.X)),
	}
}

// Equal reports whether r and o are exactly the same point.
func (r Rat3) Equal(o Rat3) bool {
	return r.X.Cmp(o.X) == 0 && r.Y.Cmp(o.Y) == 0 && r.Z.Cmp(o.Z) == 0
}

// Key returns a canonical string encoding of r suitable for use as a map
// key. big.Rat's RatString is already canonical (reduced numerator and
// denominator), so two equal rationals always produce the same key —
// this is the only place spec.md §9's "hash/equality over exact
// rationals" requirement is realized.
func (r Rat3) Key() string {
	return fmt.Sprintf("%s|%s|%s", r.X.RatString(), r.Y.RatString(), r.Z.RatString())
}

// Plane is an exact plane ax+by+cz+d=0. Unlike the inexact kernel's
// Plane, (a,b,c) need not be unit length; exact arithmetic has no use
// for normalization and normalizing would require an inexact square
// root.
type Plane struct {
	A, B, C, D *big.Rat
}

// NewPlaneFromFloats builds an exact plane from float64 coefficients,
// typically the unit-normal plane fit produced by the plane-detection
// preprocess (out of scope for this module, per spec.md §1).
func NewPlaneFromFloats(a, b, c, d float64) Plane {
	return Plane{
		A: new(big.Rat).SetFloat64(a),
		B: new(big.Rat).SetFloat64(b),
		C: new(big.Rat).SetFloat64(c),
		D: new(big.Rat).SetFloat64(d),
	}
}

// Normal returns the plane's (unnormalized) normal vector.
func (p Plane) Normal() Rat3 {
	return Rat3{X: p.A, Y: p.B, Z: p.C}
}

// Eval returns a*x+b*y+c*z+d, the signed "distance" (unnormalized) of pt
// from the plane. Zero means pt lies exactly on the plane.
func (p Plane) Eval(pt Rat3) *big.Rat {
	v := ratZero().Mul(p.A, pt.X)
	v.Add(v, ratZero().Mul(p.B, pt.Y))
	v.Add(v, ratZero().Mul(p.C, pt.Z))
	v.Add(v, p.D)
	return v
}

// Side reports -1, 0, or +1 according to the sign of p.Eval(pt).
func (p Plane) Side(pt Rat3) int {
	return p.Eval(pt).Sign()
}

// IntersectLine is an exact line: a point on the line plus a direction
// vector. Direction is not normalized (exact arithmetic cannot take a
// square root); callers that need a unit direction must convert to the
// inexact kernel first.
type IntersectLine struct {
	Point     Rat3
	Direction Rat3
}

// ErrParallel is returned by IntersectPlanes when the two planes are
// parallel (including coincident), per spec.md §4.2 "Parallel planes:
// ℓᵢⱼ empty".
var ErrParallel = fmt.Errorf("exact: planes are parallel")

// IntersectPlanes computes the line of intersection of two planes, exactly.
func IntersectPlanes(p1, p2 Plane) (IntersectLine, error) {
	dir := p1.Normal().Cross(p2.Normal())
	if dir.X.Sign() == 0 && dir.Y.Sign() == 0 && dir.Z.Sign() == 0 {
		return IntersectLine{}, ErrParallel
	}

	// Find a point on both planes by solving the 2x2 system obtained by
	// dropping whichever coordinate axis the direction vector is largest
	// along (to avoid dividing by a near-zero / exactly-zero pivot).
	ax, ay, az := absRat(dir.X), absRat(dir.Y), absRat(dir.Z)
	var point Rat3
	switch {
	case az.Cmp(ax) >= 0 && az.Cmp(ay) >= 0:
		x, y := solve2x2(p1.A, p1.B, p1.C, p2.A, p2.B, p2.C, ratZero().Neg(p1.D), ratZero().Neg(p2.D))
		point = Rat3{X: x, Y: y, Z: ratZero()}
	case ay.Cmp(ax) >= 0:
		x, z := solve2x2(p1.A, p1.C, p1.B, p2.A, p2.C, p2.B, ratZero().Neg(p1.D), ratZero().Neg(p2.D))
		point = Rat3{X: x, Y: ratZero(), Z: z}
	default:
		y, z := solve2x2(p1.B, p1.C, p1.A, p2.B, p2.C, p2.A, ratZero().Neg(p1.D), ratZero().Neg(p2.D))
		point = Rat3{X: ratZero(), Y: y, Z: z}
	}

	return IntersectLine{Point: point, Direction: dir}, nil
}

func absRat(r *big.Rat) *big.Rat {
	if r.Sign() < 0 {
		return ratZero().Neg(r)
	}
	return r
}

// solve2x2 solves for (u,v) in:
//
//	a1*u + b1*v + c1*w0 = rhs1
//	a2*u + b2*v + c2*w0 = rhs2
//
// with the dropped coordinate w0 fixed at 0, i.e. solves
//
//	a1*u + b1*v = rhs1
//	a2*u + b2*v = rhs2
func solve2x2(a1, b1, c1, a2, b2, c2, rhs1, rhs2 *big.Rat) (*big.Rat, *big.Rat) {
	_ = c1
	_ = c2
	det := ratZero().Sub(ratZero().Mul(a1, b2), ratZero().Mul(b1, a2))
	// det == 0 cannot happen here: direction's largest-magnitude axis was
	// chosen specifically so the remaining 2x2 system is non-singular,
	// since dir is itself the cross product of the two planes' normals.
	u := ratZero().Sub(ratZero().Mul(rhs1, b2), ratZero().Mul(b1, rhs2))
	u.Quo(u, det)
	v := ratZero().Sub(ratZero().Mul(a1, rhs2), ratZero().Mul(rhs1, a2))
	v.Quo(v, det)
	return u, v
}

// PointAt returns the point at parameter t along the line.
func (l IntersectLine) PointAt(t *big.Rat) Rat3 {
	return l.Point.Add(l.Direction.Scale(t))
}

// IntersectLinePlane computes the parameter t at which line l crosses
// plane p, i.e. the unique t with p.Eval(l.PointAt(t)) == 0. Returns
// ErrParallel if the line is parallel to the plane (including when it
// lies entirely within it).
func IntersectLinePlane(l IntersectLine, p Plane) (*big.Rat, error) {
	denom := p.Normal().Dot(l.Direction)
	if denom.Sign() == 0 {
		return nil, ErrParallel
	}
	numer := ratZero().Neg(p.Eval(l.Point))
	return ratZero().Quo(numer, denom), nil
}

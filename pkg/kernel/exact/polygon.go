package exact

import "math/big"

// Polygon is an exact, ordered, convex polygon boundary on some plane.
// Vertices are stored in ℝ³; callers that need 2D coordinates project
// through a segment.Frame (pkg/segment), which is itself built from
// inexact unit vectors — the projection is a scoring/rendering step, not
// an arrangement-construction step, and so is allowed to be inexact per
// spec.md §9.
type Polygon struct {
	Vertices []Rat3
}

// ClipHalfspace clips the polygon against the half-space p.Eval(x) <= 0,
// keeping the portion of the polygon on or inside the plane, using the
// exact Sutherland–Hodgman algorithm. The result is always convex since
// the input is convex and a half-space is convex.
func (poly Polygon) ClipHalfspace(p Plane) Polygon {
	n := len(poly.Vertices)
	if n == 0 {
		return Polygon{}
	}

	out := make([]Rat3, 0, n+1)
	for i := 0; i < n; i++ {
		cur := poly.Vertices[i]
		prev := poly.Vertices[(i-1+n)%n]

		curSide := p.Side(cur)
		prevSide := p.Side(prev)

		if prevSide <= 0 && curSide <= 0 {
			// Both inside (or prev on boundary): keep cur.
			out = append(out, cur)
			continue
		}
		if prevSide <= 0 && curSide > 0 {
			// Exiting: emit the crossing point only.
			out = append(out, crossEdgePlane(prev, cur, p))
			continue
		}
		if prevSide > 0 && curSide <= 0 {
			// Entering: emit the crossing point, then cur.
			out = append(out, crossEdgePlane(prev, cur, p))
			out = append(out, cur)
			continue
		}
		// Both outside: emit nothing.
	}

	return Polygon{Vertices: dedupConsecutive(out)}
}

// crossEdgePlane returns the exact intersection of segment a-b with
// plane p, assuming p.Eval(a) and p.Eval(b) have opposite (non-zero)
// signs.
func crossEdgePlane(a, b Rat3, p Plane) Rat3 {
	ea := p.Eval(a)
	eb := p.Eval(b)
	// t such that eval(a + t*(b-a)) == 0  =>  t = ea / (ea - eb)
	denom := new(big.Rat).Sub(ea, eb)
	t := new(big.Rat).Quo(ea, denom)
	return a.Add(b.Sub(a).Scale(t))
}

func dedupConsecutive(pts []Rat3) []Rat3 {
	if len(pts) < 2 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if !p.Equal(out[len(out)-1]) {
			out = append(out, p)
		}
	}
	if len(out) > 1 && out[0].Equal(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

// SplitByLine splits a convex polygon lying on plane πf into the two
// convex polygons obtained by cutting it along the line where another
// supporting plane crosses πf. The cut uses a chord plane, the unique
// plane that contains both the line's direction and πf's normal, is
// perpendicular to πf, and passes through the line — clipping the
// polygon against it (and its complement) produces exactly the two
// sides spec.md §4.2 step 3 describes as a "chord through Pᵢ that
// splits it".
//
// ok is false, and the polygon is returned unsplit as left, when no
// chord plane exists (the line's direction is zero or parallel to πf's
// normal) or when either side of the cut has fewer than three
// vertices, which includes a line that misses the polygon.
func SplitByLine(poly Polygon, planePi Plane, line IntersectLine) (left, right Polygon, ok bool) {
	chord, ok := chordPlane(planePi, line)
	if !ok {
		return poly, Polygon{}, false
	}
	left = poly.ClipHalfspace(chord)
	right = poly.ClipHalfspace(negatePlane(chord))
	if len(left.Vertices) < 3 || len(right.Vertices) < 3 {
		return poly, Polygon{}, false
	}
	return left, right, true
}

// chordPlane builds the plane through line, perpendicular to planePi,
// that will be used to clip planePi's polygon into two halves.
func chordPlane(planePi Plane, line IntersectLine) (Plane, bool) {
	dir := line.Direction
	if dir.X.Sign() == 0 && dir.Y.Sign() == 0 && dir.Z.Sign() == 0 {
		return Plane{}, false
	}
	normal := planePi.Normal().Cross(dir)
	if normal.X.Sign() == 0 && normal.Y.Sign() == 0 && normal.Z.Sign() == 0 {
		return Plane{}, false
	}
	d := new(big.Rat).Neg(normal.Dot(line.Point))
	return Plane{A: normal.X, B: normal.Y, C: normal.Z, D: d}, true
}

func negatePlane(p Plane) Plane {
	return Plane{
		A: new(big.Rat).Neg(p.A),
		B: new(big.Rat).Neg(p.B),
		C: new(big.Rat).Neg(p.C),
		D: new(big.Rat).Neg(p.D),
	}
}

// AreaVector returns the polygon's exact area vector: the sum, over a
// fan triangulation from the first vertex, of the triangles' cross
// products. Its direction is the polygon's normal and its magnitude is
// twice the polygon's area. Taking the magnitude requires a square
// root, so it is deliberately left to pkg/kernel/inexact (see
// inexact.Area) rather than computed here — this function is as far as
// the exact kernel goes.
func (poly Polygon) AreaVector() Rat3 {
	n := len(poly.Vertices)
	if n < 3 {
		return Rat3{X: new(big.Rat), Y: new(big.Rat), Z: new(big.Rat)}
	}
	origin := poly.Vertices[0]
	sum := Rat3{X: new(big.Rat), Y: new(big.Rat), Z: new(big.Rat)}
	for i := 1; i < n-1; i++ {
		a := poly.Vertices[i].Sub(origin)
		b := poly.Vertices[i+1].Sub(origin)
		sum = sum.Add(a.Cross(b))
	}
	return sum
}

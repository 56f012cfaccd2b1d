package reconstruct

import (
	"math"
	"testing"

	"github.com/chazu/lignin/pkg/kernel/inexact"
	"github.com/chazu/lignin/pkg/meshio"
	"github.com/chazu/lignin/pkg/segment"
	"github.com/chazu/lignin/pkg/selection"
	"gonum.org/v1/gonum/spatial/r3"
)

// meshEdgeCount counts the mesh's distinct undirected edges: each face's
// boundary contributes one edge per consecutive vertex pair (including
// wraparound), and an edge shared by two faces counts once.
func meshEdgeCount(mesh meshio.Mesh) int {
	seen := make(map[[2]int]bool)
	for _, face := range mesh.Faces {
		n := len(face)
		for i := 0; i < n; i++ {
			a, b := face[i], face[(i+1)%n]
			if a > b {
				a, b = b, a
			}
			seen[[2]int{a, b}] = true
		}
	}
	return len(seen)
}

// meshIsClosed reports whether every edge of mesh is shared by exactly
// two faces, i.e. the mesh has no open boundary.
func meshIsClosed(mesh meshio.Mesh) bool {
	count := make(map[[2]int]int)
	for _, face := range mesh.Faces {
		n := len(face)
		for i := 0; i < n; i++ {
			a, b := face[i], face[(i+1)%n]
			if a > b {
				a, b = b, a
			}
			count[[2]int{a, b}]++
		}
	}
	for _, c := range count {
		if c != 2 {
			return false
		}
	}
	return true
}

// hasVertexNear reports whether mesh has a vertex within tol of want.
func hasVertexNear(mesh meshio.Mesh, want r3.Vec, tol float64) bool {
	for _, v := range mesh.Vertices {
		if r3.Norm(r3.Sub(v, want)) <= tol {
			return true
		}
	}
	return false
}

// gridOnPlane returns an n x n grid of points spanning [-half,half] in
// the plane's own 2D frame, lifted to 3D, matching spec.md §8's "10x10
// grid of points on its face" scenario fixtures.
func gridOnPlane(plane inexact.Plane, half float64, n int) segment.Segment {
	frame := segment.NewFrame(r3.Scale(-plane.D, plane.Normal), plane.Normal)
	var pts []segment.Point
	step := 2 * half / float64(n-1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := -half + float64(i)*step
			y := -half + float64(j)*step
			pts = append(pts, segment.Point{Position: frame.To3D([2]float64{x, y})})
		}
	}
	return segment.New(pts, plane)
}

func unitCubeSegments() []segment.Segment {
	half := 0.5
	return []segment.Segment{
		gridOnPlane(inexact.NewPlane(1, 0, 0, -half), half, 10),
		gridOnPlane(inexact.NewPlane(-1, 0, 0, -half), half, 10),
		gridOnPlane(inexact.NewPlane(0, 1, 0, -half), half, 10),
		gridOnPlane(inexact.NewPlane(0, -1, 0, -half), half, 10),
		gridOnPlane(inexact.NewPlane(0, 0, 1, -half), half, 10),
		gridOnPlane(inexact.NewPlane(0, 0, -1, -half), half, 10),
	}
}

func TestReconstructCube(t *testing.T) {
	mesh, diag, err := Reconstruct(unitCubeSegments(), Config{Margin: 0.02, MaxWorkers: 1})
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("Reconstruct() returned an empty mesh for a closed cube")
	}

	// spec.md §8 scenario 1: six axis-aligned planes enclosing a unit
	// cube yield exactly 6 faces, 12 edges, 8 vertices at
	// (±0.5, ±0.5, ±0.5). Each supporting plane is cut only by its four
	// perpendicular neighbors (opposite faces are parallel and
	// contribute no chord), which split its box-clipped rectangle into a
	// 3×3 grid: the cube face plus thin cells out to the inflated box.
	// The hypothesis graph therefore holds 6×9 = 54 candidate faces.
	if got, want := mesh.FaceCount(), 6; got != want {
		t.Errorf("got %d faces, want %d", got, want)
	}
	if got, want := diag.TotalFaces, 54; got != want {
		t.Errorf("hypothesis graph has %d candidate faces, want %d", got, want)
	}
	if got, want := mesh.VertexCount(), 8; got != want {
		t.Errorf("got %d vertices, want %d", got, want)
	}
	if got, want := meshEdgeCount(*mesh), 12; got != want {
		t.Errorf("got %d edges, want %d", got, want)
	}
	if !meshIsClosed(*mesh) {
		t.Error("Reconstruct() cube mesh is not closed")
	}
	for _, sx := range []float64{-0.5, 0.5} {
		for _, sy := range []float64{-0.5, 0.5} {
			for _, sz := range []float64{-0.5, 0.5} {
				corner := r3.Vec{X: sx, Y: sy, Z: sz}
				if !hasVertexNear(*mesh, corner, 1e-6) {
					t.Errorf("mesh is missing corner vertex %v", corner)
				}
			}
		}
	}

	// spec.md §8 scenario 1's "data-fit term ≈ 1.0" describes the
	// normalized support fraction Σ supp(f)·x_f/supp_total, which
	// FitTerm = λ_fit·(1-fraction) inverts; recover it here.
	weights := selection.DefaultWeights()
	fitFraction := 1 - diag.FitTerm/weights.Fit
	if math.Abs(fitFraction-1.0) > 1e-3 {
		t.Errorf("data-fit fraction = %v, want ≈ 1.0", fitFraction)
	}
}

func TestReconstructOpenCubeLeavesRimOpenByDefault(t *testing.T) {
	segs := unitCubeSegments()[:5] // omit the top face (z=+0.5)
	mesh, diag, err := Reconstruct(segs, Config{Margin: 0.02, MaxWorkers: 1})
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("Reconstruct() returned an empty mesh for a five-sided open cube")
	}
	if mesh.FaceCount() < 5 {
		t.Errorf("got %d faces, want at least 5", mesh.FaceCount())
	}
	if diag.TotalFaces < 5 {
		t.Errorf("hypothesis graph has %d faces, want at least 5", diag.TotalFaces)
	}
}

func TestReconstructOpenCubeCanCloseWithBBoxFaces(t *testing.T) {
	segs := unitCubeSegments()[:5]
	mesh, _, err := Reconstruct(segs, Config{Margin: 0.02, MaxWorkers: 1, IncludeBBoxFaces: true})
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("Reconstruct() returned an empty mesh for a five-sided open cube with bbox faces enabled")
	}
	if mesh.FaceCount() < 5 {
		t.Errorf("got %d faces, want at least 5", mesh.FaceCount())
	}
}

func TestReconstructTwoPerpendicularPlanes(t *testing.T) {
	p1 := gridOnPlane(inexact.NewPlane(0, 0, 1, 0), 2.5, 5)
	p2 := gridOnPlane(inexact.NewPlane(1, 0, 0, 0), 2.5, 5)

	mesh, _, err := Reconstruct([]segment.Segment{p1, p2}, Config{Margin: 0.02, MaxWorkers: 1})
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("Reconstruct() returned an empty mesh for two perpendicular planes with support")
	}
}

func expectEmptyResult(t *testing.T, err error) {
	t.Helper()
	rerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if rerr.Kind != EmptyResult {
		t.Errorf("Kind = %v, want EmptyResult", rerr.Kind)
	}
}

func TestReconstructSinglePlaneIsEmpty(t *testing.T) {
	p1 := gridOnPlane(inexact.NewPlane(0, 0, 1, 0), 1, 5)
	mesh, diag, err := Reconstruct([]segment.Segment{p1}, Config{MaxWorkers: 1})
	expectEmptyResult(t, err)
	if !mesh.IsEmpty() {
		t.Error("Reconstruct() with a single plane should produce an empty mesh")
	}
	if diag.TotalFaces != 0 {
		t.Errorf("diag.TotalFaces = %d, want 0", diag.TotalFaces)
	}
}

func TestReconstructParallelPlanesDisjointSupport(t *testing.T) {
	p1 := gridOnPlane(inexact.NewPlane(0, 0, 1, 0), 1, 5)
	p2 := gridOnPlane(inexact.NewPlane(0, 0, 1, -5), 1, 5) // z=5, far above, disjoint support
	mesh, _, err := Reconstruct([]segment.Segment{p1, p2}, Config{MaxWorkers: 1})
	expectEmptyResult(t, err)
	if !mesh.IsEmpty() {
		t.Error("Reconstruct() with two disjoint parallel planes should produce an empty mesh")
	}
}

func TestReconstructInvalidInput(t *testing.T) {
	_, _, err := Reconstruct(nil, Config{})
	if err == nil {
		t.Fatal("Reconstruct() error = nil for empty input")
	}
	rerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if rerr.Kind != InvalidInput {
		t.Errorf("Kind = %v, want InvalidInput", rerr.Kind)
	}
}

func TestReconstructTetrahedron(t *testing.T) {
	// Four triangular planar segments approximating a tetrahedron's
	// faces, each with >= 50 sample points, per spec.md §8 scenario 4.
	verts := [4]r3.Vec{
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1},
	}
	faceIdx := [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}

	const n = 9 // triangular number T(9) = 55 points per face, >= 50
	var segments []segment.Segment
	for _, f := range faceIdx {
		a, b, c := verts[f[0]], verts[f[1]], verts[f[2]]
		normal := r3.Unit(r3.Cross(r3.Sub(b, a), r3.Sub(c, a)))
		d := -r3.Dot(normal, a)
		plane := inexact.NewPlane(normal.X, normal.Y, normal.Z, d)

		var pts []segment.Point
		for i := 0; i <= n; i++ {
			for j := 0; i+j <= n; j++ {
				u := float64(i) / n
				v := float64(j) / n
				p := r3.Add(a, r3.Add(r3.Scale(u, r3.Sub(b, a)), r3.Scale(v, r3.Sub(c, a))))
				pts = append(pts, segment.Point{Position: p})
			}
		}
		if len(pts) < 50 {
			t.Fatalf("face sample count = %d, want >= 50", len(pts))
		}
		segments = append(segments, segment.New(pts, plane))
	}

	mesh, diag, err := Reconstruct(segments, Config{Margin: 0.02, MaxWorkers: 1})
	if err != nil {
		t.Fatalf("Reconstruct() error = %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("Reconstruct() returned an empty mesh for a tetrahedron")
	}

	// spec.md §8 scenario 4: 4 triangular faces, 6 edges, 4 vertices,
	// closed mesh. Each plane is cut by the other three planes' lines
	// into 7 cells inside the box (the triangle, three regions beyond
	// its edges and three beyond its corners), so the hypothesis graph
	// holds 4×7 = 28 candidate faces.
	if got, want := mesh.FaceCount(), 4; got != want {
		t.Errorf("got %d faces, want %d", got, want)
	}
	if got, want := diag.TotalFaces, 28; got != want {
		t.Errorf("hypothesis graph has %d candidate faces, want %d", got, want)
	}
	if got, want := mesh.VertexCount(), 4; got != want {
		t.Errorf("got %d vertices, want %d", got, want)
	}
	if got, want := meshEdgeCount(*mesh), 6; got != want {
		t.Errorf("got %d edges, want %d", got, want)
	}
	if !meshIsClosed(*mesh) {
		t.Error("Reconstruct() tetrahedron mesh is not closed")
	}
	for _, v := range verts {
		if !hasVertexNear(*mesh, v, 1e-6) {
			t.Errorf("mesh is missing tetrahedron vertex %v", v)
		}
	}
}

package alphashape

import (
	"math"
	"testing"
)

func TestMeanNearestNeighborSpacing2D(t *testing.T) {
	pts := []Point2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	got := MeanNearestNeighborSpacing2D(pts)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("MeanNearestNeighborSpacing2D() = %v, want 1.0", got)
	}
}

func TestMeanNearestNeighborSpacing2DTooFew(t *testing.T) {
	if got := MeanNearestNeighborSpacing2D([]Point2{{}}); got != 0 {
		t.Errorf("MeanNearestNeighborSpacing2D() = %v, want 0 for a single point", got)
	}
}

func TestTriangleArea2D(t *testing.T) {
	v := [3][2]float64{{0, 0}, {1, 0}, {0, 1}}
	if got, want := triangleArea2D(v), 0.5; got != want {
		t.Errorf("triangleArea2D() = %v, want %v", got, want)
	}
}

func TestMeshIsEmptyAndTotalArea(t *testing.T) {
	var m Mesh
	if !m.IsEmpty() {
		t.Error("IsEmpty() = false for a zero-value mesh")
	}
	m.Triangles = append(m.Triangles, Triangle3{V2: [3][2]float64{{0, 0}, {1, 0}, {0, 1}}})
	if m.IsEmpty() {
		t.Error("IsEmpty() = true for a non-empty mesh")
	}
	if got, want := m.TotalArea(), 0.5; got != want {
		t.Errorf("TotalArea() = %v, want %v", got, want)
	}
}

package segment

import (
	"math"
	"testing"

	"github.com/chazu/lignin/pkg/kernel/inexact"
	"gonum.org/v1/gonum/spatial/r3"
)

func squarePoints() []Point {
	return []Point{
		{Position: r3.Vec{X: 0, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 1, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 1, Y: 1, Z: 0}},
		{Position: r3.Vec{X: 0, Y: 1, Z: 0}},
	}
}

func TestFrameRoundTrip(t *testing.T) {
	f := NewFrame(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 0, Y: 0, Z: 1})
	p := r3.Vec{X: 4, Y: 5, Z: 3}

	xy := f.To2D(p)
	back := f.To3D(xy)

	if r3.Norm(r3.Sub(back, p)) > 1e-9 {
		t.Errorf("To3D(To2D(p)) = %v, want %v", back, p)
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid(squarePoints())
	want := r3.Vec{X: 0.5, Y: 0.5, Z: 0}
	if r3.Norm(r3.Sub(got, want)) > 1e-9 {
		t.Errorf("Centroid() = %v, want %v", got, want)
	}
}

func TestCentroidEmpty(t *testing.T) {
	if got := Centroid(nil); got != (r3.Vec{}) {
		t.Errorf("Centroid(nil) = %v, want zero vector", got)
	}
}

func TestSegmentValidate(t *testing.T) {
	plane := inexact.NewPlane(0, 0, 1, 0)
	s := New(squarePoints(), plane)

	if err := s.Validate(1e-6); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestSegmentValidateTooFewPoints(t *testing.T) {
	plane := inexact.NewPlane(0, 0, 1, 0)
	s := New(squarePoints()[:2], plane)

	if err := s.Validate(1e-6); err == nil {
		t.Error("Validate() error = nil, want error for < 3 points")
	}
}

func TestSegmentValidateOffPlane(t *testing.T) {
	plane := inexact.NewPlane(0, 0, 1, 0)
	pts := squarePoints()
	pts[0].Position.Z = 10
	s := New(pts, plane)

	if err := s.Validate(1e-6); err == nil {
		t.Error("Validate() error = nil, want error for off-plane point")
	}
}

func TestSegmentValidateNonUnitNormal(t *testing.T) {
	s := Segment{
		Points: squarePoints(),
		Plane:  inexact.Plane{Normal: r3.Vec{X: 0, Y: 0, Z: 2}, D: 0},
	}
	if err := s.Validate(1e-6); err == nil {
		t.Error("Validate() error = nil, want error for non-unit normal")
	}
}

func TestMeanNearestNeighborSpacing(t *testing.T) {
	pts := []Point{
		{Position: r3.Vec{X: 0, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 1, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 2, Y: 0, Z: 0}},
	}
	got := MeanNearestNeighborSpacing(pts)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("MeanNearestNeighborSpacing() = %v, want 1.0", got)
	}
}

func TestMeanNearestNeighborSpacingTooFew(t *testing.T) {
	if got := MeanNearestNeighborSpacing([]Point{{}}); got != 0 {
		t.Errorf("MeanNearestNeighborSpacing() = %v, want 0 for a single point", got)
	}
}

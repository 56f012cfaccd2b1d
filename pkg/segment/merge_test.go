package segment

import (
	"testing"

	"github.com/chazu/lignin/pkg/kernel/inexact"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMergeDuplicatePlanesMergesCoincident(t *testing.T) {
	plane := inexact.NewPlane(0, 0, 1, 0)
	a := New([]Point{
		{Position: r3.Vec{X: 0, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 1, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 0, Y: 1, Z: 0}},
	}, plane)
	b := New([]Point{
		{Position: r3.Vec{X: 2, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 3, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 2, Y: 1, Z: 0}},
	}, plane)

	merged := MergeDuplicatePlanes([]Segment{a, b}, 1e-3, 1e-3)
	if len(merged) != 1 {
		t.Fatalf("MergeDuplicatePlanes() returned %d segments, want 1", len(merged))
	}
	if got, want := len(merged[0].Points), 6; got != want {
		t.Errorf("merged segment has %d points, want %d", got, want)
	}
}

func TestMergeDuplicatePlanesKeepsDistinct(t *testing.T) {
	a := New([]Point{
		{Position: r3.Vec{X: 0, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 1, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 0, Y: 1, Z: 0}},
	}, inexact.NewPlane(0, 0, 1, 0))
	b := New([]Point{
		{Position: r3.Vec{X: 0, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 0, Y: 1, Z: 0}},
		{Position: r3.Vec{X: 0, Y: 0, Z: 1}},
	}, inexact.NewPlane(1, 0, 0, 0))

	merged := MergeDuplicatePlanes([]Segment{a, b}, 1e-3, 1e-3)
	if len(merged) != 2 {
		t.Fatalf("MergeDuplicatePlanes() returned %d segments, want 2", len(merged))
	}
}

func TestMergeDuplicatePlanesOppositeNormals(t *testing.T) {
	a := New([]Point{
		{Position: r3.Vec{X: 0, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 1, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 0, Y: 1, Z: 0}},
	}, inexact.NewPlane(0, 0, 1, 0))
	b := New([]Point{
		{Position: r3.Vec{X: 2, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 3, Y: 0, Z: 0}},
		{Position: r3.Vec{X: 2, Y: 1, Z: 0}},
	}, inexact.NewPlane(0, 0, -1, 0))

	if !samePlane(a.Plane, b.Plane, 1e-3, 1e-3) {
		t.Error("samePlane() = false for coincident planes with opposite normals")
	}
}

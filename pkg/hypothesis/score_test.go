package hypothesis

import (
	"math"
	"testing"

	"github.com/chazu/lignin/pkg/alphashape"
)

func unitSquare2D() [][2]float64 {
	return [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
}

func TestPointInConvexPolygon(t *testing.T) {
	square := unitSquare2D()
	tests := []struct {
		name string
		p    [2]float64
		want bool
	}{
		{"center", [2]float64{0.5, 0.5}, true},
		{"corner", [2]float64{0, 0}, true},
		{"outside", [2]float64{2, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointInConvexPolygon(tt.p, square); got != tt.want {
				t.Errorf("pointInConvexPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPolygonArea2D(t *testing.T) {
	if got, want := polygonArea2D(unitSquare2D()), 1.0; got != want {
		t.Errorf("polygonArea2D() = %v, want %v", got, want)
	}
}

func TestClipConvexFullyInside(t *testing.T) {
	subject := [][2]float64{{0.25, 0.25}, {0.75, 0.25}, {0.75, 0.75}, {0.25, 0.75}}
	clipped := clipConvex(subject, unitSquare2D())
	if got, want := polygonArea2D(clipped), 0.25; math.Abs(got-want) > 1e-9 {
		t.Errorf("clipConvex() area = %v, want %v", got, want)
	}
}

func TestClipConvexPartialOverlap(t *testing.T) {
	// A square shifted half a unit right, overlapping the right half of
	// the unit square.
	subject := [][2]float64{{0.5, 0}, {1.5, 0}, {1.5, 1}, {0.5, 1}}
	clipped := clipConvex(subject, unitSquare2D())
	if got, want := polygonArea2D(clipped), 0.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("clipConvex() area = %v, want %v", got, want)
	}
}

func TestClipConvexDisjoint(t *testing.T) {
	subject := [][2]float64{{5, 5}, {6, 5}, {6, 6}, {5, 6}}
	clipped := clipConvex(subject, unitSquare2D())
	if got := polygonArea2D(clipped); got != 0 {
		t.Errorf("clipConvex() area = %v, want 0 for disjoint polygons", got)
	}
}

func TestConfidenceTermNoAlpha(t *testing.T) {
	got := confidenceTerm(unitSquare2D(), 1.0, alphashape.Mesh{})
	if got != 0 {
		t.Errorf("confidenceTerm() = %v, want 0 for an empty alpha mesh", got)
	}
}

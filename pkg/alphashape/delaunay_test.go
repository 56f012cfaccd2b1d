package alphashape

import "testing"

func TestTriangulateSquare(t *testing.T) {
	pts := []Point2{
		{X: 0, Y: 0, Index: 0},
		{X: 1, Y: 0, Index: 1},
		{X: 1, Y: 1, Index: 2},
		{X: 0, Y: 1, Index: 3},
	}
	tri, err := Triangulate(pts)
	if err != nil {
		t.Fatalf("Triangulate() error = %v", err)
	}
	if got := len(tri.Triangles) / 3; got != 2 {
		t.Fatalf("got %d triangles, want 2", got)
	}
}

func TestTriangulateTooFewPoints(t *testing.T) {
	pts := []Point2{{X: 0, Y: 0}, {X: 1, Y: 0}}
	tri, err := Triangulate(pts)
	if err != nil {
		t.Fatalf("Triangulate() error = %v", err)
	}
	if len(tri.Triangles) != 0 {
		t.Errorf("got %d triangles for 2 points, want 0", len(tri.Triangles))
	}
}

func TestTriangulateCollinear(t *testing.T) {
	pts := []Point2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	tri, err := Triangulate(pts)
	if err != nil {
		t.Fatalf("Triangulate() error = %v", err)
	}
	if len(tri.Triangles) != 0 {
		t.Errorf("got %d triangles for collinear points, want 0", len(tri.Triangles))
	}
}

func TestCircumradiusEquilateral(t *testing.T) {
	a := Point2{X: 0, Y: 0}
	b := Point2{X: 1, Y: 0}
	c := Point2{X: 0.5, Y: 0.8660254037844386}
	got := circumradius(a, b, c)
	if got < 0.55 || got > 0.62 {
		t.Errorf("circumradius() = %v, want ~0.577", got)
	}
}

func TestInCircumcircle(t *testing.T) {
	a := Point2{X: -1, Y: 0}
	b := Point2{X: 1, Y: 0}
	c := Point2{X: 0, Y: 1}

	if !inCircumcircle(a, b, c, Point2{X: 0, Y: 0}) {
		t.Error("inCircumcircle() = false for the triangle's own centroid-ish point")
	}
	if inCircumcircle(a, b, c, Point2{X: 0, Y: 100}) {
		t.Error("inCircumcircle() = true for a far-away point")
	}
}

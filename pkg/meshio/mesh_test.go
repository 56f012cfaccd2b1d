package meshio

import (
	"bytes"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func triangleMesh() Mesh {
	return Mesh{
		Vertices: []r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		Faces:    [][]int{{0, 1, 2}},
	}
}

func TestMeshIsEmpty(t *testing.T) {
	if !(Mesh{}).IsEmpty() {
		t.Error("IsEmpty() = false for a zero-value mesh")
	}
	if triangleMesh().IsEmpty() {
		t.Error("IsEmpty() = true for a non-empty mesh")
	}
}

func TestMeshCounts(t *testing.T) {
	m := triangleMesh()
	if got, want := m.VertexCount(), 3; got != want {
		t.Errorf("VertexCount() = %d, want %d", got, want)
	}
	if got, want := m.FaceCount(), 1; got != want {
		t.Errorf("FaceCount() = %d, want %d", got, want)
	}
}

func TestWriteOBJ(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, triangleMesh()); err != nil {
		t.Fatalf("WriteOBJ() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "v 0 0 0") {
		t.Errorf("output missing vertex line: %q", out)
	}
	if !strings.Contains(out, "f 1 2 3") {
		t.Errorf("output missing 1-indexed face line: %q", out)
	}
}

func TestTriangulateFan(t *testing.T) {
	got := triangulateFan([]int{0, 1, 2, 3})
	want := [][3]int{{0, 1, 2}, {0, 2, 3}}
	if len(got) != len(want) {
		t.Fatalf("got %d triangles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triangle %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTriangulateFanDegenerate(t *testing.T) {
	if got := triangulateFan([]int{0, 1}); got != nil {
		t.Errorf("triangulateFan() = %v, want nil for < 3 vertices", got)
	}
}

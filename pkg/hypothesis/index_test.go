package hypothesis

import "testing"

func TestFaceIndexCandidatesFindsContainingBox(t *testing.T) {
	polys := [][][2]float64{
		{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		{{2, 0}, {3, 0}, {3, 1}, {2, 1}},
	}
	idx := newFaceIndex(polys)

	got := idx.candidates([2]float64{0.5, 0.5})
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("candidates(0.5,0.5) = %v, want [0]", got)
	}

	got = idx.candidates([2]float64{2.5, 0.5})
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("candidates(2.5,0.5) = %v, want [1]", got)
	}

	got = idx.candidates([2]float64{10, 10})
	if len(got) != 0 {
		t.Errorf("candidates(10,10) = %v, want empty", got)
	}
}

func TestBounds2D(t *testing.T) {
	minX, minY, maxX, maxY := bounds2D([][2]float64{{1, 5}, {-2, 3}, {4, -1}})
	if minX != -2 || minY != -1 || maxX != 4 || maxY != 5 {
		t.Errorf("bounds2D() = (%v,%v,%v,%v), want (-2,-1,4,5)", minX, minY, maxX, maxY)
	}
}

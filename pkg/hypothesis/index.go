package hypothesis

import "github.com/dhconnelly/rtreego"

// faceBox is the rtreego.Spatial wrapper around a candidate face's 2D
// bounding box within its supporting plane's frame.
type faceBox struct {
	idx  int
	rect rtreego.Rect
}

func (b *faceBox) Bounds() rtreego.Rect {
	return b.rect
}

// faceIndex accelerates candidate-face-to-point assignment within a
// single plane (spec.md §4.2's supp(f) scoring): rather than testing
// every member point against every candidate face's polygon, only the
// handful of faces whose bounding box actually covers the point are
// tested exactly.
type faceIndex struct {
	tree *rtreego.Rtree
}

const pointQueryEpsilon = 1e-9

func newFaceIndex(polys2D [][][2]float64) *faceIndex {
	tree := rtreego.NewTree(2, 4, 16)
	for i, poly := range polys2D {
		minX, minY, maxX, maxY := bounds2D(poly)
		lengths := []float64{max(maxX-minX, pointQueryEpsilon), max(maxY-minY, pointQueryEpsilon)}
		rect, err := rtreego.NewRect(rtreego.Point{minX, minY}, lengths)
		if err != nil {
			continue
		}
		tree.Insert(&faceBox{idx: i, rect: rect})
	}
	return &faceIndex{tree: tree}
}

// candidates returns the indices (into the slice passed to newFaceIndex)
// of every face whose bounding box contains p.
func (fi *faceIndex) candidates(p [2]float64) []int {
	q, err := rtreego.NewRect(rtreego.Point{p[0], p[1]}, []float64{pointQueryEpsilon, pointQueryEpsilon})
	if err != nil {
		return nil
	}
	hits := fi.tree.SearchIntersect(q)
	out := make([]int, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*faceBox).idx)
	}
	return out
}

func bounds2D(poly [][2]float64) (minX, minY, maxX, maxY float64) {
	minX, minY = poly[0][0], poly[0][1]
	maxX, maxY = minX, minY
	for _, p := range poly[1:] {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}
	return
}

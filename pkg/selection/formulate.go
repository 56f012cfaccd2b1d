package selection

import (
	"fmt"

	"github.com/chazu/lignin/pkg/hypothesis"
	"gonum.org/v1/gonum/mat"
)

// Weights are the three objective blend weights λ_fit, λ_cov, λ_cmpl
// (spec.md §4.3). They must sum to 1.
type Weights struct {
	Fit        float64
	Cov        float64
	Complexity float64
}

// DefaultWeights returns spec.md §4.3's default weights.
func DefaultWeights() Weights {
	return Weights{Fit: 0.43, Cov: 0.27, Complexity: 0.30}
}

// Validate reports an error if the weights do not sum to 1 (within
// floating-point tolerance).
func (w Weights) Validate() error {
	sum := w.Fit + w.Cov + w.Complexity
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("selection: weights must sum to 1, got %v", sum)
	}
	return nil
}

// Problem is the assembled BIP: objective, constraint matrix, and the
// variable layout needed to read a solution back into face/edge terms.
type Problem struct {
	Objective   []float64
	Constraints *mat.Dense
	Senses      []Sense
	RHS         []float64
	Kinds       []VarKind

	NumFaces           int
	NumEdges           int
	NumSharpCandidates int // edges whose incident faces span more than one plane
	sharpEdge          []int // per-edge y-variable column, or -1 if not a sharp candidate
}

// FaceSelected reports whether x[f] rounds to selected in a solution
// vector x of the length Problem.Objective.
func (p *Problem) FaceSelected(x []float64, f int) bool {
	return x[f] > 0.5
}

// EdgeSharp reports whether edge e's y-variable is set in x. Edges that
// are not sharp candidates (every incident face on the same plane) are
// never sharp.
func (p *Problem) EdgeSharp(x []float64, e int) bool {
	col := p.sharpEdge[e]
	if col < 0 {
		return false
	}
	return x[col] > 0.5
}

// Formulate builds the BIP for graph g under weights w. forbidden, if
// non-nil, forces x_f=0 for every face index it contains — spec.md
// §4.3's optional "forbid bounding-box faces" knob for open-surface
// reconstruction.
func Formulate(g *hypothesis.Graph, w Weights, forbidden map[int]bool) (*Problem, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	numFaces := len(g.Faces)
	numEdges := len(g.Edges)

	sharpEdge := make([]int, numEdges)
	numSharp := 0
	for e, edge := range g.Edges {
		if edgeIsSharpCandidate(g, edge) {
			sharpEdge[e] = numSharp
			numSharp++
		} else {
			sharpEdge[e] = -1
		}
	}

	numVars := numFaces + numEdges + numSharp
	xCol := func(f int) int { return f }
	zCol := func(e int) int { return numFaces + e }
	yCol := func(e int) int {
		if sharpEdge[e] < 0 {
			return -1
		}
		return numFaces + numEdges + sharpEdge[e]
	}

	objective := make([]float64, numVars)

	var suppTotal float64
	for _, f := range g.Faces {
		suppTotal += f.Supp
	}
	areaTotal := g.AreaTotal
	for f, face := range g.Faces {
		if suppTotal > 0 {
			objective[xCol(f)] -= w.Fit * face.Supp / suppTotal
		}
		if areaTotal > 0 {
			objective[xCol(f)] -= w.Cov * face.Cov() / areaTotal
		}
	}
	if numSharp > 0 {
		perEdge := w.Complexity / float64(numSharp)
		for e := range g.Edges {
			if col := yCol(e); col >= 0 {
				objective[col] = perEdge
			}
		}
	}

	var rows [][]float64
	var senses []Sense
	var rhs []float64

	// Hard manifold equality: sum of x_f over incident faces - 2*z_e = 0,
	// for edges with two or more candidate faces. An edge with only one
	// candidate face has no partner to close against and is left
	// unconstrained — a genuine, permitted open boundary — rather than
	// forcing its lone face to x_f=0.
	for e, edge := range g.Edges {
		if len(edge.Faces) < 2 {
			continue
		}
		row := make([]float64, numVars)
		for _, f := range edge.Faces {
			row[xCol(f)] += 1
		}
		row[zCol(e)] = -2
		rows = append(rows, row)
		senses = append(senses, SenseEQ)
		rhs = append(rhs, 0)
	}

	// Sharp-edge linearization: x_f + x_f' - y_e <= 1 for every pair of
	// incident faces on different planes, forcing y_e up to 1 whenever
	// both are selected; the objective's minimization pressure keeps it
	// at 0 otherwise.
	for e, edge := range g.Edges {
		col := yCol(e)
		if col < 0 {
			continue
		}
		for i := 0; i < len(edge.Faces); i++ {
			for j := i + 1; j < len(edge.Faces); j++ {
				fi, fj := edge.Faces[i], edge.Faces[j]
				if g.Faces[fi].PlaneIndex == g.Faces[fj].PlaneIndex {
					continue
				}
				row := make([]float64, numVars)
				row[xCol(fi)] = 1
				row[xCol(fj)] = 1
				row[col] = -1
				rows = append(rows, row)
				senses = append(senses, SenseLE)
				rhs = append(rhs, 1)
			}
		}
	}

	// Forbidden faces: x_f = 0.
	for f := range forbidden {
		if f < 0 || f >= numFaces {
			continue
		}
		row := make([]float64, numVars)
		row[xCol(f)] = 1
		rows = append(rows, row)
		senses = append(senses, SenseEQ)
		rhs = append(rhs, 0)
	}

	flat := make([]float64, 0, len(rows)*numVars)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	// mat.NewDense rejects a zero-sized matrix, so a problem with no
	// constraint rows (an empty graph, or no shared edges) keeps the
	// empty zero-value matrix.
	constraints := &mat.Dense{}
	if len(rows) > 0 {
		constraints = mat.NewDense(len(rows), numVars, flat)
	}

	kinds := make([]VarKind, numVars)
	for i := range kinds {
		kinds[i] = VarBinary
	}

	return &Problem{
		Objective:          objective,
		Constraints:        constraints,
		Senses:             senses,
		RHS:                rhs,
		Kinds:              kinds,
		NumFaces:           numFaces,
		NumEdges:           numEdges,
		NumSharpCandidates: numSharp,
		sharpEdge:          sharpEdge,
	}, nil
}

// Terms recovers spec.md §4.3's three named objective components — fit,
// coverage, complexity — from a solved assignment x, restoring the
// constant λ_fit+λ_cov terms that the LP objective built by Formulate
// drops since they don't affect which x is optimal.
func (p *Problem) Terms(g *hypothesis.Graph, w Weights, x []float64) (fit, cov, complexity float64) {
	var suppTotal float64
	for _, f := range g.Faces {
		suppTotal += f.Supp
	}
	areaTotal := g.AreaTotal

	var suppSelected, covSelected float64
	for f, face := range g.Faces {
		if p.FaceSelected(x, f) {
			suppSelected += face.Supp
			covSelected += face.Cov()
		}
	}

	fit = w.Fit
	if suppTotal > 0 {
		fit = w.Fit * (1 - suppSelected/suppTotal)
	}
	cov = w.Cov
	if areaTotal > 0 {
		cov = w.Cov * (1 - covSelected/areaTotal)
	}
	if p.NumSharpCandidates > 0 {
		var sharpSelected float64
		for e := range g.Edges {
			if p.EdgeSharp(x, e) {
				sharpSelected++
			}
		}
		complexity = w.Complexity * sharpSelected / float64(p.NumSharpCandidates)
	}
	return fit, cov, complexity
}

// edgeIsSharpCandidate reports whether e's incident faces span more
// than one supporting plane.
func edgeIsSharpCandidate(g *hypothesis.Graph, e hypothesis.Edge) bool {
	plane := -1
	for _, f := range e.Faces {
		p := g.Faces[f].PlaneIndex
		if plane == -1 {
			plane = p
			continue
		}
		if p != plane {
			return true
		}
	}
	return false
}

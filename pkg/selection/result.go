package selection

import (
	"time"

	"github.com/chazu/lignin/pkg/hypothesis"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Result is the outcome of solving the face-selection BIP.
type Result struct {
	Status        Status
	SelectedFaces []int
	SharpEdges    []int
	// Objective is the true spec.md §4.3 objective value (FitTerm +
	// CoverageTerm + ComplexityTerm), not the raw LP reduced-cost
	// Formulate's solver sees.
	Objective      float64
	FitTerm        float64
	CoverageTerm   float64
	ComplexityTerm float64
	Elapsed        time.Duration
}

// Solve formulates and solves the face-selection BIP for g, per
// spec.md §4.3. Infeasibility reported by the solver is returned as a
// Result with Status StatusInfeasible, no selected faces and a nil
// error; only a formulation or solver call failure yields an error.
// Since x≡0 satisfies every constraint Formulate builds, a
// StatusInfeasible result indicates a numerical solver fault, not a
// property of the input.
func Solve(g *hypothesis.Graph, w Weights, solver Solver, forbidden map[int]bool, timeLimit time.Duration, gap float64) (Result, error) {
	prob, err := Formulate(g, w, forbidden)
	if err != nil {
		return Result{}, errors.Wrap(err, "selection: formulate")
	}

	start := time.Now()
	// The raw objective value solver.SolveBIP returns is the LP's
	// reduced-cost sum, not spec.md §4.3's objective; Terms below
	// recovers the real fit/coverage/complexity components from x.
	status, x, _, err := solver.SolveBIP(prob.Objective, prob.Constraints, prob.Senses, prob.RHS, prob.Kinds, timeLimit, gap)
	elapsed := time.Since(start)
	if err != nil {
		return Result{Status: StatusSolverError, Elapsed: elapsed}, errors.Wrap(err, "selection: solve")
	}

	result := Result{Status: status, Elapsed: elapsed}
	if status == StatusInfeasible || status == StatusSolverError || x == nil {
		return result, nil
	}

	result.SelectedFaces = lo.Filter(lo.Range(prob.NumFaces), func(f int, _ int) bool {
		return prob.FaceSelected(x, f)
	})
	result.SharpEdges = lo.Filter(lo.Range(prob.NumEdges), func(e int, _ int) bool {
		return prob.EdgeSharp(x, e)
	})

	result.FitTerm, result.CoverageTerm, result.ComplexityTerm = prob.Terms(g, w, x)
	result.Objective = result.FitTerm + result.CoverageTerm + result.ComplexityTerm
	return result, nil
}

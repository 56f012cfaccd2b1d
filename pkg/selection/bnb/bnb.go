// Package bnb is a reference branch-and-bound backend for
// pkg/selection.Solver. No ecosystem pure-Go MIP/ILP library surfaced
// anywhere in the retrieval pack's dependency graphs (see DESIGN.md),
// so this package exists to make pkg/selection usable standalone; any
// binding to an external MIP solver satisfying the Solver interface is
// a drop-in replacement.
package bnb

import (
	"time"

	"github.com/chazu/lignin/pkg/selection"
	"gonum.org/v1/gonum/mat"
)

// Solver is a depth-first branch-and-bound solver over binary decision
// variables. It keeps interval bounds on each constraint row's
// remaining (unassigned) contribution to prune branches that cannot
// possibly become feasible, and tracks the best feasible objective
// found as the search incumbent.
//
// The all-zero vector is always a feasible starting incumbent for the
// formulations pkg/selection builds (every constraint there is
// satisfied at x≡0), so SolveBIP never returns StatusInfeasible for
// those; a general caller could still pass a problem that has no
// feasible point once VarInteger variables are unconstrained, which
// also resolves to an all-zero incumbent check failing and is reported
// as StatusInfeasible.
type Solver struct {
	// MaxNodes bounds the number of search-tree nodes visited, as a
	// safety backstop independent of the wall-clock time limit. Zero
	// means unbounded (only the time limit applies).
	MaxNodes int
}

// New returns a Solver with no node limit.
func New() *Solver {
	return &Solver{}
}

var _ selection.Solver = (*Solver)(nil)

// SolveBIP implements selection.Solver.
func (s *Solver) SolveBIP(
	objective []float64,
	constraints *mat.Dense,
	senses []selection.Sense,
	rhs []float64,
	kinds []selection.VarKind,
	timeLimit time.Duration,
	gap float64,
) (selection.Status, []float64, float64, error) {
	n := len(objective)
	if n == 0 {
		return selection.StatusOptimal, nil, 0, nil
	}

	zero := make([]float64, n)
	zeroFeasible := feasible(constraints, senses, rhs, zero)

	search := &search{
		objective:   objective,
		constraints: constraints,
		senses:      senses,
		rhs:         rhs,
		kinds:       kinds,
		maxNodes:    s.MaxNodes,
		assignment:  make([]float64, n),
		fixed:       make([]bool, n),
	}
	for i := range search.assignment {
		search.assignment[i] = -1
	}

	if zeroFeasible {
		search.best = append([]float64(nil), zero...)
		search.bestObj = 0
		search.haveBest = true
	}

	if timeLimit > 0 {
		search.deadline = time.Now().Add(timeLimit)
	}

	search.run()

	if !search.haveBest {
		return selection.StatusInfeasible, nil, 0, nil
	}
	status := selection.StatusOptimal
	if search.timedOut {
		status = selection.StatusTimeLimit
	} else if search.nodeLimited {
		status = selection.StatusFeasibleGapReached
	}
	return status, search.best, search.bestObj, nil
}

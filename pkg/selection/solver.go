// Package selection formulates and solves the face-selection binary
// integer program (spec.md §4.3): choose a subset of hypothesis-graph
// faces that balances data fit, coverage, and complexity, subject to a
// hard 2-manifold equality constraint on every edge with two or more
// candidate faces.
package selection

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

// Status is a solver's terminal outcome, matching spec.md §6.3 verbatim.
type Status int

const (
	StatusOptimal Status = iota
	StatusFeasibleGapReached
	StatusTimeLimit
	StatusInfeasible
	StatusSolverError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasibleGapReached:
		return "feasible_gap_reached"
	case StatusTimeLimit:
		return "time_limit"
	case StatusInfeasible:
		return "infeasible"
	case StatusSolverError:
		return "solver_error"
	default:
		return "unknown"
	}
}

// VarKind is a decision variable's domain, matching spec.md §6.3.
type VarKind int

const (
	VarBinary VarKind = iota
	VarInteger
)

// Sense is a constraint row's relational operator.
type Sense int

const (
	SenseLE Sense = iota
	SenseEQ
	SenseGE
)

// Solver is the abstract pluggable MIP backend (spec.md §6.3). Any
// implementation — the reference pkg/selection/bnb backend or an
// external MIP/ILP binding — may be substituted.
type Solver interface {
	SolveBIP(
		objective []float64,
		constraints *mat.Dense,
		senses []Sense,
		rhs []float64,
		kinds []VarKind,
		timeLimit time.Duration,
		gap float64,
	) (Status, []float64, float64, error)
}

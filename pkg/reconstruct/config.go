package reconstruct

import (
	"log"
	"time"

	"github.com/chazu/lignin/pkg/selection"
)

// Config controls every stage of Reconstruct (spec.md §6.4). It is a
// plain struct, passed by value — per spec.md §5, the pipeline holds
// no process-global mutable state.
type Config struct {
	// Margin is the bounding box inflation fraction (spec.md §4.2 step
	// 1). Zero means the hypothesis package's default of 0.05.
	Margin float64
	// ResidualTolerance is ε for the support term (spec.md §4.2). Zero
	// means auto: 3·average point spacing.
	ResidualTolerance float64
	// AlphaScale is the c in the alpha-shape auto-α policy (spec.md
	// §4.1). Zero means alphashape.DefaultAlphaScale.
	AlphaScale float64
	// IncludeBBoxFaces adds the bounding box's six planes to the
	// arrangement as additional, zero-reward candidate faces, letting
	// the selector optionally close an otherwise-open rim (spec.md
	// §6.4). Default false leaves rim edges open.
	IncludeBBoxFaces bool

	// PlaneMergeAngleTolerance is the angular tolerance (radians)
	// used to detect input segments sharing the same supporting
	// plane before arrangement construction (spec.md §9's duplicate-
	// plane merge). Zero means 1e-3 rad.
	PlaneMergeAngleTolerance float64
	// PlaneMergeDistTolerance is the offset tolerance for the same
	// check. Zero means 1e-6.
	PlaneMergeDistTolerance float64

	// Weights are the BIP objective blend weights (spec.md §4.3). The
	// zero value selects selection.DefaultWeights(); any other value
	// must sum to 1, or Reconstruct fails with InvalidInput.
	Weights selection.Weights
	// ForbiddenFaces optionally forbids specific candidate faces from
	// selection (spec.md §4.3's "optional bounding-box faces may be
	// forbidden"), keyed by their would-be index in the hypothesis
	// graph's Faces slice. Leaving IncludeBBoxFaces false keeps
	// bounding-box faces out of the candidate set altogether.
	ForbiddenFaces map[int]bool

	// Solver is the BIP backend (spec.md §6.3). Nil selects the
	// reference pkg/selection/bnb solver.
	Solver selection.Solver
	// TimeLimit bounds the solver's wall-clock budget. Zero means no
	// limit.
	TimeLimit time.Duration
	// Gap is the solver's acceptable optimality gap.
	Gap float64

	// MaxWorkers bounds the worker pool used for per-segment alpha-shape
	// extraction (spec.md §5). Zero means runtime.NumCPU(); 1 forces
	// the single-threaded, fully deterministic path.
	MaxWorkers int
	// Logger receives stage-timing diagnostics. Nil means log.Default().
	Logger *log.Logger
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

func (c Config) planeMergeAngleTolerance() float64 {
	if c.PlaneMergeAngleTolerance > 0 {
		return c.PlaneMergeAngleTolerance
	}
	return 1e-3
}

func (c Config) planeMergeDistTolerance() float64 {
	if c.PlaneMergeDistTolerance > 0 {
		return c.PlaneMergeDistTolerance
	}
	return 1e-6
}

// Package reconstruct is the orchestration façade for PolyFit: it
// sequences validation, per-segment alpha-shape extraction, hypothesis
// generation, face selection, and mesh assembly behind a single
// synchronous entry point (spec.md §4.4), the same shape as the
// teacher's App.Evaluate sequencing engine evaluation, tessellation,
// and mesh conversion behind one call.
package reconstruct

import (
	"runtime"
	"sync"
	"time"

	"github.com/chazu/lignin/pkg/alphashape"
	"github.com/chazu/lignin/pkg/hypothesis"
	"github.com/chazu/lignin/pkg/meshio"
	"github.com/chazu/lignin/pkg/segment"
	"github.com/chazu/lignin/pkg/selection"
	"github.com/chazu/lignin/pkg/selection/bnb"
	"github.com/pkg/errors"
)

// Diagnostics reports the pipeline's stage timings and the selector's
// outcome, per spec.md §6.2 ("final objective value, component terms,
// number of selected faces, solver status, elapsed time").
type Diagnostics struct {
	// Objective is the true spec.md §4.3 objective value: the sum of
	// FitTerm, CoverageTerm, and ComplexityTerm, with the constant
	// λ_fit+λ_cov terms that Formulate drops from the LP for solver
	// efficiency restored.
	Objective      float64
	FitTerm        float64
	CoverageTerm   float64
	ComplexityTerm float64
	SelectedFaces  int
	TotalFaces     int
	SolverStatus   selection.Status
	AlphaShapeTime time.Duration
	HypothesisTime time.Duration
	SelectionTime  time.Duration
	TotalTime      time.Duration
}

// Reconstruct runs the full pipeline: validate → per-segment alpha-shape
// → hypothesis generation → scoring → BIP formulation and solve → mesh
// assembly (spec.md §4.4).
func Reconstruct(segments []segment.Segment, cfg Config) (*meshio.Mesh, Diagnostics, error) {
	var diag Diagnostics
	start := time.Now()
	log := cfg.logger()

	if err := validate(segments, cfg); err != nil {
		return nil, diag, newError(InvalidInput, err)
	}

	segments = segment.MergeDuplicatePlanes(segments, cfg.planeMergeAngleTolerance(), cfg.planeMergeDistTolerance())

	alphaStart := time.Now()
	alphaMeshes, err := buildAlphaShapes(segments, cfg)
	diag.AlphaShapeTime = time.Since(alphaStart)
	if err != nil {
		return nil, diag, newError(GeometryFailure, err)
	}
	log.Printf("reconstruct: alpha-shape extraction took %v", diag.AlphaShapeTime)

	inputs := make([]hypothesis.Input, len(segments))
	for i, s := range segments {
		inputs[i] = hypothesis.Input{Segment: s, Alpha: alphaMeshes[i]}
	}

	hypStart := time.Now()
	graph, err := hypothesis.Generate(inputs, hypothesis.Config{
		Margin:            cfg.Margin,
		ResidualTolerance: cfg.ResidualTolerance,
		IncludeBBoxFaces:  cfg.IncludeBBoxFaces,
	})
	diag.HypothesisTime = time.Since(hypStart)
	if err != nil {
		return nil, diag, newError(GeometryFailure, errors.Wrap(err, "hypothesis generation"))
	}
	log.Printf("reconstruct: hypothesis generation took %v, %d faces", diag.HypothesisTime, len(graph.Faces))
	diag.TotalFaces = len(graph.Faces)

	if graph.IsEmpty() {
		diag.TotalTime = time.Since(start)
		return &meshio.Mesh{}, diag, newError(EmptyResult, errors.New("hypothesis graph has zero candidate faces"))
	}

	weights := cfg.Weights
	if weights.Fit == 0 && weights.Cov == 0 && weights.Complexity == 0 {
		weights = selection.DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, diag, newError(InvalidInput, err)
	}
	solver := cfg.Solver
	if solver == nil {
		solver = bnb.New()
	}

	selStart := time.Now()
	result, err := selection.Solve(graph, weights, solver, cfg.ForbiddenFaces, cfg.TimeLimit, cfg.Gap)
	diag.SelectionTime = time.Since(selStart)
	if err != nil {
		return nil, diag, newError(SolverUnavailable, err)
	}
	log.Printf("reconstruct: selection took %v, status=%v, %d/%d faces selected", diag.SelectionTime, result.Status, len(result.SelectedFaces), len(graph.Faces))

	diag.Objective = result.Objective
	diag.FitTerm = result.FitTerm
	diag.CoverageTerm = result.CoverageTerm
	diag.ComplexityTerm = result.ComplexityTerm
	diag.SelectedFaces = len(result.SelectedFaces)
	diag.SolverStatus = result.Status

	if result.Status == selection.StatusInfeasible {
		diag.TotalTime = time.Since(start)
		return &meshio.Mesh{}, diag, newError(SolverFailure, errors.New("solver reported infeasible for a formulation that admits the all-zero point"))
	}

	mesh := assembleMesh(graph, result)
	diag.TotalTime = time.Since(start)
	if len(result.SelectedFaces) == 0 {
		return mesh, diag, newError(EmptyResult, errors.New("solver selected no faces"))
	}
	return mesh, diag, nil
}

func validate(segments []segment.Segment, cfg Config) error {
	if len(segments) == 0 {
		return errors.New("no input segments")
	}
	tolerance := cfg.ResidualTolerance
	if tolerance <= 0 {
		tolerance = 1e-3
	}
	for i, s := range segments {
		if err := s.Validate(tolerance); err != nil {
			return errors.Wrapf(err, "segment %d", i)
		}
	}
	return nil
}

// buildAlphaShapes extracts each segment's alpha-shape mesh, fanned out
// over a bounded worker pool — plain goroutines writing into a
// per-index result slice, joined with a sync.WaitGroup, the same shape
// as the teacher's single-goroutine timeout pattern generalized to N
// workers.
func buildAlphaShapes(segments []segment.Segment, cfg Config) ([]alphashape.Mesh, error) {
	workers := cfg.MaxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(segments) {
		workers = len(segments)
	}
	if workers < 1 {
		workers = 1
	}

	out := make([]alphashape.Mesh, len(segments))
	if workers == 1 {
		for i, s := range segments {
			out[i] = alphashape.Build(s, 0, cfg.AlphaScale)
		}
		return out, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = alphashape.Build(segments[i], 0, cfg.AlphaScale)
			}
		}()
	}
	for i := range segments {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out, nil
}

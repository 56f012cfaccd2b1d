package bnb

import (
	"time"

	"github.com/chazu/lignin/pkg/selection"
	"gonum.org/v1/gonum/mat"
)

type search struct {
	objective   []float64
	constraints *mat.Dense
	senses      []selection.Sense
	rhs         []float64
	kinds       []selection.VarKind
	maxNodes    int
	deadline    time.Time

	assignment []float64 // -1 means unassigned
	fixed      []bool

	best     []float64
	bestObj  float64
	haveBest bool

	nodes       int
	timedOut    bool
	nodeLimited bool
}

func (s *search) run() {
	s.dfs(0)
}

func (s *search) dfs(idx int) {
	if s.timedOut || s.nodeLimited {
		return
	}
	s.nodes++
	if s.maxNodes > 0 && s.nodes > s.maxNodes {
		s.nodeLimited = true
		return
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.timedOut = true
		return
	}

	n := len(s.objective)
	if idx == n {
		obj := dot(s.objective, s.assignment)
		if !s.haveBest || obj < s.bestObj {
			s.best = append([]float64(nil), s.assignment...)
			s.bestObj = obj
			s.haveBest = true
		}
		return
	}

	// Try the branch order most likely to help the objective first: a
	// negative coefficient rewards setting the variable to 1.
	order := [2]float64{0, 1}
	if s.objective[idx] < 0 {
		order = [2]float64{1, 0}
	}

	for _, v := range order {
		s.assignment[idx] = v
		if s.partialFeasible(idx + 1) {
			s.dfs(idx + 1)
		}
		if s.timedOut || s.nodeLimited {
			s.assignment[idx] = -1
			return
		}
	}
	s.assignment[idx] = -1
}

// partialFeasible reports whether the constraint system can still be
// satisfied given the variables assigned in [0,assignedUpTo) and the
// remaining variables free in {0,1}. Variable kinds are not consulted:
// a VarInteger variable is bounded to {0,1} like a binary one.
// It bounds each constraint row's contribution from the unassigned
// tail and rejects rows whose achievable range cannot reach rhs.
func (s *search) partialFeasible(assignedUpTo int) bool {
	rows, cols := s.constraints.Dims()
	for r := 0; r < rows; r++ {
		var sum, lo, hi float64
		for c := 0; c < cols; c++ {
			coef := s.constraints.At(r, c)
			if coef == 0 {
				continue
			}
			if c < assignedUpTo {
				sum += coef * s.assignment[c]
				continue
			}
			if coef > 0 {
				hi += coef
			} else {
				lo += coef
			}
		}
		min, max := sum+lo, sum+hi
		switch s.senses[r] {
		case selection.SenseEQ:
			if s.rhs[r] < min || s.rhs[r] > max {
				return false
			}
		case selection.SenseLE:
			if min > s.rhs[r] {
				return false
			}
		case selection.SenseGE:
			if max < s.rhs[r] {
				return false
			}
		}
	}
	return true
}

func feasible(constraints *mat.Dense, senses []selection.Sense, rhs []float64, x []float64) bool {
	rows, cols := constraints.Dims()
	for r := 0; r < rows; r++ {
		var sum float64
		for c := 0; c < cols; c++ {
			sum += constraints.At(r, c) * x[c]
		}
		switch senses[r] {
		case selection.SenseEQ:
			if sum != rhs[r] {
				return false
			}
		case selection.SenseLE:
			if sum > rhs[r] {
				return false
			}
		case selection.SenseGE:
			if sum < rhs[r] {
				return false
			}
		}
	}
	return true
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

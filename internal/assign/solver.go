// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

// Package assign implements the shift assignment pipeline: input validation,
// patient preprocessing, the hard safety rules, preference scoring, the
// mixed-integer optimization program, the greedy fallback, and the result
// assembly. All state is request-scoped; a Solver carries only configuration.
package assign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
)

// SolveTimeLimit bounds the wall-clock time of one solver invocation.
const SolveTimeLimit = 30 * time.Second

// ValidationError carries all precheck failures for one request. No partial
// solve happens when it is returned.
type ValidationError struct {
	Details []string
}

// Error implements the builtin error interface.
func (e ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// ErrNoFeasibleSolution is returned when neither the optimizer nor the greedy
// fallback can place a single patient.
var ErrNoFeasibleSolution = errors.New("no feasible solution")

// Solver runs the assignment pipeline. Instances are safe for concurrent use;
// each Optimize call works on request-local state only.
type Solver struct {
	// TimeLimit bounds the MILP search (default: SolveTimeLimit).
	TimeLimit time.Duration
	// BaseWeights are the configured defaults; request configs override them.
	BaseWeights core.Weights
	// slot for test doubles
	timeNow func() time.Time
}

// NewSolver returns a Solver with the default time limit.
func NewSolver(baseWeights core.Weights) *Solver {
	return &Solver{
		TimeLimit:   SolveTimeLimit,
		BaseWeights: baseWeights,
		timeNow:     time.Now,
	}
}

// OverrideTimeNow replaces the solver's clock; tests use this to get
// deterministic timestamps and durations.
func (s *Solver) OverrideTimeNow(timeNow func() time.Time) *Solver {
	s.timeNow = timeNow
	return s
}

// Optimize runs the full pipeline for one request. The error is either a
// ValidationError, ErrNoFeasibleSolution, or an internal failure of the
// solver backend; callers map these to their transport's error shapes.
func (s *Solver) Optimize(ctx context.Context, nurses []core.Nurse, patients []core.Patient, cfg core.WeightConfig) (*Result, error) {
	if details := core.ValidateInput(nurses, patients); len(details) > 0 {
		return nil, ValidationError{Details: details}
	}

	weights := cfg.Resolve(s.BaseWeights)
	preprocessed := PreprocessPatients(patients)
	m := buildModel(nurses, preprocessed, weights)
	startedAt := s.timeNow()

	timeLimit := s.TimeLimit
	if timeLimit <= 0 {
		timeLimit = SolveTimeLimit
	}
	solveCtx, cancel := context.WithTimeout(ctx, timeLimit)
	defer cancel()

	pairs, objective, err := solveMILP(solveCtx, m)
	if err == nil {
		return s.assembleResult(m, pairs, resultOptions{
			objective: objective,
			startedAt: startedAt,
		}), nil
	}
	if !errors.Is(err, errInfeasible) {
		return nil, fmt.Errorf("solver backend failed: %w", err)
	}

	fallbackPairs, fallbackObjective, unassigned := greedyFallback(m)
	if len(fallbackPairs) == 0 {
		return nil, ErrNoFeasibleSolution
	}
	return s.assembleResult(m, fallbackPairs, resultOptions{
		fallback:   true,
		unassigned: unassigned,
		objective:  fallbackObjective,
		startedAt:  startedAt,
	}), nil
}

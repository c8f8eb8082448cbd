// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package assign

import (
	"context"
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
	"github.com/inteleqtus/bmt-assignment-optimizer/internal/milp"
)

const (
	// soft penalty per patient beyond the ideal 1:3 ratio
	excessPenalty = 5.0
	idealLoad     = 3
	// excess is capped at the per-nurse maximum of 4 patients
	excessMax = 4
)

// errInfeasible reports that the optimization program has no integer-feasible
// point (or none was found within the time limit). It triggers the greedy
// fallback and is never surfaced to callers.
var errInfeasible = errors.New("assignment program is infeasible")

// pair is one (nurse, patient) assignment, by index into the model's slices.
type pair struct {
	nurse   int
	patient int
}

// solveMILP builds the 0/1 assignment program for the model, runs the
// branch-and-bound solver under the context's deadline, and extracts the
// chosen pairs. A timed-out incumbent counts as a valid (feasible) result.
func solveMILP(ctx context.Context, m model) (pairs []pair, objective float64, err error) {
	problem := buildProgram(m)
	solution, err := problem.Solve(ctx)
	switch {
	case err == nil:
		// proceed to extraction
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		if solution.X == nil {
			return nil, 0, errInfeasible
		}
		// accept the best incumbent found before the deadline
	case errors.Is(err, milp.ErrNoIntegerSolution):
		return nil, 0, errInfeasible
	default:
		return nil, 0, err
	}

	nPatients := len(m.patients)
	for i := range m.nurses {
		for j := range m.patients {
			if solution.X[i*nPatients+j] > 0.5 {
				pairs = append(pairs, pair{nurse: i, patient: j})
			}
		}
	}
	// the program minimizes the negated preference objective
	return pairs, -solution.Objective, nil
}

// buildProgram translates the model into a general-form MILP:
//
//	maximize   sum of score[i][j]*x[i][j]  -  5 * sum of excess[i]
//	s.t.       each patient is assigned exactly once
//	           each nurse stays within her per-shift capacity
//	           inadmissible pairs are fixed to zero
//	           certified nurses carry at most 2 IV-chemo patients
//	           the unit carries at most 20 patients in total
//	           excess[i] >= (assigned to nurse i) - 3
//
// Variables are laid out as [x[0][0] .. x[n-1][m-1], excess[0] .. excess[n-1]].
// The milp package minimizes, so all preference scores are negated.
func buildProgram(m model) milp.Problem {
	nNurses := len(m.nurses)
	nPatients := len(m.patients)
	nVars := nNurses*nPatients + nNurses
	xIndex := func(i, j int) int { return i*nPatients + j }
	excessIndex := func(i int) int { return nNurses*nPatients + i }

	c := make([]float64, nVars)
	integral := make([]bool, nVars)
	for i := range m.nurses {
		for j := range m.patients {
			c[xIndex(i, j)] = -m.scores[i][j]
			integral[xIndex(i, j)] = true
		}
		c[excessIndex(i)] = excessPenalty
	}

	// equalities: patient coverage
	aEq := mat.NewDense(nPatients, nVars, nil)
	bEq := make([]float64, nPatients)
	for j := range m.patients {
		for i := range m.nurses {
			aEq.Set(j, xIndex(i, j), 1)
		}
		bEq[j] = 1
	}

	// inequalities, assembled row by row
	var gRows [][]float64
	var h []float64
	addRow := func(limit float64, set func(row []float64)) {
		row := make([]float64, nVars)
		set(row)
		gRows = append(gRows, row)
		h = append(h, limit)
	}

	ivPatients := 0
	for _, p := range m.patients {
		if p.IsIVChemo() {
			ivPatients++
		}
	}

	for i, n := range m.nurses {
		i := i

		// nurse capacity
		addRow(float64(n.EffectiveMaxPatients()), func(row []float64) {
			for j := range m.patients {
				row[xIndex(i, j)] = 1
			}
		})

		// IV-chemo cap for certified nurses (non-certified nurses have all
		// their IV pairs blocked below)
		if n.IsIVCertified() && ivPatients > 0 {
			addRow(core.IVChemoCapPerNurse, func(row []float64) {
				for j, p := range m.patients {
					if p.IsIVChemo() {
						row[xIndex(i, j)] = 1
					}
				}
			})
		}

		// soft-penalty link: excess_i >= load_i - 3, encoded as load_i - excess_i <= 3
		addRow(idealLoad, func(row []float64) {
			for j := range m.patients {
				row[xIndex(i, j)] = 1
			}
			row[excessIndex(i)] = -1
		})
		addRow(excessMax, func(row []float64) {
			row[excessIndex(i)] = 1
		})

		// safety: inadmissible pairs are fixed to zero
		for j := range m.patients {
			if !m.admissible[i][j] {
				j := j
				addRow(0, func(row []float64) {
					row[xIndex(i, j)] = 1
				})
			}
		}
	}

	// unit capacity
	addRow(core.UnitCapacity, func(row []float64) {
		for i := range m.nurses {
			for j := range m.patients {
				row[xIndex(i, j)] = 1
			}
		}
	})

	gData := make([]float64, 0, len(gRows)*nVars)
	for _, row := range gRows {
		gData = append(gData, row...)
	}

	return milp.Problem{
		C:        c,
		AEq:      aEq,
		BEq:      bEq,
		GIneq:    mat.NewDense(len(gRows), nVars, gData),
		HIneq:    h,
		Integral: integral,
	}
}

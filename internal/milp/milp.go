// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

// Package milp solves small mixed-integer linear programs by branch and bound
// over LP relaxations. Relaxations are solved with gonum's simplex
// implementation. The search is single-threaded and depth-first with a fixed
// branching order, so equal problems always yield equal solutions.
package milp

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Problem is a mixed-integer linear program in general form:
//
//	minimize  C·x
//	s.t.      GIneq·x <= HIneq
//	          AEq·x    = BEq
//	          x       >= 0
//
// Variables flagged in Integral must take integer values in a solution.
// Both constraint blocks must contain at least one row.
type Problem struct {
	C     []float64
	AEq   *mat.Dense
	BEq   []float64
	GIneq *mat.Dense
	HIneq []float64

	// Integral[i] applies the integrality constraint to variable i.
	// Must have the same length as C.
	Integral []bool
}

// Solution is an integer-feasible point of a Problem.
type Solution struct {
	X         []float64
	Objective float64
}

var (
	// ErrNoIntegerSolution is returned when the enumeration tree is exhausted
	// without finding any integer-feasible point.
	ErrNoIntegerSolution = errors.New("no integer-feasible solution found")
	// ErrUnbounded is returned when a relaxation is unbounded below.
	ErrUnbounded = errors.New("problem is unbounded")
)

const (
	// integrality tolerance: values closer than this to an integer count as integral
	intTol = 1e-6
	// bound tolerance for pruning subproblems against the incumbent
	pruneTol = 1e-9
)

// simplex failures that mean "this subproblem has no usable optimum" and
// just prune the node instead of aborting the search
var prunableFailures = map[error]bool{
	lp.ErrInfeasible: true,
	lp.ErrSingular:   true,
	lp.ErrZeroRow:    true,
	lp.ErrZeroColumn: true,
}

// Solve runs the branch-and-bound search. When ctx expires mid-search, the
// best incumbent found so far is returned together with ctx.Err(); callers
// decide whether a timed-out incumbent is acceptable. Without an incumbent,
// expiry returns ctx.Err() alone.
func (p Problem) Solve(ctx context.Context) (Solution, error) {
	if len(p.Integral) != len(p.C) {
		return Solution{}, errors.New("integrality vector length does not match objective vector")
	}

	var incumbent *Solution
	stack := []subProblem{{}} // root node: no branching bounds yet

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			if incumbent != nil {
				return *incumbent, err
			}
			return Solution{}, err
		}

		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		objective, x, err := p.solveRelaxation(node)
		if err != nil {
			if prunableFailures[err] {
				continue
			}
			if errors.Is(err, lp.ErrUnbounded) {
				return Solution{}, ErrUnbounded
			}
			return Solution{}, err
		}

		// bound: the relaxation objective is a lower bound for the subtree
		if incumbent != nil && objective >= incumbent.Objective-pruneTol {
			continue
		}

		branchVar, fractional := p.findFractional(x)
		if !fractional {
			// recompute the objective from the snapped point so that callers
			// see exact coefficient sums instead of simplex arithmetic noise
			snapped := roundIntegral(x, p.Integral)
			candidate := Solution{X: snapped, Objective: floats.Dot(p.C, snapped)}
			if incumbent == nil || candidate.Objective < incumbent.Objective {
				incumbent = &candidate
			}
			continue
		}

		// branch on the first fractional integer variable; explore the
		// floor branch first (LIFO order, so push the ceil branch below it)
		floorVal := math.Floor(x[branchVar])
		stack = append(stack,
			node.branch(branchVar, floorVal+1, false),
			node.branch(branchVar, floorVal, true),
		)
	}

	if incumbent == nil {
		return Solution{}, ErrNoIntegerSolution
	}
	return *incumbent, nil
}

// subProblem is one node of the enumeration tree, identified by the branching
// bounds accumulated on the path from the root.
type subProblem struct {
	bounds []branchBound
}

// branchBound restricts one variable: x[Var] <= Limit if Upper, else x[Var] >= Limit.
type branchBound struct {
	Var   int
	Limit float64
	Upper bool
}

func (s subProblem) branch(varIdx int, limit float64, upper bool) subProblem {
	child := subProblem{bounds: make([]branchBound, len(s.bounds), len(s.bounds)+1)}
	copy(child.bounds, s.bounds)
	child.bounds = append(child.bounds, branchBound{Var: varIdx, Limit: limit, Upper: upper})
	return child
}

// solveRelaxation solves the LP relaxation of this node via gonum's simplex.
// The node's branching bounds are appended to the problem's inequality block,
// then the whole program is brought into standard form with lp.Convert.
func (p Problem) solveRelaxation(node subProblem) (float64, []float64, error) {
	nVar := len(p.C)
	ineqRows, _ := p.GIneq.Dims()
	totalRows := ineqRows + len(node.bounds)

	g := mat.NewDense(totalRows, nVar, nil)
	h := make([]float64, totalRows)
	for i := 0; i < ineqRows; i++ {
		for j := 0; j < nVar; j++ {
			g.Set(i, j, p.GIneq.At(i, j))
		}
		h[i] = p.HIneq[i]
	}
	for i, bound := range node.bounds {
		row := ineqRows + i
		if bound.Upper {
			g.Set(row, bound.Var, 1)
			h[row] = bound.Limit
		} else {
			// x >= limit, expressed as -x <= -limit
			g.Set(row, bound.Var, -1)
			h[row] = -bound.Limit
		}
	}

	cStd, aStd, bStd := lp.Convert(p.C, g, h, p.AEq, p.BEq)
	objective, xStd, err := lp.Simplex(cStd, aStd, bStd, 0, nil)
	if err != nil {
		return 0, nil, err
	}

	// lp.Convert splits each variable into a positive and a negative part;
	// the standard-form vector is laid out as [x⁺, x⁻, slacks]
	x := make([]float64, nVar)
	for i := range x {
		x[i] = xStd[i] - xStd[nVar+i]
	}
	return objective, x, nil
}

// findFractional returns the first integral-flagged variable whose relaxation
// value is not (numerically) an integer.
func (p Problem) findFractional(x []float64) (idx int, found bool) {
	for i, integral := range p.Integral {
		if !integral {
			continue
		}
		if math.Abs(x[i]-math.Round(x[i])) > intTol {
			return i, true
		}
	}
	return 0, false
}

// roundIntegral snaps near-integer values of integral variables to exact
// integers so that downstream extraction never sees 0.9999999 artifacts.
func roundIntegral(x []float64, integral []bool) []float64 {
	rounded := make([]float64, len(x))
	for i, v := range x {
		if integral[i] {
			rounded[i] = math.Round(v)
		} else {
			rounded[i] = v
		}
	}
	return rounded
}

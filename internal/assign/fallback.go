// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package assign

import (
	"sort"

	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
)

// fallbackLoadPenalty dampens the greedy choice by the acuity already carried
// by a nurse, spreading heavy patients across the shift. The value is kept
// for compatibility with the historical implementation.
const fallbackLoadPenalty = 0.3

// greedyFallback computes a deterministic heuristic assignment for the cases
// where the optimization program has no integer-feasible point. Patients are
// taken in descending final acuity; each one goes to the admissible nurse
// with remaining capacity that maximizes score minus the load penalty.
// Patients that no nurse can take remain unassigned.
func greedyFallback(m model) (pairs []pair, objective float64, unassigned int) {
	order := make([]int, len(m.patients))
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return m.patients[order[a]].FinalAcuity > m.patients[order[b]].FinalAcuity
	})

	counts := make([]int, len(m.nurses))
	acuityLoads := make([]int, len(m.nurses))
	ivCounts := make([]int, len(m.nurses))
	totalAssigned := 0

	for _, j := range order {
		p := m.patients[j]
		if totalAssigned >= core.UnitCapacity {
			unassigned++
			continue
		}

		best := -1
		bestValue := 0.0
		for i, n := range m.nurses {
			if !m.admissible[i][j] {
				continue
			}
			if counts[i] >= n.EffectiveMaxPatients() {
				continue
			}
			if p.IsIVChemo() && ivCounts[i] >= core.IVChemoCapPerNurse {
				continue
			}
			value := m.scores[i][j] - fallbackLoadPenalty*float64(acuityLoads[i])
			// strict comparison: ties go to the earlier nurse in the roster
			if best == -1 || value > bestValue {
				best = i
				bestValue = value
			}
		}

		if best == -1 {
			unassigned++
			continue
		}
		pairs = append(pairs, pair{nurse: best, patient: j})
		counts[best]++
		acuityLoads[best] += p.FinalAcuity
		ivCounts[best] += boolToInt(p.IsIVChemo())
		totalAssigned++
		objective += m.scores[best][j]
	}

	// report the same objective shape as the optimizer so that the two
	// result kinds are comparable
	for _, count := range counts {
		if count > idealLoad {
			objective -= excessPenalty * float64(count-idealLoad)
		}
	}

	return pairs, objective, unassigned
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package assign

import (
	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
)

// model caches everything the solver and the fallback need about one request:
// the roster, the preprocessed census, and the full admissibility and score
// matrices.
type model struct {
	nurses   []core.Nurse
	patients []core.Patient
	weights  core.Weights

	admissible [][]bool
	scores     [][]float64
	// number of (nurse, patient) pairs fixed to zero by a safety rule
	blocked int
}

func buildModel(nurses []core.Nurse, patients []core.Patient, weights core.Weights) model {
	m := model{
		nurses:     nurses,
		patients:   patients,
		weights:    weights,
		admissible: make([][]bool, len(nurses)),
		scores:     make([][]float64, len(nurses)),
	}
	for i, n := range nurses {
		m.admissible[i] = make([]bool, len(patients))
		m.scores[i] = make([]float64, len(patients))
		for j, p := range patients {
			if Admissible(n, p) {
				m.admissible[i][j] = true
				m.scores[i][j] = Score(n, p, weights)
			} else {
				m.blocked++
			}
		}
	}
	return m
}

// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package assign

import (
	"time"

	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
)

var testClock = time.Date(2025, 8, 25, 7, 0, 0, 0, time.UTC)

func testSolver() *Solver {
	s := NewSolver(core.DefaultWeights())
	return s.OverrideTimeNow(func() time.Time { return testClock })
}

func intPtr(value int) *int {
	return &value
}

func testNurse(id string, skill int) core.Nurse {
	return core.Nurse{
		ID:          id,
		Name:        "Nurse " + id,
		SkillLevel:  skill,
		IVCert:      "Y",
		MaxPatients: intPtr(4),
	}
}

func testPatient(id string, acuity int) core.Patient {
	return core.Patient{
		ID:         id,
		Initials:   "T.P.",
		BaseAcuity: intPtr(acuity),
		ChemoType:  "none",
	}
}

// preprocessed single patient, convenient for oracle and score tests
func derived(p core.Patient) core.Patient {
	return PreprocessPatients([]core.Patient{p})[0]
}

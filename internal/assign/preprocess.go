// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package assign

import (
	"strings"

	"github.com/mohae/deepcopy"

	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
)

// PreprocessPatients derives the effective attributes for each patient on a
// deep copy of the census. The caller's slice is never mutated. The
// derivation is per-patient and therefore order-independent.
func PreprocessPatients(patients []core.Patient) []core.Patient {
	copied := deepcopy.Copy(patients).([]core.Patient)
	for i := range copied {
		derivePatientAttributes(&copied[i])
	}
	return copied
}

func derivePatientAttributes(p *core.Patient) {
	base, ok := p.RawAcuity()
	if !ok {
		base = 1
	}
	if base < 1 {
		base = 1
	}
	if base > 10 {
		base = 10
	}

	acuity := base
	if p.IsNewAdmit() {
		acuity++
	}
	if p.HasMultipleChemoDoses() {
		acuity++
	}
	if acuity > 10 {
		acuity = 10
	}
	p.FinalAcuity = acuity

	// A caller-supplied Vesicant flag is deliberately ignored; vesicant risk
	// is always derived from line access and the administered medications.
	p.IsVesicant = p.HasPeripheralLine() &&
		(p.IsIVChemo() || containsRiskyIVMedication(p.IVMedications))
}

func containsRiskyIVMedication(medications string) bool {
	lowered := strings.ToLower(medications)
	return strings.Contains(lowered, "antiarrhythmics") || strings.Contains(lowered, "vasopressors")
}

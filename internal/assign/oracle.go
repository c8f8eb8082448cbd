// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package assign

import (
	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
)

// Violations lists all hard safety rules that forbid assigning patient p to
// nurse n. An empty result means the pair is admissible. These rules are
// absolute: a violating pair is fixed to zero in the optimization program and
// skipped by the greedy fallback.
func Violations(n core.Nurse, p core.Patient) []string {
	var violations []string

	if p.IsIVChemo() && !n.IsIVCertified() {
		violations = append(violations, "IV chemo requires certification")
	}
	if p.IsVesicant && n.SkillLevel < 2 {
		violations = append(violations, "Vesicant needs experienced nurse")
	}
	if p.FinalAcuity >= 8 && n.SkillLevel < 2 {
		violations = append(violations, "High acuity needs experienced nurse")
	}
	if p.IsNewAdmit() && n.SkillLevel < 2 {
		violations = append(violations, "New admit needs experienced nurse")
	}
	if p.IsCMVPositive() && n.IsPregnant() {
		violations = append(violations, "CMV positive patient cannot be assigned to pregnant nurse")
	}

	return violations
}

// Admissible reports whether assigning patient p to nurse n violates no hard
// safety rule.
func Admissible(n core.Nurse, p core.Patient) bool {
	return len(Violations(n, p)) == 0
}

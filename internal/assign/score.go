// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package assign

import (
	"math"
	"strings"

	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
)

// Score computes the preference value of assigning patient p to nurse n under
// the given weights. It assumes the pair is admissible and that p has been
// preprocessed. Scores may be negative; higher is better.
func Score(n core.Nurse, p core.Patient, w core.Weights) float64 {
	score := 1.0

	// continuity: same caregiver as on the prior shift
	if n.ID != "" && n.ID == p.LastNurse {
		score += 10 * w.Continuity
	}

	// geography: same pod beats an adjacent pod beats everything else
	if samePod(n.PodPref, p.Pod) {
		score += 8 * w.Geography
	} else if adjacentPods(n.PodPref, p.Pod) {
		score += 4 * w.Geography
	}

	// skill-acuity fit: exactly one branch fires, first match wins
	acuity := p.FinalAcuity
	switch {
	case n.SkillLevel == 3 && acuity >= 8:
		score += 12 * w.Skill
	case n.SkillLevel == 3 && acuity >= 5 && acuity <= 7:
		score += 10 * w.Skill
	case n.SkillLevel == 2 && acuity >= 4 && acuity <= 8:
		score += 10 * w.Skill
	case n.SkillLevel == 1 && acuity <= 5:
		score += 8 * w.Skill
	default:
		score -= math.Abs(float64(3*n.SkillLevel-acuity)) * w.Skill
	}

	if p.IsVesicant && n.SkillLevel == 3 {
		score += 5 * w.Skill
	}
	if p.IsNewAdmit() && n.SkillLevel >= 2 {
		score += 3 * w.Skill
	}

	return score
}

func samePod(nursePod, patientPod string) bool {
	return nursePod != "" && strings.EqualFold(nursePod, patientPod)
}

// adjacentPods reports whether two single-letter pod identifiers are direct
// neighbors (e.g. A and B).
func adjacentPods(nursePod, patientPod string) bool {
	if len(nursePod) != 1 || len(patientPod) != 1 {
		return false
	}
	a := strings.ToUpper(nursePod)[0]
	b := strings.ToUpper(patientPod)[0]
	diff := int(a) - int(b)
	return diff == 1 || diff == -1
}

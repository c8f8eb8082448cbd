// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package assign

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
)

// PatientAssignment is one patient inside a nurse's result group. Field names
// are part of the wire contract and must not change.
type PatientAssignment struct {
	PatientID  string `json:"patient_id"`
	Initials   string `json:"initials"`
	Acuity     int    `json:"acuity"`
	Chemo      string `json:"chemo"`
	ChemoTime  string `json:"chemo_time"`
	Vesicant   string `json:"vesicant"`
	Continuity string `json:"continuity"`
}

// NurseAssignment is the per-nurse result group with its rollups.
type NurseAssignment struct {
	NurseID         string              `json:"nurse_id"`
	NurseName       string              `json:"nurse_name"`
	SkillLevel      int                 `json:"skill_level"`
	Phone           string              `json:"phone"`
	Patients        []PatientAssignment `json:"patients"`
	PatientCount    int                 `json:"patient_count"`
	TotalAcuity     int                 `json:"total_acuity"`
	IVChemoCount    int                 `json:"iv_chemo_count"`
	VesicantCount   int                 `json:"vesicant_count"`
	ContinuityCount int                 `json:"continuity_count"`
	NewAdmitCount   int                 `json:"new_admit_count"`
	RatioStatus     string              `json:"ratio_status"`
}

// Stats is the unit-wide summary of one optimization run.
type Stats struct {
	TotalPatients          int     `json:"total_patients"`
	NursesUsed             int     `json:"nurses_used"`
	UnitCapacityUsed       string  `json:"unit_capacity_used"`
	UnitCapacityPercentage float64 `json:"unit_capacity_percentage"`
	WorkloadVariance       int     `json:"workload_variance"`
	AverageAcuity          float64 `json:"average_acuity"`
	IdealRatios            int     `json:"ideal_ratios"`
	MaxRatios              int     `json:"max_ratios"`
	ContinuityPreserved    int     `json:"continuity_preserved"`
	BlockedAssignments     int     `json:"blocked_assignments"`
	ObjectiveValue         float64 `json:"objective_value"`
	SolutionTimeMillis     int64   `json:"solution_time_ms"`
	GeneratedAt            string  `json:"generated_at"`
	UnassignedPatients     *int    `json:"unassigned_patients,omitempty"`
}

// Result is the complete response payload of a successful run.
type Result struct {
	Success     bool              `json:"success"`
	Fallback    bool              `json:"fallback,omitempty"`
	Assignments []NurseAssignment `json:"assignments"`
	Stats       Stats             `json:"stats"`
}

type resultOptions struct {
	fallback   bool
	unassigned int
	objective  float64
	startedAt  time.Time
}

// assembleResult groups the chosen pairs by nurse and computes all rollups.
// Groups are sorted by nurse_id and patients within a group by patient_id;
// this post-sort is what makes equally-scored optima come out identically.
func (s *Solver) assembleResult(m model, pairs []pair, opts resultOptions) *Result {
	byNurse := make(map[int][]int)
	for _, pr := range pairs {
		byNurse[pr.nurse] = append(byNurse[pr.nurse], pr.patient)
	}

	nurseIdxs := make([]int, 0, len(byNurse))
	for i := range byNurse {
		nurseIdxs = append(nurseIdxs, i)
	}
	sort.Slice(nurseIdxs, func(a, b int) bool {
		return m.nurses[nurseIdxs[a]].ID < m.nurses[nurseIdxs[b]].ID
	})

	assignments := make([]NurseAssignment, 0, len(nurseIdxs))
	for _, i := range nurseIdxs {
		n := m.nurses[i]
		patientIdxs := byNurse[i]
		sort.Slice(patientIdxs, func(a, b int) bool {
			return m.patients[patientIdxs[a]].ID < m.patients[patientIdxs[b]].ID
		})

		group := NurseAssignment{
			NurseID:    n.ID,
			NurseName:  n.Name,
			SkillLevel: n.SkillLevel,
			Phone:      n.Phone,
			Patients:   make([]PatientAssignment, 0, len(patientIdxs)),
		}
		for _, j := range patientIdxs {
			p := m.patients[j]
			continuity := n.ID != "" && n.ID == p.LastNurse
			group.Patients = append(group.Patients, PatientAssignment{
				PatientID:  p.ID,
				Initials:   p.Initials,
				Acuity:     p.FinalAcuity,
				Chemo:      p.ChemoType,
				ChemoTime:  p.ChemoTime,
				Vesicant:   yesNo(p.IsVesicant),
				Continuity: yesNo(continuity),
			})
			group.TotalAcuity += p.FinalAcuity
			group.IVChemoCount += boolToInt(p.IsIVChemo())
			group.VesicantCount += boolToInt(p.IsVesicant)
			group.ContinuityCount += boolToInt(continuity)
			group.NewAdmitCount += boolToInt(p.IsNewAdmit())
		}
		group.PatientCount = len(group.Patients)
		if group.PatientCount <= idealLoad {
			group.RatioStatus = "ideal"
		} else {
			group.RatioStatus = "maximum"
		}
		assignments = append(assignments, group)
	}

	stats := Stats{
		TotalPatients:      len(m.patients),
		NursesUsed:         len(assignments),
		BlockedAssignments: m.blocked,
		ObjectiveValue:     roundToFourDecimals(opts.objective),
		SolutionTimeMillis: s.timeNow().Sub(opts.startedAt).Milliseconds(),
		GeneratedAt:        s.timeNow().UTC().Format("2006-01-02 15:04:05"),
	}

	assignedTotal := 0
	minAcuity, maxAcuity := math.MaxInt, 0
	acuitySum := 0
	for _, a := range assignments {
		assignedTotal += a.PatientCount
		acuitySum += a.TotalAcuity
		if a.TotalAcuity < minAcuity {
			minAcuity = a.TotalAcuity
		}
		if a.TotalAcuity > maxAcuity {
			maxAcuity = a.TotalAcuity
		}
		if a.PatientCount <= idealLoad {
			stats.IdealRatios++
		} else {
			stats.MaxRatios++
		}
		stats.ContinuityPreserved += a.ContinuityCount
	}
	stats.UnitCapacityUsed = fmt.Sprintf("%d/%d", assignedTotal, core.UnitCapacity)
	stats.UnitCapacityPercentage = roundToOneDecimal(float64(assignedTotal) / core.UnitCapacity * 100)
	if len(assignments) > 0 {
		stats.WorkloadVariance = maxAcuity - minAcuity
		stats.AverageAcuity = roundToOneDecimal(float64(acuitySum) / float64(len(assignments)))
	}
	if opts.fallback {
		unassigned := opts.unassigned
		stats.UnassignedPatients = &unassigned
	}

	return &Result{
		Success:     true,
		Fallback:    opts.fallback,
		Assignments: assignments,
		Stats:       stats,
	}
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

func roundToOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}

// roundToFourDecimals strips float arithmetic noise from the reported
// objective so that equal inputs serialize to equal payloads.
func roundToFourDecimals(value float64) float64 {
	return math.Round(value*10000) / 10000
}

// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
)

// UnitCapacity is the maximum number of patients the unit may hold per shift.
const UnitCapacity = 20

// IVChemoCapPerNurse is the maximum number of IV-chemo patients that a single
// certified nurse may carry.
const IVChemoCapPerNurse = 2

// ValidateInput runs all structural and feasibility prechecks on a request.
// A non-empty result means the request must be rejected without invoking the
// solver. Each entry is one human-readable error line.
func ValidateInput(nurses []Nurse, patients []Patient) []string {
	var errs []string

	for _, field := range missingNurseFields(nurses) {
		errs = append(errs, "Missing nurse field: "+field)
	}
	for _, field := range missingPatientFields(patients) {
		errs = append(errs, "Missing patient field: "+field)
	}

	if len(patients) > UnitCapacity {
		errs = append(errs, fmt.Sprintf("Too many patients: %d > %d unit capacity", len(patients), UnitCapacity))
	}

	ivPatients := 0
	for _, p := range patients {
		if p.IsIVChemo() {
			ivPatients++
		}
	}
	ivNurses := 0
	for _, n := range nurses {
		if n.IsIVCertified() {
			ivNurses++
		}
	}
	if ivPatients > ivNurses*IVChemoCapPerNurse {
		errs = append(errs, fmt.Sprintf("Insufficient IV certified nurses: %d patients need %d nurses", ivPatients, ivNurses))
	}

	totalCapacity := 0
	for _, n := range nurses {
		totalCapacity += n.EffectiveMaxPatients()
	}
	if totalCapacity < len(patients) {
		errs = append(errs, fmt.Sprintf("Insufficient total capacity: %d patient slots for %d patients", totalCapacity, len(patients)))
	}

	return errs
}

// missingNurseFields reports which required roster fields are absent from at
// least one nurse record, in a fixed order and without duplicates.
func missingNurseFields(nurses []Nurse) []string {
	var fields []string
	add := func(name string, missing func(Nurse) bool) {
		for _, n := range nurses {
			if missing(n) {
				fields = append(fields, name)
				return
			}
		}
	}
	add("Nurse_ID", func(n Nurse) bool { return n.ID == "" })
	add("Name", func(n Nurse) bool { return n.Name == "" })
	add("Skill_Level", func(n Nurse) bool { return n.SkillLevel == 0 })
	add("Chemo_IV_Cert", func(n Nurse) bool { return n.IVCert == "" })
	add("Max_Patients", func(n Nurse) bool { return n.MaxPatients == nil })
	return fields
}

func missingPatientFields(patients []Patient) []string {
	var fields []string
	add := func(name string, missing func(Patient) bool) {
		for _, p := range patients {
			if missing(p) {
				fields = append(fields, name)
				return
			}
		}
	}
	add("Patient_ID", func(p Patient) bool { return p.ID == "" })
	add("Initials", func(p Patient) bool { return p.Initials == "" })
	add("Acuity", func(p Patient) bool { _, ok := p.RawAcuity(); return !ok })
	add("Chemo_Type", func(p Patient) bool { return p.ChemoType == "" })
	return fields
}

// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(value int) *int {
	return &value
}

func validNurse(id string) Nurse {
	return Nurse{ID: id, Name: "Nurse " + id, SkillLevel: 3, IVCert: "Y", MaxPatients: intPtr(4)}
}

func validPatient(id string) Patient {
	return Patient{ID: id, Initials: "A.B.", BaseAcuity: intPtr(5), ChemoType: "none"}
}

func TestValidateInputAcceptsCompleteRequest(t *testing.T) {
	errs := ValidateInput(
		[]Nurse{validNurse("N1")},
		[]Patient{validPatient("P1")},
	)
	assert.Empty(t, errs)
}

func TestValidateInputMissingNurseFields(t *testing.T) {
	nurse := validNurse("N1")
	nurse.Name = ""
	nurse.MaxPatients = nil
	errs := ValidateInput([]Nurse{nurse}, []Patient{validPatient("P1")})
	assert.Contains(t, errs, "Missing nurse field: Name")
	assert.Contains(t, errs, "Missing nurse field: Max_Patients")
	assert.NotContains(t, errs, "Missing nurse field: Nurse_ID")
}

func TestValidateInputMissingPatientFields(t *testing.T) {
	patient := Patient{ID: "P1"}
	errs := ValidateInput([]Nurse{validNurse("N1")}, []Patient{patient})
	assert.Contains(t, errs, "Missing patient field: Initials")
	assert.Contains(t, errs, "Missing patient field: Acuity")
	assert.Contains(t, errs, "Missing patient field: Chemo_Type")
}

func TestValidateInputAcceptsLegacyAcuityField(t *testing.T) {
	patient := Patient{ID: "P1", Initials: "A.B.", LegacyAcuity: intPtr(5), ChemoType: "oral"}
	errs := ValidateInput([]Nurse{validNurse("N1")}, []Patient{patient})
	assert.Empty(t, errs)
}

func TestValidateInputUnitOverCapacity(t *testing.T) {
	nurses := []Nurse{validNurse("N1"), validNurse("N2"), validNurse("N3"), validNurse("N4"), validNurse("N5"), validNurse("N6")}
	patients := make([]Patient, 21)
	for i := range patients {
		patients[i] = validPatient("P" + string(rune('A'+i)))
	}
	errs := ValidateInput(nurses, patients)
	assert.Contains(t, errs, "Too many patients: 21 > 20 unit capacity")
}

func TestValidateInputInsufficientIVNurses(t *testing.T) {
	nurses := []Nurse{validNurse("N1")}
	patients := []Patient{validPatient("P1"), validPatient("P2"), validPatient("P3")}
	for i := range patients {
		patients[i].ChemoType = "IV"
	}
	errs := ValidateInput(nurses, patients)
	assert.Contains(t, errs, "Insufficient IV certified nurses: 3 patients need 1 nurses")
}

func TestValidateInputIVCheckIsCaseInsensitive(t *testing.T) {
	nurse := validNurse("N1")
	nurse.IVCert = "n"
	patient := validPatient("P1")
	patient.ChemoType = "iv"
	errs := ValidateInput([]Nurse{nurse}, []Patient{patient})
	assert.Contains(t, errs, "Insufficient IV certified nurses: 1 patients need 0 nurses")
}

func TestValidateInputInsufficientTotalCapacity(t *testing.T) {
	nurse := validNurse("N1")
	nurse.MaxPatients = intPtr(2)
	errs := ValidateInput([]Nurse{nurse}, []Patient{validPatient("P1"), validPatient("P2"), validPatient("P3")})
	assert.Contains(t, errs, "Insufficient total capacity: 2 patient slots for 3 patients")
}

func TestValidateInputCollectsAllErrors(t *testing.T) {
	nurse := Nurse{ID: "N1", SkillLevel: 1, IVCert: "N", MaxPatients: intPtr(1)}
	patients := []Patient{
		{ID: "P1", Initials: "A.B.", BaseAcuity: intPtr(5), ChemoType: "IV"},
		{ID: "P2", Initials: "C.D.", BaseAcuity: intPtr(5), ChemoType: "IV"},
		{ID: "P3", Initials: "E.F.", BaseAcuity: intPtr(5), ChemoType: "IV"},
	}
	errs := ValidateInput([]Nurse{nurse}, patients)
	assert.Len(t, errs, 3)
	assert.Contains(t, errs, "Missing nurse field: Name")
	assert.Contains(t, errs, "Insufficient IV certified nurses: 3 patients need 0 nurses")
	assert.Contains(t, errs, "Insufficient total capacity: 1 patient slots for 3 patients")
}

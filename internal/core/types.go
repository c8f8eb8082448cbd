// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"strings"
)

// Nurse describes one on-shift nurse as submitted by the caller. Field names
// follow the upstream roster export, hence the unusual JSON casing. Unknown
// fields are ignored on decode.
type Nurse struct {
	ID              string `json:"Nurse_ID"`
	Name            string `json:"Name"`
	Role            string `json:"Role"`
	SkillLevel      int    `json:"Skill_Level"`
	IVCert          string `json:"Chemo_IV_Cert"`
	MaxPatients     *int   `json:"Max_Patients"`
	PodPref         string `json:"Pod_Pref"`
	PregnancyStatus string `json:"Pregnancy_Status"`
	Phone           string `json:"Phone_Number"`
}

// DefaultMaxPatients is used when the roster omits Max_Patients.
const DefaultMaxPatients = 4

// EffectiveRole returns the nurse's role, defaulting to "RN".
func (n Nurse) EffectiveRole() string {
	if n.Role == "" {
		return "RN"
	}
	return n.Role
}

// EffectiveMaxPatients returns the per-nurse capacity, defaulting to 4 and
// clamping values above the unit maximum of 4.
func (n Nurse) EffectiveMaxPatients() int {
	if n.MaxPatients == nil {
		return DefaultMaxPatients
	}
	if *n.MaxPatients > DefaultMaxPatients {
		return DefaultMaxPatients
	}
	return *n.MaxPatients
}

// IsIVCertified reports whether this nurse may administer IV chemotherapy.
func (n Nurse) IsIVCertified() bool {
	return strings.EqualFold(n.IVCert, "Y")
}

// IsPregnant reports whether this nurse declared an active pregnancy.
// All other states (N, N/A, Prefer_Not_To_Say, Unknown, empty) count as "no"
// for the CMV exclusion rule.
func (n Nurse) IsPregnant() bool {
	return strings.EqualFold(n.PregnancyStatus, "Y")
}

// Patient describes one census entry as submitted by the caller, plus the
// attributes derived during preprocessing. The caller-supplied Vesicant field
// is decoded for compatibility, but preprocessing always overwrites the
// derived value.
type Patient struct {
	ID               string `json:"Patient_ID"`
	Initials         string `json:"Initials"`
	Pod              string `json:"Pod"`
	BaseAcuity       *int   `json:"Base_Acuity"`
	LegacyAcuity     *int   `json:"Acuity"`
	NewAdmit         string `json:"New_Admit"`
	ChemoType        string `json:"Chemo_Type"`
	ChemoFrequency   string `json:"Chemo_Frequency"`
	ChemoTime        string `json:"Chemo_Time"`
	CentralLine      string `json:"Central_Line"`
	IVMedications    string `json:"IV_Medications"`
	Isolation        string `json:"Isolation"`
	CMVStatus        string `json:"CMV_Status"`
	LastNurse        string `json:"Last_Nurse"`
	DeclaredVesicant string `json:"Vesicant"`

	// derived during preprocessing, never taken from the request
	FinalAcuity int  `json:"-"`
	IsVesicant  bool `json:"-"`
}

// RawAcuity returns the caller-supplied acuity, preferring Base_Acuity over
// the legacy Acuity field. ok is false if neither was given.
func (p Patient) RawAcuity() (value int, ok bool) {
	if p.BaseAcuity != nil {
		return *p.BaseAcuity, true
	}
	if p.LegacyAcuity != nil {
		return *p.LegacyAcuity, true
	}
	return 0, false
}

// IsIVChemo reports whether this patient receives intravenous chemotherapy.
func (p Patient) IsIVChemo() bool {
	return strings.EqualFold(p.ChemoType, "IV")
}

// IsNewAdmit reports whether this patient was admitted this shift.
func (p Patient) IsNewAdmit() bool {
	return strings.EqualFold(p.NewAdmit, "Y")
}

// IsCMVPositive reports whether this patient has positive CMV serostatus.
func (p Patient) IsCMVPositive() bool {
	return strings.EqualFold(p.CMVStatus, "Positive")
}

// HasMultipleChemoDoses reports whether chemo is given more than once per shift.
func (p Patient) HasMultipleChemoDoses() bool {
	return strings.EqualFold(p.ChemoFrequency, "Multiple")
}

// HasPeripheralLine reports whether the patient's only access is peripheral.
func (p Patient) HasPeripheralLine() bool {
	return strings.EqualFold(p.CentralLine, "peripheral")
}

// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
)

// sampleRequest returns the canned roster and census served by GET /test.
// The data matches the historical smoke-test payload of this service.
func sampleRequest() OptimizeRequest {
	return OptimizeRequest{
		Nurses: []core.Nurse{
			{ID: "N001", Name: "Johnson, Sarah", SkillLevel: 3, IVCert: "Y", MaxPatients: intPtr(4), Phone: "+1234567890"},
			{ID: "N002", Name: "Martinez, Lisa", SkillLevel: 2, IVCert: "Y", MaxPatients: intPtr(4), Phone: "+1234567891"},
			{ID: "N003", Name: "Chen, Michael", SkillLevel: 3, IVCert: "Y", MaxPatients: intPtr(4), Phone: "+1234567892"},
		},
		Patients: []core.Patient{
			{ID: "301A", Initials: "J.D.", LegacyAcuity: intPtr(8), ChemoType: "IV", LastNurse: "N001"},
			{ID: "302A", Initials: "M.K.", LegacyAcuity: intPtr(5), ChemoType: "oral", LastNurse: "N001"},
			{ID: "303A", Initials: "R.L.", LegacyAcuity: intPtr(3), ChemoType: "none", LastNurse: "N002"},
			{ID: "304A", Initials: "S.B.", LegacyAcuity: intPtr(6), ChemoType: "IV", LastNurse: "N002"},
			{ID: "305B", Initials: "T.M.", LegacyAcuity: intPtr(9), ChemoType: "IV", LastNurse: "N003"},
		},
	}
}

func intPtr(value int) *int {
	return &value
}

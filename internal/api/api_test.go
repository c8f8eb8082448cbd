// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/sapcc/go-bits/assert"
	"github.com/sapcc/go-bits/httpapi"

	"github.com/inteleqtus/bmt-assignment-optimizer/internal/assign"
	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
)

var testClock = time.Date(2025, 8, 25, 7, 0, 0, 0, time.UTC)

func testHandler() http.Handler {
	fixedNow := func() time.Time { return testClock }
	solver := assign.NewSolver(core.DefaultWeights()).OverrideTimeNow(fixedNow)
	return httpapi.Compose(
		NewAPI(solver).OverrideTimeNow(fixedNow),
		httpapi.WithoutLogging(),
	)
}

func TestHealthCheck(t *testing.T) {
	assert.HTTPRequest{
		Method:       "GET",
		Path:         "/",
		ExpectStatus: http.StatusOK,
		ExpectBody: assert.JSONObject{
			"status":    "healthy",
			"service":   "BMT Assignment Optimizer",
			"version":   "1.0.0",
			"timestamp": "2025-08-25 07:00:00",
		},
	}.Check(t, testHandler())
}

func TestOptimizeSuccess(t *testing.T) {
	assert.HTTPRequest{
		Method: "POST",
		Path:   "/optimize",
		Body: assert.JSONObject{
			"nurses": []assert.JSONObject{{
				"Nurse_ID": "N001", "Name": "Johnson, Sarah", "Skill_Level": 3,
				"Chemo_IV_Cert": "Y", "Max_Patients": 4, "Phone_Number": "+1234567890",
			}},
			"patients": []assert.JSONObject{{
				"Patient_ID": "301A", "Initials": "J.D.", "Base_Acuity": 5,
				"Chemo_Type": "none", "Last_Nurse": "N001",
			}},
		},
		ExpectStatus: http.StatusOK,
		ExpectBody: assert.JSONObject{
			"success": true,
			"assignments": []assert.JSONObject{{
				"nurse_id":    "N001",
				"nurse_name":  "Johnson, Sarah",
				"skill_level": 3,
				"phone":       "+1234567890",
				"patients": []assert.JSONObject{{
					"patient_id": "301A",
					"initials":   "J.D.",
					"acuity":     5,
					"chemo":      "none",
					"chemo_time": "",
					"vesicant":   "N",
					"continuity": "Y",
				}},
				"patient_count":    1,
				"total_acuity":     5,
				"iv_chemo_count":   0,
				"vesicant_count":   0,
				"continuity_count": 1,
				"new_admit_count":  0,
				"ratio_status":     "ideal",
			}},
			"stats": assert.JSONObject{
				"total_patients":           1,
				"nurses_used":              1,
				"unit_capacity_used":       "1/20",
				"unit_capacity_percentage": 5,
				"workload_variance":        0,
				"average_acuity":           5,
				"ideal_ratios":             1,
				"max_ratios":               0,
				"continuity_preserved":     1,
				"blocked_assignments":      0,
				// base 1 + continuity 10*0.30 + skill fit 10*0.40
				"objective_value":  8,
				"solution_time_ms": 0,
				"generated_at":     "2025-08-25 07:00:00",
			},
		},
	}.Check(t, testHandler())
}

func TestOptimizeValidationFailure(t *testing.T) {
	ivPatient := func(id string) assert.JSONObject {
		return assert.JSONObject{
			"Patient_ID": id, "Initials": "T.P.", "Base_Acuity": 5, "Chemo_Type": "IV",
		}
	}
	assert.HTTPRequest{
		Method: "POST",
		Path:   "/optimize",
		Body: assert.JSONObject{
			"nurses": []assert.JSONObject{{
				"Nurse_ID": "N001", "Name": "Johnson, Sarah", "Skill_Level": 3,
				"Chemo_IV_Cert": "Y", "Max_Patients": 4,
			}},
			"patients": []assert.JSONObject{ivPatient("P1"), ivPatient("P2"), ivPatient("P3")},
		},
		ExpectStatus: http.StatusOK,
		ExpectBody: assert.JSONObject{
			"error":   "Validation failed",
			"details": []string{"Insufficient IV certified nurses: 3 patients need 1 nurses"},
		},
	}.Check(t, testHandler())
}

func TestOptimizeMalformedBody(t *testing.T) {
	assert.HTTPRequest{
		Method:       "POST",
		Path:         "/optimize",
		Body:         assert.StringData("{"),
		ExpectStatus: http.StatusBadRequest,
		ExpectBody: assert.JSONObject{
			"error": "invalid request body: unexpected EOF",
		},
	}.Check(t, testHandler())
}

func TestOptimizeMissingTopLevelData(t *testing.T) {
	assert.HTTPRequest{
		Method: "POST",
		Path:   "/optimize",
		Body: assert.JSONObject{
			"nurses": []assert.JSONObject{{
				"Nurse_ID": "N001", "Name": "Johnson, Sarah", "Skill_Level": 3,
				"Chemo_IV_Cert": "Y", "Max_Patients": 4,
			}},
		},
		ExpectStatus: http.StatusBadRequest,
		ExpectBody: assert.JSONObject{
			"error": "Missing nurses or patients data",
		},
	}.Check(t, testHandler())
}

func TestOptimizeNoFeasibleSolution(t *testing.T) {
	assert.HTTPRequest{
		Method: "POST",
		Path:   "/optimize",
		Body: assert.JSONObject{
			"nurses": []assert.JSONObject{{
				"Nurse_ID": "N001", "Name": "Jones, Pat", "Skill_Level": 1,
				"Chemo_IV_Cert": "N", "Max_Patients": 4,
			}},
			"patients": []assert.JSONObject{{
				"Patient_ID": "P1", "Initials": "T.P.", "Base_Acuity": 9, "Chemo_Type": "none",
			}},
		},
		ExpectStatus: http.StatusOK,
		ExpectBody: assert.JSONObject{
			"error": "No feasible solution",
		},
	}.Check(t, testHandler())
}

func TestTestEndpointRunsSample(t *testing.T) {
	// the sample census outcome depends on solver arithmetic; only the
	// contract (status and success flag) is pinned here
	assert.HTTPRequest{
		Method:       "GET",
		Path:         "/test",
		ExpectStatus: http.StatusOK,
	}.Check(t, testHandler())
}

func TestOptimizeWithRequestConfigOverride(t *testing.T) {
	// zeroing every weight leaves only the base score of 1
	assert.HTTPRequest{
		Method: "POST",
		Path:   "/optimize",
		Body: assert.JSONObject{
			"nurses": []assert.JSONObject{{
				"Nurse_ID": "N001", "Name": "Johnson, Sarah", "Skill_Level": 3,
				"Chemo_IV_Cert": "Y", "Max_Patients": 4,
			}},
			"patients": []assert.JSONObject{{
				"Patient_ID": "P1", "Initials": "T.P.", "Base_Acuity": 5, "Chemo_Type": "none",
			}},
			"config": assert.JSONObject{
				"Continuity_Weight": 0, "Skill_Weight": 0,
				"Geography_Weight": 0, "Workload_Balance_Weight": 0,
			},
		},
		ExpectStatus: http.StatusOK,
		ExpectBody: assert.JSONObject{
			"success": true,
			"assignments": []assert.JSONObject{{
				"nurse_id":    "N001",
				"nurse_name":  "Johnson, Sarah",
				"skill_level": 3,
				"phone":       "",
				"patients": []assert.JSONObject{{
					"patient_id": "P1",
					"initials":   "T.P.",
					"acuity":     5,
					"chemo":      "none",
					"chemo_time": "",
					"vesicant":   "N",
					"continuity": "N",
				}},
				"patient_count":    1,
				"total_acuity":     5,
				"iv_chemo_count":   0,
				"vesicant_count":   0,
				"continuity_count": 0,
				"new_admit_count":  0,
				"ratio_status":     "ideal",
			}},
			"stats": assert.JSONObject{
				"total_patients":           1,
				"nurses_used":              1,
				"unit_capacity_used":       "1/20",
				"unit_capacity_percentage": 5,
				"workload_variance":        0,
				"average_acuity":           5,
				"ideal_ratios":             1,
				"max_ratios":               0,
				"continuity_preserved":     0,
				"blocked_assignments":      0,
				"objective_value":          1,
				"solution_time_ms":         0,
				"generated_at":             "2025-08-25 07:00:00",
			},
		},
	}.Check(t, testHandler())
}

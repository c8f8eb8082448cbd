// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

// Package api provides the HTTP surface of the assignment optimizer. All
// domain decisions live in internal/assign; this package only decodes
// requests, maps pipeline outcomes to HTTP status codes, and encodes
// responses.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gofrs/uuid"
	"github.com/gorilla/mux"
	"github.com/sapcc/go-bits/httpapi"
	"github.com/sapcc/go-bits/logg"
	"github.com/sapcc/go-bits/respondwith"

	"github.com/inteleqtus/bmt-assignment-optimizer/internal/assign"
	"github.com/inteleqtus/bmt-assignment-optimizer/internal/core"
)

const (
	// ServiceName appears in the health payload.
	ServiceName = "BMT Assignment Optimizer"
	// Version appears in the health payload.
	Version = "1.0.0"

	timestampFormat = "2006-01-02 15:04:05"
)

// OptimizeRequest is the request body of POST /optimize.
type OptimizeRequest struct {
	Nurses   []core.Nurse      `json:"nurses"`
	Patients []core.Patient    `json:"patients"`
	Config   core.WeightConfig `json:"config"`
}

// API implements the httpapi.API interface for this service.
type API struct {
	solver *assign.Solver
	// slot for test doubles
	timeNow func() time.Time
}

// NewAPI creates an httpapi.API serving the optimizer endpoints.
func NewAPI(solver *assign.Solver) *API {
	return &API{solver: solver, timeNow: time.Now}
}

// OverrideTimeNow replaces the API's clock; tests use this to pin the
// timestamps in health and error payloads.
func (a *API) OverrideTimeNow(timeNow func() time.Time) *API {
	a.timeNow = timeNow
	return a
}

// AddTo implements the httpapi.API interface.
func (a *API) AddTo(r *mux.Router) {
	r.Methods("HEAD", "GET").Path("/").HandlerFunc(a.handleHealthCheck)
	r.Methods("GET").Path("/test").HandlerFunc(a.handleTest)
	r.Methods("POST").Path("/optimize").HandlerFunc(a.handleOptimize)
}

// handleHealthCheck handles GET /.
func (a *API) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	httpapi.IdentifyEndpoint(r, "/")
	httpapi.SkipRequestLog(r)
	respondwith.JSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   ServiceName,
		"version":   Version,
		"timestamp": a.timeNow().UTC().Format(timestampFormat),
	})
}

// handleOptimize handles POST /optimize.
func (a *API) handleOptimize(w http.ResponseWriter, r *http.Request) {
	httpapi.IdentifyEndpoint(r, "/optimize")

	var req OptimizeRequest
	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(&req)
	if err != nil {
		respondwith.JSON(w, http.StatusBadRequest, map[string]any{
			"error": "invalid request body: " + err.Error(),
		})
		return
	}
	a.runPipeline(w, r, req)
}

// handleTest handles GET /test: it runs a canned sample roster and census
// through the full pipeline, returning the same response shape as /optimize.
func (a *API) handleTest(w http.ResponseWriter, r *http.Request) {
	httpapi.IdentifyEndpoint(r, "/test")
	a.runPipeline(w, r, sampleRequest())
}

func (a *API) runPipeline(w http.ResponseWriter, r *http.Request, req OptimizeRequest) {
	if len(req.Nurses) == 0 || len(req.Patients) == 0 {
		respondwith.JSON(w, http.StatusBadRequest, map[string]any{
			"error": "Missing nurses or patients data",
		})
		return
	}

	requestID := requestIDString()
	logg.Info("[%s] optimizing assignment of %d patients across %d nurses",
		requestID, len(req.Patients), len(req.Nurses))

	startedAt := time.Now()
	result, err := a.solver.Optimize(r.Context(), req.Nurses, req.Patients, req.Config)
	observeSolveDuration(time.Since(startedAt))

	var verr assign.ValidationError
	switch {
	case err == nil:
		if result.Fallback {
			logg.Info("[%s] greedy fallback engaged, %d patients unassigned",
				requestID, *result.Stats.UnassignedPatients)
			countOptimization(outcomeFallback)
		} else {
			countOptimization(outcomeSuccess)
		}
		respondwith.JSON(w, http.StatusOK, result)
	case errors.As(err, &verr):
		logg.Info("[%s] validation failed: %d problems", requestID, len(verr.Details))
		countOptimization(outcomeValidationError)
		respondwith.JSON(w, http.StatusOK, map[string]any{
			"error":   "Validation failed",
			"details": verr.Details,
		})
	case errors.Is(err, assign.ErrNoFeasibleSolution):
		logg.Info("[%s] no feasible solution", requestID)
		countOptimization(outcomeInfeasible)
		respondwith.JSON(w, http.StatusOK, map[string]any{
			"error": "No feasible solution",
		})
	default:
		logg.Error("[%s] %s", requestID, err.Error())
		countOptimization(outcomeError)
		respondwith.JSON(w, http.StatusInternalServerError, map[string]any{
			"error":     err.Error(),
			"timestamp": a.timeNow().UTC().Format(timestampFormat),
		})
	}
}

func requestIDString() string {
	id, err := uuid.NewV4()
	if err != nil {
		// reading /dev/urandom failed; degrade to an unidentified log line
		return "unknown"
	}
	return id.String()
}

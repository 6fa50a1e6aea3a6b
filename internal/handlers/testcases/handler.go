package testcases

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/codearena-2025.net/internal/core/ports/primary"
	"gitlab.com/codearena-2025.net/internal/core/ports/secondary"
	"gitlab.com/codearena-2025.net/internal/domain"
	"gitlab.com/codearena-2025.net/internal/handlers/response"
	"gitlab.com/codearena-2025.net/internal/static/errs"
)

// Handler handles the test case administration API.
type Handler struct {
	testCases secondary.TestCaseRepository
	logger    primary.Logger
}

// NewHandler creates a new test case admin handler.
func NewHandler(testCases secondary.TestCaseRepository, logger primary.Logger) *Handler {
	return &Handler{
		testCases: testCases,
		logger:    logger,
	}
}

// RegisterRoutes registers the API routes for Handler.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/test-case/challenge/{challengeId}", h.Create).Methods("POST")
	router.HandleFunc("/test-case/challenge/{challengeId}", h.ListForChallenge).Methods("GET")
	router.HandleFunc("/test-case/challenge/{challengeId}/samples", h.ListSamples).Methods("GET")
	router.HandleFunc("/test-case/challenge/{challengeId}", h.RemoveForChallenge).Methods("DELETE")
	router.HandleFunc("/test-case/{id}", h.Get).Methods("GET")
	router.HandleFunc("/test-case/{id}", h.Update).Methods("PATCH")
	router.HandleFunc("/test-case/{id}", h.Remove).Methods("DELETE")
}

// CreateTestCaseRequest is the body for registering a test case.
type CreateTestCaseRequest struct {
	Input          string   `json:"input"`
	ExpectedOutput string   `json:"expected_output"`
	Description    string   `json:"description"`
	IsSample       *bool    `json:"is_sample"`
	IsHidden       bool     `json:"is_hidden"`
	Weight         *float64 `json:"weight"`
}

// Create registers a new test case for a challenge.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := pathID(w, r, "challengeId")
	if !ok {
		return
	}

	var req CreateTestCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// New cases default to visible sample cases with weight 1, matching the
	// authoring flow's defaults.
	isSample := true
	if req.IsSample != nil {
		isSample = *req.IsSample
	}
	weight := 1.0
	if req.Weight != nil {
		weight = *req.Weight
	}
	if weight <= 0 {
		response.WriteError(w, http.StatusBadRequest, errs.InvalidWeight.Error())
		return
	}

	tc := &domain.TestCase{
		ChallengeID:    challengeID,
		Input:          req.Input,
		ExpectedOutput: req.ExpectedOutput,
		Description:    req.Description,
		IsSample:       isSample,
		IsHidden:       req.IsHidden,
		Weight:         weight,
	}

	if err := h.testCases.CreateTestCase(r.Context(), tc); err != nil {
		h.logger.Error("Failed to create test case", "challengeId", challengeID, "error", err)
		response.WriteError(w, http.StatusInternalServerError, "failed to create test case")
		return
	}

	response.WriteJSON(w, http.StatusCreated, tc)
}

// ListForChallenge returns every test case of a challenge.
func (h *Handler) ListForChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := pathID(w, r, "challengeId")
	if !ok {
		return
	}

	testCases, err := h.testCases.AllTestCases(r.Context(), challengeID)
	if err != nil {
		h.logger.Error("Failed to list test cases", "challengeId", challengeID, "error", err)
		response.WriteError(w, http.StatusInternalServerError, "failed to list test cases")
		return
	}

	response.WriteJSON(w, http.StatusOK, testCases)
}

// ListSamples returns the visible sample subset of a challenge.
func (h *Handler) ListSamples(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := pathID(w, r, "challengeId")
	if !ok {
		return
	}

	testCases, err := h.testCases.VisibleTestCases(r.Context(), challengeID)
	if err != nil {
		h.logger.Error("Failed to list sample test cases", "challengeId", challengeID, "error", err)
		response.WriteError(w, http.StatusInternalServerError, "failed to list test cases")
		return
	}

	response.WriteJSON(w, http.StatusOK, testCases)
}

// Get returns a single test case.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	testCaseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	tc, err := h.testCases.GetTestCase(r.Context(), testCaseID)
	if err != nil {
		h.logger.Error("Failed to get test case", "testCaseId", testCaseID, "error", err)
		response.WriteError(w, http.StatusInternalServerError, "failed to get test case")
		return
	}
	if tc == nil {
		response.WriteError(w, http.StatusNotFound, "test case not found")
		return
	}

	response.WriteJSON(w, http.StatusOK, tc)
}

// Update applies a partial update to a test case.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	testCaseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var upd domain.TestCaseUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if upd.Weight != nil && *upd.Weight <= 0 {
		response.WriteError(w, http.StatusBadRequest, errs.InvalidWeight.Error())
		return
	}

	tc, err := h.testCases.UpdateTestCase(r.Context(), testCaseID, &upd)
	if err != nil {
		h.logger.Error("Failed to update test case", "testCaseId", testCaseID, "error", err)
		response.WriteError(w, http.StatusInternalServerError, "failed to update test case")
		return
	}
	if tc == nil {
		response.WriteError(w, http.StatusNotFound, "test case not found")
		return
	}

	response.WriteJSON(w, http.StatusOK, tc)
}

// Remove deletes a single test case.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	testCaseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	removed, err := h.testCases.RemoveTestCase(r.Context(), testCaseID)
	if err != nil {
		h.logger.Error("Failed to remove test case", "testCaseId", testCaseID, "error", err)
		response.WriteError(w, http.StatusInternalServerError, "failed to remove test case")
		return
	}
	if !removed {
		response.WriteError(w, http.StatusNotFound, "test case not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveForChallenge deletes every test case of a challenge.
func (h *Handler) RemoveForChallenge(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := pathID(w, r, "challengeId")
	if !ok {
		return
	}

	removed, err := h.testCases.RemoveAllForChallenge(r.Context(), challengeID)
	if err != nil {
		h.logger.Error("Failed to remove test cases", "challengeId", challengeID, "error", err)
		response.WriteError(w, http.StatusInternalServerError, "failed to remove test cases")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

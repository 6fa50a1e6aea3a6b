package judge

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/codearena-2025.net/internal/core/ports/primary"
	judgesvc "gitlab.com/codearena-2025.net/internal/core/services/judge"
	"gitlab.com/codearena-2025.net/internal/handlers/response"
	"gitlab.com/codearena-2025.net/internal/static/errs"
)

// Handler handles grading API requests.
type Handler struct {
	judgeService judgesvc.IJudgeService
	logger       primary.Logger
}

// NewHandler creates a new judge handler.
func NewHandler(judgeService judgesvc.IJudgeService, logger primary.Logger) *Handler {
	return &Handler{
		judgeService: judgeService,
		logger:       logger,
	}
}

// RegisterRoutes registers the API routes for Handler.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/judge/evaluate/{challengeId}", h.EvaluateSubmission).Methods("POST")
	router.HandleFunc("/judge/test/{challengeId}", h.RunTests).Methods("POST")
}

// EvaluateSubmissionRequest is the body for full grading.
type EvaluateSubmissionRequest struct {
	SourceCode   string `json:"source_code"`
	LanguageID   int    `json:"language_id"`
	SubmissionID *int64 `json:"submission_id"`
}

// EvaluateSubmission grades a submission against every test case of the
// challenge, hidden ones included.
func (h *Handler) EvaluateSubmission(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := h.challengeID(w, r)
	if !ok {
		return
	}

	var req EvaluateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	evaluation, err := h.judgeService.Evaluate(r.Context(), challengeID, req.SourceCode, req.LanguageID, req.SubmissionID)
	if err != nil {
		h.writeEvaluationError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, evaluation)
}

// RunTestsRequest is the body for preview grading.
type RunTestsRequest struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
}

// RunTests grades a submission against the visible test cases only.
func (h *Handler) RunTests(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := h.challengeID(w, r)
	if !ok {
		return
	}

	var req RunTestsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	evaluation, err := h.judgeService.RunVisible(r.Context(), challengeID, req.SourceCode, req.LanguageID)
	if err != nil {
		h.writeEvaluationError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, evaluation)
}

func (h *Handler) challengeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	challengeID, err := strconv.ParseInt(vars["challengeId"], 10, 64)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid challenge id")
		return 0, false
	}
	return challengeID, true
}

// writeEvaluationError maps validation failures to 400; anything else is an
// internal failure. A completed evaluation is always 200, whatever the
// verdict — only pre-execution failures reach this path.
func (h *Handler) writeEvaluationError(w http.ResponseWriter, err error) {
	if errs.IsValidation(err) {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error("Evaluation failed", "error", err)
	response.WriteError(w, http.StatusInternalServerError, "failed to evaluate submission")
}

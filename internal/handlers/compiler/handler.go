package compiler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codearena-2025.net/internal/core/ports/primary"
	"gitlab.com/codearena-2025.net/internal/core/ports/secondary"
	"gitlab.com/codearena-2025.net/internal/domain"
	"gitlab.com/codearena-2025.net/internal/handlers/response"
)

// Handler exposes a one-shot code execution endpoint, useful for scratch
// runs outside any challenge.
type Handler struct {
	runner secondary.CodeRunner
	logger primary.Logger
}

// NewHandler creates a new compiler handler.
func NewHandler(runner secondary.CodeRunner, logger primary.Logger) *Handler {
	return &Handler{
		runner: runner,
		logger: logger,
	}
}

// RegisterRoutes registers the API routes for Handler.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/compiler/run", h.RunCode).Methods("POST")
}

// RunCode executes one source/stdin pair and returns the raw backend result.
func (h *Handler) RunCode(w http.ResponseWriter, r *http.Request) {
	var req domain.ExecutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.runner.Run(r.Context(), &req)
	if err != nil {
		h.logger.Error("Code execution failed", "error", err)
		response.WriteError(w, http.StatusBadGateway, "unable to execute code at this time")
		return
	}

	response.WriteJSON(w, http.StatusOK, result)
}

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	appI18n "certbuddy/internal/i18n"
	"certbuddy/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// errorJSON logs the underlying error and renders a localized message.
func (h *Handler) errorJSON(w http.ResponseWriter, r *http.Request, status int, msgID string, err error) {
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	} else {
		slog.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	respondJSON(w, status, errorResponse{Error: appI18n.T(r.Context(), msgID)})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	slog.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", http.StatusBadRequest, "error", err)
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// notFoundOr renders missing state with the given message and delegates every
// other error to respondError.
func (h *Handler) notFoundOr(w http.ResponseWriter, r *http.Request, err error, msgID string) {
	if errors.Is(err, model.ErrNotFound) {
		h.errorJSON(w, r, http.StatusNotFound, msgID, err)
		return
	}
	h.respondError(w, r, err)
}

// respondError maps domain errors onto HTTP statuses.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		h.errorJSON(w, r, http.StatusNotFound, "ExamNotFound", err)
	case errors.Is(err, model.ErrEmptyQuestionSet):
		h.errorJSON(w, r, http.StatusConflict, "EmptyQuestionSet", err)
	case errors.Is(err, model.ErrAnswerEmpty):
		h.errorJSON(w, r, http.StatusBadRequest, "AnswerRequired", err)
	case errors.Is(err, model.ErrAtFirstQuestion):
		h.errorJSON(w, r, http.StatusBadRequest, "AtFirstQuestion", err)
	case errors.Is(err, model.ErrSessionComplete):
		h.errorJSON(w, r, http.StatusConflict, "SimulationAlreadyComplete", err)
	case errors.Is(err, model.ErrIncompleteSession):
		h.errorJSON(w, r, http.StatusConflict, "SimulationIncomplete", err)
	case errors.Is(err, model.ErrExternalService):
		h.errorJSON(w, r, http.StatusBadGateway, "AIUnavailable", err)
	default:
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

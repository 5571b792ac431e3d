package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"quiz-studio/internal/domain"
)

const maxBodyBytes = 1 << 20

type errorPayload struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Error  string                   `json:"error"`
	Errors []domain.ValidationError `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses; anything unknown is a 500.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var invalid *domain.InvalidQuizError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error:  "invalid quiz",
			Errors: invalid.Errors,
		})
	case errors.Is(err, domain.ErrQuizNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Quiz not found"})
	case errors.Is(err, domain.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Session not found"})
	case errors.Is(err, domain.ErrQuizExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrAnswerCount),
		errors.Is(err, domain.ErrMultipleCorrect),
		errors.Is(err, domain.ErrAnswerNotFound):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNoSelection),
		errors.Is(err, domain.ErrAnswerLocked),
		errors.Is(err, domain.ErrSessionComplete),
		errors.Is(err, domain.ErrSessionInProgress):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}

package http

import (
	"net/http"

	"go.uber.org/zap"
	"quiz-studio/internal/app"
	"quiz-studio/internal/domain"
)

// PlayHandler exposes QuizSession over plain HTTP, one session per id.
// Responses only ever carry domain.PlayerQuestion.
type PlayHandler struct {
	service *app.QuizService
	log     *zap.Logger
}

func NewPlayHandler(service *app.QuizService, log *zap.Logger) *PlayHandler {
	return &PlayHandler{service: service, log: log}
}

type selectRequest struct {
	AnswerID string `json:"answerId"`
}

type submitResponse struct {
	Result domain.SubmitResult `json:"result"`
	State  domain.SessionState `json:"state"`
}

func (h *PlayHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.StartSession(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, session.State())
}

func (h *PlayHandler) State(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Session(r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, session.State())
}

func (h *PlayHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := decodeJSON(w, r, &req); err != nil || req.AnswerID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "answerId is required"})
		return
	}
	state, err := h.service.SelectAnswer(r.PathValue("id"), req.AnswerID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *PlayHandler) Submit(w http.ResponseWriter, r *http.Request) {
	result, state, err := h.service.SubmitAnswer(r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{Result: result, State: state})
}

func (h *PlayHandler) Next(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.NextQuestion(r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *PlayHandler) Reset(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.ResetSession(r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *PlayHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *PlayHandler) End(w http.ResponseWriter, r *http.Request) {
	h.service.EndSession(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"net/http"

	"go.uber.org/zap"
	"quiz-studio/internal/app"
	"quiz-studio/internal/domain"
)

// QuizHandler is the authoring surface: CRUD and dry-run validation.
type QuizHandler struct {
	service *app.QuizService
	log     *zap.Logger
}

func NewQuizHandler(service *app.QuizService, log *zap.Logger) *QuizHandler {
	return &QuizHandler{service: service, log: log}
}

type quizListResponse struct {
	Quizzes []domain.Quiz `json:"quizzes"`
	Count   int           `json:"count"`
}

func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.ListQuizzes(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, quizListResponse{Quizzes: quizzes, Count: len(quizzes)})
}

func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	var quiz domain.Quiz
	if err := decodeJSON(w, r, &quiz); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quiz payload"})
		return
	}
	created, err := h.service.CreateQuiz(r.Context(), quiz)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) Update(w http.ResponseWriter, r *http.Request) {
	var quiz domain.Quiz
	if err := decodeJSON(w, r, &quiz); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quiz payload"})
		return
	}
	quiz.ID = r.PathValue("id")
	updated, err := h.service.UpdateQuiz(r.Context(), quiz)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteQuiz(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Validate reports every validation message without saving.
func (h *QuizHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var quiz domain.Quiz
	if err := decodeJSON(w, r, &quiz); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid quiz payload"})
		return
	}
	writeJSON(w, http.StatusOK, h.service.ValidateQuiz(quiz))
}

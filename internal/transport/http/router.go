package http

import (
	"net/http"

	"go.uber.org/zap"
	"quiz-studio/internal/app"
	"quiz-studio/internal/metrics"
)

// NewRouter wires the authoring, play and websocket surfaces onto one mux.
// m may be nil to disable instrumentation and /metrics.
func NewRouter(service *app.QuizService, log *zap.Logger, m *metrics.Metrics) http.Handler {
	quizzes := NewQuizHandler(service, log)
	play := NewPlayHandler(service, log)
	ws := NewWSHandler(service, log)

	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		if m != nil {
			mux.Handle(pattern, m.Middleware(pattern, h))
			return
		}
		mux.Handle(pattern, h)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	handle("GET /quizzes", quizzes.List)
	handle("POST /quizzes", quizzes.Create)
	handle("POST /quizzes/validate", quizzes.Validate)
	handle("GET /quizzes/{id}", quizzes.Get)
	handle("PUT /quizzes/{id}", quizzes.Update)
	handle("DELETE /quizzes/{id}", quizzes.Delete)

	handle("POST /quizzes/{id}/sessions", play.Start)
	handle("GET /sessions/{id}", play.State)
	handle("POST /sessions/{id}/select", play.Select)
	handle("POST /sessions/{id}/submit", play.Submit)
	handle("POST /sessions/{id}/next", play.Next)
	handle("POST /sessions/{id}/reset", play.Reset)
	handle("GET /sessions/{id}/summary", play.Summary)
	handle("DELETE /sessions/{id}", play.End)

	// Not instrumented: the upgrader needs the raw http.Hijacker.
	mux.HandleFunc("GET /ws/play", ws.ServeWS)

	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}
	return mux
}

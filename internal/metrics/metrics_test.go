package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.QuizSaved("create")
	m.QuizSaved("create")
	m.ValidationFailed()
	m.SessionStarted()
	m.SessionCompleted()
	m.AnswerSubmitted(true)
	m.AnswerSubmitted(false)
	m.AnswerSubmitted(false)

	if got := testutil.ToFloat64(m.QuizSaves.WithLabelValues("create")); got != 2 {
		t.Fatalf("expected 2 creates, got %v", got)
	}
	if got := testutil.ToFloat64(m.ValidationFailures); got != 1 {
		t.Fatalf("expected 1 validation failure, got %v", got)
	}
	if got := testutil.ToFloat64(m.Answers.WithLabelValues("incorrect")); got != 2 {
		t.Fatalf("expected 2 incorrect answers, got %v", got)
	}
	if got := testutil.ToFloat64(m.SessionsCompleted); got != 1 {
		t.Fatalf("expected 1 completed session, got %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	h := m.Middleware("/teapot", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/teapot", nil))

	if got := testutil.ToFloat64(m.RequestCounter.WithLabelValues(http.MethodGet, "/teapot", "418")); got != 1 {
		t.Fatalf("expected one 418 request, got %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "http_requests_total") {
		t.Fatalf("expected exposition to include http_requests_total")
	}
}

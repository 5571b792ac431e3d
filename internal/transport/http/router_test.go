package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"quiz-studio/internal/app"
	"quiz-studio/internal/domain"
	"quiz-studio/internal/infra/memory"
	"quiz-studio/internal/metrics"
)

func newTestServer(t *testing.T, seed ...domain.Quiz) *httptest.Server {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	service := app.NewQuizService(memory.NewQuizRepository(seed...), memory.NewSessionStore(), app.WithRecorder(m))
	server := httptest.NewServer(NewRouter(service, zap.NewNop(), m))
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func TestAuthoringEndpoints(t *testing.T) {
	server := newTestServer(t)

	var invalid validationResponse
	status := do(t, http.MethodPost, server.URL+"/quizzes", domain.Quiz{
		Questions: []domain.Question{{Answers: []domain.Answer{{Text: "a"}, {Text: "b"}}}},
	}, &invalid)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", status)
	}
	if len(invalid.Errors) != 3 || invalid.Errors[0].Message != domain.MsgTitleRequired {
		t.Fatalf("expected all three messages, got %+v", invalid.Errors)
	}

	var created domain.Quiz
	status = do(t, http.MethodPost, server.URL+"/quizzes", sampleQuiz(), &created)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}

	created.Title = "Arithmetic II"
	var updated domain.Quiz
	if status := do(t, http.MethodPut, server.URL+"/quizzes/"+created.ID, created, &updated); status != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d", status)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected createdAt preserved on update")
	}

	var list quizListResponse
	do(t, http.MethodGet, server.URL+"/quizzes?q=arith", nil, &list)
	if list.Count != 1 || list.Quizzes[0].Title != "Arithmetic II" {
		t.Fatalf("expected search hit, got %+v", list)
	}
	do(t, http.MethodGet, server.URL+"/quizzes?q=history", nil, &list)
	if list.Count != 0 {
		t.Fatalf("expected no search hits, got %d", list.Count)
	}

	if status := do(t, http.MethodDelete, server.URL+"/quizzes/"+created.ID, nil, nil); status != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", status)
	}
	var notFound errorResponse
	if status := do(t, http.MethodGet, server.URL+"/quizzes/"+created.ID, nil, &notFound); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if notFound.Error != "Quiz not found" {
		t.Fatalf("expected not found message, got %q", notFound.Error)
	}
}

func TestAnswerBoundsAreRejectedStructurally(t *testing.T) {
	server := newTestServer(t)
	quiz := sampleQuiz()
	quiz.Questions[0].Answers = quiz.Questions[0].Answers[1:2]

	if status := do(t, http.MethodPost, server.URL+"/quizzes", quiz, nil); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for a single-answer question, got %d", status)
	}
}

func TestPlayEndpoints(t *testing.T) {
	server := newTestServer(t, sampleQuiz())

	var state domain.SessionState
	if status := do(t, http.MethodPost, server.URL+"/quizzes/quiz-1/sessions", nil, &state); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	base := server.URL + "/sessions/" + state.SessionID

	if status := do(t, http.MethodPost, base+"/submit", nil, nil); status != http.StatusConflict {
		t.Fatalf("expected 409 submitting without a selection, got %d", status)
	}
	if status := do(t, http.MethodGet, base+"/summary", nil, nil); status != http.StatusConflict {
		t.Fatalf("expected 409 for early summary, got %d", status)
	}

	do(t, http.MethodPost, base+"/select", selectRequest{AnswerID: "a1"}, &state)
	var submitted submitResponse
	do(t, http.MethodPost, base+"/submit", nil, &submitted)
	if submitted.Result.Correct || submitted.Result.CorrectAnswerID != "a2" {
		t.Fatalf("expected incorrect result revealing a2, got %+v", submitted.Result)
	}

	do(t, http.MethodPost, base+"/next", nil, &state)
	if !state.Complete || state.Progress != 100 {
		t.Fatalf("expected complete state, got %+v", state)
	}

	var summary domain.Summary
	do(t, http.MethodGet, base+"/summary", nil, &summary)
	if summary.Fraction() != "0 / 1" || summary.Verdict != domain.VerdictNeedsPractice {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if summary.Results[0].SelectedAnswerText != "3" || summary.Results[0].CorrectAnswerText != "4" {
		t.Fatalf("unexpected recap row %+v", summary.Results[0])
	}

	do(t, http.MethodPost, base+"/reset", nil, &state)
	if state.Complete || state.Score != 0 || state.Index != 0 {
		t.Fatalf("expected reset state, got %+v", state)
	}

	if status := do(t, http.MethodDelete, base, nil, nil); status != http.StatusNoContent {
		t.Fatalf("expected 204 on end, got %d", status)
	}
	if status := do(t, http.MethodGet, base, nil, nil); status != http.StatusNotFound {
		t.Fatalf("expected 404 after end, got %d", status)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t, sampleQuiz())
	do(t, http.MethodPost, server.URL+"/quizzes/quiz-1/sessions", nil, nil)

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "quiz_sessions_started_total 1") {
		t.Fatalf("expected started session counter in exposition")
	}
}

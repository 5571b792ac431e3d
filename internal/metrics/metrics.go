package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements app.Recorder and instruments HTTP routes.
type Metrics struct {
	QuizSaves          *prometheus.CounterVec
	ValidationFailures prometheus.Counter
	SessionsStarted    prometheus.Counter
	SessionsCompleted  prometheus.Counter
	Answers            *prometheus.CounterVec
	RequestCounter     *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers all collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		QuizSaves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_saves_total",
				Help: "Quizzes written to the repository, by operation",
			},
			[]string{"op"},
		),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_validation_failures_total",
			Help: "Saves refused because the quiz failed validation",
		}),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_sessions_started_total",
			Help: "Play sessions started",
		}),
		SessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quiz_sessions_completed_total",
			Help: "Play sessions advanced past the last question",
		}),
		Answers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_answers_total",
				Help: "Submitted answers by result",
			},
			[]string{"result"},
		),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "route"},
		),
		gatherer: reg,
	}
	reg.MustRegister(
		m.QuizSaves,
		m.ValidationFailures,
		m.SessionsStarted,
		m.SessionsCompleted,
		m.Answers,
		m.RequestCounter,
		m.RequestDuration,
	)
	return m
}

func (m *Metrics) QuizSaved(op string) {
	m.QuizSaves.WithLabelValues(op).Inc()
}

func (m *Metrics) ValidationFailed() {
	m.ValidationFailures.Inc()
}

func (m *Metrics) SessionStarted() {
	m.SessionsStarted.Inc()
}

func (m *Metrics) SessionCompleted() {
	m.SessionsCompleted.Inc()
}

func (m *Metrics) AnswerSubmitted(correct bool) {
	result := "incorrect"
	if correct {
		result = "correct"
	}
	m.Answers.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records count and latency for a named route.
func (m *Metrics) Middleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.RequestCounter.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

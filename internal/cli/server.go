package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"quiz-studio/internal/app"
	"quiz-studio/internal/config"
	"quiz-studio/internal/domain"
	"quiz-studio/internal/logger"
	"quiz-studio/internal/metrics"
	transport "quiz-studio/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	st, err := openStorage(ctx, cfg, log, true)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := []app.Option{app.WithLogger(log)}
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		opts = append(opts, app.WithRecorder(m))
	}
	service := app.NewQuizService(st.quizzes, st.sessions, opts...)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(service, log, m),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting quiz service", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuizzes seeds the in-memory store so a fresh server has something to play.
func sampleQuizzes() []domain.Quiz {
	now := time.Now()
	return []domain.Quiz{
		{
			ID:    "quiz-1",
			Title: "Warm-up arithmetic",
			Questions: []domain.Question{
				{
					ID:   "q1",
					Text: "What is 2 + 2?",
					Answers: []domain.Answer{
						{ID: "q1-a1", Text: "3"},
						{ID: "q1-a2", Text: "4", IsCorrect: true},
						{ID: "q1-a3", Text: "5"},
					},
				},
				{
					ID:   "q2",
					Text: "What is 3 x 3?",
					Answers: []domain.Answer{
						{ID: "q2-a1", Text: "9", IsCorrect: true},
						{ID: "q2-a2", Text: "6"},
					},
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

package cli

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"quiz-studio/internal/app"
	"quiz-studio/internal/config"
	"quiz-studio/internal/domain"
	"quiz-studio/internal/infra/memory"
	pgstore "quiz-studio/internal/infra/postgres"
	redisinfra "quiz-studio/internal/infra/redis"
)

// storage is the repository stack selected by config.
type storage struct {
	quizzes  app.QuizRepository
	sessions app.SessionRepository
	closers  []func()
	// durable is false when quizzes only live for the process lifetime.
	durable bool
}

func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStorage picks Postgres over memory for quizzes, and fronts either with a
// Redis cache when redis.addr is set. Memory storage starts with sample quizzes.
func openStorage(ctx context.Context, cfg config.Config, log *zap.Logger, seed bool) (*storage, error) {
	st := &storage{}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		st.closers = append(st.closers, func() { _ = redisClient.Close() })
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			st.Close()
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			st.Close()
			return nil, err
		}
		st.closers = append(st.closers, pool.Close)
		st.quizzes = pgstore.NewQuizStore(pool)
		st.durable = true
		log.Info("using postgres quiz store")
	} else {
		var quizzes []domain.Quiz
		if seed {
			quizzes = sampleQuizzes()
		}
		st.quizzes = memory.NewQuizRepository(quizzes...)
		log.Info("using in-memory quiz store", zap.Int("seeded", len(quizzes)))
	}

	// Abandoned sessions expire after the session ttl and are swept in the background.
	sessionTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	st.closers = append(st.closers, stopSweep)
	if redisClient != nil {
		quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
		st.quizzes = redisinfra.NewQuizRepository(redisClient, st.quizzes, quizTTL)
		sessions := redisinfra.NewSessionStore(redisClient, sessionTTL)
		if sessionTTL > 0 {
			go sessions.Run(sweepCtx, sessionTTL)
		}
		st.sessions = sessions
	} else {
		sessions := memory.NewExpiringSessionStore(sessionTTL)
		if sessionTTL > 0 {
			go sessions.Run(sweepCtx, sessionTTL)
		}
		st.sessions = sessions
	}
	return st, nil
}

package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"quiz-studio/internal/domain"
	"quiz-studio/internal/infra/memory"
)

func TestQuizRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	backing := &countingRepository{QuizRepository: memory.NewQuizRepository(sampleQuiz())}
	repo := NewQuizRepository(client, backing, time.Minute)

	if _, err := repo.FindByID(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("find quiz: %v", err)
	}
	if backing.finds != 1 {
		t.Fatalf("expected backing called once, got %d", backing.finds)
	}
	if !mr.Exists("quiz:quiz-1") {
		t.Fatalf("expected quiz cached in redis")
	}

	// Second call should hit cache, backing not incremented.
	got, err := repo.FindByID(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("find quiz again: %v", err)
	}
	if backing.finds != 1 {
		t.Fatalf("expected cache hit, backing calls=%d", backing.finds)
	}
	if got.Title != "Arithmetic" || len(got.Questions) != 1 || !got.Questions[0].Answers[1].IsCorrect {
		t.Fatalf("cached quiz lost data: %+v", got)
	}
}

func TestQuizRepositoryInvalidatesOnWrite(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	backing := &countingRepository{QuizRepository: memory.NewQuizRepository(sampleQuiz())}
	repo := NewQuizRepository(newClient(mr), backing, time.Minute)

	_, _ = repo.FindByID(ctx, "quiz-1")

	updated := sampleQuiz()
	updated.Title = "Renamed"
	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	if mr.Exists("quiz:quiz-1") {
		t.Fatalf("expected cache entry dropped after update")
	}
	got, _ := repo.FindByID(ctx, "quiz-1")
	if got.Title != "Renamed" {
		t.Fatalf("expected fresh title, got %q", got.Title)
	}

	if err := repo.Delete(ctx, "quiz-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, "quiz-1"); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if n, _ := repo.Count(ctx); n != 0 {
		t.Fatalf("expected empty backing store, got %d", n)
	}
}

func TestQuizRepositoryDropsLoadRacingAnUpdate(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	backing := &pausingRepository{
		QuizRepository: memory.NewQuizRepository(sampleQuiz()),
		loaded:         make(chan struct{}),
		release:        make(chan struct{}),
	}
	repo := NewQuizRepository(newClient(mr), backing, time.Minute)

	done := make(chan domain.Quiz)
	go func() {
		quiz, _ := repo.FindByID(ctx, "quiz-1")
		done <- quiz
	}()

	<-backing.loaded
	updated := sampleQuiz()
	updated.Title = "Renamed"
	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	close(backing.release)

	if old := <-done; old.Title != "Arithmetic" {
		t.Fatalf("in-flight load should return what it read, got %q", old.Title)
	}
	if mr.Exists("quiz:quiz-1") {
		t.Fatalf("a load that started before the update must not fill the cache")
	}
	got, err := repo.FindByID(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("find after update: %v", err)
	}
	if got.Title != "Renamed" {
		t.Fatalf("expected updated title, got %q", got.Title)
	}
}

// pausingRepository holds its first FindByID after reading until release is closed.
type pausingRepository struct {
	*memory.QuizRepository
	loaded  chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *pausingRepository) FindByID(ctx context.Context, quizID string) (domain.Quiz, error) {
	quiz, err := r.QuizRepository.FindByID(ctx, quizID)
	first := false
	r.once.Do(func() { first = true })
	if first {
		close(r.loaded)
		<-r.release
	}
	return quiz, err
}

type countingRepository struct {
	*memory.QuizRepository
	finds int
}

func (r *countingRepository) FindByID(ctx context.Context, quizID string) (domain.Quiz, error) {
	r.finds++
	return r.QuizRepository.FindByID(ctx, quizID)
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:    "quiz-1",
		Title: "Arithmetic",
		Questions: []domain.Question{
			{
				ID:   "q1",
				Text: "What is 2 + 2?",
				Answers: []domain.Answer{
					{ID: "a1", Text: "3", IsCorrect: false},
					{ID: "a2", Text: "4", IsCorrect: true},
				},
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

package memory

import (
	"context"
	"sync"

	"quiz-studio/internal/domain"
)

// QuizRepository keeps quizzes in an ordered in-process list. Data lives for
// the process lifetime only.
type QuizRepository struct {
	mu      sync.RWMutex
	quizzes []domain.Quiz
}

// NewQuizRepository returns a repository pre-filled with seed quizzes (useful for tests/demos).
func NewQuizRepository(seed ...domain.Quiz) *QuizRepository {
	r := &QuizRepository{quizzes: make([]domain.Quiz, 0, len(seed))}
	for _, q := range seed {
		r.quizzes = append(r.quizzes, q.Clone())
	}
	return r
}

func (r *QuizRepository) Add(_ context.Context, quiz domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexLocked(quiz.ID) >= 0 {
		return domain.ErrQuizExists
	}
	r.quizzes = append(r.quizzes, quiz.Clone())
	return nil
}

func (r *QuizRepository) Update(_ context.Context, quiz domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(quiz.ID)
	if i < 0 {
		return domain.ErrQuizNotFound
	}
	r.quizzes[i] = quiz.Clone()
	return nil
}

func (r *QuizRepository) Delete(_ context.Context, quizID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(quizID)
	if i < 0 {
		return nil
	}
	r.quizzes = append(r.quizzes[:i:i], r.quizzes[i+1:]...)
	return nil
}

func (r *QuizRepository) FindByID(_ context.Context, quizID string) (domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexLocked(quizID)
	if i < 0 {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return r.quizzes[i].Clone(), nil
}

func (r *QuizRepository) List(_ context.Context) ([]domain.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Quiz, 0, len(r.quizzes))
	for _, q := range r.quizzes {
		out = append(out, q.Clone())
	}
	return out, nil
}

func (r *QuizRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.quizzes), nil
}

func (r *QuizRepository) indexLocked(quizID string) int {
	for i := range r.quizzes {
		if r.quizzes[i].ID == quizID {
			return i
		}
	}
	return -1
}

package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"quiz-studio/internal/domain"
)

// QuizRepository stores authored quizzes. Each call is atomic.
type QuizRepository interface {
	Add(ctx context.Context, quiz domain.Quiz) error
	Update(ctx context.Context, quiz domain.Quiz) error
	Delete(ctx context.Context, quizID string) error
	FindByID(ctx context.Context, quizID string) (domain.Quiz, error)
	List(ctx context.Context) ([]domain.Quiz, error)
	Count(ctx context.Context) (int, error)
}

// SessionRepository abstracts where live play sessions are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Put(sessionID string, session *QuizSession)
	Get(sessionID string) (*QuizSession, bool)
	Delete(sessionID string)
}

// Recorder receives domain events, typically to feed metrics.
type Recorder interface {
	QuizSaved(op string)
	ValidationFailed()
	SessionStarted()
	SessionCompleted()
	AnswerSubmitted(correct bool)
}

type nopRecorder struct{}

func (nopRecorder) QuizSaved(string)     {}
func (nopRecorder) ValidationFailed()    {}
func (nopRecorder) SessionStarted()      {}
func (nopRecorder) SessionCompleted()    {}
func (nopRecorder) AnswerSubmitted(bool) {}

// QuizService contains the authoring and play use cases.
type QuizService struct {
	quizzes  QuizRepository
	sessions SessionRepository
	factory  *Factory
	now      func() time.Time
	log      *zap.Logger
	rec      Recorder
}

// Option configures a QuizService.
type Option func(*QuizService)

func WithLogger(log *zap.Logger) Option {
	return func(s *QuizService) { s.log = log }
}

func WithRecorder(rec Recorder) Option {
	return func(s *QuizService) { s.rec = rec }
}

// WithClock is test-only for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) {
		s.now = now
		s.factory = NewFactoryWithClock(now)
	}
}

func NewQuizService(quizzes QuizRepository, sessions SessionRepository, opts ...Option) *QuizService {
	s := &QuizService{
		quizzes:  quizzes,
		sessions: sessions,
		factory:  NewFactory(),
		now:      time.Now,
		log:      zap.NewNop(),
		rec:      nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateQuiz runs validation without touching the repository.
func (s *QuizService) ValidateQuiz(quiz domain.Quiz) domain.ValidationResult {
	return ValidateQuiz(quiz)
}

// CreateQuiz validates and stores a new quiz. Missing ids are generated.
func (s *QuizService) CreateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	if err := s.checkQuiz(quiz); err != nil {
		return domain.Quiz{}, err
	}

	quiz = quiz.Clone()
	s.factory.AssignIDs(&quiz)
	now := s.now()
	quiz.CreatedAt = now
	quiz.UpdatedAt = now

	if err := s.quizzes.Add(ctx, quiz); err != nil {
		return domain.Quiz{}, err
	}
	s.rec.QuizSaved("create")
	s.log.Info("quiz created",
		zap.String("quiz_id", quiz.ID),
		zap.Int("questions", len(quiz.Questions)))
	return quiz, nil
}

// UpdateQuiz replaces a stored quiz wholesale, keeping its creation time.
func (s *QuizService) UpdateQuiz(ctx context.Context, quiz domain.Quiz) (domain.Quiz, error) {
	if err := s.checkQuiz(quiz); err != nil {
		return domain.Quiz{}, err
	}

	existing, err := s.quizzes.FindByID(ctx, quiz.ID)
	if err != nil {
		return domain.Quiz{}, err
	}

	quiz = quiz.Clone()
	s.factory.AssignIDs(&quiz)
	quiz.CreatedAt = existing.CreatedAt
	quiz.UpdatedAt = s.now()

	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return domain.Quiz{}, err
	}
	s.rec.QuizSaved("update")
	s.log.Info("quiz updated", zap.String("quiz_id", quiz.ID))
	return quiz, nil
}

// DeleteQuiz removes a quiz. Deleting an unknown id is not an error.
func (s *QuizService) DeleteQuiz(ctx context.Context, quizID string) error {
	if err := s.quizzes.Delete(ctx, quizID); err != nil {
		return err
	}
	s.rec.QuizSaved("delete")
	s.log.Info("quiz deleted", zap.String("quiz_id", quizID))
	return nil
}

func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return s.quizzes.FindByID(ctx, quizID)
}

// ListQuizzes returns quizzes in insertion order, filtered by a
// case-insensitive title substring when query is not blank.
func (s *QuizService) ListQuizzes(ctx context.Context, query string) ([]domain.Quiz, error) {
	quizzes, err := s.quizzes.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return quizzes, nil
	}
	filtered := make([]domain.Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		if strings.Contains(strings.ToLower(q.Title), query) {
			filtered = append(filtered, q)
		}
	}
	return filtered, nil
}

func (s *QuizService) CountQuizzes(ctx context.Context) (int, error) {
	return s.quizzes.Count(ctx)
}

// StartSession loads a quiz and registers a fresh play session for it.
func (s *QuizService) StartSession(ctx context.Context, quizID string) (*QuizSession, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	session := NewQuizSession(uuid.NewString(), quiz)
	s.sessions.Put(session.ID(), session)
	s.rec.SessionStarted()
	s.log.Debug("session started",
		zap.String("session_id", session.ID()),
		zap.String("quiz_id", quizID))
	return session, nil
}

func (s *QuizService) Session(sessionID string) (*QuizSession, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *QuizService) SelectAnswer(sessionID, answerID string) (domain.SessionState, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return domain.SessionState{}, err
	}
	if err := session.SelectAnswer(answerID); err != nil {
		return domain.SessionState{}, err
	}
	return session.State(), nil
}

func (s *QuizService) SubmitAnswer(sessionID string) (domain.SubmitResult, domain.SessionState, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return domain.SubmitResult{}, domain.SessionState{}, err
	}
	result, err := session.SubmitAnswer()
	if err != nil {
		return domain.SubmitResult{}, domain.SessionState{}, err
	}
	s.rec.AnswerSubmitted(result.Correct)
	return result, session.State(), nil
}

// NextQuestion advances the session and records completion on the final step.
func (s *QuizService) NextQuestion(sessionID string) (domain.SessionState, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return domain.SessionState{}, err
	}
	wasComplete := session.IsComplete()
	session.NextQuestion()
	state := session.State()
	if !wasComplete && state.Complete {
		s.rec.SessionCompleted()
		s.log.Debug("session complete",
			zap.String("session_id", sessionID),
			zap.Int("score", state.Score),
			zap.Int("total", state.Total))
	}
	return state, nil
}

func (s *QuizService) ResetSession(sessionID string) (domain.SessionState, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return domain.SessionState{}, err
	}
	session.Reset()
	return session.State(), nil
}

func (s *QuizService) Summary(sessionID string) (domain.Summary, error) {
	session, err := s.Session(sessionID)
	if err != nil {
		return domain.Summary{}, err
	}
	return session.Summary()
}

// EndSession drops a session; nothing else needs tearing down.
func (s *QuizService) EndSession(sessionID string) {
	s.sessions.Delete(sessionID)
}

func (s *QuizService) checkQuiz(quiz domain.Quiz) error {
	result := ValidateQuiz(quiz)
	if !result.Valid {
		s.rec.ValidationFailed()
		return result.Err()
	}
	if err := domain.CheckStructure(quiz); err != nil {
		return fmt.Errorf("check quiz structure: %w", err)
	}
	return nil
}

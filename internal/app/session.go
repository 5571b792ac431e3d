package app

import (
	"sync"

	"quiz-studio/internal/domain"
)

// QuizSession drives one playthrough of a quiz. It is the only holder of the
// quiz's correctness flags during play; callers see domain.PlayerQuestion.
type QuizSession struct {
	id   string
	quiz domain.Quiz

	mu       sync.Mutex
	index    int
	selected string
	score    int
	records  []AnswerRecord
	feedback *domain.SubmitResult
}

// NewQuizSession starts a session at the first question. The quiz is copied,
// later edits to the stored quiz do not affect a running session.
func NewQuizSession(id string, quiz domain.Quiz) *QuizSession {
	q := quiz.Clone()
	return &QuizSession{
		id:      id,
		quiz:    q,
		records: make([]AnswerRecord, len(q.Questions)),
	}
}

func (s *QuizSession) ID() string {
	return s.id
}

func (s *QuizSession) QuizID() string {
	return s.quiz.ID
}

// SelectAnswer sets the pending selection for the current question. Re-selecting
// before submission overwrites the previous choice.
func (s *QuizSession) SelectAnswer(answerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completeLocked() {
		return domain.ErrSessionComplete
	}
	if s.records[s.index].Submitted {
		return domain.ErrAnswerLocked
	}
	if _, ok := s.quiz.Questions[s.index].Answer(answerID); !ok {
		return domain.ErrAnswerNotFound
	}
	s.selected = answerID
	return nil
}

// SubmitAnswer locks the pending selection and scores it. A question can be
// submitted once; further calls before NextQuestion return ErrAnswerLocked.
func (s *QuizSession) SubmitAnswer() (domain.SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completeLocked() {
		return domain.SubmitResult{}, domain.ErrSessionComplete
	}
	if s.records[s.index].Submitted {
		return domain.SubmitResult{}, domain.ErrAnswerLocked
	}
	if s.selected == "" {
		return domain.SubmitResult{}, domain.ErrNoSelection
	}

	question := s.quiz.Questions[s.index]
	correct, _ := question.CorrectAnswer()
	result := domain.SubmitResult{
		Correct:         correct.ID != "" && correct.ID == s.selected,
		CorrectAnswerID: correct.ID,
	}
	if result.Correct {
		s.score++
	}
	s.records[s.index] = AnswerRecord{
		Submitted:  true,
		SelectedID: s.selected,
		Correct:    result.Correct,
	}
	s.selected = ""
	s.feedback = &result
	return result, nil
}

// NextQuestion advances the pointer, saturating at the question count.
func (s *QuizSession) NextQuestion() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index < len(s.quiz.Questions) {
		s.index++
	}
	s.selected = ""
	s.feedback = nil
}

// Reset returns the session to the first question with a zero score.
func (s *QuizSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.index = 0
	s.selected = ""
	s.score = 0
	s.feedback = nil
	s.records = make([]AnswerRecord, len(s.quiz.Questions))
}

// CurrentQuestion returns the projection of the question under the pointer,
// or false once the session is complete.
func (s *QuizSession) CurrentQuestion() (domain.PlayerQuestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completeLocked() {
		return domain.PlayerQuestion{}, false
	}
	return s.quiz.Questions[s.index].Player(), true
}

// Progress is the share of questions advanced past, in [0, 100].
func (s *QuizSession) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progressLocked()
}

func (s *QuizSession) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *QuizSession) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *QuizSession) Total() int {
	return len(s.quiz.Questions)
}

func (s *QuizSession) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completeLocked()
}

// State snapshots the derived state for rendering.
func (s *QuizSession) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := domain.SessionState{
		SessionID:        s.id,
		QuizID:           s.quiz.ID,
		QuizTitle:        s.quiz.Title,
		Index:            s.index,
		Total:            len(s.quiz.Questions),
		Progress:         s.progressLocked(),
		Score:            s.score,
		Complete:         s.completeLocked(),
		SelectedAnswerID: s.selected,
	}
	if !state.Complete {
		q := s.quiz.Questions[s.index].Player()
		state.Question = &q
		state.Locked = s.records[s.index].Submitted
	}
	if s.feedback != nil {
		fb := *s.feedback
		state.Feedback = &fb
	}
	return state
}

// Summary builds the score screen. It is only available once complete.
func (s *QuizSession) Summary() (domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.completeLocked() {
		return domain.Summary{}, domain.ErrSessionInProgress
	}
	return BuildSummary(s.quiz, s.records), nil
}

func (s *QuizSession) completeLocked() bool {
	return s.index >= len(s.quiz.Questions)
}

func (s *QuizSession) progressLocked() float64 {
	n := len(s.quiz.Questions)
	if n == 0 {
		return 0
	}
	return float64(s.index) / float64(n) * 100
}

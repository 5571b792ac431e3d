package app

import (
	"time"

	"github.com/google/uuid"
	"quiz-studio/internal/domain"
)

// Factory builds fresh authoring entities with unique ids. It never stores anything.
type Factory struct {
	now func() time.Time
}

func NewFactory() *Factory {
	return NewFactoryWithClock(time.Now)
}

// NewFactoryWithClock is for deterministic timestamps in tests.
func NewFactoryWithClock(now func() time.Time) *Factory {
	return &Factory{now: now}
}

// NewQuiz returns an empty quiz stamped with the current time.
func (f *Factory) NewQuiz(title string) domain.Quiz {
	now := f.now()
	return domain.Quiz{
		ID:        uuid.NewString(),
		Title:     title,
		Questions: []domain.Question{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (f *Factory) NewQuestion(text string) domain.Question {
	return domain.Question{
		ID:      uuid.NewString(),
		Text:    text,
		Answers: []domain.Answer{},
	}
}

func (f *Factory) NewAnswer(text string, correct bool) domain.Answer {
	return domain.Answer{
		ID:        uuid.NewString(),
		Text:      text,
		IsCorrect: correct,
	}
}

// BlankQuestion is what an editor shows for a new question: MinAnswers empty
// answers, none marked correct.
func (f *Factory) BlankQuestion() domain.Question {
	q := f.NewQuestion("")
	for i := 0; i < domain.MinAnswers; i++ {
		q.Answers = append(q.Answers, f.NewAnswer("", false))
	}
	return q
}

// AssignIDs fills in any missing quiz, question or answer ids.
func (f *Factory) AssignIDs(quiz *domain.Quiz) {
	if quiz.ID == "" {
		quiz.ID = uuid.NewString()
	}
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		for j := range q.Answers {
			if q.Answers[j].ID == "" {
				q.Answers[j].ID = uuid.NewString()
			}
		}
	}
}

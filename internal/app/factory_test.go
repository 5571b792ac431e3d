package app_test

import (
	"testing"
	"time"

	"quiz-studio/internal/app"
	"quiz-studio/internal/domain"
)

func TestFactoryBlankQuestion(t *testing.T) {
	f := app.NewFactory()
	q := f.BlankQuestion()

	if q.ID == "" || len(q.Answers) != domain.MinAnswers {
		t.Fatalf("unexpected blank question: %+v", q)
	}
	if q.Answers[0].ID == q.Answers[1].ID {
		t.Fatalf("answer ids must be unique")
	}
	if q.CanRemoveAnswer() || !q.CanAddAnswer() {
		t.Fatalf("blank question should allow adding but not removing answers")
	}
}

func TestFactoryNewQuizUsesClock(t *testing.T) {
	now := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	f := app.NewFactoryWithClock(func() time.Time { return now })
	quiz := f.NewQuiz("Capitals")

	if quiz.ID == "" || quiz.Title != "Capitals" {
		t.Fatalf("unexpected quiz: %+v", quiz)
	}
	if !quiz.CreatedAt.Equal(now) || !quiz.UpdatedAt.Equal(now) {
		t.Fatalf("expected timestamps from clock, got %v / %v", quiz.CreatedAt, quiz.UpdatedAt)
	}
}

func TestFactoryAssignIDsKeepsExisting(t *testing.T) {
	quiz := domain.Quiz{
		ID: "keep",
		Questions: []domain.Question{
			{Answers: []domain.Answer{{ID: "a1"}, {}}},
		},
	}
	app.NewFactory().AssignIDs(&quiz)

	if quiz.ID != "keep" || quiz.Questions[0].Answers[0].ID != "a1" {
		t.Fatalf("existing ids must be kept: %+v", quiz)
	}
	if quiz.Questions[0].ID == "" || quiz.Questions[0].Answers[1].ID == "" {
		t.Fatalf("missing ids must be filled: %+v", quiz)
	}
}

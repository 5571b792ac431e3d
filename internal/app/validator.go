package app

import (
	"fmt"
	"strings"

	"quiz-studio/internal/domain"
)

// ValidateQuiz checks an authored quiz and collects every violation in rule
// order: title first, then per question text and correct answer.
// Answer count bounds are enforced by domain.CheckStructure, not here.
func ValidateQuiz(quiz domain.Quiz) domain.ValidationResult {
	errs := []domain.ValidationError{}

	if strings.TrimSpace(quiz.Title) == "" {
		errs = append(errs, domain.ValidationError{
			Field:   "title",
			Message: domain.MsgTitleRequired,
		})
	}

	for i, q := range quiz.Questions {
		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, domain.ValidationError{
				Field:      fmt.Sprintf("questions[%d].text", i),
				QuestionID: q.ID,
				Message:    domain.MsgQuestionRequired,
			})
		}
		if _, ok := q.CorrectAnswer(); !ok {
			errs = append(errs, domain.ValidationError{
				Field:      fmt.Sprintf("questions[%d].answers", i),
				QuestionID: q.ID,
				Message:    domain.MsgCorrectRequired,
			})
		}
	}

	return domain.ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

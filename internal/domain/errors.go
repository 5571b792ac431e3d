package domain

import (
	"errors"
	"strings"
)

var (
	// ErrQuizNotFound indicates the quiz is absent from the repository.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuizExists is returned when adding a quiz whose id is already stored.
	ErrQuizExists = errors.New("quiz already exists")
	// ErrSessionNotFound is returned when a play session id is unknown.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrAnswerNotFound indicates a selected answer id is not part of the current question.
	ErrAnswerNotFound = errors.New("answer not found")
	// ErrNoSelection is returned when submitting without a pending selection.
	ErrNoSelection = errors.New("no answer selected")
	// ErrAnswerLocked is returned when the current question was already submitted.
	ErrAnswerLocked = errors.New("answer already submitted for this question")
	// ErrSessionComplete is returned for play actions after the last question.
	ErrSessionComplete = errors.New("quiz session is complete")
	// ErrSessionInProgress is returned when asking for a summary too early.
	ErrSessionInProgress = errors.New("quiz session is still in progress")
	// ErrAnswerCount is returned by the structural guard for questions outside [MinAnswers, MaxAnswers].
	ErrAnswerCount = errors.New("question must have between 2 and 4 answers")
	// ErrMultipleCorrect is returned by the structural guard when more than one answer is correct.
	ErrMultipleCorrect = errors.New("question must have exactly one correct answer")
)

// Validation messages surfaced verbatim to authors.
const (
	MsgTitleRequired    = "Quiz title is required"
	MsgQuestionRequired = "Question text is required"
	MsgCorrectRequired  = "Each question must have a correct answer"
)

// ValidationError is one rule violation.
type ValidationError struct {
	Field      string `json:"field"`
	QuestionID string `json:"questionId,omitempty"`
	Message    string `json:"message"`
}

// ValidationResult is the outcome of validating a quiz.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors"`
}

// Messages returns the error messages in rule order.
func (r ValidationResult) Messages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Message)
	}
	return out
}

// Err converts an invalid result into an *InvalidQuizError.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &InvalidQuizError{Errors: r.Errors}
}

// InvalidQuizError carries every validation failure of a rejected save.
type InvalidQuizError struct {
	Errors []ValidationError
}

func (e *InvalidQuizError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, v := range e.Errors {
		msgs = append(msgs, v.Message)
	}
	return "invalid quiz: " + strings.Join(msgs, "; ")
}

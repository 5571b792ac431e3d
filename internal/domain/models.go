package domain

import (
	"fmt"
	"time"
)

// Answer is one option of a question. IsCorrect must never reach a play surface.
type Answer struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	IsCorrect bool   `json:"isCorrect" yaml:"isCorrect"`
}

// Question models an MCQ question with exactly one correct answer.
type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Answers []Answer `json:"answers" yaml:"answers"`
}

// Quiz is a titled, ordered collection of questions.
type Quiz struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
	CreatedAt time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" yaml:"updatedAt"`
}

// PlayerAnswer is the projection of an Answer handed to players.
type PlayerAnswer struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PlayerQuestion is the projection of a Question handed to players.
type PlayerQuestion struct {
	ID      string         `json:"id"`
	Text    string         `json:"text"`
	Answers []PlayerAnswer `json:"answers"`
}

// SubmitResult is everything a player learns after confirming an answer.
type SubmitResult struct {
	Correct         bool   `json:"correct"`
	CorrectAnswerID string `json:"correctAnswerId"`
}

// QuestionResult is one recap row.
type QuestionResult struct {
	QuestionText       string `json:"questionText"`
	Correct            bool   `json:"correct"`
	SelectedAnswerText string `json:"selectedAnswerText"`
	CorrectAnswerText  string `json:"correctAnswerText"`
}

// Verdict classifies a final percentage.
type Verdict string

const (
	VerdictEncouraging   Verdict = "encouraging"
	VerdictNeedsPractice Verdict = "needs practice"
)

// Message is the player-facing framing for the verdict.
func (v Verdict) Message() string {
	if v == VerdictEncouraging {
		return "Great job!"
	}
	return "Keep practicing!"
}

// Summary is the final score screen of a completed session.
type Summary struct {
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage int              `json:"percentage"`
	Verdict    Verdict          `json:"verdict"`
	Message    string           `json:"message"`
	Results    []QuestionResult `json:"results"`
}

// Fraction renders the score as "score / total".
func (s Summary) Fraction() string {
	return fmt.Sprintf("%d / %d", s.Score, s.Total)
}

// SessionState is a render-ready snapshot of a play session.
type SessionState struct {
	SessionID        string          `json:"sessionId,omitempty"`
	QuizID           string          `json:"quizId"`
	QuizTitle        string          `json:"quizTitle"`
	Index            int             `json:"index"`
	Total            int             `json:"total"`
	Progress         float64         `json:"progress"`
	Score            int             `json:"score"`
	Complete         bool            `json:"complete"`
	SelectedAnswerID string          `json:"selectedAnswerId,omitempty"`
	Locked           bool            `json:"locked"`
	Question         *PlayerQuestion `json:"question,omitempty"`
	Feedback         *SubmitResult   `json:"feedback,omitempty"`
}

// Player strips correctness from the question.
func (q Question) Player() PlayerQuestion {
	answers := make([]PlayerAnswer, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, PlayerAnswer{ID: a.ID, Text: a.Text})
	}
	return PlayerQuestion{ID: q.ID, Text: q.Text, Answers: answers}
}

// CorrectAnswer returns the first answer flagged correct.
func (q Question) CorrectAnswer() (Answer, bool) {
	for _, a := range q.Answers {
		if a.IsCorrect {
			return a, true
		}
	}
	return Answer{}, false
}

// Answer looks up an answer by id.
func (q Question) Answer(id string) (Answer, bool) {
	for _, a := range q.Answers {
		if a.ID == id {
			return a, true
		}
	}
	return Answer{}, false
}

// Clone returns a deep copy so callers cannot mutate shared answer slices.
func (q Quiz) Clone() Quiz {
	out := q
	out.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		out.Questions[i] = question
		out.Questions[i].Answers = append([]Answer(nil), question.Answers...)
	}
	return out
}

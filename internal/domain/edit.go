package domain

import "fmt"

const (
	MinAnswers = 2
	MaxAnswers = 4
)

// CanAddAnswer reports whether the editor may offer another answer slot.
func (q Question) CanAddAnswer() bool {
	return len(q.Answers) < MaxAnswers
}

// CanRemoveAnswer reports whether the editor may drop an answer.
func (q Question) CanRemoveAnswer() bool {
	return len(q.Answers) > MinAnswers
}

// AddAnswer appends an answer, refusing once the question is full.
func (q *Question) AddAnswer(a Answer) error {
	if !q.CanAddAnswer() {
		return ErrAnswerCount
	}
	q.Answers = append(q.Answers, a)
	return nil
}

// RemoveAnswer drops the answer with the given id, refusing at the lower bound.
func (q *Question) RemoveAnswer(id string) error {
	if !q.CanRemoveAnswer() {
		return ErrAnswerCount
	}
	for i, a := range q.Answers {
		if a.ID == id {
			q.Answers = append(q.Answers[:i:i], q.Answers[i+1:]...)
			return nil
		}
	}
	return ErrAnswerNotFound
}

// MarkCorrect flags exactly one answer as correct.
func (q *Question) MarkCorrect(id string) error {
	if _, ok := q.Answer(id); !ok {
		return ErrAnswerNotFound
	}
	for i := range q.Answers {
		q.Answers[i].IsCorrect = q.Answers[i].ID == id
	}
	return nil
}

// CheckStructure is the authoring guard for shapes an editor cannot produce:
// answer counts outside [MinAnswers, MaxAnswers] and multiple correct answers.
func CheckStructure(quiz Quiz) error {
	for i, q := range quiz.Questions {
		if n := len(q.Answers); n < MinAnswers || n > MaxAnswers {
			return fmt.Errorf("question %d: %w", i+1, ErrAnswerCount)
		}
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		if correct > 1 {
			return fmt.Errorf("question %d: %w", i+1, ErrMultipleCorrect)
		}
	}
	return nil
}

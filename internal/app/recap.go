package app

import (
	"math"

	"quiz-studio/internal/domain"
)

// PassThreshold is the percentage at or above which a result is framed as encouraging.
const PassThreshold = 70

// AnswerRecord is the bookkeeping kept per question during play.
type AnswerRecord struct {
	Submitted  bool
	SelectedID string
	Correct    bool
}

// BuildSummary derives the score screen from the quiz and one record per question.
// Questions without a submitted record count as incorrect with no selection.
func BuildSummary(quiz domain.Quiz, records []AnswerRecord) domain.Summary {
	results := make([]domain.QuestionResult, 0, len(quiz.Questions))
	score := 0
	for i, q := range quiz.Questions {
		var rec AnswerRecord
		if i < len(records) {
			rec = records[i]
		}

		row := domain.QuestionResult{QuestionText: q.Text}
		if correct, ok := q.CorrectAnswer(); ok {
			row.CorrectAnswerText = correct.Text
		}
		if rec.Submitted {
			if selected, ok := q.Answer(rec.SelectedID); ok {
				row.SelectedAnswerText = selected.Text
			}
			row.Correct = rec.Correct
		}
		if row.Correct {
			score++
		}
		results = append(results, row)
	}

	total := len(quiz.Questions)
	pct := Percentage(score, total)
	verdict := VerdictFor(pct)
	return domain.Summary{
		Score:      score,
		Total:      total,
		Percentage: pct,
		Verdict:    verdict,
		Message:    verdict.Message(),
		Results:    results,
	}
}

// Percentage returns round(score/total*100), or 0 for an empty quiz.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// VerdictFor maps a percentage onto its message class.
func VerdictFor(percentage int) domain.Verdict {
	if percentage >= PassThreshold {
		return domain.VerdictEncouraging
	}
	return domain.VerdictNeedsPractice
}

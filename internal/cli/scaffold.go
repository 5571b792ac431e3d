package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"quiz-studio/internal/app"
	"quiz-studio/internal/domain"
)

// NewScaffoldCmd prints a quiz file skeleton for authors to fill in.
func NewScaffoldCmd() *cobra.Command {
	var questions, answers int
	cmd := &cobra.Command{
		Use:   "scaffold TITLE",
		Short: "Print a YAML quiz skeleton with blank questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeScaffold(cmd.OutOrStdout(), app.NewFactory(), args[0], questions, answers)
		},
	}
	cmd.Flags().IntVar(&questions, "questions", 1, "number of blank questions")
	cmd.Flags().IntVar(&answers, "answers", domain.MinAnswers, "answers per question (2-4)")
	return cmd
}

// writeScaffold builds the skeleton the way an editor would: blank questions
// grown one answer at a time, the first answer marked correct.
func writeScaffold(out io.Writer, f *app.Factory, title string, questions, answers int) error {
	if answers < domain.MinAnswers || answers > domain.MaxAnswers {
		return domain.ErrAnswerCount
	}
	if questions < 1 {
		return fmt.Errorf("questions must be positive, got %d", questions)
	}

	quiz := f.NewQuiz(title)
	for i := 0; i < questions; i++ {
		q := f.BlankQuestion()
		for len(q.Answers) < answers && q.CanAddAnswer() {
			if err := q.AddAnswer(f.NewAnswer("", false)); err != nil {
				return err
			}
		}
		if err := q.MarkCorrect(q.Answers[0].ID); err != nil {
			return err
		}
		quiz.Questions = append(quiz.Questions, q)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(quiz); err != nil {
		return err
	}
	return enc.Close()
}

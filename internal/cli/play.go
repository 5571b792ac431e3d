package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"quiz-studio/internal/app"
	"quiz-studio/internal/domain"
	"quiz-studio/internal/infra/memory"
)

// NewPlayCmd plays a quiz file in the terminal.
func NewPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play FILE",
		Short: "Play a quiz file in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quiz, err := loadQuizFile(args[0])
			if err != nil {
				return err
			}
			service := app.NewQuizService(memory.NewQuizRepository(), memory.NewSessionStore(), app.WithLogger(zap.NewNop()))
			saved, err := service.CreateQuiz(cmd.Context(), quiz)
			if err != nil {
				return err
			}
			return playLoop(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), service, saved.ID)
		},
	}
}

// playLoop drives one session from line-oriented input. Answers are picked by
// their number; "q" quits.
func playLoop(ctx context.Context, in io.Reader, out io.Writer, service *app.QuizService, quizID string) error {
	session, err := service.StartSession(ctx, quizID)
	if err != nil {
		return err
	}
	defer service.EndSession(session.ID())

	scanner := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	fmt.Fprintf(out, "%s\n", session.State().QuizTitle)
	for {
		question, ok := session.CurrentQuestion()
		if !ok {
			summary, err := service.Summary(session.ID())
			if err != nil {
				return err
			}
			printSummary(out, summary)
			fmt.Fprint(out, "Play again? [y/N] ")
			line, ok := readLine()
			if !ok || !strings.EqualFold(line, "y") {
				return scanner.Err()
			}
			if _, err := service.ResetSession(session.ID()); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintf(out, "\nQuestion %d of %d (%.0f%%)\n%s\n",
			session.Index()+1, session.Total(), session.Progress(), question.Text)
		for i, a := range question.Answers {
			fmt.Fprintf(out, "  %d) %s\n", i+1, a.Text)
		}

		for {
			fmt.Fprint(out, "> ")
			line, ok := readLine()
			if !ok {
				return scanner.Err()
			}
			if strings.EqualFold(line, "q") {
				return nil
			}
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > len(question.Answers) {
				fmt.Fprintf(out, "Pick a number between 1 and %d.\n", len(question.Answers))
				continue
			}
			if _, err := service.SelectAnswer(session.ID(), question.Answers[n-1].ID); err != nil {
				return err
			}
			break
		}

		result, _, err := service.SubmitAnswer(session.ID())
		if err != nil {
			return err
		}
		if result.Correct {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Incorrect. The answer was %s\n", answerText(question, result.CorrectAnswerID))
		}
		if _, err := service.NextQuestion(session.ID()); err != nil {
			return err
		}
	}
}

func answerText(q domain.PlayerQuestion, id string) string {
	for _, a := range q.Answers {
		if a.ID == id {
			return a.Text
		}
	}
	return "(none)"
}

func printSummary(out io.Writer, s domain.Summary) {
	fmt.Fprintf(out, "\nScore: %s (%d%%)\n%s\n", s.Fraction(), s.Percentage, s.Message)
	for i, r := range s.Results {
		mark := "x"
		if r.Correct {
			mark = "v"
		}
		fmt.Fprintf(out, "  [%s] %d. %s: you said %q, answer %q\n",
			mark, i+1, r.QuestionText, r.SelectedAnswerText, r.CorrectAnswerText)
	}
}

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"quiz-studio/internal/app"
	"quiz-studio/internal/domain"
)

var errInvalidQuiz = errors.New("quiz is invalid")

// NewValidateCmd checks quiz files without storing them.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate quiz files and print every problem found",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, path := range args {
				quiz, err := loadQuizFile(path)
				if err != nil {
					return err
				}
				if !reportValidation(cmd.OutOrStdout(), path, quiz) {
					failed = true
				}
			}
			if failed {
				return errInvalidQuiz
			}
			return nil
		},
	}
}

// reportValidation prints the validation messages, then the structural guard
// result, and reports whether the quiz may be saved.
func reportValidation(out io.Writer, name string, quiz domain.Quiz) bool {
	result := app.ValidateQuiz(quiz)
	ok := result.Valid
	for _, e := range result.Errors {
		fmt.Fprintf(out, "%s: %s: %s\n", name, e.Field, e.Message)
	}
	if err := domain.CheckStructure(quiz); err != nil {
		fmt.Fprintf(out, "%s: %v\n", name, err)
		ok = false
	}
	if ok {
		fmt.Fprintf(out, "%s: ok (%d questions)\n", name, len(quiz.Questions))
	}
	return ok
}

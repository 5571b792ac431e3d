package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"quiz-studio/internal/app"
	"quiz-studio/internal/config"
	"quiz-studio/internal/logger"
)

var errNoDurableStore = errors.New("import needs postgres.url: quizzes in the memory store are lost when the command exits")

// NewImportCmd saves quiz files into the configured store.
func NewImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Validate and save quiz files into the configured store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			st, err := openStorage(cmd.Context(), cfg, log, false)
			if err != nil {
				return err
			}
			defer st.Close()
			if !st.durable {
				return errNoDurableStore
			}

			service := app.NewQuizService(st.quizzes, st.sessions, app.WithLogger(log))
			for _, path := range args {
				quiz, err := loadQuizFile(path)
				if err != nil {
					return err
				}
				saved, err := service.CreateQuiz(cmd.Context(), quiz)
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				log.Info("quiz imported", zap.String("file", path), zap.String("quiz_id", saved.ID))
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, saved.ID)
			}
			return nil
		},
	}
}

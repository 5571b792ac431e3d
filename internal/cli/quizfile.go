package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"quiz-studio/internal/domain"
)

// loadQuizFile reads one quiz from YAML (JSON files parse too).
func loadQuizFile(path string) (domain.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Quiz{}, err
	}
	var quiz domain.Quiz
	if err := yaml.Unmarshal(data, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return quiz, nil
}

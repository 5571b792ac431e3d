package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestImportCmdRefusesMemoryStore(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "missing.yaml")
	cmd := NewImportCmd(&configPath)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{writeQuizFile(t, quizYAML)})

	err := cmd.Execute()
	if !errors.Is(err, errNoDurableStore) {
		t.Fatalf("expected errNoDurableStore, got %v", err)
	}
	if strings.Contains(out.String(), "->") {
		t.Fatalf("nothing should be reported as imported:\n%s", out.String())
	}
}

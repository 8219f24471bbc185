package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePromptFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write prompt file: %v", err)
	}
	return path
}

func TestLoadPromptFromFile(t *testing.T) {
	cfg := validTestConfig()

	t.Run("loads and trims content", func(t *testing.T) {
		path := writePromptFile(t, "analyze.txt", "\n  You are an expert resume reviewer.  \n\n")
		got, err := cfg.loadPromptFromFile(path, "system", "analyzeResume")
		if err != nil {
			t.Fatalf("loadPromptFromFile() error: %v", err)
		}
		if got != "You are an expert resume reviewer." {
			t.Errorf("loadPromptFromFile() = %q, want trimmed content", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := cfg.loadPromptFromFile(filepath.Join(t.TempDir(), "missing.txt"), "system", "analyzeResume")
		if err == nil {
			t.Fatal("loadPromptFromFile() expected error for missing file")
		}
		if !strings.Contains(err.Error(), "not found") {
			t.Errorf("error = %q, want it to mention the missing file", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writePromptFile(t, "empty.txt", "   \n\t\n")
		_, err := cfg.loadPromptFromFile(path, "user", "matchJob")
		if err == nil {
			t.Fatal("loadPromptFromFile() expected error for empty file")
		}
		if !strings.Contains(err.Error(), "empty") {
			t.Errorf("error = %q, want it to mention the empty file", err)
		}
	})
}

func TestValidatePromptFiles(t *testing.T) {
	t.Run("no files configured", func(t *testing.T) {
		cfg := validTestConfig()
		if err := cfg.validatePromptFiles(); err != nil {
			t.Errorf("validatePromptFiles() unexpected error: %v", err)
		}
	})

	t.Run("existing files pass", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.AI.CustomPrompts.SystemPrompts.AnalyzeResumeFile = writePromptFile(t, "sys.txt", "system prompt")
		cfg.AI.JobMatch.CustomPrompts.UserPrompts.MatchJobFile = writePromptFile(t, "user.txt", "user prompt")
		if err := cfg.validatePromptFiles(); err != nil {
			t.Errorf("validatePromptFiles() unexpected error: %v", err)
		}
	})

	t.Run("missing files collected", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.AI.CustomPrompts.SystemPrompts.AnalyzeResumeFile = filepath.Join(t.TempDir(), "gone-sys.txt")
		cfg.AI.CustomPrompts.UserPrompts.MatchJobFile = filepath.Join(t.TempDir(), "gone-user.txt")
		err := cfg.validatePromptFiles()
		if err == nil {
			t.Fatal("validatePromptFiles() expected error for missing files")
		}
		if !strings.Contains(err.Error(), "gone-sys.txt") || !strings.Contains(err.Error(), "gone-user.txt") {
			t.Errorf("error should list every missing file, got %q", err)
		}
	})
}

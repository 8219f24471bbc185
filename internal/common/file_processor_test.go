package common

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"resumelens/internal/errors"
)

func TestReadFileBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	content := []byte("Jane Doe\njane@example.com\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	fp := NewFileProcessor(nil)

	t.Run("reads within limit", func(t *testing.T) {
		data, err := fp.ReadFileBytes(path, 1024)
		if err != nil {
			t.Fatalf("ReadFileBytes() error: %v", err)
		}
		if string(data) != string(content) {
			t.Errorf("ReadFileBytes() = %q, want %q", data, content)
		}
	})

	t.Run("no limit when max size is zero", func(t *testing.T) {
		if _, err := fp.ReadFileBytes(path, 0); err != nil {
			t.Errorf("ReadFileBytes() with no limit should succeed, got %v", err)
		}
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		_, err := fp.ReadFileBytes(path, 4)
		if err == nil {
			t.Fatal("ReadFileBytes() expected error for oversized file")
		}
		var appErr *errors.AppError
		if !stderrors.As(err, &appErr) {
			t.Fatalf("error is not an AppError: %v", err)
		}
		if appErr.Code != "FILE_TOO_LARGE" {
			t.Errorf("error code = %q, want %q", appErr.Code, "FILE_TOO_LARGE")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := fp.ReadFileBytes(filepath.Join(dir, "absent.pdf"), 1024)
		if err == nil {
			t.Fatal("ReadFileBytes() expected error for missing file")
		}
	})
}

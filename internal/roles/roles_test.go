package roles

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"resumelens/internal/errors"
)

func TestStoreDefaults(t *testing.T) {
	store := NewStore()

	categories := store.Categories()
	if len(categories) == 0 {
		t.Fatal("built-in taxonomy is empty")
	}
	for i := 1; i < len(categories); i++ {
		if categories[i-1] >= categories[i] {
			t.Errorf("categories not sorted: %v", categories)
		}
	}

	names, err := store.Roles("Software Development")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no roles in Software Development")
	}

	profile, err := store.Get("Software Development", "Backend Engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profile.RequiredSkills) == 0 {
		t.Error("backend engineer profile has no required skills")
	}
}

func TestStoreCaseInsensitiveLookup(t *testing.T) {
	store := NewStore()
	profile, err := store.Get("software development", "backend engineer")
	if err != nil {
		t.Fatalf("case-insensitive lookup failed: %v", err)
	}
	if profile.Name != "Backend Engineer" {
		t.Errorf("got %q", profile.Name)
	}
}

func TestStoreUnknownRole(t *testing.T) {
	store := NewStore()
	tests := []struct {
		name           string
		category, role string
	}{
		{name: "unknown category", category: "Basket Weaving", role: "Weaver"},
		{name: "unknown role", category: "Software Development", role: "Wizard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Get(tt.category, tt.role)
			if err == nil {
				t.Fatal("expected error")
			}
			appErr, ok := err.(*errors.AppError)
			if !ok || appErr.Code != errors.ErrCodeInvalidRoleConfig {
				t.Errorf("expected %s, got %v", errors.ErrCodeInvalidRoleConfig, err)
			}
		})
	}
}

func TestStoreFind(t *testing.T) {
	store := NewStore()
	profile, err := store.Find("data scientist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Category != "Data Science" {
		t.Errorf("category = %q", profile.Category)
	}
}

func TestStoreReplaceEmptyFallsBack(t *testing.T) {
	store := NewStore()
	store.Replace(nil)
	if len(store.Categories()) == 0 {
		t.Error("empty replace should restore the built-in taxonomy")
	}
}

func TestCustom(t *testing.T) {
	profile, err := Custom("Platform Engineer", []string{" Go ", "", "Terraform"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profile.RequiredSkills) != 2 {
		t.Errorf("skills = %v, blanks should be dropped", profile.RequiredSkills)
	}

	if _, err := Custom("Empty", []string{" ", ""}); err == nil {
		t.Error("custom role without skills should fail")
	}
}

const rolesYAML = `categories:
  Engineering:
    Platform Engineer:
      description: Runs the platform
      required_skills:
        - Go
        - Terraform
        - Kubernetes
`

func writeRolesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roles.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeRolesFile(t, rolesYAML)
	profiles, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	profile, ok := profiles["Engineering"]["Platform Engineer"]
	if !ok {
		t.Fatalf("profile missing: %+v", profiles)
	}
	if profile.Description != "Runs the platform" {
		t.Errorf("description = %q", profile.Description)
	}
	if len(profile.RequiredSkills) != 3 {
		t.Errorf("skills = %v", profile.RequiredSkills)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no categories", content: "categories: {}\n"},
		{name: "role without skills", content: "categories:\n  Engineering:\n    Ghost:\n      description: nothing\n"},
		{name: "not yaml", content: "{{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRolesFile(t, tt.content)
			if _, err := LoadFile(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWatcherReload(t *testing.T) {
	path := writeRolesFile(t, rolesYAML)
	store := NewStore()
	watcher := NewWatcher(path, store, 50*time.Millisecond, nil)
	if err := watcher.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() {
		if err := watcher.Stop(); err != nil {
			t.Errorf("stop: %v", err)
		}
	}()

	if !watcher.IsRunning() {
		t.Fatal("watcher should be running")
	}

	updated := rolesYAML + "    Release Engineer:\n      required_skills: [CI/CD]\n"
	if err := os.WriteFile(path, []byte(updated), 0600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := store.Get("Engineering", "Release Engineer"); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("taxonomy was not reloaded after file change")
}

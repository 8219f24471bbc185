package match

import (
	"reflect"
	"testing"

	"resumelens/internal/errors"
	"resumelens/internal/types"
)

func sectionsWithSkills(skills string) types.ResumeSections {
	s := types.NewResumeSections()
	s[types.SectionSkills] = skills
	return s
}

func TestSkills(t *testing.T) {
	tests := []struct {
		name        string
		sections    types.ResumeSections
		required    []string
		wantScore   int
		wantMatched []string
		wantMissing []string
	}{
		{
			name:        "partial match rounds to 67",
			sections:    sectionsWithSkills("Python, SQL, Communication"),
			required:    []string{"Python", "SQL", "AWS"},
			wantScore:   67,
			wantMatched: []string{"Python", "SQL"},
			wantMissing: []string{"AWS"},
		},
		{
			name:        "full match",
			sections:    sectionsWithSkills("Go, Docker, Kubernetes"),
			required:    []string{"Go", "Docker"},
			wantScore:   100,
			wantMatched: []string{"Docker", "Go"},
			wantMissing: []string{},
		},
		{
			name:        "no match",
			sections:    sectionsWithSkills("Photoshop, Illustrator"),
			required:    []string{"Go", "SQL"},
			wantScore:   0,
			wantMatched: []string{},
			wantMissing: []string{"Go", "SQL"},
		},
		{
			name:        "empty required skills scores 100",
			sections:    sectionsWithSkills("Anything"),
			required:    nil,
			wantScore:   100,
			wantMatched: []string{},
			wantMissing: []string{},
		},
		{
			name:        "case insensitive",
			sections:    sectionsWithSkills("PYTHON, sql"),
			required:    []string{"python", "SQL"},
			wantScore:   100,
			wantMatched: []string{"SQL", "python"},
			wantMissing: []string{},
		},
		{
			name:        "synonyms match",
			sections:    sectionsWithSkills("JS, Postgres, K8s"),
			required:    []string{"JavaScript", "PostgreSQL", "Kubernetes"},
			wantScore:   100,
			wantMatched: []string{"JavaScript", "Kubernetes", "PostgreSQL"},
			wantMissing: []string{},
		},
		{
			name:        "no fuzzy matching",
			sections:    sectionsWithSkills("Pythonic thinking"),
			required:    []string{"Python"},
			wantScore:   0,
			wantMatched: []string{},
			wantMissing: []string{"Python"},
		},
		{
			name: "experience section contributes evidence",
			sections: types.ResumeSections{
				types.SectionSkills:     "",
				types.SectionExperience: "- Built services in Go and Python",
				types.SectionProjects:   "",
			},
			required:    []string{"Go", "Python"},
			wantScore:   100,
			wantMatched: []string{"Go", "Python"},
			wantMissing: []string{},
		},
		{
			name:        "bullet and pipe separators",
			sections:    sectionsWithSkills("• Go | Rust\n- Terraform"),
			required:    []string{"Go", "Rust", "Terraform"},
			wantScore:   100,
			wantMatched: []string{"Go", "Rust", "Terraform"},
			wantMissing: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Skills(tt.sections, tt.required)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if !reflect.DeepEqual(got.MatchedSkills, tt.wantMatched) {
				t.Errorf("matched = %v, want %v", got.MatchedSkills, tt.wantMatched)
			}
			if !reflect.DeepEqual(got.MissingSkills, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", got.MissingSkills, tt.wantMissing)
			}
		})
	}
}

func TestSkillsEmptyRequiredSkillEntry(t *testing.T) {
	_, err := Skills(sectionsWithSkills("Go"), []string{"Go", "  "})
	if err == nil {
		t.Fatal("expected error for blank required skill")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeInvalidRoleConfig {
		t.Errorf("expected %s, got %v", errors.ErrCodeInvalidRoleConfig, err)
	}
}

// Adding a matched skill to the requirements never lowers the score.
func TestSkillsMonotonicity(t *testing.T) {
	sections := sectionsWithSkills("Go, SQL, Docker")
	base, err := Skills(sections, []string{"Go", "Rust"})
	if err != nil {
		t.Fatal(err)
	}
	wider, err := Skills(sections, []string{"Go", "Rust", "SQL"})
	if err != nil {
		t.Fatal(err)
	}
	if wider.Score < base.Score {
		t.Errorf("score dropped from %d to %d after adding a matched skill", base.Score, wider.Score)
	}
}

func BenchmarkSkills(b *testing.B) {
	sections := sectionsWithSkills("Go, Python, SQL, Docker, Kubernetes, Terraform, AWS, GCP")
	required := []string{"Go", "Python", "Rust", "SQL", "Kafka"}
	for b.Loop() {
		if _, err := Skills(sections, required); err != nil {
			b.Fatal(err)
		}
	}
}

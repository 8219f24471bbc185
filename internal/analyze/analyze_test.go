package analyze

import (
	"context"
	"strings"
	"testing"

	"resumelens/internal/extract"
	"resumelens/internal/types"
)

const sampleResume = `John Doe
john.doe@example.com | (555) 123-4567 | linkedin.com/in/johndoe

Summary
Backend engineer with six years of experience designing and operating
high-throughput services for payments and logistics platforms, focused
on reliability, observability, and pragmatic system design that keeps
teams shipping quickly without sacrificing operational safety margins.

Work Experience
Acme Corp - Senior Engineer
- Built the billing pipeline processing two million events daily
- Led the migration from virtual machines to Kubernetes
- Mentored four junior engineers through promotion cycles

Education
BS Computer Science, State University, 2016

Projects
- Open source load testing harness used by three teams

Skills
Go, Python, SQL, Kubernetes, Docker, Terraform`

func backendRole() *types.RoleProfile {
	return &types.RoleProfile{
		Category:       "Software Development",
		Name:           "Backend Engineer",
		RequiredSkills: []string{"Go", "SQL", "Kubernetes", "Kafka"},
	}
}

func TestTextFullPipeline(t *testing.T) {
	engine := NewEngine(nil)
	got, err := engine.Text(context.Background(), sampleResume, backendRole())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.IsResume {
		t.Errorf("resume text flagged as %q", got.DocumentType)
	}
	if got.Warning != "" {
		t.Errorf("unexpected warning: %q", got.Warning)
	}
	if got.Role != "Backend Engineer" {
		t.Errorf("role = %q", got.Role)
	}
	if got.ATSScore < 0 || got.ATSScore > 100 {
		t.Errorf("ats score %d out of range", got.ATSScore)
	}
	if got.KeywordMatchScore != 75 {
		t.Errorf("keyword score = %d, want 75 (3 of 4 skills)", got.KeywordMatchScore)
	}
	if len(got.MissingSkills) != 1 || got.MissingSkills[0] != "Kafka" {
		t.Errorf("missing skills = %v, want [Kafka]", got.MissingSkills)
	}
	for _, sec := range types.AllSections {
		if _, ok := got.Sections[sec]; !ok {
			t.Errorf("result sections missing canonical key %q", sec)
		}
	}
}

func TestTextCompositeWeights(t *testing.T) {
	engine := NewEngine(nil)
	got, err := engine.Text(context.Background(), sampleResume, backendRole())
	if err != nil {
		t.Fatal(err)
	}
	want := composite(got.KeywordMatchScore, got.FormatScore, got.SectionScore)
	if got.ATSScore != want {
		t.Errorf("ats score = %d, want composite %d", got.ATSScore, want)
	}
}

func TestComposite(t *testing.T) {
	tests := []struct {
		name                     string
		keyword, format, section int
		want                     int
	}{
		{name: "all perfect", keyword: 100, format: 100, section: 100, want: 100},
		{name: "all zero", keyword: 0, format: 0, section: 0, want: 0},
		{name: "weighted mix", keyword: 100, format: 50, section: 50, want: 70},
		{name: "rounding", keyword: 67, format: 80, section: 80, want: 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := composite(tt.keyword, tt.format, tt.section); got != tt.want {
				t.Errorf("composite(%d,%d,%d) = %d, want %d",
					tt.keyword, tt.format, tt.section, got, tt.want)
			}
		})
	}
}

func TestTextNonResumeFlagged(t *testing.T) {
	engine := NewEngine(nil)
	got, err := engine.Text(context.Background(),
		"Invoice Number: 4921\nBill To: Acme Corp\nAmount Due: $1,200", nil)
	if err != nil {
		t.Fatalf("non-resume input should still complete: %v", err)
	}
	if got.IsResume {
		t.Error("invoice passed the resume gate")
	}
	if !strings.Contains(got.Warning, "invoice") {
		t.Errorf("warning should name the detected type: %q", got.Warning)
	}
	if got.ATSScore < 0 || got.ATSScore > 100 {
		t.Errorf("ats score %d out of range", got.ATSScore)
	}
}

func TestTextNoRoleScoresHundredKeywords(t *testing.T) {
	engine := NewEngine(nil)
	got, err := engine.Text(context.Background(), sampleResume, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.KeywordMatchScore != 100 {
		t.Errorf("keyword score without role = %d, want 100", got.KeywordMatchScore)
	}
	if got.MissingSkills == nil || len(got.MissingSkills) != 0 {
		t.Errorf("missing skills should be empty, got %v", got.MissingSkills)
	}
}

func TestTextBadRoleDegrades(t *testing.T) {
	engine := NewEngine(nil)
	role := &types.RoleProfile{Name: "Broken", RequiredSkills: []string{"Go", " "}}
	got, err := engine.Text(context.Background(), sampleResume, role)
	if err != nil {
		t.Fatalf("bad role config should degrade, not abort: %v", err)
	}
	if !got.KeywordMatchUnavailable {
		t.Error("degraded run should mark the keyword score unavailable")
	}
	if got.FormatScore <= 0 {
		t.Error("format scoring should proceed despite matching failure")
	}
	if want := structuralComposite(got.FormatScore, got.SectionScore); got.ATSScore != want {
		t.Errorf("ats score = %d, want structural composite %d", got.ATSScore, want)
	}
}

func TestTextBadRoleDistinctFromZeroMatch(t *testing.T) {
	engine := NewEngine(nil)

	degraded, err := engine.Text(context.Background(), sampleResume,
		&types.RoleProfile{Name: "Broken", RequiredSkills: []string{"Go", "   "}})
	if err != nil {
		t.Fatal(err)
	}
	zero, err := engine.Text(context.Background(), sampleResume,
		&types.RoleProfile{Name: "Mainframe", RequiredSkills: []string{"COBOL", "Fortran"}})
	if err != nil {
		t.Fatal(err)
	}

	if zero.KeywordMatchScore != 0 || zero.KeywordMatchUnavailable {
		t.Errorf("zero-match run = score %d, unavailable %v; want a plain 0",
			zero.KeywordMatchScore, zero.KeywordMatchUnavailable)
	}
	if !degraded.KeywordMatchUnavailable {
		t.Error("invalid role config should be marked, not reported as score 0")
	}
	// Both runs score the same structure, so the composite must also
	// separate a dropped keyword term from a genuine zero.
	if degraded.ATSScore <= zero.ATSScore {
		t.Errorf("degraded ats = %d, zero-match ats = %d; dropping the keyword term should raise the composite",
			degraded.ATSScore, zero.ATSScore)
	}
	if got := degraded.Flatten()["keyword_match_score"]; got != "unavailable" {
		t.Errorf("flattened degraded keyword score = %q, want %q", got, "unavailable")
	}
}

func TestStructuralComposite(t *testing.T) {
	tests := []struct {
		name            string
		format, section int
		want            int
	}{
		{name: "equal weights average", format: 80, section: 60, want: 70},
		{name: "all zero", format: 0, section: 0, want: 0},
		{name: "perfect", format: 100, section: 100, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := structuralComposite(tt.format, tt.section); got != tt.want {
				t.Errorf("structuralComposite(%d,%d) = %d, want %d",
					tt.format, tt.section, got, tt.want)
			}
		})
	}
}

func TestTextSummaryOnlyResume(t *testing.T) {
	engine := NewEngine(nil)
	text := "An experienced professional summary paragraph describing skills and education informally."
	got, err := engine.Text(context.Background(), text, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got.Sections[types.SectionSummary], "experienced professional") {
		t.Errorf("headingless text should land in summary: %+v", got.Sections)
	}
}

func TestTextIdempotent(t *testing.T) {
	engine := NewEngine(nil)
	role := backendRole()
	first, err := engine.Text(context.Background(), sampleResume, role)
	if err != nil {
		t.Fatal(err)
	}
	second, err := engine.Text(context.Background(), sampleResume, role)
	if err != nil {
		t.Fatal(err)
	}
	if first.ATSScore != second.ATSScore ||
		first.KeywordMatchScore != second.KeywordMatchScore ||
		first.FormatScore != second.FormatScore ||
		first.SectionScore != second.SectionScore {
		t.Errorf("repeated analysis diverged: %+v vs %+v", first, second)
	}
}

func TestTextEmptyInput(t *testing.T) {
	engine := NewEngine(nil)
	if _, err := engine.Text(context.Background(), "", nil); err == nil {
		t.Fatal("empty text should fail")
	}
}

func TestDocumentPlainText(t *testing.T) {
	engine := NewEngine(nil)
	got, err := engine.Document(context.Background(), []byte(sampleResume), extract.FormatText, backendRole())
	if err != nil {
		t.Fatal(err)
	}
	if got.KeywordMatchScore != 75 {
		t.Errorf("keyword score = %d, want 75", got.KeywordMatchScore)
	}
}

func TestDocumentWhitespaceOnly(t *testing.T) {
	engine := NewEngine(nil)
	if _, err := engine.Document(context.Background(), []byte("   \n\t  "), extract.FormatText, nil); err == nil {
		t.Fatal("whitespace-only document should fail extraction")
	}
}

func TestFlattenContract(t *testing.T) {
	engine := NewEngine(nil)
	got, err := engine.Text(context.Background(), sampleResume, backendRole())
	if err != nil {
		t.Fatal(err)
	}
	flat := got.Flatten()
	for _, key := range []string{
		"ats_score", "keyword_match_score", "format_score", "section_score",
		"missing_skills", "recommendations",
	} {
		if _, ok := flat[key]; !ok {
			t.Errorf("flattened record missing %q", key)
		}
	}
	if flat["missing_skills"] != "Kafka" {
		t.Errorf("missing_skills = %q, want %q", flat["missing_skills"], "Kafka")
	}
}

func BenchmarkText(b *testing.B) {
	engine := NewEngine(nil)
	role := backendRole()
	for b.Loop() {
		if _, err := engine.Text(context.Background(), sampleResume, role); err != nil {
			b.Fatal(err)
		}
	}
}

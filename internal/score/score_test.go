package score

import (
	"strings"
	"testing"

	"resumelens/internal/types"
)

func fullSections() types.ResumeSections {
	s := types.NewResumeSections()
	s[types.SectionContact] = "John Doe\njohn@example.com\n(555) 123-4567\nlinkedin.com/in/johndoe"
	s[types.SectionSummary] = strings.Repeat("word ", 50)
	s[types.SectionExperience] = "Acme Corp\n- built the billing pipeline\n- led a team of four\n" + strings.Repeat("- shipped a feature\n", 30)
	s[types.SectionEducation] = "BS Computer Science " + strings.Repeat("coursework ", 20)
	s[types.SectionProjects] = strings.Repeat("project detail ", 30)
	s[types.SectionSkills] = strings.Repeat("skill, ", 40)
	return s
}

func TestStructureScoresInRange(t *testing.T) {
	tests := []struct {
		name     string
		sections types.ResumeSections
	}{
		{name: "complete resume", sections: fullSections()},
		{name: "empty sections", sections: types.NewResumeSections()},
		{name: "summary only", sections: func() types.ResumeSections {
			s := types.NewResumeSections()
			s[types.SectionSummary] = "A short summary."
			return s
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Structure(tt.sections)
			if got.FormatScore < 0 || got.FormatScore > 100 {
				t.Errorf("format score %d out of range", got.FormatScore)
			}
			if got.SectionScore < 0 || got.SectionScore > 100 {
				t.Errorf("section score %d out of range", got.SectionScore)
			}
		})
	}
}

func TestStructureCompleteResumeScoresHigh(t *testing.T) {
	got := Structure(fullSections())
	if got.FormatScore != 100 {
		t.Errorf("format score = %d, want 100", got.FormatScore)
	}
	if got.SectionScore != 100 {
		t.Errorf("section score = %d, want 100", got.SectionScore)
	}
	if got.Suggestions != nil {
		t.Errorf("complete resume should not draw suggestions: %v", got.Suggestions)
	}
}

func TestStructureEmptyResumeSuggestions(t *testing.T) {
	got := Structure(types.NewResumeSections())
	if got.SectionScore != 0 {
		t.Errorf("section score = %d, want 0", got.SectionScore)
	}
	for _, sec := range []types.Section{types.SectionExperience, types.SectionEducation, types.SectionSkills} {
		if len(got.Suggestions[sec]) == 0 {
			t.Errorf("expected a suggestion for missing %s section", sec)
		}
	}
	if len(got.Suggestions[types.SectionContact]) != 3 {
		t.Errorf("expected 3 contact suggestions, got %v", got.Suggestions[types.SectionContact])
	}
}

func TestStructureContactCompleteness(t *testing.T) {
	tests := []struct {
		name    string
		contact string
		want    int
	}{
		{name: "all three", contact: "a@b.com (555) 123-4567 linkedin.com/in/x", want: weightContactInfo},
		{name: "email only", contact: "a@b.com", want: weightContactInfo / 3},
		{name: "none", contact: "John Doe", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := types.NewResumeSections()
			s[types.SectionContact] = tt.contact
			got := Structure(s)
			// Empty summary/experience contribute nothing; only the
			// short-length half credit remains on top of contact.
			contactPortion := got.FormatScore - weightOverallLength/2
			if contactPortion != tt.want {
				t.Errorf("contact portion = %d, want %d", contactPortion, tt.want)
			}
		})
	}
}

func TestStructureSummaryBand(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{name: "in band", words: 50, want: weightSummaryLength},
		{name: "too short", words: 10, want: weightSummaryLength / 2},
		{name: "too long", words: 150, want: weightSummaryLength / 2},
		{name: "missing", words: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := types.NewResumeSections()
			s[types.SectionSummary] = strings.TrimSpace(strings.Repeat("word ", tt.words))
			got := Structure(s)
			summaryPortion := got.FormatScore - weightOverallLength/2
			if summaryPortion != tt.want {
				t.Errorf("summary portion = %d, want %d", summaryPortion, tt.want)
			}
		})
	}
}

func TestStructureBulletRatio(t *testing.T) {
	mostlyBullets := types.NewResumeSections()
	mostlyBullets[types.SectionExperience] = "Acme Corp\n- did a thing\n- did another thing\n- and one more"
	noBullets := types.NewResumeSections()
	noBullets[types.SectionExperience] = "Worked at Acme doing various things across several years."

	withB := Structure(mostlyBullets)
	withoutB := Structure(noBullets)
	if withB.FormatScore <= withoutB.FormatScore {
		t.Errorf("bulleted experience (%d) should outscore prose (%d)",
			withB.FormatScore, withoutB.FormatScore)
	}
	if len(withoutB.Suggestions[types.SectionExperience]) == 0 {
		t.Error("prose experience should draw a bullet suggestion")
	}
}

func TestStructureIdempotent(t *testing.T) {
	s := fullSections()
	first := Structure(s)
	second := Structure(s)
	if first.FormatScore != second.FormatScore || first.SectionScore != second.SectionScore {
		t.Error("repeated scoring of identical sections diverged")
	}
}

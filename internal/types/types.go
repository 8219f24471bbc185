package types

import (
	"fmt"
	"sort"
	"strings"
)

// Section identifies a canonical resume section.
type Section string

const (
	SectionContact    Section = "contact"
	SectionSummary    Section = "summary"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionProjects   Section = "projects"
	SectionSkills     Section = "skills"
)

// AllSections is the fixed canonical order used everywhere a stable
// iteration order matters (output, scoring, tests).
var AllSections = []Section{
	SectionContact,
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionSkills,
}

// ResumeSections maps every canonical section to its text. A segmented
// resume always carries all six keys; sections the document lacks hold "".
type ResumeSections map[Section]string

// NewResumeSections returns a section map with all canonical keys present.
func NewResumeSections() ResumeSections {
	s := make(ResumeSections, len(AllSections))
	for _, sec := range AllSections {
		s[sec] = ""
	}
	return s
}

// DocumentType is the classifier's label for an input document.
type DocumentType string

const (
	DocTypeResume      DocumentType = "resume"
	DocTypeCoverLetter DocumentType = "cover_letter"
	DocTypeInvoice     DocumentType = "invoice"
	DocTypeReport      DocumentType = "report"
	DocTypeLetter      DocumentType = "letter"
	DocTypeUnknown     DocumentType = "unknown"
)

// Classification is the document-type gate result.
type Classification struct {
	Type       DocumentType `json:"type"`
	Confidence float64      `json:"confidence"`
}

// IsResume reports whether the document passed the resume gate.
func (c Classification) IsResume() bool {
	return c.Type == DocTypeResume
}

// RoleProfile describes a target job role and the skills it requires.
type RoleProfile struct {
	Category       string   `json:"category"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"requiredSkills"`
}

// KeywordMatch is the skill-matching stage output. Matched and Missing
// are sorted and never nil; an empty requirement set yields Score 100
// with both slices empty.
type KeywordMatch struct {
	Score         int      `json:"score"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

// FormatAssessment is the structural scoring stage output.
type FormatAssessment struct {
	FormatScore  int                  `json:"formatScore"`
	SectionScore int                  `json:"sectionScore"`
	Suggestions  map[Section][]string `json:"suggestions,omitempty"`
}

// AnalysisResult is the aggregate produced by the local pipeline.
type AnalysisResult struct {
	DocumentType      DocumentType         `json:"documentType"`
	IsResume          bool                 `json:"isResume"`
	ATSScore          int                  `json:"atsScore"`
	KeywordMatchScore int                  `json:"keywordMatchScore"`
	// KeywordMatchUnavailable marks runs where the role profile was
	// invalid: the keyword score carries no signal and the ATS score
	// was computed from the structural stages alone.
	KeywordMatchUnavailable bool                 `json:"keywordMatchUnavailable,omitempty"`
	FormatScore             int                  `json:"formatScore"`
	SectionScore            int                  `json:"sectionScore"`
	Role                    string               `json:"role,omitempty"`
	MatchedSkills           []string             `json:"matchedSkills"`
	MissingSkills           []string             `json:"missingSkills"`
	Suggestions             map[Section][]string `json:"suggestions,omitempty"`
	Sections                ResumeSections       `json:"sections,omitempty"`
	Warning                 string               `json:"warning,omitempty"`
}

// Flatten renders the result as the key/value record consumed by
// downstream stores and spreadsheets. Multi-valued fields collapse to
// comma-joined strings.
func (r *AnalysisResult) Flatten() map[string]string {
	keywordScore := fmt.Sprintf("%d", r.KeywordMatchScore)
	if r.KeywordMatchUnavailable {
		keywordScore = "unavailable"
	}
	return map[string]string{
		"ats_score":           fmt.Sprintf("%d", r.ATSScore),
		"keyword_match_score": keywordScore,
		"format_score":        fmt.Sprintf("%d", r.FormatScore),
		"section_score":       fmt.Sprintf("%d", r.SectionScore),
		"missing_skills":      strings.Join(r.MissingSkills, ","),
		"recommendations":     strings.Join(r.OrderedSuggestions(), ","),
	}
}

// OrderedSuggestions flattens the per-section suggestion map in canonical
// section order so repeated runs produce identical output.
func (r *AnalysisResult) OrderedSuggestions() []string {
	var out []string
	for _, sec := range AllSections {
		out = append(out, r.Suggestions[sec]...)
	}
	// Suggestions under non-canonical keys would be silently lost;
	// collect any stragglers deterministically.
	var extra []Section
	for sec := range r.Suggestions {
		if !isCanonical(sec) {
			extra = append(extra, sec)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, sec := range extra {
		out = append(out, r.Suggestions[sec]...)
	}
	return out
}

func isCanonical(sec Section) bool {
	for _, s := range AllSections {
		if s == sec {
			return true
		}
	}
	return false
}

// AIAnalysisInput is the request sent to the AI collaborator.
type AIAnalysisInput struct {
	ResumeText     string `json:"resumeText"`
	JobRole        string `json:"jobRole"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// AIAnalysisOutput is the structured AI response. Analysis is a markdown
// narrative whose "## " headings split it into displayable sections.
type AIAnalysisOutput struct {
	ResumeScore   int      `json:"resumeScore"`
	ATSScore      int      `json:"atsScore"`
	Analysis      string   `json:"analysis"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	JobMatchScore *int     `json:"jobMatchScore,omitempty"`
}

// JobMatchInput is the request for matching a resume against a job posting.
type JobMatchInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// JobMatchOutput is the structured job-match response.
type JobMatchOutput struct {
	Score               int      `json:"score"`
	MatchedRequirements []string `json:"matchedRequirements"`
	MissingRequirements []string `json:"missingRequirements"`
	Summary             string   `json:"summary"`
}

package score

import (
	"regexp"
	"strings"

	"resumelens/internal/types"
)

// Format-score weights, summing to 100.
const (
	weightContactInfo   = 30
	weightSummaryLength = 20
	weightBulletUsage   = 25
	weightOverallLength = 25
)

// Section-score weights, summing to 100.
var sectionWeights = map[types.Section]int{
	types.SectionContact:    15,
	types.SectionSummary:    15,
	types.SectionExperience: 30,
	types.SectionEducation:  15,
	types.SectionProjects:   10,
	types.SectionSkills:     15,
}

// Summary and document length bands, in words.
const (
	summaryMinWords  = 30
	summaryMaxWords  = 100
	documentMinWords = 200
	documentMaxWords = 1200
)

var (
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern  = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkPattern   = regexp.MustCompile(`(?i)\b(linkedin\.com|github\.com|https?://|www\.)\S*`)
	bulletPattern = regexp.MustCompile(`^\s*[-•*–]`)
)

// Structure evaluates resume formatting and section coverage. Both
// scores land in [0,100]; suggestions name the section they concern.
func Structure(sections types.ResumeSections) types.FormatAssessment {
	assessment := types.FormatAssessment{
		Suggestions: make(map[types.Section][]string),
	}

	assessment.FormatScore = formatScore(sections, assessment.Suggestions)
	assessment.SectionScore = sectionScore(sections, assessment.Suggestions)
	if len(assessment.Suggestions) == 0 {
		assessment.Suggestions = nil
	}
	return assessment
}

func formatScore(sections types.ResumeSections, suggestions map[types.Section][]string) int {
	score := 0

	// Contact completeness: email, phone, and a profile link each count.
	contact := sections[types.SectionContact]
	contactParts := 0
	if emailPattern.MatchString(contact) {
		contactParts++
	} else {
		suggestions[types.SectionContact] = append(suggestions[types.SectionContact],
			"Add an email address to your contact information")
	}
	if phonePattern.MatchString(contact) {
		contactParts++
	} else {
		suggestions[types.SectionContact] = append(suggestions[types.SectionContact],
			"Add a phone number to your contact information")
	}
	if linkPattern.MatchString(contact) {
		contactParts++
	} else {
		suggestions[types.SectionContact] = append(suggestions[types.SectionContact],
			"Add a LinkedIn or portfolio link to your contact information")
	}
	score += weightContactInfo * contactParts / 3

	// Summary length band.
	summaryWords := len(strings.Fields(sections[types.SectionSummary]))
	switch {
	case summaryWords == 0:
		suggestions[types.SectionSummary] = append(suggestions[types.SectionSummary],
			"Add a professional summary near the top of your resume")
	case summaryWords < summaryMinWords:
		score += weightSummaryLength / 2
		suggestions[types.SectionSummary] = append(suggestions[types.SectionSummary],
			"Expand your summary; a few sentences read better than one line")
	case summaryWords <= summaryMaxWords:
		score += weightSummaryLength
	default:
		score += weightSummaryLength / 2
		suggestions[types.SectionSummary] = append(suggestions[types.SectionSummary],
			"Tighten your summary to under 100 words")
	}

	// Bullet usage in experience.
	experience := sections[types.SectionExperience]
	if experience != "" {
		lines := strings.Split(experience, "\n")
		bullets := 0
		for _, line := range lines {
			if bulletPattern.MatchString(line) {
				bullets++
			}
		}
		ratio := float64(bullets) / float64(len(lines))
		switch {
		case ratio >= 0.5:
			score += weightBulletUsage
		case ratio > 0:
			score += weightBulletUsage / 2
			suggestions[types.SectionExperience] = append(suggestions[types.SectionExperience],
				"Use bullet points consistently for experience entries")
		default:
			suggestions[types.SectionExperience] = append(suggestions[types.SectionExperience],
				"Format experience accomplishments as bullet points")
		}
	}

	// Overall length band.
	totalWords := 0
	for _, sec := range types.AllSections {
		totalWords += len(strings.Fields(sections[sec]))
	}
	switch {
	case totalWords >= documentMinWords && totalWords <= documentMaxWords:
		score += weightOverallLength
	case totalWords > documentMaxWords:
		score += weightOverallLength / 2
		suggestions[types.SectionSummary] = append(suggestions[types.SectionSummary],
			"Shorten the resume; recruiters rarely read past two pages")
	default:
		score += weightOverallLength / 2
		suggestions[types.SectionSummary] = append(suggestions[types.SectionSummary],
			"The resume is short; add detail to experience and projects")
	}

	return clamp(score)
}

func sectionScore(sections types.ResumeSections, suggestions map[types.Section][]string) int {
	score := 0
	for _, sec := range types.AllSections {
		if strings.TrimSpace(sections[sec]) != "" {
			score += sectionWeights[sec]
			continue
		}
		switch sec {
		case types.SectionExperience:
			suggestions[sec] = append(suggestions[sec],
				"Add a work experience section with your most recent roles")
		case types.SectionEducation:
			suggestions[sec] = append(suggestions[sec],
				"Add an education section")
		case types.SectionSkills:
			suggestions[sec] = append(suggestions[sec],
				"List your skills in a dedicated section")
		case types.SectionProjects:
			suggestions[sec] = append(suggestions[sec],
				"Consider adding a projects section to show applied work")
		}
	}
	return clamp(score)
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
